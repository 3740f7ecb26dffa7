package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func options(t *testing.T, args ...string) cliOptions {
	t.Helper()
	fs := flag.NewFlagSet("sss-recover", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts, err := parseFlags(fs, args)
	require.NoError(t, err)
	return opts
}

const consistentInput = `{
  "keys": {"n": 4, "k": 3},
  "1": {"base": "10", "value": "8"},
  "2": {"base": "2", "value": "1101"},
  "3": {"base": "16", "value": "14"},
  "4": {"base": "10", "value": "29"}
}`

const inconsistentInput = `{
  "keys": {"n": 4, "k": 3},
  "1": {"base": "10", "value": "1"},
  "2": {"base": "10", "value": "3"},
  "3": {"base": "10", "value": "7"},
  "6": {"base": "10", "value": "42"}
}`

func TestRunConsistentText(t *testing.T) {
	path := writeFile(t, "input.json", consistentInput)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), options(t, "--input", path), &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "x = 2, y = 13")
	assert.Contains(t, out, "Number of points required (k): 3")
	assert.Contains(t, out, "(1,8) (2,13) (3,20)  c = 5")
	assert.Contains(t, out, "All combinations gave the SAME secret c = 5")
}

func TestRunInconsistentText(t *testing.T) {
	path := writeFile(t, "input.json", inconsistentInput)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), options(t, "--input", path), &stdout, &stderr)
	assert.ErrorIs(t, err, errInconsistent)

	out := stdout.String()
	assert.Contains(t, out, "Different secret constants found:")
	assert.Contains(t, out, "WARNING: shares might be inconsistent")
	assert.Contains(t, stderr.String(), "subsets disagree")
}

func TestRunJSON(t *testing.T) {
	path := writeFile(t, "input.json", consistentInput)

	var stdout, stderr bytes.Buffer
	opts := options(t, "--input", path, "--format", "json", "--curve", "ed25519", "--cross-check", "--workers", "2")
	require.NoError(t, run(context.Background(), opts, &stdout, &stderr))

	var report struct {
		K       int `json:"k"`
		Subsets []struct {
			Secret int64  `json:"secret"`
			Exact  string `json:"exact"`
		} `json:"subsets"`
		Verdict struct {
			Unique bool  `json:"unique"`
			Secret int64 `json:"secret"`
		} `json:"verdict"`
		Curve       string `json:"curve"`
		Fingerprint string `json:"fingerprint"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))

	assert.Equal(t, 3, report.K)
	assert.Len(t, report.Subsets, 4)
	for _, s := range report.Subsets {
		assert.Equal(t, int64(5), s.Secret)
		assert.Equal(t, "5", s.Exact)
	}
	assert.True(t, report.Verdict.Unique)
	assert.Equal(t, int64(5), report.Verdict.Secret)
	assert.Equal(t, "ed25519", report.Curve)
	assert.Len(t, report.Fingerprint, 64)
}

func TestRunYAMLWithConfig(t *testing.T) {
	input := writeFile(t, "input.yaml", `
keys: {n: 2, k: 2}
1: {base: 10, value: "10"}
2: {base: 10, value: "13"}
`)
	cfg := writeFile(t, "config.yaml", "workers: 1\ncurve: secp256k1\nexpect_fingerprint: \"00\"\n")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), options(t, "--input", input, "--config", cfg), &stdout, &stderr)
	assert.ErrorIs(t, err, errInconsistent)
	assert.Contains(t, stdout.String(), "All combinations gave the SAME secret c = 7")
	assert.Contains(t, stdout.String(), "fingerprint does NOT match")
}

func TestRunFatalErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), options(t, "--input", filepath.Join(t.TempDir(), "missing.json")), &stdout, &stderr)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, "bad.json", `{"keys": {"n": 1, "k": 1}, "1": {"base": "40", "value": "1"}}`)
	err = run(context.Background(), options(t, "--input", bad), &stdout, &stderr)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInconsistent)

	good := writeFile(t, "input.json", consistentInput)
	err = run(context.Background(), options(t, "--input", good, "--curve", "p256"), &stdout, &stderr)
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	fs := flag.NewFlagSet("sss-recover", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	_, err := parseFlags(fs, nil)
	assert.Error(t, err)

	fs = flag.NewFlagSet("sss-recover", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	_, err = parseFlags(fs, []string{"--input", "x.json", "--format", "xml"})
	assert.Error(t, err)

	opts := options(t, "--input", " x.json ", "--workers", "3")
	assert.Equal(t, "x.json", opts.inputPath)
	assert.True(t, opts.set["workers"])
	assert.False(t, opts.set["curve"])
}
