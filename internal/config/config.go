// Package config loads reconstruction parameters from a YAML file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-sss-recover/internal/crypto/curves"
	"github.com/smallyu/go-sss-recover/pkg/sss"
)

const (
	// DefaultMaxSubsets bounds C(n, k) so a careless input cannot pin the
	// machine for hours.
	DefaultMaxSubsets = 1 << 22

	maxWorkers = 256
)

// Default returns the parameters used when no file is given.
func Default() sss.Parameters {
	return sss.Parameters{
		Workers:    runtime.NumCPU(),
		MaxSubsets: DefaultMaxSubsets,
	}
}

// Load reads path on top of Default. An empty path returns Default.
func Load(path string) (sss.Parameters, error) {
	params := Default()
	if strings.TrimSpace(path) == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("parse config %s: %w", path, err)
	}
	return Sanitize(params)
}

// Sanitize clamps out-of-range values and normalises names. It fails only
// on values that cannot be corrected, such as an unknown curve.
func Sanitize(params sss.Parameters) (sss.Parameters, error) {
	if params.Workers <= 0 {
		params.Workers = runtime.NumCPU()
	}
	if params.Workers > maxWorkers {
		params.Workers = maxWorkers
	}

	params.Curve = strings.ToLower(strings.TrimSpace(params.Curve))
	params.ExpectedFingerprint = strings.ToLower(strings.TrimSpace(params.ExpectedFingerprint))
	if params.ExpectedFingerprint != "" && params.Curve == "" {
		params.Curve = curves.NameSecp256k1
	}
	if params.Curve != "" {
		if _, err := curves.ByName(params.Curve); err != nil {
			return params, err
		}
	}
	return params, nil
}
