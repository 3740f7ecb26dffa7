// Command sss-recover reconstructs the secret behind a set of base-encoded
// shares and checks that every threshold-sized subset agrees on it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smallyu/go-sss-recover/internal/config"
	"github.com/smallyu/go-sss-recover/internal/protocol/reconstruct"
	"github.com/smallyu/go-sss-recover/internal/share"
	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// errInconsistent is returned by run when the shares do not agree on a
// single secret. The report has already been written at that point.
var errInconsistent = errors.New("shares are inconsistent")

type cliOptions struct {
	inputPath  string
	configPath string
	format     string
	verbose    bool

	// Overrides applied on top of the config file when the flag is set.
	workers     int
	maxSubsets  uint64
	curve       string
	fingerprint string
	crossCheck  bool
	set         map[string]bool
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("sss-recover: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errInconsistent) {
			stop()
			os.Exit(1)
		}
		log.Fatalf("sss-recover: %v", err)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (cliOptions, error) {
	var opts cliOptions
	fs.StringVar(&opts.inputPath, "input", "", "JSON or YAML share record (.yaml/.yml selects YAML)")
	fs.StringVar(&opts.configPath, "config", "", "YAML file with reconstruction parameters")
	fs.StringVar(&opts.format, "format", "text", "Report format: text or json")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log every subset at debug level")
	fs.IntVar(&opts.workers, "workers", 0, "Solver goroutines (default: number of CPUs)")
	fs.Uint64Var(&opts.maxSubsets, "max-subsets", config.DefaultMaxSubsets, "Refuse inputs with more k-subsets than this (0 = no limit)")
	fs.StringVar(&opts.curve, "curve", "", "Fingerprint the secret on this curve (secp256k1, ed25519)")
	fs.StringVar(&opts.fingerprint, "expect-fingerprint", "", "Hex fingerprint the recovered secret must match")
	fs.BoolVar(&opts.crossCheck, "cross-check", false, "Recompute every constant term with exact rational arithmetic")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s --input FILE [options]\n\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	opts.inputPath = strings.TrimSpace(opts.inputPath)
	opts.format = strings.ToLower(strings.TrimSpace(opts.format))

	if opts.inputPath == "" {
		fs.Usage()
		return opts, errors.New("missing required --input file")
	}
	if opts.format != "text" && opts.format != "json" {
		return opts, fmt.Errorf("unknown --format %q", opts.format)
	}
	return opts, nil
}

func loadParameters(opts cliOptions) (sss.Parameters, error) {
	params, err := config.Load(opts.configPath)
	if err != nil {
		return params, err
	}
	if opts.set["workers"] {
		params.Workers = opts.workers
	}
	if opts.set["max-subsets"] {
		params.MaxSubsets = opts.maxSubsets
	}
	if opts.set["curve"] {
		params.Curve = opts.curve
	}
	if opts.set["expect-fingerprint"] {
		params.ExpectedFingerprint = opts.fingerprint
	}
	if opts.set["cross-check"] {
		params.CrossCheck = opts.crossCheck
	}
	return config.Sanitize(params)
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}

func run(ctx context.Context, opts cliOptions, stdout, stderr io.Writer) error {
	params, err := loadParameters(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(opts.verbose, stderr)
	defer logger.Sync()

	set, err := share.Load(opts.inputPath)
	if err != nil {
		return fmt.Errorf("read shares: %w", err)
	}

	report, err := reconstruct.Run(ctx, set, &params, logger)
	if err != nil {
		return fmt.Errorf("reconstruct: %w", err)
	}

	switch opts.format {
	case "json":
		err = writeJSON(stdout, report)
	default:
		err = writeText(stdout, report)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if !report.Consistent() {
		return errInconsistent
	}
	return nil
}
