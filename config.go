package main

import (
	"flag"
	"fmt"
	"io"

	"threshold-secret-solver/services"
)

// Config is the command line configuration.
type Config struct {
	Silent  bool
	Verbose bool
	Trace   bool
	Demo    bool
	Workers int
	Options services.Options
	Files   []string
}

func parseConfig(args []string, stderr io.Writer) (Config, error) {
	var (
		cfg    Config
		format string
	)

	fs := flag.NewFlagSet("threshold-secret-solver", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.Silent, "silent", false, "Disable logs and print only results")
	fs.BoolVar(&cfg.Verbose, "v", false, "Log every solve step")
	fs.BoolVar(&cfg.Trace, "trace", false, "Print the interpolation steps of every job")
	fs.BoolVar(&cfg.Demo, "demo", false, "Solve the built-in sample documents")
	fs.IntVar(&cfg.Workers, "workers", 4, "Number of concurrent solvers")
	fs.StringVar(&format, "format", "auto", "Document format: auto, json or cbor")
	fs.BoolVar(&cfg.Options.Strict, "strict", false, "Treat a non-integer result as an error")
	fs.IntVar(&cfg.Options.Limits.MaxShares, "max-shares", 0, "Maximum shares per document (0 = unlimited)")
	fs.IntVar(&cfg.Options.Limits.MaxK, "max-k", 0, "Maximum threshold k (0 = unlimited)")
	fs.IntVar(&cfg.Options.Limits.MaxDigits, "max-digits", 0, "Maximum digits per share value (0 = unlimited)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Files = fs.Args()

	f, err := services.ParseFormat(format)
	if err != nil {
		return Config{}, err
	}
	cfg.Options.Format = f

	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	limits := cfg.Options.Limits
	if limits.MaxShares < 0 || limits.MaxK < 0 || limits.MaxDigits < 0 {
		return Config{}, fmt.Errorf("limits must not be negative")
	}
	if cfg.Demo && len(cfg.Files) > 0 {
		return Config{}, fmt.Errorf("-demo does not take input files")
	}
	return cfg, nil
}
