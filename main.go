package main

import (
	"context"
	"os"
	"os/signal"

	"threshold-secret-solver/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		return 2
	}

	logLevel := zerolog.InfoLevel
	if cfg.Verbose {
		logLevel = zerolog.DebugLevel
	}
	if cfg.Silent {
		logLevel = zerolog.Disabled
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
	utils.SetupLogger(logLevel)
	logger := log.With().Str("layer", "MAIN").Logger()

	jobs, err := loadJobs(cfg, os.Stdin)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load input")
		return 1
	}
	logger.Info().Int("jobs", len(jobs)).Int("workers", cfg.Workers).Str("format", cfg.Options.Format.String()).Msg("Start secret recovery")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := NewRunner(cfg, os.Stdout, logLevel)
	defer runner.Close()

	failed, err := runner.Run(ctx, jobs)
	if err != nil {
		logger.Error().Err(err).Msg("Batch aborted")
		return 1
	}
	if failed > 0 {
		logger.Warn().Int("failed", failed).Msg("Some documents could not be solved")
		return 1
	}
	logger.Info().Msg("All documents solved")
	return 0
}
