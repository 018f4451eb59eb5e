package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"matchday.fit/fixturecast/internal/cli"
	"matchday.fit/fixturecast/internal/config"
	"matchday.fit/fixturecast/internal/correlate"
	"matchday.fit/fixturecast/internal/logging"
)

func runCorrelate(args []string) int {
	fs := flag.NewFlagSet("correlate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	primary := fs.String("primary", "", "Primary schedule JSON file (enriched in place)")
	secondary := fs.String("secondary", "", "Secondary schedule JSON file (channel and logo donor)")
	out := fs.String("out", "", "Output schedule JSON file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *primary == "" || *secondary == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "--primary, --secondary, and --out are required")
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	base, err := readPayload(*primary)
	if err != nil {
		logger.Error().Err(err).Msg("correlate failed to read primary schedule")
		fmt.Fprintf(os.Stderr, "Correlate failed: %v\n", err)
		return 1
	}
	donor, err := readPayload(*secondary)
	if err != nil {
		logger.Error().Err(err).Msg("correlate failed to read secondary schedule")
		fmt.Fprintf(os.Stderr, "Correlate failed: %v\n", err)
		return 1
	}

	enriched, enrichment := correlate.Correlate(*base, *donor)

	if err := writePayload(*out, &enriched); err != nil {
		logger.Error().Err(err).Msg("correlate failed to write schedule")
		fmt.Fprintf(os.Stderr, "Correlate failed: %v\n", err)
		return 1
	}

	logger.Info().
		Str("primary", *primary).
		Str("secondary", *secondary).
		Str("out", *out).
		Int("matched_events", enrichment.MatchedEvents).
		Int("channels_added", enrichment.ChannelsAdded).
		Int("logos_added", enrichment.LogosAdded).
		Int("matched_by_name_and_time", enrichment.MatchedByNameTime).
		Int("matched_by_name_only", enrichment.MatchedByNameOnly).
		Int("ambiguous_skips", enrichment.AmbiguousKeySkipped).
		Msg("schedules correlated")
	fmt.Printf(
		"correlate matched=%d channels_added=%d logos_added=%d ambiguous_skips=%d\n",
		enrichment.MatchedEvents,
		enrichment.ChannelsAdded,
		enrichment.LogosAdded,
		enrichment.AmbiguousKeySkipped,
	)
	return 0
}
