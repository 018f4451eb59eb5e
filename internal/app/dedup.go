package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"matchday.fit/fixturecast/internal/cli"
	"matchday.fit/fixturecast/internal/config"
	"matchday.fit/fixturecast/internal/logging"
	"matchday.fit/fixturecast/internal/schedule"
)

func runDedup(args []string) int {
	fs := flag.NewFlagSet("dedup", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	in := fs.String("in", "", "Input schedule JSON file")
	out := fs.String("out", "", "Output schedule JSON file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "--in and --out are required")
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

	payload, err := readPayload(*in)
	if err != nil {
		logger.Error().Err(err).Msg("dedup failed to read schedule")
		fmt.Fprintf(os.Stderr, "Dedup failed: %v\n", err)
		return 1
	}

	totalEvents := 0
	totalCollapsed := 0
	for i := range payload.Schedule {
		day := &payload.Schedule[i]
		deduped, collapsed := schedule.DedupeEvents(day.Events)
		day.Events = schedule.ApplySpecialLabels(deduped)
		totalEvents += len(day.Events)
		totalCollapsed += collapsed
	}

	if err := writePayload(*out, payload); err != nil {
		logger.Error().Err(err).Msg("dedup failed to write schedule")
		fmt.Fprintf(os.Stderr, "Dedup failed: %v\n", err)
		return 1
	}

	logger.Info().
		Str("in", *in).
		Str("out", *out).
		Int("days", len(payload.Schedule)).
		Int("events", totalEvents).
		Int("duplicates_collapsed", totalCollapsed).
		Msg("schedule deduplicated")
	fmt.Printf("dedup days=%d events=%d collapsed=%d\n", len(payload.Schedule), totalEvents, totalCollapsed)
	return 0
}
