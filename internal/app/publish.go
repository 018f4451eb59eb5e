package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"matchday.fit/fixturecast/internal/cli"
	"matchday.fit/fixturecast/internal/config"
	"matchday.fit/fixturecast/internal/db"
	"matchday.fit/fixturecast/internal/geo"
	"matchday.fit/fixturecast/internal/logging"
	payloadschema "matchday.fit/fixturecast/schema"
)

func runPublish(args []string) int {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	in := fs.String("in", "", "Composed schedule JSON file")
	selectionsPath := fs.String("selections", "", "Optional per-event selection stats JSON file")
	timeout := fs.Duration("timeout", 30*time.Second, "Database timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *in == "" {
		fmt.Fprintln(os.Stderr, "--in is required")
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

	raw, err := os.ReadFile(strings.TrimSpace(*in))
	if err != nil {
		logger.Error().Err(err).Msg("publish failed to read schedule")
		fmt.Fprintf(os.Stderr, "Publish failed: %v\n", err)
		return 1
	}

	payload, err := payloadschema.ValidateSchedulePayload(json.RawMessage(raw))
	if err != nil {
		logger.Error().Err(err).Msg("publish rejected invalid schedule")
		fmt.Fprintf(os.Stderr, "Publish failed: %v\n", err)
		return 1
	}

	var selections map[string]geo.SelectionStats
	if strings.TrimSpace(*selectionsPath) != "" {
		selectionsRaw, err := os.ReadFile(strings.TrimSpace(*selectionsPath))
		if err != nil {
			logger.Error().Err(err).Msg("publish failed to read selection stats")
			fmt.Fprintf(os.Stderr, "Publish failed: %v\n", err)
			return 1
		}
		if err := json.Unmarshal(selectionsRaw, &selections); err != nil {
			logger.Error().Err(err).Msg("publish failed to decode selection stats")
			fmt.Fprintf(os.Stderr, "Publish failed: %v\n", err)
			return 1
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("publish failed to connect to database")
		fmt.Fprintf(os.Stderr, "Publish failed: %v\n", err)
		return 1
	}
	defer pool.Close()

	runID, err := pool.InsertScheduleRun(ctx, *payload, selections)
	if err != nil {
		logger.Error().Err(err).Msg("publish failed to insert schedule run")
		fmt.Fprintf(os.Stderr, "Publish failed: %v\n", err)
		return 1
	}

	logger.Info().
		Int64("run_id", runID).
		Str("in", *in).
		Str("source", payload.Source).
		Int("days", len(payload.Schedule)).
		Msg("schedule published")
	fmt.Printf("published run_id=%d days=%d\n", runID, len(payload.Schedule))
	return 0
}
