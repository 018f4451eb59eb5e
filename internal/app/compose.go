package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"matchday.fit/fixturecast/internal/cli"
	"matchday.fit/fixturecast/internal/config"
	"matchday.fit/fixturecast/internal/db"
	"matchday.fit/fixturecast/internal/logging"
	"matchday.fit/fixturecast/internal/schedule"
)

func runCompose(args []string) int {
	fs := flag.NewFlagSet("compose", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	primary := fs.String("primary", "", "Primary schedule JSON file (soccer source)")
	secondary := fs.String("secondary", "", "Secondary schedule JSON file (non-soccer source)")
	out := fs.String("out", "", "Output schedule JSON file")
	publish := fs.Bool("publish", false, "Also write the composed schedule into Postgres")
	timeout := fs.Duration("timeout", 30*time.Second, "Database timeout when publishing")

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

	primaryPayload, err := readPayload(*primary)
	if err != nil {
		logger.Error().Err(err).Msg("compose failed to read primary schedule")
		fmt.Fprintf(os.Stderr, "Compose failed: %v\n", err)
		return 1
	}
	secondaryPayload, err := readPayload(*secondary)
	if err != nil {
		logger.Error().Err(err).Msg("compose failed to read secondary schedule")
		fmt.Fprintf(os.Stderr, "Compose failed: %v\n", err)
		return 1
	}

	composed := schedule.Compose(*primaryPayload, *secondaryPayload)

	if err := writePayload(*out, &composed); err != nil {
		logger.Error().Err(err).Msg("compose failed to write schedule")
		fmt.Fprintf(os.Stderr, "Compose failed: %v\n", err)
		return 1
	}

	event := logger.Info().
		Str("primary", *primary).
		Str("secondary", *secondary).
		Str("out", *out)
	if composed.Composition != nil {
		event = event.
			Int("soccer_events", composed.Composition.SoccerEvents).
			Int("non_soccer_events", composed.Composition.NonSoccerEvents).
			Int("days", composed.Composition.Days)
	}
	event.Msg("weekly schedule composed")

	if composed.Composition != nil {
		fmt.Printf(
			"compose days=%d soccer=%d non_soccer=%d\n",
			composed.Composition.Days,
			composed.Composition.SoccerEvents,
			composed.Composition.NonSoccerEvents,
		)
	}

	if !*publish {
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("compose failed to connect to database")
		fmt.Fprintf(os.Stderr, "Compose failed: %v\n", err)
		return 1
	}
	defer pool.Close()

	runID, err := pool.InsertScheduleRun(ctx, composed, nil)
	if err != nil {
		logger.Error().Err(err).Msg("compose failed to publish schedule")
		fmt.Fprintf(os.Stderr, "Compose failed: %v\n", err)
		return 1
	}

	logger.Info().Int64("run_id", runID).Msg("composed schedule published")
	fmt.Printf("published run_id=%d\n", runID)
	return 0
}
