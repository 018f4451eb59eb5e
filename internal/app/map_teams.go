package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"matchday.fit/fixturecast/internal/cli"
	"matchday.fit/fixturecast/internal/config"
	"matchday.fit/fixturecast/internal/logging"
	"matchday.fit/fixturecast/internal/teams"
)

func runMapTeams(args []string) int {
	fs := flag.NewFlagSet("map-teams", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	in := fs.String("in", "", "Input schedule JSON file")
	out := fs.String("out", "", "Output schedule JSON file")
	teamsDB := fs.String("teams-db", "", "Team registry JSON file (default from TEAMS_DB_PATH)")
	noLearn := fs.Bool("no-learn", false, "Do not persist aliases learned during matching")

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

	registryPath := strings.TrimSpace(*teamsDB)
	if registryPath == "" {
		registryPath = cfg.TeamsDBPath
	}

	registry, err := teams.LoadRegistry(registryPath)
	if err != nil {
		logger.Error().Err(err).Str("teams_db", registryPath).Msg("map-teams failed to load registry")
		fmt.Fprintf(os.Stderr, "Map-teams failed: %v\n", err)
		return 1
	}

	payload, err := readPayload(*in)
	if err != nil {
		logger.Error().Err(err).Msg("map-teams failed to read schedule")
		fmt.Fprintf(os.Stderr, "Map-teams failed: %v\n", err)
		return 1
	}

	matcher := teams.NewMatcher(registry, cfg.FuzzyThreshold)
	stats := teams.MapTeams(payload, matcher)
	learned := matcher.LearnedCount()

	if !*noLearn {
		if err := matcher.Flush(registryPath); err != nil {
			logger.Error().Err(err).Str("teams_db", registryPath).Msg("map-teams failed to persist learned aliases")
			fmt.Fprintf(os.Stderr, "Map-teams failed: %v\n", err)
			return 1
		}
	}

	if err := writePayload(*out, payload); err != nil {
		logger.Error().Err(err).Msg("map-teams failed to write schedule")
		fmt.Fprintf(os.Stderr, "Map-teams failed: %v\n", err)
		return 1
	}

	logger.Info().
		Str("in", *in).
		Str("out", *out).
		Str("teams_db", registryPath).
		Float64("fuzzy_threshold", cfg.FuzzyThreshold).
		Int("team_events", stats.TeamEvents).
		Int("fully_matched", stats.FullyMatched).
		Int("partially_matched", stats.PartiallyMatched).
		Int("unmatched", stats.Unmatched).
		Int("aliases_learned", learned).
		Msg("teams mapped")
	fmt.Printf(
		"map-teams events=%d full=%d partial=%d unmatched=%d\n",
		stats.TeamEvents,
		stats.FullyMatched,
		stats.PartiallyMatched,
		stats.Unmatched,
	)
	for _, miss := range stats.NotFound {
		fmt.Fprintf(os.Stderr, "not found: %s\n", miss)
	}
	return 0
}
