package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"matchday.fit/fixturecast/internal/cli"
	"matchday.fit/fixturecast/internal/config"
	"matchday.fit/fixturecast/internal/geo"
	"matchday.fit/fixturecast/internal/logging"
	"matchday.fit/fixturecast/internal/schedule"
)

func runSelectChannels(args []string) int {
	fs := flag.NewFlagSet("select-channels", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	in := fs.String("in", "", "Input schedule JSON file with mapped channel entries")
	out := fs.String("out", "", "Output schedule JSON file")
	rulesPath := fs.String("rules", "", "Geo rules JSON file (default from GEO_RULES_PATH)")
	statsOut := fs.String("stats-out", "", "Optional per-event selection stats JSON file")

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

	resolvedRules := strings.TrimSpace(*rulesPath)
	if resolvedRules == "" {
		resolvedRules = cfg.GeoRulesPath
	}
	rules := geo.LoadRules(resolvedRules)

	payload, err := readPayload(*in)
	if err != nil {
		logger.Error().Err(err).Msg("select-channels failed to read schedule")
		fmt.Fprintf(os.Stderr, "Select-channels failed: %v\n", err)
		return 1
	}

	selections := make(map[string]geo.SelectionStats)
	totalEvents := 0
	totalSelected := 0
	for i := range payload.Schedule {
		day := &payload.Schedule[i]
		for j := range day.Events {
			event := &day.Events[j]

			entries := make([]geo.MappedChannel, 0, len(event.Channels))
			for _, raw := range event.Channels {
				entries = append(entries, geo.SplitMappedEntry(raw))
			}

			index := geo.IndexCandidates(event.ChannelCandidates)
			selected, stats := geo.Select(entries, rules, index)

			names := make([]string, 0, len(selected))
			for _, channel := range selected {
				names = append(names, channel.Name)
			}
			event.Channels = names

			selections[schedule.EventKey(*event)] = stats
			totalEvents++
			totalSelected += stats.SelectedTotal
		}
	}

	if err := writePayload(*out, payload); err != nil {
		logger.Error().Err(err).Msg("select-channels failed to write schedule")
		fmt.Fprintf(os.Stderr, "Select-channels failed: %v\n", err)
		return 1
	}

	if strings.TrimSpace(*statsOut) != "" {
		if err := writeJSONFile(*statsOut, selections); err != nil {
			logger.Error().Err(err).Msg("select-channels failed to write stats")
			fmt.Fprintf(os.Stderr, "Select-channels failed: %v\n", err)
			return 1
		}
	}

	logger.Info().
		Str("in", *in).
		Str("out", *out).
		Str("rules", resolvedRules).
		Int("events", totalEvents).
		Int("channels_selected", totalSelected).
		Msg("channels selected")
	fmt.Printf("select-channels events=%d channels_selected=%d\n", totalEvents, totalSelected)
	return 0
}
