package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "health":
		return runHealth(args[1:])
	case "validate":
		return runValidate(args[1:])
	case "dedup":
		return runDedup(args[1:])
	case "correlate":
		return runCorrelate(args[1:])
	case "map-teams":
		return runMapTeams(args[1:])
	case "select-channels":
		return runSelectChannels(args[1:])
	case "compose":
		return runCompose(args[1:])
	case "publish":
		return runPublish(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "fixturecast CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  fixturecast <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  health           Verify database connectivity")
	fmt.Fprintln(os.Stderr, "  validate         Validate schedule JSON files against the v1 schema")
	fmt.Fprintln(os.Stderr, "  dedup            Merge duplicate events inside one schedule file")
	fmt.Fprintln(os.Stderr, "  correlate        Enrich a primary schedule with a secondary schedule")
	fmt.Fprintln(os.Stderr, "  map-teams        Resolve event team names against the team registry")
	fmt.Fprintln(os.Stderr, "  select-channels  Apply geo quotas to every event's channel list")
	fmt.Fprintln(os.Stderr, "  compose          Compose the weekly schedule from per-source schedules")
	fmt.Fprintln(os.Stderr, "  publish          Write a composed schedule payload into Postgres")
	fmt.Fprintln(os.Stderr, "  serve            Start the Echo API server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"fixturecast <command> -h\" for command-specific flags.")
}
