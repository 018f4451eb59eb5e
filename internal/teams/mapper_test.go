package teams

import (
	"testing"

	"matchday.fit/fixturecast/internal/schedule"
)

func TestSplitEventName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		home  string
		away  string
		ok    bool
	}{
		{"Arsenal v Chelsea", "Arsenal", "Chelsea", true},
		{"Arsenal vs Chelsea", "Arsenal", "Chelsea", true},
		{"Arsenal VS Chelsea", "Arsenal", "Chelsea", true},
		{"Arsenal Vs Chelsea", "Arsenal", "Chelsea", true},
		{"Arsenal V Chelsea", "Arsenal", "Chelsea", true},
		{"Lakers - Celtics", "Lakers", "Celtics", true},
		{"Ryder Cup Day One", "", "", false},
		{"Formula 1: Monza", "", "", false},
	}
	for _, tc := range cases {
		home, away, ok := SplitEventName(tc.input)
		if ok != tc.ok || home != tc.home || away != tc.away {
			t.Fatalf("SplitEventName(%q) = %q, %q, %v", tc.input, home, away, ok)
		}
	}
}

func TestSplitEventName_FirstSeparatorOnly(t *testing.T) {
	t.Parallel()

	home, away, ok := SplitEventName("Team A v Team B v Team C")
	if !ok || home != "Team A" || away != "Team B v Team C" {
		t.Fatalf("unexpected split: %q, %q, %v", home, away, ok)
	}
}

func TestMapTeams(t *testing.T) {
	t.Parallel()

	registry := soccerRegistry("Arsenal", "Chelsea")
	matcher := NewMatcher(registry, 0)

	payload := &schedule.Payload{Schedule: []schedule.Day{{
		Date: "2026-08-29",
		Events: []schedule.Event{
			{Name: "Arsenal v Chelsea", Sport: "Football"},
			{Name: "Arsenal v Unknown Wanderers", Sport: "Football"},
			{Name: "Ryder Cup Day One", Sport: "Golf"},
		},
	}}}

	stats := MapTeams(payload, matcher)
	if stats.TeamEvents != 2 {
		t.Fatalf("unexpected team event count: %+v", stats)
	}
	if stats.FullyMatched != 1 || stats.PartiallyMatched != 1 || stats.Unmatched != 0 {
		t.Fatalf("unexpected match counts: %+v", stats)
	}

	full := payload.Schedule[0].Events[0]
	if full.HomeTeam != "Arsenal" || full.AwayTeam != "Chelsea" {
		t.Fatalf("team names not recorded: %+v", full)
	}
	if full.HomeTeamID == nil || *full.HomeTeamID != int64(StableID("Arsenal")) {
		t.Fatalf("home id wrong: %v", full.HomeTeamID)
	}
	if full.HomeTeamLogo == "" || full.AwayTeamLogo == "" {
		t.Fatal("logos not attached")
	}

	partial := payload.Schedule[0].Events[1]
	if partial.AwayTeamID != nil {
		t.Fatalf("unknown team got an id: %v", partial.AwayTeamID)
	}
	if len(stats.NotFound) != 1 || stats.NotFound[0] != "Unknown Wanderers (Football)" {
		t.Fatalf("unexpected not-found list: %v", stats.NotFound)
	}

	// Non-versus events stay untouched.
	golf := payload.Schedule[0].Events[2]
	if golf.HomeTeam != "" || golf.HomeTeamID != nil {
		t.Fatalf("non-versus event modified: %+v", golf)
	}
}
