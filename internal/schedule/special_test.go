package schedule

import "testing"

func TestIsSpecialCompetition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		competition string
		country     string
		sport       string
		want        bool
	}{
		{"UEFA Champions League", "Europe", "Soccer", true},
		{"Champions League", "International", "Soccer", true},
		{"AFC Champions League Elite", "Asia", "Soccer", false},
		{"CAF Champions League", "Africa", "Soccer", false},
		{"UEFA Europa League", "Europe", "Soccer", true},
		{"UEFA Conference League", "Europe", "Soccer", true},
		{"Premier League", "England", "Soccer", true},
		{"Premier League", "Scotland", "Soccer", false},
		{"Carabao Cup", "England", "Soccer", true},
		{"FA Cup", "England", "Soccer", true},
		{"LaLiga", "Spain", "Soccer", true},
		{"LaLiga Hypermotion", "Spain", "Soccer", false},
		{"Bundesliga", "Germany", "Soccer", true},
		{"2. Bundesliga", "Germany", "Soccer", false},
		{"DFB-Pokal", "Germany", "Soccer", true},
		{"Ligue 1", "France", "Soccer", true},
		{"NBA", "USA", "Basketball", true},
		{"NBA G League", "USA", "Basketball", false},
		{"NBA 2K League", "USA", "Esports", false},
		{"", "England", "Soccer", false},
	}
	for _, tc := range cases {
		if got := IsSpecialCompetition(tc.competition, tc.country, tc.sport); got != tc.want {
			t.Fatalf("IsSpecialCompetition(%q, %q, %q) = %v, want %v",
				tc.competition, tc.country, tc.sport, got, tc.want)
		}
	}
}

func TestApplySpecialLabels_PropagatesPerCompetition(t *testing.T) {
	t.Parallel()

	events := []Event{
		{Name: "Arsenal v Chelsea", Competition: "Premier League", Country: "England", Sport: "Soccer"},
		{Name: "Leeds v Everton", Competition: "premier league", Country: "ENGLAND", Sport: "soccer", Special: false},
		{Name: "Pisa v Como", Competition: "Serie A", Country: "Italy", Sport: "Soccer", Special: true},
	}

	labeled := ApplySpecialLabels(events)
	if !labeled[0].Special || !labeled[1].Special {
		t.Fatal("competition label not propagated to all its events")
	}
	// The competition-level decision overrides stale per-event flags.
	if labeled[2].Special {
		t.Fatal("non-special competition kept a stale special flag")
	}
}
