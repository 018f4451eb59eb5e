package schedule

import "testing"

func TestUsableChannelName(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"Sky Sports Main Event": true,
		"TNT Sports 1":          true,
		"Club App":              false,
		"BBC Radio 5 Live":      false,
		"stream.example.com":    false,
		"YouTube":               false,
		"":                      false,
	}
	for name, want := range cases {
		if got := UsableChannelName(name, false); got != want {
			t.Fatalf("UsableChannelName(%q) = %v, want %v", name, got, want)
		}
	}
	if !UsableChannelName("Club App", true) {
		t.Fatal("keepNoisy should bypass the filters")
	}
}

func TestCleanChannels_FiltersAndDedupes(t *testing.T) {
	t.Parallel()

	got := CleanChannels([]string{
		"Sky Sports Football",
		"sky sports football",
		"Radio Five",
		"watch.example.tv",
		"Peacock",
	})
	if len(got) != 2 || got[0] != "Sky Sports Football" || got[1] != "Peacock" {
		t.Fatalf("unexpected channels: %v", got)
	}
}

func TestClockFromISO(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"2026-08-29T19:45:00Z":      "19:45",
		"2026-08-29T19:45:00+01:00": "19:45",
		"2026-08-29T08:00":          "08:00",
		"kickoff at 15:30 local":    "15:30",
		"no clock here":             "",
		"":                          "",
	}
	for input, want := range cases {
		if got := ClockFromISO(input); got != want {
			t.Fatalf("ClockFromISO(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestEventClock_PrefersISO(t *testing.T) {
	t.Parallel()

	event := Event{StartTimeISO: "2026-08-29T12:30:00Z", Time: "19:00"}
	if got := EventClock(event); got != "12:30" {
		t.Fatalf("unexpected clock: %q", got)
	}

	event = Event{Time: "19:00"}
	if got := EventClock(event); got != "19:00" {
		t.Fatalf("display time fallback broken: %q", got)
	}
}

func TestSortEvents_ByStartThenName(t *testing.T) {
	t.Parallel()

	events := []Event{
		{Name: "Zeta v Omega", StartTimeISO: "2026-08-29T15:00:00Z"},
		{Name: "alpha v beta", StartTimeISO: "2026-08-29T15:00:00Z"},
		{Name: "Early Match", StartTimeISO: "2026-08-29T12:00:00Z"},
	}
	sorted := SortEvents(events)
	if sorted[0].Name != "Early Match" || sorted[1].Name != "alpha v beta" {
		t.Fatalf("unexpected order: %v, %v, %v", sorted[0].Name, sorted[1].Name, sorted[2].Name)
	}
}

func TestIsSoccerSport(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"Soccer":            true,
		"Football":          true,
		"Women's Soccer":    true,
		"American Football": false,
		"Gaelic Football":   false,
		"NFL Football":      false,
		"Basketball":        false,
		"":                  false,
	}
	for sport, want := range cases {
		if got := IsSoccerSport(sport); got != want {
			t.Fatalf("IsSoccerSport(%q) = %v, want %v", sport, got, want)
		}
	}
}

func TestIsPrimarySoccerEvent_URLAndSportID(t *testing.T) {
	t.Parallel()

	if !IsPrimarySoccerEvent(Event{MatchURL: "https://www.livesporttv.com/soccer/arsenal-chelsea/abc123"}) {
		t.Fatal("soccer URL path not recognized")
	}
	if !IsPrimarySoccerEvent(Event{SportID: "1"}) {
		t.Fatal("sport id 1 not recognized")
	}
	if IsPrimarySoccerEvent(Event{Sport: "Tennis", SportID: "4"}) {
		t.Fatal("non-soccer event misclassified")
	}
}

func TestDayName(t *testing.T) {
	t.Parallel()

	if got := DayName("2026-08-29"); got != "Saturday" {
		t.Fatalf("unexpected day name: %q", got)
	}
	if got := DayName("not-a-date"); got != "" {
		t.Fatalf("invalid date should yield empty, got %q", got)
	}
}
