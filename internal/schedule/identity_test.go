package schedule

import "testing"

func TestNormalizeSiteURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"http://www.livesporttv.com/soccer/match": "https://www.livesporttv.com/soccer/match",
		"//cdn.example.net/logo.png":              "https://cdn.example.net/logo.png",
		"/soccer/arsenal-chelsea/":                "https://www.livesporttv.com/soccer/arsenal-chelsea",
		"": "",
	}
	for input, want := range cases {
		if got := NormalizeSiteURL(input, false); got != want {
			t.Fatalf("NormalizeSiteURL(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeSiteURL_FragmentHandling(t *testing.T) {
	t.Parallel()

	raw := "https://www.livesporttv.com/soccer/match#abc123"
	if got := NormalizeSiteURL(raw, false); got != "https://www.livesporttv.com/soccer/match" {
		t.Fatalf("fragment not dropped: %q", got)
	}
	if got := NormalizeSiteURL(raw, true); got != raw {
		t.Fatalf("fragment not kept: %q", got)
	}
}

func TestCanonicalizeMatchURL_FragmentToken(t *testing.T) {
	t.Parallel()

	fromFragment := CanonicalizeMatchURL("https://www.livesporttv.com/soccer/arsenal-chelsea#m1234abcd")
	fromPath := CanonicalizeMatchURL("https://www.livesporttv.com/soccer/m1234abcd")
	if fromFragment != fromPath {
		t.Fatalf("fragment and path spellings diverge: %q vs %q", fromFragment, fromPath)
	}
	if fromFragment != "https://www.livesporttv.com/soccer/m1234abcd" {
		t.Fatalf("unexpected canonical URL: %q", fromFragment)
	}
}

func TestCanonicalizeMatchURL_NoToken(t *testing.T) {
	t.Parallel()

	// "v" is shorter than the 4-char token minimum.
	got := CanonicalizeMatchURL("https://www.livesporttv.com/a/v")
	if got != "https://www.livesporttv.com/a/v" {
		t.Fatalf("tokenless URL mangled: %q", got)
	}
}

func TestMatchIdentityToken_Priority(t *testing.T) {
	t.Parallel()

	withKey := Event{MatchKey: "Key9876", MatchURL: "https://www.livesporttv.com/soccer/urltoken1"}
	if got := MatchIdentityToken(withKey); got != "key9876" {
		t.Fatalf("match key should win: %q", got)
	}

	urlOnly := Event{MatchURL: "https://www.livesporttv.com/soccer/urltoken1"}
	if got := MatchIdentityToken(urlOnly); got != "urltoken1" {
		t.Fatalf("URL token not extracted: %q", got)
	}

	if got := MatchIdentityToken(Event{}); got != "" {
		t.Fatalf("empty event should have no token: %q", got)
	}
}

func TestIdentityKey_SignalPriority(t *testing.T) {
	t.Parallel()

	start := "2026-08-29T15:00:00Z"
	token := Event{MatchKey: "tok123456", HomeTeam: "Arsenal", AwayTeam: "Chelsea", StartTimeISO: start}
	teams := Event{HomeTeam: "Arsenal", AwayTeam: "Chelsea", StartTimeISO: start, Sport: "Soccer"}
	nameOnly := Event{Name: "Ryder Cup Day One", StartTimeISO: start, Sport: "Golf", Competition: "Ryder Cup"}

	if IdentityKey(token) == IdentityKey(teams) {
		t.Fatal("token and team keys must not collide")
	}
	if IdentityKey(teams) == IdentityKey(nameOnly) {
		t.Fatal("team and name keys must not collide")
	}
}

func TestIdentityKey_Deterministic(t *testing.T) {
	t.Parallel()

	event := Event{Name: " Arsenal  v Chelsea ", HomeTeam: "ARSENAL", AwayTeam: "chelsea", StartTimeISO: "2026-08-29T15:00:00Z", Sport: "Soccer"}
	same := Event{Name: "Arsenal v Chelsea", HomeTeam: "Arsenal", AwayTeam: "Chelsea", StartTimeISO: "2026-08-29T15:00:00Z", Sport: "soccer"}
	if IdentityKey(event) != IdentityKey(same) {
		t.Fatal("whitespace and casing should not affect identity")
	}
}

func TestDedupeEvents_FoldsDuplicates(t *testing.T) {
	t.Parallel()

	events := []Event{
		{HomeTeam: "Arsenal", AwayTeam: "Chelsea", StartTimeISO: "2026-08-29T15:00:00Z", Sport: "Soccer", Channels: []string{"Sky Sports"}},
		{HomeTeam: "Leeds", AwayTeam: "Everton", StartTimeISO: "2026-08-29T15:00:00Z", Sport: "Soccer"},
		{HomeTeam: "arsenal", AwayTeam: "chelsea", StartTimeISO: "2026-08-29T15:00:00Z", Sport: "soccer", Channels: []string{"Peacock"}},
	}

	deduped, collapsed := DedupeEvents(events)
	if len(deduped) != 2 || collapsed != 1 {
		t.Fatalf("expected 2 events with 1 collapse, got %d/%d", len(deduped), collapsed)
	}
	if deduped[0].HomeTeam != "Arsenal" {
		t.Fatalf("first-seen order lost: %v", deduped[0])
	}
	if len(deduped[0].Channels) != 2 {
		t.Fatalf("channels not unioned: %v", deduped[0].Channels)
	}
}
