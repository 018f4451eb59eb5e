package schedule

import (
	"reflect"
	"testing"
)

func TestNormalizeLogoURL_PatchesTeamCrestWidth(t *testing.T) {
	t.Parallel()

	got := NormalizeLogoURL("https://www.livesporttv.com/resize/width/20/uploads/teams/arsenal.png")
	want := "https://www.livesporttv.com/resize/width/40/uploads/teams/arsenal.png"
	if got != want {
		t.Fatalf("width not patched: %q", got)
	}

	untouched := NormalizeLogoURL("https://www.livesporttv.com/resize/width/20/uploads/comps/epl.png")
	if untouched != "https://www.livesporttv.com/resize/width/20/uploads/comps/epl.png" {
		t.Fatalf("non-team path patched: %q", untouched)
	}
}

func TestUsableLogoURL(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"https://cdn.example.net/uploads/teams/arsenal.png": true,
		"https://cdn.example.net/uploads/no-logo.png":       false,
		"https://cdn.example.net/uploads/default.png":       false,
		"https://cdn.example.net/uploads/teams/arsenal":     false,
		"": false,
	}
	for input, want := range cases {
		if got := UsableLogoURL(input); got != want {
			t.Fatalf("UsableLogoURL(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestLogoQualityScore(t *testing.T) {
	t.Parallel()

	resized := LogoQualityScore("https://cdn.example.net/resize/width/40/uploads/teams/arsenal.png")
	bare := LogoQualityScore("https://cdn.example.net/uploads/teams/arsenal.png")
	placeholder := LogoQualityScore("https://cdn.example.net/uploads/no-logo.png")

	if resized <= bare {
		t.Fatalf("resized (%d) should outscore bare upload (%d)", resized, bare)
	}
	if bare <= placeholder {
		t.Fatalf("bare upload (%d) should outscore placeholder (%d)", bare, placeholder)
	}
	if LogoQualityScore("") != -100 {
		t.Fatal("empty URL should bottom out")
	}
}

func TestChoosePreferredLogo(t *testing.T) {
	t.Parallel()

	resized := "https://cdn.example.net/resize/width/40/uploads/teams/arsenal.png"
	bare := "https://cdn.example.net/uploads/teams/arsenal.png"
	placeholder := "https://cdn.example.net/uploads/no-logo.png"

	if got := ChoosePreferredLogo(bare, resized); got != resized {
		t.Fatalf("higher score should win: %q", got)
	}
	// Ties keep the existing URL.
	other := "https://cdn.example.net/uploads/teams/chelsea.png"
	if got := ChoosePreferredLogo(bare, other); got != bare {
		t.Fatalf("tie should keep existing: %q", got)
	}
	if got := ChoosePreferredLogo(placeholder, bare); got != bare {
		t.Fatalf("unusable winner should fall back: %q", got)
	}
	if got := ChoosePreferredLogo(placeholder, ""); got != "" {
		t.Fatalf("lone placeholder should yield empty: %q", got)
	}
}

func TestMerge_ChannelsUnionPreservesOrder(t *testing.T) {
	t.Parallel()

	existing := Event{Channels: []string{"Sky Sports", "TNT Sports"}}
	incoming := Event{Channels: []string{"sky sports", "Peacock"}}

	merged := Merge(existing, incoming)
	want := []string{"Sky Sports", "TNT Sports", "Peacock"}
	if !reflect.DeepEqual(merged.Channels, want) {
		t.Fatalf("unexpected channel union: %v", merged.Channels)
	}
}

func TestMerge_ScalarBackfillOnly(t *testing.T) {
	t.Parallel()

	existing := Event{Name: "Arsenal v Chelsea", Competition: "", Status: "scheduled"}
	incoming := Event{Name: "DIFFERENT NAME", Competition: "Premier League", Status: "live"}

	merged := Merge(existing, incoming)
	if merged.Name != "Arsenal v Chelsea" {
		t.Fatalf("populated field overwritten: %q", merged.Name)
	}
	if merged.Competition != "Premier League" {
		t.Fatalf("blank field not backfilled: %q", merged.Competition)
	}
	if merged.Status != "scheduled" {
		t.Fatalf("status overwritten: %q", merged.Status)
	}
}

func TestMerge_SpecialAndTeamIDs(t *testing.T) {
	t.Parallel()

	id := int64(42)
	merged := Merge(Event{Special: false}, Event{Special: true, HomeTeamID: &id})
	if !merged.Special {
		t.Fatal("special flag should OR")
	}
	if merged.HomeTeamID == nil || *merged.HomeTeamID != 42 {
		t.Fatalf("team id not backfilled: %v", merged.HomeTeamID)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	t.Parallel()

	event := Event{
		Name:         "Arsenal v Chelsea",
		StartTimeISO: "2026-08-29T15:00:00Z",
		Channels:     []string{"Sky Sports"},
		HomeTeamLogo: "https://cdn.example.net/uploads/teams/arsenal.png",
		MatchURL:     "https://www.livesporttv.com/soccer/m1234abcd",
		Special:      true,
	}
	merged := Merge(event, event)
	if !reflect.DeepEqual(merged, Merge(merged, event)) {
		t.Fatal("merging an event with itself should be a fixed point")
	}
}

func TestMerge_GroupingOrderInsensitive(t *testing.T) {
	t.Parallel()

	a := Event{Name: "Arsenal v Chelsea", Channels: []string{"Sky Sports"}}
	b := Event{Name: "Arsenal v Chelsea", Channels: []string{"Peacock"}, Competition: "Premier League"}
	c := Event{Name: "Arsenal v Chelsea", Channels: []string{"DAZN"}, Special: true}

	left := Merge(Merge(a, b), c)
	right := Merge(a, Merge(b, c))
	if !reflect.DeepEqual(left, right) {
		t.Fatalf("association changed the result:\n%+v\n%+v", left, right)
	}
}

func TestMerge_MatchURLPrefersExisting(t *testing.T) {
	t.Parallel()

	existing := Event{MatchURL: "https://www.livesporttv.com/soccer/arsenal-chelsea#m1234abcd"}
	incoming := Event{MatchURL: "https://www.livesporttv.com/soccer/other9999"}

	merged := Merge(existing, incoming)
	if merged.MatchURL != "https://www.livesporttv.com/soccer/m1234abcd" {
		t.Fatalf("existing canonical URL should win: %q", merged.MatchURL)
	}

	merged = Merge(Event{}, incoming)
	if merged.MatchURL != "https://www.livesporttv.com/soccer/other9999" {
		t.Fatalf("incoming URL should fill the gap: %q", merged.MatchURL)
	}
}
