package textnorm

import "testing"

func TestNormalize_CollapsesAndTrims(t *testing.T) {
	t.Parallel()

	if got := Normalize("  Sky   Sports\tMain Event "); got != "Sky Sports Main Event" {
		t.Fatalf("unexpected normalize result: %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	once := Normalize(" Manchester   United ")
	if twice := Normalize(once); twice != once {
		t.Fatalf("normalize is not idempotent: %q != %q", twice, once)
	}
}

func TestNormalizeKey_Folds(t *testing.T) {
	t.Parallel()

	if got := NormalizeKey("  TNT  Sports 1 "); got != "tnt sports 1" {
		t.Fatalf("unexpected key: %q", got)
	}
}

func TestIndexKey_RemovesPunctuation(t *testing.T) {
	t.Parallel()

	if got := IndexKey("A.C. Milan"); got != "ac milan" {
		t.Fatalf("unexpected index key: %q", got)
	}
	if got := IndexKey("Brighton & Hove Albion"); got != "brighton hove albion" {
		t.Fatalf("unexpected index key: %q", got)
	}
}

func TestDeepNormalize_DropsNoiseTokens(t *testing.T) {
	t.Parallel()

	if got := DeepNormalize("FC Barcelona"); got != "barcelona" {
		t.Fatalf("unexpected deep key: %q", got)
	}
	if got := DeepNormalize("Barcelona CF"); got != "barcelona" {
		t.Fatalf("unexpected deep key: %q", got)
	}
}

func TestCleanTeamName_StripsTrailingQualifier(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Chelsea U18":        "Chelsea",
		"Crystal Palace U21": "Crystal Palace",
		"Arsenal Women":      "Arsenal",
		"Everton Ladies":     "Everton",
		"Barcelona (W)":      "Barcelona",
		"Sevilla Reserves":   "Sevilla",
		"Ajax Youth":         "Ajax",
		"Real Sociedad B":    "Real Sociedad",
		"Borussia Dortmund":  "Borussia Dortmund",
	}
	for input, want := range cases {
		if got := CleanTeamName(input); got != want {
			t.Fatalf("CleanTeamName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCleanTeamName_OnlyTrailingQualifier(t *testing.T) {
	t.Parallel()

	// Nested qualifiers are not stripped recursively.
	if got := CleanTeamName("Chelsea Women U18"); got != "Chelsea Women" {
		t.Fatalf("expected single strip, got %q", got)
	}
}

func TestCanonicalEventName_UnifiesSeparators(t *testing.T) {
	t.Parallel()

	if got := CanonicalEventName("Arsenal v Chelsea"); got != "arsenal vs chelsea" {
		t.Fatalf("unexpected canonical name: %q", got)
	}
	if got := CanonicalEventName("Arsenal VS Chelsea"); got != "arsenal vs chelsea" {
		t.Fatalf("unexpected canonical name: %q", got)
	}
}

func TestCanonicalEventName_MarkersYearsPunctuation(t *testing.T) {
	t.Parallel()

	if got := CanonicalEventName("England (W) v Spain (W)"); got != "england women vs spain women" {
		t.Fatalf("unexpected canonical name: %q", got)
	}
	if got := CanonicalEventName("Ryder Cup 2025: Day One"); got != "ryder cup day one" {
		t.Fatalf("unexpected canonical name: %q", got)
	}
	if got := CanonicalEventName("Brighton & Hove v Leeds"); got != "brighton and hove vs leeds" {
		t.Fatalf("unexpected canonical name: %q", got)
	}
}

func TestDedupeFold(t *testing.T) {
	t.Parallel()

	got := DedupeFold([]string{"Sky Sports", " sky  sports ", "", "TNT Sports", "SKY SPORTS"})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %v", got)
	}
	if got[0] != "Sky Sports" || got[1] != "TNT Sports" {
		t.Fatalf("unexpected order or casing: %v", got)
	}
}
