package geo

import "testing"

func TestClassifyBucket_NameRules(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	cases := map[string]Bucket{
		"Sky Sports Premier League": BucketUK,
		"TNT Sports 2":              BucketUK,
		"Fanatiz USA":               BucketUS,
		"Peacock":                   BucketUS,
		"DAZN USA":                  BucketUS,
		"SuperSport Premier League": BucketOther,
		"Rai Sport":                 BucketOther,
	}
	for name, want := range cases {
		if got := ClassifyBucket(name, rules, nil); got != want {
			t.Fatalf("ClassifyBucket(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestClassifyBucket_KeywordIsWordBounded(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	if got := ClassifyBucket("Jerusalem TV", rules, nil); got != BucketOther {
		t.Fatalf("substring match leaked across word boundary: %q", got)
	}
}

func TestClassifyBucket_HintWinsOverNameRules(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	candidate := &Candidate{Name: "Sky Sports Premier League", BucketHints: []string{"us"}}
	if got := ClassifyBucket(candidate.Name, rules, candidate); got != BucketUS {
		t.Fatalf("hint should take precedence, got %q", got)
	}
}

func TestClassifyBucket_ConflictingHintsIgnored(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	candidate := &Candidate{Name: "Sky Sports Football", BucketHints: []string{"uk", "us"}}
	if got := ClassifyBucket(candidate.Name, rules, candidate); got != BucketUK {
		t.Fatalf("conflicting hints should fall through to name rules, got %q", got)
	}
}

func TestClassifyBucket_CountryGroups(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	candidate := &Candidate{Name: "Willow TV", Countries: []string{"United States"}}
	if got := ClassifyBucket(candidate.Name, rules, candidate); got != BucketUS {
		t.Fatalf("country group not applied: %q", got)
	}

	both := &Candidate{Name: "Global Sports", Countries: []string{"United Kingdom", "United States"}}
	if got := ClassifyBucket(both.Name, rules, both); got != BucketOther {
		t.Fatalf("dual-region channel should land in other: %q", got)
	}
}

func TestPreferredOther(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	if !PreferredOther("SuperSport Premier League", rules, nil) {
		t.Fatal("keyword-preferred channel not recognized")
	}
	if PreferredOther("Rai Sport", rules, nil) {
		t.Fatal("generic channel wrongly preferred")
	}
	if !PreferredOther("Some Channel", rules, &Candidate{Name: "Some Channel", PreferredOther: true}) {
		t.Fatal("candidate flag ignored")
	}
	if !PreferredOther("Another Channel", rules, &Candidate{Name: "Another Channel", Countries: []string{"South Africa"}}) {
		t.Fatal("preferred country ignored")
	}
}

func TestMergeCandidates_UnionsAndPreservesOrder(t *testing.T) {
	t.Parallel()

	existing := []Candidate{{Name: "SuperSport PL", Profiles: []string{"za"}, BucketHints: []string{"other"}}}
	incoming := []Candidate{
		{Name: "supersport pl", Profiles: []string{"saudi"}, PreferredOther: true},
		{Name: "Peacock", Profiles: []string{"us"}, BucketHints: []string{"us"}},
	}

	merged := MergeCandidates(existing, incoming)
	if len(merged) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(merged))
	}
	first := merged[0]
	if first.Name != "SuperSport PL" {
		t.Fatalf("first-seen casing lost: %q", first.Name)
	}
	if len(first.Profiles) != 2 || !first.PreferredOther {
		t.Fatalf("union/OR semantics broken: %+v", first)
	}
}

func TestBuildCandidates_InvalidHintDropped(t *testing.T) {
	t.Parallel()

	profile := Profile{Name: "weird", BucketHint: "mars"}
	candidates := BuildCandidates([]string{"Channel One"}, profile, nil)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(candidates[0].BucketHints) != 0 {
		t.Fatalf("invalid hint kept: %+v", candidates[0])
	}
}
