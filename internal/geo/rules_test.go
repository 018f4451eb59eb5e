package geo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRules_Quotas(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	if rules.MaxEventChannels != 5 {
		t.Fatalf("unexpected total cap: %d", rules.MaxEventChannels)
	}
	if rules.MaxPerBucket.UK != 2 || rules.MaxPerBucket.US != 2 {
		t.Fatalf("unexpected bucket limits: %+v", rules.MaxPerBucket)
	}
}

func TestLoadRules_MissingFileFallsBack(t *testing.T) {
	t.Parallel()

	rules := LoadRules(filepath.Join(t.TempDir(), "absent.json"))
	if rules.MaxEventChannels != DefaultRules().MaxEventChannels {
		t.Fatalf("missing file should yield defaults, got %+v", rules)
	}
}

func TestLoadRules_MalformedFileFallsBackWholesale(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`{"max_event_channels": `), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rules := LoadRules(path)
	if rules.MaxEventChannels != 5 {
		t.Fatalf("malformed file should yield defaults, got %d", rules.MaxEventChannels)
	}
}

func TestParseRules_DeepMergesOverDefaults(t *testing.T) {
	t.Parallel()

	rules, err := ParseRules([]byte(`{"max_per_bucket": {"uk": 3}}`))
	if err != nil {
		t.Fatalf("parse rules: %v", err)
	}
	if rules.MaxPerBucket.UK != 3 {
		t.Fatalf("override not applied: %+v", rules.MaxPerBucket)
	}
	if rules.MaxPerBucket.US != 2 {
		t.Fatalf("sibling default lost: %+v", rules.MaxPerBucket)
	}
	if len(rules.Classification["uk"].Keywords) == 0 {
		t.Fatal("untouched defaults lost in merge")
	}
}

func TestParseRules_ClampsInvalidLimits(t *testing.T) {
	t.Parallel()

	rules, err := ParseRules([]byte(`{"max_event_channels": 0, "max_per_bucket": {"uk": -1}}`))
	if err != nil {
		t.Fatalf("parse rules: %v", err)
	}
	if rules.MaxEventChannels != 1 {
		t.Fatalf("total cap not clamped: %d", rules.MaxEventChannels)
	}
	if rules.MaxPerBucket.UK != 0 {
		t.Fatalf("bucket limit not clamped: %d", rules.MaxPerBucket.UK)
	}
}

func TestActiveProfiles_EnsuresPrimary(t *testing.T) {
	t.Parallel()

	rules := Rules{GeoProfiles: []Profile{
		{Name: "uk", Enabled: true, BucketHint: "uk"},
		{Name: "us", Enabled: true, BucketHint: "us"},
		{Name: "disabled", Enabled: false},
	}}

	profiles := ActiveProfiles(rules)
	if len(profiles) != 2 {
		t.Fatalf("expected 2 enabled profiles, got %d", len(profiles))
	}
	if !profiles[0].Primary {
		t.Fatal("first profile should be promoted to primary")
	}
}

func TestActiveProfiles_EmptyYieldsDefault(t *testing.T) {
	t.Parallel()

	profiles := ActiveProfiles(Rules{})
	if len(profiles) != 1 || profiles[0].Name != "default" || !profiles[0].Primary {
		t.Fatalf("unexpected fallback profiles: %+v", profiles)
	}
}
