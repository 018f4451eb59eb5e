// Package geo classifies broadcast channel names into UK/US/Other buckets
// and applies per-event quota selection.
package geo

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// Bucket is a geographic classification for a broadcast channel.
type Bucket string

const (
	BucketUK    Bucket = "uk"
	BucketUS    Bucket = "us"
	BucketOther Bucket = "other"
)

// ValidBucket reports whether value names a known bucket.
func ValidBucket(value string) bool {
	switch Bucket(value) {
	case BucketUK, BucketUS, BucketOther:
		return true
	}
	return false
}

// NameRules matches a channel name by exact entries or whitespace-bounded
// keyword substrings.
type NameRules struct {
	Exact    []string `json:"exact"`
	Keywords []string `json:"keywords"`
}

// BucketLimits caps how many UK and US channels an event may carry.
type BucketLimits struct {
	UK int `json:"uk"`
	US int `json:"us"`
}

// Profile describes one scraping geography and the bucket hint its channel
// candidates inherit.
type Profile struct {
	Name                string            `json:"name"`
	Enabled             bool              `json:"enabled"`
	Primary             bool              `json:"primary"`
	BucketHint          string            `json:"bucket_hint"`
	PreferredOther      bool              `json:"preferred_other"`
	ScheduleParams      map[string]string `json:"schedule_params"`
	TournamentOverrides map[string]string `json:"tournament_overrides"`
}

// Rules is the geo selection configuration. Zero values are never used
// directly; load rules through DefaultRules or LoadRules.
type Rules struct {
	MaxEventChannels int                  `json:"max_event_channels"`
	MaxPerBucket     BucketLimits         `json:"max_per_bucket"`
	Classification   map[string]NameRules `json:"classification"`
	CountryGroups    map[string][]string  `json:"country_groups"`
	GeoProfiles      []Profile            `json:"geo_profiles"`
}

// DefaultRules returns the built-in geo rules. Callers receive a fresh copy
// and may mutate it freely.
func DefaultRules() Rules {
	return Rules{
		MaxEventChannels: 5,
		MaxPerBucket:     BucketLimits{UK: 2, US: 2},
		Classification: map[string]NameRules{
			"uk": {
				Exact: []string{
					"Sky Sports Main Event",
					"Sky Sports Premier League",
					"Sky Sports Football",
					"TNT Sports",
					"Sky Go UK",
					"BBC iPlayer",
					"ITVX",
					"Premier Sports 1",
					"Premier Sports 2",
					"DAZN UK",
				},
				Keywords: []string{
					"sky sports",
					"tnt sports",
					"bt sport",
					"bbc",
					"itv",
					"premier sports",
					"sky go uk",
					"dazn uk",
				},
			},
			"us": {
				Exact: []string{
					"Fanatiz USA",
					"DAZN USA",
					"beIN SPORTS CONNECT U.S.A.",
					"Peacock",
					"Paramount+",
					"ESPN Deportes USA",
				},
				Keywords: []string{
					" usa",
					"u.s.a",
					"united states",
					"espn deportes usa",
					"fox deportes",
					"cbs sports",
					"nbc sports",
					"peacock",
					"paramount+",
					"dazn usa",
					"fanatiz usa",
				},
			},
			"preferred_other": {
				Exact: []string{
					"DStv Now",
					"GOtv",
					"MBC Shahid",
					"MBC Action",
				},
				Keywords: []string{
					"supersport",
					"dstv",
					"gotv",
					"sabc",
					"saudi",
					"ksa",
					"ssc",
					"mbc",
					"shahid",
					"arabia",
				},
			},
		},
		CountryGroups: map[string][]string{
			"uk": {
				"United Kingdom",
				"UK",
				"England",
				"Scotland",
				"Wales",
				"Northern Ireland",
				"Great Britain",
			},
			"us": {
				"United States",
				"United States of America",
				"USA",
				"U.S.A.",
			},
			"preferred_other": {
				"South Africa",
				"Saudi Arabia",
			},
		},
		GeoProfiles: []Profile{
			{Name: "default", Enabled: true, Primary: true},
			{
				Name: "uk", Enabled: true, BucketHint: "uk",
				ScheduleParams:      map[string]string{"iso_code": "235"},
				TournamentOverrides: map[string]string{"iso_code": "235"},
			},
			{
				Name: "us", Enabled: true, BucketHint: "us",
				ScheduleParams:      map[string]string{"iso_code": "233"},
				TournamentOverrides: map[string]string{"iso_code": "233"},
			},
			{
				Name: "za", Enabled: true, BucketHint: "other", PreferredOther: true,
				ScheduleParams:      map[string]string{"iso_code": "147"},
				TournamentOverrides: map[string]string{"iso_code": "147"},
			},
			{
				Name: "saudi", Enabled: true, BucketHint: "other", PreferredOther: true,
				ScheduleParams:      map[string]string{"iso_code": "163"},
				TournamentOverrides: map[string]string{"iso_code": "163"},
			},
		},
	}
}

// LoadRules reads a geo rules file and deep-merges it over the defaults.
// A missing file yields the defaults; a malformed file falls back to the
// defaults wholesale rather than producing a partially-applied config.
func LoadRules(path string) Rules {
	if path == "" {
		return DefaultRules()
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultRules()
		}
		return DefaultRules()
	}
	merged, err := mergeRulesJSON(payload)
	if err != nil {
		return DefaultRules()
	}
	return merged
}

// ParseRules deep-merges a raw rules document over the defaults, returning
// an error instead of silently falling back. LoadRules wraps it with the
// fallback policy.
func ParseRules(payload []byte) (Rules, error) {
	return mergeRulesJSON(payload)
}

func mergeRulesJSON(payload []byte) (Rules, error) {
	var loaded map[string]any
	if err := json.Unmarshal(payload, &loaded); err != nil {
		return Rules{}, err
	}

	defaultsJSON, err := json.Marshal(DefaultRules())
	if err != nil {
		return Rules{}, err
	}
	var base map[string]any
	if err := json.Unmarshal(defaultsJSON, &base); err != nil {
		return Rules{}, err
	}

	deepMerge(base, loaded)

	mergedJSON, err := json.Marshal(base)
	if err != nil {
		return Rules{}, err
	}
	var rules Rules
	if err := json.Unmarshal(mergedJSON, &rules); err != nil {
		return Rules{}, err
	}
	if rules.MaxEventChannels < 1 {
		rules.MaxEventChannels = 1
	}
	if rules.MaxPerBucket.UK < 0 {
		rules.MaxPerBucket.UK = 0
	}
	if rules.MaxPerBucket.US < 0 {
		rules.MaxPerBucket.US = 0
	}
	return rules, nil
}

func deepMerge(dst, src map[string]any) {
	for key, value := range src {
		if srcMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				deepMerge(dstMap, srcMap)
				continue
			}
		}
		dst[key] = value
	}
}

// ActiveProfiles returns the enabled geo profiles with normalized bucket
// hints, guaranteeing at least one profile and exactly one primary.
func ActiveProfiles(rules Rules) []Profile {
	profiles := make([]Profile, 0, len(rules.GeoProfiles))
	for _, raw := range rules.GeoProfiles {
		if !raw.Enabled || raw.Name == "" {
			continue
		}
		profile := raw
		if !ValidBucket(profile.BucketHint) {
			profile.BucketHint = ""
		}
		profiles = append(profiles, profile)
	}

	if len(profiles) == 0 {
		return []Profile{{Name: "default", Enabled: true, Primary: true}}
	}

	hasPrimary := false
	for _, profile := range profiles {
		if profile.Primary {
			hasPrimary = true
			break
		}
	}
	if !hasPrimary {
		profiles[0].Primary = true
	}
	return profiles
}
