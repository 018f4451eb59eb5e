// Package schedule defines the weekly schedule payload model plus the
// identity, merge, and composition logic that folds per-source scrapes into
// one deduplicated schedule.
package schedule

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"matchday.fit/fixturecast/internal/geo"
	"matchday.fit/fixturecast/internal/textnorm"
)

// Channel names that are not real broadcasters: apps, websites, radio
// relays, and bare domains.
var (
	nonBroadcastWordRe = regexp.MustCompile(`(?i)\b(app|website|web\s*site|youtube|radio)\b`)
	domainRe           = regexp.MustCompile(`(?i)\b[a-z0-9][a-z0-9.-]{0,251}\.(com|net|org|io|tv|co|app|gg|me|fm|uk|us|au|de|fr)\b`)
	clockRe            = regexp.MustCompile(`\b(\d{2}):(\d{2})\b`)
)

// Event is one broadcast listing. Field names follow the published payload.
type Event struct {
	Name              string          `json:"name"`
	StartTimeISO      string          `json:"start_time_iso,omitempty"`
	Time              string          `json:"time,omitempty"`
	Sport             string          `json:"sport,omitempty"`
	SportID           string          `json:"sport_id,omitempty"`
	Competition       string          `json:"competition,omitempty"`
	CompetitionURL    string          `json:"competition_url,omitempty"`
	Country           string          `json:"country,omitempty"`
	HomeTeam          string          `json:"home_team,omitempty"`
	AwayTeam          string          `json:"away_team,omitempty"`
	HomeTeamID        *int64          `json:"home_team_id,omitempty"`
	AwayTeamID        *int64          `json:"away_team_id,omitempty"`
	HomeTeamLogo      string          `json:"home_team_logo,omitempty"`
	AwayTeamLogo      string          `json:"away_team_logo,omitempty"`
	SportLogo         string          `json:"sport_logo,omitempty"`
	CompetitionLogo   string          `json:"competition_logo,omitempty"`
	Status            string          `json:"status,omitempty"`
	ScoreHome         string          `json:"score_home,omitempty"`
	ScoreAway         string          `json:"score_away,omitempty"`
	MatchKey          string          `json:"match_key,omitempty"`
	MatchFxID         string          `json:"match_fx_id,omitempty"`
	MatchURL          string          `json:"match_url,omitempty"`
	Special           bool            `json:"special"`
	Channels          []string        `json:"channels,omitempty"`
	ChannelCandidates []geo.Candidate `json:"channel_candidates,omitempty"`
}

// Day groups the events broadcast on one calendar date.
type Day struct {
	Date   string  `json:"date"`
	Day    string  `json:"day"`
	Events []Event `json:"events"`
}

// Enrichment records what cross-source correlation contributed.
type Enrichment struct {
	MergedAt            string   `json:"merged_at"`
	Sources             []string `json:"sources"`
	MatchMode           string   `json:"match_mode"`
	MatchedEvents       int      `json:"matched_events"`
	ChannelsAdded       int      `json:"channels_added_from_secondary"`
	LogosAdded          int      `json:"logos_added_from_secondary"`
	MatchedByNameTime   int      `json:"matched_by_name_and_time"`
	MatchedByNameOnly   int      `json:"matched_by_name_only"`
	AmbiguousKeySkipped int      `json:"ambiguous_match_keys_skipped"`
}

// Composition records how the final schedule was assembled.
type Composition struct {
	SoccerFrom      string `json:"soccer_from"`
	NonSoccerFrom   string `json:"non_soccer_from"`
	SoccerEvents    int    `json:"soccer_events"`
	NonSoccerEvents int    `json:"non_soccer_events"`
	Days            int    `json:"days"`
}

// Payload is the top-level weekly schedule document.
type Payload struct {
	GeneratedAt string       `json:"generated_at"`
	Source      string       `json:"source"`
	Schedule    []Day        `json:"schedule"`
	Enrichment  *Enrichment  `json:"channel_enrichment,omitempty"`
	Composition *Composition `json:"composition,omitempty"`
}

// UsableChannelName rejects empty names, non-broadcast words, and bare
// domains. keepNoisy bypasses the filters for debugging scrapes.
func UsableChannelName(name string, keepNoisy bool) bool {
	cleaned := textnorm.Normalize(name)
	if cleaned == "" {
		return false
	}
	if keepNoisy {
		return true
	}
	if nonBroadcastWordRe.MatchString(cleaned) {
		return false
	}
	if domainRe.MatchString(cleaned) {
		return false
	}
	return true
}

// CleanChannels filters a channel list down to usable broadcaster names,
// deduplicated case-insensitively in first-seen order.
func CleanChannels(channels []string) []string {
	cleaned := make([]string, 0, len(channels))
	for _, name := range channels {
		if UsableChannelName(name, false) {
			cleaned = append(cleaned, name)
		}
	}
	return textnorm.DedupeFold(cleaned)
}

// ClockFromISO extracts "HH:MM" from an ISO timestamp, falling back to the
// first clock-shaped token in the string.
func ClockFromISO(value string) string {
	text := textnorm.Normalize(value)
	if text == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed.Format("15:04")
		}
	}
	if match := clockRe.FindStringSubmatch(text); match != nil {
		return match[1] + ":" + match[2]
	}
	return ""
}

// EventClock resolves an event's wall clock, preferring the ISO start time
// over the display time.
func EventClock(event Event) string {
	if clock := ClockFromISO(event.StartTimeISO); clock != "" {
		return clock
	}
	raw := textnorm.Normalize(event.Time)
	if raw == "" {
		return ""
	}
	if parsed, err := time.Parse("15:04", raw); err == nil {
		return parsed.Format("15:04")
	}
	return ""
}

// SortEvents orders events by start time then casefolded name. The sort is
// stable so equal events keep their input order.
func SortEvents(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		left := sortKey(sorted[i])
		right := sortKey(sorted[j])
		if left[0] != right[0] {
			return left[0] < right[0]
		}
		return left[1] < right[1]
	})
	return sorted
}

func sortKey(event Event) [2]string {
	start := event.StartTimeISO
	if textnorm.Normalize(start) == "" {
		start = event.Time
	}
	return [2]string{textnorm.Normalize(start), textnorm.NormalizeKey(event.Name)}
}

// EventKey identifies an event within one composed day.
func EventKey(event Event) string {
	start := event.StartTimeISO
	if textnorm.Normalize(start) == "" {
		start = event.Time
	}
	return strings.Join([]string{
		textnorm.NormalizeKey(event.Name),
		textnorm.NormalizeKey(start),
		textnorm.NormalizeKey(event.Sport),
	}, "|")
}

// DayName resolves the weekday label for a YYYY-MM-DD date.
func DayName(dateISO string) string {
	parsed, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return ""
	}
	return parsed.Format("Monday")
}

// IsSoccerSport reports whether a sport label means association football.
// Labels that merely contain "football" (american, australian rules,
// gaelic) do not count.
func IsSoccerSport(sport string) bool {
	key := textnorm.NormalizeKey(sport)
	if key == "" {
		return false
	}
	for _, token := range []string{"american football", "australian rules", "gaelic football", "nfl"} {
		if strings.Contains(key, token) {
			return false
		}
	}
	return key == "soccer" || key == "football" || strings.Contains(key, "soccer")
}

// IsPrimarySoccerEvent widens IsSoccerSport with the match URL path and the
// numeric sport id used by the primary source.
func IsPrimarySoccerEvent(event Event) bool {
	if IsSoccerSport(event.Sport) {
		return true
	}
	if strings.Contains(textnorm.NormalizeKey(event.MatchURL), "/soccer/") {
		return true
	}
	return textnorm.NormalizeKey(event.SportID) == "1"
}
