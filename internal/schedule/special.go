package schedule

import (
	"strings"

	"matchday.fit/fixturecast/internal/textnorm"
)

// IsSpecialCompetition reports whether a competition belongs to the
// highlighted tier: UEFA club competitions, the top domestic leagues and
// cups of England, Spain, Germany, and France, and the NBA proper.
func IsSpecialCompetition(competition, country, sport string) bool {
	comp := textnorm.NormalizeKey(competition)
	countryKey := textnorm.NormalizeKey(country)
	sportKey := textnorm.NormalizeKey(sport)

	if comp == "" {
		return false
	}

	europe := countryKey == "international" || countryKey == "europe"

	if strings.Contains(comp, "champions league") {
		if strings.Contains(comp, "afc champions league") || strings.Contains(comp, "caf champions league") {
			return false
		}
		if strings.Contains(comp, "uefa") || europe {
			return true
		}
	}
	if strings.Contains(comp, "europa league") && (strings.Contains(comp, "uefa") || europe) {
		return true
	}
	if strings.Contains(comp, "conference league") && (strings.Contains(comp, "uefa") || europe) {
		return true
	}

	if countryKey == "england" {
		if strings.Contains(comp, "premier league") {
			return true
		}
		if strings.Contains(comp, "efl cup") {
			return true
		}
		if strings.Contains(comp, "fa cup") {
			return true
		}
	}
	if strings.Contains(comp, "carabao cup") {
		return true
	}

	if countryKey == "spain" && (strings.Contains(comp, "la liga") || strings.Contains(comp, "laliga")) {
		if !strings.Contains(comp, "2") && !strings.Contains(comp, "hypermotion") {
			return true
		}
	}
	if countryKey == "germany" && strings.Contains(comp, "bundesliga") {
		if !strings.Contains(comp, "2. bundesliga") && !strings.Contains(comp, "2 bundesliga") {
			return true
		}
	}
	if countryKey == "germany" && (strings.Contains(comp, "dfb-pokal") || strings.Contains(comp, "dfb pokal")) {
		return true
	}
	if countryKey == "france" && strings.Contains(comp, "ligue 1") {
		return true
	}

	if sportKey == "basketball" && strings.Contains(comp, "nba") && !strings.Contains(comp, "g league") {
		return true
	}

	return false
}

// ApplySpecialLabels marks events special at the competition level: the
// flag is computed once per (competition, country, sport) and propagated to
// every event in that group, overriding per-event values.
func ApplySpecialLabels(events []Event) []Event {
	type compKey struct {
		competition string
		country     string
		sport       string
	}
	byCompetition := make(map[compKey]bool)

	for _, event := range events {
		key := compKey{
			competition: textnorm.NormalizeKey(event.Competition),
			country:     textnorm.NormalizeKey(event.Country),
			sport:       textnorm.NormalizeKey(event.Sport),
		}
		if _, ok := byCompetition[key]; !ok {
			byCompetition[key] = IsSpecialCompetition(event.Competition, event.Country, event.Sport)
		}
	}

	for i := range events {
		key := compKey{
			competition: textnorm.NormalizeKey(events[i].Competition),
			country:     textnorm.NormalizeKey(events[i].Country),
			sport:       textnorm.NormalizeKey(events[i].Sport),
		}
		events[i].Special = byCompetition[key]
	}
	return events
}
