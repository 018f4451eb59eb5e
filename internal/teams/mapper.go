package teams

import (
	"regexp"
	"sort"
	"strings"

	"matchday.fit/fixturecast/internal/schedule"
	"matchday.fit/fixturecast/internal/textnorm"
)

// eventNameSplitRe splits "Home v Away" style event names on the first
// separator only, so "Team A v Team B v Team C" keeps the rest intact.
// Separators are v/vs in any casing, or a hyphen.
var eventNameSplitRe = regexp.MustCompile(`(?i)\s+(?:vs?|-)\s+`)

// MapStats summarizes one team-mapping pass.
type MapStats struct {
	TeamEvents       int      `json:"team_events"`
	FullyMatched     int      `json:"fully_matched"`
	PartiallyMatched int      `json:"partially_matched"`
	Unmatched        int      `json:"unmatched"`
	NotFound         []string `json:"not_found,omitempty"`
}

// SplitEventName splits a versus-style event name into home and away
// sides. ok is false for names without a separator (tournaments, sessions,
// race coverage).
func SplitEventName(name string) (home, away string, ok bool) {
	location := eventNameSplitRe.FindStringIndex(name)
	if location == nil {
		return "", "", false
	}
	home = strings.TrimSpace(name[:location[0]])
	away = strings.TrimSpace(name[location[1]:])
	if home == "" || away == "" {
		return "", "", false
	}
	return home, away, true
}

// MapTeams attaches team ids and logos to every versus-style event in the
// payload, in place. Names that resolve nowhere are collected in the stats
// with their sport for operator review.
func MapTeams(payload *schedule.Payload, matcher *Matcher) MapStats {
	stats := MapStats{}
	notFound := make(map[string]struct{})

	for di := range payload.Schedule {
		day := &payload.Schedule[di]
		for ei := range day.Events {
			event := &day.Events[ei]
			home, away, ok := SplitEventName(event.Name)
			if !ok {
				continue
			}
			stats.TeamEvents++

			event.HomeTeam = home
			event.AwayTeam = away
			event.HomeTeamID = nil
			event.HomeTeamLogo = ""
			event.AwayTeamID = nil
			event.AwayTeamLogo = ""

			homeTeam := matcher.Find(home, event.Sport)
			if homeTeam != nil {
				id := int64(homeTeam.ID)
				event.HomeTeamID = &id
				event.HomeTeamLogo = homeTeam.LogoURL
			} else {
				notFound[missLabel(home, event.Sport)] = struct{}{}
			}

			awayTeam := matcher.Find(away, event.Sport)
			if awayTeam != nil {
				id := int64(awayTeam.ID)
				event.AwayTeamID = &id
				event.AwayTeamLogo = awayTeam.LogoURL
			} else {
				notFound[missLabel(away, event.Sport)] = struct{}{}
			}

			switch {
			case homeTeam != nil && awayTeam != nil:
				stats.FullyMatched++
			case homeTeam != nil || awayTeam != nil:
				stats.PartiallyMatched++
			default:
				stats.Unmatched++
			}
		}
	}

	stats.NotFound = make([]string, 0, len(notFound))
	for label := range notFound {
		stats.NotFound = append(stats.NotFound, label)
	}
	sort.Strings(stats.NotFound)
	return stats
}

func missLabel(name, sport string) string {
	return textnorm.CleanTeamName(name) + " (" + sport + ")"
}
