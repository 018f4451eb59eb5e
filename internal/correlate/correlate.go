// Package correlate enriches the secondary schedule's events with channels
// and logos from a donor source, matched by canonical event name with time
// disambiguation.
package correlate

import (
	"matchday.fit/fixturecast/internal/globaltime"
	"matchday.fit/fixturecast/internal/schedule"
	"matchday.fit/fixturecast/internal/textnorm"
)

// MatchMode names the correlation strategy in the enrichment block.
const MatchMode = "canonical-name-with-time-disambiguation"

type nameKey struct {
	date string
	name string
}

type nameTimeKey struct {
	date  string
	name  string
	clock string
}

type donorIndex struct {
	byName     map[nameKey][]schedule.Event
	byNameTime map[nameTimeKey][]schedule.Event
	sportLogos map[string]string
}

// Correlate returns a copy of base whose events carry the donor's channels
// and logos wherever a confident match exists. Matching tries name+clock
// first, then a unique name-only candidate, then name-only candidates that
// all share one clock; anything else is skipped as ambiguous.
func Correlate(base, donor schedule.Payload) (schedule.Payload, schedule.Enrichment) {
	index := buildDonorIndex(donor)
	enrichment := schedule.Enrichment{
		MergedAt:  globaltime.UTC().Format("2006-01-02T15:04:05Z"),
		Sources:   []string{base.Source, donor.Source},
		MatchMode: MatchMode,
	}

	output := base
	output.Schedule = make([]schedule.Day, len(base.Schedule))
	for i, day := range base.Schedule {
		outDay := day
		outDay.Events = make([]schedule.Event, len(day.Events))
		for j, event := range day.Events {
			outDay.Events[j] = enrichEvent(event, day.Date, index, &enrichment)
		}
		output.Schedule[i] = outDay
	}
	output.Enrichment = &enrichment
	return output, enrichment
}

func enrichEvent(raw schedule.Event, date string, index donorIndex, enrichment *schedule.Enrichment) schedule.Event {
	event := raw
	event.Channels = schedule.CleanChannels(raw.Channels)

	name := textnorm.CanonicalEventName(event.Name)
	if name == "" {
		return event
	}
	key := nameKey{date: date, name: name}

	byName := index.byName[key]
	if len(byName) == 0 {
		// No donor candidates; at least try the per-sport logo fallback.
		sportKey := textnorm.NormalizeKey(event.Sport)
		if sportKey != "" && textnorm.Normalize(event.SportLogo) == "" {
			if logo, ok := index.sportLogos[sportKey]; ok {
				event.SportLogo = logo
				enrichment.LogosAdded++
			}
		}
		return event
	}

	before := event.Channels
	clock := schedule.EventClock(event)

	var matched []schedule.Event
	if clock != "" {
		matched = index.byNameTime[nameTimeKey{date: date, name: name, clock: clock}]
		if len(matched) > 0 {
			enrichment.MatchedByNameTime++
		}
	}
	if len(matched) == 0 {
		switch {
		case len(byName) == 1:
			matched = byName
			enrichment.MatchedByNameOnly++
		case singleClock(byName):
			matched = byName
			enrichment.MatchedByNameOnly++
		default:
			enrichment.AmbiguousKeySkipped++
			return event
		}
	}

	event.Channels = unionChannels(before, collectChannels(matched))
	if textnorm.Normalize(event.SportLogo) == "" {
		if logo := firstLogo(matched, func(e schedule.Event) []string {
			return []string{e.SportLogo, e.CompetitionLogo}
		}); logo != "" {
			event.SportLogo = logo
			enrichment.LogosAdded++
		}
	}
	if textnorm.Normalize(event.CompetitionLogo) == "" {
		if logo := firstLogo(matched, func(e schedule.Event) []string {
			return []string{e.CompetitionLogo, e.SportLogo}
		}); logo != "" {
			event.CompetitionLogo = logo
		}
	}

	enrichment.MatchedEvents++
	if added := len(event.Channels) - len(before); added > 0 {
		enrichment.ChannelsAdded += added
	}
	return event
}

func buildDonorIndex(donor schedule.Payload) donorIndex {
	index := donorIndex{
		byName:     make(map[nameKey][]schedule.Event),
		byNameTime: make(map[nameTimeKey][]schedule.Event),
		sportLogos: make(map[string]string),
	}
	for _, day := range donor.Schedule {
		date := textnorm.Normalize(day.Date)
		if date == "" {
			continue
		}
		for _, event := range day.Events {
			name := textnorm.CanonicalEventName(event.Name)
			if name == "" {
				continue
			}
			key := nameKey{date: date, name: name}
			index.byName[key] = append(index.byName[key], event)
			if clock := schedule.EventClock(event); clock != "" {
				timeKey := nameTimeKey{date: date, name: name, clock: clock}
				index.byNameTime[timeKey] = append(index.byNameTime[timeKey], event)
			}

			sportKey := textnorm.NormalizeKey(event.Sport)
			if sportKey == "" {
				continue
			}
			if _, ok := index.sportLogos[sportKey]; ok {
				continue
			}
			logo := textnorm.Normalize(event.SportLogo)
			if logo == "" {
				logo = textnorm.Normalize(event.CompetitionLogo)
			}
			if logo != "" {
				index.sportLogos[sportKey] = logo
			}
		}
	}
	return index
}

// singleClock reports whether every candidate with a resolvable clock
// shares the same one.
func singleClock(events []schedule.Event) bool {
	clocks := make(map[string]struct{})
	for _, event := range events {
		if clock := schedule.EventClock(event); clock != "" {
			clocks[clock] = struct{}{}
		}
	}
	return len(clocks) == 1
}

func collectChannels(events []schedule.Event) []string {
	var merged []string
	for _, event := range events {
		merged = append(merged, schedule.CleanChannels(event.Channels)...)
	}
	return textnorm.DedupeFold(merged)
}

func unionChannels(base, extra []string) []string {
	return textnorm.DedupeFold(append(append([]string{}, base...), extra...))
}

func firstLogo(events []schedule.Event, pick func(schedule.Event) []string) string {
	for _, event := range events {
		for _, value := range pick(event) {
			if logo := textnorm.Normalize(value); logo != "" {
				return logo
			}
		}
	}
	return ""
}
