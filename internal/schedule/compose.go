package schedule

import (
	"sort"

	"matchday.fit/fixturecast/internal/globaltime"
	"matchday.fit/fixturecast/internal/textnorm"
)

// ComposedSource labels the output of Compose.
const ComposedSource = "composed:primary-soccer+secondary-non-soccer"

// Compose assembles the final weekly schedule: soccer events come from the
// primary payload, everything else from the enriched secondary payload.
// Events whose channel list filters down to empty are dropped, and each
// day is deduplicated by event key and sorted.
func Compose(primary, secondary Payload) Payload {
	primaryByDate := indexDays(primary)
	secondaryByDate := indexDays(secondary)

	dates := make([]string, 0, len(primaryByDate)+len(secondaryByDate))
	seenDates := make(map[string]struct{})
	for date := range primaryByDate {
		seenDates[date] = struct{}{}
		dates = append(dates, date)
	}
	for date := range secondaryByDate {
		if _, ok := seenDates[date]; !ok {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	composition := Composition{
		SoccerFrom:    primary.Source,
		NonSoccerFrom: secondary.Source,
	}

	days := make([]Day, 0, len(dates))
	for _, date := range dates {
		seen := make(map[string]struct{})
		var events []Event

		for _, raw := range primaryByDate[date].Events {
			if !IsPrimarySoccerEvent(raw) {
				continue
			}
			event, ok := usableEvent(raw)
			if !ok {
				continue
			}
			key := EventKey(event)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			events = append(events, event)
			composition.SoccerEvents++
		}

		for _, raw := range secondaryByDate[date].Events {
			if IsSoccerSport(raw.Sport) {
				continue
			}
			event, ok := usableEvent(raw)
			if !ok {
				continue
			}
			key := EventKey(event)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			events = append(events, event)
			composition.NonSoccerEvents++
		}

		label := DayName(date)
		if label == "" {
			label = textnorm.Normalize(primaryByDate[date].Day)
		}
		days = append(days, Day{Date: date, Day: label, Events: SortEvents(events)})
	}
	composition.Days = len(days)

	return Payload{
		GeneratedAt: globaltime.UTC().Format("2006-01-02T15:04:05Z"),
		Source:      ComposedSource,
		Schedule:    days,
		Composition: &composition,
	}
}

func indexDays(payload Payload) map[string]Day {
	byDate := make(map[string]Day, len(payload.Schedule))
	for _, day := range payload.Schedule {
		date := textnorm.Normalize(day.Date)
		if date == "" {
			continue
		}
		byDate[date] = day
	}
	return byDate
}

// usableEvent filters an event's channels and drops it when nothing
// watchable remains.
func usableEvent(raw Event) (Event, bool) {
	event := raw
	event.Channels = CleanChannels(raw.Channels)
	if len(event.Channels) == 0 {
		return Event{}, false
	}
	return event, true
}
