package geo

import (
	"strconv"
	"strings"

	"matchday.fit/fixturecast/internal/textnorm"
)

// MappedChannel is a channel entry after team/ID mapping. Raw keeps the
// original "Name, id" form for output; ID is nil for unmapped channels.
type MappedChannel struct {
	Name string
	ID   *int64
	Raw  string
}

// SelectionStats counts what the quota selector kept for one event.
type SelectionStats struct {
	CandidatesMapped       int `json:"candidates_mapped"`
	SelectedTotal          int `json:"selected_total"`
	SelectedUK             int `json:"selected_uk"`
	SelectedUS             int `json:"selected_us"`
	SelectedOther          int `json:"selected_other"`
	SelectedOtherPreferred int `json:"selected_other_preferred"`
}

// SplitMappedEntry parses a "Channel Name, 123" or "Channel Name, null"
// entry. Entries without a trailing id segment map with a nil ID.
func SplitMappedEntry(raw string) MappedChannel {
	entry := textnorm.Normalize(raw)
	channel := MappedChannel{Name: entry, Raw: entry}

	cut := strings.LastIndex(entry, ",")
	if cut < 0 {
		return channel
	}
	suffix := strings.TrimSpace(entry[cut+1:])
	if strings.EqualFold(suffix, "null") {
		channel.Name = textnorm.Normalize(entry[:cut])
		return channel
	}
	if id, err := strconv.ParseInt(suffix, 10, 64); err == nil {
		channel.Name = textnorm.Normalize(entry[:cut])
		channel.ID = &id
		return channel
	}
	return channel
}

// Select applies the geo quotas to an event's mapped channels: up to the
// UK and US per-bucket limits, then preferred-other and other channels
// until the total cap. Order within each bucket follows input order, and
// entries without a mapped ID are dropped before bucketing.
func Select(entries []MappedChannel, rules Rules, index map[string]Candidate) ([]MappedChannel, SelectionStats) {
	stats := SelectionStats{}

	var uk, us, preferred, other []MappedChannel
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		name := textnorm.Normalize(entry.Name)
		if name == "" || entry.ID == nil {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		stats.CandidatesMapped++

		var candidate *Candidate
		if index != nil {
			if found, ok := index[key]; ok {
				candidate = &found
			}
		}
		switch ClassifyBucket(name, rules, candidate) {
		case BucketUK:
			uk = append(uk, entry)
		case BucketUS:
			us = append(us, entry)
		default:
			if PreferredOther(name, rules, candidate) {
				preferred = append(preferred, entry)
			} else {
				other = append(other, entry)
			}
		}
	}

	limit := func(bucket []MappedChannel, max int) []MappedChannel {
		if max < 0 {
			max = 0
		}
		if len(bucket) > max {
			return bucket[:max]
		}
		return bucket
	}

	selected := make([]MappedChannel, 0, rules.MaxEventChannels)
	selected = append(selected, limit(uk, rules.MaxPerBucket.UK)...)
	stats.SelectedUK = len(selected)
	selected = append(selected, limit(us, rules.MaxPerBucket.US)...)
	stats.SelectedUS = len(selected) - stats.SelectedUK

	remaining := rules.MaxEventChannels - len(selected)
	taken := limit(preferred, remaining)
	selected = append(selected, taken...)
	stats.SelectedOtherPreferred = len(taken)
	remaining -= len(taken)
	selected = append(selected, limit(other, remaining)...)

	if len(selected) > rules.MaxEventChannels {
		selected = selected[:rules.MaxEventChannels]
	}
	stats.SelectedTotal = len(selected)
	stats.SelectedOther = stats.SelectedTotal - stats.SelectedUK - stats.SelectedUS
	return selected, stats
}

// DedupeChannelNames folds a raw channel-name list case-insensitively,
// preserving first-seen order and casing.
func DedupeChannelNames(names []string) []string {
	return textnorm.DedupeFold(names)
}
