package geo

import (
	"strings"

	"matchday.fit/fixturecast/internal/textnorm"
)

// Candidate is per-channel metadata collected across per-profile scraping
// runs. The classifier consults it before falling back to name heuristics.
type Candidate struct {
	Name           string   `json:"name"`
	Profiles       []string `json:"profiles"`
	BucketHints    []string `json:"bucket_hints"`
	PreferredOther bool     `json:"preferred_other"`
	Countries      []string `json:"countries"`
}

// BuildCandidates produces candidate records for a profile's channel list.
// countriesByName may be keyed by exact or casefolded channel name.
func BuildCandidates(channels []string, profile Profile, countriesByName map[string][]string) []Candidate {
	hint := textnorm.NormalizeKey(profile.BucketHint)
	if !ValidBucket(hint) {
		hint = ""
	}

	candidates := make([]Candidate, 0, len(channels))
	for _, name := range textnorm.DedupeFold(channels) {
		var countries []string
		if countriesByName != nil {
			raw, ok := countriesByName[name]
			if !ok {
				raw = countriesByName[strings.ToLower(name)]
			}
			countries = textnorm.DedupeFold(raw)
		}

		candidate := Candidate{
			Name:           name,
			PreferredOther: profile.PreferredOther,
			Countries:      countries,
		}
		if profile.Name != "" {
			candidate.Profiles = []string{profile.Name}
		}
		if hint != "" {
			candidate.BucketHints = []string{hint}
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// MergeCandidates folds incoming candidate records into existing ones,
// keyed case-insensitively by name. Profiles, hints, and countries union;
// preferred_other ORs.
func MergeCandidates(existing, incoming []Candidate) []Candidate {
	merged := make(map[string]*Candidate)
	ordered := make([]string, 0, len(existing)+len(incoming))

	ingest := func(raw Candidate) {
		candidate := normalizeCandidate(raw)
		if candidate == nil {
			return
		}
		key := textnorm.NormalizeKey(candidate.Name)
		node, ok := merged[key]
		if !ok {
			copied := *candidate
			merged[key] = &copied
			ordered = append(ordered, key)
			return
		}
		node.Profiles = textnorm.DedupeFold(append(node.Profiles, candidate.Profiles...))
		node.BucketHints = textnorm.DedupeFold(append(node.BucketHints, candidate.BucketHints...))
		node.PreferredOther = node.PreferredOther || candidate.PreferredOther
		node.Countries = textnorm.DedupeFold(append(node.Countries, candidate.Countries...))
	}

	for _, item := range existing {
		ingest(item)
	}
	for _, item := range incoming {
		ingest(item)
	}

	output := make([]Candidate, 0, len(ordered))
	for _, key := range ordered {
		output = append(output, *merged[key])
	}
	return output
}

// IndexCandidates merges candidates and keys them by casefolded name for
// classifier lookup.
func IndexCandidates(candidates []Candidate) map[string]Candidate {
	index := make(map[string]Candidate)
	for _, candidate := range MergeCandidates(nil, candidates) {
		index[textnorm.NormalizeKey(candidate.Name)] = candidate
	}
	return index
}

func normalizeCandidate(raw Candidate) *Candidate {
	name := textnorm.Normalize(raw.Name)
	if name == "" {
		return nil
	}

	hints := make([]string, 0, len(raw.BucketHints))
	for _, hint := range raw.BucketHints {
		value := textnorm.NormalizeKey(hint)
		if ValidBucket(value) {
			hints = append(hints, value)
		}
	}

	return &Candidate{
		Name:           name,
		Profiles:       textnorm.DedupeFold(raw.Profiles),
		BucketHints:    textnorm.DedupeFold(hints),
		PreferredOther: raw.PreferredOther,
		Countries:      textnorm.DedupeFold(raw.Countries),
	}
}
