package geo

import (
	"strings"

	"matchday.fit/fixturecast/internal/textnorm"
)

// classifier is one signal source in the classification pipeline. The
// pipeline order encodes the precedence: metadata hint, then country
// groups, then exact/keyword name rules.
type classifier func(name string, rules Rules, candidate *Candidate) (Bucket, bool)

var classifiers = []classifier{
	classifyByHint,
	classifyByCountry,
	classifyByNameRules,
}

// ClassifyBucket resolves a channel name to a bucket. candidate may be nil
// when no metadata exists for the channel.
func ClassifyBucket(name string, rules Rules, candidate *Candidate) Bucket {
	for _, classify := range classifiers {
		if bucket, ok := classify(name, rules, candidate); ok {
			return bucket
		}
	}
	return BucketOther
}

// classifyByHint uses candidate metadata only when the hint is unambiguous.
func classifyByHint(_ string, _ Rules, candidate *Candidate) (Bucket, bool) {
	if candidate == nil {
		return "", false
	}
	distinct := make(map[Bucket]struct{}, len(candidate.BucketHints))
	for _, hint := range candidate.BucketHints {
		value := Bucket(strings.ToLower(hint))
		if ValidBucket(string(value)) {
			distinct[value] = struct{}{}
		}
	}
	if len(distinct) != 1 {
		return "", false
	}
	for bucket := range distinct {
		return bucket, true
	}
	return "", false
}

// classifyByCountry intersects the candidate's countries with the UK and US
// country groups. A channel serving both regions lands in other.
func classifyByCountry(_ string, rules Rules, candidate *Candidate) (Bucket, bool) {
	if candidate == nil || len(candidate.Countries) == 0 {
		return "", false
	}
	inUK := countriesIntersect(candidate.Countries, rules.CountryGroups["uk"])
	inUS := countriesIntersect(candidate.Countries, rules.CountryGroups["us"])
	switch {
	case inUK && inUS:
		return BucketOther, true
	case inUK:
		return BucketUK, true
	case inUS:
		return BucketUS, true
	}
	return "", false
}

func classifyByNameRules(name string, rules Rules, _ *Candidate) (Bucket, bool) {
	if nameMatchesRules(name, rules.Classification["uk"]) {
		return BucketUK, true
	}
	if nameMatchesRules(name, rules.Classification["us"]) {
		return BucketUS, true
	}
	return "", false
}

// PreferredOther reports whether an other-bucket channel outranks generic
// others: flagged candidate, preferred country, or preferred name rules.
func PreferredOther(name string, rules Rules, candidate *Candidate) bool {
	if candidate != nil {
		if candidate.PreferredOther {
			return true
		}
		if countriesIntersect(candidate.Countries, rules.CountryGroups["preferred_other"]) {
			return true
		}
	}
	return nameMatchesRules(name, rules.Classification["preferred_other"])
}

func nameMatchesRules(name string, nameRules NameRules) bool {
	key := textnorm.NormalizeKey(name)
	if key == "" {
		return false
	}

	for _, exact := range nameRules.Exact {
		if key == textnorm.NormalizeKey(exact) {
			return true
		}
	}

	padded := " " + key + " "
	for _, keyword := range nameRules.Keywords {
		token := textnorm.NormalizeKey(keyword)
		if token == "" {
			continue
		}
		if strings.Contains(padded, " "+token+" ") {
			return true
		}
	}
	return false
}

func countriesIntersect(countries, group []string) bool {
	if len(countries) == 0 || len(group) == 0 {
		return false
	}
	groupKeys := make(map[string]struct{}, len(group))
	for _, value := range group {
		if key := textnorm.NormalizeKey(value); key != "" {
			groupKeys[key] = struct{}{}
		}
	}
	for _, value := range countries {
		if _, ok := groupKeys[textnorm.NormalizeKey(value)]; ok {
			return true
		}
	}
	return false
}
