// Package textnorm holds the shared name normalization primitives used by
// the identity resolver, the correlator, the geo classifier, and the team
// matcher. Every helper is idempotent.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// Roster qualifiers stripped from the tail of a team name, tried in order.
// Only the trailing-most qualifier is removed; "Chelsea Women U18" cleans to
// "Chelsea Women", not "Chelsea".
var teamSuffixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+U\d+s?$`),
	regexp.MustCompile(`(?i)\s+Women$`),
	regexp.MustCompile(`(?i)\s+Ladies$`),
	regexp.MustCompile(`(?i)\s+\(W\)$`),
	regexp.MustCompile(`(?i)\s+\(M\)$`),
	regexp.MustCompile(`(?i)\s+Reserves$`),
	regexp.MustCompile(`(?i)\s+Youth$`),
	regexp.MustCompile(`(?i)\s+II$`),
	regexp.MustCompile(`(?i)\s+B$`),
}

// Club noise tokens ignored by deep normalization ("Barcelona FC" and
// "FC Barcelona" both index as "barcelona").
var noiseWords = map[string]struct{}{
	"fc":  {},
	"afc": {},
	"sc":  {},
	"cf":  {},
	"fk":  {},
	"bk":  {},
	"sk":  {},
}

var (
	vsTokenRe = regexp.MustCompile(`\s+(?:v|vs)\s+`)
	yearRe    = regexp.MustCompile(`\b20\d{2}\b`)
)

// Normalize collapses internal whitespace and trims.
func Normalize(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// NormalizeKey is Normalize plus case folding, for use as a map key.
func NormalizeKey(value string) string {
	return strings.ToLower(Normalize(value))
}

// IndexKey normalizes a name for reverse-index lookup: lowercase, collapsed
// whitespace, punctuation removed ("A.C. Milan" indexes as "ac milan").
func IndexKey(value string) string {
	return Normalize(removePunct(NormalizeKey(value)))
}

// DeepNormalize is IndexKey with club noise tokens removed, used by the
// deep-match tier of the team matcher.
func DeepNormalize(value string) string {
	tokens := strings.Fields(IndexKey(value))
	kept := tokens[:0]
	for _, token := range tokens {
		if _, noisy := noiseWords[token]; noisy {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// CleanTeamName removes the trailing roster qualifier (U18, Women, (W),
// Reserves, ...) from a team name, at most once.
func CleanTeamName(name string) string {
	cleaned := Normalize(name)
	for _, pattern := range teamSuffixPatterns {
		if stripped := pattern.ReplaceAllString(cleaned, ""); stripped != cleaned {
			return strings.TrimSpace(stripped)
		}
	}
	return cleaned
}

// CanonicalEventName standardizes an event title for cross-source matching:
// lowercase, "&" spelled out, (w)/(m) markers expanded, v/vs separators
// unified, four-digit years and punctuation dropped.
func CanonicalEventName(value string) string {
	text := NormalizeKey(value)
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "&", " and ")
	text = strings.ReplaceAll(text, "(w)", " women ")
	text = strings.ReplaceAll(text, "(m)", " men ")
	text = vsTokenRe.ReplaceAllString(text, " vs ")
	text = yearRe.ReplaceAllString(text, " ")
	return Normalize(stripPunct(text))
}

// DedupeFold removes case-insensitive duplicates while preserving the order
// and original casing of the first occurrence. Blank entries are dropped.
func DedupeFold(values []string) []string {
	output := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		value := Normalize(raw)
		if value == "" {
			continue
		}
		key := strings.ToLower(value)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		output = append(output, value)
	}
	return output
}

// removePunct deletes punctuation outright; stripPunct turns it into
// spaces. Index keys want the former, canonical event names the latter.
func removePunct(value string) string {
	return mapPunct(value, -1)
}

func stripPunct(value string) string {
	return mapPunct(value, ' ')
}

func mapPunct(value string, replacement rune) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			return r
		}
		return replacement
	}, value)
}
