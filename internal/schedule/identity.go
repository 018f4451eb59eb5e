package schedule

import (
	"net/url"
	"regexp"
	"strings"

	"matchday.fit/fixturecast/internal/textnorm"
)

const sourceBaseURL = "https://www.livesporttv.com"

// matchTokenRe accepts the opaque per-match slugs the primary source embeds
// in match URLs and data attributes.
var matchTokenRe = regexp.MustCompile(`^[A-Za-z0-9_-]{4,64}$`)

// NormalizeSiteURL resolves a possibly-relative source URL to an absolute
// https URL with a re-encoded path and no trailing slash. The fragment is
// dropped unless keepFragment is set.
func NormalizeSiteURL(raw string, keepFragment bool) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(value, "//"):
		value = "https:" + value
	case strings.HasPrefix(value, "/"):
		value = sourceBaseURL + value
	default:
		if parsed, err := url.Parse(value); err != nil || parsed.Scheme == "" {
			value = sourceBaseURL + "/" + value
		}
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return ""
	}
	if parsed.Scheme == "http" || parsed.Scheme == "https" {
		parsed.Scheme = "https"
	}
	// Drop the raw path so serialization re-encodes it uniformly.
	parsed.RawPath = ""
	if !keepFragment {
		parsed.Fragment = ""
		parsed.RawFragment = ""
	}
	return strings.TrimRight(parsed.String(), "/")
}

// CanonicalizeMatchURL reduces a match URL to its canonical form: when an
// identity token appears in the fragment or the last path segment, the last
// segment is rewritten to that token and the fragment is dropped. Two URL
// spellings of the same match canonicalize identically.
func CanonicalizeMatchURL(raw string) string {
	normalized := NormalizeSiteURL(raw, true)
	if normalized == "" {
		return ""
	}
	parsed, err := url.Parse(normalized)
	if err != nil {
		return ""
	}

	parts := pathParts(parsed.Path)
	token := ""
	if fragment := textnorm.Normalize(parsed.Fragment); matchTokenRe.MatchString(fragment) {
		token = fragment
	}
	if token == "" && len(parts) > 0 {
		if last := textnorm.Normalize(parts[len(parts)-1]); matchTokenRe.MatchString(last) {
			token = last
		}
	}
	if token != "" && len(parts) > 0 {
		parts[len(parts)-1] = token
		parsed.Path = "/" + strings.Join(parts, "/")
		parsed.RawPath = ""
	}
	parsed.Fragment = ""
	parsed.RawFragment = ""
	return strings.TrimRight(parsed.String(), "/")
}

// MatchIdentityToken extracts the strongest identity signal an event
// carries: the explicit match key, else the token from its canonical match
// URL, else empty.
func MatchIdentityToken(event Event) string {
	if key := textnorm.Normalize(event.MatchKey); key != "" {
		return strings.ToLower(key)
	}
	matchURL := CanonicalizeMatchURL(event.MatchURL)
	if matchURL == "" {
		return ""
	}
	parsed, err := url.Parse(matchURL)
	if err != nil {
		return ""
	}
	parts := pathParts(parsed.Path)
	if len(parts) == 0 {
		return ""
	}
	if tail := textnorm.Normalize(parts[len(parts)-1]); matchTokenRe.MatchString(tail) {
		return strings.ToLower(tail)
	}
	return ""
}

// IdentityKey computes the dedup identity of an event. Keys are tagged by
// the signal that produced them so a token key can never collide with a
// team or name key.
func IdentityKey(event Event) string {
	startISO := textnorm.NormalizeKey(event.StartTimeISO)
	sport := textnorm.NormalizeKey(event.Sport)

	if token := MatchIdentityToken(event); token != "" {
		return join("match", token, startISO)
	}

	home := textnorm.NormalizeKey(event.HomeTeam)
	away := textnorm.NormalizeKey(event.AwayTeam)
	if home != "" || away != "" {
		return join("teams", home, away, startISO, sport)
	}

	name := textnorm.NormalizeKey(event.Name)
	competition := textnorm.NormalizeKey(event.Competition)
	return join("name", name, startISO, sport, competition)
}

// DedupeEvents collapses events sharing an identity key, folding duplicates
// into the first occurrence with Merge. Order follows first appearance; the
// second return is the number of events folded away.
func DedupeEvents(events []Event) ([]Event, int) {
	byKey := make(map[string]int, len(events))
	output := make([]Event, 0, len(events))
	collapsed := 0

	for _, event := range events {
		key := IdentityKey(event)
		if at, ok := byKey[key]; ok {
			output[at] = Merge(output[at], event)
			collapsed++
			continue
		}
		byKey[key] = len(output)
		output = append(output, event)
	}
	return output, collapsed
}

func pathParts(path string) []string {
	parts := make([]string, 0, 4)
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func join(parts ...string) string {
	return strings.Join(parts, "|")
}
