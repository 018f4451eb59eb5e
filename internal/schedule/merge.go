package schedule

import (
	"net/url"
	"regexp"
	"strings"

	"matchday.fit/fixturecast/internal/geo"
	"matchday.fit/fixturecast/internal/textnorm"
)

var (
	logoPlaceholderRe = regexp.MustCompile(`(?i)(?:^|[/_-])(no-logo|default)(?:[._/-]|$)`)
	teamLogoWidthRe   = regexp.MustCompile(`(?i)/resize/width/20(/uploads/teams/)`)
)

// NormalizeLogoURL resolves a logo URL and patches the 20px team crest
// variant up to the 40px one.
func NormalizeLogoURL(raw string) string {
	normalized := NormalizeSiteURL(raw, false)
	if normalized == "" {
		return ""
	}
	patched := teamLogoWidthRe.ReplaceAllString(normalized, "/resize/width/40$1")
	return strings.TrimRight(patched, "/")
}

// UsableLogoURL rejects empty URLs, placeholder art, and paths without a
// file extension.
func UsableLogoURL(raw string) bool {
	normalized := NormalizeLogoURL(raw)
	if normalized == "" {
		return false
	}
	if logoPlaceholderRe.MatchString(normalized) {
		return false
	}
	parsed, err := url.Parse(normalized)
	if err != nil {
		return false
	}
	path := parsed.Path
	filename := strings.TrimSpace(path[strings.LastIndex(path, "/")+1:])
	return filename != "" && strings.Contains(filename, ".")
}

// LogoQualityScore ranks a logo URL. Resized variants beat raw uploads,
// placeholders sink below everything.
func LogoQualityScore(raw string) int {
	normalized := NormalizeLogoURL(raw)
	if normalized == "" {
		return -100
	}
	lowered := strings.ToLower(normalized)
	score := 0
	if strings.Contains(lowered, "/resize/") {
		score += 4
	}
	if strings.Contains(lowered, "?") {
		score++
	}
	if strings.Contains(lowered, "/uploads/") && !strings.Contains(lowered, "/resize/") {
		score--
	}
	if logoPlaceholderRe.MatchString(lowered) {
		score -= 5
	}
	return score
}

// ChoosePreferredLogo keeps the higher-scoring of two logo URLs, with the
// existing one winning ties. An unusable winner falls back to the other
// side; two unusable URLs yield empty.
func ChoosePreferredLogo(existing, incoming string) string {
	existingURL := NormalizeLogoURL(existing)
	incomingURL := NormalizeLogoURL(incoming)

	switch {
	case existingURL == "" && incomingURL == "":
		return ""
	case existingURL == "":
		if UsableLogoURL(incomingURL) {
			return incomingURL
		}
		return ""
	case incomingURL == "":
		if UsableLogoURL(existingURL) {
			return existingURL
		}
		return ""
	}

	chosen, other := existingURL, incomingURL
	if LogoQualityScore(incomingURL) > LogoQualityScore(existingURL) {
		chosen, other = incomingURL, existingURL
	}
	if UsableLogoURL(chosen) {
		return chosen
	}
	if UsableLogoURL(other) {
		return other
	}
	return ""
}

// Merge folds an incoming duplicate into an existing event. Channel lists
// and candidates union, logos keep the better URL, special ORs, and scalar
// fields backfill only where the existing value is blank. Merging is
// idempotent and insensitive to duplicate grouping order.
func Merge(existing, incoming Event) Event {
	merged := existing

	merged.ChannelCandidates = geo.MergeCandidates(existing.ChannelCandidates, incoming.ChannelCandidates)
	candidateNames := make([]string, 0, len(merged.ChannelCandidates))
	for _, candidate := range merged.ChannelCandidates {
		candidateNames = append(candidateNames, candidate.Name)
	}
	channels := append(append(append([]string{}, existing.Channels...), incoming.Channels...), candidateNames...)
	merged.Channels = textnorm.DedupeFold(channels)

	merged.HomeTeamLogo = ChoosePreferredLogo(existing.HomeTeamLogo, incoming.HomeTeamLogo)
	merged.AwayTeamLogo = ChoosePreferredLogo(existing.AwayTeamLogo, incoming.AwayTeamLogo)
	merged.Special = existing.Special || incoming.Special

	backfill := []struct {
		dst *string
		src string
	}{
		{&merged.Name, incoming.Name},
		{&merged.StartTimeISO, incoming.StartTimeISO},
		{&merged.Time, incoming.Time},
		{&merged.Sport, incoming.Sport},
		{&merged.Competition, incoming.Competition},
		{&merged.Country, incoming.Country},
		{&merged.HomeTeam, incoming.HomeTeam},
		{&merged.AwayTeam, incoming.AwayTeam},
		{&merged.Status, incoming.Status},
		{&merged.ScoreHome, incoming.ScoreHome},
		{&merged.ScoreAway, incoming.ScoreAway},
		{&merged.MatchKey, incoming.MatchKey},
		{&merged.MatchFxID, incoming.MatchFxID},
		{&merged.CompetitionURL, incoming.CompetitionURL},
		{&merged.SportID, incoming.SportID},
		{&merged.SportLogo, incoming.SportLogo},
		{&merged.CompetitionLogo, incoming.CompetitionLogo},
	}
	for _, field := range backfill {
		if textnorm.Normalize(*field.dst) == "" {
			*field.dst = field.src
		}
	}
	if merged.HomeTeamID == nil {
		merged.HomeTeamID = incoming.HomeTeamID
	}
	if merged.AwayTeamID == nil {
		merged.AwayTeamID = incoming.AwayTeamID
	}

	switch {
	case CanonicalizeMatchURL(existing.MatchURL) != "":
		merged.MatchURL = CanonicalizeMatchURL(existing.MatchURL)
	case CanonicalizeMatchURL(incoming.MatchURL) != "":
		merged.MatchURL = CanonicalizeMatchURL(incoming.MatchURL)
	default:
		merged.MatchURL = ""
	}
	return merged
}
