package teams

import (
	"sort"
	"strings"
	"sync"

	"matchday.fit/fixturecast/internal/textnorm"
)

// DefaultFuzzyThreshold is the minimum similarity ratio the fuzzy tier
// accepts. It is a tuning knob, overridable through config.
const DefaultFuzzyThreshold = 0.90

// minSportPoolSize widens a sport-scoped fuzzy candidate pool to the whole
// registry when the sport has too few teams to match against.
const minSportPoolSize = 10

// sportMap translates schedule sport labels to the registry's vocabulary.
var sportMap = map[string]string{
	"football":            "Soccer",
	"soccer":              "Soccer",
	"basketball":          "Basketball",
	"ice-hockey":          "Ice Hockey",
	"ice hockey":          "Ice Hockey",
	"rugby":               "Rugby",
	"rugby union":         "Rugby",
	"rugby league":        "Rugby",
	"cricket":             "Cricket",
	"tennis":              "Tennis",
	"golf":                "Golf",
	"american football":   "American Football",
	"nfl":                 "American Football",
	"baseball":            "Baseball",
	"motorsport":          "Motorsport",
	"boxing":              "Boxing",
	"mma":                 "MMA",
	"handball":            "Handball",
	"volleyball":          "Volleyball",
	"australian football": "Australian Football",
	"esports":             "Esports",
	"darts":               "Darts",
	"snooker":             "Snooker",
	"cycling":             "Cycling",
}

// MapSport translates a schedule sport label to the registry's sport name,
// passing unknown labels through unchanged.
func MapSport(sport string) string {
	if sport == "" {
		return ""
	}
	if mapped, ok := sportMap[strings.ToLower(sport)]; ok {
		return mapped
	}
	return sport
}

type query struct {
	raw     string
	cleaned string
	norm    string
	sport   string
}

type resolver func(query) *Team

// Matcher resolves free-text team names against a registry through
// escalating tiers: exact key, reverse index, deep-normalized index,
// hyphen/space variants, then sport-scoped fuzzy matching. Tiers 3-5 learn
// the resolved name as an alias; Find is safe for concurrent use.
type Matcher struct {
	registry  *Registry
	threshold float64

	sportTeams map[string][]string
	deepIndex  map[string]string

	// mu serializes all registry and index access. Learning mutates the
	// index mid-lookup, so the read tiers take the same lock as LearnAlias.
	mu      sync.Mutex
	learned int
}

// NewMatcher builds a matcher over registry. A non-positive threshold
// falls back to DefaultFuzzyThreshold.
func NewMatcher(registry *Registry, threshold float64) *Matcher {
	if registry == nil {
		registry = NewRegistry()
	}
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	matcher := &Matcher{
		registry:   registry,
		threshold:  threshold,
		sportTeams: make(map[string][]string),
		deepIndex:  make(map[string]string),
	}

	keys := make([]string, 0, len(registry.Teams))
	for key := range registry.Teams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		team := registry.Teams[key]
		matcher.sportTeams[team.Sport] = append(matcher.sportTeams[team.Sport], key)
		if deep := textnorm.DeepNormalize(key); deep != "" {
			if _, taken := matcher.deepIndex[deep]; !taken {
				matcher.deepIndex[deep] = key
			}
		}
	}
	return matcher
}

// Find resolves a team name, trying each tier in order. It returns nil
// when no tier produces a confident match.
func (m *Matcher) Find(name, sport string) *Team {
	if textnorm.Normalize(name) == "" {
		return nil
	}
	q := query{
		raw:     name,
		cleaned: textnorm.CleanTeamName(name),
		sport:   sport,
	}
	q.norm = textnorm.IndexKey(q.cleaned)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tier := range []resolver{
		m.exactMatch,
		m.indexMatch,
		m.deepMatch,
		m.variantMatch,
		m.fuzzyMatch,
	} {
		if team := tier(q); team != nil {
			return team
		}
	}
	return nil
}

func (m *Matcher) exactMatch(q query) *Team {
	return m.registry.Teams[q.cleaned]
}

func (m *Matcher) indexMatch(q query) *Team {
	if team := m.lookupIndex(q.norm); team != nil {
		return team
	}
	// The raw name may be indexed even when the cleaned one is not.
	if origNorm := textnorm.IndexKey(q.raw); origNorm != q.norm {
		return m.lookupIndex(origNorm)
	}
	return nil
}

func (m *Matcher) deepMatch(q query) *Team {
	deep := textnorm.DeepNormalize(q.cleaned)
	if deep == "" {
		return nil
	}
	teamKey, ok := m.deepIndex[deep]
	if !ok {
		return nil
	}
	team := m.registry.Teams[teamKey]
	if team != nil {
		m.learnAlias(teamKey, q.cleaned)
	}
	return team
}

// variantMatch retries the index tiers with hyphens and spaces swapped, so
// "West-Ham" finds "West Ham" and vice versa.
func (m *Matcher) variantMatch(q query) *Team {
	for _, variant := range hyphenVariants(q.cleaned) {
		if team := m.lookupIndex(textnorm.IndexKey(variant)); team != nil {
			m.learnAlias(team.Name, q.cleaned)
			return team
		}
		if deep := textnorm.DeepNormalize(variant); deep != "" {
			if teamKey, ok := m.deepIndex[deep]; ok {
				if team := m.registry.Teams[teamKey]; team != nil {
					m.learnAlias(teamKey, q.cleaned)
					return team
				}
			}
		}
	}
	return nil
}

func (m *Matcher) fuzzyMatch(q query) *Team {
	if q.norm == "" {
		return nil
	}
	bestScore := 0.0
	bestKey := ""
	for _, candidateKey := range m.fuzzyCandidates(MapSport(q.sport)) {
		score := similarityRatio(q.norm, textnorm.IndexKey(candidateKey))
		// Strict inequality keeps the first-seen candidate on ties.
		if score > bestScore {
			bestScore = score
			bestKey = candidateKey
		}
	}
	if bestKey == "" || bestScore < m.threshold {
		return nil
	}
	m.learnAlias(bestKey, q.cleaned)
	return m.registry.Teams[bestKey]
}

// fuzzyCandidates scopes the candidate pool to the mapped sport, widening
// to every team when the sport's pool is too small.
func (m *Matcher) fuzzyCandidates(sport string) []string {
	if sport != "" {
		if pool := m.sportTeams[sport]; len(pool) >= minSportPoolSize {
			return pool
		}
	}
	keys := make([]string, 0, len(m.registry.Teams))
	for key := range m.registry.Teams {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (m *Matcher) lookupIndex(norm string) *Team {
	if norm == "" {
		return nil
	}
	teamKey, ok := m.registry.Index[norm]
	if !ok {
		return nil
	}
	return m.registry.Teams[teamKey]
}

// LearnAlias records alias as a name variant of teamKey: appended to the
// team's alias list and inserted into the live index so later lookups hit
// the index tier directly. Aliases equal to the canonical name or already
// known are ignored.
func (m *Matcher) LearnAlias(teamKey, alias string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.learnAlias(teamKey, alias)
}

// learnAlias assumes m.mu is held.
func (m *Matcher) learnAlias(teamKey, alias string) {
	team, ok := m.registry.Teams[teamKey]
	if !ok {
		return
	}
	normAlias := textnorm.NormalizeKey(alias)
	if normAlias == "" || normAlias == strings.ToLower(teamKey) {
		return
	}
	for _, known := range team.Aliases {
		if strings.ToLower(known) == normAlias {
			return
		}
	}

	team.Aliases = append(team.Aliases, normAlias)
	if indexKey := textnorm.IndexKey(alias); indexKey != "" {
		if _, taken := m.registry.Index[indexKey]; !taken {
			m.registry.Index[indexKey] = teamKey
		}
	}
	m.learned++
}

// LearnedCount reports how many aliases this matcher has learned since the
// last flush.
func (m *Matcher) LearnedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.learned
}

// Flush persists the registry, learned aliases included, when anything was
// learned. Matching never saves implicitly.
func (m *Matcher) Flush(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.learned == 0 {
		return nil
	}
	if err := m.registry.Save(path); err != nil {
		return err
	}
	m.learned = 0
	return nil
}

func hyphenVariants(name string) []string {
	var variants []string
	if strings.Contains(name, " ") {
		variants = append(variants, strings.ReplaceAll(name, " ", "-"))
	}
	if strings.Contains(name, "-") {
		variants = append(variants, strings.ReplaceAll(name, "-", " "))
	}
	return variants
}
