// Package teams holds the canonical team registry and the multi-tier name
// matcher that resolves free-text team names against it.
package teams

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/adler32"
	"io/fs"
	"os"
	"sort"

	"matchday.fit/fixturecast/internal/textnorm"
)

// Team is one canonical registry record. ID is a pure function of Name, so
// rebuilt registries keep stable cross-run identifiers.
type Team struct {
	ID         uint32   `json:"id"`
	APIID      string   `json:"api_id,omitempty"`
	Name       string   `json:"name"`
	ShortName  string   `json:"short_name,omitempty"`
	Alternates []string `json:"alternates,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	Aliases    []string `json:"aliases,omitempty"`
	LogoURL    string   `json:"logo_url,omitempty"`
	BannerURL  string   `json:"banner_url,omitempty"`
	League     string   `json:"league,omitempty"`
	Sport      string   `json:"sport,omitempty"`
	Country    string   `json:"country,omitempty"`
}

// Registry is the team database: canonical records keyed by name plus a
// reverse lookup index from normalized name variants to canonical keys.
type Registry struct {
	Teams map[string]*Team  `json:"teams"`
	Index map[string]string `json:"_index"`
}

// StableID hashes a canonical team name to its registry id.
func StableID(name string) uint32 {
	return adler32.Checksum([]byte(name))
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Teams: make(map[string]*Team),
		Index: make(map[string]string),
	}
}

// LoadRegistry reads a registry file. A missing file yields an empty
// registry; the reverse index is rebuilt when the file lacks one.
func LoadRegistry(path string) (*Registry, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewRegistry(), nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}

	registry := NewRegistry()
	if err := json.Unmarshal(payload, registry); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if registry.Teams == nil {
		registry.Teams = make(map[string]*Team)
	}
	if len(registry.Index) == 0 {
		registry.Index = BuildIndex(registry.Teams)
	}
	return registry, nil
}

// Save writes the registry, index included, to path.
func (r *Registry) Save(path string) error {
	payload, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

// Add inserts a team under its canonical name, assigning the stable id and
// extending the reverse index.
func (r *Registry) Add(team *Team) {
	if team == nil || textnorm.Normalize(team.Name) == "" {
		return
	}
	team.ID = StableID(team.Name)
	r.Teams[team.Name] = team
	indexTeam(r.Index, team.Name, team)
}

// BuildIndex builds the reverse lookup index from scratch. Canonical keys
// always win their own slot; every other variant is first-writer-wins, with
// canonical keys processed in sorted order so rebuilds are deterministic.
// Short names shorter than 2 and keywords shorter than 3 are too ambiguous
// to index.
func BuildIndex(teams map[string]*Team) map[string]string {
	keys := make([]string, 0, len(teams))
	for key := range teams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	index := make(map[string]string, len(teams)*2)
	for _, key := range keys {
		indexTeam(index, key, teams[key])
	}
	return index
}

func indexTeam(index map[string]string, teamKey string, team *Team) {
	if team == nil {
		return
	}
	if norm := textnorm.IndexKey(teamKey); norm != "" {
		index[norm] = teamKey
	}
	claim := func(value string, minLen int) {
		norm := textnorm.IndexKey(value)
		if norm == "" || len(norm) < minLen {
			return
		}
		if _, taken := index[norm]; !taken {
			index[norm] = teamKey
		}
	}

	claim(team.Name, 1)
	for _, alternate := range team.Alternates {
		claim(alternate, 1)
	}
	claim(team.ShortName, 2)
	for _, keyword := range team.Keywords {
		claim(keyword, 3)
	}
	for _, alias := range team.Aliases {
		claim(alias, 1)
	}
}
