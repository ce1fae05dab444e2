// Package jpqlconfig loads two independent, optional configuration
// artifacts: named sort profiles from YAML, and a
// CUE-validated vendor-function allow-list. Neither is required for
// the façade to operate correctly; both are ambient scaffolding the
// CLI opts into via flags.
package jpqlconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/catalystquery/jpqlrw/internal/jpqlwalk"
)

// SortEntry is one YAML-encoded sort order, mirroring jpqlwalk.SortOrder
// with struct tags for unmarshaling.
type SortEntry struct {
	Property   string `yaml:"property"`
	Direction  string `yaml:"direction"`   // "ASC" or "DESC"
	IgnoreCase bool   `yaml:"ignore_case"`
}

// ToSortOrder converts a SortEntry into a jpqlwalk.SortOrder.
func (e SortEntry) ToSortOrder() jpqlwalk.SortOrder {
	return jpqlwalk.SortOrder{
		Property:   e.Property,
		Descending: isDescending(e.Direction),
		IgnoreCase: e.IgnoreCase,
	}
}

func isDescending(direction string) bool {
	switch direction {
	case "DESC", "desc":
		return true
	default:
		return false
	}
}

// ProfileDocument is the top-level shape of a sort-profile YAML file:
// a map of profile name to its ordered sort entries.
type ProfileDocument struct {
	Profiles map[string][]SortEntry `yaml:"profiles"`
}

// ProfileSet is a loaded, validated collection of named sort profiles.
type ProfileSet struct {
	profiles map[string][]jpqlwalk.SortOrder
}

// LoadProfiles reads and parses a sort-profile YAML file at path.
func LoadProfiles(path string) (*ProfileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jpqlconfig: read profiles %s: %w", path, err)
	}
	return ParseProfiles(data)
}

// ParseProfiles parses sort-profile YAML from an in-memory buffer.
func ParseProfiles(data []byte) (*ProfileSet, error) {
	var doc ProfileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jpqlconfig: parse profiles: %w", err)
	}

	set := &ProfileSet{profiles: make(map[string][]jpqlwalk.SortOrder, len(doc.Profiles))}
	for name, entries := range doc.Profiles {
		if len(entries) == 0 {
			return nil, fmt.Errorf("jpqlconfig: profile %q has no sort entries", name)
		}
		orders := make([]jpqlwalk.SortOrder, len(entries))
		for i, e := range entries {
			if e.Property == "" {
				return nil, fmt.Errorf("jpqlconfig: profile %q entry %d: missing property", name, i)
			}
			orders[i] = e.ToSortOrder()
		}
		set.profiles[name] = orders
	}
	return set, nil
}

// LoadSortList reads and parses an ad hoc sort-order YAML file at
// path: a bare sequence of entries, with no profiles: wrapper and no
// name to look one up by. This is the form --sort-file takes when
// --profile is not given.
func LoadSortList(path string) ([]jpqlwalk.SortOrder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jpqlconfig: read sort list %s: %w", path, err)
	}
	return ParseSortList(data)
}

// ParseSortList parses an ad hoc sort-order YAML sequence from an
// in-memory buffer.
func ParseSortList(data []byte) ([]jpqlwalk.SortOrder, error) {
	var entries []SortEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("jpqlconfig: parse sort list: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("jpqlconfig: sort list has no entries")
	}
	orders := make([]jpqlwalk.SortOrder, len(entries))
	for i, e := range entries {
		if e.Property == "" {
			return nil, fmt.Errorf("jpqlconfig: sort list entry %d: missing property", i)
		}
		orders[i] = e.ToSortOrder()
	}
	return orders, nil
}

// Lookup returns the named profile's sort orders, or false if no such
// profile was loaded.
func (s *ProfileSet) Lookup(name string) ([]jpqlwalk.SortOrder, bool) {
	orders, ok := s.profiles[name]
	return orders, ok
}

// Names returns every loaded profile name.
func (s *ProfileSet) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	return names
}
