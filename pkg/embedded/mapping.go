package embedded

import (
	"sort"
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/filter"
)

// Mapping is one global library mapping: a path pattern, an optional bundle
// symbolic-name pattern, and the action to apply.
type Mapping struct {
	PathPattern   string
	BundlePattern string
	Action        Action
}

// Mappings is an ordered list of library mappings; the first match wins.
type Mappings struct {
	list []Mapping
}

// ParseLibraryMappings parses "path@pattern = action" entries. Mappings
// restricted to a bundle pattern are tried before unrestricted ones, and
// longer path patterns before shorter ones. Two keys that differ only in
// whitespace name the same mapping and are rejected.
func ParseLibraryMappings(entries map[string]string) (*Mappings, error) {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	m := &Mappings{}
	seen := make(map[string]string, len(keys))
	for _, key := range keys {
		value := entries[key]
		path, bundle, _ := strings.Cut(strings.TrimSpace(key), "@")
		path, bundle = strings.TrimSpace(path), strings.TrimSpace(bundle)
		if path == "" {
			return nil, errors.New(errors.ErrCodeInvalidOverride, "library mapping %q: empty path pattern", key)
		}
		norm := path + "@" + bundle
		if prev, ok := seen[norm]; ok {
			return nil, errors.New(errors.ErrCodeInvalidOverride, "library mapping %q duplicates %q", key, prev)
		}
		seen[norm] = key
		if err := filter.Validate(path); err != nil {
			return nil, err
		}
		if bundle != "" {
			if err := filter.Validate(bundle); err != nil {
				return nil, err
			}
		}
		a, err := ParseAction(value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidOverride, err, "library mapping %q", key)
		}
		m.list = append(m.list, Mapping{PathPattern: path, BundlePattern: bundle, Action: a})
	}

	sort.Slice(m.list, func(i, j int) bool {
		a, b := m.list[i], m.list[j]
		if (a.BundlePattern != "") != (b.BundlePattern != "") {
			return a.BundlePattern != ""
		}
		if len(a.PathPattern) != len(b.PathPattern) {
			return len(a.PathPattern) > len(b.PathPattern)
		}
		if a.PathPattern != b.PathPattern {
			return a.PathPattern < b.PathPattern
		}
		return a.BundlePattern < b.BundlePattern
	})
	return m, nil
}

// Len returns the number of mappings.
func (m *Mappings) Len() int {
	if m == nil {
		return 0
	}
	return len(m.list)
}

// Match returns the action of the first mapping matching the bundle and path.
func (m *Mappings) Match(symbolicName, path string) (Action, bool) {
	if m == nil {
		return Action{}, false
	}
	for _, mp := range m.list {
		if mp.BundlePattern != "" && !filter.MatchName(mp.BundlePattern, symbolicName) {
			continue
		}
		if filter.MatchPath(mp.PathPattern, path) {
			return mp.Action, true
		}
	}
	return Action{}, false
}
