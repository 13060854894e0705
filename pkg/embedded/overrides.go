package embedded

import (
	"io"
	"sort"
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// Overrides is the per-bundle, per-path directive table.
type Overrides struct {
	// byBundle maps "symbolicName" or "symbolicName_version" to path → action.
	byBundle map[string]map[string]Action
}

// NewOverrides builds a table from key/value pairs.
func NewOverrides(entries map[string]string) (*Overrides, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	o := &Overrides{byBundle: map[string]map[string]Action{}}
	for _, k := range keys {
		if err := o.add(k, entries[k]); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// ParseOverrides reads a table in properties syntax.
func ParseOverrides(r io.Reader) (*Overrides, error) {
	props, err := osgi.ReadProperties(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOverride, err, "read overrides")
	}
	o := &Overrides{byBundle: map[string]map[string]Action{}}
	for _, p := range props {
		if err := o.add(p.Key, p.Value); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidOverride, err, "line %d", p.Line)
		}
	}
	return o, nil
}

func (o *Overrides) add(key, value string) error {
	bundle, path, ok := strings.Cut(key, "/")
	if !ok || bundle == "" || path == "" {
		return errors.New(errors.ErrCodeInvalidOverride, "invalid key %q: expected symbolicName[_version]/path", key)
	}
	if err := errors.ValidateLibraryPath(path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOverride, err, "key %q", key)
	}
	bundle = normalizeBundleKey(bundle)

	a, err := ParseAction(value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOverride, err, "key %q", key)
	}
	if o.byBundle[bundle] == nil {
		o.byBundle[bundle] = map[string]Action{}
	}
	o.byBundle[bundle][path] = a
	return nil
}

// normalizeBundleKey turns the template form "name[_version]" into
// "name_version".
func normalizeBundleKey(s string) string {
	if i := strings.Index(s, "[_"); i > 0 && strings.HasSuffix(s, "]") {
		return s[:i] + "_" + s[i+2:len(s)-1]
	}
	return s
}

// Len returns the number of overrides.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	n := 0
	for _, paths := range o.byBundle {
		n += len(paths)
	}
	return n
}

// Lookup returns the override for a library of the given bundle. A nil
// table has no overrides.
func (o *Overrides) Lookup(symbolicName, version, path string) (Action, bool) {
	if o == nil {
		return Action{}, false
	}
	if a, ok := o.byBundle[symbolicName+"_"+version][path]; ok {
		return a, true
	}
	a, ok := o.byBundle[symbolicName][path]
	return a, ok
}

// Paths returns the sorted library paths the table mentions for a bundle.
func (o *Overrides) Paths(symbolicName, version string) []string {
	if o == nil {
		return nil
	}
	seen := map[string]bool{}
	for _, key := range []string{symbolicName + "_" + version, symbolicName} {
		for p := range o.byBundle[key] {
			seen[p] = true
		}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
