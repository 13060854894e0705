package gav

import (
	"sort"
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
)

// Rules is the groupId mapping configuration for one run.
type Rules struct {
	// Mappings maps symbolic names to explicit groupIds.
	Mappings map[string]string `json:"mappings,omitempty"`
	// Prefix is prepended to groupIds derived by the fallback rule.
	Prefix string `json:"prefix,omitempty"`
	// Group3Prefixes are three-segment prefixes that become the groupId of
	// every bundle starting with them.
	Group3Prefixes []string `json:"group3_prefixes,omitempty"`
	// TrimQualifier drops OSGi qualifiers from Maven versions.
	TrimQualifier bool `json:"trim_qualifier,omitempty"`
}

// ParseGroupIDMappings parses "symbolicName=groupId" entries. Each entry must
// contain exactly one '=' with non-empty sides.
func ParseGroupIDMappings(entries []string) (map[string]string, error) {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		parts := strings.Split(e, "=")
		if len(parts) != 2 {
			return nil, errors.New(errors.ErrCodeStrategyConfiguration,
				"invalid groupId mapping %q: expected symbolicName=groupId", e)
		}
		name, group := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if name == "" || group == "" {
			return nil, errors.New(errors.ErrCodeStrategyConfiguration,
				"invalid groupId mapping %q: empty side", e)
		}
		if prev, ok := m[name]; ok && prev != group {
			return nil, errors.New(errors.ErrCodeStrategyConfiguration,
				"conflicting groupId mappings for %s: %s and %s", name, prev, group)
		}
		m[name] = group
	}
	return m, nil
}

// Validate checks the rule set. All failures carry
// errors.ErrCodeStrategyConfiguration.
func (r Rules) Validate() error {
	for name, group := range r.Mappings {
		if err := errors.ValidateSymbolicName(name); err != nil {
			return errors.Wrap(errors.ErrCodeStrategyConfiguration, err, "groupId mapping key %q", name)
		}
		if err := errors.ValidateMavenID("groupId", group); err != nil {
			return errors.Wrap(errors.ErrCodeStrategyConfiguration, err, "groupId mapping for %s", name)
		}
	}

	for _, p := range r.Group3Prefixes {
		segs := strings.Split(p, ".")
		if len(segs) != 3 {
			return errors.New(errors.ErrCodeStrategyConfiguration,
				"group3 prefix %q must have exactly three segments", p)
		}
		for _, s := range segs {
			if s == "" {
				return errors.New(errors.ErrCodeStrategyConfiguration,
					"group3 prefix %q has an empty segment", p)
			}
		}
	}

	if r.Prefix != "" {
		if strings.HasPrefix(r.Prefix, ".") || strings.HasSuffix(r.Prefix, ".") {
			return errors.New(errors.ErrCodeStrategyConfiguration,
				"groupId prefix %q must not start or end with '.'", r.Prefix)
		}
		if err := errors.ValidateMavenID("groupId prefix", r.Prefix); err != nil {
			return errors.Wrap(errors.ErrCodeStrategyConfiguration, err, "groupId prefix")
		}
	}
	return nil
}

// fingerprint is a stable textual form of the rules, used in cache keys.
func (r Rules) fingerprint() string {
	var b strings.Builder
	names := make([]string, 0, len(r.Mappings))
	for n := range r.Mappings {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		b.WriteString(n + "=" + r.Mappings[n] + ";")
	}
	b.WriteString("|" + r.Prefix + "|")
	g3 := append([]string(nil), r.Group3Prefixes...)
	sort.Strings(g3)
	b.WriteString(strings.Join(g3, ","))
	if r.TrimQualifier {
		b.WriteString("|trim")
	}
	return b.String()
}
