// Package filter matches bundle symbolic names, package names and library
// paths against glob patterns.
//
// Dotted names are matched segment-wise: '*' matches within one segment and
// '**' matches any number of segments, so "org.eclipse.**" matches
// "org.eclipse.core.runtime" but "org.eclipse.*" only matches
// "org.eclipse.core". A leading '!' negates a pattern in a [Set].
package filter

import (
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
)

// MatchName reports whether a dotted name matches a dotted pattern.
func MatchName(pattern, name string) bool {
	ok, err := doublestar.Match(dotsToSlashes(pattern), dotsToSlashes(name))
	return err == nil && ok
}

// MatchPath reports whether a slash-separated path matches a pattern.
func MatchPath(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}

// Validate reports a malformed pattern.
func Validate(pattern string) error {
	p := strings.TrimPrefix(pattern, "!")
	if p == "" {
		return errors.New(errors.ErrCodeInvalidInput, "empty pattern")
	}
	if _, err := doublestar.Match(dotsToSlashes(p), dotsToSlashes(p)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid pattern %q", pattern)
	}
	return nil
}

func dotsToSlashes(s string) string {
	return strings.ReplaceAll(s, ".", "/")
}

// Set is a list of include and exclude name patterns.
type Set struct {
	includes []string
	excludes []string
}

// NewSet parses patterns; those starting with '!' exclude.
func NewSet(patterns []string) (*Set, error) {
	s := &Set{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if err := Validate(p); err != nil {
			return nil, err
		}
		if strings.HasPrefix(p, "!") {
			s.excludes = append(s.excludes, p[1:])
		} else {
			s.includes = append(s.includes, p)
		}
	}
	return s, nil
}

// Empty reports whether the set has no patterns.
func (s *Set) Empty() bool {
	return s == nil || len(s.includes)+len(s.excludes) == 0
}

// Matches reports whether name is included and not excluded. A set without
// include patterns includes everything; a nil set matches all names.
func (s *Set) Matches(name string) bool {
	if s == nil {
		return true
	}
	for _, p := range s.excludes {
		if MatchName(p, name) {
			return false
		}
	}
	if len(s.includes) == 0 {
		return true
	}
	for _, p := range s.includes {
		if MatchName(p, name) {
			return true
		}
	}
	return false
}
