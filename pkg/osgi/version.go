package osgi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
)

// Version is an OSGi version: major.minor.micro with an optional qualifier.
type Version struct {
	Major     int
	Minor     int
	Micro     int
	Qualifier string
}

// Empty is the version used when a bundle declares none.
var Empty = Version{}

// ParseVersion parses an OSGi version string. An empty string yields 0.0.0.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty, nil
	}

	parts := strings.SplitN(s, ".", 4)
	var nums [3]int
	for i, p := range parts {
		if i == 3 {
			break
		}
		n, err := parseSegment(p)
		if err != nil {
			return Version{}, errors.Wrap(errors.ErrCodeMalformedVersion, err, "invalid version %q", s)
		}
		nums[i] = n
	}

	v := Version{Major: nums[0], Minor: nums[1], Micro: nums[2]}
	if len(parts) == 4 {
		q := parts[3]
		if q == "" {
			return Version{}, errors.New(errors.ErrCodeMalformedVersion, "invalid version %q: empty qualifier", s)
		}
		for _, r := range q {
			if !isQualifierRune(r) {
				return Version{}, errors.New(errors.ErrCodeMalformedVersion, "invalid version %q: bad qualifier character %q", s, r)
			}
		}
		v.Qualifier = q
	}
	return v, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseSegment(p string) (int, error) {
	if p == "" {
		return 0, fmt.Errorf("empty segment")
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric segment %q", p)
		}
	}
	return strconv.Atoi(p)
}

func isQualifierRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}

// String returns the canonical OSGi form, e.g. "1.2.3" or "1.2.3.qualifier".
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
	if v.Qualifier != "" {
		s += "." + v.Qualifier
	}
	return s
}

// Compare orders versions numerically, then by qualifier string.
func (v Version) Compare(o Version) int {
	for _, d := range [3]int{v.Major - o.Major, v.Minor - o.Minor, v.Micro - o.Micro} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return strings.Compare(v.Qualifier, o.Qualifier)
}
