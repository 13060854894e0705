package osgi

import (
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
)

// VersionRange is an interval over versions. Upper is nil for ranges that are
// unbounded above.
type VersionRange struct {
	Lower          Version
	LowerInclusive bool
	Upper          *Version
	UpperInclusive bool
}

// AtLeast returns the unbounded range [v, ∞).
func AtLeast(v Version) VersionRange {
	return VersionRange{Lower: v, LowerInclusive: true}
}

// ParseVersionRange parses an OSGi range. A bare version means "at least";
// an empty string means "any version" (at least 0.0.0).
func ParseVersionRange(s string) (VersionRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AtLeast(Empty), nil
	}

	if s[0] != '[' && s[0] != '(' {
		v, err := ParseVersion(s)
		if err != nil {
			return VersionRange{}, err
		}
		return AtLeast(v), nil
	}

	last := s[len(s)-1]
	if last != ']' && last != ')' {
		return VersionRange{}, errors.New(errors.ErrCodeMalformedRange, "invalid range %q: missing closing bracket", s)
	}
	bounds := strings.Split(s[1:len(s)-1], ",")
	if len(bounds) != 2 {
		return VersionRange{}, errors.New(errors.ErrCodeMalformedRange, "invalid range %q: want exactly two endpoints", s)
	}

	lo, err := ParseVersion(bounds[0])
	if err != nil {
		return VersionRange{}, err
	}
	if strings.TrimSpace(bounds[1]) == "" {
		return VersionRange{}, errors.New(errors.ErrCodeMalformedRange, "invalid range %q: empty upper bound", s)
	}
	hi, err := ParseVersion(bounds[1])
	if err != nil {
		return VersionRange{}, err
	}

	r := VersionRange{
		Lower:          lo,
		LowerInclusive: s[0] == '[',
		Upper:          &hi,
		UpperInclusive: last == ']',
	}
	if c := lo.Compare(hi); c > 0 || (c == 0 && !(r.LowerInclusive && r.UpperInclusive)) {
		return VersionRange{}, errors.New(errors.ErrCodeMalformedRange, "invalid range %q: empty interval", s)
	}
	return r, nil
}

// Unbounded reports whether the range has no upper bound.
func (r VersionRange) Unbounded() bool {
	return r.Upper == nil
}

// Pinned reports whether the range admits exactly one version.
func (r VersionRange) Pinned() bool {
	return r.Upper != nil && r.LowerInclusive && r.UpperInclusive && r.Lower.Compare(*r.Upper) == 0
}

// Includes reports whether v lies within the range.
func (r VersionRange) Includes(v Version) bool {
	c := v.Compare(r.Lower)
	if c < 0 || (c == 0 && !r.LowerInclusive) {
		return false
	}
	if r.Upper == nil {
		return true
	}
	c = v.Compare(*r.Upper)
	return c < 0 || (c == 0 && r.UpperInclusive)
}

// String returns the OSGi form of the range.
func (r VersionRange) String() string {
	if r.Upper == nil && r.LowerInclusive {
		return r.Lower.String()
	}
	var b strings.Builder
	if r.LowerInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	b.WriteString(r.Lower.String())
	b.WriteByte(',')
	if r.Upper != nil {
		b.WriteString(r.Upper.String())
	}
	if r.UpperInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}
