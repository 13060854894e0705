package maven

import (
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// ToMavenRange translates an OSGi range into a Maven dependency version.
func ToMavenRange(r osgi.VersionRange, trimQualifier bool) string {
	lo := ToMavenVersion(r.Lower, trimQualifier)
	if r.Upper == nil {
		if r.LowerInclusive {
			return lo
		}
		// Maven has no bare form for an exclusive lower bound.
		return "(" + lo + ",)"
	}

	var b strings.Builder
	if r.LowerInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	b.WriteString(lo)
	b.WriteByte(',')
	b.WriteString(ToMavenVersion(*r.Upper, trimQualifier))
	if r.UpperInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

// FromMavenRange parses a single Maven version range back into OSGi form.
// A missing lower bound ("(,2.0]") becomes an inclusive 0.0.0 and "[v]" is
// read as the pinned range [v,v]. Union ranges are not supported.
func FromMavenRange(s string) (osgi.VersionRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return osgi.VersionRange{}, errors.New(errors.ErrCodeMalformedRange, "empty maven range")
	}
	if s[0] != '[' && s[0] != '(' {
		v, err := FromMavenVersion(s)
		if err != nil {
			return osgi.VersionRange{}, err
		}
		return osgi.AtLeast(v), nil
	}

	last := s[len(s)-1]
	if last != ']' && last != ')' {
		return osgi.VersionRange{}, errors.New(errors.ErrCodeMalformedRange, "invalid maven range %q", s)
	}
	body := s[1 : len(s)-1]
	if strings.ContainsAny(body, "[]()") {
		return osgi.VersionRange{}, errors.New(errors.ErrCodeMalformedRange, "unsupported maven range union %q", s)
	}

	loStr, hiStr, hasComma := strings.Cut(body, ",")
	if !hasComma {
		if s[0] != '[' || last != ']' {
			return osgi.VersionRange{}, errors.New(errors.ErrCodeMalformedRange, "invalid maven range %q", s)
		}
		v, err := FromMavenVersion(loStr)
		if err != nil {
			return osgi.VersionRange{}, err
		}
		return osgi.VersionRange{Lower: v, LowerInclusive: true, Upper: &v, UpperInclusive: true}, nil
	}

	r := osgi.VersionRange{LowerInclusive: s[0] == '['}
	if strings.TrimSpace(loStr) == "" {
		r.LowerInclusive = true
	} else {
		v, err := FromMavenVersion(loStr)
		if err != nil {
			return osgi.VersionRange{}, err
		}
		r.Lower = v
	}
	if strings.TrimSpace(hiStr) != "" {
		v, err := FromMavenVersion(hiStr)
		if err != nil {
			return osgi.VersionRange{}, err
		}
		r.Upper = &v
		r.UpperInclusive = last == ']'
	}
	return r, nil
}
