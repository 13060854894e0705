package maven

import (
	"fmt"
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// ToMavenVersion renders v as "major.minor.micro[-qualifier]". Numeric
// segments are emitted as integers, and the qualifier is dropped when
// trimQualifier is set.
func ToMavenVersion(v osgi.Version, trimQualifier bool) string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
	if v.Qualifier != "" && !trimQualifier {
		s += "-" + v.Qualifier
	}
	return s
}

// FromMavenVersion parses a version produced by ToMavenVersion back into an
// OSGi version. Everything after the first dash becomes the qualifier.
func FromMavenVersion(s string) (osgi.Version, error) {
	s = strings.TrimSpace(s)
	num, qual, hasQual := strings.Cut(s, "-")
	v, err := osgi.ParseVersion(num)
	if err != nil {
		return osgi.Version{}, err
	}
	if v.Qualifier != "" {
		return osgi.Version{}, errors.New(errors.ErrCodeMalformedVersion, "invalid maven version %q: more than three numeric segments", s)
	}
	if hasQual {
		q, err := osgi.ParseVersion("0.0.0." + qual)
		if err != nil {
			return osgi.Version{}, errors.Wrap(errors.ErrCodeMalformedVersion, err, "invalid maven version %q", s)
		}
		v.Qualifier = q.Qualifier
	}
	return v, nil
}
