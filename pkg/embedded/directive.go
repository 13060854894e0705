package embedded

import (
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/maven"
)

// Directive is the action taken for an embedded library.
type Directive string

const (
	Replace   Directive = "REPLACE"
	Ignore    Directive = "IGNORE"
	Keep      Directive = "KEEP"
	Unhandled Directive = "UNHANDLED"
	Missing   Directive = "MISSING"
)

// Source records which tier decided a directive.
type Source string

const (
	SourceOverride Source = "override"
	SourceMapping  Source = "mapping"
	SourceDetected Source = "detected"
	SourceNone     Source = "none"
)

// Action is a directive with its coordinate payload. Coordinate is set only
// for Replace.
type Action struct {
	Directive  Directive
	Coordinate *maven.Coordinate
}

// ParseAction parses an override or mapping value:
//
//	IGNORE
//	KEEP
//	REPLACE groupId:artifactId:type[:classifier]:version
//	groupId:artifactId:type[:classifier]:version
func ParseAction(value string) (Action, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Action{}, errors.New(errors.ErrCodeInvalidOverride, "empty directive")
	}
	if strings.Contains(v, "|") {
		return Action{}, errors.New(errors.ErrCodeInvalidOverride, "unedited template value %q: choose one directive", v)
	}

	keyword, rest, _ := strings.Cut(v, " ")
	switch Directive(strings.ToUpper(keyword)) {
	case Ignore, Keep:
		if strings.TrimSpace(rest) != "" {
			return Action{}, errors.New(errors.ErrCodeInvalidOverride, "unexpected value after %s: %q", keyword, rest)
		}
		return Action{Directive: Directive(strings.ToUpper(keyword))}, nil
	case Replace:
		v = strings.TrimSpace(rest)
	case Unhandled, Missing:
		return Action{}, errors.New(errors.ErrCodeInvalidOverride, "%s cannot be assigned", keyword)
	}

	c, err := maven.ParseCoordinate(v)
	if err != nil {
		return Action{}, errors.Wrap(errors.ErrCodeInvalidOverride, err, "invalid REPLACE target")
	}
	return Action{Directive: Replace, Coordinate: &c}, nil
}

// String returns the action in override syntax.
func (a Action) String() string {
	if a.Directive == Replace && a.Coordinate != nil {
		return string(Replace) + " " + a.Coordinate.ArtifactString()
	}
	return string(a.Directive)
}
