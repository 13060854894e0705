package maven

import (
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
)

// DefaultType is the packaging assumed when a coordinate names none.
const DefaultType = "jar"

// Coordinate identifies a Maven artifact.
type Coordinate struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version"`
	Type       string `json:"type,omitempty"`
	Classifier string `json:"classifier,omitempty"`
}

// String returns "groupId:artifactId:version".
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// ArtifactString returns "groupId:artifactId:type[:classifier]:version", the
// form used by override tables.
func (c Coordinate) ArtifactString() string {
	typ := c.Type
	if typ == "" {
		typ = DefaultType
	}
	parts := []string{c.GroupID, c.ArtifactID, typ}
	if c.Classifier != "" {
		parts = append(parts, c.Classifier)
	}
	parts = append(parts, c.Version)
	return strings.Join(parts, ":")
}

// Key identifies the artifact for uniqueness checks: the GAV plus the
// classifier, if any.
func (c Coordinate) Key() string {
	if c.Classifier == "" {
		return c.String()
	}
	return c.String() + ":" + c.Classifier
}

// IsZero reports whether c is the zero coordinate.
func (c Coordinate) IsZero() bool {
	return c == Coordinate{}
}

// ParseCoordinate parses "groupId:artifactId:type[:classifier]:version".
// The short form "groupId:artifactId:version" implies type jar.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate, "invalid coordinate %q: empty segment", s)
		}
	}

	var c Coordinate
	switch len(parts) {
	case 3:
		c = Coordinate{GroupID: parts[0], ArtifactID: parts[1], Type: DefaultType, Version: parts[2]}
	case 4:
		c = Coordinate{GroupID: parts[0], ArtifactID: parts[1], Type: parts[2], Version: parts[3]}
	case 5:
		c = Coordinate{GroupID: parts[0], ArtifactID: parts[1], Type: parts[2], Classifier: parts[3], Version: parts[4]}
	default:
		return Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate,
			"invalid coordinate %q (expected groupId:artifactId:type[:classifier]:version)", s)
	}

	if err := errors.ValidateMavenID("groupId", c.GroupID); err != nil {
		return Coordinate{}, err
	}
	if err := errors.ValidateMavenID("artifactId", c.ArtifactID); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}
