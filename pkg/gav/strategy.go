package gav

import (
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/cache"
	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// SourcesClassifier is the classifier given to Eclipse source bundles.
const SourcesClassifier = "sources"

// Strategy derives coordinates from a validated rule set.
type Strategy struct {
	rules  Rules
	group3 map[string]bool
	id     string
}

// NewStrategy validates rules and returns a Strategy.
func NewStrategy(rules Rules) (*Strategy, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	s := &Strategy{
		rules:  rules,
		group3: make(map[string]bool, len(rules.Group3Prefixes)),
		id:     cache.Hash([]byte(rules.fingerprint())),
	}
	for _, p := range rules.Group3Prefixes {
		s.group3[p] = true
	}
	return s, nil
}

// Rules returns the rule set the strategy was built from.
func (s *Strategy) Rules() Rules {
	return s.rules
}

// ID identifies the rule set; strategies built from equal rules share it.
func (s *Strategy) ID() string {
	return s.id
}

// DeriveGroupID returns the groupId for a symbolic name.
func (s *Strategy) DeriveGroupID(symbolicName string) string {
	if g, ok := s.rules.Mappings[symbolicName]; ok {
		return g
	}

	segs := strings.Split(symbolicName, ".")
	if len(segs) >= 3 {
		if head := strings.Join(segs[:3], "."); s.group3[head] {
			return head
		}
	}

	group := symbolicName
	if len(segs) > 1 {
		group = strings.Join(segs[:len(segs)-1], ".")
	}
	if s.rules.Prefix != "" {
		group = s.rules.Prefix + "." + group
	}
	return group
}

// DeriveArtifactID returns the artifactId for a symbolic name, which is the
// name itself.
func (s *Strategy) DeriveArtifactID(symbolicName string) string {
	return symbolicName
}

// DeriveVersion maps an OSGi version string to a Maven version.
func (s *Strategy) DeriveVersion(version string) (string, error) {
	v, err := osgi.ParseVersion(version)
	if err != nil {
		return "", err
	}
	return maven.ToMavenVersion(v, s.rules.TrimQualifier), nil
}

// DeriveCoordinate returns the coordinate of b. Source bundles take the
// coordinate of their host with the "sources" classifier.
func (s *Strategy) DeriveCoordinate(b *osgi.Bundle) (maven.Coordinate, error) {
	name, version, classifier := b.SymbolicName, b.Version, ""
	if host, hostVersion, ok := b.SourceHost(); ok {
		name, classifier = host, SourcesClassifier
		if hostVersion != "" {
			version = hostVersion
		}
	}

	v, err := s.DeriveVersion(version)
	if err != nil {
		return maven.Coordinate{}, &errors.BundleError{SymbolicName: b.SymbolicName, Version: b.Version, Err: err}
	}
	return maven.Coordinate{
		GroupID:    s.DeriveGroupID(name),
		ArtifactID: s.DeriveArtifactID(name),
		Version:    v,
		Type:       maven.DefaultType,
		Classifier: classifier,
	}, nil
}

// DependencyCoordinate returns the groupId and artifactId a requirement on
// the named bundle refers to. The version is left empty.
func (s *Strategy) DependencyCoordinate(symbolicName string) maven.Coordinate {
	return maven.Coordinate{
		GroupID:    s.DeriveGroupID(symbolicName),
		ArtifactID: s.DeriveArtifactID(symbolicName),
	}
}

// DeriveVersionRange translates a requirement range declared by b.
func (s *Strategy) DeriveVersionRange(b *osgi.Bundle, r string) (string, error) {
	vr, err := osgi.ParseVersionRange(r)
	if err != nil {
		return "", &errors.BundleError{SymbolicName: b.SymbolicName, Version: b.Version, Err: err}
	}
	return maven.ToMavenRange(vr, s.rules.TrimQualifier), nil
}
