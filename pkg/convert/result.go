package convert

import (
	"github.com/eddi-weiss/mavenizor/pkg/embedded"
	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// Requirement is a translated requirement of a bundle.
type Requirement struct {
	Kind     osgi.RequirementKind `json:"kind"`
	Name     string               `json:"name"`
	Range    string               `json:"range,omitempty"`
	Optional bool                 `json:"optional,omitempty"`
	Provider string               `json:"provider,omitempty"`

	// MavenRange is Range in Maven dependency syntax.
	MavenRange string `json:"maven_range"`

	// Dependency holds the groupId and artifactId the requirement refers to.
	// It is empty for package requirements without a provider.
	Dependency maven.Coordinate `json:"dependency"`

	// Target is the coordinate of the graph bundle satisfying the
	// requirement, filled in after all bundles are converted.
	Target *maven.Coordinate `json:"target,omitempty"`
}

// BundleResult is the conversion outcome of one bundle.
type BundleResult struct {
	SymbolicName string `json:"symbolic_name"`
	Version      string `json:"version"`

	// Excluded bundles did not match the input filter. Their coordinate is
	// still derived so that requirements on them resolve.
	Excluded bool `json:"excluded,omitempty"`

	Coordinate   maven.Coordinate `json:"coordinate"`
	Requirements []Requirement    `json:"requirements,omitempty"`
	Erased       []string         `json:"erased,omitempty"`
	Libraries    []embedded.Entry `json:"libraries,omitempty"`

	// Error is set when the bundle could not be converted.
	Error *Failure `json:"error,omitempty"`
}

// Key returns "symbolicName_version".
func (b *BundleResult) Key() string {
	return b.SymbolicName + "_" + b.Version
}

// Converted reports whether the bundle produced an artifact.
func (b *BundleResult) Converted() bool {
	return !b.Excluded && b.Error == nil
}

// Failure records why a bundle could not be converted.
type Failure struct {
	SymbolicName string      `json:"symbolic_name"`
	Version      string      `json:"version"`
	Code         errors.Code `json:"code"`
	Message      string      `json:"message"`
}

// Collision lists the bundles that derive the same coordinate.
type Collision struct {
	Coordinate string   `json:"coordinate"`
	Bundles    []string `json:"bundles"`
}

// LibraryRef points at an embedded library of a bundle.
type LibraryRef struct {
	SymbolicName string            `json:"symbolic_name"`
	Version      string            `json:"version"`
	Path         string            `json:"path"`
	Candidate    *maven.Coordinate `json:"candidate,omitempty"`
}

// TemplateKey returns "symbolicName[_version]/path", the key written to
// property templates and accepted by embedded.ParseOverrides.
func (l LibraryRef) TemplateKey() string {
	return l.SymbolicName + "[_" + l.Version + "]/" + l.Path
}

// RequirementRef points at an unresolved requirement of a bundle.
type RequirementRef struct {
	SymbolicName string               `json:"symbolic_name"`
	Version      string               `json:"version"`
	Kind         osgi.RequirementKind `json:"kind"`
	Name         string               `json:"name"`
	Range        string               `json:"range,omitempty"`
}

// Result is the aggregated outcome of a conversion run.
type Result struct {
	// RunID is derived from the content, so identical runs share it.
	RunID string `json:"run_id"`

	Bundles    []BundleResult   `json:"bundles"`
	Collisions []Collision      `json:"collisions,omitempty"`
	Unhandled  []LibraryRef     `json:"unhandled,omitempty"`
	Missing    []LibraryRef     `json:"missing,omitempty"`
	Failures   []Failure        `json:"failures,omitempty"`
	Unresolved []RequirementRef `json:"unresolved_requirements,omitempty"`

	// Settings is the free-form options map, passed through untouched.
	Settings map[string]string `json:"settings,omitempty"`

	// Incomplete is true iff at least one library is UNHANDLED.
	Incomplete bool `json:"incomplete"`
}

// Bundle returns the result for a bundle, or nil.
func (r *Result) Bundle(symbolicName, version string) *BundleResult {
	for i := range r.Bundles {
		if r.Bundles[i].SymbolicName == symbolicName && r.Bundles[i].Version == version {
			return &r.Bundles[i]
		}
	}
	return nil
}

// Err returns the error a non-dry-run execution must fail with, or nil.
// Bundle failures come first, then unhandled libraries, then collisions.
// MISSING libraries and unresolved requirements never fail a run.
func (r *Result) Err() error {
	if len(r.Failures) > 0 {
		f := r.Failures[0]
		return errors.New(f.Code, "%d bundles could not be converted (first: %s)", len(r.Failures), f.Message)
	}
	if len(r.Unhandled) > 0 {
		return errors.New(errors.ErrCodeUnhandledEmbeddedLibrary,
			"%d embedded libraries have no directive; see the property template", len(r.Unhandled))
	}
	if len(r.Collisions) > 0 {
		return errors.New(errors.ErrCodeCoordinateCollision,
			"%d coordinates are claimed by more than one bundle (first: %s)", len(r.Collisions), r.Collisions[0].Coordinate)
	}
	return nil
}
