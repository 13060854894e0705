package embedded

import (
	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// Entry is the classification of one embedded library.
type Entry struct {
	Path      string            `json:"path"`
	Directive Directive         `json:"directive"`
	Source    Source            `json:"source"`
	Target    *maven.Coordinate `json:"target,omitempty"`

	// Candidate is what detection proposed, whether or not it was used.
	Candidate  *maven.Coordinate `json:"candidate,omitempty"`
	Confidence Confidence        `json:"confidence"`
}

// Classifier assigns directives to embedded libraries. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	detector Detector
	mappings *Mappings
}

// NewClassifier returns a classifier. Either argument may be nil.
func NewClassifier(d Detector, m *Mappings) *Classifier {
	return &Classifier{detector: d, mappings: m}
}

// Classify returns one entry per distinct library path in order, followed by
// a MISSING entry for every overridden path the bundle does not contain.
func (c *Classifier) Classify(b *osgi.Bundle, libs []osgi.EmbeddedLibrary, overrides *Overrides) []Entry {
	present := make(map[string]bool, len(libs))
	entries := make([]Entry, 0, len(libs))

	for _, lib := range libs {
		if present[lib.Path] {
			continue
		}
		present[lib.Path] = true
		entries = append(entries, c.classifyOne(b, lib, overrides))
	}

	for _, p := range overrides.Paths(b.SymbolicName, b.Version) {
		if !present[p] {
			entries = append(entries, Entry{Path: p, Directive: Missing, Source: SourceOverride})
		}
	}
	return entries
}

func (c *Classifier) classifyOne(b *osgi.Bundle, lib osgi.EmbeddedLibrary, overrides *Overrides) Entry {
	e := Entry{Path: lib.Path}

	var det Detection
	if c.detector != nil {
		det = c.detector.Detect(lib)
		e.Candidate = det.Coordinate
		e.Confidence = det.Confidence
	}

	if a, ok := overrides.Lookup(b.SymbolicName, b.Version, lib.Path); ok {
		return apply(e, a, SourceOverride)
	}
	if a, ok := c.mappings.Match(b.SymbolicName, lib.Path); ok {
		return apply(e, a, SourceMapping)
	}
	if det.Confidence == ConfidenceHigh && det.Coordinate != nil {
		return apply(e, Action{Directive: Replace, Coordinate: det.Coordinate}, SourceDetected)
	}

	e.Directive = Unhandled
	e.Source = SourceNone
	return e
}

func apply(e Entry, a Action, src Source) Entry {
	e.Directive = a.Directive
	e.Source = src
	if a.Directive == Replace {
		e.Target = a.Coordinate
	}
	return e
}
