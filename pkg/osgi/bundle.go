package osgi

import "strings"

// Standard manifest header names.
const (
	HeaderSymbolicName = "Bundle-SymbolicName"
	HeaderVersion      = "Bundle-Version"
	HeaderRequire      = "Require-Bundle"
	HeaderImport       = "Import-Package"
	HeaderClassPath    = "Bundle-ClassPath"
	HeaderSourceBundle = "Eclipse-SourceBundle"
)

// RequirementKind distinguishes Require-Bundle from Import-Package edges.
type RequirementKind string

const (
	KindBundle  RequirementKind = "bundle"
	KindPackage RequirementKind = "package"
)

// Requirement is a reference from one bundle to another bundle or package.
// Range is kept in its textual OSGi form and parsed during conversion so that
// a malformed range is attributed to the declaring bundle.
type Requirement struct {
	Kind     RequirementKind `json:"kind" yaml:"kind"`
	Name     string          `json:"name" yaml:"name"`
	Range    string          `json:"range,omitempty" yaml:"range,omitempty"`
	Optional bool            `json:"optional,omitempty" yaml:"optional,omitempty"`

	// Provider is the symbolic name of the bundle the resolver wired a
	// package requirement to. Empty for bundle requirements.
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// LibraryMetadata is Maven metadata found inside an embedded jar.
type LibraryMetadata struct {
	GroupID    string `json:"group_id" yaml:"group_id"`
	ArtifactID string `json:"artifact_id" yaml:"artifact_id"`
	Version    string `json:"version" yaml:"version"`
}

// EmbeddedLibrary is a jar shipped inside a bundle.
type EmbeddedLibrary struct {
	Path     string           `json:"path" yaml:"path"`
	Metadata *LibraryMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Bundle is one node of the resolved graph. The header map is read-only once
// the bundle is built.
type Bundle struct {
	SymbolicName string            `json:"symbolic_name" yaml:"symbolic_name"`
	Version      string            `json:"version" yaml:"version"`
	Headers      map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Requirements []Requirement     `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Embedded     []EmbeddedLibrary `json:"embedded,omitempty" yaml:"embedded,omitempty"`
}

// Key returns "symbolicName_version", the identity used in reports.
func (b *Bundle) Key() string {
	return b.SymbolicName + "_" + b.Version
}

// Header returns a manifest header value, or "" when absent.
func (b *Bundle) Header(name string) string {
	return b.Headers[name]
}

// SourceHost returns the host symbolic name and version of an Eclipse source
// bundle. ok is false for regular bundles.
func (b *Bundle) SourceHost() (name, version string, ok bool) {
	h := b.Header(HeaderSourceBundle)
	if h == "" {
		return "", "", false
	}
	clauses := ParseClauses(h)
	if len(clauses) == 0 || len(clauses[0].Names) == 0 {
		return "", "", false
	}
	c := clauses[0]
	return c.Names[0], c.Attributes["version"], true
}

// Graph is a resolved bundle graph. Bundle order is significant and is
// preserved in conversion output.
type Graph struct {
	Bundles []Bundle `json:"bundles" yaml:"bundles"`
}

// Len returns the number of bundles.
func (g *Graph) Len() int {
	return len(g.Bundles)
}

// BySymbolicName returns the indices of all bundles with the given name, in
// graph order.
func (g *Graph) BySymbolicName(name string) []int {
	var idx []int
	for i := range g.Bundles {
		if g.Bundles[i].SymbolicName == name {
			idx = append(idx, i)
		}
	}
	return idx
}

// Names returns the symbolic names in graph order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.Bundles))
	for i := range g.Bundles {
		names[i] = g.Bundles[i].SymbolicName
	}
	return names
}

// cleanSymbolicName strips directives such as ";singleton:=true".
func cleanSymbolicName(h string) string {
	if i := strings.IndexByte(h, ';'); i >= 0 {
		h = h[:i]
	}
	return strings.TrimSpace(h)
}
