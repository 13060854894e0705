package maven

import (
	"encoding/xml"
	"io"
)

const pomNamespace = "http://maven.apache.org/POM/4.0.0"

// Project is the subset of a POM that conversion output needs.
type Project struct {
	XMLName      xml.Name     `xml:"project"`
	Xmlns        string       `xml:"xmlns,attr"`
	ModelVersion string       `xml:"modelVersion"`
	GroupID      string       `xml:"groupId"`
	ArtifactID   string       `xml:"artifactId"`
	Version      string       `xml:"version"`
	Packaging    string       `xml:"packaging,omitempty"`
	Name         string       `xml:"name,omitempty"`
	Description  string       `xml:"description,omitempty"`
	Dependencies []Dependency `xml:"dependencies>dependency,omitempty"`
}

// Dependency is one <dependency> element.
type Dependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Type       string `xml:"type,omitempty"`
	Classifier string `xml:"classifier,omitempty"`
	Scope      string `xml:"scope,omitempty"`
	Optional   string `xml:"optional,omitempty"`
}

// NewProject returns a POM skeleton for c.
func NewProject(c Coordinate) *Project {
	packaging := c.Type
	if packaging == "" {
		packaging = DefaultType
	}
	return &Project{
		Xmlns:        pomNamespace,
		ModelVersion: "4.0.0",
		GroupID:      c.GroupID,
		ArtifactID:   c.ArtifactID,
		Version:      c.Version,
		Packaging:    packaging,
	}
}

// AddDependency appends a dependency on c with the given version spec, which
// may be a plain version or a range.
func (p *Project) AddDependency(c Coordinate, version string, optional bool) {
	d := Dependency{
		GroupID:    c.GroupID,
		ArtifactID: c.ArtifactID,
		Version:    version,
		Classifier: c.Classifier,
	}
	if c.Type != "" && c.Type != DefaultType {
		d.Type = c.Type
	}
	if optional {
		d.Optional = "true"
	}
	p.Dependencies = append(p.Dependencies, d)
}

// WritePOM writes p as an indented XML document.
func WritePOM(w io.Writer, p *Project) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(p); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ReadPOM decodes a POM written by WritePOM.
func ReadPOM(r io.Reader) (*Project, error) {
	var p Project
	if err := xml.NewDecoder(r).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
