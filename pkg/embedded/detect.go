package embedded

import (
	_ "embed"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

//go:embed libraries.yaml
var defaultIndexYAML []byte

// Confidence grades a detection. Only High leads to REPLACE.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceLow
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceLow:
		return "low"
	}
	return "none"
}

// MarshalText encodes the confidence by name.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (c *Confidence) UnmarshalText(b []byte) error {
	switch string(b) {
	case "high":
		*c = ConfidenceHigh
	case "low":
		*c = ConfidenceLow
	case "none", "":
		*c = ConfidenceNone
	default:
		return fmt.Errorf("unknown confidence %q", b)
	}
	return nil
}

// Detection is the result of automatic detection for one library.
type Detection struct {
	Coordinate *maven.Coordinate
	Confidence Confidence
	Reason     string
}

// Detector proposes an external coordinate for an embedded library.
type Detector interface {
	Detect(lib osgi.EmbeddedLibrary) Detection
}

// KnownLibrary is one entry of the detection index.
type KnownLibrary struct {
	Name       string `yaml:"name"`
	GroupID    string `yaml:"group_id"`
	ArtifactID string `yaml:"artifact_id"`
}

// Index maps library file names to coordinates.
type Index struct {
	byName map[string]KnownLibrary
}

type indexFile struct {
	Libraries []KnownLibrary `yaml:"libraries"`
}

// LoadIndex reads an index in YAML form.
func LoadIndex(r io.Reader) (*Index, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f indexFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse library index")
	}

	idx := &Index{byName: make(map[string]KnownLibrary, len(f.Libraries))}
	for i, l := range f.Libraries {
		if l.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "library index entry %d: missing name", i)
		}
		if err := errors.ValidateMavenID("groupId", l.GroupID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "library index entry %s", l.Name)
		}
		if l.ArtifactID == "" {
			l.ArtifactID = l.Name
		}
		idx.byName[strings.ToLower(l.Name)] = l
	}
	return idx, nil
}

// DefaultIndex returns the built-in index.
func DefaultIndex() *Index {
	idx, err := LoadIndex(strings.NewReader(string(defaultIndexYAML)))
	if err != nil {
		panic(err)
	}
	return idx
}

// Merge returns a new index with the entries of both; o wins on conflicts.
func (i *Index) Merge(o *Index) *Index {
	out := &Index{byName: make(map[string]KnownLibrary, i.Len()+o.Len())}
	for _, src := range []*Index{i, o} {
		if src == nil {
			continue
		}
		for k, v := range src.byName {
			out.byName[k] = v
		}
	}
	return out
}

// Len returns the number of known libraries.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byName)
}

// Lookup finds a library by file name stem.
func (i *Index) Lookup(name string) (KnownLibrary, bool) {
	if i == nil {
		return KnownLibrary{}, false
	}
	l, ok := i.byName[strings.ToLower(name)]
	return l, ok
}

// fileNamePattern splits "name-1.2.3.jar" into name and version.
var fileNamePattern = regexp.MustCompile(`^(.+?)[-_](\d+(?:\.\d+)*(?:[-.][0-9A-Za-z][0-9A-Za-z.\-]*)?)$`)

// IndexDetector detects coordinates from embedded Maven metadata or from the
// library file name.
//
// Confidence rules:
//   - pom.properties with groupId, artifactId and version: High
//   - "<name>-<version>.jar" where name is in the index and version is a
//     valid semantic version: High
//   - a known name with an unusable version, or a semantic version with an
//     unknown name: Low
//   - anything else: None
type IndexDetector struct {
	index *Index
}

// NewIndexDetector returns a detector over idx.
func NewIndexDetector(idx *Index) *IndexDetector {
	return &IndexDetector{index: idx}
}

// Detect implements Detector.
func (d *IndexDetector) Detect(lib osgi.EmbeddedLibrary) Detection {
	if md := lib.Metadata; md != nil && md.GroupID != "" && md.ArtifactID != "" && md.Version != "" {
		return Detection{
			Coordinate: &maven.Coordinate{GroupID: md.GroupID, ArtifactID: md.ArtifactID, Type: maven.DefaultType, Version: md.Version},
			Confidence: ConfidenceHigh,
			Reason:     "pom.properties",
		}
	}

	base := path.Base(lib.Path)
	if !strings.HasSuffix(strings.ToLower(base), ".jar") {
		return Detection{Reason: "not a jar"}
	}
	stem := base[:len(base)-len(".jar")]

	m := fileNamePattern.FindStringSubmatch(stem)
	if m == nil {
		if known, ok := d.index.Lookup(stem); ok {
			return Detection{
				Coordinate: &maven.Coordinate{GroupID: known.GroupID, ArtifactID: known.ArtifactID, Type: maven.DefaultType},
				Confidence: ConfidenceLow,
				Reason:     "known name without version",
			}
		}
		return Detection{Reason: "no version in file name"}
	}

	name, version := m[1], m[2]
	_, semErr := semver.NewVersion(version)
	known, isKnown := d.index.Lookup(name)
	switch {
	case isKnown && semErr == nil:
		return Detection{
			Coordinate: &maven.Coordinate{GroupID: known.GroupID, ArtifactID: known.ArtifactID, Type: maven.DefaultType, Version: version},
			Confidence: ConfidenceHigh,
			Reason:     "file name matches index",
		}
	case isKnown:
		return Detection{
			Coordinate: &maven.Coordinate{GroupID: known.GroupID, ArtifactID: known.ArtifactID, Type: maven.DefaultType},
			Confidence: ConfidenceLow,
			Reason:     "known name with unrecognized version " + version,
		}
	case semErr == nil:
		return Detection{Confidence: ConfidenceLow, Reason: "unknown library " + name}
	}
	return Detection{Reason: "no match"}
}
