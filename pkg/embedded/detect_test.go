package embedded

import (
	"strings"
	"testing"

	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

func TestDefaultIndex(t *testing.T) {
	idx := DefaultIndex()
	if idx.Len() == 0 {
		t.Fatal("DefaultIndex is empty")
	}
	l, ok := idx.Lookup("Commons-IO")
	if !ok || l.GroupID != "commons-io" {
		t.Errorf("Lookup(Commons-IO) = %+v, %v", l, ok)
	}
}

func TestLoadIndex(t *testing.T) {
	idx, err := LoadIndex(strings.NewReader(`
libraries:
  - name: acme-util
    group_id: com.acme
`))
	if err != nil {
		t.Fatal(err)
	}
	l, ok := idx.Lookup("acme-util")
	if !ok || l.ArtifactID != "acme-util" {
		t.Errorf("Lookup = %+v, %v (artifact_id should default to name)", l, ok)
	}

	merged := DefaultIndex().Merge(idx)
	if merged.Len() != DefaultIndex().Len()+1 {
		t.Errorf("Merge Len() = %d", merged.Len())
	}

	if _, err := LoadIndex(strings.NewReader("libraries:\n  - group_id: x\n")); err == nil {
		t.Error("missing name: expected error")
	}
	if _, err := LoadIndex(strings.NewReader("libraries: [")); err == nil {
		t.Error("bad yaml: expected error")
	}
}

func TestIndexDetector(t *testing.T) {
	d := NewIndexDetector(DefaultIndex())

	tests := []struct {
		name       string
		lib        osgi.EmbeddedLibrary
		confidence Confidence
		coord      string
	}{
		{
			name:       "pom properties",
			lib:        osgi.EmbeddedLibrary{Path: "lib/whatever.jar", Metadata: &osgi.LibraryMetadata{GroupID: "org.x", ArtifactID: "y", Version: "1.0"}},
			confidence: ConfidenceHigh,
			coord:      "org.x:y:jar:1.0",
		},
		{"known name and version", osgi.EmbeddedLibrary{Path: "lib/commons-io-2.6.jar"}, ConfidenceHigh, "commons-io:commons-io:jar:2.6"},
		{"multi-dash name", osgi.EmbeddedLibrary{Path: "slf4j-api-1.7.30.jar"}, ConfidenceHigh, "org.slf4j:slf4j-api:jar:1.7.30"},
		{"prerelease suffix", osgi.EmbeddedLibrary{Path: "lib/guava-31.1-jre.jar"}, ConfidenceHigh, "com.google.guava:guava:jar:31.1-jre"},
		{"known name without version", osgi.EmbeddedLibrary{Path: "lib/junit.jar"}, ConfidenceLow, ""},
		{"known name odd version", osgi.EmbeddedLibrary{Path: "lib/junit-4.12.0.v2014.jar"}, ConfidenceLow, ""},
		{"unknown name", osgi.EmbeddedLibrary{Path: "lib/acme-internal-1.0.0.jar"}, ConfidenceLow, ""},
		{"no version", osgi.EmbeddedLibrary{Path: "lib/internal.jar"}, ConfidenceNone, ""},
		{"not a jar", osgi.EmbeddedLibrary{Path: "lib/classes"}, ConfidenceNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.lib)
			if got.Confidence != tt.confidence {
				t.Errorf("Confidence = %v, want %v (%s)", got.Confidence, tt.confidence, got.Reason)
			}
			if tt.coord != "" {
				if got.Coordinate == nil || got.Coordinate.ArtifactString() != tt.coord {
					t.Errorf("Coordinate = %+v, want %s", got.Coordinate, tt.coord)
				}
			}
		})
	}
}
