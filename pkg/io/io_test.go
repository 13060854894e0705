package io

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eddi-weiss/mavenizor/pkg/convert"
	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/gav"
	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

const graphJSON = `{
  "bundles": [
    {
      "symbolic_name": "org.acme.core",
      "version": "1.0.0.v20240101",
      "requirements": [
        {"kind": "bundle", "name": "org.acme.util", "range": "[1.0.0,2.0.0)"},
        {"kind": "package", "name": "org.acme.util.io", "range": "1.2", "provider": "org.acme.util", "optional": true}
      ],
      "embedded": [{"path": "lib/commons-io-2.6.jar"}]
    },
    {"symbolic_name": "org.acme.util", "version": "1.5.0"}
  ]
}`

const graphYAML = `
bundles:
  - symbolic_name: org.acme.core
    version: 1.0.0.v20240101
    requirements:
      - kind: bundle
        name: org.acme.util
        range: "[1.0.0,2.0.0)"
      - kind: package
        name: org.acme.util.io
        range: "1.2"
        provider: org.acme.util
        optional: true
    embedded:
      - path: lib/commons-io-2.6.jar
  - symbolic_name: org.acme.util
    version: 1.5.0
`

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"json", graphJSON, FormatJSON},
		{"yaml", graphYAML, FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadGraph: %v", err)
			}
			if g.Len() != 2 {
				t.Fatalf("got %d bundles, want 2", g.Len())
			}
			core := g.Bundles[0]
			if core.Version != "1.0.0.v20240101" || len(core.Requirements) != 2 || len(core.Embedded) != 1 {
				t.Errorf("core = %+v", core)
			}
			pkg := core.Requirements[1]
			if pkg.Kind != osgi.KindPackage || pkg.Provider != "org.acme.util" || !pkg.Optional {
				t.Errorf("package requirement = %+v", pkg)
			}
		})
	}
}

func TestWriteGraphRoundTrip(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(graphJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		if err := WriteGraph(g, &buf, format); err != nil {
			t.Fatalf("%s: WriteGraph: %v", format, err)
		}
		back, err := ReadGraph(&buf, format)
		if err != nil {
			t.Fatalf("%s: ReadGraph: %v", format, err)
		}
		if back.Bundles[0].Requirements[0].Range != "[1.0.0,2.0.0)" || back.Bundles[1].SymbolicName != "org.acme.util" {
			t.Errorf("%s: round trip lost data: %+v", format, back)
		}
	}
}

func TestReadGraphInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"bundles": [`},
		{"no name", `{"bundles": [{"version": "1.0.0"}]}`},
		{"duplicate", `{"bundles": [{"symbolic_name": "a", "version": "1"}, {"symbolic_name": "a", "version": "1"}]}`},
		{"bad kind", `{"bundles": [{"symbolic_name": "a", "requirements": [{"kind": "service", "name": "b"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input), FormatJSON)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestGraphFormatUnsupported(t *testing.T) {
	if _, err := ReadGraph(strings.NewReader(graphJSON), Format("xml")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ReadGraph err = %v, want UNSUPPORTED", err)
	}
	var buf bytes.Buffer
	if err := WriteGraph(&osgi.Graph{}, &buf, Format("xml")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("WriteGraph err = %v, want UNSUPPORTED", err)
	}
}

func TestImportGraph(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "graph.json")
	yamlPath := filepath.Join(dir, "graph.yml")
	os.WriteFile(jsonPath, []byte(graphJSON), 0o644)
	os.WriteFile(yamlPath, []byte(graphYAML), 0o644)

	for _, p := range []string{jsonPath, yamlPath} {
		g, err := ImportGraph(p)
		if err != nil {
			t.Fatalf("ImportGraph(%s): %v", p, err)
		}
		if g.Len() != 2 {
			t.Errorf("%s: got %d bundles", p, g.Len())
		}
	}

	if _, err := ImportGraph(filepath.Join(dir, "absent.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestImportGraphDirectory(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("META-INF/MANIFEST.MF")
	w.Write([]byte("Manifest-Version: 1.0\nBundle-SymbolicName: org.acme.core;singleton:=true\nBundle-Version: 1.2.0\n"))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "org.acme.core_1.2.0.jar"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ImportGraph(dir)
	if err != nil {
		t.Fatalf("ImportGraph: %v", err)
	}
	if g.Len() != 1 || g.Bundles[0].Key() != "org.acme.core_1.2.0" {
		t.Errorf("graph = %+v", g)
	}
}

func TestResultRoundTrip(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(graphJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	s, err := gav.NewStrategy(gav.Rules{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := convert.Convert(context.Background(), g, s, nil, nil, convert.Options{})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "result.json")
	if err := ExportResult(res, path); err != nil {
		t.Fatal(err)
	}
	back, err := ImportResult(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.RunID != res.RunID || back.Incomplete != res.Incomplete || len(back.Unhandled) != len(res.Unhandled) {
		t.Errorf("round trip mismatch: %+v", back)
	}

	var first, second bytes.Buffer
	WriteResult(res, &first)
	WriteResult(back, &second)
	if first.String() != second.String() {
		t.Error("re-encoding a decoded result changed it")
	}
}

func TestExportPOMs(t *testing.T) {
	p := maven.NewProject(maven.Coordinate{GroupID: "org.acme", ArtifactID: "org.acme.core", Version: "1.0.0"})
	p.AddDependency(maven.Coordinate{GroupID: "org.acme", ArtifactID: "org.acme.util"}, "[1.0.0,2.0.0)", false)

	dir := t.TempDir()
	paths, err := ExportPOMs([]*maven.Project{p}, dir)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "org", "acme", "org.acme.core", "1.0.0", "org.acme.core-1.0.0.pom")
	if len(paths) != 1 || paths[0] != want {
		t.Fatalf("paths = %v, want [%s]", paths, want)
	}

	f, err := os.Open(want)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	back, err := maven.ReadPOM(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Dependencies) != 1 || back.Dependencies[0].Version != "[1.0.0,2.0.0)" {
		t.Errorf("dependencies = %+v", back.Dependencies)
	}
}
