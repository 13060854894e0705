package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eddi-weiss/mavenizor/pkg/convert"
	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// WriteGraph encodes a bundle graph. The output can be read back with
// [ReadGraph].
func WriteGraph(g *osgi.Graph, w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported graph format %q", format)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportGraph writes a bundle graph to path, in the format its extension
// names.
func ExportGraph(g *osgi.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f, FormatFromPath(path))
}

// WriteResult encodes a conversion result as indented JSON.
func WriteResult(r *convert.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportResult writes a conversion result file.
func ExportResult(r *convert.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResult(r, f)
}

// POMPath returns the repository-layout path of the POM of p, relative to
// the repository root.
func POMPath(p *maven.Project) string {
	return filepath.Join(
		filepath.Join(strings.Split(p.GroupID, ".")...),
		p.ArtifactID,
		p.Version,
		p.ArtifactID+"-"+p.Version+".pom",
	)
}

// ExportPOMs writes every project below dir and returns the written paths.
func ExportPOMs(projects []*maven.Project, dir string) ([]string, error) {
	paths := make([]string, 0, len(projects))
	for _, p := range projects {
		path := filepath.Join(dir, POMPath(p))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return paths, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := writePOMFile(p, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePOMFile(p *maven.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := maven.WritePOM(f, p); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
