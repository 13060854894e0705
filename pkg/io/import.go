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
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// Format is a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Anything that is
// not .yaml or .yml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ReadGraph decodes a bundle graph from r and validates it.
// ReadGraph does not close r.
func ReadGraph(r io.Reader, format Format) (*osgi.Graph, error) {
	var g osgi.Graph
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&g); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&g); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported graph format %q", format)
	}
	if err := validateGraph(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ImportGraph reads a bundle graph from a JSON or YAML file, or scans a
// directory of bundle jars.
func ImportGraph(path string) (*osgi.Graph, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		g, err := osgi.ScanDir(path)
		if err != nil {
			return nil, err
		}
		return g, validateGraph(g)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := ReadGraph(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func validateGraph(g *osgi.Graph) error {
	seen := make(map[string]int, len(g.Bundles))
	for i := range g.Bundles {
		b := &g.Bundles[i]
		if err := errors.ValidateSymbolicName(b.SymbolicName); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "bundle %d", i)
		}
		if j, dup := seen[b.Key()]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "bundle %s listed twice (entries %d and %d)", b.Key(), j, i)
		}
		seen[b.Key()] = i
		for _, r := range b.Requirements {
			if r.Kind != osgi.KindBundle && r.Kind != osgi.KindPackage {
				return errors.New(errors.ErrCodeInvalidInput, "bundle %s: unknown requirement kind %q", b.Key(), r.Kind)
			}
		}
	}
	return nil
}

// ReadResult decodes a conversion result written by [WriteResult].
func ReadResult(r io.Reader) (*convert.Result, error) {
	var res convert.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode result")
	}
	return &res, nil
}

// ImportResult reads a conversion result file.
func ImportResult(path string) (*convert.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadResult(f)
}
