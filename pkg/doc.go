// Package pkg provides the core libraries of mavenizor, which turns a
// resolved graph of OSGi bundles into Maven artifacts.
//
// # Overview
//
// A conversion reads a bundle graph, derives a Maven coordinate for every
// bundle, translates its requirements into Maven dependencies and decides
// what happens to each library embedded inside a bundle:
//
//	bundle graph (JSON, YAML or a directory of jars)
//	         ↓
//	    [io] package (import and validate)
//	         ↓
//	    [convert] package (coordinates, ranges, embedded libraries)
//	         ↓
//	    result JSON, decision template, POMs, DOT/SVG
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/eddi-weiss/mavenizor/pkg/convert"
//	    "github.com/eddi-weiss/mavenizor/pkg/embedded"
//	    "github.com/eddi-weiss/mavenizor/pkg/gav"
//	    "github.com/eddi-weiss/mavenizor/pkg/io"
//	)
//
//	g, _ := io.ImportGraph("graph.yaml")
//	s, _ := gav.NewStrategy(gav.Rules{Prefix: "com.acme"})
//	c := embedded.NewClassifier(embedded.NewIndexDetector(embedded.DefaultIndex()), nil)
//	res, _ := convert.Convert(context.Background(), g, s, c, nil, convert.Options{})
//
// # Main Packages
//
// ## Domain
//
// [osgi] - Bundle versions, version ranges, manifests and jar scanning.
//
// [maven] - Maven versions, ranges, coordinates and POM encoding.
//
// [gav] - groupId derivation rules and the coordinate strategy, with an
// LRU cache of derived coordinates.
//
// [embedded] - Directives for embedded libraries: overrides, explicit
// mappings and detection against an index of known libraries.
//
// [filter] - Glob patterns over symbolic names.
//
// [convert] - The conversion engine, its result model, the decision
// template and a cached runner.
//
// ## Infrastructure
//
// [config] - The mavenizor.toml configuration file.
//
// [cache] - Result caches (file, Redis, none).
//
// [observability] - Conversion and cache hooks with a Prometheus
// implementation.
//
// [errors] - Error codes shared by every package.
//
// ## Output
//
// [io] - Graph and result serialization, POM export.
//
// [render] - Dependency diagrams as Graphviz DOT or SVG.
package pkg
