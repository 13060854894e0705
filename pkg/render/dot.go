package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/eddi-weiss/mavenizor/pkg/convert"
	"github.com/eddi-weiss/mavenizor/pkg/embedded"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the bundle identity and library directives to labels.
	Detailed bool
	// HideExcluded drops bundles outside the input filter.
	HideExcluded bool
}

// ToDOT converts a result to Graphviz DOT source. Output order follows the
// result, so equal results give equal DOT.
func ToDOT(r *convert.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	seen := make(map[string]bool, len(r.Bundles))
	for i := range r.Bundles {
		b := &r.Bundles[i]
		if opts.HideExcluded && b.Excluded {
			continue
		}
		id := nodeID(b)
		if seen[id] {
			continue
		}
		seen[id] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(b, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for i := range r.Bundles {
		b := &r.Bundles[i]
		if !b.Converted() {
			continue
		}
		for _, req := range b.Requirements {
			if req.Target == nil || !seen[req.Target.Key()] {
				continue
			}
			attrs := []string{fmt.Sprintf("label=%q", req.MavenRange)}
			if req.Optional {
				attrs = append(attrs, "style=dashed")
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", nodeID(b), req.Target.Key(), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(b *convert.BundleResult) string {
	if b.Coordinate.IsZero() {
		return b.Key()
	}
	return b.Coordinate.Key()
}

func fmtLabel(b *convert.BundleResult, detailed bool) string {
	label := nodeID(b)
	if !detailed {
		return label
	}

	parts := []string{b.Key()}
	counts := map[embedded.Directive]int{}
	for _, e := range b.Libraries {
		counts[e.Directive]++
	}
	for _, d := range []embedded.Directive{embedded.Replace, embedded.Ignore, embedded.Keep, embedded.Unhandled, embedded.Missing} {
		if n := counts[d]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", strings.ToLower(string(d)), n))
		}
	}
	if b.Error != nil {
		parts = append(parts, string(b.Error.Code))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(b *convert.BundleResult, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(b, detailed))}
	switch {
	case b.Error != nil:
		attrs = append(attrs, "fillcolor=\"#f8d7da\"")
	case b.Excluded:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case hasUnhandled(b):
		attrs = append(attrs, "fillcolor=\"#ffe0b2\"")
	}
	return attrs
}

func hasUnhandled(b *convert.BundleResult) bool {
	for _, e := range b.Libraries {
		if e.Directive == embedded.Unhandled {
			return true
		}
	}
	return false
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element so the SVG scales
// from its origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
