// Package render draws conversion results as node-link diagrams.
//
// Every converted bundle becomes a node labelled with its Maven coordinate,
// and every resolved requirement an edge labelled with the translated Maven
// range. Bundles derived to the same coordinate share one node, which makes
// collisions visible.
//
// Node styles:
//   - white: converted
//   - orange: has UNHANDLED embedded libraries
//   - red: conversion failed
//   - dashed grey: excluded by the input filter
//
// Optional requirements are drawn dashed.
//
//	dot := render.ToDOT(result, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]; the DOT source can also be fed to external
// Graphviz tools.
package render
