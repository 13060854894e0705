// Package io reads and writes bundle graphs, conversion results and POMs.
//
// # Bundle Graphs
//
// A bundle graph is the output of an OSGi resolver. It is exchanged as JSON
// or YAML; the format follows the file extension:
//
//	{
//	  "bundles": [
//	    {
//	      "symbolic_name": "org.acme.core",
//	      "version": "1.0.0.v20240101",
//	      "requirements": [
//	        {"kind": "bundle", "name": "org.acme.util", "range": "[1.0.0,2.0.0)"},
//	        {"kind": "package", "name": "org.acme.util.io", "range": "1.2", "provider": "org.acme.util"}
//	      ],
//	      "embedded": [{"path": "lib/commons-io-2.6.jar"}]
//	    },
//	    {"symbolic_name": "org.acme.util", "version": "1.5.0"}
//	  ]
//	}
//
// [ImportGraph] also accepts a directory, which is scanned for bundle jars
// with osgi.ScanDir.
//
// Bundle order is significant: conversion results list bundles in graph
// order. Import rejects bundles without a symbolic name and duplicate
// symbolic name and version pairs.
//
// # Results
//
// [WriteResult] writes a conversion result as indented JSON. Results contain
// no timestamps, so unchanged inputs produce identical files.
//
// # POMs
//
// [ExportPOMs] writes POM files in Maven repository layout:
//
//	<dir>/org/acme/org.acme.core/1.0.0/org.acme.core-1.0.0.pom
package io
