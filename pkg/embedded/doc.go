// Package embedded classifies the jars a bundle ships on its class path.
//
// Every embedded library receives exactly one [Directive]:
//
//	REPLACE    substitute an external Maven dependency (carries a coordinate)
//	IGNORE     drop the library
//	KEEP       leave the library embedded
//	UNHANDLED  nothing decided; the conversion is incomplete
//	MISSING    an override names a path the bundle no longer contains
//
// Decisions come from, in order of precedence: the per-bundle override
// table, the global library mappings, automatic detection, and finally the
// UNHANDLED fallback. An override always wins, whatever the detection
// confidence.
//
// # Overrides
//
// Override tables use properties syntax, keyed by bundle and path:
//
//	org.acme.core/lib/junit.jar = IGNORE
//	org.acme.core_1.2.0/lib/commons-io.jar = REPLACE commons-io:commons-io:jar:2.6
//	org.acme.core[_1.2.0]/lib/asm.jar = KEEP
//
// A versioned key only applies to that bundle version and takes precedence
// over the unversioned key.
//
// # Detection
//
// See [IndexDetector] for the confidence rules.
package embedded
