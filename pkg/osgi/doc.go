// Package osgi models the OSGi side of a conversion: bundle identities,
// versions, version ranges, requirements, and embedded libraries.
//
// # Versions
//
// An OSGi version has three numeric segments and an optional qualifier:
//
//	1.2.3.v20240101
//
// Missing minor and micro segments default to zero, so "1" and "1.0.0" are
// the same version. [ParseVersion] rejects non-numeric numeric segments with
// an [errors.ErrCodeMalformedVersion] error.
//
// # Ranges
//
// [ParseVersionRange] accepts the bracket syntax used by Require-Bundle and
// Import-Package ("[1.0,2.0)") as well as a bare version, which means
// "at least this version".
//
// # Reading bundles
//
// Bundles usually come from a resolved graph serialized by pkg/io. They can
// also be read straight from jars with [ReadJar] and [ScanDir], which parse
// META-INF/MANIFEST.MF and the pom.properties of embedded libraries.
//
// [errors.ErrCodeMalformedVersion]: github.com/eddi-weiss/mavenizor/pkg/errors
package osgi
