// Package gav derives Maven coordinates for OSGi bundles.
//
// The groupId is resolved by the first matching rule:
//
//  1. an explicit symbolicName=groupId mapping
//  2. a configured group3 prefix equal to the first three dotted segments
//     of the symbolic name
//  3. the symbolic name without its last segment, optionally prefixed by a
//     global groupId prefix
//
// The artifactId is always the full symbolic name, and the version is the
// bundle version mapped by [maven.ToMavenVersion].
//
// A [Strategy] is immutable and safe for concurrent use. Memoization is
// opt-in through an explicit [Cache] so that independent runs never share
// hidden state.
package gav
