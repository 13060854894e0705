// Package maven maps OSGi versions and ranges to Maven syntax and models the
// Maven artifacts a conversion produces.
//
// Versions map as major.minor.micro with the qualifier appended after a
// dash, unless qualifiers are trimmed:
//
//	ToMavenVersion(osgi.MustParseVersion("1.2.3.v2024"), false) // "1.2.3-v2024"
//	ToMavenVersion(osgi.MustParseVersion("1.2.3.v2024"), true)  // "1.2.3"
//
// Ranges with an upper bound become hard Maven ranges with the same bracket
// on each side. A range with no upper bound becomes the bare lower version,
// which Maven reads as a soft "at least" requirement:
//
//	[1.0.0,2.0.0)  ->  [1.0.0,2.0.0)
//	1.0.0          ->  1.0.0
//	[1.0.0,1.0.0]  ->  [1.0.0,1.0.0]
package maven
