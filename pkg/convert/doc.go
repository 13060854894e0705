// Package convert turns a resolved OSGi bundle graph into Maven coordinates.
//
// [Convert] processes every bundle of the graph exactly once. Per-bundle work
// ([ConvertBundle]) derives the coordinate, translates requirement ranges and
// classifies embedded libraries; it depends on nothing but the bundle and the
// read-only configuration, so bundles are converted concurrently. After a
// single barrier the orchestrator:
//
//  1. links bundle requirements to the coordinates of the bundles they resolve to
//  2. reports coordinates claimed by more than one bundle
//  3. collects UNHANDLED and MISSING embedded libraries
//
// The [Result] keeps graph order and contains no timestamps, so converting
// the same graph with the same configuration yields byte-identical JSON.
//
// # Failures
//
// A malformed version or range fails only the bundle declaring it; the
// failure is recorded in Result.Failures and the rest of the graph is still
// converted. Configuration errors surface earlier, from gav.NewStrategy and
// Options.ValidateAndSetDefaults. A Result with UNHANDLED libraries is
// incomplete and must not be published.
//
// # Usage
//
//	strategy, err := gav.NewStrategy(rules)
//	classifier := embedded.NewClassifier(embedded.NewIndexDetector(embedded.DefaultIndex()), mappings)
//	res, err := convert.Convert(ctx, graph, strategy, classifier, overrides, convert.Options{})
//	if res.Incomplete {
//	    convert.WriteTemplate(os.Stdout, res)
//	}
package convert
