package convert

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/eddi-weiss/mavenizor/pkg/embedded"
	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/gav"
	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/observability"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// runNamespace scopes content-derived run IDs.
var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mavenizor/run"))

// Convert converts every bundle of g and aggregates the outcome.
//
// The returned error is non-nil only for invalid arguments or cancellation.
// Bundle failures, collisions and unhandled libraries are reported in the
// Result; use [Result.Err] to apply the non-dry-run policy.
func Convert(ctx context.Context, g *osgi.Graph, s *gav.Strategy, c *embedded.Classifier, overrides *embedded.Overrides, opts Options) (*Result, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil bundle graph")
	}
	if s == nil {
		return nil, errors.New(errors.ErrCodeStrategyConfiguration, "nil GAV strategy")
	}
	if c == nil {
		c = embedded.NewClassifier(nil, nil)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Conversion()
	start := time.Now()
	hooks.OnConversionStart(ctx, g.Len())
	opts.Logger.Debug("converting bundles", "bundles", g.Len(), "workers", opts.Workers)

	bundles := make([]BundleResult, g.Len())
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)
	for i := range g.Bundles {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b := &g.Bundles[i]
			t := time.Now()
			bundles[i] = ConvertBundle(b, s, c, overrides, &opts)

			var berr error
			if f := bundles[i].Error; f != nil {
				berr = errors.New(f.Code, "%s", f.Message)
			}
			hooks.OnBundleConverted(gctx, b.SymbolicName, directiveCounts(bundles[i].Libraries), time.Since(t), berr)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		hooks.OnConversionComplete(ctx, observability.Summary{}, time.Since(start), err)
		return nil, err
	}

	res := aggregate(bundles, &opts)
	id, err := runID(res)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "compute run id")
	}
	res.RunID = id

	hooks.OnConversionComplete(ctx, res.summary(), time.Since(start), nil)
	opts.Logger.Info("converted bundles",
		"bundles", len(res.Bundles),
		"failures", len(res.Failures),
		"collisions", len(res.Collisions),
		"unhandled", len(res.Unhandled),
		"duration", time.Since(start).Round(time.Millisecond))
	return res, nil
}

// ConvertBundle converts a single bundle. It reads nothing but its arguments,
// which it does not modify, so calls for different bundles may run
// concurrently. opts may be nil.
func ConvertBundle(b *osgi.Bundle, s *gav.Strategy, c *embedded.Classifier, overrides *embedded.Overrides, opts *Options) BundleResult {
	if opts == nil {
		opts = &Options{}
	}
	r := BundleResult{SymbolicName: b.SymbolicName, Version: b.Version}

	_, _, isSource := b.SourceHost()
	r.Excluded = !isSource && !opts.input.Matches(b.SymbolicName)

	coord, err := opts.Cache.Coordinate(s, b)
	if err != nil {
		if !r.Excluded {
			r.Error = failure(b, err)
		}
		return r
	}
	r.Coordinate = coord
	if r.Excluded {
		return r
	}

	for _, req := range b.Requirements {
		if opts.erased(b.SymbolicName, req.Name) {
			r.Erased = append(r.Erased, req.Name)
			continue
		}
		mr, err := s.DeriveVersionRange(b, req.Range)
		if err != nil {
			r.Error = failure(b, err)
			r.Requirements = nil
			return r
		}
		tr := Requirement{
			Kind:       req.Kind,
			Name:       req.Name,
			Range:      req.Range,
			Optional:   req.Optional,
			Provider:   req.Provider,
			MavenRange: mr,
		}
		switch {
		case req.Kind == osgi.KindBundle:
			tr.Dependency = s.DependencyCoordinate(req.Name)
		case req.Provider != "":
			tr.Dependency = s.DependencyCoordinate(req.Provider)
		}
		r.Requirements = append(r.Requirements, tr)
	}

	r.Libraries = c.Classify(b, b.Embedded, overrides)
	return r
}

func failure(b *osgi.Bundle, err error) *Failure {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return &Failure{
		SymbolicName: b.SymbolicName,
		Version:      b.Version,
		Code:         code,
		Message:      err.Error(),
	}
}

func directiveCounts(entries []embedded.Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[string(e.Directive)]++
	}
	return counts
}

// aggregate runs after the barrier: requirement linking, collision detection
// and library reporting all see the complete set of bundle results.
func aggregate(bundles []BundleResult, opts *Options) *Result {
	res := &Result{Bundles: bundles, Settings: opts.Settings}

	providers := newProviderIndex(bundles)
	owners := make(map[string][]string)
	var keys []string

	for i := range res.Bundles {
		br := &res.Bundles[i]
		if br.Error != nil {
			res.Failures = append(res.Failures, *br.Error)
			continue
		}
		if br.Excluded {
			continue
		}

		k := br.Coordinate.Key()
		if _, seen := owners[k]; !seen {
			keys = append(keys, k)
		}
		owners[k] = append(owners[k], br.Key())

		for j := range br.Requirements {
			req := &br.Requirements[j]
			req.Target = providers.resolve(req)
			if req.Target == nil && !req.Optional && !opts.permitted(br.SymbolicName, req.Name) {
				res.Unresolved = append(res.Unresolved, RequirementRef{
					SymbolicName: br.SymbolicName,
					Version:      br.Version,
					Kind:         req.Kind,
					Name:         req.Name,
					Range:        req.Range,
				})
			}
		}

		libs := make([]embedded.Entry, len(br.Libraries))
		copy(libs, br.Libraries)
		sort.SliceStable(libs, func(a, b int) bool { return libs[a].Path < libs[b].Path })
		for _, e := range libs {
			ref := LibraryRef{SymbolicName: br.SymbolicName, Version: br.Version, Path: e.Path, Candidate: e.Candidate}
			switch e.Directive {
			case embedded.Unhandled:
				res.Unhandled = append(res.Unhandled, ref)
			case embedded.Missing:
				res.Missing = append(res.Missing, ref)
			}
		}
	}

	sort.Strings(keys)
	for _, k := range keys {
		if len(owners[k]) > 1 {
			res.Collisions = append(res.Collisions, Collision{Coordinate: k, Bundles: owners[k]})
		}
	}

	res.Incomplete = len(res.Unhandled) > 0
	return res
}

type candidate struct {
	version osgi.Version
	coord   maven.Coordinate
}

// providerIndex maps symbolic names to the coordinates of the graph bundles
// carrying them, highest version first.
type providerIndex map[string][]candidate

func newProviderIndex(bundles []BundleResult) providerIndex {
	idx := make(providerIndex)
	for _, br := range bundles {
		if br.Coordinate.IsZero() || br.Coordinate.Classifier != "" {
			continue
		}
		v, err := osgi.ParseVersion(br.Version)
		if err != nil {
			continue
		}
		idx[br.SymbolicName] = append(idx[br.SymbolicName], candidate{version: v, coord: br.Coordinate})
	}
	for name := range idx {
		cs := idx[name]
		sort.SliceStable(cs, func(a, b int) bool { return cs[a].version.Compare(cs[b].version) > 0 })
	}
	return idx
}

// resolve returns the coordinate satisfying req. Bundle requirements take the
// highest version inside the range; package requirements take the highest
// version of the provider the resolver wired them to.
func (idx providerIndex) resolve(req *Requirement) *maven.Coordinate {
	if req.Kind != osgi.KindBundle {
		if cs := idx[req.Provider]; req.Provider != "" && len(cs) > 0 {
			c := cs[0].coord
			return &c
		}
		return nil
	}

	vr, err := osgi.ParseVersionRange(req.Range)
	if err != nil {
		return nil
	}
	for _, cand := range idx[req.Name] {
		if vr.Includes(cand.version) {
			c := cand.coord
			return &c
		}
	}
	return nil
}

func (r *Result) summary() observability.Summary {
	return observability.Summary{
		Bundles:    len(r.Bundles),
		Failures:   len(r.Failures),
		Collisions: len(r.Collisions),
		Unhandled:  len(r.Unhandled),
		Missing:    len(r.Missing),
		Unresolved: len(r.Unresolved),
	}
}

// runID derives the run ID from the result content.
func runID(r *Result) (string, error) {
	saved := r.RunID
	r.RunID = ""
	data, err := json.Marshal(r)
	r.RunID = saved
	if err != nil {
		return "", err
	}
	return uuid.NewSHA1(runNamespace, data).String(), nil
}
