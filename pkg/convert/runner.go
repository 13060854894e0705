package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eddi-weiss/mavenizor/pkg/cache"
	"github.com/eddi-weiss/mavenizor/pkg/embedded"
	"github.com/eddi-weiss/mavenizor/pkg/gav"
	"github.com/eddi-weiss/mavenizor/pkg/observability"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// Runner wraps Convert with a result cache.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can share it.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long stored results stay valid; zero means cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// RunOptions controls caching for one Runner call.
type RunOptions struct {
	// ConfigHash identifies everything besides the graph that affects the
	// result: rules, overrides, mappings, detection index and options.
	ConfigHash string

	// Refresh skips the cache lookup but still stores the new result.
	Refresh bool
}

// Convert returns the cached result for g under the same configuration, or
// converts g and caches the outcome. hit reports whether the cache served
// the result.
func (r *Runner) Convert(ctx context.Context, g *osgi.Graph, s *gav.Strategy, c *embedded.Classifier, overrides *embedded.Overrides, opts Options, ro RunOptions) (res *Result, hit bool, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}

	graphData, err := json.Marshal(g)
	if err != nil {
		return nil, false, fmt.Errorf("hash graph: %w", err)
	}
	key := r.Keyer.ResultKey(cache.Hash(graphData), ro.ConfigHash)
	hooks := observability.Cache()

	if !ro.Refresh {
		data, ok, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache lookup failed", "error", err)
		case ok:
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				hooks.OnCacheHit(ctx, cache.KeyTypeResult)
				// Gauges reflect the served result, cached or not.
				observability.Conversion().OnConversionComplete(ctx, cached.summary(), 0, nil)
				r.Logger.Debug("using cached result", "run_id", cached.RunID)
				return &cached, true, nil
			}
			r.Logger.Debug("discarding unreadable cache entry", "key", key)
		}
		hooks.OnCacheMiss(ctx, cache.KeyTypeResult)
	}

	res, err = Convert(ctx, g, s, c, overrides, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Warn("cache store failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, cache.KeyTypeResult, len(data))
		}
	}
	return res, false, nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL <= 0 {
		return cache.DefaultTTL
	}
	return r.TTL
}
