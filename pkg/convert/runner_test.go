package convert

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eddi-weiss/mavenizor/pkg/cache"
	"github.com/eddi-weiss/mavenizor/pkg/gav"
	"github.com/eddi-weiss/mavenizor/pkg/observability"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

func TestRunnerCachesResult(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, log.New(io.Discard))
	s := mustStrategy(t, gav.Rules{})
	ctx := context.Background()
	ro := RunOptions{ConfigHash: s.ID()}

	first, hit, err := r.Convert(ctx, sampleGraph(), s, defaultClassifier(), nil, Options{}, ro)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first run should miss")
	}

	second, hit, err := r.Convert(ctx, sampleGraph(), s, defaultClassifier(), nil, Options{}, ro)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second run should hit")
	}
	if second.RunID != first.RunID || len(second.Bundles) != len(first.Bundles) {
		t.Errorf("cached result differs: %s vs %s", second.RunID, first.RunID)
	}
	if lib := second.Bundles[0].Libraries[0]; lib.Target == nil || lib.Confidence != first.Bundles[0].Libraries[0].Confidence {
		t.Errorf("cached library = %+v", lib)
	}

	ro.Refresh = true
	if _, hit, err = r.Convert(ctx, sampleGraph(), s, defaultClassifier(), nil, Options{}, ro); err != nil || hit {
		t.Errorf("refresh: hit = %v, err = %v", hit, err)
	}

	other := RunOptions{ConfigHash: "different"}
	if _, hit, _ = r.Convert(ctx, sampleGraph(), s, defaultClassifier(), nil, Options{}, other); hit {
		t.Error("a different configuration must not share the cache entry")
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner left nil fields: %+v", r)
	}
}

// summaryHooks records every completed conversion summary.
type summaryHooks struct {
	observability.NoopConversionHooks
	mu        sync.Mutex
	summaries []observability.Summary
}

func (h *summaryHooks) OnConversionComplete(_ context.Context, s observability.Summary, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.summaries = append(h.summaries, s)
}

func TestRunnerCacheHitReportsSummary(t *testing.T) {
	hooks := &summaryHooks{}
	observability.SetConversionHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, log.New(io.Discard))
	s := mustStrategy(t, gav.Rules{})
	g := &osgi.Graph{Bundles: []osgi.Bundle{{
		SymbolicName: "org.acme.core",
		Version:      "1.0.0",
		Embedded:     []osgi.EmbeddedLibrary{{Path: "lib/acme-private.jar"}},
	}}}
	ro := RunOptions{ConfigHash: s.ID()}

	for i, wantHit := range []bool{false, true} {
		_, hit, err := r.Convert(context.Background(), g, s, defaultClassifier(), nil, Options{}, ro)
		if err != nil {
			t.Fatal(err)
		}
		if hit != wantHit {
			t.Fatalf("run %d: hit = %v, want %v", i, hit, wantHit)
		}
	}

	if len(hooks.summaries) != 2 {
		t.Fatalf("got %d summaries, want one per run", len(hooks.summaries))
	}
	for i, sum := range hooks.summaries {
		if sum.Unhandled != 1 || sum.Bundles != 1 {
			t.Errorf("run %d summary = %+v, want 1 bundle and 1 unhandled", i, sum)
		}
	}
}
