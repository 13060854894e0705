package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records conversion and cache events as Prometheus metrics
// in its own registry.
type PrometheusHooks struct {
	registry *prometheus.Registry

	bundlesTotal       *prometheus.CounterVec
	directivesTotal    *prometheus.CounterVec
	bundleDuration     prometheus.Histogram
	conversionDuration prometheus.Histogram
	collisions         prometheus.Gauge
	unhandled          prometheus.Gauge
	missing            prometheus.Gauge
	unresolved         prometheus.Gauge
	cacheTotal         *prometheus.CounterVec
	cacheBytes         prometheus.Counter
}

// NewPrometheusHooks creates the metrics and registers them.
func NewPrometheusHooks() *PrometheusHooks {
	h := &PrometheusHooks{
		registry: prometheus.NewRegistry(),
		bundlesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mavenizor_bundles_total",
				Help: "Bundles processed, by outcome.",
			},
			[]string{"outcome"},
		),
		directivesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mavenizor_embedded_libraries_total",
				Help: "Embedded libraries classified, by directive.",
			},
			[]string{"directive"},
		),
		bundleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mavenizor_bundle_duration_seconds",
				Help:    "Time to convert a single bundle.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		conversionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mavenizor_conversion_duration_seconds",
				Help:    "Time to convert a whole bundle graph.",
				Buckets: prometheus.DefBuckets,
			},
		),
		collisions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mavenizor_coordinate_collisions",
			Help: "Coordinates claimed by more than one bundle in the last run.",
		}),
		unhandled: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mavenizor_unhandled_libraries",
			Help: "UNHANDLED embedded libraries in the last run.",
		}),
		missing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mavenizor_missing_libraries",
			Help: "MISSING embedded libraries in the last run.",
		}),
		unresolved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mavenizor_unresolved_requirements",
			Help: "Requirements without a target in the last run.",
		}),
		cacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mavenizor_cache_operations_total",
				Help: "Result cache operations, by key type and result.",
			},
			[]string{"key_type", "result"},
		),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mavenizor_cache_written_bytes_total",
			Help: "Bytes written to the result cache.",
		}),
	}
	h.registry.MustRegister(
		h.bundlesTotal,
		h.directivesTotal,
		h.bundleDuration,
		h.conversionDuration,
		h.collisions,
		h.unhandled,
		h.missing,
		h.unresolved,
		h.cacheTotal,
		h.cacheBytes,
	)
	return h
}

// Registry returns the registry holding the metrics.
func (h *PrometheusHooks) Registry() *prometheus.Registry {
	return h.registry
}

// WriteTextfile writes the metrics in the node_exporter textfile format.
func (h *PrometheusHooks) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}

func (h *PrometheusHooks) OnConversionStart(context.Context, int) {}

func (h *PrometheusHooks) OnBundleConverted(_ context.Context, _ string, directives map[string]int, d time.Duration, err error) {
	outcome := "converted"
	if err != nil {
		outcome = "failed"
	}
	h.bundlesTotal.WithLabelValues(outcome).Inc()
	for name, n := range directives {
		h.directivesTotal.WithLabelValues(name).Add(float64(n))
	}
	h.bundleDuration.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnConversionComplete(_ context.Context, s Summary, d time.Duration, _ error) {
	h.conversionDuration.Observe(d.Seconds())
	h.collisions.Set(float64(s.Collisions))
	h.unhandled.Set(float64(s.Unhandled))
	h.missing.Set(float64(s.Missing))
	h.unresolved.Set(float64(s.Unresolved))
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheTotal.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheTotal.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheTotal.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}
