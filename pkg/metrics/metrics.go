package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/prop-dev/prop"
)

// Config configures the Prometheus instrumentation.
type Config struct {
	// Namespace is the metrics namespace (default: "prop").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus instrumentation.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// defaultConfig returns the default instrumentation configuration.
func defaultConfig() Config {
	return Config{
		Namespace: "prop",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors.
type metrics struct {
	config Config

	changesTotal *prometheus.CounterVec
	writesTotal  *prometheus.CounterVec
}

// globalMetrics is the singleton instance, created on first call to Enable.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus collectors.
func initMetrics(config Config) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		config: config,

		changesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "changes_total",
			Help:        "Total number of committed value changes per container",
			ConstLabels: config.ConstLabels,
		}, []string{"property"}),

		writesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_total",
			Help:        "Total number of write attempts per container by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"property", "status"}),
	}
}

// Enable initializes the instrumentation. The first call wins; later calls
// are no-ops so libraries and applications can both call it safely.
//
// Example:
//
//	metrics.Enable(metrics.WithNamespace("myapp"))
//	http.Handle("/metrics", promhttp.Handler())
func Enable(opts ...Option) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
}

// Observe registers a change callback on p that counts committed changes
// under the given name. The returned CallbackID can be passed to
// p.RemoveChangeCallback to stop counting.
func Observe[T any](p *prop.Property[T], name string) prop.CallbackID {
	return p.AddChangeCallback(func(oldValue, newValue *T) {
		RecordChange(name)
	})
}

// Set writes value through p's pipeline and records the write outcome under
// the given name. It returns whether the write was applied, like p.Set.
func Set[T any](p *prop.Property[T], name string, value T) bool {
	applied := p.Set(value)
	RecordWrite(name, applied)
	return applied
}

// ExportValue registers a gauge that samples p's current value on every
// scrape. The name must be unique per registry; registering it twice panics,
// as with any Prometheus collector.
func ExportValue(p *prop.Property[float64], name string) {
	globalMetricsMu.Lock()
	m := globalMetrics
	globalMetricsMu.Unlock()
	if m == nil {
		return
	}

	factory := promauto.With(m.config.Registry)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   m.config.Namespace,
		Subsystem:   m.config.Subsystem,
		Name:        "value",
		Help:        "Current value of a float64 container",
		ConstLabels: mergeLabels(m.config.ConstLabels, prometheus.Labels{"property": name}),
	}, p.Get)
}

// RecordChange counts one committed change for the named container.
func RecordChange(name string) {
	if globalMetrics != nil {
		globalMetrics.changesTotal.WithLabelValues(name).Inc()
	}
}

// RecordWrite counts one write attempt for the named container. Rejected
// and short-circuited writes are recorded as "rejected", committed ones as
// "applied".
func RecordWrite(name string, applied bool) {
	if globalMetrics != nil {
		status := "rejected"
		if applied {
			status = "applied"
		}
		globalMetrics.writesTotal.WithLabelValues(name, status).Inc()
	}
}

// mergeLabels combines constant labels with per-collector labels.
func mergeLabels(base, extra prometheus.Labels) prometheus.Labels {
	merged := make(prometheus.Labels, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
