package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/uniqueid/pkg/mount"
	"github.com/vango-dev/uniqueid/pkg/uniqueid"
)

// Config configures the Prometheus collector.
type Config struct {
	// Namespace is the metrics namespace (default: "uniqueid").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
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

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "uniqueid",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records generator and render pass metrics.
// It implements uniqueid.Observer and mount.PassObserver.
type Collector struct {
	generatorsCreated prometheus.Counter
	generatorResets   prometheus.Counter
	idsIssued         prometheus.Counter
	passesTotal       *prometheus.CounterVec
	passDuration      prometheus.Histogram
	componentsMounted prometheus.Gauge
}

var (
	_ uniqueid.Observer  = (*Collector)(nil)
	_ mount.PassObserver = (*Collector)(nil)
)

// New creates a Collector and registers its metrics.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		generatorsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "generators_created_total",
			Help:        "Total number of ID generators created by providers",
			ConstLabels: config.ConstLabels,
		}),

		generatorResets: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "generator_resets_total",
			Help:        "Total number of generators replaced after a version change",
			ConstLabels: config.ConstLabels,
		}),

		idsIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ids_issued_total",
			Help:        "Total number of IDs handed out",
			ConstLabels: config.ConstLabels,
		}),

		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_passes_total",
			Help:        "Total number of render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_pass_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		componentsMounted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "components_mounted",
			Help:        "Number of live component instances after the last pass",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// GeneratorCreated implements uniqueid.Observer.
func (c *Collector) GeneratorCreated(reset bool) {
	c.generatorsCreated.Inc()
	if reset {
		c.generatorResets.Inc()
	}
}

// IDIssued implements uniqueid.Observer.
func (c *Collector) IDIssued() {
	c.idsIssued.Inc()
}

// ObservePass implements mount.PassObserver.
func (c *Collector) ObservePass(stats mount.PassStats) {
	c.passesTotal.WithLabelValues(passStatus(stats.Err)).Inc()
	c.passDuration.Observe(stats.Duration.Seconds())
	c.componentsMounted.Set(float64(stats.Mounted))
}

// passStatus categorizes a pass result for the status label.
func passStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, uniqueid.ErrNoProvider):
		return "no_provider"
	case errors.Is(err, mount.ErrDisposed):
		return "disposed"
	default:
		return "error"
	}
}
