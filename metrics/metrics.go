// Package metrics instruments reducers and stores with Prometheus metrics
// and OpenTelemetry spans.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/odvcencio/furry-store/reducer"
	"github.com/odvcencio/furry-store/state"
)

// Config holds the naming and registration settings shared by every
// collector metric.
type Config struct {
	// Namespace prefixes every metric name. Default "furry_store".
	Namespace string

	// Subsystem sits between the namespace and the metric name. Empty by
	// default, which omits it.
	Subsystem string

	// ConstLabels are attached to every series, e.g. an app or instance name.
	ConstLabels prometheus.Labels

	// Buckets bound reduce_duration_seconds. Reducers are usually far below
	// a millisecond, so callers with hot stores may want finer buckets than
	// the default prometheus.DefBuckets.
	Buckets []float64

	// Registry receives the metrics. Default prometheus.DefaultRegisterer;
	// tests pass a fresh prometheus.NewRegistry.
	Registry prometheus.Registerer
}

// Option adjusts a Config before the collector registers its metrics.
type Option func(*Config)

// WithNamespace overrides the metric name prefix.
func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

// WithSubsystem adds a subsystem segment to metric names.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) { c.Subsystem = subsystem }
}

// WithConstLabels attaches labels to every series.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

// WithBuckets replaces the reduce duration buckets. An empty slice keeps
// the default.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		if len(buckets) > 0 {
			c.Buckets = buckets
		}
	}
}

// WithRegistry registers the metrics with registry instead of the default
// registerer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		if registry != nil {
			c.Registry = registry
		}
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "furry_store",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the store metrics.
type Collector struct {
	config         Config
	reductions     *prometheus.CounterVec
	reduceDuration *prometheus.HistogramVec
	notifications  *prometheus.CounterVec
}

// Result label values for reductions_total.
const (
	ResultChanged   = "changed"
	ResultUnchanged = "unchanged"
)

// NewCollector registers the store metrics with the configured registry.
func NewCollector(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		config: config,
		reductions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reductions_total",
			Help:        "Total number of reducer runs by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"store", "action", "result"}),

		reduceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reduce_duration_seconds",
			Help:        "Reducer run duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"store"}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of values delivered to an observed subscriber",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),
	}
}

// Reducer wraps reduce so every run is counted and timed under name.
// A run whose result is the same reference as its input counts as
// unchanged.
func Reducer[S any](c *Collector, name string, reduce reducer.Func[S]) reducer.Func[S] {
	if c == nil || reduce == nil {
		return reduce
	}
	return func(current S, action any) S {
		start := time.Now()
		next := reduce(current, action)
		c.reduceDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

		result := ResultChanged
		if state.Same(any(next), any(current)) {
			result = ResultUnchanged
		}
		c.reductions.WithLabelValues(name, actionLabel(action), result).Inc()
		return next
	}
}

// Subscriber returns a subscriber that counts notifications under name.
func Subscriber[T any](c *Collector, name string) func(T) {
	return func(T) {
		if c == nil {
			return
		}
		c.notifications.WithLabelValues(name).Inc()
	}
}

// SubscriberGauge registers a gauge reporting the subscriber count of src.
func (c *Collector) SubscriberGauge(name string, src interface{ Subscribers() int }) prometheus.GaugeFunc {
	if c == nil || src == nil {
		return nil
	}
	return promauto.With(c.config.Registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   c.config.Namespace,
		Subsystem:   c.config.Subsystem,
		Name:        "subscribers",
		Help:        "Current number of store subscribers",
		ConstLabels: mergeLabels(c.config.ConstLabels, prometheus.Labels{"store": name}),
	}, func() float64 {
		return float64(src.Subscribers())
	})
}

func actionLabel(action any) string {
	if typ := reducer.TypeOf(action); typ != "" {
		return typ
	}
	return "other"
}

func mergeLabels(base, extra prometheus.Labels) prometheus.Labels {
	out := prometheus.Labels{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
