package geosearch

import (
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/hupe1980/geosearch/feature"
)

// DefaultParallelThreshold is the candidate count from which Search scores
// candidates on several goroutines.
const DefaultParallelThreshold = 2048

type options struct {
	extractor         *feature.Extractor
	metricsCollector  MetricsCollector
	logger            *Logger
	workers           int
	parallelThreshold int
	indexRateLimit    rate.Limit
	indexBurst        int
}

// Option configures an Index.
type Option func(*options)

// WithExtractor configures the feature extractor used at index and query time.
//
// If nil is passed, the default extractor is used.
func WithExtractor(e *feature.Extractor) Option {
	return func(o *options) {
		if e == nil {
			e = feature.NewExtractor()
		}
		o.extractor = e
	}
}

// WithExtractorOptions is a shorthand for WithExtractor(feature.NewExtractor(optFns...)).
//
// Example:
//
//	idx := geosearch.New(geosearch.WithExtractorOptions(func(o *feature.Options) {
//	    o.Origin = feature.OriginCentroid
//	}))
func WithExtractorOptions(optFns ...func(o *feature.Options)) Option {
	return func(o *options) {
		o.extractor = feature.NewExtractor(optFns...)
	}
}

// WithWorkers configures the number of goroutines used by IndexBatch, Reindex
// and parallel search scoring. n <= 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithParallelThreshold configures the candidate count from which Search scores
// in parallel. n <= 0 disables parallel scoring.
func WithParallelThreshold(n int) Option {
	return func(o *options) {
		o.parallelThreshold = n
	}
}

// WithIndexRateLimit throttles IndexBatch to modelsPerSec models per second with
// the given burst. It keeps bulk (re)indexing from starving interactive searches
// on small machines. modelsPerSec <= 0 disables throttling.
func WithIndexRateLimit(modelsPerSec float64, burst int) Option {
	return func(o *options) {
		if modelsPerSec <= 0 {
			o.indexRateLimit = 0
			return
		}
		o.indexRateLimit = rate.Limit(modelsPerSec)
		o.indexBurst = max(burst, 1)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &geosearch.BasicMetricsCollector{}
//	idx := geosearch.New(geosearch.WithMetricsCollector(metrics))
//	// ... use idx ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := geosearch.NewJSONLogger(slog.LevelInfo)
//	idx := geosearch.New(geosearch.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector:  NoopMetricsCollector{},
		logger:            NoopLogger(),
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.extractor == nil {
		o.extractor = feature.NewExtractor()
	}
	return o
}
