package factgo

import (
	"log/slog"

	"github.com/hupe1980/factgo/codec"
	"github.com/hupe1980/factgo/lexer"
	"github.com/hupe1980/factgo/resource"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	resourceConfig   resource.Config
	cacheCapacity    int
	windowSize       int
	compression      codec.Compression
	emitComments     bool
}

// Option configures Analyzer constructor behavior.
type Option func(*options)

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := factgo.NewJSONLogger(slog.LevelInfo)
//	a := factgo.New(factgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &factgo.BasicMetricsCollector{}
//	a := factgo.New(factgo.WithMetricsCollector(metrics))
//	// ... use a ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithResourceLimits bounds memory held by lexer scratch buffers and
// rate-limits batch-append ingest. Zero fields mean unlimited.
func WithResourceLimits(cfg resource.Config) Option {
	return func(o *options) {
		o.resourceConfig = cfg
	}
}

// WithCacheCapacity sets the number of query results kept in the result
// cache.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		o.cacheCapacity = n
	}
}

// WithLexerWindowSize sets the fixed byte-window capacity used by lexers
// the Analyzer constructs.
func WithLexerWindowSize(n int) Option {
	return func(o *options) {
		o.windowSize = n
	}
}

// WithCompression selects the compression used by ExportBatch.
func WithCompression(c codec.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithoutComments drops comment tokens from Tokenize output.
func WithoutComments() Option {
	return func(o *options) {
		o.emitComments = false
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		cacheCapacity:    128,
		windowSize:       lexer.DefaultWindowSize,
		compression:      codec.CompressionNone,
		emitComments:     true,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
