package factgo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/factgo/codec"
	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/internal/intern"
	"github.com/hupe1980/factgo/lexer"
	"github.com/hupe1980/factgo/query"
	"github.com/hupe1980/factgo/resource"
	"github.com/hupe1980/factgo/span"
	"github.com/hupe1980/factgo/store"
	"github.com/hupe1980/factgo/stream"
	"github.com/hupe1980/factgo/token"
)

// Analyzer ties the pieces together: a fact store with its query engine, a
// language registry for tokenization, and one shared intern table resolving
// every string payload. It follows the store's single-writer, many-reader
// discipline.
type Analyzer struct {
	store    *store.Store
	registry *lexer.Registry
	interner *intern.Table
	ctrl     *resource.Controller

	optimizer *query.Optimizer
	planner   *query.Planner
	executor  *query.Executor

	logger  *Logger
	metrics MetricsCollector
	opts    options
}

// New creates an Analyzer with a JSON lexer pre-registered.
func New(optFns ...Option) *Analyzer {
	opts := applyOptions(optFns)

	a := &Analyzer{
		interner:  intern.NewTable(),
		ctrl:      resource.NewController(opts.resourceConfig),
		optimizer: query.NewOptimizer(),
		executor:  query.NewExecutor(),
		logger:    opts.logger,
		metrics:   opts.metricsCollector,
		opts:      opts,
	}

	a.store = store.New(
		store.WithLogger(a.logger.Logger),
		store.WithController(a.ctrl),
		store.WithCacheCapacity(opts.cacheCapacity),
	)
	a.planner = query.NewPlanner(a.store)

	a.registry = lexer.NewRegistry()
	_ = a.registry.Register("json", func(extra ...func(*lexer.Options)) lexer.TokenSource {
		lexOpts := []func(*lexer.Options){
			lexer.WithWindowSize(opts.windowSize),
			lexer.WithInterner(a.interner),
			lexer.WithController(a.ctrl),
		}
		if !opts.emitComments {
			lexOpts = append(lexOpts, lexer.WithoutComments())
		}
		lexOpts = append(lexOpts, extra...)
		return lexer.New(lexOpts...)
	})

	return a
}

// Registry returns the language registry. Register additional languages
// before handing the Analyzer to readers.
func (a *Analyzer) Registry() *lexer.Registry {
	return a.registry
}

// Interner returns the shared table resolving string payload indexes in
// tokens and facts.
func (a *Analyzer) Interner() *intern.Table {
	return a.interner
}

// Store exposes the underlying fact store.
func (a *Analyzer) Store() *store.Store {
	return a.store
}

// Tokenize runs the registered lexer for lang over src and returns the
// completed tokens as a stream. Continuation sentinels are consumed
// internally; err-kind tokens pass through so callers can collect
// diagnostics.
func (a *Analyzer) Tokenize(lang string, src []byte) (*stream.Stream[token.Token], error) {
	factory, ok := a.registry.Lookup(lang)
	if !ok {
		return nil, &ErrUnknownLanguage{Name: lang}
	}

	source := factory()
	count := 0
	start := time.Now()
	remaining := src[source.Feed(src):]
	if len(remaining) == 0 {
		source.Finish()
	}

	return stream.Generate(func() (token.Token, bool, error) {
		for {
			t, err := source.Next()
			if err != nil {
				a.metrics.RecordTokenize(count, time.Since(start), err)
				a.logger.LogTokenize(context.Background(), lang, count, err)
				return token.Token{}, false, err
			}
			switch t.Kind {
			case token.KindEOF:
				a.metrics.RecordTokenize(count, time.Since(start), nil)
				a.logger.LogTokenize(context.Background(), lang, count, nil)
				return token.Token{}, false, nil
			case token.KindContinuation:
				n := source.Feed(remaining)
				remaining = remaining[n:]
				if len(remaining) == 0 {
					source.Finish()
				}
			default:
				count++
				return t, true, nil
			}
		}
	}), nil
}

// AppendFact stores one fact and returns its assigned ID.
func (a *Analyzer) AppendFact(f fact.Fact) (fact.ID, error) {
	start := time.Now()
	id, err := a.store.Append(f)
	err = translateError(err)
	a.metrics.RecordAppend(time.Since(start), err)
	a.logger.LogAppend(context.Background(), uint32(id), err)
	return id, err
}

// AppendFacts stores a batch of facts with a single generation bump. The
// context bounds ingest rate limiting.
func (a *Analyzer) AppendFacts(ctx context.Context, fs []fact.Fact) ([]fact.ID, error) {
	start := time.Now()
	ids, err := a.store.AppendBatch(ctx, fs)
	err = translateError(err)
	a.metrics.RecordBatchAppend(len(fs), time.Since(start), err)
	a.logger.LogBatchAppend(ctx, len(fs), err)
	return ids, err
}

// Fact returns the stored fact with the given ID.
func (a *Analyzer) Fact(id fact.ID) (fact.Fact, bool) {
	return a.store.Get(id)
}

// Facts returns all stored facts as a stream, in ID order.
func (a *Analyzer) Facts() *stream.Stream[fact.Fact] {
	return stream.FromSlice(a.store.All())
}

// Overlapping returns facts whose subject span overlaps s.
func (a *Analyzer) Overlapping(s span.Span) []fact.Fact {
	return a.store.Overlapping(s)
}

// Query optimizes, plans and executes q, returning the matching facts as a
// stream.
func (a *Analyzer) Query(q *query.Query) (*stream.Stream[fact.Fact], error) {
	start := time.Now()

	plan := a.planner.CreatePlan(a.optimizer.Optimize(q))
	results, err := a.executor.Execute(a.store, plan)
	err = translateError(err)
	if err != nil {
		a.metrics.RecordQuery(0, time.Since(start), err)
		a.logger.LogQuery(context.Background(), plan.Kind.String(), 0, err)
		return nil, err
	}

	collected, err := results.Collect()
	if err != nil {
		return nil, err
	}
	a.metrics.RecordQuery(len(collected), time.Since(start), nil)
	a.logger.LogQuery(context.Background(), plan.Kind.String(), len(collected), nil)
	return stream.FromSlice(collected), nil
}

// Aggregate optimizes, plans and runs an aggregation query.
func (a *Analyzer) Aggregate(q *query.Query) ([]query.GroupResult, error) {
	plan := a.planner.CreatePlan(a.optimizer.Optimize(q))
	res, err := a.executor.Aggregate(a.store, plan)
	return res, translateError(err)
}

// ExportBatch serializes facts into a standalone binary batch using the
// configured compression.
func (a *Analyzer) ExportBatch(fs []fact.Fact) ([]byte, error) {
	enc := codec.NewEncoder(codec.WithCompression(a.opts.compression))
	return enc.Encode(fs)
}

// ImportBatch decodes a binary batch and appends its facts, returning the
// newly assigned IDs. Original IDs inside the batch are not preserved.
func (a *Analyzer) ImportBatch(ctx context.Context, data []byte) ([]fact.ID, error) {
	fs, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return a.AppendFacts(ctx, fs)
}

// Reset discards all stored facts and cached results.
func (a *Analyzer) Reset() {
	a.store.Reset()
}

// Stats returns the store's counter snapshot.
func (a *Analyzer) Stats() store.Stats {
	return a.store.Stats()
}
