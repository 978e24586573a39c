package query

import (
	"math"

	"github.com/hupe1980/factgo/internal/hash"
)

// Direction orders sort results.
type Direction uint8

const (
	Asc Direction = iota
	Desc
)

// OrderBy is one sort key. Ties are broken by fact ID in ascending order.
type OrderBy struct {
	Field     Field
	Direction Direction
}

// AggKind selects an aggregate function.
type AggKind uint8

const (
	AggNone AggKind = iota
	AggCount
	AggSum
	AggAvg
	AggMin
	AggMax
)

// Having filters groups by their aggregate value.
type Having struct {
	Op    Op
	Value float64
}

// Query is the immutable output of a Builder. Execution happens in the
// Executor; a Query holds no store reference.
type Query struct {
	Where   *Condition
	Order   []OrderBy
	Offset  int
	Limit   int // negative means unlimited

	GroupBy  Field
	Grouped  bool
	Agg      AggKind
	AggField Field
	Filter   *Having
}

// Clone deep-copies the query, including its condition tree.
func (q *Query) Clone() *Query {
	out := *q
	out.Where = q.Where.clone()
	out.Order = append([]OrderBy(nil), q.Order...)
	if q.Filter != nil {
		f := *q.Filter
		out.Filter = &f
	}
	return &out
}

// fingerprint mixes the full query shape into a cache key.
func (q *Query) fingerprint(fp *hash.Fingerprint) {
	fingerprintCond(fp, q.Where)
	for _, o := range q.Order {
		fp.WriteUint8(byte(o.Field)).WriteUint8(byte(o.Direction))
	}
	fp.WriteUint64(uint64(int64(q.Offset))).WriteUint64(uint64(int64(q.Limit)))
	if q.Grouped {
		fp.WriteUint8(byte(q.GroupBy))
	}
	fp.WriteUint8(byte(q.Agg)).WriteUint8(byte(q.AggField))
	if q.Filter != nil {
		fp.WriteUint8(byte(q.Filter.Op)).WriteUint64(math.Float64bits(q.Filter.Value))
	}
}

func fingerprintCond(fp *hash.Fingerprint, c *Condition) {
	if c == nil {
		fp.WriteUint8(0xff)
		return
	}
	fp.WriteUint8(byte(c.kind)).
		WriteUint8(byte(c.field)).
		WriteUint8(byte(c.op)).
		WriteUint64(math.Float64bits(c.operand)).
		WriteUint8(byte(len(c.children)))
	for _, child := range c.children {
		fingerprintCond(fp, child)
	}
}

// Builder assembles a Query step by step. It performs no execution; Build
// validates the assembled query and returns it.
type Builder struct {
	q Query
}

// NewBuilder creates a Builder for a query selecting all matching facts.
func NewBuilder() *Builder {
	return &Builder{q: Query{Limit: -1}}
}

// Where sets the filter condition. A nil condition matches everything.
func (b *Builder) Where(c *Condition) *Builder {
	b.q.Where = c
	return b
}

// OrderBy appends a sort key.
func (b *Builder) OrderBy(field Field, dir Direction) *Builder {
	b.q.Order = append(b.q.Order, OrderBy{Field: field, Direction: dir})
	return b
}

// Limit caps the number of results. Negative means unlimited.
func (b *Builder) Limit(n int) *Builder {
	b.q.Limit = n
	return b
}

// Offset skips the first n results after ordering.
func (b *Builder) Offset(n int) *Builder {
	b.q.Offset = n
	return b
}

// GroupBy groups results by a field projection for aggregation.
func (b *Builder) GroupBy(field Field) *Builder {
	b.q.GroupBy = field
	b.q.Grouped = true
	return b
}

// Aggregate selects the aggregate function applied per group (or over the
// whole result when no GroupBy is set). The field is ignored for AggCount.
func (b *Builder) Aggregate(kind AggKind, field Field) *Builder {
	b.q.Agg = kind
	b.q.AggField = field
	return b
}

// Having keeps only groups whose aggregate value satisfies op against v.
func (b *Builder) Having(op Op, v float64) *Builder {
	b.q.Filter = &Having{Op: op, Value: v}
	return b
}

// Build validates the assembled query and returns it.
func (b *Builder) Build() (*Query, error) {
	if err := b.q.Where.validate(); err != nil {
		return nil, err
	}
	return b.q.Clone(), nil
}
