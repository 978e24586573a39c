package query

import (
	"errors"
	"sort"

	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/store"
)

// ErrNoAggregate is returned when Aggregate runs a query that selects no
// aggregate function.
var ErrNoAggregate = errors.New("query: query has no aggregate")

// GroupResult is the aggregate outcome for one group. For ungrouped queries
// there is a single result with Key 0.
type GroupResult struct {
	Key   float64
	Value float64
	Count int
}

// Aggregate executes the plan and folds the matching facts into per-group
// aggregate values, ordered by group key. Having filters groups after
// folding.
func (e *Executor) Aggregate(s *store.Store, plan *Plan) ([]GroupResult, error) {
	q := plan.query
	if q.Agg == AggNone {
		return nil, ErrNoAggregate
	}

	facts, err := e.run(s, plan)
	if err != nil {
		return nil, err
	}

	type acc struct {
		sum      float64
		min, max float64
		count    int
	}
	groups := make(map[float64]*acc)
	for _, f := range facts {
		var key float64
		if q.Grouped {
			key = project(f, q.GroupBy)
		}
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		v := project(f, q.AggField)
		if a.count == 0 || v < a.min {
			a.min = v
		}
		if a.count == 0 || v > a.max {
			a.max = v
		}
		a.sum += v
		a.count++
	}

	out := make([]GroupResult, 0, len(groups))
	for key, a := range groups {
		r := GroupResult{Key: key, Count: a.count}
		switch q.Agg {
		case AggCount:
			r.Value = float64(a.count)
		case AggSum:
			r.Value = a.sum
		case AggAvg:
			r.Value = a.sum / float64(a.count)
		case AggMin:
			r.Value = a.min
		case AggMax:
			r.Value = a.max
		}
		if q.Filter != nil && !compareHaving(r.Value, q.Filter.Op, q.Filter.Value) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key < out[b].Key })
	return out, nil
}

func compareHaving(v float64, op Op, operand float64) bool {
	switch op {
	case OpEq:
		return v == operand
	case OpNeq:
		return v != operand
	case OpGt:
		return v > operand
	case OpGte:
		return v >= operand
	case OpLt:
		return v < operand
	case OpLte:
		return v <= operand
	default:
		return false
	}
}

// CountMatching is a convenience for the common "how many facts match"
// case.
func CountMatching(fs []fact.Fact, c *Condition) int {
	n := 0
	for _, f := range fs {
		if c.Matches(f) {
			n++
		}
	}
	return n
}
