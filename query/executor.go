package query

import (
	"errors"
	"sort"

	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/internal/hash"
	"github.com/hupe1980/factgo/store"
	"github.com/hupe1980/factgo/stream"
)

// ErrUnboundPlan is returned when a plan is executed against a store other
// than the one it was planned for. That is a programming error, not a
// recoverable condition.
var ErrUnboundPlan = errors.New("query: plan not bound to this store")

// Executor runs plans and serves results through the store's
// generation-stamped result cache.
type Executor struct{}

// NewExecutor creates an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs the plan against s and returns the matching facts as a
// stream. The result is materialized, cached under the query's fingerprint
// and invalidated by any store mutation.
func (e *Executor) Execute(s *store.Store, plan *Plan) (*stream.Stream[fact.Fact], error) {
	res, err := e.run(s, plan)
	if err != nil {
		return nil, err
	}
	return stream.FromSlice(res), nil
}

func (e *Executor) run(s *store.Store, plan *Plan) ([]fact.Fact, error) {
	if plan.store != s {
		return nil, ErrUnboundPlan
	}

	key := planFingerprint(plan)
	if res, ok := s.CachedResult(key); ok {
		return res, nil
	}

	candidates := planCandidates(s, plan)

	res := make([]fact.Fact, 0, len(candidates))
	for _, f := range candidates {
		if plan.Residual.Matches(f) {
			res = append(res, f)
		}
	}

	sortFacts(res, plan.query.Order)
	res = window(res, plan.query.Offset, plan.query.Limit)

	s.CacheResult(key, res)
	return res, nil
}

// planCandidates pulls the candidate set in ascending ID order, so that the
// later stable sort breaks ties by insertion order.
func planCandidates(s *store.Store, plan *Plan) []fact.Fact {
	switch plan.Kind {
	case PredicateScan:
		return s.ByPredicate(plan.Predicate)
	case RangeScan:
		out := s.StartBetween(plan.RangeLo, plan.RangeHi)
		sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
		return out
	default:
		return s.All()
	}
}

// sortFacts applies the sort keys in order, with fact ID as the final
// tie-break. Input in ID order plus a stable sort gives exactly that.
func sortFacts(fs []fact.Fact, order []OrderBy) {
	if len(order) == 0 {
		return
	}
	sort.SliceStable(fs, func(a, b int) bool {
		for _, o := range order {
			va, vb := project(fs[a], o.Field), project(fs[b], o.Field)
			if va == vb {
				continue
			}
			if o.Direction == Desc {
				return va > vb
			}
			return va < vb
		}
		return false
	})
}

func window(fs []fact.Fact, offset, limit int) []fact.Fact {
	if offset > 0 {
		if offset >= len(fs) {
			return fs[:0]
		}
		fs = fs[offset:]
	}
	if limit >= 0 && limit < len(fs) {
		fs = fs[:limit]
	}
	return fs
}

// planFingerprint derives the cache key from the query shape and the chosen
// plan, so the same query planned differently never aliases.
func planFingerprint(plan *Plan) uint64 {
	fp := hash.NewFingerprint()
	fp.WriteUint8(byte(plan.Kind)).
		WriteUint8(byte(plan.Predicate)).
		WriteUint32(plan.RangeLo).
		WriteUint32(plan.RangeHi)
	plan.query.fingerprint(fp)
	return fp.Sum64()
}
