package query

import (
	"math"

	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/store"
)

// PlanKind names the candidate source of a plan.
type PlanKind uint8

const (
	// FullScan walks every fact in the store.
	FullScan PlanKind = iota
	// PredicateScan walks the bitmap postings of one predicate.
	PredicateScan
	// RangeScan walks the range index over a start-offset window.
	RangeScan
)

func (k PlanKind) String() string {
	switch k {
	case FullScan:
		return "full_scan"
	case PredicateScan:
		return "predicate_scan"
	case RangeScan:
		return "range_scan"
	default:
		return "unknown"
	}
}

// Plan is an executable query bound to the store it was planned against.
type Plan struct {
	Kind      PlanKind
	Predicate fact.Predicate // PredicateScan only
	RangeLo   uint32         // RangeScan only, inclusive
	RangeHi   uint32         // RangeScan only, exclusive

	// Residual is evaluated per candidate fact. It is the full Where
	// clause minus any conjunct the index already guarantees.
	Residual *Condition

	query *Query
	store *store.Store
}

// Planner turns queries into plans bound to one store.
type Planner struct {
	store *store.Store
}

// NewPlanner creates a Planner bound to s.
func NewPlanner(s *store.Store) *Planner {
	return &Planner{store: s}
}

// CreatePlan inspects the Where clause and picks a candidate source. The
// two indexable shapes are an equality on the predicate field and a range
// constraint on the subject start offset; everything else falls back to a
// full scan. A plan is always produced.
func (p *Planner) CreatePlan(q *Query) *Plan {
	plan := &Plan{Kind: FullScan, Residual: q.Where, query: q, store: p.store}

	conjuncts := topConjuncts(q.Where)

	// Predicate equality wins over a range window: postings are the
	// tighter candidate set for categorical data.
	for i, c := range conjuncts {
		if c.kind == condSimple && c.field == FieldPredicate && c.op == OpEq {
			pred, exact := exactPredicate(c.operand)
			if !exact {
				// A fractional or out-of-range operand matches no
				// predicate; the full residual decides, not the postings.
				continue
			}
			plan.Kind = PredicateScan
			plan.Predicate = pred
			plan.Residual = residualWithout(q.Where, conjuncts, i)
			return plan
		}
	}

	if lo, hi, ok := startWindow(conjuncts); ok {
		plan.Kind = RangeScan
		plan.RangeLo = lo
		plan.RangeHi = hi
		// The window bounds stay in the residual: they cost one compare
		// and keep the plan correct if the window was clamped.
		return plan
	}

	return plan
}

// topConjuncts returns the conditions known to all hold: the node itself
// for a simple condition, its children for a top-level And.
func topConjuncts(c *Condition) []*Condition {
	switch {
	case c == nil:
		return nil
	case c.kind == condAnd:
		return c.children
	default:
		return []*Condition{c}
	}
}

// residualWithout rebuilds the Where clause minus conjunct i. The index
// already guarantees that conjunct for every candidate.
func residualWithout(where *Condition, conjuncts []*Condition, i int) *Condition {
	if where.kind != condAnd {
		return nil
	}
	rest := make([]*Condition, 0, len(conjuncts)-1)
	rest = append(rest, conjuncts[:i]...)
	rest = append(rest, conjuncts[i+1:]...)
	switch len(rest) {
	case 0:
		return nil
	case 1:
		return rest[0]
	default:
		return And(rest...)
	}
}

// startWindow derives a [lo, hi) window over the subject start offset from
// ordering constraints on FieldStart. Both bounds must be present for the
// range index to beat a full scan.
func startWindow(conjuncts []*Condition) (lo, hi uint32, ok bool) {
	var (
		haveLo, haveHi bool
		loV, hiV       float64
	)
	for _, c := range conjuncts {
		if c.kind != condSimple || c.field != FieldStart {
			continue
		}
		switch c.op {
		case OpGte:
			loV, haveLo = c.operand, true
		case OpGt:
			loV, haveLo = c.operand+1, true
		case OpLt:
			hiV, haveHi = c.operand, true
		case OpLte:
			hiV, haveHi = c.operand+1, true
		case OpEq:
			loV, haveLo = c.operand, true
			hiV, haveHi = c.operand+1, true
		}
	}
	if !haveLo || !haveHi || loV >= hiV {
		return 0, 0, false
	}
	// Widen fractional bounds outward; the residual re-checks exactly.
	return clampU32(math.Floor(loV)), clampU32(math.Ceil(hiV)), true
}

// exactPredicate reports whether operand identifies a predicate tag
// losslessly. Conversion of anything else would truncate and let the scan
// return facts the Where clause rejects.
func exactPredicate(operand float64) (fact.Predicate, bool) {
	if operand != math.Trunc(operand) || operand < 0 || operand > math.MaxUint8 {
		return fact.PredInvalid, false
	}
	return fact.Predicate(operand), true
}

func clampU32(v float64) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
