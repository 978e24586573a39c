package query

import "sort"

// Optimizer rewrites queries to reduce execution cost. Every rewrite
// preserves the result set; optimized and unoptimized queries are
// interchangeable except for speed.
type Optimizer struct{}

// NewOptimizer creates an Optimizer.
func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// Optimize clones q and normalizes its condition tree: double negations are
// eliminated, negations are pushed through composites (De Morgan), nested
// composites of the same kind are flattened, and composite children are
// reordered cheapest first so short-circuit evaluation bails early.
func (o *Optimizer) Optimize(q *Query) *Query {
	out := q.Clone()
	out.Where = rewrite(out.Where)
	return out
}

func rewrite(c *Condition) *Condition {
	if c == nil {
		return nil
	}

	switch c.kind {
	case condSimple:
		return c

	case condNot:
		child := c.children[0]
		switch child.kind {
		case condNot:
			return rewrite(child.children[0])
		case condAnd, condOr:
			// De Morgan: push the negation one level down.
			inverted := make([]*Condition, len(child.children))
			for i, cc := range child.children {
				inverted[i] = Not(cc)
			}
			if child.kind == condAnd {
				return rewrite(Or(inverted...))
			}
			return rewrite(And(inverted...))
		default:
			c.children[0] = rewrite(child)
			return c
		}

	case condAnd, condOr:
		var flat []*Condition
		for _, child := range c.children {
			child = rewrite(child)
			if child.kind == c.kind {
				flat = append(flat, child.children...)
			} else {
				flat = append(flat, child)
			}
		}
		if len(flat) == 1 {
			return flat[0]
		}
		sort.SliceStable(flat, func(a, b int) bool {
			return flat[a].cost() < flat[b].cost()
		})
		c.children = flat
		return c

	default:
		return c
	}
}
