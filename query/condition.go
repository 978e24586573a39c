package query

import (
	"errors"
	"fmt"

	"github.com/hupe1980/factgo/fact"
)

// ErrUnsupportedOperator is returned at build time for a field/operator
// combination that has no defined semantics.
var ErrUnsupportedOperator = errors.New("query: unsupported operator for field")

// Field selects a fact projection a condition compares against.
type Field uint8

const (
	// FieldID is the store-assigned fact identifier.
	FieldID Field = iota
	// FieldPredicate is the categorical predicate tag. Equality only.
	FieldPredicate
	// FieldConfidence is the confidence weight.
	FieldConfidence
	// FieldStart is the subject span's start offset.
	FieldStart
	// FieldEnd is the subject span's end offset.
	FieldEnd
)

func (f Field) String() string {
	switch f {
	case FieldID:
		return "id"
	case FieldPredicate:
		return "predicate"
	case FieldConfidence:
		return "confidence"
	case FieldStart:
		return "start"
	case FieldEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Op is a comparison operator.
type Op uint8

const (
	OpEq Op = iota
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpNeq:
		return "neq"
	case OpGt:
		return "gt"
	case OpGte:
		return "gte"
	case OpLt:
		return "lt"
	case OpLte:
		return "lte"
	default:
		return "unknown"
	}
}

// ordering reports whether the operator imposes an order, which categorical
// fields do not support.
func (o Op) ordering() bool {
	return o == OpGt || o == OpGte || o == OpLt || o == OpLte
}

// condKind discriminates the condition variants.
type condKind uint8

const (
	condSimple condKind = iota
	condAnd
	condOr
	condNot
)

// Condition is a node in a boolean condition tree: a simple field
// comparison, an and/or composite, or a negation. Build conditions with
// Cond, And, Or and Not; a malformed node carries its error to Build.
type Condition struct {
	kind     condKind
	field    Field
	op       Op
	operand  float64
	children []*Condition
	err      error
}

// Cond builds a simple comparison of field against operand.
func Cond(field Field, op Op, operand float64) *Condition {
	c := &Condition{kind: condSimple, field: field, op: op, operand: operand}
	if field == FieldPredicate && op.ordering() {
		c.err = fmt.Errorf("%w: %s %s", ErrUnsupportedOperator, field, op)
	}
	return c
}

// PredicateEq matches facts with the given predicate.
func PredicateEq(p fact.Predicate) *Condition {
	return Cond(FieldPredicate, OpEq, float64(p))
}

// ConfidenceGte matches facts with confidence >= v.
func ConfidenceGte(v float32) *Condition {
	return Cond(FieldConfidence, OpGte, float64(v))
}

// And matches when every child matches. Evaluation short-circuits left to
// right.
func And(children ...*Condition) *Condition {
	return &Condition{kind: condAnd, children: children}
}

// Or matches when any child matches. Evaluation short-circuits left to
// right.
func Or(children ...*Condition) *Condition {
	return &Condition{kind: condOr, children: children}
}

// Not inverts a condition.
func Not(c *Condition) *Condition {
	return &Condition{kind: condNot, children: []*Condition{c}}
}

// validate returns the first build error in the tree.
func (c *Condition) validate() error {
	if c == nil {
		return nil
	}
	if c.err != nil {
		return c.err
	}
	for _, child := range c.children {
		if err := child.validate(); err != nil {
			return err
		}
	}
	return nil
}

// project extracts the comparable value of field from f.
func project(f fact.Fact, field Field) float64 {
	switch field {
	case FieldID:
		return float64(f.ID)
	case FieldPredicate:
		return float64(f.Predicate())
	case FieldConfidence:
		return float64(f.Confidence)
	case FieldStart:
		return float64(f.Subject.Start)
	case FieldEnd:
		return float64(f.Subject.End)
	default:
		return 0
	}
}

// Matches evaluates the condition against f. A nil condition matches
// everything.
func (c *Condition) Matches(f fact.Fact) bool {
	if c == nil {
		return true
	}
	switch c.kind {
	case condSimple:
		v := project(f, c.field)
		switch c.op {
		case OpEq:
			return v == c.operand
		case OpNeq:
			return v != c.operand
		case OpGt:
			return v > c.operand
		case OpGte:
			return v >= c.operand
		case OpLt:
			return v < c.operand
		case OpLte:
			return v <= c.operand
		default:
			return false
		}
	case condAnd:
		for _, child := range c.children {
			if !child.Matches(f) {
				return false
			}
		}
		return true
	case condOr:
		for _, child := range c.children {
			if child.Matches(f) {
				return true
			}
		}
		return false
	case condNot:
		return !c.children[0].Matches(f)
	default:
		return false
	}
}

// clone deep-copies the condition tree.
func (c *Condition) clone() *Condition {
	if c == nil {
		return nil
	}
	out := &Condition{kind: c.kind, field: c.field, op: c.op, operand: c.operand, err: c.err}
	if len(c.children) > 0 {
		out.children = make([]*Condition, len(c.children))
		for i, child := range c.children {
			out.children[i] = child.clone()
		}
	}
	return out
}

// cost is a relative evaluation-cost estimate used for cheap-first child
// ordering. Predicate equality is the cheapest check.
func (c *Condition) cost() int {
	switch c.kind {
	case condSimple:
		if c.field == FieldPredicate {
			return 1
		}
		return 2
	case condNot:
		return c.children[0].cost() + 1
	default:
		total := 1
		for _, child := range c.children {
			total += child.cost()
		}
		return total
	}
}
