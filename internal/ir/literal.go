package ir

import (
	"strconv"
	"strings"

	"github.com/roach88/tensorir/internal/tensor"
)

// Number is a scalar constant of one of the three bases.
type Number struct {
	Base  tensor.Base
	Int   int64
	Float float64
	Bool  bool
}

// Int returns an integer constant.
func Int(v int64) Number { return Number{Base: tensor.BaseInt, Int: v} }

// Float returns a floating-point constant.
func Float(v float64) Number { return Number{Base: tensor.BaseFloat, Float: v} }

// Bool returns a boolean constant.
func Bool(v bool) Number { return Number{Base: tensor.BaseBool, Bool: v} }

// String formats the constant.
func (n Number) String() string {
	switch n.Base {
	case tensor.BaseBool:
		return strconv.FormatBool(n.Bool)
	case tensor.BaseInt:
		return strconv.FormatInt(n.Int, 10)
	default:
		s := strconv.FormatFloat(n.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	}
}

// Literal is the payload of a LiteralValue.
type Literal interface {
	literal()
	Base() tensor.Base
	String() string
}

// ScalarLiteral is a single constant.
type ScalarLiteral struct{ Value Number }

// ElementsLiteral lists every element of a tensor.
type ElementsLiteral struct{ Elements []Number }

// RandomLiteral fills a tensor with values drawn from [From, To).
type RandomLiteral struct{ From, To Number }

// RepeatingLiteral fills a tensor with one constant.
type RepeatingLiteral struct{ Value Number }

func (ScalarLiteral) literal()    {}
func (ElementsLiteral) literal()  {}
func (RandomLiteral) literal()    {}
func (RepeatingLiteral) literal() {}

func (l ScalarLiteral) Base() tensor.Base    { return l.Value.Base }
func (l RandomLiteral) Base() tensor.Base    { return l.From.Base }
func (l RepeatingLiteral) Base() tensor.Base { return l.Value.Base }

// Base returns the base of the first element, or float when empty.
func (l ElementsLiteral) Base() tensor.Base {
	if len(l.Elements) == 0 {
		return tensor.BaseFloat
	}
	return l.Elements[0].Base
}

func (l ScalarLiteral) String() string    { return l.Value.String() }
func (l RandomLiteral) String() string    { return "random " + l.From.String() + " to " + l.To.String() }
func (l RepeatingLiteral) String() string { return "repeating " + l.Value.String() }

func (l ElementsLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// LiteralValue wraps a literal into a typed value. It has no scope.
type LiteralValue struct {
	typ     tensor.Type
	Literal Literal
}

// NewLiteral returns a literal value of type t.
func NewLiteral(t tensor.Type, lit Literal) *LiteralValue {
	return &LiteralValue{typ: t, Literal: lit}
}

func (l *LiteralValue) Type() tensor.Type { return l.typ }
func (l *LiteralValue) Scope() Scope      { return ScopeNone }

// MakeZero returns a zero literal with the same type as v: a scalar zero
// for scalar types, a repeating zero for tensors.
func MakeZero(v Value) *LiteralValue {
	t := v.Type()
	var zero Number
	switch t.Base {
	case tensor.BaseBool:
		zero = Bool(false)
	case tensor.BaseInt:
		zero = Int(0)
	default:
		zero = Float(0)
	}
	if t.IsTensor() {
		return NewLiteral(t, RepeatingLiteral{Value: zero})
	}
	return NewLiteral(t, ScalarLiteral{Value: zero})
}
