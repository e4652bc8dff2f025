package irload

import (
	"fmt"

	"github.com/roach88/tensorir/internal/ir"
)

// opcodeKind groups opcodes by operand layout.
type opcodeKind uint8

const (
	kindUnary opcodeKind = iota
	kindBinary
	kindConcat
	kindShapeCast
	kindTypeCast
	kindLoad
	kindStore
	kindBranch
	kindCondBranch
	kindReturn
)

// opcode builds an op from resolved operands and the raw instruction.
type opcode struct {
	kind  opcodeKind
	build func(operands []ir.Use) ir.Op
}

var lexicon = buildLexicon()

func buildLexicon() map[string]opcode {
	m := make(map[string]opcode)
	add := func(name string, op opcode) {
		if _, dup := m[name]; dup {
			panic(fmt.Sprintf("irload: opcode %q defined twice", name))
		}
		m[name] = op
	}
	for _, f := range ir.ElementwiseFunctions {
		add(f.String(), opcode{kindUnary, func(u []ir.Use) ir.Op { return ir.Elementwise{Function: f, Operand: u[0]} }})
	}
	for _, f := range ir.AggregateFunctions {
		add(f.String(), opcode{kindUnary, func(u []ir.Use) ir.Op { return ir.Aggregate{Function: f, Operand: u[0]} }})
	}
	for _, f := range ir.ScanFunctions {
		add(f.String(), opcode{kindUnary, func(u []ir.Use) ir.Op { return ir.Scan{Function: f, Operand: u[0]} }})
	}
	for _, f := range ir.ReductionFunctions {
		add(f.String(), opcode{kindUnary, func(u []ir.Use) ir.Op { return ir.Reduce{Function: f, Operand: u[0]} }})
	}
	for _, o := range ir.ArithmeticOperators {
		add(o.String(), opcode{kindBinary, func(u []ir.Use) ir.Op { return ir.Arithmetic{Operator: o, LHS: u[0], RHS: u[1]} }})
	}
	for _, f := range ir.BinaryReductionFunctions {
		add(f.String(), opcode{kindBinary, func(u []ir.Use) ir.Op { return ir.BinaryReduce{Function: f, LHS: u[0], RHS: u[1]} }})
	}
	for _, p := range ir.ComparisonPredicates {
		add(p.String(), opcode{kindBinary, func(u []ir.Use) ir.Op { return ir.Compare{Predicate: p, LHS: u[0], RHS: u[1]} }})
	}
	add("tmul", opcode{kindBinary, func(u []ir.Use) ir.Op { return ir.TensorMultiply{LHS: u[0], RHS: u[1]} }})
	add("mmul", opcode{kindBinary, func(u []ir.Use) ir.Op { return ir.MatrixMultiply{LHS: u[0], RHS: u[1]} }})
	add("concat", opcode{kind: kindConcat})
	add("shapeCast", opcode{kind: kindShapeCast})
	add("typeCast", opcode{kind: kindTypeCast})
	add("load", opcode{kindLoad, func(u []ir.Use) ir.Op { return ir.Load{Source: u[0]} }})
	add("store", opcode{kindStore, func(u []ir.Use) ir.Op { return ir.Store{Source: u[0], Destination: u[1]} }})
	add("br", opcode{kind: kindBranch})
	add("condbr", opcode{kind: kindCondBranch})
	add("return", opcode{kind: kindReturn})
	return m
}

// arity returns the accepted operand count range for kind; max < 0 means
// unbounded.
func (k opcodeKind) arity() (lo, hi int) {
	switch k {
	case kindUnary, kindShapeCast, kindTypeCast, kindLoad, kindCondBranch:
		return 1, 1
	case kindBinary, kindStore:
		return 2, 2
	case kindConcat:
		return 1, -1
	case kindBranch:
		return 0, 0
	case kindReturn:
		return 0, 1
	}
	return 0, 0
}
