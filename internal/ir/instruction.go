package ir

import (
	"fmt"
	"slices"

	"github.com/roach88/tensorir/internal/tensor"
)

// Op is the closed set of instruction kinds. Each variant holds exactly
// the fields it needs; ResultType derives the result type per variant.
type Op interface {
	// Operands returns the values read by the instruction, in order.
	Operands() []Use

	// Opcode returns the mnemonic used by the printer.
	Opcode() string

	op()
}

// Terminator is an Op that ends a basic block and transfers control.
type Terminator interface {
	Op
	// Successors returns the blocks control may flow to, in edge order.
	Successors() []*BasicBlock
}

// Elementwise applies a unary function to every element.
type Elementwise struct {
	Function ElementwiseFunction
	Operand  Use
}

// Aggregate applies a shape-preserving aggregate such as softmax.
type Aggregate struct {
	Function AggregateFunction
	Operand  Use
}

// Scan computes a prefix scan.
type Scan struct {
	Function ScanFunction
	Operand  Use
}

// Reduce folds a tensor to a scalar.
type Reduce struct {
	Function ReductionFunction
	Operand  Use
}

// Arithmetic applies a binary operator elementwise.
type Arithmetic struct {
	Operator ArithmeticOperator
	LHS, RHS Use
}

// BinaryReduce applies a two-operand reduction such as cross entropy.
type BinaryReduce struct {
	Function BinaryReductionFunction
	LHS, RHS Use
}

// Compare applies a comparison predicate elementwise.
type Compare struct {
	Predicate ComparisonPredicate
	LHS, RHS  Use
}

// TensorMultiply is the tensor (outer) product.
type TensorMultiply struct {
	LHS, RHS Use
}

// MatrixMultiply is the matrix product.
type MatrixMultiply struct {
	LHS, RHS Use
}

// Concatenate joins its operands along Axis. Values must be non-empty.
type Concatenate struct {
	Values []Use
	Axis   int
}

// ShapeCast reinterprets the operand with a new shape.
type ShapeCast struct {
	Operand Use
	Target  tensor.Shape
}

// TypeCast converts the operand's elements to another base and size.
type TypeCast struct {
	Operand    Use
	TargetBase tensor.Base
	TargetSize int
}

// Load reads a value.
type Load struct {
	Source Use
}

// Store writes Source into Destination. It has no result.
type Store struct {
	Source, Destination Use
}

// Branch jumps unconditionally to Target.
type Branch struct {
	Target *BasicBlock
}

// CondBranch jumps to Then if Condition holds, otherwise to Else.
type CondBranch struct {
	Condition  Use
	Then, Else *BasicBlock
}

// Return leaves the function, optionally with a value.
type Return struct {
	Value *Use
}

func (o Elementwise) Operands() []Use    { return []Use{o.Operand} }
func (o Aggregate) Operands() []Use      { return []Use{o.Operand} }
func (o Scan) Operands() []Use           { return []Use{o.Operand} }
func (o Reduce) Operands() []Use         { return []Use{o.Operand} }
func (o Arithmetic) Operands() []Use     { return []Use{o.LHS, o.RHS} }
func (o BinaryReduce) Operands() []Use   { return []Use{o.LHS, o.RHS} }
func (o Compare) Operands() []Use        { return []Use{o.LHS, o.RHS} }
func (o TensorMultiply) Operands() []Use { return []Use{o.LHS, o.RHS} }
func (o MatrixMultiply) Operands() []Use { return []Use{o.LHS, o.RHS} }
func (o Concatenate) Operands() []Use    { return slices.Clone(o.Values) }
func (o ShapeCast) Operands() []Use      { return []Use{o.Operand} }
func (o TypeCast) Operands() []Use       { return []Use{o.Operand} }
func (o Load) Operands() []Use           { return []Use{o.Source} }
func (o Store) Operands() []Use          { return []Use{o.Source, o.Destination} }
func (o Branch) Operands() []Use         { return nil }
func (o CondBranch) Operands() []Use     { return []Use{o.Condition} }

func (o Return) Operands() []Use {
	if o.Value == nil {
		return nil
	}
	return []Use{*o.Value}
}

func (o Elementwise) Opcode() string    { return o.Function.String() }
func (o Aggregate) Opcode() string      { return o.Function.String() }
func (o Scan) Opcode() string           { return o.Function.String() }
func (o Reduce) Opcode() string         { return o.Function.String() }
func (o Arithmetic) Opcode() string     { return o.Operator.String() }
func (o BinaryReduce) Opcode() string   { return o.Function.String() }
func (o Compare) Opcode() string        { return o.Predicate.String() }
func (o TensorMultiply) Opcode() string { return "tmul" }
func (o MatrixMultiply) Opcode() string { return "mmul" }
func (o Concatenate) Opcode() string    { return "concat" }
func (o ShapeCast) Opcode() string      { return "shapeCast" }
func (o TypeCast) Opcode() string       { return "typeCast" }
func (o Load) Opcode() string           { return "load" }
func (o Store) Opcode() string          { return "store" }
func (o Branch) Opcode() string         { return "br" }
func (o CondBranch) Opcode() string     { return "condbr" }
func (o Return) Opcode() string         { return "return" }

func (Elementwise) op()    {}
func (Aggregate) op()      {}
func (Scan) op()           {}
func (Reduce) op()         {}
func (Arithmetic) op()     {}
func (BinaryReduce) op()   {}
func (Compare) op()        {}
func (TensorMultiply) op() {}
func (MatrixMultiply) op() {}
func (Concatenate) op()    {}
func (ShapeCast) op()      {}
func (TypeCast) op()       {}
func (Load) op()           {}
func (Store) op()          {}
func (Branch) op()         {}
func (CondBranch) op()     {}
func (Return) op()         {}

func (o Branch) Successors() []*BasicBlock     { return []*BasicBlock{o.Target} }
func (o CondBranch) Successors() []*BasicBlock { return []*BasicBlock{o.Then, o.Else} }
func (o Return) Successors() []*BasicBlock     { return nil }

// ResultType derives the result type of op from its operand types. The
// second result is false for instructions that produce no value.
//
// Tensor and matrix products fall back to the first operand's shape when
// the shapes do not combine, and to the first operand's whole type when
// either operand is not a tensor. Concatenate falls back to the first
// operand's type on any failure.
func ResultType(op Op) (tensor.Type, bool) {
	switch o := op.(type) {
	case Elementwise:
		return o.Operand.Type(), true
	case Aggregate:
		return o.Operand.Type(), true
	case Scan:
		return o.Operand.Type(), true
	case Arithmetic:
		return o.LHS.Type(), true
	case BinaryReduce:
		return o.LHS.Type(), true
	case Reduce:
		return o.Operand.Type().ScalarType(), true
	case Compare:
		t := o.LHS.Type()
		t.Base = tensor.BaseBool
		t.Size = 1
		return t, true
	case TensorMultiply:
		return combineTensors(o.LHS.Type(), o.RHS.Type(), tensor.Shape.Product), true
	case MatrixMultiply:
		return combineTensors(o.LHS.Type(), o.RHS.Type(), tensor.Shape.MatrixMultiplied), true
	case Concatenate:
		return concatenatedType(o), true
	case ShapeCast:
		return tensor.Type{DataType: o.Operand.Type().DataType, Shape: o.Target.Clone()}, true
	case TypeCast:
		t := o.Operand.Type()
		t.Base = o.TargetBase
		t.Size = o.TargetSize
		return t, true
	case Load:
		return o.Source.Type(), true
	case Store, Branch, CondBranch, Return:
		return tensor.Type{}, false
	}
	panic(fmt.Sprintf("ir: unknown op %T", op))
}

func combineTensors(lhs, rhs tensor.Type, combine func(tensor.Shape, tensor.Shape) (tensor.Shape, bool)) tensor.Type {
	if !lhs.IsTensor() || !rhs.IsTensor() {
		return lhs
	}
	shape, ok := combine(lhs.Shape, rhs.Shape)
	if !ok {
		shape = lhs.Shape
	}
	return lhs.WithShape(shape)
}

func concatenatedType(o Concatenate) tensor.Type {
	if len(o.Values) == 0 {
		panic(&Error{Code: ErrCodeInvalidOperand, Message: "concatenation needs at least one operand"})
	}
	first := o.Values[0].Type()
	shape := first.Shape
	for _, v := range o.Values {
		if !v.Type().IsTensor() {
			return first
		}
	}
	for _, v := range o.Values[1:] {
		next, ok := shape.Concatenating(v.Type().Shape, o.Axis)
		if !ok {
			return first
		}
		shape = next
	}
	return first.WithShape(shape)
}

// Instruction is one operation inside a basic block. Instructions that
// produce a result are defining instructions and carry a name unique
// within their function.
type Instruction struct {
	id     ID
	name   string
	op     Op
	typ    tensor.Type
	result bool
	parent *BasicBlock
}

// NewInstruction creates a detached instruction. Defining instructions
// need a name; non-defining ones must not have one. Invalid operands or
// naming panic with InvalidOperand.
func NewInstruction(name string, op Op) *Instruction {
	if op == nil {
		panic(&Error{Code: ErrCodeInvalidOperand, Message: "instruction needs an op"})
	}
	for i, u := range op.Operands() {
		if !u.IsValid() {
			panic(&Error{Code: ErrCodeInvalidOperand, Message: fmt.Sprintf("%s: operand %d is not set", op.Opcode(), i)})
		}
	}
	if t, ok := op.(Terminator); ok {
		for _, succ := range t.Successors() {
			if succ == nil {
				panic(&Error{Code: ErrCodeInvalidOperand, Message: fmt.Sprintf("%s: missing target block", op.Opcode())})
			}
		}
	}
	typ, result := ResultType(op)
	switch {
	case result && name == "":
		panic(&Error{Code: ErrCodeInvalidOperand, Message: fmt.Sprintf("%s: defining instruction needs a name", op.Opcode())})
	case !result && name != "":
		panic(&Error{Code: ErrCodeInvalidOperand, Message: fmt.Sprintf("%s: instruction has no result to name", op.Opcode())})
	}
	return &Instruction{id: nextID(), name: name, op: op, typ: typ, result: result}
}

func (i *Instruction) ID() ID            { return i.id }
func (i *Instruction) Name() string      { return i.name }
func (i *Instruction) Op() Op            { return i.op }
func (i *Instruction) Type() tensor.Type { return i.typ }
func (i *Instruction) Scope() Scope      { return ScopeLocal }
func (i *Instruction) HasResult() bool   { return i.result }
func (i *Instruction) Operands() []Use   { return i.op.Operands() }

// Parent returns the owning block, or nil when detached.
func (i *Instruction) Parent() *BasicBlock { return i.parent }

// IsTerminator reports whether the instruction ends its block.
func (i *Instruction) IsTerminator() bool {
	_, ok := i.op.(Terminator)
	return ok
}

// Successors returns the branch targets of a terminator, or nil.
func (i *Instruction) Successors() []*BasicBlock {
	if t, ok := i.op.(Terminator); ok {
		return t.Successors()
	}
	return nil
}

// IndexInParent returns the position of i within its block. It panics
// with NotInParent if i is detached or its back-reference is stale.
func (i *Instruction) IndexInParent() int {
	if i.parent == nil {
		panic(notInParent("instruction", i.label()))
	}
	idx, ok := i.parent.Index(i)
	if !ok {
		panic(notInParent("instruction", i.label()))
	}
	return idx
}

// ExistsInParent reports whether i's parent currently lists it.
func (i *Instruction) ExistsInParent() bool {
	return i.parent != nil && i.parent.Contains(i)
}

// RemoveFromParent removes i from its block. It panics with NotInParent
// if i is detached.
func (i *Instruction) RemoveFromParent() {
	if !i.ExistsInParent() {
		panic(notInParent("instruction", i.label()))
	}
	i.parent.Remove(i)
}

func (i *Instruction) label() string {
	if i.name != "" {
		return i.name
	}
	return i.op.Opcode()
}
