package ir

import (
	"github.com/roach88/tensorir/internal/tensor"
)

var vec2 = tensor.Tensor(tensor.Float32, 2)

// relu returns a detached defining instruction applying relu to operand.
func relu(name string, operand Use) *Instruction {
	return NewInstruction(name, Elementwise{Function: ReLU, Operand: operand})
}

func floatLit(v float64) Use {
	return LiteralUse(NewLiteral(tensor.Scalar(tensor.Float32), ScalarLiteral{Value: Float(v)}))
}

// diamond builds entry -> (left | right) -> exit inside a fresh function.
func diamond() (fn *Function, entry, left, right, exit *BasicBlock) {
	fn = NewFunction("diamond", vec2)
	entry = NewBasicBlock("entry")
	left = NewBasicBlock("left")
	right = NewBasicBlock("right")
	exit = NewBasicBlock("exit")
	for _, b := range []*BasicBlock{entry, left, right, exit} {
		fn.Append(b)
	}
	x := entry.AddArgument("x", vec2)
	cond := NewInstruction("c", Compare{Predicate: GreaterThan, LHS: ArgumentUse(x), RHS: floatLit(0)})
	entry.Append(cond)
	entry.Append(NewInstruction("", CondBranch{Condition: LocalUse(cond), Then: left, Else: right}))
	left.Append(NewInstruction("", Branch{Target: exit}))
	right.Append(NewInstruction("", Branch{Target: exit}))
	ret := ArgumentUse(x)
	exit.Append(NewInstruction("", Return{Value: &ret}))
	return fn, entry, left, right, exit
}

// recoverError runs f and returns the *Error it panicked with, or nil.
func recoverError(f func()) (err *Error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	f()
	return nil
}
