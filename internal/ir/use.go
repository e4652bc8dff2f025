package ir

import (
	"fmt"

	"github.com/roach88/tensorir/internal/tensor"
)

// UseKind tags what a Use refers to.
type UseKind uint8

const (
	UseLocal UseKind = iota + 1
	UseGlobal
	UseArgument
	UseLiteral
	UseFunction
)

var useKindNames = [...]string{
	UseLocal:    "local",
	UseGlobal:   "global",
	UseArgument: "argument",
	UseLiteral:  "literal",
	UseFunction: "function",
}

// String returns the kind name.
func (k UseKind) String() string {
	if int(k) < len(useKindNames) && k != 0 {
		return useKindNames[k]
	}
	return "invalid"
}

// Use is an operand reference to exactly one of an instruction result, a
// global definition, a block argument, a literal or a function. A Use
// owns nothing; it caches the referenced type for cheap checks.
type Use struct {
	kind UseKind
	inst *Instruction
	def  *Def
	arg  *Argument
	lit  *LiteralValue
	fn   *Function
	typ  tensor.Type
}

// LocalUse refers to the result of inst. It panics with InvalidOperand
// if inst produces no result.
func LocalUse(inst *Instruction) Use {
	if inst == nil || !inst.HasResult() {
		panic(&Error{Code: ErrCodeInvalidOperand, Message: "instruction has no result to use"})
	}
	return Use{kind: UseLocal, inst: inst, typ: inst.Type()}
}

// GlobalUse refers to a module-level definition.
func GlobalUse(d *Def) Use {
	return Use{kind: UseGlobal, def: d, typ: d.Type()}
}

// ArgumentUse refers to a block argument.
func ArgumentUse(a *Argument) Use {
	return Use{kind: UseArgument, arg: a, typ: a.Type()}
}

// LiteralUse refers to a constant.
func LiteralUse(l *LiteralValue) Use {
	return Use{kind: UseLiteral, lit: l, typ: l.Type()}
}

// FunctionUse refers to a function; its type is the function's result type.
func FunctionUse(fn *Function) Use {
	return Use{kind: UseFunction, fn: fn, typ: fn.ResultType()}
}

func (u Use) Kind() UseKind             { return u.kind }
func (u Use) Type() tensor.Type         { return u.typ }
func (u Use) IsValid() bool             { return u.kind != 0 }
func (u Use) Instruction() *Instruction { return u.inst }
func (u Use) Def() *Def                 { return u.def }
func (u Use) Argument() *Argument       { return u.arg }
func (u Use) Literal() *LiteralValue    { return u.lit }
func (u Use) Function() *Function       { return u.fn }

// Value returns the referenced value. Function uses have none.
func (u Use) Value() Value {
	switch u.kind {
	case UseLocal:
		return u.inst
	case UseGlobal:
		return u.def
	case UseArgument:
		return u.arg
	case UseLiteral:
		return u.lit
	}
	return nil
}

// String returns the operand text: %local, @global, @function or a literal.
func (u Use) String() string {
	switch u.kind {
	case UseLocal:
		return "%" + u.inst.Name()
	case UseGlobal:
		return "@" + u.def.Name()
	case UseArgument:
		return "%" + u.arg.Name()
	case UseLiteral:
		return fmt.Sprintf("%s : %s", u.lit.Literal, u.typ)
	case UseFunction:
		return "@" + u.fn.Name()
	}
	return "<invalid>"
}
