package irload

import (
	"errors"
	"fmt"

	"github.com/roach88/tensorir/internal/builder"
	"github.com/roach88/tensorir/internal/ir"
	"github.com/roach88/tensorir/internal/tensor"
)

// Load reads the document at path and lowers it.
func Load(path string) (*ir.Module, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return Lower(doc)
}

// Lower builds a module from doc. Functions are created first so any
// function can name any other; every block and its arguments exist
// before the first instruction is lowered so branches may point forward.
// Structural errors the IR reports by panicking come back as *LoadError.
func Lower(doc *Document) (m *ir.Module, err error) {
	l := &lowering{b: builder.New(doc.Module, builder.WithExactNames())}
	defer func() {
		if r := recover(); r != nil {
			var irErr *ir.Error
			e, ok := r.(error)
			if !ok || !errors.As(e, &irErr) {
				panic(r)
			}
			m, err = nil, &LoadError{Code: codeFor(irErr), Where: l.where, Message: irErr.Message}
		}
	}()

	for _, g := range doc.Globals {
		l.where = "global " + g.Name
		if err := l.global(g); err != nil {
			return nil, l.locate(err)
		}
	}
	fns := make([]*ir.Function, len(doc.Functions))
	for i, f := range doc.Functions {
		l.where = "function " + f.Name
		result, err := parseType(f.Result)
		if err != nil {
			return nil, l.locate(err)
		}
		fns[i] = l.b.MakeFunction(f.Name, result)
	}
	for i, f := range doc.Functions {
		if err := l.function(fns[i], f); err != nil {
			return nil, l.locate(err)
		}
	}
	return l.b.Module(), nil
}

type lowering struct {
	b     *builder.Builder
	where string
}

// locate fills in the current position on errors that lack one.
func (l *lowering) locate(err error) error {
	var le *LoadError
	if errors.As(err, &le) && le.Where == "" {
		le.Where = l.where
	}
	return err
}

func (l *lowering) global(g Global) error {
	t, err := parseType(g.Type)
	if err != nil {
		return err
	}
	var v ir.Value
	switch g.Kind {
	case "placeholder":
		if g.Init != "" {
			return &LoadError{Code: ErrCodeInvalidLiteral, Message: "placeholders take no initializer"}
		}
		v = ir.NewPlaceholder(t)
	case "let", "var":
		var init *ir.LiteralValue
		if g.Init != "" {
			if init, err = literalOf(t, g.Init); err != nil {
				return err
			}
		}
		v = ir.NewGlobalValue(t, init, g.Kind == "var")
	default:
		return &LoadError{Code: ErrCodeInvalidType, Message: fmt.Sprintf("unknown global kind %q: want let, var or placeholder", g.Kind)}
	}
	l.b.Declare(v, g.Name)
	return nil
}

func (l *lowering) function(fn *ir.Function, f Function) error {
	blocks := make([]*ir.BasicBlock, len(f.Blocks))
	for i, bd := range f.Blocks {
		l.where = fmt.Sprintf("function %s, block %s", f.Name, bd.Name)
		blocks[i] = l.b.MakeBasicBlock(fn, bd.Name)
		for _, a := range bd.Args {
			t, err := parseType(a.Type)
			if err != nil {
				return err
			}
			l.b.MakeArgument(blocks[i], a.Name, t)
		}
	}
	for i, bd := range f.Blocks {
		l.b.Move(blocks[i])
		for j, inst := range bd.Instructions {
			l.where = fmt.Sprintf("function %s, block %s, instruction %d", f.Name, bd.Name, j)
			if err := l.instruction(fn, inst); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *lowering) instruction(fn *ir.Function, inst Instruction) error {
	code, ok := lexicon[inst.Op]
	if !ok {
		return &LoadError{Code: ErrCodeUnknownOpcode, Message: fmt.Sprintf("unknown opcode %q", inst.Op)}
	}
	lo, hi := code.kind.arity()
	if n := len(inst.Operands); n < lo || (hi >= 0 && n > hi) {
		return &LoadError{Code: ErrCodeArity, Message: fmt.Sprintf("%s takes %s, got %d", inst.Op, arityText(lo, hi), n)}
	}
	operands := make([]ir.Use, len(inst.Operands))
	for i, text := range inst.Operands {
		u, err := resolveOperand(l.b.Module(), fn, text)
		if err != nil {
			return err
		}
		operands[i] = u
	}

	var op ir.Op
	switch code.kind {
	case kindConcat:
		op = ir.Concatenate{Values: operands, Axis: inst.Axis}
	case kindShapeCast:
		shape, err := tensor.ParseShape(inst.Shape)
		if err != nil {
			return &LoadError{Code: ErrCodeInvalidType, Message: err.Error()}
		}
		op = ir.ShapeCast{Operand: operands[0], Target: shape}
	case kindTypeCast:
		dt, err := tensor.ParseDataType(inst.To)
		if err != nil {
			return &LoadError{Code: ErrCodeInvalidType, Message: err.Error()}
		}
		op = ir.TypeCast{Operand: operands[0], TargetBase: dt.Base, TargetSize: dt.Size}
	case kindBranch:
		target, err := blockNamed(fn, inst.Target)
		if err != nil {
			return err
		}
		op = ir.Branch{Target: target}
	case kindCondBranch:
		then, err := blockNamed(fn, inst.Then)
		if err != nil {
			return err
		}
		els, err := blockNamed(fn, inst.Else)
		if err != nil {
			return err
		}
		op = ir.CondBranch{Condition: operands[0], Then: then, Else: els}
	case kindReturn:
		var r ir.Return
		if len(operands) == 1 {
			r.Value = &operands[0]
		}
		op = r
	default:
		op = code.build(operands)
	}

	if _, defines := ir.ResultType(op); defines {
		if inst.Name == "" {
			return &LoadError{Code: ErrCodeMissingField, Message: fmt.Sprintf("%s defines a value and needs a name", inst.Op)}
		}
		l.b.MakeOperation(op, inst.Name)
		return nil
	}
	if inst.Name != "" {
		return &LoadError{Code: ErrCodeInvalidInst, Message: fmt.Sprintf("%s has no result to name %q", inst.Op, inst.Name)}
	}
	l.b.Emit(op)
	return nil
}

func blockNamed(fn *ir.Function, label string) (*ir.BasicBlock, error) {
	if label == "" {
		return nil, &LoadError{Code: ErrCodeMissingField, Message: "branch target is required"}
	}
	b, ok := fn.BlockNamed(label)
	if !ok {
		return nil, &LoadError{Code: ErrCodeUnknownBlock, Message: fmt.Sprintf("no block labelled %s in function %s", label, fn.Name())}
	}
	return b, nil
}

func parseType(s string) (tensor.Type, error) {
	t, err := tensor.ParseType(s)
	if err != nil {
		return tensor.Type{}, &LoadError{Code: ErrCodeInvalidType, Message: err.Error()}
	}
	return t, nil
}

func arityText(lo, hi int) string {
	switch {
	case hi < 0:
		return fmt.Sprintf("at least %d operand(s)", lo)
	case lo == hi:
		return fmt.Sprintf("%d operand(s)", lo)
	}
	return fmt.Sprintf("%d to %d operands", lo, hi)
}

func codeFor(e *ir.Error) string {
	switch e.Code {
	case ir.ErrCodeNameCollision:
		return ErrCodeDuplicateName
	case ir.ErrCodeInvalidOperand:
		return ErrCodeInvalidInst
	}
	return ErrCodeGeneric
}
