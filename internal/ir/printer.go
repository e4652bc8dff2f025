package ir

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/tensorir/internal/tensor"
)

// Fprint writes the text form of m to w.
//
// The output is deterministic: globals then functions, each in list
// order. It is meant for humans and golden tests; there is no parser.
func Fprint(w io.Writer, m *Module) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "module %s\n", m.name)
	if m.globals.Len() > 0 {
		bw.WriteString("\n")
	}
	for d := range m.globals.All() {
		bw.WriteString(formatGlobal(d))
		bw.WriteString("\n")
	}
	for fn := range m.functions.All() {
		bw.WriteString("\n")
		writeFunction(bw, fn)
	}
	return bw.Flush()
}

// String returns the text form of m.
func (m *Module) String() string {
	var sb strings.Builder
	_ = Fprint(&sb, m)
	return sb.String()
}

// String returns the text form of f.
func (f *Function) String() string {
	var sb strings.Builder
	bw := bufio.NewWriter(&sb)
	writeFunction(bw, f)
	_ = bw.Flush()
	return sb.String()
}

// String returns the text form of i, without indentation.
func (i *Instruction) String() string {
	if i.result {
		return "%" + i.name + " = " + formatOp(i.op)
	}
	return formatOp(i.op)
}

func formatGlobal(d *Def) string {
	switch v := d.value.(type) {
	case *GlobalValue:
		kw := "let"
		if v.Mutable {
			kw = "var"
		}
		if v.Initializer != nil {
			return fmt.Sprintf("%s @%s : %s = %s", kw, d.name, v.typ, v.Initializer.Literal)
		}
		return fmt.Sprintf("%s @%s : %s", kw, d.name, v.typ)
	case *Placeholder:
		return fmt.Sprintf("placeholder @%s : %s", d.name, v.typ)
	}
	return fmt.Sprintf("declare @%s : %s", d.name, d.Type())
}

func writeFunction(w *bufio.Writer, f *Function) {
	fmt.Fprintf(w, "func @%s -> %s {\n", f.name, f.result)
	for b := range f.blocks.All() {
		w.WriteString(b.name)
		if len(b.args) > 0 {
			args := make([]string, len(b.args))
			for i, a := range b.args {
				args[i] = fmt.Sprintf("%%%s : %s", a.name, a.typ)
			}
			w.WriteString("(" + strings.Join(args, ", ") + ")")
		}
		w.WriteString(":\n")
		for inst := range b.insts.All() {
			w.WriteString("  " + inst.String() + "\n")
		}
	}
	w.WriteString("}\n")
}

func formatOp(op Op) string {
	switch o := op.(type) {
	case Concatenate:
		return fmt.Sprintf("concat %s along %d", joinUses(o.Values), o.Axis)
	case ShapeCast:
		return fmt.Sprintf("shapeCast %s to %s", o.Operand, o.Target)
	case TypeCast:
		return fmt.Sprintf("typeCast %s to %s", o.Operand, tensor.DataType{Base: o.TargetBase, Size: o.TargetSize})
	case Store:
		return fmt.Sprintf("store %s to %s", o.Source, o.Destination)
	case Branch:
		return "br " + o.Target.name
	case CondBranch:
		return fmt.Sprintf("condbr %s then %s else %s", o.Condition, o.Then.name, o.Else.name)
	case Return:
		if o.Value == nil {
			return "return"
		}
		return "return " + o.Value.String()
	}
	return op.Opcode() + " " + joinUses(op.Operands())
}

func joinUses(uses []Use) string {
	parts := make([]string, len(uses))
	for i, u := range uses {
		parts[i] = u.String()
	}
	return strings.Join(parts, ", ")
}
