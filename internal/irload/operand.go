package irload

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/tensorir/internal/ir"
	"github.com/roach88/tensorir/internal/tensor"
)

// resolveOperand turns operand text into a use:
//
//	%name          local instruction result or block argument
//	@name          global definition or function
//	#<num>:<type>  literal; tensor types repeat the number
func resolveOperand(m *ir.Module, fn *ir.Function, text string) (ir.Use, error) {
	if len(text) < 2 {
		return ir.Use{}, &LoadError{Code: ErrCodeUnknownOperand, Message: fmt.Sprintf("malformed operand %q", text)}
	}
	name := text[1:]
	switch text[0] {
	case '%':
		v, ok := fn.Lookup(name)
		if !ok {
			return ir.Use{}, &LoadError{Code: ErrCodeUnknownOperand, Message: fmt.Sprintf("%s is not defined before this use", text)}
		}
		switch v := v.(type) {
		case *ir.Instruction:
			return ir.LocalUse(v), nil
		case *ir.Argument:
			return ir.ArgumentUse(v), nil
		}
	case '@':
		if d, ok := m.Global(name); ok {
			return ir.GlobalUse(d), nil
		}
		if f, ok := m.Function(name); ok {
			return ir.FunctionUse(f), nil
		}
		return ir.Use{}, &LoadError{Code: ErrCodeUnknownOperand, Message: fmt.Sprintf("%s is not a global or function", text)}
	case '#':
		lit, err := parseLiteral(name)
		if err != nil {
			return ir.Use{}, err
		}
		return ir.LiteralUse(lit), nil
	}
	return ir.Use{}, &LoadError{Code: ErrCodeUnknownOperand, Message: fmt.Sprintf("operand %q must start with %%, @ or #", text)}
}

// parseLiteral parses "<num>:<type>".
func parseLiteral(text string) (*ir.LiteralValue, error) {
	num, typeText, ok := strings.Cut(text, ":")
	if !ok {
		return nil, &LoadError{Code: ErrCodeInvalidLiteral, Message: fmt.Sprintf("literal %q needs a type, as in #1.0:f32", text)}
	}
	t, err := tensor.ParseType(typeText)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidType, Message: err.Error()}
	}
	return literalOf(t, num)
}

func literalOf(t tensor.Type, num string) (*ir.LiteralValue, error) {
	n, err := parseNumber(t.Base, strings.TrimSpace(num))
	if err != nil {
		return nil, err
	}
	if t.IsTensor() {
		return ir.NewLiteral(t, ir.RepeatingLiteral{Value: n}), nil
	}
	return ir.NewLiteral(t, ir.ScalarLiteral{Value: n}), nil
}

func parseNumber(base tensor.Base, s string) (ir.Number, error) {
	switch base {
	case tensor.BaseBool:
		v, err := strconv.ParseBool(s)
		if err == nil {
			return ir.Bool(v), nil
		}
	case tensor.BaseInt:
		v, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return ir.Int(v), nil
		}
	case tensor.BaseFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return ir.Float(v), nil
		}
	}
	return ir.Number{}, &LoadError{Code: ErrCodeInvalidLiteral, Message: fmt.Sprintf("%q is not a %s number", s, base)}
}
