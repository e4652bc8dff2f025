// Package tensor holds the data type and shape metadata attached to IR values.
//
// The IR treats these as opaque comparable values. Only the shape
// combinators needed for instruction result types live here.
package tensor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Base is the element kind of a type.
type Base uint8

const (
	BaseBool Base = iota
	BaseInt
	BaseFloat
)

var baseNames = [...]string{
	BaseBool:  "bool",
	BaseInt:   "int",
	BaseFloat: "float",
}

// String returns the base name.
func (b Base) String() string {
	if int(b) < len(baseNames) {
		return baseNames[b]
	}
	return "unknown"
}

// DataType is an element base plus its size in bits.
type DataType struct {
	Base Base
	Size int
}

// Common element types.
var (
	Bool    = DataType{Base: BaseBool, Size: 1}
	Int32   = DataType{Base: BaseInt, Size: 32}
	Int64   = DataType{Base: BaseInt, Size: 64}
	Float32 = DataType{Base: BaseFloat, Size: 32}
	Float64 = DataType{Base: BaseFloat, Size: 64}
)

// String returns the short form: bool, i32, f64, ...
func (d DataType) String() string {
	switch d.Base {
	case BaseBool:
		if d.Size == 1 {
			return "bool"
		}
		return "b" + strconv.Itoa(d.Size)
	case BaseInt:
		return "i" + strconv.Itoa(d.Size)
	case BaseFloat:
		return "f" + strconv.Itoa(d.Size)
	}
	return fmt.Sprintf("?%d", d.Size)
}

// Type is the (data type, shape) pair carried by every value. A nil or
// empty shape denotes a scalar.
type Type struct {
	DataType
	Shape Shape
}

// Scalar returns a scalar type of the given element type.
func Scalar(d DataType) Type {
	return Type{DataType: d}
}

// Tensor returns a tensor type with the given dimensions.
func Tensor(d DataType, dims ...int) Type {
	return Type{DataType: d, Shape: Shape(slices.Clone(dims))}
}

// IsTensor reports whether t has rank one or more.
func (t Type) IsTensor() bool { return t.Shape.Rank() > 0 }

// ScalarType returns the element type with the shape collapsed.
func (t Type) ScalarType() Type { return Type{DataType: t.DataType} }

// WithShape returns t with its shape replaced.
func (t Type) WithShape(s Shape) Type {
	return Type{DataType: t.DataType, Shape: s.Clone()}
}

// Equal reports structural equality.
func (t Type) Equal(o Type) bool {
	return t.DataType == o.DataType && t.Shape.Equal(o.Shape)
}

// String returns e.g. "f32" or "f32[2x3]".
func (t Type) String() string {
	if !t.IsTensor() {
		return t.DataType.String()
	}
	return t.DataType.String() + "[" + t.Shape.String() + "]"
}

// ParseDataType parses the output of DataType.String.
func ParseDataType(s string) (DataType, error) {
	if s == "bool" {
		return Bool, nil
	}
	if len(s) < 2 {
		return DataType{}, fmt.Errorf("invalid data type %q", s)
	}
	var base Base
	switch s[0] {
	case 'b':
		base = BaseBool
	case 'i':
		base = BaseInt
	case 'f':
		base = BaseFloat
	default:
		return DataType{}, fmt.Errorf("invalid data type %q: unknown base", s)
	}
	size, err := strconv.Atoi(s[1:])
	if err != nil || size <= 0 {
		return DataType{}, fmt.Errorf("invalid data type %q: bad size", s)
	}
	return DataType{Base: base, Size: size}, nil
}

// ParseType parses the output of Type.String.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	elem, dims, hasShape := strings.Cut(s, "[")
	d, err := ParseDataType(elem)
	if err != nil {
		return Type{}, err
	}
	if !hasShape {
		return Scalar(d), nil
	}
	dims, ok := strings.CutSuffix(dims, "]")
	if !ok {
		return Type{}, fmt.Errorf("invalid type %q: unterminated shape", s)
	}
	shape, err := ParseShape(dims)
	if err != nil {
		return Type{}, fmt.Errorf("invalid type %q: %w", s, err)
	}
	return Type{DataType: d, Shape: shape}, nil
}
