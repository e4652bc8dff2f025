package tensor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Shape lists tensor dimensions, outermost first.
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s) }

// IsScalar reports whether s has rank zero.
func (s Shape) IsScalar() bool { return len(s) == 0 }

// Equal reports element-wise equality. Nil and empty shapes are equal.
func (s Shape) Equal(o Shape) bool { return slices.Equal(s, o) }

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

// String returns e.g. "2x3". Scalars print as the empty string.
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}

// ParseShape parses the output of Shape.String.
func ParseShape(text string) (Shape, error) {
	if text == "" {
		return nil, nil
	}
	fields := strings.Split(text, "x")
	s := make(Shape, len(fields))
	for i, f := range fields {
		d, err := strconv.Atoi(f)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid dimension %q", f)
		}
		s[i] = d
	}
	return s, nil
}

func (s Shape) valid() bool {
	for _, d := range s {
		if d <= 0 {
			return false
		}
	}
	return true
}

// Product returns the outer-product shape: the dimensions of s followed
// by those of o.
func (s Shape) Product(o Shape) (Shape, bool) {
	if !s.valid() || !o.valid() {
		return nil, false
	}
	return slices.Concat(s, o), true
}

// MatrixMultiplied returns the shape of s × o. Rank-2 operands need
// matching inner dimensions; a rank-1 operand acts as a vector.
func (s Shape) MatrixMultiplied(o Shape) (Shape, bool) {
	switch {
	case s.Rank() == 2 && o.Rank() == 2 && s[1] == o[0]:
		return Shape{s[0], o[1]}, true
	case s.Rank() == 1 && o.Rank() == 2 && s[0] == o[0]:
		return Shape{o[1]}, true
	case s.Rank() == 2 && o.Rank() == 1 && s[1] == o[0]:
		return Shape{s[0]}, true
	}
	return nil, false
}

// Concatenating joins s and o along axis. Ranks must match and every
// other dimension must agree.
func (s Shape) Concatenating(o Shape, axis int) (Shape, bool) {
	if s.Rank() != o.Rank() || axis < 0 || axis >= s.Rank() {
		return nil, false
	}
	out := slices.Clone(s)
	for i := range s {
		if i == axis {
			out[i] = s[i] + o[i]
			continue
		}
		if s[i] != o[i] {
			return nil, false
		}
	}
	return out, true
}
