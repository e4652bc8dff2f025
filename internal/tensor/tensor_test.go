package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_String(t *testing.T) {
	assert.Equal(t, "f32", Scalar(Float32).String())
	assert.Equal(t, "f32[2x3]", Tensor(Float32, 2, 3).String())
	assert.Equal(t, "bool[4]", Tensor(Bool, 4).String())
	assert.Equal(t, "i64", Scalar(Int64).String())
	assert.Equal(t, "b8", Scalar(DataType{Base: BaseBool, Size: 8}).String())
}

func TestParseType_RoundTrip(t *testing.T) {
	for _, text := range []string{"f32", "f64[1x784]", "bool", "i32[2x3x4]", "b8"} {
		ty, err := ParseType(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, ty.String())
	}
}

func TestParseType_Invalid(t *testing.T) {
	for _, text := range []string{"", "x32", "f", "f0", "f32[2x", "f32[2xa]", "f32[0]"} {
		_, err := ParseType(text)
		assert.Error(t, err, text)
	}
}

func TestType_ScalarType(t *testing.T) {
	ty := Tensor(Float32, 2, 2)
	assert.True(t, ty.IsTensor())
	assert.False(t, ty.ScalarType().IsTensor())
	assert.Equal(t, Float32, ty.ScalarType().DataType)
}

func TestType_Equal(t *testing.T) {
	assert.True(t, Tensor(Int32, 2).Equal(Tensor(Int32, 2)))
	assert.False(t, Tensor(Int32, 2).Equal(Tensor(Int64, 2)))
	assert.False(t, Tensor(Int32, 2).Equal(Scalar(Int32)))
	assert.True(t, Scalar(Int32).Equal(Type{DataType: Int32, Shape: Shape{}}))
}

func TestTensor_DoesNotAliasDims(t *testing.T) {
	dims := []int{2, 3}
	ty := Tensor(Float32, dims...)
	dims[0] = 99
	assert.Equal(t, Shape{2, 3}, ty.Shape)
}

func TestShape_Product(t *testing.T) {
	s, ok := Shape{2, 3}.Product(Shape{4})
	require.True(t, ok)
	assert.Equal(t, Shape{2, 3, 4}, s)

	_, ok = Shape{2, 0}.Product(Shape{4})
	assert.False(t, ok)
}

func TestShape_MatrixMultiplied(t *testing.T) {
	cases := []struct {
		lhs, rhs Shape
		want     Shape
		ok       bool
	}{
		{Shape{2, 3}, Shape{3, 4}, Shape{2, 4}, true},
		{Shape{3}, Shape{3, 4}, Shape{4}, true},
		{Shape{2, 3}, Shape{3}, Shape{2}, true},
		{Shape{2, 3}, Shape{4, 5}, nil, false},
		{Shape{2, 3, 4}, Shape{4, 5}, nil, false},
	}
	for _, tc := range cases {
		got, ok := tc.lhs.MatrixMultiplied(tc.rhs)
		assert.Equal(t, tc.ok, ok, "%v x %v", tc.lhs, tc.rhs)
		if tc.ok {
			assert.Equal(t, tc.want, got)
		}
	}
}

func TestShape_Concatenating(t *testing.T) {
	s, ok := Shape{2, 3}.Concatenating(Shape{5, 3}, 0)
	require.True(t, ok)
	assert.Equal(t, Shape{7, 3}, s)

	s, ok = Shape{2, 3}.Concatenating(Shape{2, 1}, 1)
	require.True(t, ok)
	assert.Equal(t, Shape{2, 4}, s)

	_, ok = Shape{2, 3}.Concatenating(Shape{2, 4}, 0)
	assert.False(t, ok, "non-axis dimension mismatch")
	_, ok = Shape{2, 3}.Concatenating(Shape{2}, 0)
	assert.False(t, ok, "rank mismatch")
	_, ok = Shape{2, 3}.Concatenating(Shape{2, 3}, 2)
	assert.False(t, ok, "axis out of range")
}

func TestShape_ConcatenatingDoesNotMutateReceiver(t *testing.T) {
	base := Shape{2, 3}
	_, ok := base.Concatenating(Shape{1, 3}, 0)
	require.True(t, ok)
	assert.Equal(t, Shape{2, 3}, base)
}
