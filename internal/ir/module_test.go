package ir

import (
	"slices"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tensorir/internal/tensor"
)

func TestModule_SharedNamespace(t *testing.T) {
	m := NewModule("m")
	w := NewDef("w", NewGlobalValue(vec2, nil, false))
	m.Declare(w)

	err := recoverError(func() { m.Append(NewFunction("w", vec2)) })
	require.NotNil(t, err)
	assert.True(t, IsNameCollision(err))

	fn := NewFunction("f", vec2)
	m.Append(fn)
	err = recoverError(func() { m.Declare(NewDef("f", NewPlaceholder(vec2))) })
	require.NotNil(t, err)
	assert.True(t, IsNameCollision(err))

	got, ok := m.Global("w")
	require.True(t, ok)
	assert.Same(t, w, got)
	_, ok = m.Global("f")
	assert.False(t, ok, "f names a function")
	gotFn, ok := m.Function("f")
	require.True(t, ok)
	assert.Same(t, fn, gotFn)
}

func TestModule_DeclareRequiresGlobalScope(t *testing.T) {
	m := NewModule("m")
	lit := NewLiteral(vec2, RepeatingLiteral{Value: Float(1)})
	err := recoverError(func() { m.Declare(NewDef("k", lit)) })
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeInvalidOperand, err.Code)
	assert.Equal(t, 0, m.GlobalCount())
}

func TestModule_DeclareTwicePanics(t *testing.T) {
	a, b := NewModule("a"), NewModule("b")
	d := NewDef("w", NewPlaceholder(vec2))
	a.Declare(d)

	err := recoverError(func() { b.Declare(d) })
	require.NotNil(t, err)
	assert.True(t, IsAlreadyOwned(err))
	assert.Same(t, a, d.Module())
}

func TestModule_Undeclare(t *testing.T) {
	m := NewModule("m")
	d := NewDef("w", NewPlaceholder(vec2))
	m.Declare(d)

	m.Undeclare(d)
	assert.Nil(t, d.Module())
	assert.False(t, m.Has("w"))

	err := recoverError(func() { m.Undeclare(d) })
	require.NotNil(t, err)
	assert.True(t, IsNotInParent(err))
}

func TestFunction_IdentityInModule(t *testing.T) {
	m := NewModule("m")
	f, g := NewFunction("f", vec2), NewFunction("g", vec2)
	m.Append(f)
	m.Append(g)

	assert.Equal(t, 1, g.IndexInParent())
	g.RemoveFromParent()
	assert.False(t, g.ExistsInParent())
	assert.Equal(t, []*Function{f}, slices.Collect(m.Functions()))
	assert.False(t, m.Has("g"))

	err := recoverError(func() { g.IndexInParent() })
	require.NotNil(t, err)
	assert.True(t, IsNotInParent(err))
}

func TestDef_ScopeFollowsValue(t *testing.T) {
	assert.Equal(t, ScopeGlobal, NewDef("p", NewPlaceholder(vec2)).Scope())
	assert.Equal(t, ScopeNone, NewDef("k", NewLiteral(vec2, ScalarLiteral{Value: Int(1)})).Scope())
	b := NewBasicBlock("b")
	assert.Equal(t, ScopeLocal, NewDef("a", b.AddArgument("a", vec2)).Scope())
}

func TestMakeZero(t *testing.T) {
	assert.Equal(t, "0.0", MakeZero(NewPlaceholder(tensor.Scalar(tensor.Float32))).Literal.String())
	assert.Equal(t, "repeating 0", MakeZero(NewPlaceholder(tensor.Tensor(tensor.Int32, 3))).Literal.String())
	assert.Equal(t, "false", MakeZero(NewPlaceholder(tensor.Scalar(tensor.Bool))).Literal.String())

	z := MakeZero(NewPlaceholder(vec2))
	assert.True(t, z.Type().Equal(vec2))
	assert.Equal(t, ScopeNone, z.Scope())
}

func TestLiteral_String(t *testing.T) {
	assert.Equal(t, "[1, 2, 3]", ElementsLiteral{Elements: []Number{Int(1), Int(2), Int(3)}}.String())
	assert.Equal(t, "random 0.0 to 1.5", RandomLiteral{From: Float(0), To: Float(1.5)}.String())
	assert.Equal(t, "1e+21", Float(1e21).String())
	assert.Equal(t, tensor.BaseFloat, ElementsLiteral{}.Base())
}

// demoModule exercises every printer branch.
func demoModule() *Module {
	m := NewModule("demo")
	f32x2x2 := tensor.Tensor(tensor.Float32, 2, 2)
	row := tensor.Tensor(tensor.Float32, 1, 2)

	w := NewDef("w", NewGlobalValue(f32x2x2, MakeZero(NewPlaceholder(f32x2x2)), false))
	m.Declare(w)
	m.Declare(NewDef("x", NewPlaceholder(row)))
	m.Declare(NewDef("step", NewGlobalValue(tensor.Scalar(tensor.Int64), nil, true)))

	fn := NewFunction("main", row)
	m.Append(fn)
	entry, pos, neg, exit := NewBasicBlock("entry"), NewBasicBlock("pos"), NewBasicBlock("neg"), NewBasicBlock("exit")
	for _, b := range []*BasicBlock{entry, pos, neg, exit} {
		fn.Append(b)
	}

	in := ArgumentUse(entry.AddArgument("in", row))
	h := NewInstruction("h", MatrixMultiply{LHS: in, RHS: GlobalUse(w)})
	entry.Append(h)
	s := NewInstruction("s", ShapeCast{Operand: LocalUse(h), Target: tensor.Shape{2}})
	entry.Append(s)
	entry.Append(NewInstruction("t", TypeCast{Operand: LocalUse(s), TargetBase: tensor.BaseFloat, TargetSize: 64}))
	entry.Append(NewInstruction("k", Concatenate{Values: []Use{in, LocalUse(h)}, Axis: 0}))
	entry.Append(NewInstruction("", Store{Source: LocalUse(h), Destination: GlobalUse(w)}))
	c := NewInstruction("c", Compare{Predicate: GreaterThan, LHS: LocalUse(h), RHS: floatLit(0)})
	entry.Append(c)
	entry.Append(NewInstruction("", CondBranch{Condition: LocalUse(c), Then: pos, Else: neg}))

	pos.Append(NewInstruction("r", Elementwise{Function: ReLU, Operand: LocalUse(h)}))
	pos.Append(NewInstruction("", Branch{Target: exit}))
	neg.Append(NewInstruction("n", Elementwise{Function: Neg, Operand: LocalUse(h)}))
	neg.Append(NewInstruction("", Branch{Target: exit}))

	ret := LocalUse(h)
	exit.Append(NewInstruction("", Return{Value: &ret}))
	return m
}

func TestFprint_Golden(t *testing.T) {
	m := demoModule()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "printer_demo", []byte(m.String()))
}

func TestFprint_ResultTypes(t *testing.T) {
	m := demoModule()
	fn, ok := m.Function("main")
	require.True(t, ok)

	want := map[string]string{
		"h": "f32[1x2]",
		"s": "f32[2]",
		"t": "f64[2]",
		"k": "f32[2x2]",
		"c": "bool[1x2]",
	}
	for name, typ := range want {
		v, ok := fn.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, typ, v.Type().String(), name)
	}
}
