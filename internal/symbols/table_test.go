package symbols

import (
	"testing"

	"github.com/marcom97/pytoc/internal/ast"
	"github.com/marcom97/pytoc/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos() ast.Position { return ast.Position{Filename: "t.sp", Line: 1, Column: 1} }

func TestDeclareAndLookupVariable(t *testing.T) {
	st := New()
	require.Nil(t, st.DeclareVariable("x", types.Scalar(types.Int), pos()))

	typ, ok := st.LookupVariable("x")
	require.True(t, ok)
	assert.Equal(t, types.Scalar(types.Int), typ)
}

func TestRedeclarationInSameScopeFails(t *testing.T) {
	st := New()
	require.Nil(t, st.DeclareVariable("x", types.Scalar(types.Int), pos()))
	err := st.DeclareVariable("x", types.Scalar(types.Bool), pos())
	require.NotNil(t, err)
	assert.Equal(t, "E0001", err.Code)
}

func TestShadowingOuterScopeIsAllowed(t *testing.T) {
	st := New()
	require.Nil(t, st.DeclareVariable("x", types.Scalar(types.Int), pos()))
	st.PushScope()
	err := st.DeclareVariable("x", types.Scalar(types.Str), pos())
	assert.Nil(t, err)

	typ, ok := st.LookupVariable("x")
	require.True(t, ok)
	assert.Equal(t, types.Scalar(types.Str), typ)

	st.PopScope()
	typ, ok = st.LookupVariable("x")
	require.True(t, ok)
	assert.Equal(t, types.Scalar(types.Int), typ)
}

func TestLookupUnboundVariableReturnsFalse(t *testing.T) {
	st := New()
	_, ok := st.LookupVariable("missing")
	assert.False(t, ok)
}

func TestPopScopeWithNoEnclosingScopePanics(t *testing.T) {
	st := New()
	assert.Panics(t, func() { st.PopScope() })
}

func TestFunctionRegistryOutlivesScopePops(t *testing.T) {
	st := New()
	sig := Signature{ParamTypes: []types.Descriptor{types.Scalar(types.Int)}, ReturnType: types.Scalar(types.Int)}
	require.Nil(t, st.DeclareFunc("add", sig, pos()))

	st.PushScope()
	st.PopScope()

	got, err := st.LookupFunc("add", pos())
	require.Nil(t, err)
	assert.Equal(t, sig, got)
}

func TestRedeclaringFunctionFails(t *testing.T) {
	st := New()
	sig := Signature{ReturnType: types.Scalar(types.Int)}
	require.Nil(t, st.DeclareFunc("f", sig, pos()))
	err := st.DeclareFunc("f", sig, pos())
	require.NotNil(t, err)
	assert.Equal(t, "E0001", err.Code)
}

func TestLookupUndefinedFunctionFails(t *testing.T) {
	st := New()
	_, err := st.LookupFunc("nope", pos())
	require.NotNil(t, err)
	assert.Equal(t, "E0003", err.Code)
}
