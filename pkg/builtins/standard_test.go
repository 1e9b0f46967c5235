package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questc/pkg/ast"
	"questc/pkg/types"
)

func TestStandardLibrarySignatures(t *testing.T) {
	lib := StandardLibrary()
	anyArray := types.NewArrayType(types.Any)

	tests := []struct {
		name string
		want types.Type
	}{
		{"echo", types.NewFunctionType([]types.Type{types.Any}, types.Void)},
		{"sqrt", types.NewFunctionType([]types.Type{types.Float}, types.Float)},
		{"sin", types.NewFunctionType([]types.Type{types.Float}, types.Float)},
		{"cos", types.NewFunctionType([]types.Type{types.Float}, types.Float)},
		{"exp", types.NewFunctionType([]types.Type{types.Float}, types.Float)},
		{"ln", types.NewFunctionType([]types.Type{types.Float}, types.Float)},
		{"hypot", types.NewFunctionType([]types.Type{types.Float, types.Float}, types.Float)},
		{"push", types.NewFunctionType([]types.Type{anyArray, types.Any}, types.Any)},
		{"pop", types.NewFunctionType([]types.Type{anyArray}, types.Any)},
		{"length", types.NewFunctionType([]types.Type{anyArray}, types.Int)},
		{"randomInt", types.NewFunctionType([]types.Type{types.Int, types.Int}, types.Int)},
		{"toString", types.NewFunctionType([]types.Type{types.Any}, types.String)},
		{"toInt", types.NewFunctionType([]types.Type{types.Any}, types.Int)},
		{"toFloat", types.NewFunctionType([]types.Type{types.Int}, types.Float)},
		{"readFile", types.NewFunctionType([]types.Type{types.String}, types.String)},
		{"writeFile", types.NewFunctionType([]types.Type{types.String, types.String}, types.Boolean)},
		{"input", types.NewFunctionType([]types.Type{types.String}, types.String)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := lib.Lookup(tt.name)
			require.True(t, ok)
			fn, ok := e.(*ast.Function)
			require.True(t, ok)
			assert.True(t, fn.IsIntrinsic())
			assert.Equal(t, tt.name, fn.Intrinsic.String())
			assert.Truef(t, types.Equivalent(tt.want, fn.Type()), "got %s", types.Description(fn.Type()))
		})
	}
}

func TestEveryIntrinsicIsBound(t *testing.T) {
	lib := StandardLibrary()
	for _, tag := range ast.Intrinsics() {
		fn := lib.Intrinsic(tag)
		require.NotNilf(t, fn, "%s", tag)
		assert.Equal(t, tag, fn.Intrinsic)
	}
}

func TestPrimitivesAndConstant(t *testing.T) {
	lib := StandardLibrary()
	for _, p := range types.Primitives {
		e, ok := lib.Lookup(p.Name)
		require.True(t, ok)
		assert.Same(t, p, e)
	}

	e, ok := lib.Lookup("π")
	require.True(t, ok)
	assert.Same(t, Pi, e)
	assert.False(t, Pi.Mutable)
	assert.Equal(t, types.Float, Pi.Typ)

	assert.Equal(t, "int", lib.Names()[0])
	assert.Len(t, lib.Names(), len(types.Primitives)+1+len(ast.Intrinsics()))
}

func TestStandardLibraryIsShared(t *testing.T) {
	assert.Same(t, StandardLibrary(), StandardLibrary())
}

type duplicateInitializer struct{}

func (d *duplicateInitializer) Name() string  { return "Duplicate" }
func (d *duplicateInitializer) Priority() int { return 1 }
func (d *duplicateInitializer) InitTypes(ctx *TypeContext) error {
	return ctx.DefineGlobal("int", types.Int)
}

func TestNewTableRejectsDuplicates(t *testing.T) {
	_, err := NewTable([]BuiltinInitializer{&PrimitivesInitializer{}, &duplicateInitializer{}})
	assert.EqualError(t, err, `Duplicate: "int" is already defined`)
}
