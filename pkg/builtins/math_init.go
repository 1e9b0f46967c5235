package builtins

import (
	"questc/pkg/ast"
	"questc/pkg/types"
)

// Pi is the circle ratio constant. The emitter recognises it by identity.
var Pi = &ast.Variable{Name: "π", Mutable: false, Typ: types.Float}

type MathInitializer struct{}

func (m *MathInitializer) Name() string  { return "Math" }
func (m *MathInitializer) Priority() int { return PriorityMath }

func (m *MathInitializer) InitTypes(ctx *TypeContext) error {
	floatToFloat := types.NewFunctionType([]types.Type{types.Float}, types.Float)
	floatFloatToFloat := types.NewFunctionType([]types.Type{types.Float, types.Float}, types.Float)

	if err := ctx.DefineGlobal(Pi.Name, Pi); err != nil {
		return err
	}
	return defineIntrinsics(ctx,
		intrinsic(ast.Sqrt, floatToFloat),
		intrinsic(ast.Sin, floatToFloat),
		intrinsic(ast.Cos, floatToFloat),
		intrinsic(ast.Exp, floatToFloat),
		intrinsic(ast.Ln, floatToFloat),
		intrinsic(ast.Hypot, floatFloatToFloat),
		intrinsic(ast.RandomInt, types.NewFunctionType([]types.Type{types.Int, types.Int}, types.Int)),
	)
}

func intrinsic(tag ast.Intrinsic, typ *types.FunctionType) *ast.Function {
	return &ast.Function{Name: tag.String(), Typ: typ, Intrinsic: tag}
}

func defineIntrinsics(ctx *TypeContext, fns ...*ast.Function) error {
	for _, fn := range fns {
		if err := ctx.DefineGlobal(fn.Name, fn); err != nil {
			return err
		}
	}
	return nil
}
