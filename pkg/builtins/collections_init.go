package builtins

import (
	"questc/pkg/ast"
	"questc/pkg/types"
)

// CollectionsInitializer binds the array intrinsics. They accept any array
// because every array type is assignable to [any].
type CollectionsInitializer struct{}

func (c *CollectionsInitializer) Name() string  { return "Collections" }
func (c *CollectionsInitializer) Priority() int { return PriorityCollections }

func (c *CollectionsInitializer) InitTypes(ctx *TypeContext) error {
	anyArray := types.NewArrayType(types.Any)
	return defineIntrinsics(ctx,
		intrinsic(ast.Push, types.NewFunctionType([]types.Type{anyArray, types.Any}, types.Any)),
		intrinsic(ast.Pop, types.NewFunctionType([]types.Type{anyArray}, types.Any)),
		intrinsic(ast.Length, types.NewFunctionType([]types.Type{anyArray}, types.Int)),
	)
}

// ConversionsInitializer binds the value conversion intrinsics.
type ConversionsInitializer struct{}

func (c *ConversionsInitializer) Name() string  { return "Conversions" }
func (c *ConversionsInitializer) Priority() int { return PriorityConversions }

func (c *ConversionsInitializer) InitTypes(ctx *TypeContext) error {
	return defineIntrinsics(ctx,
		intrinsic(ast.ToString, types.NewFunctionType([]types.Type{types.Any}, types.String)),
		intrinsic(ast.ToInt, types.NewFunctionType([]types.Type{types.Any}, types.Int)),
		intrinsic(ast.ToFloat, types.NewFunctionType([]types.Type{types.Int}, types.Float)),
	)
}
