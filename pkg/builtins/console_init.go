package builtins

import (
	"questc/pkg/ast"
	"questc/pkg/types"
)

type ConsoleInitializer struct{}

func (c *ConsoleInitializer) Name() string  { return "Console" }
func (c *ConsoleInitializer) Priority() int { return PriorityConsole }

func (c *ConsoleInitializer) InitTypes(ctx *TypeContext) error {
	return defineIntrinsics(ctx,
		intrinsic(ast.Echo, types.NewFunctionType([]types.Type{types.Any}, types.Void)),
		intrinsic(ast.Input, types.NewFunctionType([]types.Type{types.String}, types.String)),
	)
}

type FileSystemInitializer struct{}

func (f *FileSystemInitializer) Name() string  { return "FileSystem" }
func (f *FileSystemInitializer) Priority() int { return PriorityFileSystem }

func (f *FileSystemInitializer) InitTypes(ctx *TypeContext) error {
	return defineIntrinsics(ctx,
		intrinsic(ast.ReadFile, types.NewFunctionType([]types.Type{types.String}, types.String)),
		intrinsic(ast.WriteFile, types.NewFunctionType([]types.Type{types.String, types.String}, types.Boolean)),
	)
}
