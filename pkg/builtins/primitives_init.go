package builtins

import (
	"questc/pkg/types"
)

// PrimitivesInitializer binds the primitive type names.
type PrimitivesInitializer struct{}

func (p *PrimitivesInitializer) Name() string  { return "Primitives" }
func (p *PrimitivesInitializer) Priority() int { return PriorityPrimitives }

func (p *PrimitivesInitializer) InitTypes(ctx *TypeContext) error {
	for _, prim := range types.Primitives {
		if err := ctx.DefineGlobal(prim.Name, prim); err != nil {
			return err
		}
	}
	return nil
}
