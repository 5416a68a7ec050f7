package ir

import (
	"github.com/marcom97/pytoc/internal/ast"
	"github.com/marcom97/pytoc/internal/types"
)

var voidType = types.VoidType()

func descriptorOf(t *ast.TypeExpr) types.Descriptor {
	return types.Descriptor{Base: types.Base(t.Name), ArrayDepth: t.ArrDepth}
}
