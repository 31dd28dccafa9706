package codegen

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/errors"
	"github.com/ccdavis/liftc/types"
)

// compileOutput lowers one output_* runtime call per expression, selected
// by its resolved type, followed by a single output_newline once every
// expression in the list has printed.
func (g *CodeGenerator) compileOutput(b *ir.Block, n *ast.Output) (*ir.Block, error) {
	cur := b
	for _, e := range n.Data {
		v, next, err := g.compileExpr(cur, e)
		cur = next
		if err != nil {
			return cur, err
		}
		v, err = requireValue(v, "output argument")
		if err != nil {
			return cur, err
		}
		dt := g.resolveAlias(g.exprType(e))
		fn, err := outputFuncFor(dt)
		if err != nil {
			return cur, err
		}
		if dt.Kind == types.KindBool {
			v = cur.NewTrunc(v, lltypes.I8)
		}
		cur.NewCall(g.runtimeFuncs[fn], v)
	}
	cur.NewCall(g.runtimeFuncs["output_newline"])
	return cur, nil
}

func outputFuncFor(dt *types.DataType) (string, error) {
	switch dt.Kind {
	case types.KindInt, types.KindEnum, types.KindUnsolved:
		return "output_int", nil
	case types.KindFlt:
		return "output_float", nil
	case types.KindBool:
		return "output_bool", nil
	case types.KindStr:
		return "output_str", nil
	case types.KindList:
		return "output_list", nil
	case types.KindMap:
		return "output_map", nil
	case types.KindRange:
		return "output_range", nil
	case types.KindStruct, types.KindTypeRef:
		return "output_struct", nil
	case types.KindSet:
		return "output_set", nil
	default:
		return "", errors.New(errors.UnsupportedDataType, "%s cannot be output", dt)
	}
}
