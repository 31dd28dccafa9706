package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/errors"
)

// compileLiteral lowers an immediate constant to its machine value.
func (g *CodeGenerator) compileLiteral(b *ir.Block, lit *ast.LiteralExpr) (value.Value, *ir.Block, error) {
	switch lit.LitKind {
	case ast.LitInt:
		return constant.NewInt(lltypes.I64, lit.IntVal), b, nil
	case ast.LitBool:
		v := int64(0)
		if lit.BoolVal {
			v = 1
		}
		return constant.NewInt(lltypes.I64, v), b, nil
	case ast.LitFlt:
		return constant.NewFloat(lltypes.Double, lit.FltVal), b, nil
	case ast.LitStr:
		return g.compileStringLiteral(b, lit.StrVal)
	default:
		return nil, b, errors.New(errors.TypeMismatch, "unknown literal kind %d", lit.LitKind)
	}
}

// compileStringLiteral materializes the bytes (plus a NUL byte) as a
// module-level constant array, takes its address, and calls str_new,
// which copies into a heap-owned runtime string. Using a module-global
// constant rather than re-materializing into a per-call function-scope
// stack buffer keeps the identical literal's bytes de-duped across
// calls; str_new still owns a fresh heap copy every time it runs.
func (g *CodeGenerator) compileStringLiteral(b *ir.Block, s string) (value.Value, *ir.Block, error) {
	bytes := append([]byte(s), 0)
	arrType := lltypes.NewArray(uint64(len(bytes)), lltypes.I8)
	name := fmt.Sprintf(".str.%d", g.strCount)
	g.strCount++

	global := g.module.NewGlobalDef(name, constant.NewCharArray(bytes))
	global.Typ = lltypes.NewPointer(arrType)
	global.Immutable = true

	zero := constant.NewInt(lltypes.I64, 0)
	ptr := constant.NewGetElementPtr(arrType, global, zero, zero)

	strNew := g.runtimeFuncs["str_new"]
	call := b.NewCall(strNew, ptr)
	return call, b, nil
}
