package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/errors"
	"github.com/ccdavis/liftc/types"
)

// compileBinaryExpr lowers a BinaryExpr: the left operand's
// alias-resolved type selects string dispatch, float
// arithmetic/comparison, or integer arithmetic/comparison.
func (g *CodeGenerator) compileBinaryExpr(b *ir.Block, n *ast.BinaryExpr) (value.Value, *ir.Block, error) {
	leftType := g.resolveAlias(g.exprType(n.Left))

	left, cur, err := g.compileExpr(b, n.Left)
	if err != nil {
		return nil, cur, err
	}
	left, err = requireValue(left, "left operand of "+n.Op.String())
	if err != nil {
		return nil, cur, err
	}
	right, cur, err := g.compileExpr(cur, n.Right)
	if err != nil {
		return nil, cur, err
	}
	right, err = requireValue(right, "right operand of "+n.Op.String())
	if err != nil {
		return nil, cur, err
	}

	if leftType.Kind == types.KindStr {
		return g.compileStringBinaryExpr(cur, n.Op, left, right)
	}
	if leftType.Kind == types.KindFlt {
		return g.compileFloatBinaryExpr(cur, n.Op, left, right)
	}
	return g.compileIntBinaryExpr(cur, n.Op, left, right)
}

func (g *CodeGenerator) compileStringBinaryExpr(b *ir.Block, op ast.BinaryOp, left, right value.Value) (value.Value, *ir.Block, error) {
	switch op {
	case ast.OpAdd:
		return b.NewCall(g.runtimeFuncs["str_concat"], left, right), b, nil
	case ast.OpEq:
		eq := b.NewCall(g.runtimeFuncs["str_eq"], left, right)
		return b.NewZExt(eq, lltypes.I64), b, nil
	case ast.OpNeq:
		eq := b.NewCall(g.runtimeFuncs["str_eq"], left, right)
		notEq := b.NewXor(eq, constI8One())
		return b.NewZExt(notEq, lltypes.I64), b, nil
	default:
		return nil, b, errors.New(errors.TypeMismatch, "operator '%s' is not defined for Str operands", op)
	}
}

func (g *CodeGenerator) compileFloatBinaryExpr(b *ir.Block, op ast.BinaryOp, left, right value.Value) (value.Value, *ir.Block, error) {
	switch op {
	case ast.OpAdd:
		return b.NewFAdd(left, right), b, nil
	case ast.OpSub:
		return b.NewFSub(left, right), b, nil
	case ast.OpMul:
		return b.NewFMul(left, right), b, nil
	case ast.OpDiv:
		return b.NewFDiv(left, right), b, nil
	case ast.OpGt:
		return zextI64(b, b.NewFCmp(enum.FPredOGT, left, right)), b, nil
	case ast.OpLt:
		return zextI64(b, b.NewFCmp(enum.FPredOLT, left, right)), b, nil
	case ast.OpGte:
		return zextI64(b, b.NewFCmp(enum.FPredOGE, left, right)), b, nil
	case ast.OpLte:
		return zextI64(b, b.NewFCmp(enum.FPredOLE, left, right)), b, nil
	case ast.OpEq:
		return zextI64(b, b.NewFCmp(enum.FPredOEQ, left, right)), b, nil
	case ast.OpNeq:
		return zextI64(b, b.NewFCmp(enum.FPredONE, left, right)), b, nil
	default:
		return nil, b, errors.New(errors.TypeMismatch, "operator '%s' is not defined for Flt operands", op)
	}
}

// compileIntBinaryExpr covers Int, Bool and Enum operands, all carried as
// 64-bit integers. And/Or evaluate both operands eagerly; both operands
// were already lowered by the caller before this function runs, so no
// short-circuit branch is possible here by construction.
func (g *CodeGenerator) compileIntBinaryExpr(b *ir.Block, op ast.BinaryOp, left, right value.Value) (value.Value, *ir.Block, error) {
	switch op {
	case ast.OpAdd:
		return b.NewAdd(left, right), b, nil
	case ast.OpSub:
		return b.NewSub(left, right), b, nil
	case ast.OpMul:
		return b.NewMul(left, right), b, nil
	case ast.OpDiv:
		return b.NewSDiv(left, right), b, nil
	case ast.OpGt:
		return zextI64(b, b.NewICmp(enum.IPredSGT, left, right)), b, nil
	case ast.OpLt:
		return zextI64(b, b.NewICmp(enum.IPredSLT, left, right)), b, nil
	case ast.OpGte:
		return zextI64(b, b.NewICmp(enum.IPredSGE, left, right)), b, nil
	case ast.OpLte:
		return zextI64(b, b.NewICmp(enum.IPredSLE, left, right)), b, nil
	case ast.OpEq:
		return zextI64(b, b.NewICmp(enum.IPredEQ, left, right)), b, nil
	case ast.OpNeq:
		return zextI64(b, b.NewICmp(enum.IPredNE, left, right)), b, nil
	case ast.OpAnd:
		return b.NewAnd(left, right), b, nil
	case ast.OpOr:
		return b.NewOr(left, right), b, nil
	default:
		return nil, b, errors.New(errors.TypeMismatch, "unknown binary operator '%s'", op)
	}
}

// compileUnaryExpr lowers a UnaryExpr.
func (g *CodeGenerator) compileUnaryExpr(b *ir.Block, n *ast.UnaryExpr) (value.Value, *ir.Block, error) {
	v, cur, err := g.compileExpr(b, n.Expr)
	if err != nil {
		return nil, cur, err
	}
	v, err = requireValue(v, "operand of unary "+n.Op.String())
	if err != nil {
		return nil, cur, err
	}
	switch n.Op {
	case ast.OpNeg:
		return cur.NewSub(constant0(), v), cur, nil
	case ast.OpNot:
		cmp := cur.NewICmp(enum.IPredEQ, v, constant0())
		return zextI64(cur, cmp), cur, nil
	default:
		return nil, cur, errors.New(errors.TypeMismatch, "unknown unary operator")
	}
}

func zextI64(b *ir.Block, cmp value.Value) value.Value {
	return b.NewZExt(cmp, lltypes.I64)
}
