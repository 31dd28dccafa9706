package semantic

import (
	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/types"
)

// inferType is a best-effort local inference: not full Hindley-Milner,
// just enough to fill an unsolved Let annotation from the shape of its
// initializer. Anything inference can't handle is left Unsolved, which
// codegen then treats as a 64-bit integer representation.
func (a *Analyzer) inferType(e ast.Expr, scope int) *types.DataType {
	switch n := e.(type) {
	case *ast.LiteralExpr:
		return n.DataType()

	case *ast.ListLiteral:
		if n.ElemType != nil && n.ElemType.Kind != types.KindUnsolved {
			return types.ListOf(n.ElemType)
		}
		if len(n.Data) > 0 {
			return types.ListOf(a.inferType(n.Data[0], scope))
		}
		return types.ListOf(types.Unsolved())

	case *ast.SetLiteral:
		if n.ElemType != nil && n.ElemType.Kind != types.KindUnsolved {
			return types.SetOf(n.ElemType)
		}
		if len(n.Data) > 0 {
			return types.SetOf(a.inferType(n.Data[0], scope))
		}
		return types.SetOf(types.Unsolved())

	case *ast.MapLiteral:
		keyType, valueType := n.KeyType, n.ValueType
		if (keyType == nil || keyType.Kind == types.KindUnsolved ||
			valueType == nil || valueType.Kind == types.KindUnsolved) && len(n.Data) > 0 {
			keyType = keyDataType(n.Data[0].Key)
			valueType = a.inferType(n.Data[0].Value, scope)
		}
		return types.MapOf(keyType, valueType)

	case *ast.Range:
		return types.Range()

	case *ast.Variable:
		if bound, ok := a.Table.SymbolValue(n.Handle); ok {
			switch b := bound.(type) {
			case *ast.Let:
				return b.DeclaredType
			case ast.Param:
				return b.Type
			}
		}
		return types.Unsolved()

	case *ast.BinaryExpr:
		if n.Op.IsComparison() || n.Op == ast.OpAnd || n.Op == ast.OpOr {
			return types.Bool()
		}
		return a.inferType(n.Left, scope)

	case *ast.UnaryExpr:
		if n.Op == ast.OpNot {
			return types.Bool()
		}
		return a.inferType(n.Expr, scope)

	case *ast.StructLiteral:
		return types.TypeRefTo(n.TypeName)

	case *ast.EnumLiteral:
		return types.EnumType(n.TypeName)

	default:
		return types.Unsolved()
	}
}
