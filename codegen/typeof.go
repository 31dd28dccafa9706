package codegen

import (
	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/types"
)

// exprType is codegen's own lightweight type helper: the semantic pass
// already patched DeclaredType/ElemType/etc. in place, so this just reads
// those back rather than re-inferring from scratch, falling back to
// Unsolved (-> 64-bit integer representation) when it can't determine a
// type.
func (g *CodeGenerator) exprType(e ast.Expr) *types.DataType {
	switch n := e.(type) {
	case *ast.LiteralExpr:
		return n.DataType()
	case *ast.Let:
		return g.resolveAlias(n.DeclaredType)
	case *ast.Variable:
		if bound, ok := g.table.SymbolValue(n.Handle); ok {
			if let, ok := bound.(*ast.Let); ok {
				return g.resolveAlias(let.DeclaredType)
			}
			if param, ok := bound.(ast.Param); ok {
				return g.resolveAlias(param.Type)
			}
		}
		return types.Unsolved()
	case *ast.BinaryExpr:
		if n.Op.IsComparison() || n.Op == ast.OpAnd || n.Op == ast.OpOr {
			return types.Bool()
		}
		return g.exprType(n.Left)
	case *ast.UnaryExpr:
		if n.Op == ast.OpNot {
			return types.Bool()
		}
		return g.exprType(n.Expr)
	case *ast.ListLiteral:
		return types.ListOf(g.resolveAlias(n.ElemType))
	case *ast.SetLiteral:
		return types.SetOf(g.resolveAlias(n.ElemType))
	case *ast.MapLiteral:
		return types.MapOf(g.resolveAlias(n.KeyType), g.resolveAlias(n.ValueType))
	case *ast.Range:
		return types.Range()
	case *ast.StructLiteral:
		return types.TypeRefTo(n.TypeName)
	case *ast.EnumLiteral:
		return types.EnumType(n.TypeName)
	case *ast.OptionalLiteral:
		return types.OptionalOf(g.resolveAlias(n.Inner))
	case *ast.Call:
		if lambda, ok := g.lambdas[n.FnName]; ok {
			return g.resolveAlias(lambda.ReturnType)
		}
		return types.Unsolved()
	case *ast.Index:
		collType := g.resolveAlias(g.exprType(n.Collection))
		switch collType.Kind {
		case types.KindList:
			return g.resolveAlias(collType.Elem)
		case types.KindMap:
			return g.resolveAlias(collType.Value)
		default:
			return types.Unsolved()
		}
	case *ast.FieldAccess:
		structType := g.resolveAlias(g.exprType(n.Expr))
		for _, f := range structType.Fields {
			if f.Name == n.Field {
				return g.resolveAlias(f.Type)
			}
		}
		return types.Unsolved()
	case *ast.MethodCall:
		recvType := g.resolveAlias(g.exprType(n.Receiver))
		return methodReturnType(recvType, n.Method)
	default:
		return types.Unsolved()
	}
}

// methodReturnType looks up a builtin method's declared return type
// against its receiver's resolved kind, so a chained call like
// s.trim().upper() can resolve the outer call's receiver type instead of
// falling back to Unsolved. User-defined methods are not looked up: a
// receiver kind with no builtin table yields Unsolved, and a Str/List/Map/
// Set receiver yields that kind's builtin default even when the method is
// a user-defined one.
func methodReturnType(recvType *types.DataType, method string) *types.DataType {
	switch recvType.Kind {
	case types.KindStr:
		switch method {
		case "split":
			return types.ListOf(types.Str())
		case "contains", "starts_with", "ends_with", "is_empty":
			return types.Bool()
		default:
			return types.Str()
		}
	case types.KindList:
		switch method {
		case "first", "last":
			return recvType.Elem
		case "contains", "is_empty":
			return types.Bool()
		case "join":
			return types.Str()
		default:
			return recvType
		}
	case types.KindMap:
		switch method {
		case "keys":
			return types.ListOf(recvType.Key)
		case "values":
			return types.ListOf(recvType.Value)
		default:
			return types.Bool()
		}
	case types.KindSet:
		if method == "len" {
			return types.Int()
		}
		return types.Bool()
	case types.KindOptional:
		return types.Bool()
	default:
		return types.Unsolved()
	}
}

// resolveAlias resolves dt via types.ResolveAlias against every scope's
// type map (see symtab.Table.LookupTypeAnywhere's doc comment).
func (g *CodeGenerator) resolveAlias(dt *types.DataType) *types.DataType {
	return types.ResolveAlias(dt, g.table.LookupTypeAnywhere)
}
