package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/errors"
	"github.com/ccdavis/liftc/types"
)

// tagConst resolves dt's runtime tag byte, erroring with
// UnsupportedDataType for shapes that carry no tag (TypeRef, Unsolved) —
// lowering should never reach those once the semantic pass has run, so
// this is a defensive boundary, not an expected path.
func tagConst(dt *types.DataType) (value.Value, error) {
	tag, ok := dt.RuntimeTag()
	if !ok {
		return nil, errors.New(errors.UnsupportedDataType, "%s has no runtime type tag", dt)
	}
	return constant.NewInt(lltypes.I8, int64(tag)), nil
}

// compileListLiteral lowers a ListLiteral to list_new(count, elem_tag)
// followed by one list_set per element.
func (g *CodeGenerator) compileListLiteral(b *ir.Block, n *ast.ListLiteral) (value.Value, *ir.Block, error) {
	elemType := g.resolveAlias(n.ElemType)
	tag, err := tagConst(elemType)
	if err != nil {
		return nil, b, err
	}
	elemMachine := llvmType(elemType)

	cur := b
	list := cur.NewCall(g.runtimeFuncs["list_new"], constant.NewInt(lltypes.I64, int64(len(n.Data))), tag)
	for i, e := range n.Data {
		v, next, err := g.compileExpr(cur, e)
		cur = next
		if err != nil {
			return nil, cur, err
		}
		v, err = requireValue(v, "list element")
		if err != nil {
			return nil, cur, err
		}
		payload := toI64Payload(cur, v, elemMachine)
		cur.NewCall(g.runtimeFuncs["list_set"], list, constant.NewInt(lltypes.I64, int64(i)), payload)
	}
	return list, cur, nil
}

// compileSetLiteral lowers a SetLiteral to set_new(count, elem_tag)
// followed by one set_add per element.
func (g *CodeGenerator) compileSetLiteral(b *ir.Block, n *ast.SetLiteral) (value.Value, *ir.Block, error) {
	elemType := g.resolveAlias(n.ElemType)
	tag, err := tagConst(elemType)
	if err != nil {
		return nil, b, err
	}
	elemMachine := llvmType(elemType)

	cur := b
	set := cur.NewCall(g.runtimeFuncs["set_new"], constant.NewInt(lltypes.I64, int64(len(n.Data))), tag)
	for _, e := range n.Data {
		v, next, err := g.compileExpr(cur, e)
		cur = next
		if err != nil {
			return nil, cur, err
		}
		v, err = requireValue(v, "set element")
		if err != nil {
			return nil, cur, err
		}
		payload := toI64Payload(cur, v, elemMachine)
		cur.NewCall(g.runtimeFuncs["set_add"], set, payload)
	}
	return set, cur, nil
}

// compileMapLiteral lowers a MapLiteral to map_new(count, key_tag,
// value_tag) followed by one map_set per entry. Keys are KeyData
// (literal-only), so they never need a compileExpr round trip — Int and
// Bool keys are built directly as constants, Str keys as a str_new call.
func (g *CodeGenerator) compileMapLiteral(b *ir.Block, n *ast.MapLiteral) (value.Value, *ir.Block, error) {
	keyType := g.resolveAlias(n.KeyType)
	valueType := g.resolveAlias(n.ValueType)
	keyTag, err := tagConst(keyType)
	if err != nil {
		return nil, b, err
	}
	valueTag, err := tagConst(valueType)
	if err != nil {
		return nil, b, err
	}
	valueMachine := llvmType(valueType)

	cur := b
	m := cur.NewCall(g.runtimeFuncs["map_new"], constant.NewInt(lltypes.I64, int64(len(n.Data))), keyTag, valueTag)
	for _, entry := range n.Data {
		keyVal, err := g.compileKeyData(cur, entry.Key)
		if err != nil {
			return nil, cur, err
		}
		v, next, err := g.compileExpr(cur, entry.Value)
		cur = next
		if err != nil {
			return nil, cur, err
		}
		v, err = requireValue(v, "map value")
		if err != nil {
			return nil, cur, err
		}
		payload := toI64Payload(cur, v, valueMachine)
		cur.NewCall(g.runtimeFuncs["map_set"], m, keyVal, payload)
	}
	return m, cur, nil
}

// compileKeyData lowers a MapLiteral key (Int, Bool or Str; Flt keys are
// rejected earlier by the semantic pass with MapLiteralKeyType) to its
// i64 payload.
func (g *CodeGenerator) compileKeyData(b *ir.Block, k ast.KeyData) (value.Value, error) {
	switch k.LitKind {
	case ast.LitInt:
		return constant.NewInt(lltypes.I64, k.IntVal), nil
	case ast.LitBool:
		v := int64(0)
		if k.BoolVal {
			v = 1
		}
		return constant.NewInt(lltypes.I64, v), nil
	case ast.LitStr:
		str, _, err := g.compileStringLiteral(b, k.StrVal)
		if err != nil {
			return nil, err
		}
		return toI64Payload(b, str, llvmType(types.Str())), nil
	default:
		return nil, errors.New(errors.TypeMismatch, "unsupported map key literal kind")
	}
}

// compileIndex lowers indexing into both List and Map collections.
func (g *CodeGenerator) compileIndex(b *ir.Block, n *ast.Index) (value.Value, *ir.Block, error) {
	collVal, cur, err := g.compileExpr(b, n.Collection)
	if err != nil {
		return nil, cur, err
	}
	collVal, err = requireValue(collVal, "indexed collection")
	if err != nil {
		return nil, cur, err
	}
	collType := g.resolveAlias(g.exprType(n.Collection))

	switch collType.Kind {
	case types.KindList:
		idx, next, err := g.compileExpr(cur, n.IndexExpr)
		cur = next
		if err != nil {
			return nil, cur, err
		}
		idx, err = requireValue(idx, "list index")
		if err != nil {
			return nil, cur, err
		}
		elemMachine := llvmType(g.resolveAlias(collType.Elem))
		raw := cur.NewCall(g.runtimeFuncs["list_get"], collVal, idx)
		return fromI64Payload(cur, raw, elemMachine), cur, nil

	case types.KindMap:
		keyMachine := llvmType(g.resolveAlias(collType.Key))
		keyVal, next, err := g.compileExpr(cur, n.IndexExpr)
		cur = next
		if err != nil {
			return nil, cur, err
		}
		keyVal, err = requireValue(keyVal, "map key")
		if err != nil {
			return nil, cur, err
		}
		payload := toI64Payload(cur, keyVal, keyMachine)
		valueMachine := llvmType(g.resolveAlias(collType.Value))
		raw := cur.NewCall(g.runtimeFuncs["map_get"], collVal, payload)
		return fromI64Payload(cur, raw, valueMachine), cur, nil

	default:
		return nil, cur, errors.New(errors.TypeMismatch, "cannot index a value of type %s", collType)
	}
}

// compileRange lowers a Range to range_new(start, end).
func (g *CodeGenerator) compileRange(b *ir.Block, n *ast.Range) (value.Value, *ir.Block, error) {
	start, cur, err := g.compileExpr(b, n.Start)
	if err != nil {
		return nil, cur, err
	}
	start, err = requireValue(start, "range start")
	if err != nil {
		return nil, cur, err
	}
	end, cur, err := g.compileExpr(cur, n.End)
	if err != nil {
		return nil, cur, err
	}
	end, err = requireValue(end, "range end")
	if err != nil {
		return nil, cur, err
	}
	return cur.NewCall(g.runtimeFuncs["range_new"], start, end), cur, nil
}

// compileEnumLiteral lowers an enum variant to the Ordinal the node
// carries, as an ordinary i64 constant. The ordinal is used as given; it
// is not checked against any enum declaration.
func (g *CodeGenerator) compileEnumLiteral(b *ir.Block, n *ast.EnumLiteral) (value.Value, *ir.Block, error) {
	return constant.NewInt(lltypes.I64, int64(n.Ordinal)), b, nil
}

// compileOptionalLiteral lowers Optional: present lowers to the inner
// value, absent lowers to the inner machine type's zero/null constant.
// No separate presence word.
func (g *CodeGenerator) compileOptionalLiteral(b *ir.Block, n *ast.OptionalLiteral) (value.Value, *ir.Block, error) {
	innerMachine := llvmType(g.resolveAlias(n.Inner))
	if !n.Present {
		return zero(innerMachine), b, nil
	}
	v, cur, err := g.compileExpr(b, n.Value)
	if err != nil {
		return nil, cur, err
	}
	v, err = requireValue(v, "Some(...) payload")
	if err != nil {
		return nil, cur, err
	}
	return v, cur, nil
}
