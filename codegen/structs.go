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

// structFieldType looks up one named field's declared type from the
// struct type's definition (registered as a type alias by DefineType),
// returning an error if the type or field is unknown — the semantic pass
// should have already caught this, so this is a defensive boundary.
func (g *CodeGenerator) structFieldType(typeName, field string) (*types.DataType, error) {
	structType, ok := g.table.LookupTypeAnywhere(typeName)
	if !ok {
		return nil, errors.New(errors.UndeclaredName, "struct type '%s' is not declared", typeName)
	}
	structType = g.resolveAlias(structType)
	for _, f := range structType.Fields {
		if f.Name == field {
			return g.resolveAlias(f.Type), nil
		}
	}
	return nil, errors.New(errors.UndeclaredName, "struct type '%s' has no field '%s'", typeName, field)
}

// compileStructLiteral lowers struct_new(name, field_count) followed by
// one struct_set_field per initializer.
func (g *CodeGenerator) compileStructLiteral(b *ir.Block, n *ast.StructLiteral) (value.Value, *ir.Block, error) {
	nameVal, cur, err := g.compileStringLiteral(b, n.TypeName)
	if err != nil {
		return nil, cur, err
	}
	structVal := cur.NewCall(g.runtimeFuncs["struct_new"], nameVal, constant.NewInt(lltypes.I64, int64(len(n.Fields))))

	for _, field := range n.Fields {
		fieldType, err := g.structFieldType(n.TypeName, field.Name)
		if err != nil {
			return nil, cur, err
		}
		tag, err := tagConst(fieldType)
		if err != nil {
			return nil, cur, err
		}
		fieldNamePtr, next, err := g.compileStringLiteral(cur, field.Name)
		cur = next
		if err != nil {
			return nil, cur, err
		}
		v, next, err := g.compileExpr(cur, field.Value)
		cur = next
		if err != nil {
			return nil, cur, err
		}
		v, err = requireValue(v, "struct field '"+field.Name+"'")
		if err != nil {
			return nil, cur, err
		}
		payload := toI64Payload(cur, v, llvmType(fieldType))
		cur.NewCall(g.runtimeFuncs["struct_set_field"], structVal, fieldNamePtr, tag, payload)
	}
	return structVal, cur, nil
}

// compileFieldAccess lowers a FieldAccess to struct_get_field.
func (g *CodeGenerator) compileFieldAccess(b *ir.Block, n *ast.FieldAccess) (value.Value, *ir.Block, error) {
	structVal, cur, err := g.compileExpr(b, n.Expr)
	if err != nil {
		return nil, cur, err
	}
	structVal, err = requireValue(structVal, "struct receiver of field access")
	if err != nil {
		return nil, cur, err
	}
	structType := g.resolveAlias(g.exprType(n.Expr))
	if _, err := g.structFieldType(structType.Name, n.Field); err != nil {
		return nil, cur, err
	}
	fieldNamePtr, cur, err := g.compileStringLiteral(cur, n.Field)
	if err != nil {
		return nil, cur, err
	}
	// TODO: struct_get_field returns the raw i64 payload without
	// bit-casting back to the field's declared machine type, so a Flt
	// field read back here comes out bit-identical-but-wrong unless the
	// caller re-interprets it.
	return cur.NewCall(g.runtimeFuncs["struct_get_field"], structVal, fieldNamePtr), cur, nil
}

// compileFieldAssign lowers a FieldAssign to struct_set_field.
func (g *CodeGenerator) compileFieldAssign(b *ir.Block, n *ast.FieldAssign) (value.Value, *ir.Block, error) {
	structVal, cur, err := g.compileExpr(b, n.Expr)
	if err != nil {
		return nil, cur, err
	}
	structVal, err = requireValue(structVal, "struct receiver of field assignment")
	if err != nil {
		return nil, cur, err
	}
	structType := g.resolveAlias(g.exprType(n.Expr))
	fieldType, err := g.structFieldType(structType.Name, n.Field)
	if err != nil {
		return nil, cur, err
	}
	tag, err := tagConst(fieldType)
	if err != nil {
		return nil, cur, err
	}
	fieldNamePtr, cur, err := g.compileStringLiteral(cur, n.Field)
	if err != nil {
		return nil, cur, err
	}
	v, cur, err := g.compileExpr(cur, n.Value)
	if err != nil {
		return nil, cur, err
	}
	v, err = requireValue(v, "assigned value of field '"+n.Field+"'")
	if err != nil {
		return nil, cur, err
	}
	payload := toI64Payload(cur, v, llvmType(fieldType))
	cur.NewCall(g.runtimeFuncs["struct_set_field"], structVal, fieldNamePtr, tag, payload)
	return nil, cur, nil
}
