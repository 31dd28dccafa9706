package treeio

import (
	"testing"

	"github.com/ccdavis/liftc/ast"
)

func TestDecodeProgramLiteralsAndArithmetic(t *testing.T) {
	raw := []byte(`{
		"kind": "program",
		"body": [
			{"kind": "output", "data": [
				{"kind": "binary", "op": "+", "left": {"kind": "int_lit", "value": 1},
				 "right": {"kind": "binary", "op": "*", "left": {"kind": "int_lit", "value": 2}, "right": {"kind": "int_lit", "value": 3}}}
			]}
		]
	}`)

	prog, err := DecodeProgram(raw)
	if err != nil {
		t.Fatalf("DecodeProgram failed: %v", err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 top-level expr, got %d", len(prog.Body))
	}
	out, ok := prog.Body[0].(*ast.Output)
	if !ok {
		t.Fatalf("expected *ast.Output, got %T", prog.Body[0])
	}
	bin, ok := out.Data[0].(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", out.Data[0])
	}
	if bin.Op != ast.OpAdd {
		t.Errorf("expected OpAdd, got %v", bin.Op)
	}
	right, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || right.Op != ast.OpMul {
		t.Fatalf("expected nested OpMul on the right, got %#v", bin.Right)
	}
}

func TestDecodeLetAndAssign(t *testing.T) {
	raw := []byte(`{
		"kind": "program",
		"body": [
			{"kind": "let", "name": "x", "declared_type": {"kind": "Int"}, "init_value": {"kind": "int_lit", "value": 10}},
			{"kind": "assign", "name": "x", "assign_value": {"kind": "variable", "name": "x"}}
		]
	}`)
	prog, err := DecodeProgram(raw)
	if err != nil {
		t.Fatalf("DecodeProgram failed: %v", err)
	}
	let, ok := prog.Body[0].(*ast.Let)
	if !ok {
		t.Fatalf("expected *ast.Let, got %T", prog.Body[0])
	}
	if let.Name != "x" || let.DeclaredType.Kind.String() != "Int" {
		t.Errorf("unexpected let: %+v", let)
	}
	assign, ok := prog.Body[1].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", prog.Body[1])
	}
	if assign.Name != "x" {
		t.Errorf("unexpected assign target: %q", assign.Name)
	}
}

func TestDecodeListLiteral(t *testing.T) {
	raw := []byte(`{
		"kind": "program",
		"body": [
			{"kind": "list", "elem_type": {"kind": "Int"}, "data": [
				{"kind": "int_lit", "value": 1},
				{"kind": "int_lit", "value": 2}
			]}
		]
	}`)
	prog, err := DecodeProgram(raw)
	if err != nil {
		t.Fatalf("DecodeProgram failed: %v", err)
	}
	list, ok := prog.Body[0].(*ast.ListLiteral)
	if !ok {
		t.Fatalf("expected *ast.ListLiteral, got %T", prog.Body[0])
	}
	if len(list.Data) != 2 {
		t.Errorf("expected 2 elements, got %d", len(list.Data))
	}
}

func TestDecodeMapLiteralWithStringKey(t *testing.T) {
	raw := []byte(`{
		"kind": "program",
		"body": [
			{"kind": "map", "key_type": {"kind": "Str"}, "value_type": {"kind": "Int"}, "entries": [
				{"key": {"kind": "str", "str_val": "a"}, "value": {"kind": "int_lit", "value": 1}}
			]}
		]
	}`)
	prog, err := DecodeProgram(raw)
	if err != nil {
		t.Fatalf("DecodeProgram failed: %v", err)
	}
	m, ok := prog.Body[0].(*ast.MapLiteral)
	if !ok {
		t.Fatalf("expected *ast.MapLiteral, got %T", prog.Body[0])
	}
	if m.Data[0].Key.LitKind != ast.LitStr || m.Data[0].Key.StrVal != "a" {
		t.Errorf("unexpected map key: %+v", m.Data[0].Key)
	}
}

func TestDecodeDefineFunctionCarriesParamsAndBody(t *testing.T) {
	raw := []byte(`{
		"kind": "program",
		"body": [
			{"kind": "define_function", "name": "double",
			 "params": [{"name": "n", "type": {"kind": "Int"}}],
			 "return_type": {"kind": "Int"},
			 "fn_value": {"kind": "binary", "op": "*", "left": {"kind": "variable", "name": "n"}, "right": {"kind": "int_lit", "value": 2}}}
		]
	}`)
	prog, err := DecodeProgram(raw)
	if err != nil {
		t.Fatalf("DecodeProgram failed: %v", err)
	}
	def, ok := prog.Body[0].(*ast.DefineFunction)
	if !ok {
		t.Fatalf("expected *ast.DefineFunction, got %T", prog.Body[0])
	}
	if len(def.Value.Params) != 1 || def.Value.Params[0].Name != "n" {
		t.Fatalf("expected one param named n, got %+v", def.Value.Params)
	}
	if _, ok := def.Value.Body.(*ast.BinaryExpr); !ok {
		t.Errorf("expected the lambda body to decode from fn_value, got %T", def.Value.Body)
	}
}

func TestDecodeStructLiteralAndFieldAccess(t *testing.T) {
	raw := []byte(`{
		"kind": "program",
		"body": [
			{"kind": "field_access", "field": "x", "expr":
				{"kind": "struct_lit", "type_name": "Point", "fields": [
					{"name": "x", "value": {"kind": "int_lit", "value": 5}}
				]}
			}
		]
	}`)
	prog, err := DecodeProgram(raw)
	if err != nil {
		t.Fatalf("DecodeProgram failed: %v", err)
	}
	fa, ok := prog.Body[0].(*ast.FieldAccess)
	if !ok {
		t.Fatalf("expected *ast.FieldAccess, got %T", prog.Body[0])
	}
	lit, ok := fa.Expr.(*ast.StructLiteral)
	if !ok || lit.TypeName != "Point" {
		t.Fatalf("expected a Point struct literal, got %#v", fa.Expr)
	}
}

func TestDecodeUnknownKindErrors(t *testing.T) {
	raw := []byte(`{"kind": "program", "body": [{"kind": "bogus"}]}`)
	if _, err := DecodeProgram(raw); err == nil {
		t.Fatal("expected an error for an unknown node kind")
	}
}

func TestDecodeOptionalLiteral(t *testing.T) {
	raw := []byte(`{
		"kind": "program",
		"body": [
			{"kind": "optional_lit", "inner": {"kind": "Int"}, "present": true, "init_value": {"kind": "int_lit", "value": 7}},
			{"kind": "optional_lit", "inner": {"kind": "Int"}, "present": false}
		]
	}`)
	prog, err := DecodeProgram(raw)
	if err != nil {
		t.Fatalf("DecodeProgram failed: %v", err)
	}
	some, ok := prog.Body[0].(*ast.OptionalLiteral)
	if !ok || !some.Present || some.Value == nil {
		t.Fatalf("expected a present optional literal, got %#v", prog.Body[0])
	}
	none, ok := prog.Body[1].(*ast.OptionalLiteral)
	if !ok || none.Present {
		t.Fatalf("expected an absent optional literal, got %#v", prog.Body[1])
	}
}
