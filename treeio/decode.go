// Package treeio decodes a JSON-serialized expression tree into the
// ast.Expr forms package ast defines. Lexing and parsing a surface syntax
// are out of scope for this core; an external front end is expected to
// emit this JSON shape (or build the tree directly in Go), and
// cmd/liftc's compile command uses this package as that boundary
// adapter.
package treeio

import (
	"encoding/json"
	"fmt"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/types"
)

// node is the wire shape every tree node decodes through: a "kind"
// discriminator plus kind-specific fields, mirroring ast.Expr's
// tagged-variant shape.
type node struct {
	Kind string `json:"kind"`

	// Literal
	Value any `json:"value"`

	// Program / Block
	Body []node `json:"body"`

	// BinaryExpr / Range
	Op    string `json:"op"`
	Left  *node  `json:"left"`
	Right *node  `json:"right"`

	// UnaryExpr
	Expr *node `json:"expr"`

	// If
	Cond *node `json:"cond"`
	Then *node `json:"then"`
	Else *node `json:"else"`

	// While
	// (Cond reused; the loop body is WhileBody, since Body is the Program/Block slice)
	WhileBody *node `json:"while_body"`

	// Let / DefineType
	Name         string    `json:"name"`
	DeclaredType *jsonType `json:"declared_type"`
	Underlying   *jsonType `json:"underlying"`
	InitValue    *node     `json:"init_value"`

	// Variable / Assign
	AssignValue *node `json:"assign_value"`

	// Collections
	ElemType  *jsonType   `json:"elem_type"`
	KeyType   *jsonType   `json:"key_type"`
	ValueType *jsonType   `json:"value_type"`
	Data      []node      `json:"data"`
	Entries   []jsonEntry `json:"entries"`

	// Index
	Collection *node `json:"collection"`
	IndexExpr  *node `json:"index"`

	// Enum
	TypeName string `json:"type_name"`
	Variant  string `json:"variant"`
	Ordinal  int    `json:"ordinal"`

	// Optional
	Inner   *jsonType `json:"inner"`
	Present bool      `json:"present"`

	// Struct
	Fields []jsonField `json:"fields"`
	Field  string      `json:"field"`

	// Function
	Params     []jsonParam `json:"params"`
	ReturnType *jsonType   `json:"return_type"`
	FnValue    *node       `json:"fn_value"`

	// Call / MethodCall
	FnName   string    `json:"fn_name"`
	Args     []jsonArg `json:"args"`
	Receiver *node     `json:"receiver"`
	Method   string    `json:"method"`
	CallArgs []node    `json:"call_args"`
}

type jsonEntry struct {
	Key   jsonKey `json:"key"`
	Value node    `json:"value"`
}

type jsonKey struct {
	Kind    string `json:"kind"` // "int", "str", "bool"
	IntVal  int64  `json:"int_val"`
	StrVal  string `json:"str_val"`
	BoolVal bool   `json:"bool_val"`
}

type jsonField struct {
	Name  string `json:"name"`
	Value node   `json:"value"`
}

type jsonParam struct {
	Name string    `json:"name"`
	Type *jsonType `json:"type"`
	Copy bool      `json:"copy"`
}

type jsonArg struct {
	Name  string `json:"name"`
	Value node   `json:"value"`
}

// jsonType mirrors types.DataType's wire shape.
type jsonType struct {
	Kind   string          `json:"kind"`
	Elem   *jsonType       `json:"elem"`
	Key    *jsonType       `json:"key"`
	Value  *jsonType       `json:"value"`
	Name   string          `json:"name"`
	Fields []jsonTypeField `json:"fields"`
}

type jsonTypeField struct {
	Name string   `json:"name"`
	Type jsonType `json:"type"`
}

// DecodeProgram decodes raw JSON bytes into an *ast.Program.
func DecodeProgram(raw []byte) (*ast.Program, error) {
	var n node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("treeio: %w", err)
	}
	if n.Kind != "" && n.Kind != "program" {
		return nil, fmt.Errorf("treeio: root node must be a program, got %q", n.Kind)
	}
	body, err := decodeBody(n.Body)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Body: body}, nil
}

func decodeBody(nodes []node) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(nodes))
	for i := range nodes {
		e, err := decodeExpr(&nodes[i])
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeOptExpr(n *node) (ast.Expr, error) {
	if n == nil {
		return nil, nil
	}
	return decodeExpr(n)
}

func decodeType(t *jsonType) *types.DataType {
	if t == nil {
		return types.Unsolved()
	}
	switch t.Kind {
	case "Int":
		return types.Int()
	case "Flt":
		return types.Flt()
	case "Bool":
		return types.Bool()
	case "Str":
		return types.Str()
	case "Range":
		return types.Range()
	case "List":
		return types.ListOf(decodeType(t.Elem))
	case "Set":
		return types.SetOf(decodeType(t.Elem))
	case "Optional":
		return types.OptionalOf(decodeType(t.Elem))
	case "Map":
		return types.MapOf(decodeType(t.Key), decodeType(t.Value))
	case "Enum":
		return types.EnumType(t.Name)
	case "TypeRef":
		return types.TypeRefTo(t.Name)
	case "Struct":
		fields := make([]types.StructField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = types.StructField{Name: f.Name, Type: decodeType(&f.Type)}
		}
		return types.StructType(t.Name, fields)
	default:
		return types.Unsolved()
	}
}

func decodeExpr(n *node) (ast.Expr, error) {
	switch n.Kind {
	case "unit", "":
		return ast.Unit{}, nil

	case "int_lit", "flt_lit", "bool_lit", "str_lit":
		return decodeLiteral(n)

	case "program":
		body, err := decodeBody(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Program{Body: body}, nil

	case "block":
		body, err := decodeBody(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Body: body}, nil

	case "binary":
		left, err := decodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		op, err := decodeBinaryOp(n.Op)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Left: left, Op: op, Right: right}, nil

	case "unary":
		e, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		op := ast.OpNeg
		if n.Op == "not" {
			op = ast.OpNot
		}
		return &ast.UnaryExpr{Op: op, Expr: e}, nil

	case "if":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeExpr(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeOptExpr(n.Else)
		if err != nil {
			return nil, err
		}
		return &ast.If{Cond: cond, Then: then, Else: els}, nil

	case "while":
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(n.WhileBody)
		if err != nil {
			return nil, err
		}
		return &ast.While{Cond: cond, Body: body}, nil

	case "let":
		val, err := decodeExpr(n.InitValue)
		if err != nil {
			return nil, err
		}
		return &ast.Let{Name: n.Name, DeclaredType: decodeType(n.DeclaredType), Value: val}, nil

	case "variable":
		return &ast.Variable{Name: n.Name}, nil

	case "assign":
		val, err := decodeExpr(n.AssignValue)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Name: n.Name, Value: val}, nil

	case "list":
		data, err := decodeBody(n.Data)
		if err != nil {
			return nil, err
		}
		return &ast.ListLiteral{ElemType: decodeType(n.ElemType), Data: data}, nil

	case "set":
		data, err := decodeBody(n.Data)
		if err != nil {
			return nil, err
		}
		return &ast.SetLiteral{ElemType: decodeType(n.ElemType), Data: data}, nil

	case "map":
		entries := make([]ast.MapEntry, len(n.Entries))
		for i, e := range n.Entries {
			v, err := decodeExpr(&e.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = ast.MapEntry{Key: decodeKey(e.Key), Value: v}
		}
		return &ast.MapLiteral{KeyType: decodeType(n.KeyType), ValueType: decodeType(n.ValueType), Data: entries}, nil

	case "index":
		coll, err := decodeExpr(n.Collection)
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpr(n.IndexExpr)
		if err != nil {
			return nil, err
		}
		return &ast.Index{Collection: coll, IndexExpr: idx}, nil

	case "range":
		start, err := decodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		end, err := decodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Range{Start: start, End: end}, nil

	case "enum_lit":
		return &ast.EnumLiteral{TypeName: n.TypeName, Variant: n.Variant, Ordinal: n.Ordinal}, nil

	case "optional_lit":
		if !n.Present {
			return &ast.OptionalLiteral{Inner: decodeType(n.Inner), Present: false}, nil
		}
		v, err := decodeExpr(n.InitValue)
		if err != nil {
			return nil, err
		}
		return &ast.OptionalLiteral{Inner: decodeType(n.Inner), Present: true, Value: v}, nil

	case "struct_lit":
		fields := make([]ast.FieldInit, len(n.Fields))
		for i, f := range n.Fields {
			v, err := decodeExpr(&f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.FieldInit{Name: f.Name, Value: v}
		}
		return &ast.StructLiteral{TypeName: n.TypeName, Fields: fields}, nil

	case "field_access":
		e, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.FieldAccess{Expr: e, Field: n.Field}, nil

	case "field_assign":
		e, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		v, err := decodeExpr(n.AssignValue)
		if err != nil {
			return nil, err
		}
		return &ast.FieldAssign{Expr: e, Field: n.Field, Value: v}, nil

	case "define_function":
		lambda, err := decodeLambda(n)
		if err != nil {
			return nil, err
		}
		return &ast.DefineFunction{Name: n.Name, Value: lambda}, nil

	case "call":
		args := make([]ast.KeywordArg, len(n.Args))
		for i, a := range n.Args {
			v, err := decodeExpr(&a.Value)
			if err != nil {
				return nil, err
			}
			args[i] = ast.KeywordArg{Name: a.Name, Value: v}
		}
		return &ast.Call{FnName: n.FnName, Args: args}, nil

	case "method_call":
		recv, err := decodeExpr(n.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := decodeBody(n.CallArgs)
		if err != nil {
			return nil, err
		}
		return &ast.MethodCall{Receiver: recv, Method: n.Method, Args: args}, nil

	case "output":
		data, err := decodeBody(n.Data)
		if err != nil {
			return nil, err
		}
		return &ast.Output{Data: data}, nil

	case "define_type":
		return &ast.DefineType{Name: n.Name, Underlying: decodeType(n.Underlying)}, nil

	default:
		return nil, fmt.Errorf("treeio: unknown node kind %q", n.Kind)
	}
}

func decodeLiteral(n *node) (ast.Expr, error) {
	switch n.Kind {
	case "int_lit":
		f, ok := n.Value.(float64)
		if !ok {
			return nil, fmt.Errorf("treeio: int_lit value must be a number")
		}
		return &ast.LiteralExpr{LitKind: ast.LitInt, IntVal: int64(f)}, nil
	case "flt_lit":
		f, ok := n.Value.(float64)
		if !ok {
			return nil, fmt.Errorf("treeio: flt_lit value must be a number")
		}
		return &ast.LiteralExpr{LitKind: ast.LitFlt, FltVal: f}, nil
	case "bool_lit":
		v, ok := n.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("treeio: bool_lit value must be a boolean")
		}
		return &ast.LiteralExpr{LitKind: ast.LitBool, BoolVal: v}, nil
	case "str_lit":
		v, ok := n.Value.(string)
		if !ok {
			return nil, fmt.Errorf("treeio: str_lit value must be a string")
		}
		return &ast.LiteralExpr{LitKind: ast.LitStr, StrVal: v}, nil
	default:
		return nil, fmt.Errorf("treeio: not a literal kind %q", n.Kind)
	}
}

func decodeKey(k jsonKey) ast.KeyData {
	switch k.Kind {
	case "str":
		return ast.KeyData{LitKind: ast.LitStr, StrVal: k.StrVal}
	case "bool":
		return ast.KeyData{LitKind: ast.LitBool, BoolVal: k.BoolVal}
	default:
		return ast.KeyData{LitKind: ast.LitInt, IntVal: k.IntVal}
	}
}

func decodeLambda(n *node) (*ast.Lambda, error) {
	if n.FnValue == nil {
		return nil, fmt.Errorf("treeio: define_function is missing fn_value")
	}
	body, err := decodeExpr(n.FnValue)
	if err != nil {
		return nil, err
	}
	params := make([]ast.Param, len(n.Params))
	for i, p := range n.Params {
		params[i] = ast.Param{Name: p.Name, Type: decodeType(p.Type), Copy: p.Copy}
	}
	return &ast.Lambda{Params: params, ReturnType: decodeType(n.ReturnType), Body: body}, nil
}

func decodeBinaryOp(op string) (ast.BinaryOp, error) {
	switch op {
	case "+":
		return ast.OpAdd, nil
	case "-":
		return ast.OpSub, nil
	case "*":
		return ast.OpMul, nil
	case "/":
		return ast.OpDiv, nil
	case ">":
		return ast.OpGt, nil
	case "<":
		return ast.OpLt, nil
	case ">=":
		return ast.OpGte, nil
	case "<=":
		return ast.OpLte, nil
	case "=":
		return ast.OpEq, nil
	case "<>":
		return ast.OpNeq, nil
	case "and":
		return ast.OpAnd, nil
	case "or":
		return ast.OpOr, nil
	default:
		return 0, fmt.Errorf("treeio: unknown binary operator %q", op)
	}
}
