package ast

import (
	"fmt"
	"strings"
)

// FieldInit is one field=value pair of a StructLiteral.
type FieldInit struct {
	Name  string
	Value Expr
}

// StructLiteral constructs a struct value.
type StructLiteral struct {
	TypeName string
	Fields   []FieldInit
}

func (*StructLiteral) Kind() ExprKind { return KStructLiteral }
func (s *StructLiteral) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Value)
	}
	return fmt.Sprintf("%s { %s }", s.TypeName, strings.Join(parts, ", "))
}

// FieldAccess reads one field of a struct value.
type FieldAccess struct {
	Expr  Expr
	Field string
}

func (*FieldAccess) Kind() ExprKind { return KFieldAccess }
func (f *FieldAccess) String() string { return fmt.Sprintf("%s.%s", f.Expr, f.Field) }

// FieldAssign writes one field of a struct value.
type FieldAssign struct {
	Expr  Expr
	Field string
	Value Expr
}

func (*FieldAssign) Kind() ExprKind { return KFieldAssign }
func (f *FieldAssign) String() string {
	return fmt.Sprintf("%s.%s := %s", f.Expr, f.Field, f.Value)
}
