package ast

import (
	"fmt"
	"strings"

	"github.com/ccdavis/liftc/types"
)

// Program is the top-level container.
type Program struct {
	Body    []Expr
	ScopeID int
}

func (*Program) Kind() ExprKind { return KProgram }
func (p *Program) String() string { return blockString(p.Body) }

// Block is a nested lexical scope; its value is the value of the last
// sub-expression, or Unit if Body is empty.
type Block struct {
	Body    []Expr
	ScopeID int
}

func (*Block) Kind() ExprKind { return KBlock }
func (b *Block) String() string { return blockString(b.Body) }

func blockString(body []Expr) string {
	parts := make([]string, len(body))
	for i, e := range body {
		parts[i] = e.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// ListLiteral is a homogeneous list value.
type ListLiteral struct {
	ElemType *types.DataType
	Data     []Expr
}

func (*ListLiteral) Kind() ExprKind { return KListLiteral }
func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Data))
	for i, e := range l.Data {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// SetLiteral is an unordered, duplicate-free collection value.
type SetLiteral struct {
	ElemType *types.DataType
	Data     []Expr
}

func (*SetLiteral) Kind() ExprKind { return KSetLiteral }
func (s *SetLiteral) String() string {
	parts := make([]string, len(s.Data))
	for i, e := range s.Data {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MapEntry is one (key, value) pair of a MapLiteral.
type MapEntry struct {
	Key   KeyData
	Value Expr
}

// MapLiteral is a key/value collection literal. Keys are the narrower
// KeyData variant; floating-point keys are rejected by the semantic pass
// with MapLiteralKeyType.
type MapLiteral struct {
	KeyType   *types.DataType
	ValueType *types.DataType
	Data      []MapEntry
}

func (*MapLiteral) Kind() ExprKind { return KMapLiteral }
func (m *MapLiteral) String() string {
	parts := make([]string, len(m.Data))
	for i, e := range m.Data {
		parts[i] = fmt.Sprintf("%s: %s", e.Key, e.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Index is a collection subscript: xs[i] or m[k].
type Index struct {
	Collection Expr
	IndexExpr  Expr
}

func (*Index) Kind() ExprKind { return KIndex }
func (ix *Index) String() string {
	return fmt.Sprintf("%s[%s]", ix.Collection, ix.IndexExpr)
}

// Range is a half-open integer range.
type Range struct {
	Start Expr
	End   Expr
}

func (*Range) Kind() ExprKind { return KRange }
func (r *Range) String() string { return fmt.Sprintf("%s..%s", r.Start, r.End) }

// EnumLiteral is a reference to one named variant of an enum type.
// Ordinal is the variant's position as supplied with the input tree; the
// semantic pass neither computes nor checks it.
type EnumLiteral struct {
	TypeName string
	Variant  string
	Ordinal  int
}

func (*EnumLiteral) Kind() ExprKind { return KEnumLiteral }
func (e *EnumLiteral) String() string { return e.TypeName + "." + e.Variant }

// OptionalLiteral is either a present value or an absent marker.
type OptionalLiteral struct {
	Inner   *types.DataType
	Present bool
	Value   Expr // nil when !Present
}

func (*OptionalLiteral) Kind() ExprKind { return KOptionalLiteral }
func (o *OptionalLiteral) String() string {
	if !o.Present {
		return "None"
	}
	return fmt.Sprintf("Some(%s)", o.Value)
}
