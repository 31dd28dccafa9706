package ast

import (
	"fmt"

	"github.com/ccdavis/liftc/types"
)

// Let introduces a mutable binding. Handle is stamped by the semantic
// pass once the name is added to the current scope.
type Let struct {
	Name         string
	DeclaredType *types.DataType // types.Unsolved() until annotated or inferred
	Value        Expr
	Handle       Handle
}

func (*Let) Kind() ExprKind { return KLet }
func (l *Let) String() string { return fmt.Sprintf("let %s = %s", l.Name, l.Value) }

// Variable is a name reference resolved to a binding.
type Variable struct {
	Name   string
	Handle Handle
}

func (*Variable) Kind() ExprKind { return KVariable }
func (v *Variable) String() string { return v.Name }

// Assign stores a new value into an existing binding.
type Assign struct {
	Name   string
	Value  Expr
	Handle Handle
}

func (*Assign) Kind() ExprKind { return KAssign }
func (a *Assign) String() string { return fmt.Sprintf("%s := %s", a.Name, a.Value) }

// DefineType registers a type alias in the current scope's type map.
type DefineType struct {
	Name       string
	Underlying *types.DataType
}

func (*DefineType) Kind() ExprKind { return KDefineType }
func (d *DefineType) String() string { return fmt.Sprintf("type %s = %s", d.Name, d.Underlying) }
