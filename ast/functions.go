package ast

import (
	"fmt"
	"strings"

	"github.com/ccdavis/liftc/types"
)

// Param is one formal parameter of a Lambda.
// Copy marks a pass-by-value parameter; it has the same stack-slot
// semantics as any other parameter, since the calling convention passes by
// value either way.
type Param struct {
	Name string
	Type *types.DataType
	Copy bool
}

// Kind and String let a Param stand in as the symtab-bound expression for
// a parameter symbol, so the code generator can recover a parameter's
// declared type from the symbol table the same way it recovers a Let's.
func (Param) Kind() ExprKind { return KParam }
func (p Param) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Type)
}

// Lambda is the function-value form: params, return type, body. Named
// functions are Lambdas bound by DefineFunction. A Lambda never captures
// enclosing variables.
type Lambda struct {
	Params     []Param
	ReturnType *types.DataType
	Body       Expr
}

func (*Lambda) Kind() ExprKind { return KLambda }
func (l *Lambda) String() string {
	params := make([]string, len(l.Params))
	for i, p := range l.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	return fmt.Sprintf("(%s): %s %s", strings.Join(params, ", "), l.ReturnType, l.Body)
}

// DefineFunction binds name to a Lambda value in the current scope.
// Handle is stamped once the function is registered in the enclosing
// scope.
type DefineFunction struct {
	Name   string
	Value  *Lambda
	Handle Handle
}

func (*DefineFunction) Kind() ExprKind { return KDefineFunction }
func (d *DefineFunction) String() string {
	return fmt.Sprintf("function %s%s", d.Name, d.Value)
}

// KeywordArg is one name: value argument at a call site.
type KeywordArg struct {
	Name  string
	Value Expr
}

// Call is a function application with keyword arguments reordered to
// match the callee's declared parameter order at lowering time. Handle
// resolves fn_name via the symbol table.
type Call struct {
	FnName string
	Args   []KeywordArg
	Handle Handle
}

func (*Call) Kind() ExprKind { return KCall }
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprintf("%s: %s", a.Name, a.Value)
	}
	return fmt.Sprintf("%s(%s)", c.FnName, strings.Join(args, ", "))
}

// MethodCall is receiver.method(args), dispatched against the built-in
// method table or a mangled user-method name.
type MethodCall struct {
	Receiver Expr
	Method   string
	Args     []Expr
}

func (*MethodCall) Kind() ExprKind { return KMethodCall }
func (m *MethodCall) String() string {
	args := make([]string, len(m.Args))
	for i, a := range m.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s.%s(%s)", m.Receiver, m.Method, strings.Join(args, ", "))
}
