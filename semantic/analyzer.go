// Package semantic implements the semantic pass: scope allocation,
// forward declaration of functions, name resolution that stamps a
// (scope_id, symbol_id) handle onto every reference, and a best-effort
// local type-inference pass. It is grounded on the scope-threading shape
// of github.com/cwbudde/go-dws's internal/semantic/pass.go, adapted from
// DWScript's statement-oriented walk to Lift's expression-oriented one.
package semantic

import (
	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/errors"
	"github.com/ccdavis/liftc/symtab"
	"github.com/ccdavis/liftc/types"
)

// Analyzer walks a parsed tree in place, patching Handle, ScopeID and
// type-annotation (DeclaredType, ElemType, KeyType, ValueType) fields. It
// owns the Table for the lifetime of the compilation unit; the code
// generator reads it read-only afterwards.
type Analyzer struct {
	Table *symtab.Table

	root    int  // root scope id, valid once hasRoot is set
	hasRoot bool // set by the first Analyze call
}

// NewAnalyzer creates an Analyzer with a fresh, empty symbol table.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Table: symtab.NewTable()}
}

// Analyze runs the semantic pass over prog, returning the first error
// encountered; errors are not recovered. The root scope is created by the
// first call and reused by later calls on the same Analyzer, so analyzing
// an already-analyzed tree again fails with DuplicateSymbol.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	if !a.hasRoot {
		a.root = a.Table.CreateScope(-1)
		a.hasRoot = true
	}
	prog.ScopeID = a.root
	return a.analyzeBody(prog.Body, a.root)
}

// analyzeBody handles a Program/Block: function definitions appearing
// anywhere in body are pre-registered in scope so that forward and
// mutually-recursive calls resolve; everything else is then walked in
// program order, so a Let only becomes visible to the statements after
// it.
func (a *Analyzer) analyzeBody(body []ast.Expr, scope int) error {
	for _, e := range body {
		if def, ok := e.(*ast.DefineFunction); ok {
			if _, err := a.Table.AddSymbol(scope, def.Name, def); err != nil {
				return errors.New(errors.DuplicateSymbol, "function '%s' already declared", def.Name)
			}
		}
	}
	for _, e := range body {
		if def, ok := e.(*ast.DefineFunction); ok {
			if err := a.analyzeFunctionBody(def, scope); err != nil {
				return err
			}
			continue
		}
		if err := a.analyzeExpr(e, scope); err != nil {
			return err
		}
	}
	return nil
}

// analyzeFunctionBody stamps def.Handle (already registered by the
// pre-pass) and analyzes the Lambda's body in a fresh child scope with
// each parameter added as a symbol.
func (a *Analyzer) analyzeFunctionBody(def *ast.DefineFunction, enclosing int) error {
	h, ok := a.Table.Lookup(enclosing, def.Name)
	if !ok {
		return errors.New(errors.UndeclaredName, "internal: function '%s' not pre-registered", def.Name)
	}
	def.Handle = h

	bodyScope := a.Table.CreateScope(enclosing)
	for _, p := range def.Value.Params {
		if _, err := a.Table.AddSymbol(bodyScope, p.Name, p); err != nil {
			return errors.New(errors.DuplicateSymbol, "parameter '%s' already declared", p.Name)
		}
	}
	return a.analyzeExpr(def.Value.Body, bodyScope)
}

// analyzeExpr dispatches on Kind and recurses into every sub-expression so
// that name references anywhere in the tree get resolved, even positions
// with no lowering-relevant type information.
func (a *Analyzer) analyzeExpr(e ast.Expr, scope int) error {
	switch n := e.(type) {
	case nil, ast.Unit, *ast.LiteralExpr, *ast.EnumLiteral:
		return nil

	case *ast.Program:
		child := a.Table.CreateScope(scope)
		n.ScopeID = child
		return a.analyzeBody(n.Body, child)

	case *ast.Block:
		child := a.Table.CreateScope(scope)
		n.ScopeID = child
		return a.analyzeBody(n.Body, child)

	case *ast.BinaryExpr:
		if err := a.analyzeExpr(n.Left, scope); err != nil {
			return err
		}
		return a.analyzeExpr(n.Right, scope)

	case *ast.UnaryExpr:
		return a.analyzeExpr(n.Expr, scope)

	case *ast.If:
		if err := a.analyzeExpr(n.Cond, scope); err != nil {
			return err
		}
		if err := a.analyzeExpr(n.Then, scope); err != nil {
			return err
		}
		return a.analyzeExpr(n.Else, scope)

	case *ast.While:
		if err := a.analyzeExpr(n.Cond, scope); err != nil {
			return err
		}
		return a.analyzeExpr(n.Body, scope)

	case *ast.Let:
		if err := a.analyzeExpr(n.Value, scope); err != nil {
			return err
		}
		if n.DeclaredType == nil || n.DeclaredType.Kind == types.KindUnsolved {
			n.DeclaredType = a.inferType(n.Value, scope)
		}
		symID, err := a.Table.AddSymbol(scope, n.Name, n)
		if err != nil {
			return errors.New(errors.DuplicateSymbol, "'%s' already declared in this scope", n.Name)
		}
		n.Handle = ast.Handle{Scope: scope, Symbol: symID, Resolved: true}
		return nil

	case *ast.Variable:
		h, ok := a.Table.Lookup(scope, n.Name)
		if !ok {
			return errors.New(errors.UndeclaredName, "'%s' is not declared", n.Name)
		}
		n.Handle = h
		return nil

	case *ast.Assign:
		h, ok := a.Table.Lookup(scope, n.Name)
		if !ok {
			return errors.New(errors.UndeclaredName, "'%s' is not declared", n.Name)
		}
		n.Handle = h
		return a.analyzeExpr(n.Value, scope)

	case *ast.ListLiteral:
		for _, el := range n.Data {
			if err := a.analyzeExpr(el, scope); err != nil {
				return err
			}
		}
		if n.ElemType == nil || n.ElemType.Kind == types.KindUnsolved {
			if len(n.Data) == 0 {
				return errors.New(errors.TypeMismatch, "empty list literal requires an element type annotation")
			}
			n.ElemType = a.inferType(n.Data[0], scope)
		}
		return nil

	case *ast.SetLiteral:
		for _, el := range n.Data {
			if err := a.analyzeExpr(el, scope); err != nil {
				return err
			}
		}
		if n.ElemType == nil || n.ElemType.Kind == types.KindUnsolved {
			if len(n.Data) == 0 {
				return errors.New(errors.TypeMismatch, "empty set literal requires an element type annotation")
			}
			n.ElemType = a.inferType(n.Data[0], scope)
		}
		return nil

	case *ast.MapLiteral:
		for _, entry := range n.Data {
			if entry.Key.LitKind == ast.LitFlt {
				return errors.New(errors.MapLiteralKeyType, "floating-point value used as map literal key")
			}
			if err := a.analyzeExpr(entry.Value, scope); err != nil {
				return err
			}
		}
		if n.KeyType == nil || n.KeyType.Kind == types.KindUnsolved ||
			n.ValueType == nil || n.ValueType.Kind == types.KindUnsolved {
			if len(n.Data) == 0 {
				return errors.New(errors.TypeMismatch, "empty map literal requires key/value type annotations")
			}
			n.KeyType = keyDataType(n.Data[0].Key)
			n.ValueType = a.inferType(n.Data[0].Value, scope)
		}
		return nil

	case *ast.OptionalLiteral:
		if n.Present {
			return a.analyzeExpr(n.Value, scope)
		}
		return nil

	case *ast.Index:
		if err := a.analyzeExpr(n.Collection, scope); err != nil {
			return err
		}
		return a.analyzeExpr(n.IndexExpr, scope)

	case *ast.Range:
		if err := a.analyzeExpr(n.Start, scope); err != nil {
			return err
		}
		return a.analyzeExpr(n.End, scope)

	case *ast.StructLiteral:
		for _, f := range n.Fields {
			if err := a.analyzeExpr(f.Value, scope); err != nil {
				return err
			}
		}
		return nil

	case *ast.FieldAccess:
		return a.analyzeExpr(n.Expr, scope)

	case *ast.FieldAssign:
		if err := a.analyzeExpr(n.Expr, scope); err != nil {
			return err
		}
		return a.analyzeExpr(n.Value, scope)

	case *ast.DefineFunction:
		// Reached only for a nested DefineFunction outside the body/
		// pre-pass path (e.g. inside an If arm); register and analyze
		// it exactly like the top-level pre-pass would.
		if _, err := a.Table.AddSymbol(scope, n.Name, n); err != nil {
			return errors.New(errors.DuplicateSymbol, "function '%s' already declared", n.Name)
		}
		return a.analyzeFunctionBody(n, scope)

	case *ast.Call:
		h, ok := a.Table.Lookup(scope, n.FnName)
		if !ok {
			return errors.New(errors.UndeclaredName, "function '%s' is not declared", n.FnName)
		}
		n.Handle = h
		for _, arg := range n.Args {
			if err := a.analyzeExpr(arg.Value, scope); err != nil {
				return err
			}
		}
		return nil

	case *ast.MethodCall:
		if err := a.analyzeExpr(n.Receiver, scope); err != nil {
			return err
		}
		for _, arg := range n.Args {
			if err := a.analyzeExpr(arg, scope); err != nil {
				return err
			}
		}
		return nil

	case *ast.Output:
		for _, d := range n.Data {
			if err := a.analyzeExpr(d, scope); err != nil {
				return err
			}
		}
		return nil

	case *ast.DefineType:
		if err := a.Table.DefineType(scope, n.Name, n.Underlying); err != nil {
			return err
		}
		if _, ok := types.ResolveAliasChecked(n.Underlying, a.Table.AliasLookupFrom(scope)); !ok {
			return errors.New(errors.AliasCycle, "type alias '%s' does not resolve to a concrete type", n.Name)
		}
		return nil

	default:
		return errors.New(errors.TypeMismatch, "semantic analysis not implemented for %T", e)
	}
}

func keyDataType(k ast.KeyData) *types.DataType {
	switch k.LitKind {
	case ast.LitInt:
		return types.Int()
	case ast.LitStr:
		return types.Str()
	case ast.LitBool:
		return types.Bool()
	default:
		return types.Unsolved()
	}
}
