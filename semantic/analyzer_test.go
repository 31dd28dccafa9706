package semantic

import (
	"testing"

	"github.com/ccdavis/liftc/ast"
	liftErrors "github.com/ccdavis/liftc/errors"
	"github.com/ccdavis/liftc/types"
)

func prog(body ...ast.Expr) *ast.Program {
	return &ast.Program{Body: body}
}

func intLit(v int64) *ast.LiteralExpr {
	return &ast.LiteralExpr{LitKind: ast.LitInt, IntVal: v}
}

func TestAnalyzeLetInfersTypeFromLiteral(t *testing.T) {
	let := &ast.Let{Name: "x", DeclaredType: types.Unsolved(), Value: intLit(10)}
	p := prog(let, &ast.Variable{Name: "x"})

	a := NewAnalyzer()
	if err := a.Analyze(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if let.DeclaredType.Kind != types.KindInt {
		t.Fatalf("expected inferred Int, got %s", let.DeclaredType)
	}
	v := p.Body[1].(*ast.Variable)
	if !v.Handle.Resolved {
		t.Fatalf("expected Variable handle to be resolved")
	}
	if v.Handle.Scope != let.Handle.Scope || v.Handle.Symbol != let.Handle.Symbol {
		t.Fatalf("variable handle %+v does not match let handle %+v", v.Handle, let.Handle)
	}
}

func TestAnalyzeUndeclaredNameFails(t *testing.T) {
	p := prog(&ast.Variable{Name: "missing"})
	a := NewAnalyzer()
	err := a.Analyze(p)
	if err == nil {
		t.Fatal("expected an error")
	}
	ce, ok := err.(*liftErrors.CompilerError)
	if !ok || ce.Kind != liftErrors.UndeclaredName {
		t.Fatalf("expected UndeclaredName, got %v", err)
	}
}

func TestAnalyzeDuplicateSymbolFails(t *testing.T) {
	p := prog(
		&ast.Let{Name: "x", DeclaredType: types.Int(), Value: intLit(1)},
		&ast.Let{Name: "x", DeclaredType: types.Int(), Value: intLit(2)},
	)
	a := NewAnalyzer()
	err := a.Analyze(p)
	if err == nil {
		t.Fatal("expected an error")
	}
	ce, ok := err.(*liftErrors.CompilerError)
	if !ok || ce.Kind != liftErrors.DuplicateSymbol {
		t.Fatalf("expected DuplicateSymbol, got %v", err)
	}
}

func TestAnalyzeMutualRecursionResolves(t *testing.T) {
	// function isEven(n: Int): Bool { isOdd(n: n) }
	// function isOdd(n: Int): Bool { isEven(n: n) }
	isEven := &ast.DefineFunction{
		Name: "isEven",
		Value: &ast.Lambda{
			Params:     []ast.Param{{Name: "n", Type: types.Int()}},
			ReturnType: types.Bool(),
			Body: &ast.Call{FnName: "isOdd", Args: []ast.KeywordArg{
				{Name: "n", Value: &ast.Variable{Name: "n"}},
			}},
		},
	}
	isOdd := &ast.DefineFunction{
		Name: "isOdd",
		Value: &ast.Lambda{
			Params:     []ast.Param{{Name: "n", Type: types.Int()}},
			ReturnType: types.Bool(),
			Body: &ast.Call{FnName: "isEven", Args: []ast.KeywordArg{
				{Name: "n", Value: &ast.Variable{Name: "n"}},
			}},
		},
	}
	p := prog(isEven, isOdd)
	a := NewAnalyzer()
	if err := a.Analyze(p); err != nil {
		t.Fatalf("expected mutual recursion to resolve, got %v", err)
	}
	if !isEven.Handle.Resolved || !isOdd.Handle.Resolved {
		t.Fatal("expected both function handles to be resolved")
	}
}

func TestAnalyzeMapLiteralFloatKeyRejected(t *testing.T) {
	p := prog(&ast.MapLiteral{
		Data: []ast.MapEntry{{Key: ast.KeyData{LitKind: ast.LitFlt}, Value: intLit(1)}},
	})
	a := NewAnalyzer()
	err := a.Analyze(p)
	ce, ok := err.(*liftErrors.CompilerError)
	if !ok || ce.Kind != liftErrors.MapLiteralKeyType {
		t.Fatalf("expected MapLiteralKeyType, got %v", err)
	}
}

func TestAnalyzeEmptyListWithoutAnnotationRejected(t *testing.T) {
	p := prog(&ast.ListLiteral{ElemType: types.Unsolved()})
	a := NewAnalyzer()
	err := a.Analyze(p)
	ce, ok := err.(*liftErrors.CompilerError)
	if !ok || ce.Kind != liftErrors.TypeMismatch {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestAnalyzeTwiceIsNoopThenTripsDuplicate(t *testing.T) {
	p := prog(&ast.Let{Name: "x", DeclaredType: types.Int(), Value: intLit(1)})
	a := NewAnalyzer()
	if err := a.Analyze(p); err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	// Re-running semantic analysis with the same Analyzer/Table on an
	// already-resolved tree must trip DuplicateSymbol rather than silently
	// re-resolving.
	err := a.Analyze(p)
	if err == nil {
		t.Fatal("expected second pass to fail on duplicate declaration")
	}
}
