package symtab

import (
	"testing"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/types"
)

func TestLookupWalksParentChain(t *testing.T) {
	table := NewTable()
	root := table.CreateScope(-1)
	child := table.CreateScope(root)

	if _, err := table.AddSymbol(root, "x", &ast.Variable{Name: "x"}); err != nil {
		t.Fatalf("AddSymbol failed: %v", err)
	}

	h, ok := table.Lookup(child, "x")
	if !ok {
		t.Fatal("expected lookup from a child scope to find a parent's symbol")
	}
	if h.Scope != root {
		t.Errorf("expected handle to reference the root scope, got %d", h.Scope)
	}

	if _, ok := table.Lookup(root, "y"); ok {
		t.Fatal("expected lookup of an undeclared name to fail")
	}
}

func TestAddSymbolRejectsDuplicatesWithinAScope(t *testing.T) {
	table := NewTable()
	root := table.CreateScope(-1)

	if _, err := table.AddSymbol(root, "x", &ast.Variable{Name: "x"}); err != nil {
		t.Fatalf("first AddSymbol failed: %v", err)
	}
	if _, err := table.AddSymbol(root, "x", &ast.Variable{Name: "x"}); err == nil {
		t.Fatal("expected a redeclaration in the same scope to fail")
	}

	// A shadowing declaration in a child scope is fine.
	child := table.CreateScope(root)
	if _, err := table.AddSymbol(child, "x", &ast.Variable{Name: "x"}); err != nil {
		t.Errorf("expected shadowing in a child scope to succeed, got %v", err)
	}
}

func TestDefineTypeAndLookupTypeFollowScoping(t *testing.T) {
	table := NewTable()
	root := table.CreateScope(-1)
	child := table.CreateScope(root)

	if err := table.DefineType(root, "MyInt", types.Int()); err != nil {
		t.Fatalf("DefineType failed: %v", err)
	}

	dt, ok := table.LookupType(child, "MyInt")
	if !ok || dt.Kind != types.KindInt {
		t.Fatalf("expected MyInt to resolve to Int from a child scope, got %+v, %v", dt, ok)
	}

	if _, ok := table.LookupType(root, "NoSuchAlias"); ok {
		t.Fatal("expected lookup of an undefined alias to fail")
	}
}

func TestLookupTypeAnywhereIgnoresScopeNesting(t *testing.T) {
	table := NewTable()
	root := table.CreateScope(-1)
	sibling := table.CreateScope(root)

	if err := table.DefineType(sibling, "Meters", types.Flt()); err != nil {
		t.Fatalf("DefineType failed: %v", err)
	}

	// LookupTypeAnywhere finds it even though sibling isn't on root's
	// ancestor chain — codegen uses this when a node doesn't carry the
	// scope it was declared in (e.g. a struct field's declared type).
	dt, ok := table.LookupTypeAnywhere("Meters")
	if !ok || dt.Kind != types.KindFlt {
		t.Fatalf("expected LookupTypeAnywhere to find Meters, got %+v, %v", dt, ok)
	}
}

func TestScopeIsAncestor(t *testing.T) {
	table := NewTable()
	root := table.CreateScope(-1)
	mid := table.CreateScope(root)
	leaf := table.CreateScope(mid)

	if !table.ScopeIsAncestor(root, leaf) {
		t.Error("expected root to be an ancestor of leaf")
	}
	if table.ScopeIsAncestor(leaf, root) {
		t.Error("did not expect leaf to be an ancestor of root")
	}
	if !table.ScopeIsAncestor(leaf, leaf) {
		t.Error("expected a scope to be its own ancestor")
	}
}

func TestSymbolValueAndSymbolName(t *testing.T) {
	table := NewTable()
	root := table.CreateScope(-1)
	bound := &ast.Variable{Name: "count"}

	symID, err := table.AddSymbol(root, "count", bound)
	if err != nil {
		t.Fatalf("AddSymbol failed: %v", err)
	}
	h := Handle{Scope: root, Symbol: symID}

	name, ok := table.SymbolName(h)
	if !ok || name != "count" {
		t.Fatalf("expected SymbolName to return 'count', got %q, %v", name, ok)
	}
	val, ok := table.SymbolValue(h)
	if !ok || val != ast.Expr(bound) {
		t.Fatalf("expected SymbolValue to return the bound expression back")
	}
}
