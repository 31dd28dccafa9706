package runtimeabi

import (
	"testing"

	"github.com/llir/llvm/ir"
)

func TestTableHasNoDuplicateNames(t *testing.T) {
	seen := make(map[string]bool, len(Table))
	for _, sig := range Table {
		if seen[sig.Name] {
			t.Fatalf("duplicate runtime entry %q", sig.Name)
		}
		seen[sig.Name] = true
	}
}

func TestLookupKnownAndUnknown(t *testing.T) {
	sig, ok := Lookup("str_concat")
	if !ok {
		t.Fatal("expected str_concat to be declared")
	}
	if len(sig.Params) != 2 || sig.Returns != Ptr {
		t.Fatalf("unexpected signature for str_concat: %+v", sig)
	}
	if _, ok := Lookup("does_not_exist"); ok {
		t.Fatal("expected lookup of unknown entry to fail")
	}
}

func TestDeclareRegistersEveryEntry(t *testing.T) {
	m := ir.NewModule()
	funcs := Declare(m)
	if len(funcs) != len(Table) {
		t.Fatalf("expected %d declared functions, got %d", len(Table), len(funcs))
	}
	for _, sig := range Table {
		fn, ok := funcs[sig.Name]
		if !ok {
			t.Fatalf("missing declaration for %q", sig.Name)
		}
		if len(fn.Params) != len(sig.Params) {
			t.Fatalf("%s: expected %d params, got %d", sig.Name, len(sig.Params), len(fn.Params))
		}
		if len(fn.Blocks) != 0 {
			t.Fatalf("%s: runtime entries must be declarations with no body", sig.Name)
		}
	}
}
