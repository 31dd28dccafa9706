// Package symtab implements a scoped symbol table: an ordered list of
// symbols per scope, an optional parent scope, and a per-scope type-alias
// map. It is grounded on the scope-chain shape of
// github.com/cwbudde/go-dws's internal/semantic/symbol_table.go,
// restructured around an explicit (scope_id, symbol_id) handle so the
// handle can outlive the semantic pass and be read back during code
// generation.
package symtab

import (
	"fmt"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/types"
)

// Handle is the (scope_id, symbol_id) pair stamped onto every Variable,
// Assign, Call, DefineFunction and Let node. It is the same type ast.Expr
// nodes carry in their Handle field, so resolved indices can be stamped
// in place by the semantic pass and read back unchanged here.
type Handle = ast.Handle

// Symbol is a (name, bound expression) pair, addressed by its Handle.
type Symbol struct {
	Name  string
	Bound ast.Expr
}

type scope struct {
	parent  int // -1 for the root scope
	symbols []*Symbol
	byName  map[string]int
	typeMap map[string]*types.DataType
}

// Table owns every scope created during semantic analysis. Scopes are
// never destroyed before code generation finishes.
type Table struct {
	scopes []*scope
}

// ErrDuplicateSymbol is returned by AddSymbol on redeclaration within a
// single scope.
type ErrDuplicateSymbol struct {
	Name  string
	Scope int
}

func (e *ErrDuplicateSymbol) Error() string {
	return fmt.Sprintf("'%s' is already declared in scope %d", e.Name, e.Scope)
}

// NewTable creates an empty table with no scopes. Call CreateScope(-1) to
// establish the root scope.
func NewTable() *Table {
	return &Table{}
}

// CreateScope allocates a new scope with the given parent (-1 for none)
// and returns its id.
func (t *Table) CreateScope(parent int) int {
	id := len(t.scopes)
	t.scopes = append(t.scopes, &scope{
		parent:  parent,
		byName:  make(map[string]int),
		typeMap: make(map[string]*types.DataType),
	})
	return id
}

func (t *Table) scopeAt(id int) *scope {
	if id < 0 || id >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

// AddSymbol registers name in scope, returning its dense symbol id. A
// second declaration of the same name in the same scope is rejected with
// ErrDuplicateSymbol.
func (t *Table) AddSymbol(scopeID int, name string, bound ast.Expr) (int, error) {
	s := t.scopeAt(scopeID)
	if s == nil {
		return 0, fmt.Errorf("symtab: unknown scope %d", scopeID)
	}
	if _, exists := s.byName[name]; exists {
		return 0, &ErrDuplicateSymbol{Name: name, Scope: scopeID}
	}
	id := len(s.symbols)
	s.symbols = append(s.symbols, &Symbol{Name: name, Bound: bound})
	s.byName[name] = id
	return id, nil
}

// Lookup walks scope, then its parent, then the parent's parent, and so
// on, returning the first match.
func (t *Table) Lookup(scopeID int, name string) (Handle, bool) {
	for id := scopeID; id != -1; {
		s := t.scopeAt(id)
		if s == nil {
			return Handle{}, false
		}
		if symID, ok := s.byName[name]; ok {
			return Handle{Scope: id, Symbol: symID, Resolved: true}, true
		}
		id = s.parent
	}
	return Handle{}, false
}

// DefineType registers a type alias in scope's type map.
func (t *Table) DefineType(scopeID int, name string, dt *types.DataType) error {
	s := t.scopeAt(scopeID)
	if s == nil {
		return fmt.Errorf("symtab: unknown scope %d", scopeID)
	}
	s.typeMap[name] = dt
	return nil
}

// LookupType walks scope, then its parent, and so on, over the per-scope
// type-alias maps.
func (t *Table) LookupType(scopeID int, name string) (*types.DataType, bool) {
	for id := scopeID; id != -1; {
		s := t.scopeAt(id)
		if s == nil {
			return nil, false
		}
		if dt, ok := s.typeMap[name]; ok {
			return dt, true
		}
		id = s.parent
	}
	return nil, false
}

// AliasLookupFrom returns a types.AliasLookup bound to scopeID, suitable
// for passing to types.ResolveAlias from the semantic pass or codegen.
func (t *Table) AliasLookupFrom(scopeID int) types.AliasLookup {
	return func(name string) (*types.DataType, bool) {
		return t.LookupType(scopeID, name)
	}
}

// SymbolValue returns the bound expression for handle, read-only. Used by
// the code generator to recover parameter names and types at a call
// site.
func (t *Table) SymbolValue(h Handle) (ast.Expr, bool) {
	s := t.scopeAt(h.Scope)
	if s == nil || h.Symbol < 0 || h.Symbol >= len(s.symbols) {
		return nil, false
	}
	return s.symbols[h.Symbol].Bound, true
}

// SymbolName returns the declared name for handle.
func (t *Table) SymbolName(h Handle) (string, bool) {
	s := t.scopeAt(h.Scope)
	if s == nil || h.Symbol < 0 || h.Symbol >= len(s.symbols) {
		return "", false
	}
	return s.symbols[h.Symbol].Name, true
}

// LookupTypeAnywhere scans every scope for a type alias named name,
// without regard to scope nesting. Package codegen uses this where a node
// needing alias resolution (e.g. a struct field's declared type) does not
// itself carry the originating scope id; the semantic pass itself always
// uses the scope-respecting LookupType instead.
func (t *Table) LookupTypeAnywhere(name string) (*types.DataType, bool) {
	for _, s := range t.scopes {
		if dt, ok := s.typeMap[name]; ok {
			return dt, true
		}
	}
	return nil, false
}

// ScopeIsAncestor reports whether ancestor is scope itself or one of its
// transitive parents.
func (t *Table) ScopeIsAncestor(ancestor, scope int) bool {
	for id := scope; id != -1; {
		if id == ancestor {
			return true
		}
		s := t.scopeAt(id)
		if s == nil {
			return false
		}
		id = s.parent
	}
	return false
}
