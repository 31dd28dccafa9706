package types

// MaxAliasChain bounds type-alias resolution. A chain longer than this is
// treated as a cycle rather than walked forever.
const MaxAliasChain = 64

// AliasLookup resolves a single TypeRef name to the DataType it is bound
// to in the scope chain the caller has in mind. Both the semantic pass and
// the code generator supply their own lookup (symtab.Table.AliasLookupFrom
// for a scope chain, or Table.LookupTypeAnywhere) so that this package
// never has to import symtab.
type AliasLookup func(name string) (*DataType, bool)

// ResolveAlias follows TypeRef(name) through lookup until it reaches a
// concrete type, the lookup fails, or MaxAliasChain names have been
// visited. Non-TypeRef inputs pass through unchanged.
func ResolveAlias(dt *DataType, lookup AliasLookup) *DataType {
	resolved, _ := ResolveAliasChecked(dt, lookup)
	return resolved
}

// ResolveAliasChecked is ResolveAlias but reports whether the chain
// terminated because of a definition, an unresolved name (ok=false), or
// MaxAliasChain was exceeded (ok=false). Exceeding the bound still
// returns the last type seen, so callers that don't care about the
// distinction can ignore ok, while callers that do can raise AliasCycle.
func ResolveAliasChecked(dt *DataType, lookup AliasLookup) (*DataType, bool) {
	current := dt
	for i := 0; i < MaxAliasChain; i++ {
		if current == nil || current.Kind != KindTypeRef {
			return current, true
		}
		next, found := lookup(current.Name)
		if !found {
			return current, false
		}
		current = next
	}
	return current, false
}
