package depm

// ScopeID is a handle to a scope stored in a ScopeArena.
type ScopeID int

// NoScope is the parent of the outermost scope.
const NoScope ScopeID = -1

// Scope is a mapping from names to the symbols declared in one syntactic
// construct: the translation unit, a function body, or a nested block.
type Scope struct {
	// The enclosing scope.
	Parent ScopeID

	// The symbols declared directly in this scope.
	Symbols map[string]*Symbol
}

// ScopeArena owns all the scopes created while resolving a translation unit.
// Scopes refer to their parents only by handle so the scope tree never
// contains cycles or owning back-references.
type ScopeArena struct {
	scopes []Scope
}

// NewScopeArena creates a new, empty scope arena.
func NewScopeArena() *ScopeArena {
	return &ScopeArena{}
}

// NewScope creates a new scope enclosed by the given parent scope.
func (sa *ScopeArena) NewScope(parent ScopeID) ScopeID {
	sa.scopes = append(sa.scopes, Scope{
		Parent:  parent,
		Symbols: make(map[string]*Symbol),
	})

	return ScopeID(len(sa.scopes) - 1)
}

// Parent returns the parent of the given scope.
func (sa *ScopeArena) Parent(id ScopeID) ScopeID {
	return sa.scopes[id].Parent
}

// Define declares a symbol in the given scope.  If a symbol of the same name is
// already declared in that scope, the symbol is not declared and the existing
// symbol is returned instead.
func (sa *ScopeArena) Define(id ScopeID, sym *Symbol) *Symbol {
	scope := sa.scopes[id]

	if prev, ok := scope.Symbols[sym.Name]; ok {
		return prev
	}

	scope.Symbols[sym.Name] = sym
	return nil
}

// LookupLocal looks up a name in the given scope only.
func (sa *ScopeArena) LookupLocal(id ScopeID, name string) *Symbol {
	return sa.scopes[id].Symbols[name]
}

// Lookup looks up a name starting in the given scope and proceeding outward
// through its enclosing scopes.  The first match wins.  If no symbol is found,
// nil is returned.
func (sa *ScopeArena) Lookup(id ScopeID, name string) *Symbol {
	for ; id != NoScope; id = sa.scopes[id].Parent {
		if sym, ok := sa.scopes[id].Symbols[name]; ok {
			return sym
		}
	}

	return nil
}

// Close discards the symbols of a scope whose construct has been fully
// resolved.  The handle stays valid as a parent link but no longer resolves
// any names.
func (sa *ScopeArena) Close(id ScopeID) {
	sa.scopes[id].Symbols = nil
}
