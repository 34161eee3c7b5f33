package depm

// Universe holds the symbols the compiler provides without any declaration in
// the user's program.
type Universe struct {
	// The intrinsic functions organized by name.
	IntrinsicFuncs map[string]*Symbol
}

// WriteIntName is the name of the intrinsic that writes an integer in decimal
// followed by a newline to a file descriptor.
const WriteIntName = "write_int"

// NewUniverse creates a new universe.  Each translation unit gets its own
// universe so no symbol is shared between compilations.
func NewUniverse() *Universe {
	return &Universe{
		IntrinsicFuncs: map[string]*Symbol{
			WriteIntName: {
				Name:         WriteIntName,
				Kind:         SymIntrinsic,
				Arity:        2,
				ReturnsValue: false,
				Defined:      true,
			},
		},
	}
}

// Seed declares all the universal symbols in the given scope.  The symbols are
// declared in a fixed order and given indices starting at `startIndex`.  The
// next free index is returned.
func (u *Universe) Seed(arena *ScopeArena, id ScopeID, startIndex int) int {
	for _, name := range []string{WriteIntName} {
		sym := u.IntrinsicFuncs[name]
		sym.Index = startIndex
		startIndex++

		arena.Define(id, sym)
	}

	return startIndex
}
