package compiler

// SymbolScope is the unique scope a symbol belongs to
type SymbolScope string

const (
	GlobalScope SymbolScope = "GLOBAL"
	LocalScope  SymbolScope = "LOCAL"
)

// Symbol is the struct that holds all the necessary information about a symbol
// thats associated with an identifier.
// It contains information such as its name (the identifier, x in let x), the scope it belongs to
// and its unique number (index) in a SymbolTable. The index enables the VM to store
// and retrieve values.
type Symbol struct {
	Name  string
	Scope SymbolScope
	Index int
}

// SymbolTable helps associate identifiers with a scope and unique number.
// The store maps the identifiers (strings) with their corresponding Symbol.
// numDefinitions simply refers to the total number of unique definitions in the store.
// Outer points to the SymbolTable of the enclosing scope, nil at the global scope.
// It helps us do two things:
//
// 1. Define - Associate identifiers with a scope (Global if there is no Outer,
// Local otherwise) and a unique number.
//
// 2. Resolve - Get the previously associated Symbol for a given identifier,
// walking up through Outer when it's not found locally.
type SymbolTable struct {
	Outer *SymbolTable

	store          map[string]Symbol
	numDefinitions int
}

// NewSymbolTable creates a new, global SymbolTable with an empty store
func NewSymbolTable() *SymbolTable {
	s := make(map[string]Symbol)
	return &SymbolTable{store: s}
}

// NewEnclosedSymbolTable creates a new SymbolTable enclosed by outer. Symbols
// defined in it are Local; symbols not found in it are resolved from outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	s := NewSymbolTable()
	s.Outer = outer
	return s
}

// Define sets an identifier/symbol association in the SymbolTable's store.
// Upon setting an association, we increment the number of definitions. A new
// Symbol is constructed for the given identifier and its Index is set to
// the number of defnitions the store had before adding this new association.
// The Scope is Global when this table has no Outer, Local otherwise.
func (st *SymbolTable) Define(name string) Symbol {
	symbol := Symbol{Name: name, Index: st.numDefinitions}
	if st.Outer == nil {
		symbol.Scope = GlobalScope
	} else {
		symbol.Scope = LocalScope
	}

	st.store[name] = symbol
	st.numDefinitions++
	return symbol
}

// Resolve uses the given name to find a Symbol in the SymbolTable's store. If
// it isn't found and this table has an Outer, the search continues there.
func (st *SymbolTable) Resolve(name string) (Symbol, bool) {
	symbol, ok := st.store[name]
	if !ok && st.Outer != nil {
		symbol, ok = st.Outer.Resolve(name)
	}
	return symbol, ok
}
