package tagjson

import "sync"

// Symbol is a unique token. Two symbols are the same only if they are the
// same pointer. There are three kinds: registered symbols shared
// process-wide by key (SymbolFor), a fixed set of well-known symbols, and
// local symbols that are unique to each NewSymbol call.
type Symbol struct {
	description string
	key         string
	registered  bool
	wellKnown   string
}

var registeredSymbols sync.Map

// SymbolFor returns the registered symbol for key, creating it on first use.
func SymbolFor(key string) *Symbol {
	if s, ok := registeredSymbols.Load(key); ok {
		return s.(*Symbol)
	}
	s, _ := registeredSymbols.LoadOrStore(key, &Symbol{description: key, key: key, registered: true})
	return s.(*Symbol)
}

// NewSymbol returns a new local symbol.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

// Well-known symbols.
var (
	SymbolIterator      = &Symbol{description: "Symbol.iterator", wellKnown: "iterator"}
	SymbolAsyncIterator = &Symbol{description: "Symbol.asyncIterator", wellKnown: "asyncIterator"}
	SymbolHasInstance   = &Symbol{description: "Symbol.hasInstance", wellKnown: "hasInstance"}
	SymbolToPrimitive   = &Symbol{description: "Symbol.toPrimitive", wellKnown: "toPrimitive"}
	SymbolToStringTag   = &Symbol{description: "Symbol.toStringTag", wellKnown: "toStringTag"}
)

var wellKnownSymbols = map[string]*Symbol{
	SymbolIterator.wellKnown:      SymbolIterator,
	SymbolAsyncIterator.wellKnown: SymbolAsyncIterator,
	SymbolHasInstance.wellKnown:   SymbolHasInstance,
	SymbolToPrimitive.wellKnown:   SymbolToPrimitive,
	SymbolToStringTag.wellKnown:   SymbolToStringTag,
}

// WellKnownSymbol looks up a well-known symbol by its short name, such as "iterator".
func WellKnownSymbol(name string) (*Symbol, bool) {
	s, ok := wellKnownSymbols[name]
	return s, ok
}

// KeyFor returns the registry key of a registered symbol.
func KeyFor(s *Symbol) (string, bool) {
	if s == nil || !s.registered {
		return "", false
	}
	return s.key, true
}

func (s *Symbol) Description() string { return s.description }

func (s *Symbol) String() string {
	return "Symbol(" + s.description + ")"
}
