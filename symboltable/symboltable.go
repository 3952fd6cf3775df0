// Package symboltable implements name resolution with lexical scoping for
// the compiler's single integer type.
//
// Entries are kept in a growable slice rather than a hand-rolled linked
// list: a flat sequence with linear scan is plenty at this scale. Lookup
// scans every entry and keeps the match with the greatest scope level,
// which gives the same result as searching a most-recent-first list.
package symboltable

import "fmt"

// Type is the type of a symbol. There is only one, kept as an explicit
// enum so a second type could be added without reshaping the table.
type Type int

// The sole supported symbol type.
const (
	Integer Type = iota
)

// Symbol is one entry in the table.
type Symbol struct {
	Name        string
	Type        Type
	ScopeLevel  int
	Initialized bool

	// Offset is the byte offset from rbp assigned to this variable's stack
	// slot, in bytes. It is set once, by the code generator, the first
	// time the variable is referenced, and must stay stable across every
	// later reference to the same symbol.
	Offset int
}

// Table is a scope-tracked collection of symbols.
//
// Entries are held by pointer, not by value: the code generator stashes a
// *Symbol across multiple calls (to assign Offset once, on first
// reference — see Symbol.Offset), and a value slice would invalidate that
// pointer the moment a later Add triggers a reallocation.
type Table struct {
	entries []*Symbol
	scope   int
}

// New creates an empty table at scope 0.
func New() *Table {
	return &Table{}
}

// CurrentScope returns the table's current scope depth.
func (t *Table) CurrentScope() int {
	return t.scope
}

// EnterScope increments the current scope depth.
func (t *Table) EnterScope() {
	t.scope++
}

// ExitScope removes every entry at the current scope, then decrements it.
// Calling ExitScope at scope 0 is a programmer error and panics, matching
// the reference implementation's documented undefined behavior there.
func (t *Table) ExitScope() {
	if t.scope == 0 {
		panic("symboltable: ExitScope called at scope 0")
	}

	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.ScopeLevel != t.scope {
			kept = append(kept, e)
		}
	}
	t.entries = kept
	t.scope--
}

// Add inserts a new symbol at the current scope. It returns false without
// inserting if a symbol of the same name already exists at the current
// scope.
func (t *Table) Add(name string, typ Type) (*Symbol, bool) {
	if _, ok := t.LookupCurrentScope(name); ok {
		return nil, false
	}

	sym := &Symbol{
		Name:       name,
		Type:       typ,
		ScopeLevel: t.scope,
	}
	t.entries = append(t.entries, sym)
	return sym, true
}

// Lookup returns the entry matching name with the greatest scope level,
// implementing standard lexical shadowing. Ties cannot occur: Add refuses
// a duplicate (name, scope) pair.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	var best *Symbol
	for _, e := range t.entries {
		if e.Name == name {
			if best == nil || e.ScopeLevel > best.ScopeLevel {
				best = e
			}
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// LookupCurrentScope returns the entry matching name at the current scope,
// if any.
func (t *Table) LookupCurrentScope(name string) (*Symbol, bool) {
	for _, e := range t.entries {
		if e.Name == name && e.ScopeLevel == t.scope {
			return e, true
		}
	}
	return nil, false
}

// MarkInitialized flips the initialized flag on the result of Lookup(name).
// It is a no-op if no such symbol exists.
func (t *Table) MarkInitialized(name string) {
	if sym, ok := t.Lookup(name); ok {
		sym.Initialized = true
	}
}

// IsInitialized reports whether Lookup(name) resolves to an initialized
// symbol.
func (t *Table) IsInitialized(name string) bool {
	sym, ok := t.Lookup(name)
	return ok && sym.Initialized
}

// ScopeVariables snapshots the names of every symbol at the given scope
// level, for diagnostics/reporting purposes only.
func (t *Table) ScopeVariables(level int) []string {
	var names []string
	for _, e := range t.entries {
		if e.ScopeLevel == level {
			names = append(names, e.Name)
		}
	}
	return names
}

// String renders the table for debugging.
func (t *Table) String() string {
	return fmt.Sprintf("Table{scope=%d, entries=%d}", t.scope, len(t.entries))
}
