package calculus

import (
	"maps"
	"slices"
)

// Symbols is a table of variable values, keyed by case-sensitive name. The
// zero value is an empty table ready to use. A nil *Symbols is a valid empty
// table for lookups. It is not safe to use a Symbols concurrently.
type Symbols struct {
	vals map[string]float64
}

// NewSymbols creates an empty symbol table.
func NewSymbols() *Symbols {
	return &Symbols{vals: make(map[string]float64)}
}

// Lookup returns the value of a variable and whether it is defined.
func (s *Symbols) Lookup(name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.vals[name]
	return v, ok
}

// Set sets the value of a variable, inserting it if needed. Returns s for
// chaining.
func (s *Symbols) Set(name string, value float64) *Symbols {
	if s.vals == nil {
		s.vals = make(map[string]float64)
	}
	s.vals[name] = value
	return s
}

// Delete removes a variable. It is not an error if the variable is undefined.
func (s *Symbols) Delete(name string) {
	if s == nil {
		return
	}
	delete(s.vals, name)
}

// Len returns the number of defined variables.
func (s *Symbols) Len() int {
	if s == nil {
		return 0
	}
	return len(s.vals)
}

// Names returns the names of the defined variables in sorted order.
func (s *Symbols) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.vals))
	for k := range s.vals {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Clone creates an independent copy of the table.
func (s *Symbols) Clone() *Symbols {
	n := &Symbols{vals: make(map[string]float64, s.Len())}
	if s != nil {
		maps.Copy(n.vals, s.vals)
	}
	return n
}
