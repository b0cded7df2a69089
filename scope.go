package minilisp

// Scope maps symbol names to values and links to the enclosing scope.
// A scope is never modified after construction; binding a name always
// creates a new child.
type Scope struct {
	vars  map[string]Value
	outer *Scope
}

// NewScope copies bindings into a new scope whose parent is outer.
// outer may be nil for a root scope.
func NewScope(bindings map[string]Value, outer *Scope) *Scope {
	vars := make(map[string]Value, len(bindings))
	for k, v := range bindings {
		vars[k] = v
	}
	return &Scope{vars: vars, outer: outer}
}

// Child returns a new scope holding bindings, nested inside s.
func (s *Scope) Child(bindings map[string]Value) *Scope {
	return NewScope(bindings, s)
}

// Outer returns the enclosing scope, or nil for the root.
func (s *Scope) Outer() *Scope {
	return s.outer
}

// Lookup walks the chain from s outward.
func (s *Scope) Lookup(name string) (Value, bool) {
	for sc := s; sc != nil; sc = sc.outer {
		if val, ok := sc.vars[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

// Get is Lookup that fails with an UnboundSymbolError.
func (s *Scope) Get(name string) (Value, error) {
	if val, ok := s.Lookup(name); ok {
		return val, nil
	}
	return Value{}, &UnboundSymbolError{Name: name}
}
