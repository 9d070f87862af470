package controllers

import "strconv"

// Definition is a controller accepted into the generated table.
type Definition struct {
	// Identifier is the name the controller is registered under
	Identifier string
	// BindingName is the import binding used in the generated module
	BindingName string
	// Path is the file the binding is imported from
	Path string
}

// info snapshots the definition for error reporting and decision callbacks.
func (d Definition) info() DefinitionInfo {
	return DefinitionInfo{Identifier: d.Identifier, BindingName: d.BindingName, Path: d.Path}
}

// definitionSet keeps accepted definitions in first-insertion order and
// supports replacing a slot in place without reordering.
type definitionSet struct {
	items    []Definition
	index    map[string]int // identifier -> slot
	bindings map[string]bool
}

func newDefinitionSet() *definitionSet {
	return &definitionSet{index: make(map[string]int), bindings: make(map[string]bool)}
}

// bindingFor returns the binding for identifier at slot. Sanitizing and
// appending the slot can collide ("a1" at 1 and "a" at 11 both give a11),
// so "_" is inserted before the number until the name is unused.
func (s *definitionSet) bindingFor(identifier string, slot int) string {
	name := BindingName(identifier, slot)
	base, num := SanitizeName(identifier), strconv.Itoa(slot)
	for s.bindings[name] {
		base += "_"
		name = base + num
	}
	return name
}

// get returns the definition registered for identifier.
func (s *definitionSet) get(identifier string) (Definition, int, bool) {
	slot, ok := s.index[identifier]
	if !ok {
		return Definition{}, -1, false
	}
	return s.items[slot], slot, true
}

// nextSlot is the slot the next appended definition will occupy.
func (s *definitionSet) nextSlot() int {
	return len(s.items)
}

func (s *definitionSet) add(def Definition) {
	s.index[def.Identifier] = len(s.items)
	s.bindings[def.BindingName] = true
	s.items = append(s.items, def)
}

// replace swaps the definition at slot. The slot keeps its binding.
func (s *definitionSet) replace(slot int, def Definition) {
	def.BindingName = s.items[slot].BindingName
	s.items[slot] = def
}

// list returns a copy of the accepted definitions.
func (s *definitionSet) list() []Definition {
	out := make([]Definition, len(s.items))
	copy(out, s.items)
	return out
}
