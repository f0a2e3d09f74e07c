package obfuscate

import "kanso/internal/ir"

// registryKey identifies a (value, parameter) pair. *ir.Value equality is
// reference equality, matching the data model's Value semantics, so this
// struct is directly usable as a map key.
type registryKey struct {
	value *ir.Value
	param uint64
}

// Registry caches forward-transformed representations so that a value
// referenced as an operand by several in-tree nodes is only ever
// transformed once per block. Scoped to a single basic block; callers
// create a fresh Registry per block.
type Registry struct {
	entries map[registryKey][]*ir.Value
}

// NewRegistry returns an empty transform registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[registryKey][]*ir.Value)}
}

// Lookup returns the cached sequence for (v, param), or nil, false if
// absent.
func (r *Registry) Lookup(v *ir.Value, param uint64) ([]*ir.Value, bool) {
	seq, ok := r.entries[registryKey{v, param}]
	return seq, ok
}

// Store records seq as the transformed representation of (v, param).
// seq must be non-empty.
func (r *Registry) Store(v *ir.Value, param uint64, seq []*ir.Value) {
	if len(seq) == 0 {
		panic("obfuscate: registry.Store called with empty sequence")
	}
	r.entries[registryKey{v, param}] = seq
}
