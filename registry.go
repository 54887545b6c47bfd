package tagjson

import (
	"sync"
	"sync/atomic"
)

// Registry is the ordered set of installed serializers. It is append-only:
// a serializer is validated when installed and never removed. Lookups read
// an immutable snapshot and never block, so a Registry may be shared by any
// number of concurrent Stringify and Parse calls.
type Registry struct {
	mu          sync.Mutex
	serializers atomic.Pointer[[]Serializer]
}

// NewRegistry installs serializers in order and fails on the first invalid one.
func NewRegistry(serializers ...Serializer) (*Registry, error) {
	r := &Registry{}
	for _, s := range serializers {
		if err := r.Install(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Install validates s and appends it. A serializer that fails validation,
// or whose static name is already taken, leaves the registry unchanged.
func (r *Registry) Install(s Serializer) error {
	if err := s.Validate(); err != nil {
		return NewInvalidSerializerError(s.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.snapshot()
	if !s.computed() {
		for _, installed := range current {
			if !installed.computed() && installed.Name == s.Name {
				return NewDuplicateSerializerError(s.Name)
			}
		}
	}

	next := make([]Serializer, len(current), len(current)+1)
	copy(next, current)
	next = append(next, s)
	r.serializers.Store(&next)
	return nil
}

// ResolveByValue returns the first installed serializer whose IsInstance
// claims v. Serializers are arbitrary predicates, so this is a linear scan
// in install order.
func (r *Registry) ResolveByValue(v any) (Serializer, bool) {
	for _, s := range r.snapshot() {
		if s.IsInstance(v) {
			return s, true
		}
	}
	return Serializer{}, false
}

// ResolveByName returns the serializer installed under the static name.
func (r *Registry) ResolveByName(name string) (Serializer, bool) {
	for _, s := range r.snapshot() {
		if !s.computed() && s.Name == name {
			return s, true
		}
	}
	return Serializer{}, false
}

// Names lists the static serializer names in install order.
func (r *Registry) Names() []string {
	var names []string
	for _, s := range r.snapshot() {
		if !s.computed() {
			names = append(names, s.Name)
		}
	}
	return names
}

// Len returns the number of installed serializers.
func (r *Registry) Len() int {
	return len(r.snapshot())
}

// restore decodes the arguments of a tag named name. It reports false when
// no serializer accepts the name.
func (r *Registry) restore(name string, args []any) (any, bool, error) {
	if s, ok := r.ResolveByName(name); ok && s.Deserialize != nil {
		v, err := s.Deserialize(args...)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}

	for _, s := range r.snapshot() {
		if !s.computed() {
			continue
		}
		v, ok, err := s.Restore(name, args)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return v, true, nil
		}
	}
	return nil, false, nil
}

func (r *Registry) snapshot() []Serializer {
	if p := r.serializers.Load(); p != nil {
		return *p
	}
	return nil
}
