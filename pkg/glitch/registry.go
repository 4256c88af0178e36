package glitch

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTransform is returned when an id has no registered transform.
	ErrUnknownTransform = errors.New("unknown transform")
	// ErrDuplicateID is returned when two transforms share an id.
	ErrDuplicateID = errors.New("duplicate transform id")
)

// Registry is a read-only, ordered catalog of transforms.
type Registry struct {
	transforms []*Transform
	byID       map[string]*Transform
	byCategory map[Category][]*Transform
}

// NewRegistry indexes transforms by id and category, keeping declaration order.
func NewRegistry(transforms []*Transform) (*Registry, error) {
	r := &Registry{
		transforms: make([]*Transform, 0, len(transforms)),
		byID:       make(map[string]*Transform, len(transforms)),
		byCategory: make(map[Category][]*Transform, len(Categories)),
	}
	for _, t := range transforms {
		if t == nil {
			continue
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, t.ID)
		}
		r.byID[t.ID] = t
		r.transforms = append(r.transforms, t)
		r.byCategory[t.Category] = append(r.byCategory[t.Category], t)
	}
	Logger().Debug("registry built", "transforms", len(r.transforms))
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. It is meant for
// package-level initialization.
func MustRegistry(transforms []*Transform) *Registry {
	r, err := NewRegistry(transforms)
	if err != nil {
		panic(err)
	}
	return r
}

// Default holds the full catalog.
var Default = MustRegistry(Catalog())

// Get returns the transform registered under id.
func (r *Registry) Get(id string) (*Transform, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Lookup is like Get but reports a missing id as an error wrapping
// ErrUnknownTransform.
func (r *Registry) Lookup(id string) (*Transform, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, id)
	}
	return t, nil
}

// All returns every transform in catalog order.
func (r *Registry) All() []*Transform {
	return append([]*Transform(nil), r.transforms...)
}

// IDs returns every transform id in catalog order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.transforms))
	for i, t := range r.transforms {
		ids[i] = t.ID
	}
	return ids
}

// ListByCategory returns the transforms of category c in catalog order.
func (r *Registry) ListByCategory(c Category) []*Transform {
	return append([]*Transform(nil), r.byCategory[c]...)
}

// ResolveParameters returns a complete parameter set for t: values present in
// partial are passed through unchanged and every other schema entry takes
// its default.
func (r *Registry) ResolveParameters(t *Transform, partial Values) Values {
	return resolve(t, partial)
}
