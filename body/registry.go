package body

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("body not found")
	ErrIndexOutOfRange = errors.New("body index out of range")
	ErrInvalidRegistry = errors.New("invalid body registry")
)

// Registry is the ordered, read-only body table
// Index 0 is the anchor; indices double as handles into per-body state tables
type Registry struct {
	bodies []Body
	byName map[string]int
}

// NewRegistry validates and freezes a body table
func NewRegistry(bodies []Body) (*Registry, error) {
	r := &Registry{
		bodies: make([]Body, len(bodies)),
		byName: make(map[string]int, len(bodies)),
	}
	copy(r.bodies, bodies)
	for i := range r.bodies {
		if r.bodies[i].Ring != nil {
			ring := *r.bodies[i].Ring
			r.bodies[i].Ring = &ring
		}
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) validate() error {
	if len(r.bodies) == 0 {
		return fmt.Errorf("%w: no bodies", ErrInvalidRegistry)
	}

	anchors := 0
	for i := range r.bodies {
		b := &r.bodies[i]
		if b.Name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalidRegistry, i)
		}
		if _, dup := r.byName[b.Name]; dup {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidRegistry, b.Name)
		}
		r.byName[b.Name] = i

		if b.Radius <= 0 {
			return fmt.Errorf("%w: %s radius must be positive", ErrInvalidRegistry, b.Name)
		}
		if b.OrbitalDistance < 0 || b.OrbitalPeriodDays < 0 {
			return fmt.Errorf("%w: %s distance and orbital period must not be negative", ErrInvalidRegistry, b.Name)
		}
		if b.OrbitalPeriodDays == 0 {
			if b.OrbitalDistance != 0 {
				return fmt.Errorf("%w: %s has no orbital period but sits at distance %g", ErrInvalidRegistry, b.Name, b.OrbitalDistance)
			}
			if i != 0 {
				return fmt.Errorf("%w: anchor %s must be at index 0", ErrInvalidRegistry, b.Name)
			}
			anchors++
		}
		if b.Ring != nil && (b.Ring.InnerScale <= 0 || b.Ring.OuterScale <= b.Ring.InnerScale) {
			return fmt.Errorf("%w: %s ring scales must satisfy 0 < inner < outer", ErrInvalidRegistry, b.Name)
		}
	}

	if anchors != 1 {
		return fmt.Errorf("%w: want exactly one anchor, have %d", ErrInvalidRegistry, anchors)
	}
	return nil
}

// Len returns the number of bodies
func (r *Registry) Len() int {
	return len(r.bodies)
}

// At returns the body at index i
func (r *Registry) At(i int) (*Body, error) {
	if i < 0 || i >= len(r.bodies) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(r.bodies))
	}
	return &r.bodies[i], nil
}

// Lookup returns the index and body registered under name
func (r *Registry) Lookup(name string) (int, *Body, error) {
	i, ok := r.byName[name]
	if !ok {
		return -1, nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return i, &r.bodies[i], nil
}

// Anchor returns the central body
func (r *Registry) Anchor() *Body {
	return &r.bodies[0]
}

// All iterates bodies in registry order
func (r *Registry) All(yield func(int, *Body) bool) {
	for i := range r.bodies {
		if !yield(i, &r.bodies[i]) {
			return
		}
	}
}

// Textures returns every declared texture path, bodies first then rings
func (r *Registry) Textures() []string {
	paths := make([]string, 0, len(r.bodies)+1)
	for i := range r.bodies {
		if r.bodies[i].Texture != "" {
			paths = append(paths, r.bodies[i].Texture)
		}
	}
	for i := range r.bodies {
		if ring := r.bodies[i].Ring; ring != nil && ring.Texture != "" {
			paths = append(paths, ring.Texture)
		}
	}
	return paths
}
