// Package reaction defines the supports that resist the loads applied
// to a beam. Each reaction carries the boundary condition it imposes on
// its node and receives its solved force and moment after analysis.
package reaction

import (
	"fmt"
)

// Boundary describes which degrees of freedom a reaction fixes at its
// node. A fixed degree of freedom is constrained to zero.
type Boundary struct {
	Displacement bool
	Rotation     bool
}

// Reaction is a support at a single location along the beam. Force and
// moment are unknown until the owning element is solved.
type Reaction struct {
	name     string
	location float64
	boundary Boundary

	force    float64
	moment   float64
	resolved bool
}

func newReaction(name string, location float64, b Boundary) (*Reaction, error) {
	if location < 0 {
		return nil, fmt.Errorf("%s reaction: location must be non-negative, got %v", name, location)
	}
	return &Reaction{name: name, location: location, boundary: b}, nil
}

// NewPinned creates a pinned support: vertical displacement is fixed,
// rotation is free.
func NewPinned(location float64) (*Reaction, error) {
	return newReaction("pinned", location, Boundary{Displacement: true})
}

// NewFixed creates a fixed (clamped) support: both vertical displacement
// and rotation are fixed.
func NewFixed(location float64) (*Reaction, error) {
	return newReaction("fixed", location, Boundary{Displacement: true, Rotation: true})
}

// NewSlot creates a slot support: rotation is fixed but vertical
// displacement is free.
func NewSlot(location float64) (*Reaction, error) {
	return newReaction("slot", location, Boundary{Rotation: true})
}

// Name identifies the reaction kind ("pinned", "fixed", "slot").
func (r *Reaction) Name() string { return r.name }

// Location is the position of the support along the beam.
func (r *Reaction) Location() float64 { return r.location }

// SetLocation moves the support and invalidates any solved values.
func (r *Reaction) SetLocation(x float64) error {
	if x < 0 {
		return fmt.Errorf("%s reaction: location must be non-negative, got %v", r.name, x)
	}
	r.Invalidate()
	r.location = x
	return nil
}

// Boundary returns the boundary condition imposed by this reaction.
func (r *Reaction) Boundary() Boundary { return r.boundary }

// Force returns the solved reaction force. ok is false until the owning
// element has been solved.
func (r *Reaction) Force() (value float64, ok bool) {
	return r.force, r.resolved
}

// Moment returns the solved reaction moment. ok is false until the
// owning element has been solved.
func (r *Reaction) Moment() (value float64, ok bool) {
	return r.moment, r.resolved
}

// Resolved reports whether the reaction holds solved values.
func (r *Reaction) Resolved() bool { return r.resolved }

// Resolve stores the solved force and moment. Called by the solver.
func (r *Reaction) Resolve(force, moment float64) {
	r.force = force
	r.moment = moment
	r.resolved = true
}

// Invalidate clears the solved values. To be used whenever the beam
// parameters change and the values are no longer valid.
func (r *Reaction) Invalidate() {
	r.force = 0
	r.moment = 0
	r.resolved = false
}

// Equal reports whether two reactions are the same kind at the same
// location with the same solved state.
func (r *Reaction) Equal(other *Reaction) bool {
	if other == nil {
		return false
	}
	if r.boundary != other.boundary || r.location != other.location {
		return false
	}
	if r.resolved != other.resolved {
		return false
	}
	return !r.resolved || (r.force == other.force && r.moment == other.moment)
}

func (r *Reaction) String() string {
	if !r.resolved {
		return fmt.Sprintf("%s reaction at %v (unsolved)", r.name, r.location)
	}
	return fmt.Sprintf("%s reaction at %v: force=%g moment=%g", r.name, r.location, r.force, r.moment)
}
