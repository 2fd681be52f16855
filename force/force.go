// Package force defines the collinear force primitive shared by all load
// and reaction types.
package force

import (
	"fmt"
	"math"
)

// Force is a transverse force of a given magnitude acting at a location
// along the beam axis. Location is measured from the left end of the beam
// and must be non-negative.
type Force struct {
	Magnitude float64
	Location  float64
}

// New creates a Force at the given location.
func New(magnitude, location float64) (Force, error) {
	if location < 0 {
		return Force{}, fmt.Errorf("location must be non-negative, got %v", location)
	}
	return Force{Magnitude: magnitude, Location: location}, nil
}

// Moment is the moment of the force about the beam origin.
func (f Force) Moment() float64 {
	return f.Magnitude * f.Location
}

// Add combines two collinear forces into the statically equivalent single
// force. The resultant acts at the weighted centroid
// x = (f1*x1 + f2*x2) / (f1 + f2).
func (f Force) Add(g Force) (Force, error) {
	sum := f.Magnitude + g.Magnitude
	if sum == 0 {
		// a pure couple has no single-force equivalent
		return Force{}, fmt.Errorf("cannot combine forces %v and %v: zero resultant", f.Magnitude, g.Magnitude)
	}
	x := (f.Magnitude*f.Location + g.Magnitude*g.Location) / sum
	return Force{Magnitude: sum, Location: x}, nil
}

// Sub combines f with the negation of g. The resultant acts at
// x = (f1*x1 - f2*x2) / (f1 - f2).
func (f Force) Sub(g Force) (Force, error) {
	diff := f.Magnitude - g.Magnitude
	if diff == 0 {
		return Force{}, fmt.Errorf("cannot combine forces %v and %v: zero resultant", f.Magnitude, -g.Magnitude)
	}
	x := (f.Magnitude*f.Location - g.Magnitude*g.Location) / diff
	return Force{Magnitude: diff, Location: x}, nil
}

// Equal reports whether two forces are statically equivalent, that is,
// whether they produce the same moment about the origin within tol.
func (f Force) Equal(g Force, tol float64) bool {
	return math.Abs(f.Moment()-g.Moment()) <= tol
}

func (f Force) String() string {
	return fmt.Sprintf("Force(magnitude=%v, location=%v)", f.Magnitude, f.Location)
}
