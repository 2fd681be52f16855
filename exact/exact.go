// Package exact provides closed-form Euler-Bernoulli deflection curves
// for common beam configurations. They serve as independent references
// to validate finite-element results against.
package exact

import "math"

// SimpleSupportPointLoad is a simply supported beam of span L carrying
// a point load P at distance A from the left support. EI is the
// flexural rigidity E*Ixx.
type SimpleSupportPointLoad struct {
	P, L, A, EI float64
}

// Deflection returns the vertical displacement at x.
func (c SimpleSupportPointLoad) Deflection(x float64) float64 {
	b := c.L - c.A
	if x <= c.A {
		return c.P * b * x * (c.L*c.L - b*b - x*x) / (6 * c.L * c.EI)
	}
	// mirror the formula about the load point
	xr := c.L - x
	return c.P * c.A * xr * (c.L*c.L - c.A*c.A - xr*xr) / (6 * c.L * c.EI)
}

// MaxDeflection returns the largest-magnitude displacement and its
// location. For an off-center load the extremum lies on the longer
// segment at sqrt((L^2-b^2)/3) from the nearer support.
func (c SimpleSupportPointLoad) MaxDeflection() (v, x float64) {
	b := c.L - c.A
	if c.A >= b {
		// extremum on the left segment
		x = math.Sqrt((c.L*c.L - b*b) / 3)
		return c.Deflection(x), x
	}
	xr := math.Sqrt((c.L*c.L - c.A*c.A) / 3)
	x = c.L - xr
	return c.Deflection(x), x
}

// CantileverPointLoad is a beam fixed at x=0 with a point load P at the
// free end x=L.
type CantileverPointLoad struct {
	P, L, EI float64
}

// Deflection returns the vertical displacement at x.
func (c CantileverPointLoad) Deflection(x float64) float64 {
	return c.P * x * x * (3*c.L - x) / (6 * c.EI)
}

// MaxDeflection returns the tip displacement P*L^3/(3*EI) at x=L.
func (c CantileverPointLoad) MaxDeflection() (v, x float64) {
	return c.P * c.L * c.L * c.L / (3 * c.EI), c.L
}

// SimpleSupportUniformLoad is a simply supported beam of span L under a
// uniform load of intensity W per unit length.
type SimpleSupportUniformLoad struct {
	W, L, EI float64
}

// Deflection returns the vertical displacement at x.
func (c SimpleSupportUniformLoad) Deflection(x float64) float64 {
	return c.W * x * (c.L*c.L*c.L - 2*c.L*x*x + x*x*x) / (24 * c.EI)
}

// MaxDeflection returns the midspan displacement 5*W*L^4/(384*EI).
func (c SimpleSupportUniformLoad) MaxDeflection() (v, x float64) {
	l4 := c.L * c.L * c.L * c.L
	return 5 * c.W * l4 / (384 * c.EI), c.L / 2
}
