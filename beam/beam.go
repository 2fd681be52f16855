// Package beam is the public façade of the analysis engine. A Beam is
// constructed from loads and reactions, solved on creation, and queried
// for deflection, angle, moment, and shear at any position along its
// length.
package beam

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/structlab/beamfem/element"
	"github.com/structlab/beamfem/load"
	"github.com/structlab/beamfem/mesh"
	"github.com/structlab/beamfem/reaction"
	"github.com/structlab/beamfem/shape"
)

// ErrOutOfRange reports a query location outside the beam span.
var ErrOutOfRange = errors.New("location outside beam")

// ErrSingular is returned by New and Solve when the reactions do not
// constrain the beam.
var ErrSingular = element.ErrSingular

// Field selects the quantity a Diagram samples.
type Field string

const (
	FieldDeflection Field = "deflection"
	FieldAngle      Field = "angle"
	FieldMoment     Field = "moment"
	FieldShear      Field = "shear"
)

// Option configures a Beam at construction.
type Option func(*config)

type config struct {
	e, ixx   float64
	meshOpts []mesh.Option
}

// WithE sets Young's modulus. Defaults to 1 so results scale linearly
// and can be post-multiplied by the real stiffness.
func WithE(e float64) Option { return func(c *config) { c.e = e } }

// WithIxx sets the area moment of inertia. Defaults to 1.
func WithIxx(ixx float64) Option { return func(c *config) { c.ixx = ixx } }

// WithMaxElementLength caps the mesh element length.
func WithMaxElementLength(l float64) Option {
	return func(c *config) { c.meshOpts = append(c.meshOpts, mesh.WithMaxElementLength(l)) }
}

// WithMinElementCount sets a lower bound on the mesh element count.
func WithMinElementCount(n int) Option {
	return func(c *config) { c.meshOpts = append(c.meshOpts, mesh.WithMinElementCount(n)) }
}

// Beam is a solved Euler-Bernoulli beam.
type Beam struct {
	*element.Element
}

// New builds and solves a beam. The zero-value material defaults are
// E=1 and Ixx=1.
func New(length float64, loads []load.Load, reactions []*reaction.Reaction, opts ...Option) (*Beam, error) {
	cfg := config{e: 1, ixx: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	el, err := element.New(length, loads, reactions, cfg.e, cfg.ixx, cfg.meshOpts...)
	if err != nil {
		return nil, err
	}
	b := &Beam{Element: el}
	if err := b.Solve(); err != nil {
		return nil, err
	}
	return b, nil
}

// local returns the nodal displacement slice, local coordinate, and
// length of the element containing x.
func (b *Beam) local(x float64) (d []float64, xi, L float64, err error) {
	if x < 0 || x > b.Length() {
		return nil, 0, 0, fmt.Errorf("%w: %v not in [0, %v]", ErrOutOfRange, x, b.Length())
	}
	dg, err := b.NodeDeflections()
	if err != nil {
		return nil, 0, 0, err
	}
	i, ok := b.Mesh().ElementAt(x)
	if !ok {
		// the mesh predates a geometry mutation and ends short of x
		return nil, 0, 0, fmt.Errorf("beam: mesh does not cover %v, solve again after mutating the beam", x)
	}
	nodes := b.Mesh().Nodes()
	base := i * element.NodeDOF
	d = []float64{dg.AtVec(base), dg.AtVec(base + 1), dg.AtVec(base + 2), dg.AtVec(base + 3)}
	return d, x - nodes[i], nodes[i+1] - nodes[i], nil
}

// Deflection returns the vertical displacement at x.
func (b *Beam) Deflection(x float64) (float64, error) {
	d, xi, L, err := b.local(x)
	if err != nil {
		return 0, err
	}
	return shape.Dot(shape.N(xi, L), d), nil
}

// Angle returns the slope of the beam at x, in degrees.
func (b *Beam) Angle(x float64) (float64, error) {
	d, xi, L, err := b.local(x)
	if err != nil {
		return 0, err
	}
	return shape.Dot(shape.D1(xi, L), d) * 180 / math.Pi, nil
}

// Moment returns the internal bending moment at x,
// M(x) = -E*Ixx*v''(x).
func (b *Beam) Moment(x float64) (float64, error) {
	d, xi, L, err := b.local(x)
	if err != nil {
		return 0, err
	}
	return -b.E() * b.Ixx() * shape.Dot(shape.D2(xi, L), d), nil
}

// Shear returns the internal shear force at x, V(x) = -E*Ixx*v'''(x).
// The third derivative of the cubic interpolant is constant within an
// element, so Shear is piecewise constant.
func (b *Beam) Shear(x float64) (float64, error) {
	d, _, L, err := b.local(x)
	if err != nil {
		return 0, err
	}
	return -b.E() * b.Ixx() * shape.Dot(shape.D3(L), d), nil
}

// eval applies f at every location, collecting all out-of-range inputs
// into a single error.
func (b *Beam) eval(xs []float64, f func(float64) (float64, error)) ([]float64, error) {
	var bad []float64
	for _, x := range xs {
		if x < 0 || x > b.Length() {
			bad = append(bad, x)
		}
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("%w: %v not in [0, %v]", ErrOutOfRange, bad, b.Length())
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		v, err := f(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Deflections evaluates Deflection at every location.
func (b *Beam) Deflections(xs []float64) ([]float64, error) { return b.eval(xs, b.Deflection) }

// Angles evaluates Angle at every location.
func (b *Beam) Angles(xs []float64) ([]float64, error) { return b.eval(xs, b.Angle) }

// Moments evaluates Moment at every location.
func (b *Beam) Moments(xs []float64) ([]float64, error) { return b.eval(xs, b.Moment) }

// Shears evaluates Shear at every location.
func (b *Beam) Shears(xs []float64) ([]float64, error) { return b.eval(xs, b.Shear) }

// Diagram samples the given field at n evenly spaced locations over the
// full span, returning the locations and values. n must be at least 2.
func (b *Beam) Diagram(field Field, n int) (xs, ys []float64, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("beam: diagram needs at least 2 points, got %d", n)
	}
	var f func(float64) (float64, error)
	switch field {
	case FieldDeflection:
		f = b.Deflection
	case FieldAngle:
		f = b.Angle
	case FieldMoment:
		f = b.Moment
	case FieldShear:
		f = b.Shear
	default:
		return nil, nil, fmt.Errorf("beam: unknown field %q", field)
	}
	xs = floats.Span(make([]float64, n), 0, b.Length())
	ys, err = b.eval(xs, f)
	if err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

func (b *Beam) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PARAMETERS\n")
	fmt.Fprintf(&sb, "Length (length): %v\n", b.Length())
	fmt.Fprintf(&sb, "Young's Modulus (E): %v\n", b.E())
	fmt.Fprintf(&sb, "Area moment of inertia (Ixx): %v\n", b.Ixx())
	fmt.Fprintf(&sb, "LOADING\n")
	for _, ld := range b.Loads() {
		fmt.Fprintf(&sb, "%v\n", ld)
	}
	fmt.Fprintf(&sb, "REACTIONS\n")
	for _, r := range b.Reactions() {
		fmt.Fprintf(&sb, "%v\n", r)
	}
	return sb.String()
}
