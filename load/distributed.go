package load

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// quadPoints is the Gauss-Legendre point count used per element
// intersection. Exact for polynomial intensities up to degree 2n-1.
const quadPoints = 8

// DistributedLoad is a transverse load of arbitrary intensity w(x)
// acting over [Start, Stop).
type DistributedLoad struct {
	w     func(x float64) float64
	start float64
	stop  float64
}

// NewDistributed creates a distributed load with intensity w over
// [start, stop).
func NewDistributed(w func(x float64) float64, start, stop float64) (*DistributedLoad, error) {
	if w == nil {
		return nil, fmt.Errorf("distributed load: intensity function must not be nil")
	}
	if start < 0 {
		return nil, fmt.Errorf("distributed load: start must be non-negative, got %v", start)
	}
	if start >= stop {
		return nil, fmt.Errorf("distributed load: start (%v) must be less than stop (%v)", start, stop)
	}
	return &DistributedLoad{w: w, start: start, stop: stop}, nil
}

func (d *DistributedLoad) Name() string             { return "distributed load" }
func (d *DistributedLoad) Span() (float64, float64) { return d.start, d.stop }

// MeshLocations returns the span endpoints; both must be mesh nodes so
// elements never straddle the edge of the load.
func (d *DistributedLoad) MeshLocations() []float64 {
	return []float64{d.start, d.stop}
}

// Intensity evaluates the load intensity at x.
func (d *DistributedLoad) Intensity(x float64) float64 { return d.w(x) }

// EquivalentLoads expands the distributed load into point and moment
// loads at the given mesh nodes.
//
// For each element intersecting the span, the intensity is integrated
// (Gauss-Legendre quadrature) to a resultant p at the load centroid,
// which is then redistributed to the element end nodes with the
// classical fixed-end force formulas
//
//	p0 = p*b^2*(L+2a)/L^3   m0 = -p*a*b^2/L^2
//	p1 = p*a^2*(L+2b)/L^3   m1 = p*a^2*b/L^2
//
// where a and b are the centroid offsets from the left and right node.
func (d *DistributedLoad) EquivalentLoads(nodes []float64) ([]NodalLoad, error) {
	if len(nodes) < 2 {
		return nil, fmt.Errorf("distributed load: need at least 2 nodes, got %d", len(nodes))
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i] <= nodes[i-1] {
			return nil, fmt.Errorf("distributed load: nodes must be strictly ascending at index %d", i)
		}
	}
	if d.start < nodes[0] || d.stop > nodes[len(nodes)-1] {
		return nil, fmt.Errorf("distributed load: span [%v, %v] not covered by nodes [%v, %v]",
			d.start, d.stop, nodes[0], nodes[len(nodes)-1])
	}

	var loads []NodalLoad
	for i := 0; i < len(nodes)-1; i++ {
		n0, n1 := nodes[i], nodes[i+1]
		lo := math.Max(n0, d.start)
		hi := math.Min(n1, d.stop)
		if hi <= lo {
			continue
		}

		p := quad.Fixed(d.w, lo, hi, quadPoints, nil, 0)
		if p == 0 {
			continue
		}
		// centroid of the load over this element
		first := quad.Fixed(func(x float64) float64 { return x * d.w(x) }, lo, hi, quadPoints, nil, 0)
		c := first / p

		a := c - n0
		b := n1 - c
		L := n1 - n0
		L2 := L * L
		L3 := L2 * L

		p0 := p * b * b * (L + 2*a) / L3
		m0 := -p * a * b * b / L2
		p1 := p * a * a * (L + 2*b) / L3
		m1 := p * a * a * b / L2

		for _, nl := range []struct {
			force bool
			mag   float64
			loc   float64
		}{
			{true, p0, n0},
			{false, m0, n0},
			{true, p1, n1},
			{false, m1, n1},
		} {
			if nl.mag == 0 {
				continue
			}
			var ld NodalLoad
			var err error
			if nl.force {
				ld, err = NewPoint(nl.mag, nl.loc)
			} else {
				ld, err = NewMoment(nl.mag, nl.loc)
			}
			if err != nil {
				return nil, err
			}
			loads = append(loads, ld)
		}
	}
	return loads, nil
}

func (d *DistributedLoad) String() string {
	return fmt.Sprintf("DistributedLoad(start=%v, stop=%v)", d.start, d.stop)
}

// ConstantDistributedLoad is a distributed load of constant intensity W.
type ConstantDistributedLoad struct {
	DistributedLoad
	mag float64
}

// NewConstantDistributed creates a uniformly distributed load of
// intensity w (force per unit length) over [start, stop).
func NewConstantDistributed(w, start, stop float64) (*ConstantDistributedLoad, error) {
	d, err := NewDistributed(func(float64) float64 { return w }, start, stop)
	if err != nil {
		return nil, err
	}
	return &ConstantDistributedLoad{DistributedLoad: *d, mag: w}, nil
}

func (c *ConstantDistributedLoad) Name() string { return "constant load" }

// Magnitude is the constant intensity W.
func (c *ConstantDistributedLoad) Magnitude() float64 { return c.mag }

// EquivalentForce is the total force of the load, W*(stop-start).
func (c *ConstantDistributedLoad) EquivalentForce() float64 {
	return c.mag * (c.stop - c.start)
}

// Centroid is the location of the resultant force.
func (c *ConstantDistributedLoad) Centroid() float64 {
	return (c.start + c.stop) / 2
}

func (c *ConstantDistributedLoad) String() string {
	return fmt.Sprintf("ConstantDistributedLoad(magnitude=%v, start=%v, stop=%v)", c.mag, c.start, c.stop)
}
