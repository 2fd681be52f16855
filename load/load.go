// Package load defines the external actions that can be applied to a
// beam: point loads, moment loads, and distributed loads.
//
// Point and moment loads act at a single location. A distributed load
// spans an interval and is expanded into statically equivalent point and
// moment loads at the mesh nodes before assembly.
package load

import (
	"fmt"

	"github.com/structlab/beamfem/force"
	"github.com/structlab/beamfem/shape"
)

// Load is any external action applied to a beam.
type Load interface {
	// Name identifies the load kind ("point load", "moment load", ...).
	Name() string

	// MeshLocations are the positions along the beam that must become
	// mesh nodes for this load to be represented.
	MeshLocations() []float64
}

// NodalLoad is a load acting at a single location. When the location is
// not a mesh node, EquivalentNodal redistributes the load to the two
// nodes bracketing it.
type NodalLoad interface {
	Load

	Magnitude() float64
	Location() float64

	// SetLocation moves the load. The owning element must be re-solved
	// afterwards.
	SetLocation(x float64) error

	// FMFactor is the (force share, moment share) pair describing how
	// the magnitude splits into nodal force vs. nodal moment.
	FMFactor() (forceShare, momentShare float64)

	// EquivalentNodal returns the statically equivalent nodal values
	// [F1, M1, F2, M2] for an element of length a+b, where a is the
	// offset from the left node to the load and b the offset to the
	// right node.
	EquivalentNodal(a, b float64) ([4]float64, error)
}

// Distributor is a load spanning an interval that expands into discrete
// nodal loads over a mesh.
type Distributor interface {
	Load

	// Span returns the start and stop positions of the load.
	Span() (start, stop float64)

	// EquivalentLoads returns point and moment loads at the given mesh
	// nodes that are statically equivalent to the distributed load.
	EquivalentLoads(nodes []float64) ([]NodalLoad, error)
}

func checkSpan(a, b float64) (float64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("offsets must be non-negative, got a=%v b=%v", a, b)
	}
	L := a + b
	if L == 0 {
		return 0, fmt.Errorf("element length must be positive")
	}
	return L, nil
}

// PointLoad is a concentrated transverse force.
type PointLoad struct {
	f force.Force
}

// NewPoint creates a point load of the given magnitude at location.
func NewPoint(magnitude, location float64) (*PointLoad, error) {
	f, err := force.New(magnitude, location)
	if err != nil {
		return nil, fmt.Errorf("point load: %w", err)
	}
	return &PointLoad{f: f}, nil
}

func (p *PointLoad) Name() string             { return "point load" }
func (p *PointLoad) Magnitude() float64       { return p.f.Magnitude }
func (p *PointLoad) Location() float64        { return p.f.Location }
func (p *PointLoad) MeshLocations() []float64 { return []float64{p.f.Location} }

// FMFactor returns (1, 0): the full magnitude is a nodal force.
func (p *PointLoad) FMFactor() (float64, float64) { return 1, 0 }

func (p *PointLoad) SetLocation(x float64) error {
	if x < 0 {
		return fmt.Errorf("point load: location must be non-negative, got %v", x)
	}
	p.f.Location = x
	return nil
}

// EquivalentNodal distributes the point load to the element end nodes
// using the Hermite shape function values at the load position.
func (p *PointLoad) EquivalentNodal(a, b float64) ([4]float64, error) {
	L, err := checkSpan(a, b)
	if err != nil {
		return [4]float64{}, fmt.Errorf("point load: %w", err)
	}
	mag := p.f.Magnitude
	switch {
	case a == 0:
		return [4]float64{mag, 0, 0, 0}, nil
	case b == 0:
		return [4]float64{0, 0, mag, 0}, nil
	}
	n := shape.N(a, L)
	return [4]float64{mag * n[0], mag * n[1], mag * n[2], mag * n[3]}, nil
}

func (p *PointLoad) String() string {
	return fmt.Sprintf("PointLoad(magnitude=%v, location=%v)", p.f.Magnitude, p.f.Location)
}

// MomentLoad is a concentrated moment.
type MomentLoad struct {
	f force.Force
}

// NewMoment creates a moment load of the given magnitude at location.
func NewMoment(magnitude, location float64) (*MomentLoad, error) {
	f, err := force.New(magnitude, location)
	if err != nil {
		return nil, fmt.Errorf("moment load: %w", err)
	}
	return &MomentLoad{f: f}, nil
}

func (m *MomentLoad) Name() string             { return "moment load" }
func (m *MomentLoad) Magnitude() float64       { return m.f.Magnitude }
func (m *MomentLoad) Location() float64        { return m.f.Location }
func (m *MomentLoad) MeshLocations() []float64 { return []float64{m.f.Location} }

// FMFactor returns (0, 1): the full magnitude is a nodal moment.
func (m *MomentLoad) FMFactor() (float64, float64) { return 0, 1 }

func (m *MomentLoad) SetLocation(x float64) error {
	if x < 0 {
		return fmt.Errorf("moment load: location must be non-negative, got %v", x)
	}
	m.f.Location = x
	return nil
}

// EquivalentNodal distributes the moment load to the element end nodes
// using the first derivative of the Hermite shape functions.
func (m *MomentLoad) EquivalentNodal(a, b float64) ([4]float64, error) {
	L, err := checkSpan(a, b)
	if err != nil {
		return [4]float64{}, fmt.Errorf("moment load: %w", err)
	}
	mag := m.f.Magnitude
	switch {
	case a == 0:
		return [4]float64{0, mag, 0, 0}, nil
	case b == 0:
		return [4]float64{0, 0, 0, mag}, nil
	}
	d := shape.D1(a, L)
	return [4]float64{mag * d[0], mag * d[1], mag * d[2], mag * d[3]}, nil
}

func (m *MomentLoad) String() string {
	return fmt.Sprintf("MomentLoad(magnitude=%v, location=%v)", m.f.Magnitude, m.f.Location)
}
