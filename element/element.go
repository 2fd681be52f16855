// Package element implements the Euler-Bernoulli beam element: mesh
// management, global stiffness assembly, equivalent nodal load
// computation, boundary condition application, and the static solve for
// nodal displacements and reaction values.
package element

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/structlab/beamfem/load"
	"github.com/structlab/beamfem/mesh"
	"github.com/structlab/beamfem/reaction"
)

// NodeDOF is the number of degrees of freedom per node: vertical
// displacement and rotation.
const NodeDOF = 2

// collisionOffset is the nudge applied to a load that coincides exactly
// with a reaction, toward the beam interior, so the applied load does
// not land on a constrained degree of freedom. The magnitude is a
// numerical workaround, not a physically meaningful value.
const collisionOffset = 1e-8

// ErrSingular reports that the boundary conditions are insufficient to
// constrain the beam, leaving the stiffness system singular.
var ErrSingular = errors.New("singular system: boundary conditions do not constrain the beam")

var logger = log.New(os.Stderr, "", log.LstdFlags)

// SetLogger replaces the package logger used for numerical warnings
// such as the coincident load/reaction nudge.
func SetLogger(l *log.Logger) { logger = l }

// Element is a beam with loads, reactions, and a mesh. The global
// stiffness matrix and nodal deflections are computed lazily and cached;
// any mutation invalidates the cache and all solved reaction values.
type Element struct {
	length float64
	e      float64 // Young's modulus
	ixx    float64 // area moment of inertia

	loads     []load.Load
	reactions []*reaction.Reaction

	meshOpts []mesh.Option
	msh      *mesh.Mesh

	// cached results, nil when dirty
	k *mat.Dense    // global stiffness matrix
	d *mat.VecDense // nodal deflections
}

// New creates a beam element. Length, E, and Ixx must be positive;
// loads and reactions must not contain nil entries. Mesh options
// control optional refinement of the node set.
func New(length float64, loads []load.Load, reactions []*reaction.Reaction, e, ixx float64, meshOpts ...mesh.Option) (*Element, error) {
	el := &Element{meshOpts: meshOpts}
	if err := el.SetLength(length); err != nil {
		return nil, err
	}
	if err := el.SetE(e); err != nil {
		return nil, err
	}
	if err := el.SetIxx(ixx); err != nil {
		return nil, err
	}
	if err := el.SetReactions(reactions); err != nil {
		return nil, err
	}
	if err := el.SetLoads(loads); err != nil {
		return nil, err
	}
	if err := el.Remesh(); err != nil {
		return nil, err
	}
	return el, nil
}

// Length is the overall beam length.
func (el *Element) Length() float64 { return el.length }

// E is Young's modulus.
func (el *Element) E() float64 { return el.e }

// Ixx is the area moment of inertia.
func (el *Element) Ixx() float64 { return el.ixx }

// Loads returns the loads acting on the beam. The slice is a copy;
// replacing loads must go through SetLoads so caches invalidate.
func (el *Element) Loads() []load.Load {
	out := make([]load.Load, len(el.loads))
	copy(out, el.loads)
	return out
}

// Reactions returns the supports of the beam. The slice is a copy;
// replacing reactions must go through SetReactions.
func (el *Element) Reactions() []*reaction.Reaction {
	out := make([]*reaction.Reaction, len(el.reactions))
	copy(out, el.reactions)
	return out
}

// Mesh returns the current mesh. Nil until the first Remesh.
func (el *Element) Mesh() *mesh.Mesh { return el.msh }

// SetLength updates the beam length and invalidates cached results.
func (el *Element) SetLength(length float64) error {
	if length <= 0 {
		return fmt.Errorf("element: length must be positive, got %v", length)
	}
	el.invalidate()
	el.length = length
	return nil
}

// SetE updates Young's modulus and invalidates cached results.
func (el *Element) SetE(e float64) error {
	if e <= 0 {
		return fmt.Errorf("element: Young's modulus must be positive, got %v", e)
	}
	el.invalidate()
	el.e = e
	return nil
}

// SetIxx updates the area moment of inertia and invalidates cached
// results.
func (el *Element) SetIxx(ixx float64) error {
	if ixx <= 0 {
		return fmt.Errorf("element: area moment of inertia must be positive, got %v", ixx)
	}
	el.invalidate()
	el.ixx = ixx
	return nil
}

// SetLoads replaces the load list and invalidates cached results. Load
// locations that coincide exactly with a reaction are nudged toward the
// beam interior.
func (el *Element) SetLoads(loads []load.Load) error {
	for i, ld := range loads {
		if ld == nil {
			return fmt.Errorf("element: load %d is nil", i)
		}
	}
	el.invalidate()
	el.loads = loads
	return el.validateLoadLocations()
}

// SetReactions replaces the reaction list and invalidates cached
// results.
func (el *Element) SetReactions(reactions []*reaction.Reaction) error {
	for i, r := range reactions {
		if r == nil {
			return fmt.Errorf("element: reaction %d is nil", i)
		}
	}
	el.invalidate()
	el.reactions = reactions
	return nil
}

// validateLoadLocations nudges any nodal load that sits exactly on a
// reaction by collisionOffset toward the beam interior.
func (el *Element) validateLoadLocations() error {
	for _, r := range el.reactions {
		for _, ld := range el.loads {
			nl, ok := ld.(load.NodalLoad)
			if !ok {
				continue
			}
			if nl.Location() != r.Location() {
				continue
			}
			offset := -collisionOffset
			if r.Location() == 0 {
				offset = collisionOffset
			}
			if err := nl.SetLocation(nl.Location() + offset); err != nil {
				return err
			}
			logger.Printf("%s at %v coincides with a reaction, moved by %v", nl.Name(), r.Location(), offset)
		}
	}
	return nil
}

// invalidate clears the cached stiffness matrix, nodal deflections, and
// every reaction's solved values.
func (el *Element) invalidate() {
	el.k = nil
	el.d = nil
	for _, r := range el.reactions {
		r.Invalidate()
	}
}

// Remesh rebuilds the mesh from the current length, loads, and
// reactions, and invalidates cached results.
func (el *Element) Remesh() error {
	var locations []float64
	for _, ld := range el.loads {
		locations = append(locations, ld.MeshLocations()...)
	}
	for _, r := range el.reactions {
		locations = append(locations, r.Location())
	}
	m, err := mesh.New(el.length, locations, NodeDOF, el.meshOpts...)
	if err != nil {
		return err
	}
	el.invalidate()
	el.msh = m
	return nil
}

// StiffnessLocal returns the 4x4 stiffness matrix of a single beam
// element of length L:
//
//	k = E*Ixx/L^3 * | 12    6L   -12    6L  |
//	                | 6L   4L^2  -6L   2L^2 |
//	                | -12  -6L    12   -6L  |
//	                | 6L   2L^2  -6L   4L^2 |
func (el *Element) StiffnessLocal(L float64) *mat.Dense {
	c := el.e * el.ixx / (L * L * L)
	return mat.NewDense(4, 4, []float64{
		12 * c, 6 * L * c, -12 * c, 6 * L * c,
		6 * L * c, 4 * L * L * c, -6 * L * c, 2 * L * L * c,
		-12 * c, -6 * L * c, 12 * c, -6 * L * c,
		6 * L * c, 2 * L * L * c, -6 * L * c, 4 * L * L * c,
	})
}

// Stiffness returns the global stiffness matrix, assembling and caching
// it if needed. Element matrices overlap by one node so interior 2x2
// blocks accumulate. Callers must not mutate the returned matrix;
// boundary conditions are applied to a copy.
func (el *Element) Stiffness() *mat.Dense {
	if el.k != nil {
		return el.k
	}
	dof := el.msh.DOF()
	kg := mat.NewDense(dof, dof, nil)
	for i, L := range el.msh.Lengths() {
		k := el.StiffnessLocal(L)
		base := i * NodeDOF
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				kg.Set(base+r, base+c, kg.At(base+r, base+c)+k.At(r, c))
			}
		}
	}
	el.k = kg
	return el.k
}

// boundaryConditions collects the per-node boundary condition imposed
// by the reactions. Every reaction must sit exactly on a mesh node.
func (el *Element) boundaryConditions() ([]reaction.Boundary, error) {
	bcs := make([]reaction.Boundary, len(el.msh.Nodes()))
	for _, r := range el.reactions {
		i, ok := el.msh.NodeIndex(r.Location())
		if !ok {
			return nil, fmt.Errorf("element: reaction location %v is not a mesh node", r.Location())
		}
		bcs[i] = r.Boundary()
	}
	return bcs, nil
}

// applyBoundaryConditions zeroes the row and column of each constrained
// degree of freedom and sets its diagonal entry to one. k is mutated in
// place; pass a copy to preserve the unconstrained matrix.
func applyBoundaryConditions(k *mat.Dense, bcs []reaction.Boundary) {
	dof, _ := k.Dims()
	clamp := func(i int) {
		for j := 0; j < dof; j++ {
			k.Set(i, j, 0)
			k.Set(j, i, 0)
		}
		k.Set(i, i, 1)
	}
	for node, bc := range bcs {
		if bc.Displacement {
			clamp(node * NodeDOF)
		}
		if bc.Rotation {
			clamp(node*NodeDOF + 1)
		}
	}
}

// LoadVector assembles the equivalent nodal load vector. Distributed
// loads are expanded to nodal loads first; nodal loads between nodes
// are redistributed with the Hermite shape functions. Contributions to
// shared nodes accumulate.
func (el *Element) LoadVector() (*mat.VecDense, error) {
	b := mat.NewVecDense(el.msh.DOF(), nil)

	var nodal []load.NodalLoad
	for _, ld := range el.loads {
		switch v := ld.(type) {
		case load.Distributor:
			expanded, err := v.EquivalentLoads(el.msh.Nodes())
			if err != nil {
				return nil, err
			}
			nodal = append(nodal, expanded...)
		case load.NodalLoad:
			nodal = append(nodal, v)
		default:
			return nil, fmt.Errorf("element: unsupported load type %T", ld)
		}
	}

	nodes := el.msh.Nodes()
	for _, nl := range nodal {
		x := nl.Location()
		i, ok := el.msh.ElementAt(x)
		if !ok {
			return nil, fmt.Errorf("element: load location %v outside beam [0, %v]", x, el.length)
		}
		a := x - nodes[i]
		rem := nodes[i+1] - x
		fe, err := nl.EquivalentNodal(a, rem)
		if err != nil {
			return nil, err
		}
		base := i * NodeDOF
		for j, v := range fe {
			b.SetVec(base+j, b.AtVec(base+j)+v)
		}
	}
	return b, nil
}

// NodeDeflections solves for the vertical and angular displacement at
// each node, caching the result. Boundary conditions are applied to
// copies of the stiffness matrix and load vector.
func (el *Element) NodeDeflections() (*mat.VecDense, error) {
	if el.d != nil {
		return el.d, nil
	}

	bcs, err := el.boundaryConditions()
	if err != nil {
		return nil, err
	}
	// a 1-D beam has two rigid body modes, translation and rotation;
	// at least one displacement constraint plus one more constraint of
	// either kind is required to remove them
	var nd, nr int
	for _, bc := range bcs {
		if bc.Displacement {
			nd++
		}
		if bc.Rotation {
			nr++
		}
	}
	if nd < 1 || nd+nr < 2 {
		return nil, fmt.Errorf("%w: %d displacement and %d rotation constraints", ErrSingular, nd, nr)
	}

	kbc := mat.DenseCopyOf(el.Stiffness())
	applyBoundaryConditions(kbc, bcs)

	b, err := el.LoadVector()
	if err != nil {
		return nil, err
	}
	// constrained degrees of freedom carry no applied load
	for node, bc := range bcs {
		if bc.Displacement {
			b.SetVec(node*NodeDOF, 0)
		}
		if bc.Rotation {
			b.SetVec(node*NodeDOF+1, 0)
		}
	}

	d := mat.NewVecDense(el.msh.DOF(), nil)
	var lu mat.LU
	lu.Factorize(kbc)
	if err := lu.SolveVecTo(d, false, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}
		// ill-conditioned but solvable; expected when a load has been
		// nudged off a reaction by the collision offset
		logger.Printf("stiffness system is ill-conditioned: %v", err)
	}
	el.d = d
	return el.d, nil
}

// updateReactionValues back-substitutes the nodal deflections through
// the unconstrained stiffness matrix and stores the force and moment
// acting at each reaction node. The applied load vector is subtracted,
// r = K*d - b, so loads assembled directly onto a constrained degree of
// freedom (a distributed load reaching a support node) are carried by
// the reaction; at free degrees of freedom K*d equals b and the
// residual vanishes.
func (el *Element) updateReactionValues() error {
	d, err := el.NodeDeflections()
	if err != nil {
		return err
	}
	applied, err := el.LoadVector()
	if err != nil {
		return err
	}
	r := mat.NewVecDense(el.msh.DOF(), nil)
	r.MulVec(el.Stiffness(), d)
	r.SubVec(r, applied)

	for _, rx := range el.reactions {
		i, ok := el.msh.NodeIndex(rx.Location())
		if !ok {
			return fmt.Errorf("element: reaction location %v is not a mesh node", rx.Location())
		}
		rx.Resolve(r.AtVec(i*NodeDOF), r.AtVec(i*NodeDOF+1))
	}
	return nil
}

// Solve meshes the beam and computes nodal displacements and reaction
// values. It always recomputes, discarding any cached results, and is
// idempotent given unchanged inputs.
func (el *Element) Solve() error {
	if err := el.validateLoadLocations(); err != nil {
		return err
	}
	if err := el.Remesh(); err != nil {
		return err
	}
	if _, err := el.NodeDeflections(); err != nil {
		return err
	}
	return el.updateReactionValues()
}
