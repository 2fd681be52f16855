// Package mesh partitions a beam into finite elements. Node locations
// are derived from the beam length and the positions of loads and
// reactions, optionally refined by a maximum element length or a
// minimum element count.
package mesh

import (
	"fmt"
	"sort"
	"strings"
)

type config struct {
	maxElementLength float64
	minElementCount  int
}

// Option configures mesh refinement.
type Option func(*config)

// WithMaxElementLength bisects elements until none is longer than h.
func WithMaxElementLength(h float64) Option {
	return func(c *config) { c.maxElementLength = h }
}

// WithMinElementCount bisects the longest element until the mesh has at
// least n elements.
func WithMinElementCount(n int) Option {
	return func(c *config) { c.minElementCount = n }
}

// Mesh is the set of node locations covering a beam and the element
// lengths between them. A mesh is immutable once constructed; the
// owning element builds a new one on remesh.
type Mesh struct {
	nodes   []float64
	lengths []float64
	nodeDOF int
}

// New builds a mesh for a beam of the given length. The node set is the
// sorted union of {0, length} and locations, deduplicated exactly, then
// refined per the options. nodeDOF is the number of degrees of freedom
// carried by each node (2 for Euler-Bernoulli beam elements).
func New(length float64, locations []float64, nodeDOF int, opts ...Option) (*Mesh, error) {
	if length <= 0 {
		return nil, fmt.Errorf("mesh: length must be positive, got %v", length)
	}
	if nodeDOF <= 0 {
		return nil, fmt.Errorf("mesh: node dof must be a positive integer, got %d", nodeDOF)
	}
	for _, x := range locations {
		if x < 0 || x > length {
			return nil, fmt.Errorf("mesh: location %v outside beam [0, %v]", x, length)
		}
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxElementLength < 0 {
		return nil, fmt.Errorf("mesh: max element length must be positive, got %v", cfg.maxElementLength)
	}
	if cfg.minElementCount < 0 {
		return nil, fmt.Errorf("mesh: min element count must be positive, got %d", cfg.minElementCount)
	}

	nodes := make([]float64, 0, len(locations)+2)
	nodes = append(nodes, 0, length)
	nodes = append(nodes, locations...)
	sort.Float64s(nodes)
	nodes = dedup(nodes)

	if cfg.maxElementLength > 0 {
		nodes = refineMaxLength(nodes, cfg.maxElementLength)
	}
	if cfg.minElementCount > 0 {
		nodes = refineMinCount(nodes, cfg.minElementCount)
	}

	m := &Mesh{nodes: nodes, nodeDOF: nodeDOF}
	m.lengths = make([]float64, len(nodes)-1)
	for i := range m.lengths {
		m.lengths[i] = nodes[i+1] - nodes[i]
	}
	return m, nil
}

// dedup removes exact duplicates from a sorted slice in place.
func dedup(xs []float64) []float64 {
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// refineMaxLength bisects every element longer than max until none
// remains. Nodes stay sorted because midpoints are inserted in place.
func refineMaxLength(nodes []float64, max float64) []float64 {
	for {
		split := -1
		for i := 0; i < len(nodes)-1; i++ {
			if nodes[i+1]-nodes[i] > max {
				split = i
				break
			}
		}
		if split < 0 {
			return nodes
		}
		nodes = bisect(nodes, split)
	}
}

// refineMinCount bisects the currently longest element until the mesh
// has at least min elements.
func refineMinCount(nodes []float64, min int) []float64 {
	for len(nodes)-1 < min {
		longest := 0
		for i := 1; i < len(nodes)-1; i++ {
			if nodes[i+1]-nodes[i] > nodes[longest+1]-nodes[longest] {
				longest = i
			}
		}
		nodes = bisect(nodes, longest)
	}
	return nodes
}

// bisect inserts the midpoint of element i.
func bisect(nodes []float64, i int) []float64 {
	mid := (nodes[i] + nodes[i+1]) / 2
	nodes = append(nodes, 0)
	copy(nodes[i+2:], nodes[i+1:])
	nodes[i+1] = mid
	return nodes
}

// Nodes returns the node locations in ascending order. The returned
// slice is a copy; the mesh itself is never mutated.
func (m *Mesh) Nodes() []float64 {
	out := make([]float64, len(m.nodes))
	copy(out, m.nodes)
	return out
}

// Lengths returns the element lengths, one per consecutive node pair.
func (m *Mesh) Lengths() []float64 {
	out := make([]float64, len(m.lengths))
	copy(out, m.lengths)
	return out
}

// DOF is the total number of degrees of freedom in the mesh.
func (m *Mesh) DOF() int { return m.nodeDOF * len(m.nodes) }

// NodeDOF is the number of degrees of freedom per node.
func (m *Mesh) NodeDOF() int { return m.nodeDOF }

// NumElements is the number of elements in the mesh.
func (m *Mesh) NumElements() int { return len(m.lengths) }

// NodeIndex returns the index of the node at exactly x.
func (m *Mesh) NodeIndex(x float64) (int, bool) {
	i := sort.SearchFloat64s(m.nodes, x)
	if i < len(m.nodes) && m.nodes[i] == x {
		return i, true
	}
	return 0, false
}

// ElementAt returns the index of the element containing x, so that
// nodes[i] <= x <= nodes[i+1]. The last element claims the right
// endpoint.
func (m *Mesh) ElementAt(x float64) (int, bool) {
	if x < m.nodes[0] || x > m.nodes[len(m.nodes)-1] {
		return 0, false
	}
	i := sort.SearchFloat64s(m.nodes, x)
	if i > 0 && (i == len(m.nodes) || m.nodes[i] != x) {
		i--
	}
	if i == len(m.lengths) {
		i--
	}
	return i, true
}

func (m *Mesh) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MESH PARAMETERS\n")
	fmt.Fprintf(&b, "Number of elements: %d\n", m.NumElements())
	fmt.Fprintf(&b, "Node locations: %v\n", m.nodes)
	fmt.Fprintf(&b, "Element lengths: %v\n", m.lengths)
	fmt.Fprintf(&b, "Total degrees of freedom: %d\n", m.DOF())
	return b.String()
}
