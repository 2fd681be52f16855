package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestMeshNodes(t *testing.T) {
	m, err := New(25, []float64{10, 15}, 2)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 10, 15, 25}, m.Nodes())
	assert.Equal(t, 8, m.DOF())
	assert.Equal(t, []float64{10, 5, 10}, m.Lengths())
	assert.Equal(t, 3, m.NumElements())
}

func TestMeshDedupAndSort(t *testing.T) {
	m, err := New(20, []float64{15, 5, 15, 0, 20, 5}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5, 15, 20}, m.Nodes())
}

func TestMeshDOFScalesWithNodeDOF(t *testing.T) {
	for _, dof := range []int{1, 2, 3} {
		m, err := New(25, []float64{5, 10, 15}, dof)
		require.NoError(t, err)
		assert.Equal(t, dof*5, m.DOF())
		assert.Equal(t, dof, m.NodeDOF())
	}
}

func TestMeshInvalidArgs(t *testing.T) {
	testCases := []struct {
		name      string
		length    float64
		locations []float64
		nodeDOF   int
	}{
		{"zero_dof", 10, nil, 0},
		{"negative_dof", 10, nil, -4},
		{"zero_length", 0, nil, 2},
		{"negative_length", -5, nil, 2},
		{"location_negative", 10, []float64{-1}, 2},
		{"location_past_end", 10, []float64{11}, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.length, tc.locations, tc.nodeDOF)
			assert.Error(t, err)
		})
	}
}

func TestMaxElementLengthRefinement(t *testing.T) {
	m, err := New(10, []float64{4}, 2, WithMaxElementLength(2.5))
	require.NoError(t, err)

	nodes := m.Nodes()
	assert.Equal(t, 0.0, nodes[0])
	assert.Equal(t, 10.0, nodes[len(nodes)-1])

	idx, ok := m.NodeIndex(4)
	assert.True(t, ok, "original locations survive refinement")
	assert.Greater(t, idx, 0)

	for i, l := range m.Lengths() {
		assert.LessOrEqual(t, l, 2.5, "element %d too long", i)
	}
}

func TestMinElementCountRefinement(t *testing.T) {
	m, err := New(12, nil, 2, WithMinElementCount(8))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, m.NumElements(), 8)

	// bisection of the longest element keeps the mesh graded
	total := 0.0
	for _, l := range m.Lengths() {
		total += l
	}
	assert.InDelta(t, 12.0, total, 1e-12)
}

func TestCombinedRefinement(t *testing.T) {
	m, err := New(100, []float64{30}, 2,
		WithMaxElementLength(20), WithMinElementCount(10))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, m.NumElements(), 10)
	for _, l := range m.Lengths() {
		assert.LessOrEqual(t, l, 20.0)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	m, err := New(25, []float64{10, 15}, 2)
	require.NoError(t, err)

	nodes := m.Nodes()
	nodes[0] = 99
	assert.Equal(t, []float64{0, 10, 15, 25}, m.Nodes())

	lengths := m.Lengths()
	lengths[0] = -1
	assert.True(t, floats.Equal([]float64{10, 5, 10}, m.Lengths()))
}

func TestNodeIndex(t *testing.T) {
	m, err := New(25, []float64{10, 15}, 2)
	require.NoError(t, err)

	i, ok := m.NodeIndex(15)
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = m.NodeIndex(12)
	assert.False(t, ok)
}

func TestElementAt(t *testing.T) {
	m, err := New(25, []float64{10, 15}, 2)
	require.NoError(t, err)

	testCases := []struct {
		x    float64
		want int
		ok   bool
	}{
		{0, 0, true},
		{5, 0, true},
		{10, 1, true},
		{12, 1, true},
		{25, 2, true},
		{-1, 0, false},
		{26, 0, false},
	}
	for _, tc := range testCases {
		got, ok := m.ElementAt(tc.x)
		assert.Equal(t, tc.ok, ok, "x=%v", tc.x)
		if ok {
			assert.Equal(t, tc.want, got, "x=%v", tc.x)
		}
	}
}
