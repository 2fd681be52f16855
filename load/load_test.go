package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPointValidation(t *testing.T) {
	_, err := NewPoint(-100, -1)
	assert.Error(t, err)

	p, err := NewPoint(-100, 4)
	require.NoError(t, err)
	assert.Equal(t, "point load", p.Name())
	assert.Equal(t, -100.0, p.Magnitude())
	assert.Equal(t, 4.0, p.Location())
}

func TestFMFactors(t *testing.T) {
	p, err := NewPoint(1, 0)
	require.NoError(t, err)
	f, m := p.FMFactor()
	assert.Equal(t, []float64{1, 0}, []float64{f, m})

	ml, err := NewMoment(1, 0)
	require.NoError(t, err)
	f, m = ml.FMFactor()
	assert.Equal(t, []float64{0, 1}, []float64{f, m})
}

func TestPointEquivalentNodal(t *testing.T) {
	p, err := NewPoint(-10, 5)
	require.NoError(t, err)

	t.Run("at_left_node", func(t *testing.T) {
		fe, err := p.EquivalentNodal(0, 2)
		require.NoError(t, err)
		assert.Equal(t, [4]float64{-10, 0, 0, 0}, fe)
	})

	t.Run("at_right_node", func(t *testing.T) {
		fe, err := p.EquivalentNodal(2, 0)
		require.NoError(t, err)
		assert.Equal(t, [4]float64{0, 0, -10, 0}, fe)
	})

	t.Run("midspan", func(t *testing.T) {
		// N(L/2, L) = [1/2, L/8, 1/2, -L/8] with L=4
		fe, err := p.EquivalentNodal(2, 2)
		require.NoError(t, err)
		assert.InDelta(t, -5.0, fe[0], 1e-12)
		assert.InDelta(t, -5.0, fe[1], 1e-12)
		assert.InDelta(t, -5.0, fe[2], 1e-12)
		assert.InDelta(t, 5.0, fe[3], 1e-12)
	})

	t.Run("force_conserved", func(t *testing.T) {
		fe, err := p.EquivalentNodal(1.3, 2.7)
		require.NoError(t, err)
		assert.InDelta(t, -10.0, fe[0]+fe[2], 1e-12, "nodal forces must sum to the load")
	})

	t.Run("invalid_span", func(t *testing.T) {
		_, err := p.EquivalentNodal(0, 0)
		assert.Error(t, err)
		_, err = p.EquivalentNodal(-1, 2)
		assert.Error(t, err)
	})
}

func TestMomentEquivalentNodal(t *testing.T) {
	m, err := NewMoment(25, 5)
	require.NoError(t, err)

	t.Run("at_left_node", func(t *testing.T) {
		fe, err := m.EquivalentNodal(0, 3)
		require.NoError(t, err)
		assert.Equal(t, [4]float64{0, 25, 0, 0}, fe)
	})

	t.Run("at_right_node", func(t *testing.T) {
		fe, err := m.EquivalentNodal(3, 0)
		require.NoError(t, err)
		assert.Equal(t, [4]float64{0, 0, 0, 25}, fe)
	})

	t.Run("midspan", func(t *testing.T) {
		// D1(L/2, L) = [-3/(2L), -1/4, 3/(2L), -1/4] with L=4
		fe, err := m.EquivalentNodal(2, 2)
		require.NoError(t, err)
		assert.InDelta(t, 25*(-3.0/8), fe[0], 1e-12)
		assert.InDelta(t, 25*(-0.25), fe[1], 1e-12)
		assert.InDelta(t, 25*(3.0/8), fe[2], 1e-12)
		assert.InDelta(t, 25*(-0.25), fe[3], 1e-12)
	})

	t.Run("shear_couple_cancels", func(t *testing.T) {
		fe, err := m.EquivalentNodal(1.1, 2.9)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, fe[0]+fe[2], 1e-12, "a moment adds no net force")
	})
}
