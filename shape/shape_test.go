package shape

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEndpointInterpolation checks the Hermite interpolation property:
// at x=0 only N1 is active, at x=L only N3 is active, and the slope
// functions N2, N4 have unit derivative at their own node.
func TestEndpointInterpolation(t *testing.T) {
	for _, L := range []float64{0.5, 1, 2.5, 10, 120} {
		t.Run(fmt.Sprintf("L=%g", L), func(t *testing.T) {
			n0 := N(0, L)
			assert.InDeltaSlice(t, []float64{1, 0, 0, 0}, n0[:], 1e-14)

			nL := N(L, L)
			assert.InDeltaSlice(t, []float64{0, 0, 1, 0}, nL[:], 1e-12)

			d0 := D1(0, L)
			assert.InDeltaSlice(t, []float64{0, 1, 0, 0}, d0[:], 1e-14)

			dL := D1(L, L)
			assert.InDeltaSlice(t, []float64{0, 0, 0, 1}, dL[:], 1e-12)
		})
	}
}

// TestPartitionOfUnity checks that the displacement shape functions sum
// to one everywhere, so rigid translation is represented exactly.
func TestPartitionOfUnity(t *testing.T) {
	L := 7.5
	for i := 0; i <= 10; i++ {
		x := L * float64(i) / 10
		n := N(x, L)
		assert.InDelta(t, 1.0, n[0]+n[2], 1e-13, "x=%g", x)
	}
}

func TestMidpointValues(t *testing.T) {
	L := 4.0
	n := N(L/2, L)
	assert.InDelta(t, 0.5, n[0], 1e-13)
	assert.InDelta(t, L/8, n[1], 1e-13)
	assert.InDelta(t, 0.5, n[2], 1e-13)
	assert.InDelta(t, -L/8, n[3], 1e-13)
}

// TestDerivativesConsistent verifies the closed-form derivatives against
// central finite differences of the level below.
func TestDerivativesConsistent(t *testing.T) {
	const h = 1e-6
	L := 3.0

	diff := func(f func(float64, float64) [4]float64, x float64) [4]float64 {
		lo := f(x-h, L)
		hi := f(x+h, L)
		var d [4]float64
		for i := range d {
			d[i] = (hi[i] - lo[i]) / (2 * h)
		}
		return d
	}

	for _, x := range []float64{0.3, 1.0, 1.5, 2.2, 2.9} {
		d1 := D1(x, L)
		fd1 := diff(N, x)
		assert.InDeltaSlice(t, d1[:], fd1[:], 1e-6, "D1 at x=%g", x)

		d2 := D2(x, L)
		fd2 := diff(D1, x)
		assert.InDeltaSlice(t, d2[:], fd2[:], 1e-6, "D2 at x=%g", x)

		d3 := D3(L)
		fd3 := diff(D2, x)
		assert.InDeltaSlice(t, d3[:], fd3[:], 1e-6, "D3 at x=%g", x)
	}
}

func TestDot(t *testing.T) {
	n := [4]float64{1, 2, 3, 4}
	d := []float64{10, 20, 30, 40}
	assert.Equal(t, 300.0, Dot(n, d))
}
