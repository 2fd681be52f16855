// Package shape evaluates the Hermite cubic shape functions used by
// two-node Euler-Bernoulli beam elements, together with their exact
// first, second, and third derivatives.
//
// Shape functions are defined on the local coordinate x in [0, L] of an
// element of length L. The four values pair with the element's nodal
// degrees of freedom (v1, theta1, v2, theta2).
package shape

// N returns the Hermite cubic shape function values N1..N4 at local
// coordinate x for an element of length L.
//
//	N1 = (L^3 - 3*L*x^2 + 2*x^3) / L^3
//	N2 = (L^2*x - 2*L*x^2 + x^3) / L^2
//	N3 = (3*L*x^2 - 2*x^3) / L^3
//	N4 = (x^3 - L*x^2) / L^2
func N(x, L float64) [4]float64 {
	L2 := L * L
	L3 := L2 * L
	x2 := x * x
	x3 := x2 * x
	return [4]float64{
		(L3 - 3*L*x2 + 2*x3) / L3,
		(L2*x - 2*L*x2 + x3) / L2,
		(3*L*x2 - 2*x3) / L3,
		(x3 - L*x2) / L2,
	}
}

// D1 returns the first derivatives dN/dx at local coordinate x.
func D1(x, L float64) [4]float64 {
	L2 := L * L
	L3 := L2 * L
	x2 := x * x
	return [4]float64{
		(-6*L*x + 6*x2) / L3,
		(L2 - 4*L*x + 3*x2) / L2,
		(6*L*x - 6*x2) / L3,
		(3*x2 - 2*L*x) / L2,
	}
}

// D2 returns the second derivatives d2N/dx2 at local coordinate x.
func D2(x, L float64) [4]float64 {
	L2 := L * L
	L3 := L2 * L
	return [4]float64{
		(-6*L + 12*x) / L3,
		(-4*L + 6*x) / L2,
		(6*L - 12*x) / L3,
		(6*x - 2*L) / L2,
	}
}

// D3 returns the third derivatives d3N/dx3, constant over the element.
func D3(L float64) [4]float64 {
	L2 := L * L
	L3 := L2 * L
	return [4]float64{
		12 / L3,
		6 / L2,
		-12 / L3,
		6 / L2,
	}
}

// Dot contracts four shape values with the element's nodal degrees of
// freedom d = (v1, theta1, v2, theta2).
func Dot(n [4]float64, d []float64) float64 {
	return n[0]*d[0] + n[1]*d[1] + n[2]*d[2] + n[3]*d[3]
}
