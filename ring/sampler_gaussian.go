package ring

import (
	"math"

	"github.com/cathieyun/bfv12/utils/sampling"
)

// GaussianSampler keeps the state of a polynomial sampler in the discrete
// gaussian distribution: each coefficient is drawn from a rounded gaussian
// of standard deviation Sigma, truncated to [-Bound, Bound], and reduced
// mod m.
type GaussianSampler struct {
	baseSampler
	xe DiscreteGaussian

	spare    float64
	hasSpare bool
}

// NewGaussianSampler creates a new instance of GaussianSampler from a PRNG,
// a ring definition and the distribution parameters (see type
// DiscreteGaussian). A zero Bound defaults to 6*Sigma.
func NewGaussianSampler(prng sampling.PRNG, baseRing *Ring, X DiscreteGaussian) (g *GaussianSampler) {
	if X.Bound == 0 {
		X.Bound = 6 * X.Sigma
	}
	return &GaussianSampler{
		baseSampler: newBaseSampler(prng, baseRing),
		xe:          X,
	}
}

// Read samples a discrete gaussian polynomial into pol.
func (g *GaussianSampler) Read(pol *Poly) {

	g.baseRing.checkOperands("Read", pol)

	m := g.baseRing.Modulus

	for i := range pol.Coeffs {

		var coeffFlo float64
		for {
			if coeffFlo = g.normFloat64() * g.xe.Sigma; math.Abs(coeffFlo) <= g.xe.Bound {
				break
			}
		}

		// Round half away from zero, then reduce in [0, m).
		coeffInt := uint64(math.Floor(math.Abs(coeffFlo)+0.5)) % m

		if coeffFlo < 0 {
			pol.Coeffs[i] = (m - coeffInt) % m
		} else {
			pol.Coeffs[i] = coeffInt
		}
	}
}

// ReadNew allocates and samples a new discrete gaussian polynomial.
func (g *GaussianSampler) ReadNew() (pol *Poly) {
	pol = g.baseRing.NewPoly()
	g.Read(pol)
	return
}

// normFloat64 returns a standard normal sample derived from the PRNG stream
// with the Box-Muller transform. Samples are produced in pairs; the second
// of each pair is kept for the next call.
func (g *GaussianSampler) normFloat64() float64 {

	if g.hasSpare {
		g.hasSpare = false
		return g.spare
	}

	// u1 in (0, 1] so that Log is finite, u2 in [0, 1).
	u1 := (float64(g.randUint64()>>11) + 1) * (1.0 / 9007199254740992.0)
	u2 := g.randFloat64()

	radius := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2

	g.spare = radius * math.Sin(theta)
	g.hasSpare = true

	return radius * math.Cos(theta)
}
