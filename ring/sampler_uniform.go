package ring

import (
	"github.com/cathieyun/bfv12/utils/sampling"
)

// UniformSampler wraps a sampling.PRNG and represents the state of a sampler
// of uniform polynomials.
type UniformSampler struct {
	baseSampler
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG and
// ring definition.
func NewUniformSampler(prng sampling.PRNG, baseRing *Ring) (u *UniformSampler) {
	return &UniformSampler{baseSampler: newBaseSampler(prng, baseRing)}
}

// Read samples a polynomial with coefficients independently uniform in
// [0, m) into pol.
func (u *UniformSampler) Read(pol *Poly) {

	u.baseRing.checkOperands("Read", pol)

	m := u.baseRing.Modulus
	mask := u.baseRing.Mask

	for i := range pol.Coeffs {
		// Rejection sampling on the masked PRNG output.
		var randomUint uint64
		for {
			if randomUint = u.randUint64() & mask; randomUint < m {
				break
			}
		}
		pol.Coeffs[i] = randomUint
	}
}

// ReadNew allocates and samples a new uniform polynomial.
func (u *UniformSampler) ReadNew() (pol *Poly) {
	pol = u.baseRing.NewPoly()
	u.Read(pol)
	return
}
