package ring

import (
	"fmt"

	"github.com/cathieyun/bfv12/utils/sampling"
)

// TernarySampler keeps the state of a polynomial sampler in the ternary
// distribution: each coefficient is -1 (i.e. m-1), 0 or 1 with probabilities
// [0.5*P, 1-P, 0.5*P].
type TernarySampler struct {
	baseSampler
	p float64
}

// NewTernarySampler creates a new instance of TernarySampler from a PRNG,
// the ring definition and the distribution parameters (see type Ternary).
func NewTernarySampler(prng sampling.PRNG, baseRing *Ring, X Ternary) (ts *TernarySampler, err error) {
	if X.P <= 0 || X.P > 1 {
		return nil, fmt.Errorf("invalid Ternary distribution: P=%f must be in (0, 1]", X.P)
	}
	return &TernarySampler{
		baseSampler: newBaseSampler(prng, baseRing),
		p:           X.P,
	}, nil
}

// Read samples a ternary polynomial into pol.
func (ts *TernarySampler) Read(pol *Poly) {

	ts.baseRing.checkOperands("Read", pol)

	m := ts.baseRing.Modulus

	for i := range pol.Coeffs {
		switch f := ts.randFloat64(); {
		case f < ts.p/2:
			pol.Coeffs[i] = 1
		case f < ts.p:
			pol.Coeffs[i] = m - 1
		default:
			pol.Coeffs[i] = 0
		}
	}
}

// ReadNew allocates and samples a new ternary polynomial.
func (ts *TernarySampler) ReadNew() (pol *Poly) {
	pol = ts.baseRing.NewPoly()
	ts.Read(pol)
	return
}
