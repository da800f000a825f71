package bfv

import (
	"fmt"

	"github.com/cathieyun/bfv12/ring"
	"github.com/cathieyun/bfv12/utils/sampling"
)

// Plaintext is a polynomial over the plaintext ring Z_T[x]/(x^N+1).
type Plaintext struct {
	Value *ring.Poly
}

// NewPlaintext creates a new Plaintext from raw integer coefficients. It
// returns an error if the number of coefficients does not equal the ring
// degree or if any coefficient falls outside [0, T).
func NewPlaintext(params Parameters, coeffs []uint64) (pt *Plaintext, err error) {

	if len(coeffs) != params.N() {
		return nil, fmt.Errorf("invalid plaintext: %d coefficients for ring degree %d", len(coeffs), params.N())
	}

	value := params.RingT().NewPoly()
	for i, c := range coeffs {
		if c >= params.T() {
			return nil, fmt.Errorf("invalid plaintext: coefficient %d=%d outside [0, %d)", i, c, params.T())
		}
		value.Coeffs[i] = c
	}

	return &Plaintext{Value: value}, nil
}

// NewRandomPlaintext creates a new Plaintext with coefficients uniform in
// [0, T), drawn from prng.
func NewRandomPlaintext(params Parameters, prng sampling.PRNG) (pt *Plaintext) {
	return &Plaintext{Value: ring.NewUniformSampler(prng, params.RingT()).ReadNew()}
}

// Equal checks two plaintexts for coefficient-wise equality.
func (pt *Plaintext) Equal(other *Plaintext) bool {
	if pt == other {
		return true
	}
	return pt.Value.Equal(other.Value)
}
