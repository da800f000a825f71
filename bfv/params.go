package bfv

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/cathieyun/bfv12/ring"
)

// ParametersLiteral is a literal representation of BFV parameters. It has
// public fields and is used to express unchecked user-defined parameters
// literally into Go programs. The NewParametersFromLiteral function is used
// to generate the actual checked parameters from the literal representation.
//
// All five fields are mandatory; their relationship governs both the
// correctness and the multiplicative depth of the scheme, so no defaults are
// substituted.
type ParametersLiteral struct {
	// N is the ring degree, a power of two.
	N int
	// Q is the ciphertext modulus.
	Q uint64
	// T is the plaintext modulus, with 1 < T < Q.
	T uint64
	// Sigma is the standard deviation of the encryption and key noise.
	Sigma float64
	// Base is the decomposition base of the relinearization key. A larger
	// base shortens the key but increases the noise injected per
	// relinearization.
	Base uint64
}

// Parameters represents a parameter set for the BFV cryptosystem. Its fields
// are private and immutable. See ParametersLiteral for user-specified
// parameters.
type Parameters struct {
	literal ParametersLiteral
	digits  int
	ringQ   *ring.Ring
	ringT   *ring.Ring
}

// NewParametersFromLiteral instantiates a set of BFV parameters from a
// ParametersLiteral specification. It returns the empty parameters
// Parameters{} and a non-nil error if the specified parameters are invalid.
func NewParametersFromLiteral(pl ParametersLiteral) (p Parameters, err error) {

	var ringQ, ringT *ring.Ring

	if ringQ, err = ring.NewRing(pl.N, pl.Q); err != nil {
		return Parameters{}, fmt.Errorf("invalid parameters: %w", err)
	}

	if pl.T < 2 {
		return Parameters{}, fmt.Errorf("invalid parameters: T=%d must be at least 2", pl.T)
	}

	if pl.T >= pl.Q {
		return Parameters{}, fmt.Errorf("invalid parameters: T=%d must be smaller than Q=%d", pl.T, pl.Q)
	}

	if ringT, err = ring.NewRing(pl.N, pl.T); err != nil {
		return Parameters{}, fmt.Errorf("invalid parameters: %w", err)
	}

	if pl.Sigma <= 0 {
		return Parameters{}, fmt.Errorf("invalid parameters: Sigma=%f must be positive", pl.Sigma)
	}

	if pl.Base < 2 {
		return Parameters{}, fmt.Errorf("invalid parameters: Base=%d must be at least 2", pl.Base)
	}

	// digits = ceil(log_Base(Q)), the length of the relinearization key.
	digits := 1
	for pow := pl.Base; pow < pl.Q; pow *= pl.Base {
		digits++
	}

	return Parameters{
		literal: pl,
		digits:  digits,
		ringQ:   ringQ,
		ringT:   ringT,
	}, nil
}

// N returns the ring degree.
func (p Parameters) N() int {
	return p.literal.N
}

// Q returns the ciphertext modulus.
func (p Parameters) Q() uint64 {
	return p.literal.Q
}

// T returns the plaintext modulus.
func (p Parameters) T() uint64 {
	return p.literal.T
}

// Sigma returns the standard deviation of the noise distribution.
func (p Parameters) Sigma() float64 {
	return p.literal.Sigma
}

// Base returns the decomposition base of the relinearization key.
func (p Parameters) Base() uint64 {
	return p.literal.Base
}

// Delta returns floor(Q/T), the factor scaling plaintexts into the
// high-order bits of the ciphertext modulus.
func (p Parameters) Delta() uint64 {
	return p.literal.Q / p.literal.T
}

// DecompositionDigits returns ceil(log_Base(Q)), the number of digit pairs
// in a relinearization key.
func (p Parameters) DecompositionDigits() int {
	return p.digits
}

// RingQ returns the polynomial ring Z_Q[x]/(x^N+1) of the ciphertext space.
func (p Parameters) RingQ() *ring.Ring {
	return p.ringQ
}

// RingT returns the polynomial ring Z_T[x]/(x^N+1) of the plaintext space.
func (p Parameters) RingT() *ring.Ring {
	return p.ringT
}

// Xe returns the distribution parameters of the noise.
func (p Parameters) Xe() ring.DiscreteGaussian {
	return ring.DiscreteGaussian{Sigma: p.literal.Sigma, Bound: 6 * p.literal.Sigma}
}

// Xs returns the distribution parameters of the secret.
func (p Parameters) Xs() ring.Ternary {
	return ring.Ternary{P: 0.5}
}

// Equal compares two sets of parameters for equality.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.literal, other.literal)
}

// String returns a compact description of the parameter set, used to name
// subtests.
func (p Parameters) String() string {
	return fmt.Sprintf("N=%d/Q=%d/T=%d/Base=%d", p.literal.N, p.literal.Q, p.literal.T, p.literal.Base)
}

// MarshalJSON encodes the receiver as its ParametersLiteral.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.literal)
}

// UnmarshalJSON decodes a ParametersLiteral and validates it into the
// receiver.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var pl ParametersLiteral
	if err = json.Unmarshal(data, &pl); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(pl)
	return
}
