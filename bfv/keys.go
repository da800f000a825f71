package bfv

import (
	"github.com/cathieyun/bfv12/ring"
)

// SecretKey is a ternary polynomial s over the ciphertext ring. It is
// immutable once generated; the caller is responsible for never pairing it
// with public material derived from a different secret.
type SecretKey struct {
	Value *ring.Poly
}

// PublicKey is an encryption of zero under the secret key:
// Value[1] is uniform and Value[0] = -(Value[1]*s + e). It is safe to share.
type PublicKey struct {
	Value [2]*ring.Poly
}

// RelinearizationKey holds one polynomial pair per digit of the base-Base
// decomposition of s^2. The pair at index i is an encryption of
// Base^i * s^2 under s, and is consumed by the evaluator to collapse
// degree-2 ciphertexts back to degree 1 after a multiplication.
type RelinearizationKey struct {
	Value [][2]*ring.Poly
	Base  uint64
}

// NewSecretKey allocates a SecretKey with zero value.
func NewSecretKey(params Parameters) *SecretKey {
	return &SecretKey{Value: params.RingQ().NewPoly()}
}

// NewPublicKey allocates a PublicKey with zero values.
func NewPublicKey(params Parameters) *PublicKey {
	ringQ := params.RingQ()
	return &PublicKey{Value: [2]*ring.Poly{ringQ.NewPoly(), ringQ.NewPoly()}}
}

// NewRelinearizationKey allocates a RelinearizationKey with zero values for
// the decomposition base of the given parameters.
func NewRelinearizationKey(params Parameters) *RelinearizationKey {
	ringQ := params.RingQ()
	value := make([][2]*ring.Poly, params.DecompositionDigits())
	for i := range value {
		value[i] = [2]*ring.Poly{ringQ.NewPoly(), ringQ.NewPoly()}
	}
	return &RelinearizationKey{Value: value, Base: params.Base()}
}

// Equal checks two PublicKey structs for equality.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == other {
		return true
	}
	return pk.Value[0].Equal(other.Value[0]) && pk.Value[1].Equal(other.Value[1])
}
