package bfv

import (
	"github.com/cathieyun/bfv12/ring"
)

// Ciphertext is a slice of polynomials over the ciphertext ring. Fresh and
// relinearized ciphertexts have degree 1 (two polynomials); the degree-2
// triple produced by a raw multiplication never escapes the evaluator.
//
// A ciphertext carries no noise accounting: decrypting after the accumulated
// noise exceeds Q/(2T) silently yields a wrong plaintext. Bounding the
// multiplicative depth through the parameter choice is the caller's
// contract.
type Ciphertext struct {
	Value []*ring.Poly
}

// NewCiphertext allocates a Ciphertext of the given degree with zero values.
func NewCiphertext(params Parameters, degree int) (ct *Ciphertext) {
	value := make([]*ring.Poly, degree+1)
	for i := range value {
		value[i] = params.RingQ().NewPoly()
	}
	return &Ciphertext{Value: value}
}

// Degree returns the degree of the ciphertext, i.e. the number of
// polynomials minus one.
func (ct *Ciphertext) Degree() int {
	return len(ct.Value) - 1
}

// CopyNew creates a deep copy of the ciphertext.
func (ct *Ciphertext) CopyNew() (ctCopy *Ciphertext) {
	value := make([]*ring.Poly, len(ct.Value))
	for i := range value {
		value[i] = ct.Value[i].CopyNew()
	}
	return &Ciphertext{Value: value}
}

// Equal checks two ciphertexts for coefficient-wise equality.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	if ct == other {
		return true
	}
	if len(ct.Value) != len(other.Value) {
		return false
	}
	for i := range ct.Value {
		if !ct.Value[i].Equal(other.Value[i]) {
			return false
		}
	}
	return true
}
