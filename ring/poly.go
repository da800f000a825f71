package ring

import (
	"github.com/cathieyun/bfv12/utils"
)

// Poly is the structure that contains the coefficients of a polynomial.
// Coefficients are kept reduced in [0, m) for the modulus m of the Ring
// that produced the polynomial.
type Poly struct {
	Coeffs []uint64
}

// NewPoly creates a new polynomial with N coefficients set to zero.
func NewPoly(N int) (pol *Poly) {
	return &Poly{Coeffs: make([]uint64, N)}
}

// N returns the number of coefficients of the polynomial, which equals the
// degree of the Ring cyclotomic polynomial.
func (pol *Poly) N() int {
	return len(pol.Coeffs)
}

// Zero sets all coefficients of the target polynomial to 0.
func (pol *Poly) Zero() {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = 0
	}
}

// CopyNew creates an exact copy of the target polynomial.
func (pol *Poly) CopyNew() (p1 *Poly) {
	p1 = NewPoly(pol.N())
	copy(p1.Coeffs, pol.Coeffs)
	return
}

// Copy copies the coefficients of p1 on the target polynomial.
// Expects the degree of both polynomials to be identical.
func (pol *Poly) Copy(p1 *Poly) {
	if pol != p1 {
		copy(pol.Coeffs, p1.Coeffs)
	}
}

// Equal returns true if the receiver Poly is equal to the provided other
// Poly, checking for strict equality between the coefficients.
func (pol *Poly) Equal(other *Poly) bool {
	if pol == other {
		return true
	}
	if pol == nil || other == nil {
		return false
	}
	return utils.EqualSlice(pol.Coeffs, other.Coeffs)
}
