// Package ring implements arithmetic in the negacyclic polynomial rings
// Z_m[x]/(x^N + 1) used by the bfv package, as well as polynomial samplers
// for the uniform, ternary and discrete gaussian distributions.
package ring

import (
	"fmt"
	"math/bits"
)

// MaxModulus is the largest supported coefficient modulus. The bound keeps
// every intermediate product of the schoolbook convolution within 64 bits.
const MaxModulus = uint64(1) << 31

// Ring is a structure that keeps all the variables required to operate on a
// polynomial in Z_m[x]/(x^N + 1).
type Ring struct {
	// N is the ring degree, i.e. the number of coefficients of a polynomial.
	N int

	// Modulus is the coefficient modulus m.
	Modulus uint64

	// Mask is the smallest 2^k - 1 ≥ Modulus - 1, used for rejection sampling.
	Mask uint64
}

// NewRing creates a new Ring of degree N over Z_m, with N a power of two and
// 2 ≤ m ≤ MaxModulus. It returns an error if the parameters are invalid.
func NewRing(N int, modulus uint64) (r *Ring, err error) {

	if N < 1 || N&(N-1) != 0 {
		return nil, fmt.Errorf("invalid ring degree: N=%d must be a power of two", N)
	}

	if modulus < 2 {
		return nil, fmt.Errorf("invalid modulus: m=%d must be at least 2", modulus)
	}

	if modulus > MaxModulus {
		return nil, fmt.Errorf("invalid modulus: m=%d exceeds the maximum supported modulus 2^31", modulus)
	}

	return &Ring{
		N:       N,
		Modulus: modulus,
		Mask:    (1 << uint64(bits.Len64(modulus-1))) - 1,
	}, nil
}

// NewPoly creates a new polynomial of degree N with all coefficients set to zero.
func (r *Ring) NewPoly() *Poly {
	return NewPoly(r.N)
}

// CRed returns a mod q, for a in the range [0, 2q-1].
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}

// checkOperands asserts that every operand has exactly N coefficients.
// A mismatch is a programming error, not a recoverable condition.
func (r *Ring) checkOperands(op string, operands ...*Poly) {
	for _, pol := range operands {
		if pol.N() != r.N {
			panic(fmt.Errorf("cannot %s: polynomial degree %d does not match ring degree %d", op, pol.N(), r.N))
		}
	}
}

// Add sets pOut = p0 + p1 coefficient-wise mod m.
func (r *Ring) Add(p0, p1, pOut *Poly) {
	r.checkOperands("Add", p0, p1, pOut)
	m := r.Modulus
	for i := 0; i < r.N; i++ {
		pOut.Coeffs[i] = CRed(p0.Coeffs[i]+p1.Coeffs[i], m)
	}
}

// AddNew returns p0 + p1 coefficient-wise mod m in a new polynomial.
func (r *Ring) AddNew(p0, p1 *Poly) (pOut *Poly) {
	pOut = r.NewPoly()
	r.Add(p0, p1, pOut)
	return
}

// Sub sets pOut = p0 - p1 coefficient-wise mod m.
func (r *Ring) Sub(p0, p1, pOut *Poly) {
	r.checkOperands("Sub", p0, p1, pOut)
	m := r.Modulus
	for i := 0; i < r.N; i++ {
		pOut.Coeffs[i] = CRed(p0.Coeffs[i]+m-p1.Coeffs[i], m)
	}
}

// SubNew returns p0 - p1 coefficient-wise mod m in a new polynomial.
func (r *Ring) SubNew(p0, p1 *Poly) (pOut *Poly) {
	pOut = r.NewPoly()
	r.Sub(p0, p1, pOut)
	return
}

// Neg sets pOut = -p0 coefficient-wise mod m.
func (r *Ring) Neg(p0, pOut *Poly) {
	r.checkOperands("Neg", p0, pOut)
	m := r.Modulus
	for i := 0; i < r.N; i++ {
		pOut.Coeffs[i] = (m - p0.Coeffs[i]) % m
	}
}

// NegNew returns -p0 coefficient-wise mod m in a new polynomial.
func (r *Ring) NegNew(p0 *Poly) (pOut *Poly) {
	pOut = r.NewPoly()
	r.Neg(p0, pOut)
	return
}

// MulScalar sets pOut = p0 * scalar coefficient-wise mod m.
func (r *Ring) MulScalar(p0 *Poly, scalar uint64, pOut *Poly) {
	r.checkOperands("MulScalar", p0, pOut)
	m := r.Modulus
	scalar %= m
	for i := 0; i < r.N; i++ {
		pOut.Coeffs[i] = (p0.Coeffs[i] * scalar) % m
	}
}

// MulScalarNew returns p0 * scalar coefficient-wise mod m in a new polynomial.
func (r *Ring) MulScalarNew(p0 *Poly, scalar uint64) (pOut *Poly) {
	pOut = r.NewPoly()
	r.MulScalar(p0, scalar, pOut)
	return
}

// MulPolyNaive sets pOut = p0 * p1 with a naive negacyclic convolution,
// reducing modulo (x^N + 1, m). The result is bit-for-bit the schoolbook
// convolution with x^N ≡ -1.
func (r *Ring) MulPolyNaive(p0, p1, pOut *Poly) {
	r.checkOperands("MulPolyNaive", p0, p1, pOut)

	N := r.N
	m := r.Modulus

	acc := make([]uint64, N)
	for i, c0 := range p0.Coeffs {
		for j, c1 := range p1.Coeffs {
			prod := (c0 * c1) % m
			if k := i + j; k < N {
				acc[k] = CRed(acc[k]+prod, m)
			} else {
				// x^(i+j) = -x^(i+j-N)
				acc[k-N] = CRed(acc[k-N]+m-prod, m)
			}
		}
	}

	copy(pOut.Coeffs, acc)
}

// MulPolyNaiveNew returns p0 * p1 mod (x^N + 1, m) in a new polynomial.
func (r *Ring) MulPolyNaiveNew(p0, p1 *Poly) (pOut *Poly) {
	pOut = r.NewPoly()
	r.MulPolyNaive(p0, p1, pOut)
	return
}

// Reduce sets pOut = p0 with all coefficients reduced mod m.
func (r *Ring) Reduce(p0, pOut *Poly) {
	r.checkOperands("Reduce", p0, pOut)
	m := r.Modulus
	for i := 0; i < r.N; i++ {
		pOut.Coeffs[i] = p0.Coeffs[i] % m
	}
}

// ModSwitch rescales each coefficient of p0 by mTo/m with round half away
// from zero, writing the result on pOut reduced in [0, mTo). It is used both
// to scale plaintexts into the ciphertext modulus and to round during
// decryption, so the tie-break rule here decides the round-trip property of
// the scheme.
func (r *Ring) ModSwitch(p0 *Poly, rTo *Ring, pOut *Poly) {
	r.checkOperands("ModSwitch", p0)
	rTo.checkOperands("ModSwitch", pOut)

	mFrom, mTo := r.Modulus, rTo.Modulus
	for i := 0; i < r.N; i++ {
		// Coefficients are non-negative representatives, so rounding half up
		// equals rounding half away from zero.
		pOut.Coeffs[i] = ((p0.Coeffs[i]*mTo + mFrom/2) / mFrom) % mTo
	}
}

// ModSwitchNew rescales each coefficient of p0 by mTo/m with round half away
// from zero, returning the result in a new polynomial over rTo.
func (r *Ring) ModSwitchNew(p0 *Poly, rTo *Ring) (pOut *Poly) {
	pOut = rTo.NewPoly()
	r.ModSwitch(p0, rTo, pOut)
	return
}

// Decompose splits p0 into digits polynomials d_k whose coefficients are the
// base-B digits of the coefficients of p0, each in [0, base), such that
// p0 = Σ base^k · d_k. It panics if base^digits cannot represent every
// element of [0, m), since the recomposition would then be lossy.
func (r *Ring) Decompose(p0 *Poly, base uint64, digits int) (pOut []*Poly) {
	r.checkOperands("Decompose", p0)

	if base < 2 {
		panic(fmt.Errorf("cannot Decompose: base=%d must be at least 2", base))
	}

	// An overflowing base^digits trivially covers [0, m).
	if pow, ok := powUint64(base, digits); ok && pow < r.Modulus {
		panic(fmt.Errorf("cannot Decompose: base=%d with digits=%d cannot represent Z_%d", base, digits, r.Modulus))
	}

	pOut = make([]*Poly, digits)
	rem := make([]uint64, r.N)
	copy(rem, p0.Coeffs)

	for k := 0; k < digits; k++ {
		pOut[k] = r.NewPoly()
		for i := 0; i < r.N; i++ {
			pOut[k].Coeffs[i] = rem[i] % base
			rem[i] /= base
		}
	}

	return
}

// Recompose returns Σ base^k · digits[k] mod m in a new polynomial, the
// inverse of Decompose.
func (r *Ring) Recompose(digits []*Poly, base uint64) (pOut *Poly) {
	pOut = r.NewPoly()
	pow := uint64(1) % r.Modulus
	buff := r.NewPoly()
	for _, d := range digits {
		r.MulScalar(d, pow, buff)
		r.Add(pOut, buff, pOut)
		pow = (pow * (base % r.Modulus)) % r.Modulus
	}
	return
}

// CenteredLift returns the coefficients of p0 lifted from [0, m) to the
// centered representatives in [-m/2, m/2).
func (r *Ring) CenteredLift(p0 *Poly) (coeffs []int64) {
	r.checkOperands("CenteredLift", p0)
	coeffs = make([]int64, r.N)
	half := (r.Modulus + 1) >> 1
	for i, c := range p0.Coeffs {
		if c >= half {
			coeffs[i] = int64(c) - int64(r.Modulus)
		} else {
			coeffs[i] = int64(c)
		}
	}
	return
}

// SetFromCentered reduces signed coefficients into [0, m) and writes them on
// pOut.
func (r *Ring) SetFromCentered(coeffs []int64, pOut *Poly) {
	r.checkOperands("SetFromCentered", pOut)
	if len(coeffs) != r.N {
		panic(fmt.Errorf("cannot SetFromCentered: coefficient count %d does not match ring degree %d", len(coeffs), r.N))
	}
	m := int64(r.Modulus)
	for i, c := range coeffs {
		c %= m
		if c < 0 {
			c += m
		}
		pOut.Coeffs[i] = uint64(c)
	}
}

// powUint64 returns base^exp, reporting overflow.
func powUint64(base uint64, exp int) (pow uint64, ok bool) {
	pow = 1
	for i := 0; i < exp; i++ {
		hi, lo := bits.Mul64(pow, base)
		if hi != 0 {
			return 0, false
		}
		pow = lo
	}
	return pow, true
}
