package bfv

import (
	"fmt"
	"math/big"

	"github.com/cathieyun/bfv12/ring"
	"github.com/cathieyun/bfv12/utils"
)

// Evaluator operates homomorphically on ciphertexts. All its operations are
// pure: operands are never mutated and every result is a fresh ciphertext.
type Evaluator struct {
	params Parameters
}

// NewEvaluator creates a new Evaluator over the given parameters.
func NewEvaluator(params Parameters) *Evaluator {
	return &Evaluator{params: params}
}

func (eval *Evaluator) checkDegreeOne(op string, cts ...*Ciphertext) {
	for _, ct := range cts {
		if ct.Degree() != 1 {
			panic(fmt.Errorf("cannot %s: operand degree %d, want 1", op, ct.Degree()))
		}
	}
}

// AddNew returns ct0 + ct1, component-wise mod Q. Operands of different
// degrees are supported; the extra components of the larger operand carry
// over. The noise of the result is the sum of the operand noises.
func (eval *Evaluator) AddNew(ct0, ct1 *Ciphertext) (ct *Ciphertext) {

	ringQ := eval.params.RingQ()

	minDeg := utils.Min(ct0.Degree(), ct1.Degree())
	maxDeg := utils.Max(ct0.Degree(), ct1.Degree())

	value := make([]*ring.Poly, maxDeg+1)
	for i := 0; i <= minDeg; i++ {
		value[i] = ringQ.AddNew(ct0.Value[i], ct1.Value[i])
	}

	larger := ct0
	if ct1.Degree() > ct0.Degree() {
		larger = ct1
	}
	for i := minDeg + 1; i <= maxDeg; i++ {
		value[i] = larger.Value[i].CopyNew()
	}

	return &Ciphertext{Value: value}
}

// SubNew returns ct0 - ct1, component-wise mod Q. Operands of different
// degrees are supported.
func (eval *Evaluator) SubNew(ct0, ct1 *Ciphertext) (ct *Ciphertext) {

	ringQ := eval.params.RingQ()

	minDeg := utils.Min(ct0.Degree(), ct1.Degree())
	maxDeg := utils.Max(ct0.Degree(), ct1.Degree())

	value := make([]*ring.Poly, maxDeg+1)
	for i := 0; i <= minDeg; i++ {
		value[i] = ringQ.SubNew(ct0.Value[i], ct1.Value[i])
	}

	for i := minDeg + 1; i <= maxDeg; i++ {
		if ct0.Degree() > ct1.Degree() {
			value[i] = ct0.Value[i].CopyNew()
		} else {
			value[i] = ringQ.NegNew(ct1.Value[i])
		}
	}

	return &Ciphertext{Value: value}
}

// NegNew returns -ct0.
func (eval *Evaluator) NegNew(ct0 *Ciphertext) (ct *Ciphertext) {
	ringQ := eval.params.RingQ()
	value := make([]*ring.Poly, len(ct0.Value))
	for i := range value {
		value[i] = ringQ.NegNew(ct0.Value[i])
	}
	return &Ciphertext{Value: value}
}

// MulNew returns ct0 * ct1 relinearized back to degree 1 with rlk. The
// relinearization key is a mandatory operand: the degree-2 triple produced
// by the tensor product exists only inside this call. Noise grows
// multiplicatively here, which is what bounds the usable depth.
func (eval *Evaluator) MulNew(ct0, ct1 *Ciphertext, rlk *RelinearizationKey) (ct *Ciphertext) {

	eval.checkDegreeOne("MulNew", ct0, ct1)

	if rlk == nil {
		panic(fmt.Errorf("cannot MulNew: relinearization key is a mandatory operand"))
	}

	d0, d1, d2 := eval.tensorNew(ct0, ct1)

	return eval.relinearizeNew(d0, d1, d2, rlk)
}

// tensorNew computes the degree-2 product (d0, d1, d2) of two degree-1
// ciphertexts. The convolutions are taken over the centered integer lifts
// without intermediate reduction mod Q, since each component must be rescaled
// by T/Q before re-entering the ring: rounding a reduced value would destroy
// the plaintext.
func (eval *Evaluator) tensorNew(ct0, ct1 *Ciphertext) (d0, d1, d2 *ring.Poly) {

	ringQ := eval.params.RingQ()

	c0a := liftBig(ringQ, ct0.Value[0])
	c1a := liftBig(ringQ, ct0.Value[1])
	c0b := liftBig(ringQ, ct1.Value[0])
	c1b := liftBig(ringQ, ct1.Value[1])

	d0 = eval.rescaleNew(convolveBig(c0a, c0b))

	d1raw := convolveBig(c0a, c1b)
	for i, c := range convolveBig(c1a, c0b) {
		d1raw[i].Add(d1raw[i], c)
	}
	d1 = eval.rescaleNew(d1raw)

	d2 = eval.rescaleNew(convolveBig(c1a, c1b))

	return
}

// rescaleNew scales integer coefficients by T/Q with round half away from
// zero and reduces them into [0, Q).
func (eval *Evaluator) rescaleNew(coeffs []*big.Int) (pOut *ring.Poly) {

	pOut = eval.params.RingQ().NewPoly()

	bigQ := new(big.Int).SetUint64(eval.params.Q())
	bigT := new(big.Int).SetUint64(eval.params.T())

	for i, c := range coeffs {
		c.Mul(c, bigT)
		ring.DivRound(c, bigQ, c)
		c.Mod(c, bigQ)
		pOut.Coeffs[i] = c.Uint64()
	}

	return
}

// relinearizeNew collapses the degree-2 ciphertext (d0, d1, d2) back to
// degree 1: d2 is decomposed in the key's base and each digit is folded into
// (d0, d1) through the matching key pair. d0 and d1 are consumed.
func (eval *Evaluator) relinearizeNew(d0, d1, d2 *ring.Poly, rlk *RelinearizationKey) (ct *Ciphertext) {

	ringQ := eval.params.RingQ()

	digits := ringQ.Decompose(d2, rlk.Base, len(rlk.Value))

	buff := ringQ.NewPoly()
	for i, digit := range digits {
		ringQ.MulPolyNaive(rlk.Value[i][0], digit, buff)
		ringQ.Add(d0, buff, d0)
		ringQ.MulPolyNaive(rlk.Value[i][1], digit, buff)
		ringQ.Add(d1, buff, d1)
	}

	return &Ciphertext{Value: []*ring.Poly{d0, d1}}
}

// liftBig returns the centered integer lift of p as big integers.
func liftBig(r *ring.Ring, p *ring.Poly) (coeffs []*big.Int) {
	lifted := r.CenteredLift(p)
	coeffs = make([]*big.Int, len(lifted))
	for i, c := range lifted {
		coeffs[i] = big.NewInt(c)
	}
	return
}

// convolveBig returns the negacyclic convolution of a and b over the
// integers, with x^N ≡ -1.
func convolveBig(a, b []*big.Int) (conv []*big.Int) {

	N := len(a)

	conv = make([]*big.Int, N)
	for i := range conv {
		conv[i] = new(big.Int)
	}

	buff := new(big.Int)
	for i := range a {
		for j := range b {
			buff.Mul(a[i], b[j])
			if k := i + j; k < N {
				conv[k].Add(conv[k], buff)
			} else {
				conv[k-N].Sub(conv[k-N], buff)
			}
		}
	}

	return
}
