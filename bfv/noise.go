package bfv

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/cathieyun/bfv12/utils/bignum"
)

// NoiseStats reports statistics on the noise carried by a ciphertext. It is
// a diagnostic: nothing in the scheme consults it, and the core operations
// keep no noise accounting of their own.
type NoiseStats struct {
	// Mean, StdDev and Max describe the absolute value of the centered noise
	// coefficients.
	Mean   float64
	StdDev float64
	Max    float64

	// BudgetBits is log2(Q/(2T)) - log2(max|noise|), the margin left before
	// decryption becomes unreliable. Negative means the ciphertext is
	// already past the bound.
	BudgetBits float64
}

// Norm measures the noise of ct relative to the expected plaintext pt under
// sk: it accumulates the phase Σ c_i * s^i mod Q, subtracts Delta*pt and
// lifts the residue to its centered representatives.
func Norm(params Parameters, ct *Ciphertext, sk *SecretKey, pt *Plaintext) (ns NoiseStats) {

	ringQ := params.RingQ()

	phase := ct.Value[ct.Degree()].CopyNew()
	for i := ct.Degree(); i > 0; i-- {
		ringQ.MulPolyNaive(phase, sk.Value, phase)
		ringQ.Add(phase, ct.Value[i-1], phase)
	}

	ptQ := ringQ.NewPoly()
	copy(ptQ.Coeffs, pt.Value.Coeffs)
	ringQ.MulScalar(ptQ, params.Delta(), ptQ)
	ringQ.Sub(phase, ptQ, phase)

	residue := ringQ.CenteredLift(phase)
	abs := make([]float64, len(residue))
	for i, c := range residue {
		if c < 0 {
			c = -c
		}
		abs[i] = float64(c)
	}

	// The underlying data cannot make these fail.
	ns.Mean, _ = stats.Mean(abs)
	ns.StdDev, _ = stats.StandardDeviation(abs)
	ns.Max, _ = stats.Max(abs)

	// Remaining budget in bits, at a precision independent of the magnitude
	// of Q.
	const prec = 128
	bound := bignum.NewFloat(params.Q(), prec)
	bound.Quo(bound, bignum.NewFloat(2*params.T(), prec))
	budget := bignum.Log2(bound)

	if ns.Max > 0 {
		budget.Sub(budget, bignum.Log2(bignum.NewFloat(ns.Max, prec)))
	}

	ns.BudgetBits, _ = budget.Float64()

	return
}

// String formats the noise statistics for the -print-noise test flag.
func (ns NoiseStats) String() string {
	return fmt.Sprintf("noise: mean=%.2f std=%.2f max=%.0f budget=%.1f bits", ns.Mean, ns.StdDev, ns.Max, ns.BudgetBits)
}
