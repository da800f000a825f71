package ring

import (
	"encoding/binary"
	"fmt"

	"github.com/cathieyun/bfv12/utils/sampling"
)

const (
	discreteGaussianName = "DiscreteGaussian"
	ternaryDistName      = "Ternary"
	uniformDistName      = "Uniform"
)

// Sampler is an interface for random polynomial samplers. It has a single
// Read method which takes as argument the polynomial to be populated
// according to the Sampler's distribution.
type Sampler interface {
	Read(pol *Poly)
	ReadNew() (pol *Poly)
}

// DistributionParameters is an interface for distribution parameters in the
// ring. There are three implementations of this interface:
//   - DiscreteGaussian for sampling polynomials with discretized gaussian
//     coefficients of given standard deviation and bound.
//   - Ternary for sampling polynomials with coefficients in [-1, 1].
//   - Uniform for sampling polynomials with uniformly random coefficients in
//     the ring.
type DistributionParameters interface {
	// Type returns a string representation of the distribution name.
	Type() string
	mustBeDist()
}

// DiscreteGaussian represents the parameters of a discrete Gaussian
// distribution with standard deviation Sigma and bounds [-Bound, Bound].
type DiscreteGaussian struct {
	Sigma float64
	Bound float64
}

// Ternary represents the parameters of a distribution with coefficients in
// [-1, 0, 1], where each coefficient is sampled in [-1, 0, 1] with
// probabilities [0.5*P, 1-P, 0.5*P].
type Ternary struct {
	P float64
}

// Uniform represents the parameters of a uniform distribution, i.e., with
// coefficients uniformly distributed in the given ring.
type Uniform struct{}

func (d DiscreteGaussian) Type() string { return discreteGaussianName }
func (d DiscreteGaussian) mustBeDist()  {}

func (d Ternary) Type() string { return ternaryDistName }
func (d Ternary) mustBeDist()  {}

func (d Uniform) Type() string { return uniformDistName }
func (d Uniform) mustBeDist()  {}

// NewSampler instantiates a new Sampler for the given distribution over the
// given ring, drawing its randomness from prng.
func NewSampler(prng sampling.PRNG, baseRing *Ring, X DistributionParameters) (Sampler, error) {
	switch X := X.(type) {
	case DiscreteGaussian:
		return NewGaussianSampler(prng, baseRing, X), nil
	case Ternary:
		return NewTernarySampler(prng, baseRing, X)
	case Uniform:
		return NewUniformSampler(prng, baseRing), nil
	default:
		return nil, fmt.Errorf("invalid distribution: want ring.DiscreteGaussian, ring.Ternary or ring.Uniform but have %T", X)
	}
}

type baseSampler struct {
	prng     sampling.PRNG
	baseRing *Ring

	randomBufferN []byte
	ptr           int
}

func newBaseSampler(prng sampling.PRNG, baseRing *Ring) baseSampler {
	b := baseSampler{
		prng:          prng,
		baseRing:      baseRing,
		randomBufferN: make([]byte, 1024),
	}
	b.ptr = len(b.randomBufferN)
	return b
}

// randUint64 returns the next 8 bytes of the PRNG stream as a uint64,
// refilling the internal buffer when it runs empty.
func (b *baseSampler) randUint64() uint64 {
	if b.ptr == len(b.randomBufferN) {
		if _, err := b.prng.Read(b.randomBufferN); err != nil {
			// Sanity check, this error should not happen.
			panic(err)
		}
		b.ptr = 0
	}
	v := binary.LittleEndian.Uint64(b.randomBufferN[b.ptr:])
	b.ptr += 8
	return v
}

// randFloat64 returns a uniform float64 in [0, 1) with 53 bits of precision.
func (b *baseSampler) randFloat64() float64 {
	return float64(b.randUint64()>>11) * (1.0 / 9007199254740992.0)
}
