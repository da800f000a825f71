package bfv

import (
	"github.com/cathieyun/bfv12/ring"
	"github.com/cathieyun/bfv12/utils/sampling"
)

// Encryptor encrypts plaintexts under a public key.
type Encryptor struct {
	params Parameters
	pk     *PublicKey

	ternarySampler  ring.Sampler
	gaussianSampler ring.Sampler
}

// NewEncryptor creates a new Encryptor for the given public key, drawing all
// its randomness from prng.
func NewEncryptor(params Parameters, pk *PublicKey, prng sampling.PRNG) *Encryptor {

	ringQ := params.RingQ()

	ternarySampler, err := ring.NewTernarySampler(prng, ringQ, params.Xs())
	if err != nil {
		// Sanity check, params.Xs() is always a valid distribution.
		panic(err)
	}

	return &Encryptor{
		params:          params,
		pk:              pk,
		ternarySampler:  ternarySampler,
		gaussianSampler: ring.NewGaussianSampler(prng, ringQ, params.Xe()),
	}
}

// EncryptNew encrypts pt and returns the result in a new degree-1
// Ciphertext:
//
//	c0 = p0*u + e1 + Delta*pt
//	c1 = p1*u + e2
//
// with u ternary and e1, e2 independent gaussian noise. The Delta = floor(Q/T)
// scaling embeds the plaintext in the high-order bits of the ciphertext
// modulus; the low-order margin left below Q/(2T) is the room in which the
// noise of later homomorphic operations accumulates.
func (enc *Encryptor) EncryptNew(pt *Plaintext) (ct *Ciphertext) {

	ringQ := enc.params.RingQ()

	u := enc.ternarySampler.ReadNew()
	e1 := enc.gaussianSampler.ReadNew()
	e2 := enc.gaussianSampler.ReadNew()

	// Delta*pt, with the plaintext first carried into the ciphertext ring.
	ptQ := ringQ.NewPoly()
	copy(ptQ.Coeffs, pt.Value.Coeffs)
	ringQ.MulScalar(ptQ, enc.params.Delta(), ptQ)

	c0 := ringQ.MulPolyNaiveNew(enc.pk.Value[0], u)
	ringQ.Add(c0, e1, c0)
	ringQ.Add(c0, ptQ, c0)

	c1 := ringQ.MulPolyNaiveNew(enc.pk.Value[1], u)
	ringQ.Add(c1, e2, c1)

	return &Ciphertext{Value: []*ring.Poly{c0, c1}}
}
