package bfv

import (
	"github.com/cathieyun/bfv12/ring"
	"github.com/cathieyun/bfv12/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to generate
// the secret, public and relinearization keys.
type KeyGenerator struct {
	params Parameters

	uniformSampler  ring.Sampler
	ternarySampler  ring.Sampler
	gaussianSampler ring.Sampler
}

// NewKeyGenerator creates a new KeyGenerator over the given parameters,
// drawing all its randomness from prng. The PRNG is an exclusive capability
// of the generator: sharing it concurrently with other consumers breaks the
// determinism of seeded generation.
func NewKeyGenerator(params Parameters, prng sampling.PRNG) *KeyGenerator {

	ringQ := params.RingQ()

	ternarySampler, err := ring.NewTernarySampler(prng, ringQ, params.Xs())
	if err != nil {
		// Sanity check, params.Xs() is always a valid distribution.
		panic(err)
	}

	return &KeyGenerator{
		params:          params,
		uniformSampler:  ring.NewUniformSampler(prng, ringQ),
		ternarySampler:  ternarySampler,
		gaussianSampler: ring.NewGaussianSampler(prng, ringQ, params.Xe()),
	}
}

// GenSecretKey generates a new SecretKey with ternary coefficients in
// {-1, 0, 1} with probabilities {1/4, 1/2, 1/4}.
func (keygen *KeyGenerator) GenSecretKey() (sk *SecretKey) {
	return &SecretKey{Value: keygen.ternarySampler.ReadNew()}
}

// GenPublicKey generates a new PublicKey for sk: p1 uniform over the
// ciphertext ring and p0 = -(p1*s + e) with e fresh gaussian noise.
func (keygen *KeyGenerator) GenPublicKey(sk *SecretKey) (pk *PublicKey) {

	ringQ := keygen.params.RingQ()

	p1 := keygen.uniformSampler.ReadNew()
	e := keygen.gaussianSampler.ReadNew()

	p0 := ringQ.MulPolyNaiveNew(p1, sk.Value)
	ringQ.Add(p0, e, p0)
	ringQ.Neg(p0, p0)

	return &PublicKey{Value: [2]*ring.Poly{p0, p1}}
}

// GenKeyPair generates a new SecretKey and an associated PublicKey.
func (keygen *KeyGenerator) GenKeyPair() (sk *SecretKey, pk *PublicKey) {
	sk = keygen.GenSecretKey()
	return sk, keygen.GenPublicKey(sk)
}

// GenRelinearizationKey generates a new RelinearizationKey for sk. For each
// digit i of the base-Base decomposition it produces a fresh pair
// (-(a_i*s + e_i) + Base^i * s^2, a_i), i.e. an encryption of Base^i * s^2
// under s.
func (keygen *KeyGenerator) GenRelinearizationKey(sk *SecretKey) (rlk *RelinearizationKey) {

	params := keygen.params
	ringQ := params.RingQ()
	base := params.Base()

	s2 := ringQ.MulPolyNaiveNew(sk.Value, sk.Value)

	value := make([][2]*ring.Poly, params.DecompositionDigits())

	pow := uint64(1)
	for i := range value {

		a := keygen.uniformSampler.ReadNew()
		e := keygen.gaussianSampler.ReadNew()

		b := ringQ.MulPolyNaiveNew(a, sk.Value)
		ringQ.Add(b, e, b)
		ringQ.Neg(b, b)

		// b += Base^i * s^2
		s2i := ringQ.MulScalarNew(s2, pow)
		ringQ.Add(b, s2i, b)

		value[i] = [2]*ring.Poly{b, a}

		// Base^i stays below Q for every digit of the decomposition, so the
		// product cannot overflow.
		pow *= base
	}

	return &RelinearizationKey{Value: value, Base: base}
}
