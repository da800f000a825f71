package bfv

import (
	"fmt"
)

// Decryptor decrypts ciphertexts with a secret key.
type Decryptor struct {
	params Parameters
	sk     *SecretKey
}

// NewDecryptor creates a new Decryptor for the given secret key.
func NewDecryptor(params Parameters, sk *SecretKey) *Decryptor {

	if sk.Value.N() != params.N() {
		panic(fmt.Errorf("cannot NewDecryptor: secret key ring degree %d does not match parameters ring degree %d", sk.Value.N(), params.N()))
	}

	return &Decryptor{params: params, sk: sk}
}

// DecryptNew decrypts ct and returns the result in a new Plaintext: the
// phase m = Σ c_i * s^i is accumulated mod Q with a Horner loop, then
// rescaled by T/Q with round half away from zero and reduced mod T.
//
// The result is correct only while the accumulated noise of the ciphertext
// stayed below Q/(2T); past that bound the output is silently wrong.
// Ciphertexts of any degree decrypt, which lets diagnostics inspect the
// degree-2 triples internal to multiplication.
func (d *Decryptor) DecryptNew(ct *Ciphertext) (pt *Plaintext) {

	ringQ := d.params.RingQ()

	phase := ct.Value[ct.Degree()].CopyNew()
	for i := ct.Degree(); i > 0; i-- {
		ringQ.MulPolyNaive(phase, d.sk.Value, phase)
		ringQ.Add(phase, ct.Value[i-1], phase)
	}

	return &Plaintext{Value: ringQ.ModSwitchNew(phase, d.params.RingT())}
}
