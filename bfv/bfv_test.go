package bfv

import (
	"encoding/json"
	"flag"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cathieyun/bfv12/utils/sampling"
)

var flagPrintNoise = flag.Bool("print-noise", false, "print the residual noise")
var flagParamString = flag.String("params", "", "specify the test cryptographic parameters as a JSON string. Overrides the default test parameters.")

// testParamsLiteral is the canonical toy parameter set: a single
// multiplication plus an addition decrypt correctly, a second multiplication
// does not.
var testParamsLiteral = ParametersLiteral{
	N:     4,
	Q:     65536,
	T:     12,
	Sigma: 3.2,
	Base:  16,
}

var testPRNGKey = []byte{0x18, 0x5e, 0x33, 0xc9, 0x6b, 0x9f, 0x21, 0x4f, 0x09, 0xc1, 0x90, 0x23, 0x7a, 0x5d, 0x7f, 0x0e}

type testContext struct {
	params Parameters
	prng   *sampling.KeyedPRNG

	kgen *KeyGenerator
	sk   *SecretKey
	pk   *PublicKey
	rlk  *RelinearizationKey

	encryptor *Encryptor
	decryptor *Decryptor
	evaluator *Evaluator
}

func newTestContext(t *testing.T, pl ParametersLiteral) (tc *testContext) {

	params, err := NewParametersFromLiteral(pl)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNG(testPRNGKey)
	require.NoError(t, err)

	tc = &testContext{params: params, prng: prng}
	tc.kgen = NewKeyGenerator(params, prng)
	tc.sk, tc.pk = tc.kgen.GenKeyPair()
	tc.rlk = tc.kgen.GenRelinearizationKey(tc.sk)
	tc.encryptor = NewEncryptor(params, tc.pk, prng)
	tc.decryptor = NewDecryptor(params, tc.sk)
	tc.evaluator = NewEvaluator(params)
	return
}

func name(op string, tc *testContext) string {
	return fmt.Sprintf("%s/%s", op, tc.params)
}

func (tc *testContext) logNoise(t *testing.T, ct *Ciphertext, pt *Plaintext) {
	if *flagPrintNoise {
		t.Logf("%s", Norm(tc.params, ct, tc.sk, pt))
	}
}

func TestBFV(t *testing.T) {

	pl := testParamsLiteral
	if *flagParamString != "" {
		require.NoError(t, json.Unmarshal([]byte(*flagParamString), &pl))
	}

	tc := newTestContext(t, pl)

	for _, testSet := range []func(tc *testContext, t *testing.T){
		testEncryptDecrypt,
		testEvaluatorAdd,
		testEvaluatorSubNeg,
		testEvaluatorMul,
		testDepthLimit,
	} {
		testSet(tc, t)
	}
}

func testEncryptDecrypt(tc *testContext, t *testing.T) {

	t.Run(name("Encrypt/Decrypt", tc), func(t *testing.T) {

		for i := 0; i < 4; i++ {
			pt := NewRandomPlaintext(tc.params, tc.prng)
			ct := tc.encryptor.EncryptNew(pt)
			require.Equal(t, 1, ct.Degree())
			tc.logNoise(t, ct, pt)
			require.True(t, tc.decryptor.DecryptNew(ct).Equal(pt))
		}
	})

	t.Run("Encrypt/Decrypt/Grid", func(t *testing.T) {

		// The historical round-trip grid: every plaintext modulus and ring
		// degree combination must survive a fresh encryption.
		for _, tCase := range []struct {
			msg []uint64
			t   uint64
		}{
			{[]uint64{0, 1}, 2},
			{[]uint64{0, 1, 1, 0}, 2},
			{[]uint64{0, 1, 1, 0, 0, 0, 1, 0}, 2},
			{[]uint64{0, 3}, 4},
			{[]uint64{0, 1, 2, 3}, 4},
			{[]uint64{0, 1, 2, 3, 3, 2, 1, 0}, 4},
			{[]uint64{0, 1, 2, 3}, 8},
			{[]uint64{0, 1, 2, 3, 4, 5, 6, 7}, 8},
			{[]uint64{0, 3}, 16},
			{[]uint64{0, 1, 2, 3}, 16},
			{[]uint64{0, 1}, 32},
		} {
			tcGrid := newTestContext(t, ParametersLiteral{
				N:     len(tCase.msg),
				Q:     65536,
				T:     tCase.t,
				Sigma: 3.2,
				Base:  16,
			})

			pt, err := NewPlaintext(tcGrid.params, tCase.msg)
			require.NoError(t, err)

			ct := tcGrid.encryptor.EncryptNew(pt)
			require.True(t, tcGrid.decryptor.DecryptNew(ct).Equal(pt), "round-trip failed for t=%d n=%d", tCase.t, len(tCase.msg))
		}
	})
}

func testEvaluatorAdd(tc *testContext, t *testing.T) {

	t.Run(name("Evaluator/Add", tc), func(t *testing.T) {

		ringT := tc.params.RingT()

		pt1 := NewRandomPlaintext(tc.params, tc.prng)
		pt2 := NewRandomPlaintext(tc.params, tc.prng)

		ct := tc.evaluator.AddNew(tc.encryptor.EncryptNew(pt1), tc.encryptor.EncryptNew(pt2))

		want := ringT.AddNew(pt1.Value, pt2.Value)
		require.Equal(t, want.Coeffs, tc.decryptor.DecryptNew(ct).Value.Coeffs)
	})
}

func testEvaluatorSubNeg(tc *testContext, t *testing.T) {

	t.Run(name("Evaluator/Sub", tc), func(t *testing.T) {

		ringT := tc.params.RingT()

		pt1 := NewRandomPlaintext(tc.params, tc.prng)
		pt2 := NewRandomPlaintext(tc.params, tc.prng)

		ct := tc.evaluator.SubNew(tc.encryptor.EncryptNew(pt1), tc.encryptor.EncryptNew(pt2))

		want := ringT.SubNew(pt1.Value, pt2.Value)
		require.Equal(t, want.Coeffs, tc.decryptor.DecryptNew(ct).Value.Coeffs)
	})

	t.Run(name("Evaluator/Neg", tc), func(t *testing.T) {

		ringT := tc.params.RingT()

		pt := NewRandomPlaintext(tc.params, tc.prng)
		ct := tc.evaluator.NegNew(tc.encryptor.EncryptNew(pt))

		want := ringT.NegNew(pt.Value)
		require.Equal(t, want.Coeffs, tc.decryptor.DecryptNew(ct).Value.Coeffs)
	})
}

func testEvaluatorMul(tc *testContext, t *testing.T) {

	t.Run(name("Evaluator/MulRelin", tc), func(t *testing.T) {

		ringT := tc.params.RingT()

		pt1 := NewRandomPlaintext(tc.params, tc.prng)
		pt2 := NewRandomPlaintext(tc.params, tc.prng)

		ct := tc.evaluator.MulNew(tc.encryptor.EncryptNew(pt1), tc.encryptor.EncryptNew(pt2), tc.rlk)
		require.Equal(t, 1, ct.Degree())

		want := ringT.MulPolyNaiveNew(pt1.Value, pt2.Value)
		wantPt := &Plaintext{Value: want}
		tc.logNoise(t, ct, wantPt)
		require.Equal(t, want.Coeffs, tc.decryptor.DecryptNew(ct).Value.Coeffs)
	})

	t.Run(name("Evaluator/MulRelinThenAdd", tc), func(t *testing.T) {

		// The canonical end-to-end scenario: pt1*pt2 + pt3 under encryption
		// against the same computation on the plaintext ring.
		ringT := tc.params.RingT()

		pt1 := NewRandomPlaintext(tc.params, tc.prng)
		pt2 := NewRandomPlaintext(tc.params, tc.prng)
		pt3 := NewRandomPlaintext(tc.params, tc.prng)

		ct1 := tc.encryptor.EncryptNew(pt1)
		ct2 := tc.encryptor.EncryptNew(pt2)
		ct3 := tc.encryptor.EncryptNew(pt3)

		res := tc.evaluator.AddNew(tc.evaluator.MulNew(ct1, ct2, tc.rlk), ct3)

		want := ringT.AddNew(ringT.MulPolyNaiveNew(pt1.Value, pt2.Value), pt3.Value)
		wantPt := &Plaintext{Value: want}
		tc.logNoise(t, res, wantPt)
		require.Equal(t, want.Coeffs, tc.decryptor.DecryptNew(res).Value.Coeffs)
	})

	t.Run(name("Evaluator/MulRelin/MandatoryKey", tc), func(t *testing.T) {
		pt := NewRandomPlaintext(tc.params, tc.prng)
		ct := tc.encryptor.EncryptNew(pt)
		require.Panics(t, func() { tc.evaluator.MulNew(ct, ct, nil) })
	})
}

// testDepthLimit documents the absence of noise tracking: multiplying past
// the depth the parameters support returns a value that is silently wrong.
// The scheme offers no structural detection of this, so the test only
// records where the divergence from plaintext arithmetic sets in, it does
// not assert equality beyond depth 1.
func testDepthLimit(tc *testContext, t *testing.T) {

	t.Run(name("DepthLimit", tc), func(t *testing.T) {

		ringT := tc.params.RingT()

		pt := NewRandomPlaintext(tc.params, tc.prng)
		ct := tc.encryptor.EncryptNew(pt)
		want := pt.Value.CopyNew()

		// Depth 1 is within the budget of the canonical parameters.
		ct = tc.evaluator.MulNew(ct, ct, tc.rlk)
		want = ringT.MulPolyNaiveNew(want, want)
		require.Equal(t, want.Coeffs, tc.decryptor.DecryptNew(ct).Value.Coeffs)

		// Beyond that the noise exceeds Q/(2T): expected to diverge, and
		// expected not to fail structurally.
		for depth := 2; depth <= 4; depth++ {
			ct = tc.evaluator.MulNew(ct, ct, tc.rlk)
			want = ringT.MulPolyNaiveNew(want, want)
			if !tc.decryptor.DecryptNew(ct).Value.Equal(want) {
				t.Logf("diverged from plaintext arithmetic at depth %d, as the parameters predict", depth)
				return
			}
		}
	})
}

func TestParameters(t *testing.T) {

	t.Run("Valid", func(t *testing.T) {
		params, err := NewParametersFromLiteral(testParamsLiteral)
		require.NoError(t, err)
		require.Equal(t, 4, params.N())
		require.Equal(t, uint64(5461), params.Delta())
		// 16^4 = 65536, so four digits cover Z_Q.
		require.Equal(t, 4, params.DecompositionDigits())
		require.Equal(t, uint64(65536), params.RingQ().Modulus)
		require.Equal(t, uint64(12), params.RingT().Modulus)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, pl := range []ParametersLiteral{
			{N: 3, Q: 65536, T: 12, Sigma: 3.2, Base: 16},     // N not a power of two
			{N: 4, Q: 65536, T: 1, Sigma: 3.2, Base: 16},      // T too small
			{N: 4, Q: 64, T: 64, Sigma: 3.2, Base: 16},        // T not smaller than Q
			{N: 4, Q: 65536, T: 12, Sigma: 0, Base: 16},       // no noise
			{N: 4, Q: 65536, T: 12, Sigma: 3.2, Base: 1},      // base too small
			{N: 4, Q: 1 << 40, T: 12, Sigma: 3.2, Base: 16},   // Q above MaxModulus
		} {
			_, err := NewParametersFromLiteral(pl)
			require.Error(t, err, "literal %+v should not validate", pl)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		params, err := NewParametersFromLiteral(testParamsLiteral)
		require.NoError(t, err)

		data, err := json.Marshal(params)
		require.NoError(t, err)

		var decoded Parameters
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.True(t, params.Equal(&decoded))
		require.Equal(t, params.DecompositionDigits(), decoded.DecompositionDigits())
	})
}

func TestPlaintext(t *testing.T) {

	params, err := NewParametersFromLiteral(testParamsLiteral)
	require.NoError(t, err)

	t.Run("New", func(t *testing.T) {
		pt, err := NewPlaintext(params, []uint64{0, 1, 2, 11})
		require.NoError(t, err)
		require.Equal(t, []uint64{0, 1, 2, 11}, pt.Value.Coeffs)

		_, err = NewPlaintext(params, []uint64{0, 1, 2})
		require.Error(t, err)

		_, err = NewPlaintext(params, []uint64{0, 1, 2, 12})
		require.Error(t, err)
	})

	t.Run("Random", func(t *testing.T) {
		prng, err := sampling.NewKeyedPRNG(testPRNGKey)
		require.NoError(t, err)
		pt := NewRandomPlaintext(params, prng)
		require.Equal(t, params.N(), pt.Value.N())
		for _, c := range pt.Value.Coeffs {
			require.Less(t, c, params.T())
		}
	})
}

func TestKeys(t *testing.T) {

	params, err := NewParametersFromLiteral(testParamsLiteral)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNG(testPRNGKey)
	require.NoError(t, err)

	kgen := NewKeyGenerator(params, prng)
	sk, pk := kgen.GenKeyPair()
	rlk := kgen.GenRelinearizationKey(sk)

	t.Run("SecretKey", func(t *testing.T) {
		for _, c := range sk.Value.Coeffs {
			require.Contains(t, []uint64{0, 1, params.Q() - 1}, c)
		}
	})

	t.Run("PublicKey", func(t *testing.T) {
		// p0 + p1*s must be a small (gaussian) residue: the public key is an
		// encryption of zero.
		ringQ := params.RingQ()
		res := ringQ.AddNew(pk.Value[0], ringQ.MulPolyNaiveNew(pk.Value[1], sk.Value))
		for _, c := range ringQ.CenteredLift(res) {
			if c < 0 {
				c = -c
			}
			require.LessOrEqual(t, float64(c), 6*params.Sigma()+0.5)
		}
	})

	t.Run("RelinearizationKey", func(t *testing.T) {
		require.Equal(t, params.DecompositionDigits(), len(rlk.Value))
		require.Equal(t, params.Base(), rlk.Base)

		// Each pair decrypts to Base^i * s^2 plus a small residue.
		ringQ := params.RingQ()
		s2 := ringQ.MulPolyNaiveNew(sk.Value, sk.Value)
		pow := uint64(1)
		for i := range rlk.Value {
			phase := ringQ.AddNew(rlk.Value[i][0], ringQ.MulPolyNaiveNew(rlk.Value[i][1], sk.Value))
			ringQ.Sub(phase, ringQ.MulScalarNew(s2, pow), phase)
			for _, c := range ringQ.CenteredLift(phase) {
				if c < 0 {
					c = -c
				}
				require.LessOrEqual(t, float64(c), 6*params.Sigma()+0.5)
			}
			pow *= params.Base()
		}
	})

	t.Run("DecryptorMismatch", func(t *testing.T) {
		other, err := NewParametersFromLiteral(ParametersLiteral{N: 8, Q: 65536, T: 12, Sigma: 3.2, Base: 16})
		require.NoError(t, err)
		require.Panics(t, func() { NewDecryptor(other, sk) })
	})
}

func TestNoiseNorm(t *testing.T) {

	tc := newTestContext(t, testParamsLiteral)

	pt := NewRandomPlaintext(tc.params, tc.prng)
	ct := tc.encryptor.EncryptNew(pt)

	ns := Norm(tc.params, ct, tc.sk, pt)
	require.Greater(t, ns.BudgetBits, 0.0, "a fresh ciphertext must have budget left")
	require.LessOrEqual(t, ns.Max, float64(tc.params.Q()/(2*tc.params.T())), "a fresh ciphertext must decrypt correctly")

	// An undecryptable ciphertext reports an exhausted budget.
	garbage := NewCiphertext(tc.params, 1)
	garbage.Value[0].Coeffs[0] = tc.params.Q() / 2
	zero, err := NewPlaintext(tc.params, make([]uint64, tc.params.N()))
	require.NoError(t, err)
	require.Less(t, Norm(tc.params, garbage, tc.sk, zero).BudgetBits, 0.0)
}

func TestCiphertext(t *testing.T) {

	tc := newTestContext(t, testParamsLiteral)

	pt := NewRandomPlaintext(tc.params, tc.prng)
	ct := tc.encryptor.EncryptNew(pt)

	cpy := ct.CopyNew()
	require.True(t, ct.Equal(cpy))

	// Operations are pure: the operands survive unchanged.
	before := ct.CopyNew()
	tc.evaluator.AddNew(ct, ct)
	tc.evaluator.MulNew(ct, ct, tc.rlk)
	require.True(t, ct.Equal(before))
}
