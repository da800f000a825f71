package sampling_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cathieyun/bfv12/utils/sampling"
)

var testKey = []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
	0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98}

func TestKeyedPRNG(t *testing.T) {

	Ha, err := sampling.NewKeyedPRNG(testKey)
	require.NoError(t, err)
	Hb, err := sampling.NewKeyedPRNG(testKey)
	require.NoError(t, err)

	sum0 := make([]byte, 512)
	sum1 := make([]byte, 512)

	for i := 0; i < 128; i++ {
		_, err = Hb.Read(sum1)
		require.NoError(t, err)
	}

	Hb.Reset()

	_, err = Ha.Read(sum0)
	require.NoError(t, err)
	_, err = Hb.Read(sum1)
	require.NoError(t, err)

	require.Equal(t, sum0, sum1)
	require.Equal(t, testKey, Ha.Key())
}

func TestHashPRNG(t *testing.T) {

	Ha := sampling.NewHashPRNG(testKey)
	Hb := sampling.NewHashPRNG(testKey)

	sum0 := make([]byte, 512)
	sum1 := make([]byte, 512)

	_, err := Ha.Read(sum0)
	require.NoError(t, err)
	_, err = Hb.Read(sum1)
	require.NoError(t, err)

	require.Equal(t, sum0, sum1)

	// A different seed must give a different stream.
	Hc := sampling.NewHashPRNG([]byte{0x00})
	sum2 := make([]byte, 512)
	_, err = Hc.Read(sum2)
	require.NoError(t, err)
	require.NotEqual(t, sum0, sum2)
}
