// Package sampling provides the randomness capability consumed by the ring
// samplers. Randomness always enters the library as an explicitly injected
// PRNG; nothing reads ambient global randomness.
package sampling

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for the generation of random bytes.
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG is a PRNG backed by crypto/rand. It is safe for concurrent
// use and is the PRNG to use whenever reproducibility is not needed.
type ThreadSafePRNG struct {
}

// NewPRNG returns a new ThreadSafePRNG.
func NewPRNG() (*ThreadSafePRNG, error) {
	return &ThreadSafePRNG{}, nil
}

// Read fills sum with random bytes from crypto/rand.
func (prng *ThreadSafePRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}

// KeyedPRNG is a deterministic PRNG that expands a key into an unbounded
// byte sequence with the blake2b XOF. Two KeyedPRNG instantiated with the
// same key produce the same sequence, which is what makes seeded test
// vectors possible.
//
// WARNING: a KeyedPRNG instantiated with key=nil is insecure.
// WARNING: reads from multiple goroutines are serialized by an internal
// mutex, but their interleaving, and therefore the sequence observed by each
// reader, is not deterministic.
type KeyedPRNG struct {
	mutex sync.Mutex
	key   []byte
	xof   blake2b.XOF
}

// NewKeyedPRNG creates a new KeyedPRNG from the given key.
// A nil key is treated as key=[]byte{}.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := new(KeyedPRNG)
	prng.key = key
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// Key returns a copy of the key used to seed the PRNG. The returned value
// can be passed to NewKeyedPRNG to replay the same byte sequence.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read fills sum with bytes from the XOF stream.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(sum)
}

// Reset rewinds the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	prng.xof.Reset()
}

// HashPRNG is a deterministic PRNG that expands a seed with the blake3 XOF.
// It is interchangeable with KeyedPRNG and exists for callers that want the
// randomness expansion pinned to a different hash family.
type HashPRNG struct {
	mutex  sync.Mutex
	digest *blake3.Digest
}

// NewHashPRNG creates a new HashPRNG from the given seed.
func NewHashPRNG(seed []byte) *HashPRNG {
	h := blake3.New()
	if _, err := h.Write(seed); err != nil {
		// Sanity check, blake3.Hasher.Write never fails.
		panic(err)
	}
	return &HashPRNG{digest: h.Digest()}
}

// Read fills sum with bytes from the XOF stream.
func (prng *HashPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.digest.Read(sum)
}
