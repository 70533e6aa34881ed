package sampling

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for secure generation of random bytes
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG reads from crypto/rand.
type ThreadSafePRNG struct {
}

// NewPRNG returns a new PRNG that is thread-safe
func NewPRNG() (*ThreadSafePRNG, error) {
	return &ThreadSafePRNG{}, nil
}

// Read reads bytes from crypto/rand on sum.
func (prng *ThreadSafePRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}

// KeyedPRNG is a structure storing the parameters used to securely and *deterministically* generate shared
// sequences of random bytes using the extendable output function of blake2b. Backward sequence
// security (given the digest i, compute the digest i-1) is ensured by default, however forward sequence
// security (given the digest i, compute the digest i+1) is only ensured if the KeyedPRNG is keyed.
// WARNING: KeyedPRNG should NOT be called by multiple threads. It does not make sense to do so as the resulting
// sequence will not be deterministic for a given key.
type KeyedPRNG struct {
	mutex sync.Mutex
	xof   blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// Accepts an optional key of at most 64 bytes, else set key=nil which is treated as key=[]byte{}
// WARNING: A PRNG INITIALISED WITH key=nil IS INSECURE!
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := new(KeyedPRNG)
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// Read reads bytes from the KeyedPRNG on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(sum)
}

// Blake3KeySize is the size in bytes of the blake3 hash key.
const Blake3KeySize = 32

// Blake3PRNG is a deterministic PRNG reading from the extendable output of
// a keyed blake3 hash. It offers the same guarantees and restrictions as [KeyedPRNG].
type Blake3PRNG struct {
	mutex sync.Mutex
	xof   *blake3.Digest
}

// NewBlake3PRNG creates a new instance of Blake3PRNG.
// The key must be between [Blake3KeySize] and 64 bytes long: its first
// [Blake3KeySize] bytes key the hash and the remaining ones are absorbed
// before the output is read, so that every byte of the key selects the stream.
func NewBlake3PRNG(key []byte) (*Blake3PRNG, error) {

	if len(key) < Blake3KeySize || len(key) > 64 {
		return nil, fmt.Errorf("cannot NewBlake3PRNG: invalid key size %d, must be between %d and 64", len(key), Blake3KeySize)
	}

	h, err := blake3.NewKeyed(key[:Blake3KeySize])
	if err != nil {
		return nil, fmt.Errorf("cannot NewBlake3PRNG: %w", err)
	}

	if _, err = h.Write(key[Blake3KeySize:]); err != nil {
		return nil, fmt.Errorf("cannot NewBlake3PRNG: %w", err)
	}

	return &Blake3PRNG{xof: h.Digest()}, nil
}

// Read reads bytes from the Blake3PRNG on sum.
func (prng *Blake3PRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(sum)
}
