package rlwe

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hestore/hestore/ring"
	"github.com/hestore/hestore/utils/buffer"
	"github.com/hestore/hestore/utils/sampling"
)

// SeedMarker is the value stored in the first residue of the second
// polynomial of a ciphertext of size 2 whose second polynomial is
// represented by a PRNG seed instead of its residues. It can never be a
// reduced residue since all moduli are smaller than 2^61.
const SeedMarker uint64 = 0xFFFFFFFFFFFFFFFF

// PRNGType identifies the PRNG a [GeneratorInfo] instantiates.
type PRNGType uint8

const (
	// PRNGUnknown is the zero value and cannot instantiate a PRNG.
	PRNGUnknown = PRNGType(iota)
	// PRNGBlake2b selects [sampling.KeyedPRNG], keyed with the 64 bytes of the seed.
	PRNGBlake2b
	// PRNGBlake3 selects [sampling.Blake3PRNG], keyed with the first 32 bytes of the seed
	// and absorbing the last 32.
	PRNGBlake3
)

func (t PRNGType) isSupported() bool {
	return t == PRNGBlake2b || t == PRNGBlake3
}

func (t PRNGType) String() string {
	switch t {
	case PRNGBlake2b:
		return "Blake2b"
	case PRNGBlake3:
		return "Blake3"
	default:
		return fmt.Sprintf("PRNGType(%d)", uint8(t))
	}
}

// SeedUint64Count is the number of uint64 words of a seed.
const SeedUint64Count = 8

// GeneratorInfo is everything needed to deterministically regenerate a
// pseudorandom polynomial: the PRNG type and its seed.
type GeneratorInfo struct {
	Type PRNGType
	Seed [SeedUint64Count]uint64
}

// NewGeneratorInfo returns a [GeneratorInfo] of the given type with a seed
// read from crypto/rand.
func NewGeneratorInfo(t PRNGType) (info GeneratorInfo, err error) {

	if !t.isSupported() {
		return GeneratorInfo{}, fmt.Errorf("cannot NewGeneratorInfo: %w: unsupported %s", ErrInvalidArgument, t)
	}

	info.Type = t

	b := sampling.RandBytes(SeedUint64Count << 3)
	for i := range info.Seed {
		info.Seed[i] = binary.LittleEndian.Uint64(b[i<<3:])
	}

	return
}

func (g GeneratorInfo) key() []byte {
	key := make([]byte, SeedUint64Count<<3)
	for i, s := range g.Seed {
		binary.LittleEndian.PutUint64(key[i<<3:], s)
	}
	return key
}

// NewPRNG instantiates a fresh PRNG from the target.
// Two PRNGs instantiated from equal infos produce the same stream.
func (g GeneratorInfo) NewPRNG() (sampling.PRNG, error) {
	switch g.Type {
	case PRNGBlake2b:
		return sampling.NewKeyedPRNG(g.key())
	case PRNGBlake3:
		return sampling.NewBlake3PRNG(g.key())
	default:
		return nil, fmt.Errorf("cannot NewPRNG: %w: unsupported %s", ErrInvalidArgument, g.Type)
	}
}

// Generate returns a new uniform polynomial of N*len(moduli) residues,
// sampled from a fresh PRNG instantiated from the target.
func (g GeneratorInfo) Generate(N int, moduli []uint64) ([]uint64, error) {
	prng, err := g.NewPRNG()
	if err != nil {
		return nil, fmt.Errorf("cannot Generate: %w", err)
	}
	return ring.NewUniformSampler(prng, N, moduli).ReadNew(), nil
}

// Equal returns true if both infos are identical.
func (g GeneratorInfo) Equal(other *GeneratorInfo) bool {
	return g == *other
}

// BinarySize returns the size in bytes that the object once marshalled into a binary form.
func (g GeneratorInfo) BinarySize() int {
	return 1 + SeedUint64Count<<3
}

// WriteTo writes the object on an [io.Writer]. It implements the [io.WriterTo]
// interface, and will write exactly object.BinarySize() bytes on w.
//
// Unless w implements the [buffer.Writer] interface,
// it will be wrapped into a [bufio.Writer].
func (g GeneratorInfo) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = buffer.WriteUint8(w, uint8(g.Type)); err != nil {
			return n + inc, err
		}

		n += inc

		inc, err = buffer.WriteUint64Slice(w, g.Seed[:])

		return n + inc, err

	default:
		bw := bufio.NewWriter(w)

		if n, err = g.WriteTo(bw); err != nil {
			return
		}

		return n, bw.Flush()
	}
}

// ReadFrom reads on the object from an [io.Reader]. It implements the
// [io.ReaderFrom] interface. An unsupported PRNG type is rejected with
// [ErrInvalidArgument] and leaves the object unchanged.
//
// Unless r implements the [buffer.Reader] interface, it will be wrapped into a [bufio.Reader].
func (g *GeneratorInfo) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int
		var t uint8

		if inc, err = buffer.ReadUint8(r, &t); err != nil {
			return n + int64(inc), err
		}

		n += int64(inc)

		if !PRNGType(t).isSupported() {
			return n, fmt.Errorf("cannot ReadFrom: %w: unsupported %s", ErrInvalidArgument, PRNGType(t))
		}

		var seed [SeedUint64Count]uint64
		if inc, err = buffer.ReadUint64Slice(r, seed[:]); err != nil {
			return n + int64(inc), err
		}

		n += int64(inc)

		g.Type = PRNGType(t)
		g.Seed = seed

		return n, nil

	default:
		return g.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (g GeneratorInfo) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(g.BinarySize())
	_, err = g.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// [GeneratorInfo.MarshalBinary] or [GeneratorInfo.WriteTo] on the object.
func (g *GeneratorInfo) UnmarshalBinary(p []byte) (err error) {
	if len(p) != g.BinarySize() {
		return fmt.Errorf("cannot UnmarshalBinary: %w: expected %d bytes but got %d", ErrInvalidArgument, g.BinarySize(), len(p))
	}
	_, err = g.ReadFrom(buffer.NewBuffer(p))
	return
}

// HasSeedMarker returns true if the ciphertext has size 2 and the first
// residue of its second polynomial is [SeedMarker], meaning that the second
// polynomial still has to be regenerated with [Ciphertext.ExpandSeed].
func (ct *Ciphertext) HasSeedMarker() bool {
	if ct.data.Size() == 0 || ct.size != 2 {
		return false
	}
	return ct.data.data[ct.stride()] == SeedMarker
}

// SetSeedMarker writes [SeedMarker] in the first residue of the second
// polynomial, discarding it. It is used by serializers that replace the
// second polynomial by the seed it was sampled from. It returns an error
// wrapping ErrLogic if the size of the ciphertext is not 2.
func (ct *Ciphertext) SetSeedMarker() error {
	if ct.data.Size() == 0 || ct.size != 2 {
		return fmt.Errorf("cannot SetSeedMarker: %w: ciphertext size is %d but must be 2", ErrLogic, ct.size)
	}
	ct.data.data[ct.stride()] = SeedMarker
	return nil
}

// ExpandSeed regenerates the second polynomial of a seeded ciphertext from
// info, overwriting its residues in place, which also removes the marker.
// The polynomial is sampled uniformly over the RNS basis that ctx gives for
// the ciphertext's ParmsID, modulus after modulus.
//
// ExpandSeed does nothing if the ciphertext has no seed marker, so it can
// be called on ciphertexts that may already be expanded. It returns an error
// wrapping ErrInvalidArgument if the basis cannot be retrieved or does not
// match the shape of the ciphertext, or if info is invalid; the ciphertext
// is left unmodified on error.
func (ct *Ciphertext) ExpandSeed(ctx ModuliProvider, info GeneratorInfo) (err error) {

	if !ct.HasSeedMarker() {
		return nil
	}

	moduli, err := ctx.CoeffModulus(ct.parmsID)
	if err != nil {
		return wrapInvalidArgument("ExpandSeed", err)
	}

	if len(moduli) != ct.coeffModulusSize {
		return fmt.Errorf("cannot ExpandSeed: %w: context gives %d moduli but ciphertext has %d", ErrInvalidArgument, len(moduli), ct.coeffModulusSize)
	}

	prng, err := info.NewPRNG()
	if err != nil {
		return fmt.Errorf("cannot ExpandSeed: %w", err)
	}

	pol, err := ct.Poly(1)
	if err != nil {
		return fmt.Errorf("cannot ExpandSeed: %w", err)
	}

	ring.NewUniformSampler(prng, ct.polyModulusDegree, moduli).Read(pol)

	return nil
}
