package ring

import (
	"encoding/binary"
	"fmt"

	"github.com/hestore/hestore/utils/sampling"
)

// UniformSampler wraps a sampling.PRNG and samples polynomials with
// coefficients uniformly distributed in [0, q_j-1] for each modulus q_j of
// an RNS basis. Sampled polynomials are flat: N residues modulo q_0, then
// N residues modulo q_1, and so on.
//
// The sampler buffers PRNG output; it cannot be used concurrently.
type UniformSampler struct {
	prng   sampling.PRNG
	moduli Moduli
	N      int

	randomBufferN []byte
	ptr           int
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG, a ring degree and an RNS basis.
func NewUniformSampler(prng sampling.PRNG, N int, moduli Moduli) (u *UniformSampler) {
	return &UniformSampler{
		prng:          prng,
		moduli:        moduli,
		N:             N,
		randomBufferN: make([]byte, 1024),
	}
}

// Read samples a uniform polynomial on pol.
// pol must hold at least N*len(moduli) residues; extra residues are left untouched.
func (u *UniformSampler) Read(pol []uint64) {
	u.read("Read", pol, func(a, b, c uint64) uint64 {
		return b
	})
}

// ReadAndAdd samples a uniform polynomial and adds it on pol modulo each q_j.
// pol must hold at least N*len(moduli) residues; extra residues are left untouched.
func (u *UniformSampler) ReadAndAdd(pol []uint64) {
	u.read("ReadAndAdd", pol, func(a, b, c uint64) uint64 {
		if a += b; a >= c {
			a -= c
		}
		return a
	})
}

// ReadNew generates a new uniform polynomial.
func (u *UniformSampler) ReadNew() (pol []uint64) {
	pol = make([]uint64, u.N*len(u.moduli))
	u.Read(pol)
	return
}

func (u *UniformSampler) read(op string, pol []uint64, f func(a, b, c uint64) uint64) {

	if len(pol) < u.N*len(u.moduli) {
		// Sanity check, callers size pol from the same shape.
		panic(fmt.Errorf("cannot %s: len(pol)=%d < N*K=%d", op, len(pol), u.N*len(u.moduli)))
	}

	var randomUint, mask, qi uint64

	N := u.N
	buffer := u.randomBufferN
	byteArrayLength := len(buffer)

	var ptr int
	if ptr = u.ptr; ptr == 0 || ptr == byteArrayLength {
		if _, err := u.prng.Read(buffer); err != nil {
			// Sanity check, this error should not happen.
			panic(err)
		}
		ptr = 0
	}

	for j := range u.moduli {

		qi = u.moduli[j]
		mask = u.moduli.Mask(j)

		coeffs := pol[j*N : (j+1)*N]

		for i := 0; i < N; i++ {

			// Samples an integer between [0, qi-1]
			for {

				// Refills the buffer if it runs empty
				if ptr == byteArrayLength {
					if _, err := u.prng.Read(buffer); err != nil {
						// Sanity check, this error should not happen.
						panic(err)
					}
					ptr = 0
				}

				randomUint = binary.BigEndian.Uint64(buffer[ptr:ptr+8]) & mask
				ptr += 8

				if randomUint < qi {
					break
				}
			}

			coeffs[i] = f(coeffs[i], randomUint, qi)
		}
	}

	u.ptr = ptr
}
