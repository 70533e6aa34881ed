// Package ring implements the residue number system (RNS) modulus chains
// and the uniform sampling of polynomials stored as flat RNS buffers.
package ring

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/hestore/hestore/utils"
	"github.com/hestore/hestore/utils/bignum"
)

// Moduli is an RNS basis: an ordered list of distinct primes q_0, ..., q_{K-1}.
// A polynomial of degree N in this basis is stored as K consecutive
// blocks of N residues, the j-th block holding the coefficients modulo q_j.
type Moduli []uint64

// NewModuli checks the primes of q and returns them as a Moduli.
// The returned Moduli does not share memory with q.
func NewModuli(q []uint64) (Moduli, error) {
	m := Moduli(append([]uint64{}, q...))
	if err := m.Check(); err != nil {
		return nil, fmt.Errorf("cannot NewModuli: %w", err)
	}
	return m, nil
}

// Check returns an error if the basis is empty, if a modulus is not a prime
// of at most MaxModuliSize bits, or if two moduli are equal.
func (m Moduli) Check() error {

	if len(m) == 0 {
		return fmt.Errorf("invalid moduli: empty basis")
	}

	for i, qi := range m {
		if bits.Len64(qi) > MaxModuliSize {
			return fmt.Errorf("invalid moduli: a Qi bit-size (i=%d) is larger than %d", i, MaxModuliSize)
		}

		if !IsPrime(qi) {
			return fmt.Errorf("invalid moduli: a Qi (i=%d) is not a prime", i)
		}
	}

	if !utils.AllDistinct(m) {
		return fmt.Errorf("invalid moduli: the basis contains duplicates")
	}

	return nil
}

// Count returns the number of moduli in the basis.
func (m Moduli) Count() int {
	return len(m)
}

// AtLevel returns the basis truncated to its first level+1 moduli.
// The returned basis shares memory with m.
func (m Moduli) AtLevel(level int) Moduli {
	return m[:level+1]
}

// Mask returns 2^bitlen(q_i - 1) - 1.
func (m Moduli) Mask(i int) uint64 {
	return (1 << uint64(bits.Len64(m[i]-1))) - 1
}

// BigInt returns the product of the moduli.
func (m Moduli) BigInt() *big.Int {
	Q := big.NewInt(1)
	for _, qi := range m {
		Q.Mul(Q, new(big.Int).SetUint64(qi))
	}
	return Q
}

// LogModuli returns log2 of the product of the moduli.
func (m Moduli) LogModuli() float64 {
	if len(m) == 0 {
		return 0
	}
	return bignum.Log2(m.BigInt())
}

// Equal returns true if both basis hold the same moduli in the same order.
func (m Moduli) Equal(other Moduli) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}

// IsReduced returns true if every residue of the flat RNS polynomial pol
// of degree N is smaller than its modulus. pol must hold exactly
// N*m.Count() residues.
func (m Moduli) IsReduced(N int, pol []uint64) bool {
	for j, qj := range m {
		for _, c := range pol[j*N : (j+1)*N] {
			if c >= qj {
				return false
			}
		}
	}
	return true
}
