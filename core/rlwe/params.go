package rlwe

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/hestore/hestore/ring"
	"github.com/hestore/hestore/utils"
)

// MaxLogN is the log2 of the largest supported polynomial modulus degree.
const MaxLogN = 17

// MinLogN is the log2 of the smallest supported polynomial modulus degree.
const MinLogN = 1

// ParametersLiteral is a literal representation of the encryption parameters
// that determine the shape of ciphertexts. It has public fields and is used
// to express unchecked user-defined parameters literally into Go programs.
// The [NewParametersFromLiteral] function is used to generate the actual
// checked parameters from the literal representation.
//
// Users must set the polynomial degree (LogN) and the coefficient modulus,
// by either setting the Q and P fields to the desired moduli chain, or by
// setting the LogQ and LogP fields to the desired moduli sizes. P holds the
// special primes that only appear at the key level.
type ParametersLiteral struct {
	LogN int
	Q    []uint64 `json:",omitempty"`
	P    []uint64 `json:",omitempty"`
	LogQ []int    `json:",omitempty"`
	LogP []int    `json:",omitempty"`
}

// Parameters represents a checked set of parameters. Its fields are private
// and immutable. See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	logN int
	qi   ring.Moduli
	pi   ring.Moduli
}

// NewParameters returns a new set of parameters from the given ring degree
// logn and moduli q and p. It returns the empty parameters [Parameters]{}
// and a non-nil error if the specified parameters are invalid.
func NewParameters(logn int, q, p []uint64) (params Parameters, err error) {

	if err = checkSizeParams(logn); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: %w", err)
	}

	if params.qi, err = ring.NewModuli(q); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: Q: %w", err)
	}

	if len(p) != 0 {
		if params.pi, err = ring.NewModuli(p); err != nil {
			return Parameters{}, fmt.Errorf("cannot NewParameters: P: %w", err)
		}

		if !utils.AllDistinct(append(append([]uint64{}, q...), p...)) {
			return Parameters{}, fmt.Errorf("cannot NewParameters: Q and P share a modulus")
		}
	}

	params.logN = logn

	return
}

// NewParametersFromLiteral instantiates a set of parameters from a
// [ParametersLiteral] specification. It returns the empty parameters
// Parameters{} and a non-nil error if the specified parameters are invalid.
//
// If the moduli chain is specified through the LogQ and LogP fields, the
// method generates a moduli chain matching the specified sizes (see [GenModuli]).
func NewParametersFromLiteral(paramDef ParametersLiteral) (params Parameters, err error) {

	// Invalid moduli configurations: do not allow empty Q and LogQ as well double-set log and non-log fields.
	if paramDef.Q == nil && paramDef.LogQ == nil {
		return Parameters{}, fmt.Errorf("rlwe.NewParametersFromLiteral: both Q and LogQ fields are empty")
	}
	if paramDef.Q != nil && paramDef.LogQ != nil {
		return Parameters{}, fmt.Errorf("rlwe.NewParametersFromLiteral: both Q and LogQ fields are set")
	}
	if paramDef.P != nil && paramDef.LogP != nil {
		return Parameters{}, fmt.Errorf("rlwe.NewParametersFromLiteral: both P and LogP fields are set")
	}

	q, p := paramDef.Q, paramDef.P

	if paramDef.LogQ != nil || paramDef.LogP != nil {

		var genQ, genP []uint64
		if genQ, genP, err = GenModuli(paramDef.LogN, paramDef.LogQ, paramDef.LogP); err != nil {
			return Parameters{}, fmt.Errorf("rlwe.NewParametersFromLiteral: %w", err)
		}

		if paramDef.LogQ != nil {
			q = genQ
		}

		if paramDef.LogP != nil {
			p = genP
		}
	}

	return NewParameters(paramDef.LogN, q, p)
}

// GenModuli generates a valid moduli chain from the provided moduli sizes.
// All generated primes are congruent to 1 modulo 2N so the chain stays
// usable by an NTT-based evaluation layer.
func GenModuli(logN int, logQ, logP []int) (q, p []uint64, err error) {

	if err = checkSizeParams(logN); err != nil {
		return
	}

	// Extracts all the different primes bit size and maps their number
	primesbitlen := make(map[int]int)
	for _, qi := range logQ {
		primesbitlen[qi]++
	}

	for _, pj := range logP {
		primesbitlen[pj]++
	}

	// For each bit-size, finds that many primes
	primes := make(map[int][]uint64)
	for _, bitsize := range utils.GetSortedKeys(primesbitlen) {
		if primes[bitsize], err = ring.GenerateNTTPrimes(bitsize, 2<<logN, primesbitlen[bitsize]); err != nil {
			return nil, nil, fmt.Errorf("cannot GenModuli: %w", err)
		}
	}

	// Assigns the primes to the moduli chain
	for _, qi := range logQ {
		q = append(q, primes[qi][0])
		primes[qi] = primes[qi][1:]
	}

	// Assigns the primes to the special primes list for the key level
	for _, pj := range logP {
		p = append(p, primes[pj][0])
		primes[pj] = primes[pj][1:]
	}

	return
}

func checkSizeParams(logN int) error {
	if logN > MaxLogN {
		return fmt.Errorf("logN=%d is larger than MaxLogN=%d", logN, MaxLogN)
	}
	if logN < MinLogN {
		return fmt.Errorf("logN=%d is smaller than MinLogN=%d", logN, MinLogN)
	}
	return nil
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	var P []uint64
	if len(p.pi) != 0 {
		P = p.P()
	}
	return ParametersLiteral{
		LogN: p.logN,
		Q:    p.Q(),
		P:    P,
	}
}

// N returns the ring degree.
func (p Parameters) N() int {
	return 1 << p.logN
}

// LogN returns the log of the degree of the polynomial ring.
func (p Parameters) LogN() int {
	return p.logN
}

// Q returns a new slice with the factors of the ciphertext modulus q.
func (p Parameters) Q() []uint64 {
	return append([]uint64{}, p.qi...)
}

// QCount returns the number of factors of the ciphertext modulus Q.
func (p Parameters) QCount() int {
	return len(p.qi)
}

// QBigInt return the ciphertext-space modulus Q in big.Integer form.
func (p Parameters) QBigInt() *big.Int {
	return p.qi.BigInt()
}

// P returns a new slice with the factors of the key-level special modulus P.
func (p Parameters) P() []uint64 {
	return append([]uint64{}, p.pi...)
}

// PCount returns the number of factors of the special modulus P.
func (p Parameters) PCount() int {
	return len(p.pi)
}

// MaxLevel returns the maximum level of a ciphertext.
func (p Parameters) MaxLevel() int {
	return p.QCount() - 1
}

// LogQ returns the size of the modulus Q in bits.
func (p Parameters) LogQ() float64 {
	return p.qi.LogModuli()
}

// LogP returns the size of the modulus P in bits.
func (p Parameters) LogP() float64 {
	return p.pi.LogModuli()
}

// Equal checks two Parameter structs for equality.
func (p Parameters) Equal(other *Parameters) bool {
	return p.logN == other.logN && p.qi.Equal(other.qi) && p.pi.Equal(other.pi)
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
