package ring

import (
	"fmt"
	"math/big"
	"math/bits"
)

// MaxModuliSize is the largest bit-length supported for the moduli in the RNS representation.
const MaxModuliSize = 61

// IsPrime applies the Baillie-PSW, which is 100% accurate for numbers bellow 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// NextNTTPrime returns the next NthRoot NTT prime after q.
// The input q must be itself an NTT prime for the given NthRoot.
func NextNTTPrime(q uint64, NthRoot int) (qNext uint64, err error) {

	qNext = q + uint64(NthRoot)

	for !IsPrime(qNext) {

		qNext += uint64(NthRoot)

		if bits.Len64(qNext) > MaxModuliSize {
			return 0, fmt.Errorf("next NTT prime exceeds the maximum bit-size of %d bits", MaxModuliSize)
		}
	}

	return qNext, nil
}

// PreviousNTTPrime returns the previous NthRoot NTT prime before q.
// The input q must be itself an NTT prime for the given NthRoot.
func PreviousNTTPrime(q uint64, NthRoot int) (qPrev uint64, err error) {

	if q < uint64(NthRoot) {
		return 0, fmt.Errorf("previous NTT prime is smaller than NthRoot")
	}

	qPrev = q - uint64(NthRoot)

	for !IsPrime(qPrev) {

		if qPrev < uint64(NthRoot) {
			return 0, fmt.Errorf("previous NTT prime is smaller than NthRoot")
		}

		qPrev -= uint64(NthRoot)
	}

	return qPrev, nil
}

// GenerateNTTPrimes generates n distinct NthRoot NTT-friendly primes of
// bit-size close to logQ, starting from 2^logQ and alternating between
// upward and downward. For logQ = MaxModuliSize only downward primes are
// sought so that the bit-size stays within bounds.
func GenerateNTTPrimes(logQ, NthRoot, n int) (primes []uint64, err error) {

	if logQ < 2 || logQ > MaxModuliSize {
		return nil, fmt.Errorf("cannot GenerateNTTPrimes: logQ=%d must be between 2 and %d", logQ, MaxModuliSize)
	}

	if NthRoot <= 0 || NthRoot&(NthRoot-1) != 0 {
		return nil, fmt.Errorf("cannot GenerateNTTPrimes: NthRoot=%d must be a power of two", NthRoot)
	}

	Qpow2 := uint64(1) << logQ

	// Qpow2 + 1 is congruent to 1 mod NthRoot, hence so are all candidates.
	nextPrime := Qpow2 + 1
	previousPrime := Qpow2 + 1

	checkForNextPrime := logQ != MaxModuliSize
	checkForPreviousPrime := true

	primes = []uint64{}

	for len(primes) < n {

		if !(checkForNextPrime || checkForPreviousPrime) {
			return nil, fmt.Errorf("cannot GenerateNTTPrimes: cannot generate %d primes for logQ=%d and NthRoot=%d", n, logQ, NthRoot)
		}

		if checkForNextPrime {

			if bits.Len64(nextPrime+uint64(NthRoot)) > MaxModuliSize {
				checkForNextPrime = false
			} else {
				nextPrime += uint64(NthRoot)

				if IsPrime(nextPrime) {
					primes = append(primes, nextPrime)
					continue
				}
			}
		}

		if checkForPreviousPrime {

			if previousPrime <= uint64(NthRoot)+1 {
				checkForPreviousPrime = false
			} else {
				previousPrime -= uint64(NthRoot)

				if IsPrime(previousPrime) {
					primes = append(primes, previousPrime)
				}
			}
		}
	}

	return primes, nil
}
