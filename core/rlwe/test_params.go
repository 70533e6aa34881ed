package rlwe

var (
	logN = 10
	qi   = []uint64{0x200000440001, 0x7fff80001, 0x800280001, 0x7ffd80001, 0x7ffc80001}
	pj   = []uint64{0x3ffffffb80001, 0x4000000800001}

	// testInsecure are insecure parameters used for the sole purpose of fast testing.
	testInsecure = []ParametersLiteral{
		// Key level distinct from the first level
		{
			LogN: logN,
			Q:    qi,
			P:    pj,
		},
		// Single special prime
		{
			LogN: logN,
			Q:    qi[:3],
			P:    pj[:1],
		},
		// No special primes: the key level is the first level
		{
			LogN: 3,
			Q:    qi[:2],
		},
		// Generated moduli
		{
			LogN: 4,
			LogQ: []int{55, 40, 40},
			LogP: []int{61},
		},
	}
)
