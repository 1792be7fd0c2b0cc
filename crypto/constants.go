package crypto

// SpiralSize is the length of every spiral vector: private keys, shared
// secrets, and the digit tables below all hold exactly 60 entries.
const SpiralSize = 60

// DefaultHashIterations is the iteration count used when stretching a digest
// for key generation (8 iterations, 64 hex characters).
const DefaultHashIterations = 8

// Phi is the golden ratio, used to mix prime-indexed positions during the
// shared-secret combine.
const Phi = 1.618033988749895

// The digit tables drive the keyed hash. Each holds the first 60 decimal
// digits of a fixed mathematical constant, so both ends of a conversation
// agree on them without ever exchanging key material.
var (
	// spiralR: digits of pi.
	spiralR = [SpiralSize]uint32{
		1, 4, 1, 5, 9, 2, 6, 5, 3, 5,
		8, 9, 7, 9, 3, 2, 3, 8, 4, 6,
		2, 6, 4, 3, 3, 8, 3, 2, 7, 9,
		5, 0, 2, 8, 8, 4, 1, 9, 7, 1,
		6, 9, 3, 9, 9, 3, 7, 5, 1, 0,
		5, 8, 2, 0, 9, 7, 4, 9, 4, 4,
	}

	// spiralK: digits of e.
	spiralK = [SpiralSize]uint32{
		7, 1, 8, 2, 8, 1, 8, 2, 8, 4,
		5, 9, 0, 4, 5, 2, 3, 5, 3, 6,
		0, 2, 8, 7, 4, 7, 1, 3, 5, 2,
		6, 6, 2, 4, 9, 7, 7, 5, 7, 2,
		4, 7, 0, 9, 3, 6, 9, 9, 9, 5,
		9, 5, 7, 4, 9, 6, 6, 9, 6, 7,
	}

	// spiralB: digits of the golden ratio.
	spiralB = [SpiralSize]uint32{
		6, 1, 8, 0, 3, 3, 9, 8, 8, 7,
		4, 9, 8, 9, 4, 8, 4, 8, 2, 0,
		4, 5, 8, 6, 8, 3, 4, 3, 6, 5,
		6, 3, 8, 1, 1, 7, 7, 2, 0, 3,
		0, 9, 1, 7, 9, 8, 0, 5, 7, 6,
		2, 8, 6, 2, 1, 3, 5, 4, 4, 8,
	}
)

// lucasNumbers feeds the temporal keystream evolution. The table cycles, so
// only the first 24 Lucas numbers are carried.
var lucasNumbers = [...]uint64{
	2, 1, 3, 4, 7, 11, 18, 29,
	47, 76, 123, 199, 322, 521, 843, 1364,
	2207, 3571, 5778, 9349, 15127, 24476, 39603, 64079,
}

// primeIndices marks the spiral positions that receive the golden-ratio mix
// during the shared-secret combine. The set is fixed by the exchange format;
// both parties must use identical indices.
var primeIndices = map[int]bool{
	2: true, 3: true, 5: true, 7: true, 11: true, 13: true,
	17: true, 19: true, 23: true, 29: true, 31: true, 37: true,
	41: true, 43: true, 47: true, 53: true, 59: true,
}
