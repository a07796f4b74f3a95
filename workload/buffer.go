package workload

import (
	"math/rand/v2"
)

// DefaultBufferSize is large enough that a buffer does not fit in L3.
const DefaultBufferSize = 100 * 1000 * 1000

// Buffer is a read-only input vector owned by exactly one kernel invocation.
type Buffer []float64

// NewSource returns a freshly seeded random source. Every buffer gets its own.
func NewSource() rand.Source {
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// NewBuffer returns n values drawn uniformly from the open interval (-1, 1).
func NewBuffer(n int, src rand.Source) Buffer {
	if n <= 0 {
		return Buffer{}
	}

	r := rand.New(src)
	buf := make(Buffer, n)
	for i := range buf {
		v := r.Float64()*2 - 1
		for v == -1 {
			v = r.Float64()*2 - 1
		}
		buf[i] = v
	}
	return buf
}

// Filled returns a buffer of n copies of v.
func Filled(n int, v float64) Buffer {
	buf := make(Buffer, n)
	for i := range buf {
		buf[i] = v
	}
	return buf
}
