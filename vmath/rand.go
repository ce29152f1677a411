package vmath

// FastRand is a xorshift64 generator
// Not safe for concurrent use; each owner keeps its own instance
type FastRand struct {
	state uint64
}

// NewFastRand seeds a generator; a zero seed is remapped since xorshift sticks at 0
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), 0 for n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) built from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Signum returns -1 or +1 with equal odds
func (r *FastRand) Signum() float64 {
	if r.Next()&1 == 0 {
		return -1
	}
	return 1
}
