package testing

import "sync"

// FixedRandom replays Floats and Ints in order, cycling when exhausted.
//
// IntN returns the next Int modulo n. With no values configured it returns 0.
type FixedRandom struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
	fi, ii int
}

func NewFixedRandom(floats []float64, ints []int) *FixedRandom {
	return &FixedRandom{Floats: floats, Ints: ints}
}

func (f *FixedRandom) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Floats) == 0 {
		return 0
	}
	v := f.Floats[f.fi%len(f.Floats)]
	f.fi++
	return v
}

func (f *FixedRandom) IntN(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Ints) == 0 || n <= 0 {
		return 0
	}
	v := f.Ints[f.ii%len(f.Ints)]
	f.ii++
	if v < 0 {
		v = -v
	}
	return v % n
}
