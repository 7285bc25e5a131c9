package sequence

// ProgressEvery is the index stride at which Fibonacci reports progress.
const ProgressEvery = 1000

// ProgressFunc receives the index of the term just produced.
type ProgressFunc func(index uint32)

// Fibonacci returns the first n Fibonacci numbers starting at 0, 1.
//
// Terms are accumulated as uint64 and widened to float64, so F(94) and every
// later term wraps modulo 2^64. That limit is inherited and intentionally not
// corrected. progress, if non-nil, is invoked for every index divisible by
// ProgressEvery.
func Fibonacci(n uint32, progress ProgressFunc) []float64 {
	out := make([]float64, 0, n)

	var a, b uint64 = 0, 1
	for i := uint32(0); i < n; i++ {
		out = append(out, float64(a))
		a, b = b, a+b

		if progress != nil && i%ProgressEvery == 0 {
			progress(i)
		}
	}
	return out
}

// Primes returns every prime p with 2 <= p <= limit in ascending order using
// the sieve of Eratosthenes.
func Primes(limit uint32) []uint32 {
	primes := []uint32{}
	if limit < 2 {
		return primes
	}

	size := uint64(limit) + 1
	composite := make([]bool, size)
	composite[0], composite[1] = true, true

	for i := uint64(2); i < size; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, uint32(i))
		for j := i * i; j < size; j += i {
			composite[j] = true
		}
	}
	return primes
}
