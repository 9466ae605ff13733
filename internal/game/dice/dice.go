// Package dice provides the randomness abstraction shared by the battle core:
// hit rolls, level-up growth, experience jitter and enemy target sampling.
package dice

// Source is the randomness provider for every draw made by the battle core.
//
// Implementations need not be safe for concurrent use; an encounter is only
// ever advanced from one goroutine.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// Between returns a uniformly distributed int in [lo, hi].
//
// Precondition: hi >= lo.
// Postcondition: lo <= result <= hi.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		panic("dice: Between called with hi < lo")
	}
	return lo + src.Intn(hi-lo+1)
}

// Growth returns a stat increase in [base, base+span). A span below 1 is
// treated as 1 so that low-intelligence agents still grow by base.
//
// Postcondition: base <= result < base+max(span,1).
func Growth(src Source, span, base int) int {
	if span < 1 {
		span = 1
	}
	return src.Intn(span) + base
}

// Jitter returns a multiplier drawn uniformly from [1-spread, 1+spread).
//
// Precondition: spread >= 0.
func Jitter(src Source, spread float64) float64 {
	return 1 + (src.Float64()*2-1)*spread
}
