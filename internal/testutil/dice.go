package testutil

// FixedDice is a dice.Source that returns the same values on every draw.
// Intn clamps Int into [0, n).
type FixedDice struct {
	Int   int
	Float float64
}

// Intn returns Int clamped into [0, n).
func (f FixedDice) Intn(n int) int {
	if f.Int >= n {
		return n - 1
	}
	if f.Int < 0 {
		return 0
	}
	return f.Int
}

// Float64 returns Float.
func (f FixedDice) Float64() float64 { return f.Float }

// SeqDice replays Ints and Floats in order, repeating the last value once a
// sequence is exhausted. Each Intn result is reduced modulo n.
type SeqDice struct {
	Ints   []int
	Floats []float64
	i, f   int
}

// Intn returns the next Ints value modulo n.
func (s *SeqDice) Intn(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[s.i]
	if s.i < len(s.Ints)-1 {
		s.i++
	}
	return v % n
}

// Float64 returns the next Floats value.
func (s *SeqDice) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.f]
	if s.f < len(s.Floats)-1 {
		s.f++
	}
	return v
}
