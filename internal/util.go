package internal

import "math"

// To compensate for imprecision in floats, equality is tolerance based.
// Wavefront advancement accumulates a little error at every event, so
// coincidence checks (merging collapsed vertices, comparing bisectors) can
// never rely on exact equality.
const Tolerance = 1e-6

// PredicateTolerance guards the numerically sensitive predicates: near-zero
// sines in the collapse formula, near-parallel line intersections, and split
// revalidation. These want a much tighter bound than coordinate comparison.
const PredicateTolerance = 1e-10

func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives
// positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}
