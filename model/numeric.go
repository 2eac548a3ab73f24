package model

import "math"

// Epsilon is the absolute tolerance used by every optimality, feasibility
// and ratio comparison. float64 machine epsilon is ~2.2e-16, so this leaves
// plenty of room for accumulated round-off.
const Epsilon = 1e-10

// Equals reports whether a and b differ by less than Epsilon.
func Equals(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// LessThan reports whether a is smaller than b by more than Epsilon.
func LessThan(a, b float64) bool {
	return a+Epsilon < b
}
