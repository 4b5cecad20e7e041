package core

import "math"

// Interval is a range of real numbers from Min to Max.
// Min <= Max is expected but not enforced; an inverted interval contains nothing.
type Interval struct {
	Min, Max float64
}

var (
	// EmptyInterval contains no values
	EmptyInterval = Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	// UniverseInterval contains every value
	UniverseInterval = Interval{Min: math.Inf(-1), Max: math.Inf(1)}
)

// NewInterval creates a new interval
func NewInterval(minVal, maxVal float64) Interval {
	return Interval{Min: minVal, Max: maxVal}
}

// Size returns Max - Min
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether Min <= x <= Max
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether Min < x < Max
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp saturates x into the interval. The lower bound is checked first.
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}
