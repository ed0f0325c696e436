package numeric

import (
	"fmt"
	"math"
)

// Linspace returns num evenly spaced values from start toward stop. When
// endpoint is true the interval is closed and stop is the final sample;
// otherwise the step is that of a num+1-point closed interval and stop is
// excluded. num <= 0 returns an empty slice; num == 1 returns just start.
func Linspace(start, stop float64, num int, endpoint bool) []float64 {
	if num <= 0 {
		return []float64{}
	}
	if num == 1 {
		return []float64{start}
	}

	div := num
	if endpoint {
		div = num - 1
	}
	step := (stop - start) / float64(div)

	out := make([]float64, num)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	if endpoint {
		// Land exactly on stop rather than accumulating rounding error.
		out[num-1] = stop
	}
	return out
}

// LogspaceExp returns num samples between start and stop whose logarithms
// are evenly spaced. Both endpoints must be nonzero and share a sign; a
// negative pair is mirrored through -1. When endpoint is false the interval
// is open at stop.
func LogspaceExp(start, stop float64, num int, endpoint bool) ([]float64, error) {
	if start == 0 || stop == 0 {
		return nil, fmt.Errorf("start and stop values must be nonzero")
	}
	sign := 1.0
	if start < 0 {
		sign = -1
		start = -start
		stop = -stop
	}
	if stop < 0 {
		return nil, fmt.Errorf("start and stop values must have the same sign")
	}

	out := Linspace(math.Log(start), math.Log(stop), num, endpoint)
	for i, v := range out {
		out[i] = sign * math.Exp(v)
	}
	return out, nil
}
