// Package numeric holds small numeric helpers: block-wise downsampling and
// logarithmically spaced sample generation.
package numeric

import "fmt"

// ReduceFunc collapses a block of samples to a single value.
type ReduceFunc func([]float64) float64

// Mean returns the arithmetic mean of the block.
func Mean(block []float64) float64 {
	return Sum(block) / float64(len(block))
}

// Sum returns the sum of the block.
func Sum(block []float64) float64 {
	var s float64
	for _, v := range block {
		s += v
	}
	return s
}

// Max returns the largest value in the block.
func Max(block []float64) float64 {
	m := block[0]
	for _, v := range block[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Min returns the smallest value in the block.
func Min(block []float64) float64 {
	m := block[0]
	for _, v := range block[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Downsample groups a into consecutive blocks of size factor and applies fn
// to each block. The length of a must be exactly divisible by factor.
func Downsample(a []float64, factor int, fn ReduceFunc) ([]float64, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("cannot downsample by factor %d", factor)
	}
	if len(a)%factor != 0 {
		return nil, fmt.Errorf("length %d not divisible by factor %d", len(a), factor)
	}

	out := make([]float64, len(a)/factor)
	for i := range out {
		out[i] = fn(a[i*factor : (i+1)*factor])
	}
	return out, nil
}

// Axis selects the dimension DownsampleAxis reduces along.
type Axis int

const (
	// Rows groups blocks of consecutive rows.
	Rows Axis = 0
	// Columns groups blocks of consecutive columns within each row.
	Columns Axis = 1
)

// DownsampleAxis downsamples a 2-D matrix along the given axis. The matrix
// must be rectangular and the chosen axis length exactly divisible by
// factor. The reduced axis remains in the result shape even when its length
// becomes 1.
func DownsampleAxis(a [][]float64, factor int, axis Axis, fn ReduceFunc) ([][]float64, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("cannot downsample by factor %d", factor)
	}
	if axis != Rows && axis != Columns {
		return nil, fmt.Errorf("axis %d out of range for 2-D input", axis)
	}
	if len(a) == 0 {
		return [][]float64{}, nil
	}
	width := len(a[0])
	for i, row := range a {
		if len(row) != width {
			return nil, fmt.Errorf("ragged input: row %d has length %d, want %d", i, len(row), width)
		}
	}

	if axis == Columns {
		out := make([][]float64, len(a))
		for i, row := range a {
			ds, err := Downsample(row, factor, fn)
			if err != nil {
				return nil, err
			}
			out[i] = ds
		}
		return out, nil
	}

	if len(a)%factor != 0 {
		return nil, fmt.Errorf("axis length %d not divisible by factor %d", len(a), factor)
	}
	out := make([][]float64, len(a)/factor)
	block := make([]float64, factor)
	for i := range out {
		row := make([]float64, width)
		for j := 0; j < width; j++ {
			for k := 0; k < factor; k++ {
				block[k] = a[i*factor+k][j]
			}
			row[j] = fn(block)
		}
		out[i] = row
	}
	return out, nil
}
