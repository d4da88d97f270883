package histogram

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin is one equal-width histogram bucket, [Min, Max).
// The last bin also holds the maximum value.
type Bin struct {
	Min, Max float64
	Count    float64
}

// Bins splits values into n equal-width bins spanning their range.
func Bins(values []float64, n int) []Bin {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi <= lo {
		hi = lo + 1
	}
	dividers := floats.Span(make([]float64, n+1), lo, hi)
	upper := dividers[n]
	// stat.Histogram needs the last divider strictly above the maximum.
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	out := make([]Bin, n)
	for i := range out {
		out[i] = Bin{Min: dividers[i], Max: dividers[i+1], Count: counts[i]}
	}
	out[n-1].Max = upper
	return out
}
