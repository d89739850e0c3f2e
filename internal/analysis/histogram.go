package analysis

import (
	"math"
	"sort"
)

// Histogram is an equal-width binning of a sample
type Histogram struct {
	Edges  []float64 // len(Counts)+1 ascending bin boundaries
	Counts []int
}

// MaxCount returns the tallest bin
func (h Histogram) MaxCount() int {
	max := 0
	for _, c := range h.Counts {
		if c > max {
			max = c
		}
	}
	return max
}

// NewHistogram bins values into n equal-width bins spanning [min, max].
// The last bin is closed on the right so the maximum is counted.
func NewHistogram(values []float64, n int) Histogram {
	if n <= 0 || len(values) == 0 {
		return Histogram{}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(n)
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[n] = hi

	counts := make([]int, n)
	for _, v := range values {
		// bins are [edges[i], edges[i+1]); v on an inner edge opens the next bin
		i := sort.SearchFloat64s(edges, v)
		if i == len(edges) || edges[i] != v {
			i--
		}
		if i >= n {
			i = n - 1
		}
		counts[i]++
	}
	return Histogram{Edges: edges, Counts: counts}
}
