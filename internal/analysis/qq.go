package analysis

import (
	"math"
	"sort"

	gstat "gonum.org/v1/gonum/stat"

	domain "winehypo/domain/stats"
	"winehypo/ports"
)

// QQPlot holds normal probability plot coordinates and its least-squares line
type QQPlot struct {
	Theoretical []float64 // standard normal quantiles of the order statistic medians
	Ordered     []float64 // sorted sample
	Slope       float64
	Intercept   float64
}

// NormalQQ pairs the sorted sample with Filliben's order statistic medians
// mapped through the normal quantile, then fits y = Intercept + Slope*x.
func NormalQQ(sample domain.Sample, dist ports.DistributionPort) QQPlot {
	ordered := sample.Values()
	sort.Float64s(ordered)

	n := len(ordered)
	theoretical := make([]float64, n)
	for i, m := range fillibenMedians(n) {
		theoretical[i] = dist.NormalQuantile(m)
	}

	qq := QQPlot{Theoretical: theoretical, Ordered: ordered}
	if n >= 2 {
		qq.Intercept, qq.Slope = gstat.LinearRegression(theoretical, ordered, nil, false)
	}
	return qq
}

// fillibenMedians approximates the medians of uniform order statistics
func fillibenMedians(n int) []float64 {
	if n == 0 {
		return nil
	}
	m := make([]float64, n)
	last := math.Pow(0.5, 1/float64(n))
	m[n-1] = last
	m[0] = 1 - last
	for i := 2; i < n; i++ {
		m[i-1] = (float64(i) - 0.3175) / (float64(n) + 0.365)
	}
	return m
}
