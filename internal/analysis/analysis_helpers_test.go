package analysis

import (
	"winehypo/adapters/stats/distributions"
	"winehypo/domain/core"
	domain "winehypo/domain/stats"
)

var gonumDist = distributions.NewGonumDistributions()

func sampleOf(values ...float64) domain.Sample {
	return domain.NewSample(core.VariableKey("pH"), "test.csv", values, 0)
}

// normalScores returns loc + scale*z at evenly spaced normal quantiles
func normalScores(n int, loc, scale float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		p := (float64(i) + 0.5) / float64(n)
		out[i] = loc + scale*gonumDist.NormalQuantile(p)
	}
	return out
}
