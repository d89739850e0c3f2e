package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	gstat "gonum.org/v1/gonum/stat"

	"winehypo/domain/core"
	domain "winehypo/domain/stats"
	"winehypo/internal/errors"
	"winehypo/ports"
)

// DescriptiveAnalyzer computes summary statistics and distribution shape
type DescriptiveAnalyzer struct {
	dist ports.DistributionPort
}

// NewDescriptiveAnalyzer creates a new descriptive analyzer
func NewDescriptiveAnalyzer(dist ports.DistributionPort) *DescriptiveAnalyzer {
	return &DescriptiveAnalyzer{dist: dist}
}

// Describe summarizes the sample. An empty sample is an error, never NaN.
func (da *DescriptiveAnalyzer) Describe(sample domain.Sample) (domain.Descriptives, error) {
	data := sample.Values()
	if len(data) == 0 {
		return domain.Descriptives{}, errors.Wrapf(core.ErrEmptySample, "no non-missing values for %s", sample.Variable())
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return domain.Descriptives{}, errors.Wrap(err, "mean")
	}

	// ddof=1; a single observation has no spread to estimate
	stdDev := math.NaN()
	if len(data) > 1 {
		stdDev, err = stats.StandardDeviationSample(data)
		if err != nil {
			return domain.Descriptives{}, errors.Wrap(err, "standard deviation")
		}
	}

	min, err := stats.Min(data)
	if err != nil {
		return domain.Descriptives{}, errors.Wrap(err, "min")
	}

	max, err := stats.Max(data)
	if err != nil {
		return domain.Descriptives{}, errors.Wrap(err, "max")
	}

	// Identical values: the summation residue of mean and std is not spread
	if min == max {
		mean = min
		if len(data) > 1 {
			stdDev = 0
		}
	}

	median, err := stats.Median(data)
	if err != nil {
		return domain.Descriptives{}, errors.Wrap(err, "median")
	}

	// Quartiles
	q1, err := stats.Percentile(data, 25)
	if err != nil {
		return domain.Descriptives{}, errors.Wrap(err, "first quartile")
	}

	q3, err := stats.Percentile(data, 75)
	if err != nil {
		return domain.Descriptives{}, errors.Wrap(err, "third quartile")
	}

	desc := domain.Descriptives{
		N:      len(data),
		Mean:   mean,
		StdDev: stdDev,
		Median: median,
		Min:    min,
		Max:    max,
		Q1:     q1,
		Q3:     q3,
	}

	// Shape is only defined with spread and enough points
	if len(data) >= 4 && stdDev > 0 {
		desc.Skewness = gstat.Skew(data, nil)
		desc.Kurtosis = gstat.ExKurtosis(data, nil)
		desc.Normality = da.jarqueBera(len(data), desc.Skewness, desc.Kurtosis)
	} else {
		desc.Normality = domain.NormalityCheck{PValue: 1.0}
	}

	return desc, nil
}

// jarqueBera combines skewness and excess kurtosis into a chi-squared(2) statistic
func (da *DescriptiveAnalyzer) jarqueBera(n int, skew, exKurt float64) domain.NormalityCheck {
	jb := float64(n) / 6.0 * (skew*skew + exKurt*exKurt/4.0)
	return domain.NormalityCheck{
		JarqueBera: jb,
		PValue:     da.dist.ChiSquaredSurvival(jb, 2),
	}
}
