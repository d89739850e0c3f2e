package analysis

import (
	"fmt"
	"math"

	"winehypo/domain/core"
	domain "winehypo/domain/stats"
	"winehypo/internal/errors"
	"winehypo/ports"
)

// OneSampleTTest runs a two-tailed one-sample t-test against a fixed null mean
type OneSampleTTest struct {
	dist ports.DistributionPort
}

// NewOneSampleTTest creates a t-test backed by the given distribution port
func NewOneSampleTTest(dist ports.DistributionPort) *OneSampleTTest {
	return &OneSampleTTest{dist: dist}
}

// Run computes the test from precomputed descriptives
func (tt *OneSampleTTest) Run(desc domain.Descriptives, h domain.Hypothesis) (domain.TestResult, error) {
	if desc.N == 0 {
		return domain.TestResult{}, errors.Wrap(core.ErrEmptySample, "t-test")
	}
	if !(h.Alpha > 0 && h.Alpha < 1) {
		return domain.TestResult{}, errors.InvalidInput(fmt.Sprintf("significance level %v outside (0, 1)", h.Alpha))
	}
	if desc.N < 2 {
		return domain.TestResult{}, errors.Wrap(core.NewDegenerateSampleError("one observation leaves zero degrees of freedom"), "t-test")
	}

	n := float64(desc.N)
	se := desc.StdDev / math.Sqrt(n)
	df := desc.N - 1
	tDist := tt.dist.StudentsT(float64(df))

	var tStat, pValue float64
	switch {
	case math.IsNaN(se):
		return domain.TestResult{}, errors.Wrap(core.NewDegenerateSampleError("standard error is undefined"), "t-test")
	case se == 0 && desc.Mean != h.Mu0:
		return domain.TestResult{}, errors.Wrap(core.NewDegenerateSampleError("standard error is zero, every value is identical"), "t-test")
	case se == 0:
		// Every observation sits exactly on the null mean: no evidence against it
		tStat, pValue = 0, 1
	default:
		tStat = (desc.Mean - h.Mu0) / se
		// Two-tailed
		pValue = 2 * (1 - tDist.CDF(math.Abs(tStat)))
	}

	critical := tDist.Quantile(1 - h.Alpha/2)
	margin := critical * se

	return domain.TestResult{
		Hypothesis: h,
		N:          desc.N,
		Mean:       desc.Mean,
		StdDev:     desc.StdDev,
		StdErr:     se,
		T:          tStat,
		DF:         df,
		PValue:     pValue,
		Critical:   critical,
		Margin:     margin,
		CILower:    desc.Mean - margin,
		CIUpper:    desc.Mean + margin,
		Decision:   domain.Decide(pValue, h.Alpha),
	}, nil
}

// RunSample describes the sample and tests it in one step
func (tt *OneSampleTTest) RunSample(sample domain.Sample, h domain.Hypothesis) (domain.TestResult, error) {
	desc, err := NewDescriptiveAnalyzer(tt.dist).Describe(sample)
	if err != nil {
		return domain.TestResult{}, err
	}
	return tt.Run(desc, h)
}
