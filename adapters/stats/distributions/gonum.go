package distributions

import (
	"gonum.org/v1/gonum/stat/distuv"

	"winehypo/ports"
)

// GonumDistributions provides the distribution port on top of gonum's distuv
type GonumDistributions struct{}

// NewGonumDistributions creates the gonum-backed distribution adapter
func NewGonumDistributions() *GonumDistributions {
	return &GonumDistributions{}
}

// StudentsT returns a standard (location 0, scale 1) t distribution
func (g *GonumDistributions) StudentsT(df float64) ports.TDistribution {
	return studentsT{dist: distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}}
}

// NormalQuantile computes the quantile function for the standard normal
func (g *GonumDistributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// ChiSquaredSurvival computes the upper tail of the chi-squared distribution
func (g *GonumDistributions) ChiSquaredSurvival(x, k float64) float64 {
	if k <= 0 {
		return 1.0
	}
	return distuv.ChiSquared{K: k}.Survival(x)
}

type studentsT struct {
	dist distuv.StudentsT
}

func (s studentsT) CDF(x float64) float64      { return s.dist.CDF(x) }
func (s studentsT) Quantile(p float64) float64 { return s.dist.Quantile(p) }
func (s studentsT) Prob(x float64) float64     { return s.dist.Prob(x) }
func (s studentsT) DegreesOfFreedom() float64  { return s.dist.Nu }

var _ ports.DistributionPort = (*GonumDistributions)(nil)
