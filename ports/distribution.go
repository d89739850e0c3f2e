package ports

// TDistribution is a Student's t distribution with fixed degrees of freedom.
// The concrete numeric library sits behind this port so it can be swapped.
type TDistribution interface {
	// CDF returns P(T <= x)
	CDF(x float64) float64
	// Quantile is the inverse CDF for p in (0, 1)
	Quantile(p float64) float64
	// Prob is the probability density at x
	Prob(x float64) float64
	// DegreesOfFreedom returns the nu parameter
	DegreesOfFreedom() float64
}

// DistributionPort builds the distributions the hypothesis test needs
type DistributionPort interface {
	StudentsT(df float64) TDistribution
	// NormalQuantile is the standard normal inverse CDF, used for QQ positions
	NormalQuantile(p float64) float64
	// ChiSquaredSurvival returns P(X > x) for a chi-squared variable with k degrees of freedom
	ChiSquaredSurvival(x, k float64) float64
}
