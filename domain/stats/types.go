package stats

import (
	"winehypo/domain/core"
)

// ============================================================================
// SAMPLE
// ============================================================================

// Sample is the ordered, missing-free set of observations for one column.
// It is immutable once constructed.
type Sample struct {
	variable core.VariableKey
	source   string
	values   []float64
	dropped  int
}

// NewSample copies values so later mutation by the caller cannot leak in
func NewSample(variable core.VariableKey, source string, values []float64, dropped int) Sample {
	cp := make([]float64, len(values))
	copy(cp, values)
	return Sample{variable: variable, source: source, values: cp, dropped: dropped}
}

// Variable returns the column the sample was taken from
func (s Sample) Variable() core.VariableKey { return s.variable }

// Source returns the path the sample was loaded from
func (s Sample) Source() string { return s.source }

// Len returns the number of non-missing observations
func (s Sample) Len() int { return len(s.values) }

// Dropped returns how many missing entries were removed while loading
func (s Sample) Dropped() int { return s.dropped }

// Values returns a copy of the observations in file order
func (s Sample) Values() []float64 {
	cp := make([]float64, len(s.values))
	copy(cp, s.values)
	return cp
}

// ============================================================================
// DESCRIPTIVES
// ============================================================================

// Descriptives summarizes a Sample.
// INVARIANTS:
// - N > 0
// - StdDev uses Bessel's correction (n-1)
type Descriptives struct {
	N         int            `json:"n"`
	Mean      float64        `json:"mean"`
	StdDev    float64        `json:"std_dev"`
	Median    float64        `json:"median"`
	Min       float64        `json:"min"`
	Max       float64        `json:"max"`
	Q1        float64        `json:"q1"`
	Q3        float64        `json:"q3"`
	Skewness  float64        `json:"skewness"`
	Kurtosis  float64        `json:"excess_kurtosis"`
	Normality NormalityCheck `json:"normality"`
}

// NormalityCheck is the Jarque-Bera moment test backing the visual inspection
type NormalityCheck struct {
	JarqueBera float64 `json:"jarque_bera"`
	PValue     float64 `json:"p_value"`
}

// SkewDirection classifies the sign of the skewness for narrative output
type SkewDirection string

const (
	SkewLeft      SkewDirection = "left"
	SkewRight     SkewDirection = "right"
	SkewSymmetric SkewDirection = "symmetric"
)

// SkewThreshold is the |skewness| below which a distribution reads as symmetric
const SkewThreshold = 0.1

// SkewDirection reports which tail is heavier
func (d Descriptives) SkewDirection() SkewDirection {
	switch {
	case d.Skewness <= -SkewThreshold:
		return SkewLeft
	case d.Skewness >= SkewThreshold:
		return SkewRight
	default:
		return SkewSymmetric
	}
}

// ============================================================================
// HYPOTHESIS TEST
// ============================================================================

// Hypothesis fixes the null value and significance level of a two-tailed test
type Hypothesis struct {
	Mu0   float64 `json:"mu0"`
	Alpha float64 `json:"alpha"`
}

// ConfidenceLevel is the coverage of the matching confidence interval
func (h Hypothesis) ConfidenceLevel() float64 {
	return 1 - h.Alpha
}

// Decision is the outcome of the decision rule
type Decision string

const (
	DecisionReject       Decision = "reject"
	DecisionFailToReject Decision = "fail_to_reject"
)

// TestResult is everything derived from a one-sample t-test.
// INVARIANTS:
// - StdErr == StdDev / sqrt(N)
// - CILower == Mean - Margin, CIUpper == Mean + Margin, Margin == Critical * StdErr
// - Decision == DecisionReject iff PValue < Alpha
type TestResult struct {
	Hypothesis

	N        int      `json:"n"`
	Mean     float64  `json:"mean"`
	StdDev   float64  `json:"std_dev"`
	StdErr   float64  `json:"std_err"`
	T        float64  `json:"t_statistic"`
	DF       int      `json:"df"`
	PValue   float64  `json:"p_value"`
	Critical float64  `json:"critical_value"`
	Margin   float64  `json:"margin_of_error"`
	CILower  float64  `json:"ci_lower"`
	CIUpper  float64  `json:"ci_upper"`
	Decision Decision `json:"decision"`
}

// Rejected reports whether the null hypothesis was rejected
func (r TestResult) Rejected() bool {
	return r.Decision == DecisionReject
}

// CIWidth returns the full width of the confidence interval
func (r TestResult) CIWidth() float64 {
	return r.CIUpper - r.CILower
}

// CIContains reports whether v lies inside the closed confidence interval
func (r TestResult) CIContains(v float64) bool {
	return r.CILower <= v && v <= r.CIUpper
}

// Decide applies the strict decision rule: a p-value equal to alpha does not reject
func Decide(pValue, alpha float64) Decision {
	if pValue < alpha {
		return DecisionReject
	}
	return DecisionFailToReject
}
