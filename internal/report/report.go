package report

import (
	"fmt"
	"io"

	"winehypo/domain/stats"
)

// LargeSampleThreshold is the n at which the central limit theorem is relied upon
const LargeSampleThreshold = 30

// Input is everything the narrative needs; the reporter computes nothing itself
type Input struct {
	Variable        string
	Descriptives    stats.Descriptives
	Result          stats.TestResult
	AssumptionsPlot string // empty when plotting was skipped
	TestPlot        string
}

// Reporter renders the one-sample t-test narrative
type Reporter struct{}

// NewReporter creates a reporter
func NewReporter() *Reporter {
	return &Reporter{}
}

// printer remembers the first write error so sections can be written without
// checking every line
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(line string) {
	p.printf("%s\n", line)
}

// Write prints the full report to w
func (r *Reporter) Write(w io.Writer, in Input) error {
	p := &printer{w: w}

	r.writeSummary(p, in)
	r.writeHypotheses(p, in)
	r.writeAssumptions(p, in)
	r.writeTest(p, in)
	r.writeConfidenceInterval(p, in)
	r.writeConclusion(p, in)
	r.writeVisualization(p, in)

	p.println("\nAnalysis complete!")
	return p.err
}

func (r *Reporter) writeSummary(p *printer, in Input) {
	d := in.Descriptives
	p.println("\nQUESTION 2: ONE-SAMPLE HYPOTHESIS TEST\n")
	p.printf("\nVariable selected: %s\n", in.Variable)
	p.printf("Sample size (n): %d\n", d.N)
	p.printf("Sample mean: %.4f\n", d.Mean)
	p.printf("Sample standard deviation: %.4f\n", d.StdDev)
}

func (r *Reporter) writeHypotheses(p *printer, in Input) {
	res := in.Result
	p.println("\n1. HYPOTHESIS STATEMENT")
	p.println("\nResearch Question:")
	p.printf("Is the mean %s of red wines different from %v?\n", in.Variable, res.Mu0)
	p.printf("\nNull Hypothesis (H₀): μ = %v\n", res.Mu0)
	p.printf("Alternative Hypothesis (H₁): μ ≠ %v\n", res.Mu0)
	p.printf("\nThis is a two-tailed test at α = %v significance level.\n", res.Alpha)
}

func (r *Reporter) writeAssumptions(p *printer, in Input) {
	d := in.Descriptives
	p.println("\n\n2. CHECKING ASSUMPTIONS")

	p.println("\nAssumption 1 - Independence:")
	p.println("The wine samples are assumed to be independently collected.")
	p.println("Each observation represents a different wine sample.")

	p.println("\nAssumption 2 - Sample Size:")
	p.printf("Sample size n = %d\n", d.N)
	if d.N >= LargeSampleThreshold {
		p.println("✓ Sample size is large (n ≥ 30), so CLT applies.")
	} else {
		p.println("✗ Sample size is small (n < 30), normality should be checked.")
	}

	p.println("\nAssumption 3 - Normality:")
	p.println("Visual checks using histogram and QQ plot...")
	if in.AssumptionsPlot != "" {
		p.printf("Plots saved as '%s'\n", in.AssumptionsPlot)
	} else {
		p.println("Plot rendering skipped.")
	}

	p.println("\nVisual Assessment:")
	switch d.SkewDirection() {
	case stats.SkewLeft:
		p.println("  From the histogram: The distribution appears roughly bell-shaped,")
		p.println("  though with some left skewness.")
	case stats.SkewRight:
		p.println("  From the histogram: The distribution appears roughly bell-shaped,")
		p.println("  though with some right skewness.")
	default:
		p.println("  From the histogram: The distribution appears roughly bell-shaped and")
		p.println("  approximately symmetric.")
	}
	p.println("  From the QQ plot: Points close to the reference line indicate")
	p.println("  approximately normally distributed data.")
	p.printf("  Skewness: %.4f, excess kurtosis: %.4f\n", d.Skewness, d.Kurtosis)
	p.printf("  Jarque-Bera: JB = %.4f, p-value = %.4f\n", d.Normality.JarqueBera, d.Normality.PValue)

	switch {
	case d.N >= LargeSampleThreshold:
		p.println("\n  Conclusion: The normality assumption is reasonably satisfied.")
		p.printf("  Note: With a large sample size (n = %d), the Central Limit Theorem\n", d.N)
		p.println("  ensures that the t-test is valid even if data isn't perfectly normal.")
	case d.Normality.PValue < in.Result.Alpha:
		p.println("\n  Conclusion: The normality assumption is questionable for this small sample;")
		p.println("  interpret the t-test with caution.")
	default:
		p.println("\n  Conclusion: The normality assumption is reasonably satisfied.")
	}
}

func (r *Reporter) writeTest(p *printer, in Input) {
	res := in.Result
	p.println("\n\n3. HYPOTHESIS TEST")
	p.println("\nTest: One-sample t-test")
	p.printf("Standard error: %.4f\n", res.StdErr)
	p.printf("Test statistic (t): %.4f\n", res.T)
	p.printf("Degrees of freedom: %d\n", res.DF)
	p.printf("p-value: %.4f\n", res.PValue)
	p.printf("Critical value (α = %v): ±%.4f\n", res.Alpha, res.Critical)
	p.printf("Rejection region: |t| > %.4f\n", res.Critical)
}

func (r *Reporter) writeConfidenceInterval(p *printer, in Input) {
	res := in.Result
	level := res.ConfidenceLevel() * 100

	p.println("\n\n4. CONFIDENCE INTERVAL")
	p.printf("\n%.0f%% Confidence Interval for μ:\n", level)
	p.printf("(%.4f, %.4f)\n", res.CILower, res.CIUpper)
	p.printf("Margin of error: %.4f\n", res.Margin)
	p.println("\nInterpretation:")
	p.printf("We are %.0f%% confident that the true mean %s of red wines\n", level, in.Variable)
	p.printf("lies between %.4f and %.4f.\n", res.CILower, res.CIUpper)

	if res.CIContains(res.Mu0) {
		p.printf("\nNote: The hypothesized value μ₀ = %v IS within the confidence interval.\n", res.Mu0)
	} else {
		p.printf("\nNote: The hypothesized value μ₀ = %v is NOT within the confidence interval.\n", res.Mu0)
	}
}

func (r *Reporter) writeConclusion(p *printer, in Input) {
	res := in.Result
	p.println("\n\n5. CONCLUSION")
	p.printf("\nDecision rule: Reject H₀ if p-value < α = %v\n", res.Alpha)
	p.printf("p-value = %.4f\n", res.PValue)

	if res.Rejected() {
		direction := "lower"
		if res.Mean > res.Mu0 {
			direction = "higher"
		}
		p.printf("\nDecision: REJECT H₀ (p-value = %.4f < %v)\n", res.PValue, res.Alpha)
		p.println("\nConclusion in context:")
		p.printf("At the %v significance level, there is sufficient evidence to conclude\n", res.Alpha)
		p.printf("that the mean %s of red wines is significantly different from %v.\n", in.Variable, res.Mu0)
		p.printf("The sample data suggests the true mean %s is approximately %.4f,\n", in.Variable, res.Mean)
		p.printf("which is %s than the hypothesized value of %v.\n", direction, res.Mu0)
		return
	}

	p.printf("\nDecision: FAIL TO REJECT H₀ (p-value = %.4f ≥ %v)\n", res.PValue, res.Alpha)
	p.println("\nConclusion in context:")
	p.printf("At the %v significance level, there is insufficient evidence to conclude\n", res.Alpha)
	p.printf("that the mean %s of red wines is different from %v.\n", in.Variable, res.Mu0)
	p.printf("The data is consistent with the hypothesis that the mean %s is %v.\n", in.Variable, res.Mu0)
}

func (r *Reporter) writeVisualization(p *printer, in Input) {
	p.println("\n\nCreating visualization of hypothesis test...")
	if in.TestPlot != "" {
		p.printf("✓ Test visualization saved as '%s'\n", in.TestPlot)
	} else {
		p.println("Plot rendering skipped.")
	}
}
