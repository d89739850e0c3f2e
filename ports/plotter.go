package ports

import (
	"context"

	"winehypo/domain/stats"
)

// PlotterPort renders the diagnostic figures for a one-sample t-test.
// Headless environments and tests can substitute an implementation that draws nothing.
type PlotterPort interface {
	// PlotAssumptions writes the histogram and QQ plot figure and returns its path
	PlotAssumptions(ctx context.Context, sample stats.Sample, desc stats.Descriptives, result stats.TestResult) (string, error)

	// PlotTestDistribution writes the t density with shaded rejection regions and returns its path
	PlotTestDistribution(ctx context.Context, result stats.TestResult) (string, error)
}
