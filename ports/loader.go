package ports

import (
	"context"

	"winehypo/domain/core"
	"winehypo/domain/stats"
)

// SampleLoaderPort reads a single numeric column out of a tabular file
type SampleLoaderPort interface {
	// LoadSample returns the non-missing values of column in file order.
	// A missing file wraps core.ErrFileNotFound and a missing column wraps core.ErrColumnNotFound.
	LoadSample(ctx context.Context, path string, column core.VariableKey) (stats.Sample, error)
}
