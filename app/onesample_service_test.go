package app

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"winehypo/adapters/charts"
	"winehypo/adapters/dataset"
	"winehypo/adapters/stats/distributions"
	"winehypo/domain/core"
	"winehypo/domain/stats"
	"winehypo/internal"
	"winehypo/internal/errors"
)

// Mock implementations for testing
type MockPlotter struct {
	mock.Mock
}

func (m *MockPlotter) PlotAssumptions(ctx context.Context, sample stats.Sample, desc stats.Descriptives, result stats.TestResult) (string, error) {
	args := m.Called(ctx, sample, desc, result)
	return args.String(0), args.Error(1)
}

func (m *MockPlotter) PlotTestDistribution(ctx context.Context, result stats.TestResult) (string, error) {
	args := m.Called(ctx, result)
	return args.String(0), args.Error(1)
}

type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) LoadSample(ctx context.Context, path string, column core.VariableKey) (stats.Sample, error) {
	args := m.Called(ctx, path, column)
	return args.Get(0).(stats.Sample), args.Error(1)
}

var winePH = stats.Hypothesis{Mu0: 3.5, Alpha: 0.05}

// writeWineCSV writes a deterministic semicolon-delimited pH column
func writeWineCSV(t *testing.T, n int) string {
	t.Helper()
	dist := distributions.NewGonumDistributions()
	var b strings.Builder
	b.WriteString("\"fixed acidity\";\"pH\";\"quality\"\n")
	for i := 0; i < n; i++ {
		ph := 3.31 + 0.15*dist.NormalQuantile((float64(i)+0.5)/float64(n))
		fmt.Fprintf(&b, "7.4;%.2f;5\n", ph)
	}
	b.WriteString("7.8;;5\n")

	path := filepath.Join(t.TempDir(), "winequality-red.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func newService(plotter *MockPlotter, loader *MockLoader, out *bytes.Buffer) *OneSampleService {
	return NewOneSampleService(loader, distributions.NewGonumDistributions(), plotter, out, internal.Discard())
}

func TestRun_EndToEndWithDiscardPlotter(t *testing.T) {
	path := writeWineCSV(t, 1599)
	var out bytes.Buffer
	svc := NewOneSampleService(dataset.NewDataReader(internal.Discard()), distributions.NewGonumDistributions(), charts.Discard{}, &out, internal.Discard())

	outcome, err := svc.Run(context.Background(), OneSampleRequest{DataFile: path, Variable: "pH", Hypothesis: winePH})
	require.NoError(t, err)

	assert.Equal(t, 1599, outcome.Descriptives.N)
	assert.Equal(t, 1, outcome.Sample.Dropped())
	assert.Equal(t, 1598, outcome.Result.DF)
	assert.True(t, outcome.Result.Rejected())
	assert.False(t, outcome.RunID.String() == "")
	assert.Contains(t, out.String(), "Sample size (n): 1599")
	assert.Contains(t, out.String(), "which is lower than the hypothesized value of 3.5.")
}

func TestRun_Deterministic(t *testing.T) {
	path := writeWineCSV(t, 300)
	run := func() (string, *Outcome) {
		var out bytes.Buffer
		svc := NewOneSampleService(dataset.NewDataReader(internal.Discard()), distributions.NewGonumDistributions(), charts.Discard{}, &out, internal.Discard())
		outcome, err := svc.Run(context.Background(), OneSampleRequest{DataFile: path, Variable: "pH", Hypothesis: winePH})
		require.NoError(t, err)
		return out.String(), outcome
	}

	firstOut, first := run()
	secondOut, second := run()

	assert.Equal(t, firstOut, secondOut)
	assert.Equal(t, first.Result, second.Result)
	assert.True(t, first.Fingerprint.Equals(second.Fingerprint))
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRun_WritesPlotsWithChartPlotter(t *testing.T) {
	path := writeWineCSV(t, 200)
	dir := t.TempDir()
	dist := distributions.NewGonumDistributions()
	plotter := charts.NewPlotter(dist, charts.Options{
		AssumptionsPath:       filepath.Join(dir, "question2_assumptions.png"),
		TestVisualizationPath: filepath.Join(dir, "question2_test_visualization.png"),
		DPI:                   72,
	}, internal.Discard())

	var out bytes.Buffer
	svc := NewOneSampleService(dataset.NewDataReader(internal.Discard()), dist, plotter, &out, internal.Discard())
	outcome, err := svc.Run(context.Background(), OneSampleRequest{DataFile: path, Variable: "pH", Hypothesis: winePH})
	require.NoError(t, err)

	assert.FileExists(t, outcome.AssumptionsPlot)
	assert.FileExists(t, outcome.TestPlot)
	assert.Contains(t, out.String(), "question2_assumptions.png")
}

func TestRun_UsesPlotterOutputInReport(t *testing.T) {
	sample := stats.NewSample("pH", "mem", []float64{3.1, 3.3, 3.2, 3.4, 3.25, 3.35}, 0)
	loader := &MockLoader{}
	loader.On("LoadSample", mock.Anything, "wine.csv", core.VariableKey("pH")).Return(sample, nil)

	plotter := &MockPlotter{}
	plotter.On("PlotAssumptions", mock.Anything, sample, mock.Anything, mock.Anything).Return("a.png", nil)
	plotter.On("PlotTestDistribution", mock.Anything, mock.MatchedBy(func(r stats.TestResult) bool {
		return r.DF == 5 && r.Mu0 == 3.5
	})).Return("b.png", nil)

	var out bytes.Buffer
	outcome, err := newService(plotter, loader, &out).Run(context.Background(), OneSampleRequest{
		DataFile: "wine.csv", Variable: "pH", Hypothesis: winePH, RunID: "run-1",
	})
	require.NoError(t, err)

	assert.Equal(t, core.RunID("run-1"), outcome.RunID)
	assert.Equal(t, "a.png", outcome.AssumptionsPlot)
	assert.Contains(t, out.String(), "Plots saved as 'a.png'")
	assert.Contains(t, out.String(), "✗ Sample size is small (n < 30)")
	loader.AssertExpectations(t)
	plotter.AssertExpectations(t)
}

func TestRun_LoaderErrorsAreFatal(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"missing file", core.NewFileNotFoundError("wine.csv"), errors.CodeNotFound},
		{"missing column", core.NewColumnNotFoundError("pH", "wine.csv"), errors.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loader := &MockLoader{}
			loader.On("LoadSample", mock.Anything, mock.Anything, mock.Anything).Return(stats.Sample{}, tc.err)
			plotter := &MockPlotter{}

			var out bytes.Buffer
			_, err := newService(plotter, loader, &out).Run(context.Background(), OneSampleRequest{DataFile: "wine.csv", Variable: "pH", Hypothesis: winePH})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.code, errors.GetCode(err))
			assert.Empty(t, out.String())
			plotter.AssertNotCalled(t, "PlotAssumptions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRun_EmptyAndDegenerateSamples(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		target error
	}{
		{"empty", nil, core.ErrEmptySample},
		{"constant", []float64{3.25, 3.25, 3.25}, core.ErrDegenerateSample},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loader := &MockLoader{}
			loader.On("LoadSample", mock.Anything, mock.Anything, mock.Anything).
				Return(stats.NewSample("pH", "mem", tc.values, 0), nil)

			_, err := newService(&MockPlotter{}, loader, &bytes.Buffer{}).Run(context.Background(),
				OneSampleRequest{DataFile: "mem", Variable: "pH", Hypothesis: winePH})
			assert.ErrorIs(t, err, tc.target)
		})
	}
}

func TestRun_PlotterErrorAborts(t *testing.T) {
	loader := &MockLoader{}
	loader.On("LoadSample", mock.Anything, mock.Anything, mock.Anything).
		Return(stats.NewSample("pH", "mem", []float64{3.1, 3.3, 3.2, 3.4}, 0), nil)

	writeErr := core.NewOutputError("/ro/question2_assumptions.png", stderrors.New("read-only file system"))
	plotter := &MockPlotter{}
	plotter.On("PlotAssumptions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", writeErr)

	var out bytes.Buffer
	_, err := newService(plotter, loader, &out).Run(context.Background(), OneSampleRequest{DataFile: "mem", Variable: "pH", Hypothesis: winePH})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrOutput)
	assert.Equal(t, errors.CodeOutputError, errors.GetCode(err))
	assert.Empty(t, out.String())
	plotter.AssertNotCalled(t, "PlotTestDistribution", mock.Anything, mock.Anything)
}
