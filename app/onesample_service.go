package app

import (
	"context"
	"io"
	"time"

	"winehypo/domain/core"
	"winehypo/domain/stats"
	"winehypo/internal"
	"winehypo/internal/analysis"
	"winehypo/internal/errors"
	"winehypo/internal/report"
	"winehypo/ports"
)

// OneSampleService runs the load → describe → test → plot → report pipeline
type OneSampleService struct {
	loader   ports.SampleLoaderPort
	dist     ports.DistributionPort
	plotter  ports.PlotterPort
	reporter *report.Reporter
	out      io.Writer
	log      *internal.Logger
}

// OneSampleRequest defines the inputs for a single analysis run
type OneSampleRequest struct {
	DataFile   string
	Variable   core.VariableKey
	Hypothesis stats.Hypothesis
	RunID      core.RunID // optional, will be generated if empty
}

// Outcome contains everything a run produced
type Outcome struct {
	RunID           core.RunID         `json:"run_id"`
	Fingerprint     core.Hash          `json:"fingerprint"`
	Sample          stats.Sample       `json:"-"`
	Descriptives    stats.Descriptives `json:"descriptives"`
	Result          stats.TestResult   `json:"result"`
	AssumptionsPlot string             `json:"assumptions_plot"`
	TestPlot        string             `json:"test_plot"`
	RuntimeMs       int64              `json:"runtime_ms"`
}

// NewOneSampleService creates the analysis service; the report goes to out
func NewOneSampleService(loader ports.SampleLoaderPort, dist ports.DistributionPort, plotter ports.PlotterPort, out io.Writer, log *internal.Logger) *OneSampleService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &OneSampleService{
		loader:   loader,
		dist:     dist,
		plotter:  plotter,
		reporter: report.NewReporter(),
		out:      out,
		log:      log,
	}
}

// Run executes the pipeline. Any stage failure aborts the run.
func (s *OneSampleService) Run(ctx context.Context, req OneSampleRequest) (*Outcome, error) {
	startTime := time.Now()

	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}
	log := s.log.With("run_id", runID.String())

	// Stage 1: load
	sample, err := s.loader.LoadSample(ctx, req.DataFile, req.Variable)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s from %s", req.Variable, req.DataFile)
	}
	fingerprint := core.ComputeSampleHash(sample.Values())
	log.Info("loaded %d values of %s from %s (dropped %d missing, fingerprint %s)",
		sample.Len(), req.Variable, req.DataFile, sample.Dropped(), fingerprint.Short())

	// Stage 2: describe
	desc, err := analysis.NewDescriptiveAnalyzer(s.dist).Describe(sample)
	if err != nil {
		return nil, errors.Wrap(err, "descriptive statistics failed")
	}
	log.Debug("mean=%.6f sd=%.6f skew=%.4f jb_p=%.4f", desc.Mean, desc.StdDev, desc.Skewness, desc.Normality.PValue)

	// Stage 3: test
	result, err := analysis.NewOneSampleTTest(s.dist).Run(desc, req.Hypothesis)
	if err != nil {
		return nil, errors.Wrap(err, "hypothesis test failed")
	}
	log.Info("t=%.4f df=%d p=%.4g decision=%s", result.T, result.DF, result.PValue, result.Decision)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: plots
	assumptionsPlot, err := s.plotter.PlotAssumptions(ctx, sample, desc, result)
	if err != nil {
		return nil, errors.Wrap(err, "assumption plots failed")
	}
	testPlot, err := s.plotter.PlotTestDistribution(ctx, result)
	if err != nil {
		return nil, errors.Wrap(err, "test visualization failed")
	}

	// Stage 5: report
	err = s.reporter.Write(s.out, report.Input{
		Variable:        req.Variable.String(),
		Descriptives:    desc,
		Result:          result,
		AssumptionsPlot: assumptionsPlot,
		TestPlot:        testPlot,
	})
	if err != nil {
		return nil, errors.WithCode(errors.CodeOutputError, errors.Wrap(err, "failed to write report"))
	}

	outcome := &Outcome{
		RunID:           runID,
		Fingerprint:     fingerprint,
		Sample:          sample,
		Descriptives:    desc,
		Result:          result,
		AssumptionsPlot: assumptionsPlot,
		TestPlot:        testPlot,
		RuntimeMs:       time.Since(startTime).Milliseconds(),
	}
	log.Info("analysis complete in %dms", outcome.RuntimeMs)
	return outcome, nil
}
