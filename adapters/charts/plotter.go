package charts

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"winehypo/domain/core"
	"winehypo/domain/stats"
	"winehypo/internal"
	"winehypo/internal/analysis"
	"winehypo/internal/errors"
	"winehypo/ports"
)

const (
	histogramBins = 30
	densityPoints = 1000
	densityDomain = 5.0
)

// Options controls where figures go and how large they are
type Options struct {
	AssumptionsPath       string
	TestVisualizationPath string
	DPI                   float64
}

// Plotter renders the t-test figures as PNG files with go-chart
type Plotter struct {
	dist ports.DistributionPort
	opts Options
	log  *internal.Logger
}

// NewPlotter creates a go-chart backed plotter
func NewPlotter(dist ports.DistributionPort, opts Options, log *internal.Logger) *Plotter {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Plotter{dist: dist, opts: opts, log: log}
}

// pixels converts a figure size in inches to pixels at the configured DPI
func (p *Plotter) pixels(inches float64) int {
	return int(math.Round(inches * p.opts.DPI))
}

// PlotAssumptions draws the histogram and normal QQ plot side by side
func (p *Plotter) PlotAssumptions(ctx context.Context, sample stats.Sample, desc stats.Descriptives, result stats.TestResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	left, err := renderChart(p.histogramChart(sample, desc, result))
	if err != nil {
		return "", errors.Wrap(err, "render histogram")
	}
	right, err := renderChart(p.qqChart(sample))
	if err != nil {
		return "", errors.Wrap(err, "render QQ plot")
	}

	path := p.opts.AssumptionsPath
	if err := writePNG(path, sideBySide(left, right)); err != nil {
		return "", err
	}
	p.log.Debug("[Plotter] wrote %s", path)
	return path, nil
}

// PlotTestDistribution draws the t density with shaded rejection regions
func (p *Plotter) PlotTestDistribution(ctx context.Context, result stats.TestResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	img, err := renderChart(p.distributionChart(result))
	if err != nil {
		return "", errors.Wrap(err, "render t distribution")
	}

	path := p.opts.TestVisualizationPath
	if err := writePNG(path, img); err != nil {
		return "", err
	}
	p.log.Debug("[Plotter] wrote %s", path)
	return path, nil
}

func (p *Plotter) histogramChart(sample stats.Sample, desc stats.Descriptives, result stats.TestResult) chart.Chart {
	variable := sample.Variable().String()
	hist := analysis.NewHistogram(sample.Values(), histogramBins)
	yMax := float64(hist.MaxCount()) * 1.05
	if yMax == 0 {
		yMax = 1
	}

	// Outline of adjacent bars as one filled step series
	xs := []float64{hist.Edges[0]}
	ys := []float64{0}
	for i, c := range hist.Counts {
		xs = append(xs, hist.Edges[i], hist.Edges[i+1])
		ys = append(ys, float64(c), float64(c))
	}
	xs = append(xs, hist.Edges[len(hist.Edges)-1])
	ys = append(ys, 0)

	lo := math.Min(hist.Edges[0], result.Mu0)
	hi := math.Max(hist.Edges[len(hist.Edges)-1], result.Mu0)
	pad := (hi - lo) * 0.05

	ch := chart.Chart{
		Title:  fmt.Sprintf("Histogram of %s", variable),
		Width:  p.pixels(6),
		Height: p.pixels(5),
		DPI:    p.opts.DPI,
		XAxis: chart.XAxis{
			Name:           variable,
			Range:          &chart.ContinuousRange{Min: lo - pad, Max: hi + pad},
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Frequency",
			Range:          &chart.ContinuousRange{Min: 0, Max: yMax},
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    variable,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlack,
					StrokeWidth: 1,
					FillColor:   chart.ColorBlue.WithAlpha(178),
				},
			},
			verticalLine(fmt.Sprintf("Mean = %.3f", desc.Mean), desc.Mean, 0, yMax, dashed(chart.ColorRed, 2)),
			verticalLine(fmt.Sprintf("H₀: μ = %v", result.Mu0), result.Mu0, 0, yMax, dashed(chart.ColorGreen, 2)),
		},
	}
	withLegend(&ch)
	return ch
}

func (p *Plotter) qqChart(sample stats.Sample) chart.Chart {
	variable := sample.Variable().String()
	qq := analysis.NormalQQ(sample, p.dist)

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Ordered values",
			XValues: qq.Theoretical,
			YValues: qq.Ordered,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    chart.ColorBlue,
			},
		},
	}
	if n := len(qq.Theoretical); n >= 2 {
		x0, x1 := qq.Theoretical[0], qq.Theoretical[n-1]
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("Fit: %.4f + %.4f·x", qq.Intercept, qq.Slope),
			XValues: []float64{x0, x1},
			YValues: []float64{qq.Intercept + qq.Slope*x0, qq.Intercept + qq.Slope*x1},
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				StrokeWidth: 2,
			},
		})
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("QQ Plot of %s", variable),
		Width:  p.pixels(6),
		Height: p.pixels(5),
		DPI:    p.opts.DPI,
		XAxis: chart.XAxis{
			Name:           "Theoretical quantiles",
			Range:          paddedRange(qq.Theoretical),
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Ordered Values",
			Range:          paddedRange(qq.Ordered),
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}
	withLegend(&ch)
	return ch
}

func (p *Plotter) distributionChart(result stats.TestResult) chart.Chart {
	tDist := p.dist.StudentsT(float64(result.DF))
	cv := result.Critical

	xs := linspace(-densityDomain, densityDomain, densityPoints)
	ys := make([]float64, len(xs))
	yMax := 0.0
	for i, x := range xs {
		ys[i] = tDist.Prob(x)
		yMax = math.Max(yMax, ys[i])
	}
	yMax *= 1.05

	var lowX, lowY, highX, highY []float64
	for i, x := range xs {
		if x <= -cv {
			lowX, lowY = append(lowX, x), append(lowY, ys[i])
		}
		if x >= cv {
			highX, highY = append(highX, x), append(highY, ys[i])
		}
	}

	rejection := chart.Style{
		StrokeColor: chart.ColorRed.WithAlpha(77),
		StrokeWidth: 1,
		FillColor:   chart.ColorRed.WithAlpha(77),
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    fmt.Sprintf("t-distribution (df=%d)", result.DF),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
		},
	}
	if len(lowX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("Rejection region (α/2 = %v)", result.Alpha/2),
			XValues: lowX,
			YValues: lowY,
			Style:   rejection,
		})
	}
	if len(highX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Upper rejection region",
			XValues: highX,
			YValues: highY,
			Style:   rejection,
		})
	}
	series = append(series,
		verticalLine(fmt.Sprintf("Test statistic = %.3f", result.T), result.T, 0, yMax, dashed(chart.ColorGreen, 2)),
		verticalLine(fmt.Sprintf("-t critical = %.3f", -cv), -cv, 0, yMax, dotted(chart.ColorRed, 1.5)),
		verticalLine(fmt.Sprintf("+t critical = %.3f", cv), cv, 0, yMax, dotted(chart.ColorRed, 1.5)),
	)

	// Keep the observed statistic visible when it falls outside the density domain
	lo := math.Min(-densityDomain, result.T-0.5)
	hi := math.Max(densityDomain, result.T+0.5)

	ch := chart.Chart{
		Title:  fmt.Sprintf("One-Sample t-Test: H₀: μ = %v vs H₁: μ ≠ %v", result.Mu0, result.Mu0),
		Width:  p.pixels(10),
		Height: p.pixels(6),
		DPI:    p.opts.DPI,
		XAxis: chart.XAxis{
			Name:           "t-value",
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Probability Density",
			Range:          &chart.ContinuousRange{Min: 0, Max: yMax},
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}
	withLegend(&ch)
	return ch
}

var _ ports.PlotterPort = (*Plotter)(nil)

// Discard is a PlotterPort that draws nothing, for headless runs and tests
type Discard struct{}

func (Discard) PlotAssumptions(ctx context.Context, _ stats.Sample, _ stats.Descriptives, _ stats.TestResult) (string, error) {
	return "", ctx.Err()
}

func (Discard) PlotTestDistribution(ctx context.Context, _ stats.TestResult) (string, error) {
	return "", ctx.Err()
}

var _ ports.PlotterPort = Discard{}

// ----------------------------------------------------------------------------
// helpers
// ----------------------------------------------------------------------------

func withLegend(ch *chart.Chart) {
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor: chart.ColorAlternateGray.WithAlpha(77),
		StrokeWidth: 1,
	}
}

func dashed(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeColor:     col,
		StrokeWidth:     width,
		StrokeDashArray: []float64{6, 4},
	}
}

func dotted(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeColor:     col,
		StrokeWidth:     width,
		StrokeDashArray: []float64{1, 3},
	}
}

func verticalLine(name string, x, y0, y1 float64, style chart.Style) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{x, x},
		YValues: []float64{y0, y1},
		Style:   style,
	}
}

// paddedRange spans values with a 5% margin; go-chart rejects zero-width ranges
func paddedRange(values []float64) *chart.ContinuousRange {
	if len(values) == 0 {
		return &chart.ContinuousRange{Min: -1, Max: 1}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func renderChart(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// sideBySide composes two rendered charts on a white canvas
func sideBySide(left, right image.Image) image.Image {
	lb, rb := left.Bounds(), right.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, lb.Dx()+rb.Dx(), max(lb.Dy(), rb.Dy())))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, lb.Dx(), lb.Dy()), left, lb.Min, draw.Over)
	draw.Draw(out, image.Rect(lb.Dx(), 0, lb.Dx()+rb.Dx(), rb.Dy()), right, rb.Min, draw.Over)
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(core.NewOutputError(path, err), "save plot")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrap(core.NewOutputError(path, err), "encode plot")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(core.NewOutputError(path, err), "close plot")
	}
	return nil
}
