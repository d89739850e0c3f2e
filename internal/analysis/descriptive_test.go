package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winehypo/domain/core"
	domain "winehypo/domain/stats"
	"winehypo/internal/errors"
)

func TestDescribe_KnownValues(t *testing.T) {
	desc, err := NewDescriptiveAnalyzer(gonumDist).Describe(sampleOf(2, 4, 4, 4, 5, 5, 7, 9))
	require.NoError(t, err)

	assert.Equal(t, 8, desc.N)
	assert.InDelta(t, 5.0, desc.Mean, 1e-12)
	// Bessel-corrected: sqrt(32/7)
	assert.InDelta(t, math.Sqrt(32.0/7.0), desc.StdDev, 1e-12)
	assert.InDelta(t, 4.5, desc.Median, 1e-12)
	assert.Equal(t, 2.0, desc.Min)
	assert.Equal(t, 9.0, desc.Max)
	assert.Greater(t, desc.Skewness, 0.0)
	assert.Equal(t, domain.SkewRight, desc.SkewDirection())
}

func TestDescribe_EmptySample(t *testing.T) {
	_, err := NewDescriptiveAnalyzer(gonumDist).Describe(sampleOf())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptySample)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestDescribe_NormalSamplePassesJarqueBera(t *testing.T) {
	desc, err := NewDescriptiveAnalyzer(gonumDist).Describe(sampleOf(normalScores(500, 3.3, 0.15)...))
	require.NoError(t, err)

	assert.InDelta(t, 0, desc.Skewness, 1e-6)
	assert.Equal(t, domain.SkewSymmetric, desc.SkewDirection())
	assert.Greater(t, desc.Normality.PValue, 0.05)
}

func TestDescribe_SkewedSampleFailsJarqueBera(t *testing.T) {
	n := 500
	values := make([]float64, n)
	for i := range values {
		p := (float64(i) + 0.5) / float64(n)
		values[i] = -math.Log(1 - p) // exponential quantiles
	}

	desc, err := NewDescriptiveAnalyzer(gonumDist).Describe(sampleOf(values...))
	require.NoError(t, err)

	assert.Greater(t, desc.Skewness, 1.0)
	assert.Greater(t, desc.Normality.JarqueBera, 100.0)
	assert.Less(t, desc.Normality.PValue, 0.05)
}

func TestDescribe_ConstantSampleHasNoShape(t *testing.T) {
	desc, err := NewDescriptiveAnalyzer(gonumDist).Describe(sampleOf(4, 4, 4, 4, 4))
	require.NoError(t, err)

	assert.Equal(t, 0.0, desc.StdDev)
	assert.Equal(t, 0.0, desc.Skewness)
	assert.Equal(t, 1.0, desc.Normality.PValue)
}

func TestDescribe_InexactConstantSampleIsExact(t *testing.T) {
	values := make([]float64, 1599)
	for i := range values {
		values[i] = 3.3
	}
	desc, err := NewDescriptiveAnalyzer(gonumDist).Describe(sampleOf(values...))
	require.NoError(t, err)

	assert.Equal(t, 3.3, desc.Mean)
	assert.Equal(t, 0.0, desc.StdDev)
	assert.Equal(t, 1.0, desc.Normality.PValue)
}
