package ml

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeClassSVC has one support vector per class and hand-computed votes.
func threeClassSVC(t *testing.T) *SVC {
	t.Helper()
	model := &SVC{
		Classes:        []int{0, 1, 2},
		Kernel:         KernelLinear,
		NSupport:       []int{1, 1, 1},
		SupportVectors: [][]float64{{-1, 0}, {1, 0}, {0, 1}},
		DualCoef: [][]float64{
			{1, -1, -1},
			{1, 1, -1},
		},
		Intercept: []float64{0, 0, 0},
	}
	require.NoError(t, model.init())
	return model
}

func TestSVCPredictOneVsOne(t *testing.T) {
	model := threeClassSVC(t)
	assert.Equal(t, 2, model.NumFeatures())

	tests := []struct {
		name     string
		features []float64
		want     int
	}{
		{"class zero side", []float64{-2, 0}, 0},
		{"class one side", []float64{2, 0}, 1},
		{"class two side", []float64{0, 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.Predict(context.Background(), tt.features)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSVCPredictIsDeterministic(t *testing.T) {
	model := threeClassSVC(t)
	first, err := model.Predict(context.Background(), []float64{0.3, -0.4})
	require.NoError(t, err)
	second, err := model.Predict(context.Background(), []float64{0.3, -0.4})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSVCKernels(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{3, -1}

	rbf := &SVC{Kernel: KernelRBF, Gamma: 0.5}
	assert.InDelta(t, 1.0, rbf.kernel(a, a), 1e-12)
	assert.InDelta(t, math.Exp(-0.5*13), rbf.kernel(a, b), 1e-12)

	poly := &SVC{Kernel: KernelPoly, Gamma: 1, Coef0: 1, Degree: 2}
	assert.InDelta(t, 4.0, poly.kernel(a, b), 1e-12)

	sigmoid := &SVC{Kernel: KernelSigmoid, Gamma: 0.1, Coef0: 0}
	assert.InDelta(t, math.Tanh(0.1), sigmoid.kernel(a, b), 1e-12)

	linear := &SVC{Kernel: KernelLinear}
	assert.InDelta(t, 1.0, linear.kernel(a, b), 1e-12)
}

func TestSVCInitRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SVC)
	}{
		{"unknown kernel", func(m *SVC) { m.Kernel = "laplace" }},
		{"support count mismatch", func(m *SVC) { m.NSupport = []int{1, 1, 2} }},
		{"dual coef rows", func(m *SVC) { m.DualCoef = m.DualCoef[:1] }},
		{"intercept count", func(m *SVC) { m.Intercept = []float64{0} }},
		{"ragged support vector", func(m *SVC) { m.SupportVectors[1] = []float64{1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &SVC{
				Classes:        []int{0, 1, 2},
				Kernel:         KernelLinear,
				NSupport:       []int{1, 1, 1},
				SupportVectors: [][]float64{{-1, 0}, {1, 0}, {0, 1}},
				DualCoef:       [][]float64{{1, -1, -1}, {1, 1, -1}},
				Intercept:      []float64{0, 0, 0},
			}
			tt.mutate(model)
			err := model.init()
			assert.True(t, errors.Is(err, ErrInvalidArtifact), "got %v", err)
		})
	}
}

func TestSVCRejectsWrongDimension(t *testing.T) {
	model := threeClassSVC(t)
	_, err := model.Predict(context.Background(), []float64{1, 2, 3})
	var dimErr *DimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 2, dimErr.Want)
}
