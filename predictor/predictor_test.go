package predictor

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutririsk/assessment"
	"nutririsk/ml"
	"nutririsk/monitoring"
)

type fakeClassifier struct {
	class int
	err   error
	calls atomic.Int32
	last  []float64
}

func (f *fakeClassifier) Predict(_ context.Context, features []float64) (int, error) {
	f.calls.Add(1)
	f.last = features
	return f.class, f.err
}

type recorder struct {
	risks    []string
	failures []string
	hits     int
}

func (r *recorder) ObserveAssessment(risk string, _ time.Duration) { r.risks = append(r.risks, risk) }
func (r *recorder) ObserveFailure(kind string)                     { r.failures = append(r.failures, kind) }
func (r *recorder) ObserveCacheHit()                                { r.hits++ }

func baseline() assessment.Record {
	return assessment.Record{
		ParentalEducation: assessment.NoEducation,
		DietaryDiversity:  5,
		MealFrequency:     3,
	}
}

func TestAssessBaselineScenario(t *testing.T) {
	fake := &fakeClassifier{class: 1}
	p, err := New(fake, Options{})
	require.NoError(t, err)

	result, err := p.Assess(context.Background(), baseline())
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 5, 3}, fake.last)
	assert.Equal(t, fake.last, result.Features)
	assert.Contains(t, assessment.Risks(), result.Risk)
	assert.Equal(t, assessment.RiskLow, result.Risk)
	assert.Equal(t, "green", result.Color)
	assert.Equal(t, 1, result.Severity)
}

func TestAssessInvalidInputSkipsClassifier(t *testing.T) {
	fake := &fakeClassifier{class: 0}
	rec := &recorder{}
	p, err := New(fake, Options{Recorder: rec})
	require.NoError(t, err)

	var record assessment.Record
	require.ErrorIs(t, record.Set(assessment.FieldParentalEducation, "Graduate"), assessment.ErrInvalidInput)

	record = baseline()
	record.ParentalEducation = assessment.Education(9)
	_, err = p.Assess(context.Background(), record)
	require.ErrorIs(t, err, assessment.ErrInvalidInput)
	assert.Zero(t, fake.calls.Load())
	assert.Equal(t, []string{"invalid_input"}, rec.failures)
}

func TestAssessWithoutModel(t *testing.T) {
	rec := &recorder{}
	p, err := New(nil, Options{Recorder: rec})
	require.NoError(t, err)
	assert.False(t, p.Available())

	_, err = p.Assess(context.Background(), baseline())
	require.ErrorIs(t, err, assessment.ErrModelUnavailable)

	// the model check comes before encoding, so bad input still reports the missing model
	invalid := baseline()
	invalid.MealFrequency = 99
	_, err = p.Assess(context.Background(), invalid)
	require.ErrorIs(t, err, assessment.ErrModelUnavailable)

	_, err = p.Predict(context.Background(), make([]float64, assessment.FeatureCount))
	require.ErrorIs(t, err, assessment.ErrModelUnavailable)
	assert.Equal(t, []string{"model_unavailable", "model_unavailable"}, rec.failures)
}

func TestAssessPredictionError(t *testing.T) {
	cause := errors.New("boom")
	p, err := New(&fakeClassifier{err: cause}, Options{})
	require.NoError(t, err)

	_, err = p.Assess(context.Background(), baseline())
	require.ErrorIs(t, err, assessment.ErrPrediction)
	require.ErrorIs(t, err, cause)
}

func TestAssessUnknownClass(t *testing.T) {
	p, err := New(&fakeClassifier{class: 7}, Options{})
	require.NoError(t, err)

	_, err = p.Assess(context.Background(), baseline())
	require.ErrorIs(t, err, assessment.ErrUnknownClass)
	var classErr *assessment.ClassError
	require.ErrorAs(t, err, &classErr)
	assert.Equal(t, 7, classErr.Class)
}

func TestPredictIsIdempotent(t *testing.T) {
	nodes := []ml.TreeNode{
		{FeatureIdx: 7, Threshold: -2, LeftChild: 1, RightChild: 2},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: 0, IsLeaf: true},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: 2, IsLeaf: true},
	}
	tree, err := ml.NewDecisionTree(assessment.FeatureCount, nodes)
	require.NoError(t, err)
	p, err := New(tree, Options{})
	require.NoError(t, err)

	features, err := assessment.Encode(baseline())
	require.NoError(t, err)
	first, err := p.Predict(context.Background(), features)
	require.NoError(t, err)
	second, err := p.Predict(context.Background(), features)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, first)

	_, err = p.Predict(context.Background(), features[:5])
	require.ErrorIs(t, err, assessment.ErrPrediction)
	var dimErr *ml.DimensionError
	require.ErrorAs(t, err, &dimErr)
}

func TestAssessCache(t *testing.T) {
	fake := &fakeClassifier{class: 2}
	metrics := monitoring.NewMetrics()
	p, err := New(fake, Options{CacheSize: 8, Recorder: metrics})
	require.NoError(t, err)

	first, err := p.Assess(context.Background(), baseline())
	require.NoError(t, err)
	second, err := p.Assess(context.Background(), baseline())
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Risk, second.Risk)
	assert.Equal(t, int32(1), fake.calls.Load())

	other := baseline()
	other.WeightForAge = -3.4
	_, err = p.Assess(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.calls.Load())

	expected := `
# HELP nutririsk_prediction_cache_hits_total Predictions served from the result cache.
# TYPE nutririsk_prediction_cache_hits_total counter
nutririsk_prediction_cache_hits_total 1
`
	require.NoError(t, testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected),
		"nutririsk_prediction_cache_hits_total"))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "0,1,-2.5,3", cacheKey([]float64{0, 1, -2.5, 3}))
	assert.NotEqual(t, cacheKey([]float64{0.1, 2}), cacheKey([]float64{0.12}))
}
