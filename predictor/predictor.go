// Package predictor turns a filled-in assessment record into a risk label
// using a classifier loaded once at startup.
package predictor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"nutririsk/assessment"
	"nutririsk/ml"
)

// Recorder receives assessment outcomes; *monitoring.Metrics implements it.
type Recorder interface {
	ObserveAssessment(risk string, d time.Duration)
	ObserveFailure(kind string)
	ObserveCacheHit()
}

type Options struct {
	// CacheSize bounds the prediction cache; 0 disables it.
	CacheSize int
	Logger    *zap.Logger
	Recorder  Recorder
}

// Assessment is the outcome of one encode, predict, decode round trip.
type Assessment struct {
	Record   assessment.Record `json:"record"`
	Features []float64         `json:"features"`
	Class    int               `json:"class"`
	Risk     assessment.Risk   `json:"risk"`
	Color    string            `json:"color"`
	Severity int               `json:"severity"`
	Cached   bool              `json:"cached"`
	Duration time.Duration     `json:"-"`
}

// Predictor owns the classifier. It holds no per-request state and is safe
// for concurrent use.
type Predictor struct {
	classifier ml.Classifier
	cache      *lru.Cache[string, int]
	logger     *zap.Logger
	recorder   Recorder
}

// New wraps classifier. A nil classifier yields a predictor whose every call
// fails with assessment.ErrModelUnavailable.
func New(classifier ml.Classifier, opts Options) (*Predictor, error) {
	p := &Predictor{
		classifier: classifier,
		logger:     opts.Logger,
		recorder:   opts.Recorder,
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, int](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create prediction cache: %w", err)
		}
		p.cache = cache
	}
	return p, nil
}

// Available reports whether a classifier is loaded.
func (p *Predictor) Available() bool {
	return p.classifier != nil
}

// Predict runs the classifier on an already encoded vector.
func (p *Predictor) Predict(ctx context.Context, features []float64) (int, error) {
	class, _, err := p.predict(ctx, features)
	return class, err
}

func (p *Predictor) predict(ctx context.Context, features []float64) (int, bool, error) {
	if p.classifier == nil {
		return 0, false, assessment.ErrModelUnavailable
	}

	var key string
	if p.cache != nil {
		key = cacheKey(features)
		if class, ok := p.cache.Get(key); ok {
			return class, true, nil
		}
	}

	class, err := p.classifier.Predict(ctx, features)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", assessment.ErrPrediction, err)
	}
	if p.cache != nil {
		p.cache.Add(key, class)
	}
	return class, false, nil
}

// Assess encodes record, predicts and decodes the class into a risk label.
// The classifier is checked before encoding, and encoding happens before any
// classifier call.
func (p *Predictor) Assess(ctx context.Context, record assessment.Record) (Assessment, error) {
	start := time.Now()

	if p.classifier == nil {
		return Assessment{}, p.fail(assessment.ErrModelUnavailable)
	}

	features, err := assessment.Encode(record)
	if err != nil {
		return Assessment{}, p.fail(err)
	}

	class, cached, err := p.predict(ctx, features)
	if err != nil {
		return Assessment{}, p.fail(err)
	}
	if cached && p.recorder != nil {
		p.recorder.ObserveCacheHit()
	}

	risk, err := assessment.Decode(class)
	if err != nil {
		p.logger.Error("classifier returned a class outside the label table",
			zap.Int("class", class),
			zap.Float64s("features", features))
		return Assessment{}, p.fail(err)
	}

	result := Assessment{
		Record:   record,
		Features: features,
		Class:    class,
		Risk:     risk,
		Color:    risk.Color(),
		Severity: risk.Severity(),
		Cached:   cached,
		Duration: time.Since(start),
	}
	if p.recorder != nil {
		p.recorder.ObserveAssessment(string(risk), result.Duration)
	}
	p.logger.Debug("assessment complete",
		zap.String("risk", string(risk)),
		zap.Int("class", class),
		zap.Bool("cached", cached),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (p *Predictor) fail(err error) error {
	if p.recorder != nil {
		p.recorder.ObserveFailure(assessment.ErrorKind(err))
	}
	p.logger.Debug("assessment failed", zap.Error(err))
	return err
}

func cacheKey(features []float64) string {
	var b strings.Builder
	for i, v := range features {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}
