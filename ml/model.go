// Package ml loads pre-trained classifier artifacts and runs inference on
// fixed-length feature vectors. Nothing here trains a model.
package ml

import (
	"context"
	"errors"
	"fmt"
)

// Classifier maps one feature vector to a class index. Implementations are
// immutable after loading and safe for concurrent use.
type Classifier interface {
	Predict(ctx context.Context, features []float64) (int, error)
}

// Sized is implemented by classifiers that know their input width.
type Sized interface {
	NumFeatures() int
}

var (
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrInvalidArtifact  = errors.New("invalid model artifact")
)

// DimensionError is returned when a vector does not match the trained width.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("feature vector has %d values, model expects %d", e.Got, e.Want)
}

func checkDimension(want int, features []float64) error {
	if want > 0 && len(features) != want {
		return &DimensionError{Want: want, Got: len(features)}
	}
	return nil
}

func invalidArtifact(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArtifact, fmt.Sprintf(format, args...))
}
