package assessment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a record field outside its declared domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelUnavailable reports that no classifier artifact is loaded.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrPrediction reports that the classifier rejected a feature vector.
	ErrPrediction = errors.New("prediction failed")
	// ErrUnknownClass reports a classifier output outside the known label table.
	ErrUnknownClass = errors.New("unknown class")
)

// FieldError describes which field of a record failed validation.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid input: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// ClassError carries the class index that Decode could not map.
type ClassError struct {
	Class int
}

func (e *ClassError) Error() string {
	return fmt.Sprintf("unknown class %d", e.Class)
}

func (e *ClassError) Unwrap() error { return ErrUnknownClass }

// ErrorKind returns a short machine-readable name for the error kinds above.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, ErrPrediction):
		return "prediction_error"
	case errors.Is(err, ErrUnknownClass):
		return "unknown_class"
	default:
		return "internal"
	}
}
