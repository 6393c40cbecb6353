package ml

import (
	"fmt"
	"net/http"
	"time"
)

const (
	TypeDecisionTree = "decision_tree"
	TypeSVC          = "svc"
	TypeRemote       = "remote"
)

type loadOptions struct {
	features   int
	timeout    time.Duration
	httpClient *http.Client
}

// LoadOption tunes LoadModel.
type LoadOption func(*loadOptions)

// WithFeatureCount makes LoadModel reject artifacts trained on a different width.
func WithFeatureCount(n int) LoadOption {
	return func(o *loadOptions) { o.features = n }
}

// WithTimeout bounds each remote predict call.
func WithTimeout(d time.Duration) LoadOption {
	return func(o *loadOptions) { o.timeout = d }
}

// WithHTTPClient replaces the client used by remote classifiers.
func WithHTTPClient(c *http.Client) LoadOption {
	return func(o *loadOptions) { o.httpClient = c }
}

// IsFileBacked reports whether path names a local artifact file for modelType.
func IsFileBacked(modelType string) bool {
	return modelType == TypeDecisionTree || modelType == TypeSVC
}

// LoadModel loads the classifier artifact at path. For the remote type path
// is the base URL of the inference service.
func LoadModel(modelType, path string, opts ...LoadOption) (Classifier, error) {
	o := loadOptions{timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		model Classifier
		err   error
	)
	switch modelType {
	case TypeDecisionTree:
		model, err = LoadDecisionTree(path)
	case TypeSVC:
		model, err = LoadSVC(path)
	case TypeRemote:
		client := o.httpClient
		if client == nil {
			client = &http.Client{Timeout: o.timeout}
		}
		model, err = NewRemoteClassifier(path, o.features, client)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelType)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s model from %s: %w", modelType, path, err)
	}

	if sized, ok := model.(Sized); ok && o.features > 0 && sized.NumFeatures() > 0 && sized.NumFeatures() != o.features {
		return nil, fmt.Errorf("load %s model from %s: %w", modelType, path,
			invalidArtifact("trained on %d features, expected %d", sized.NumFeatures(), o.features))
	}
	return model, nil
}
