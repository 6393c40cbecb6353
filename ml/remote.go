package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// RemoteClassifier delegates prediction to an HTTP inference service.
type RemoteClassifier struct {
	endpoint  string
	nFeatures int
	http      *http.Client
}

type remoteRequest struct {
	Features []float64 `json:"features"`
}

type remoteResponse struct {
	Class *int   `json:"class"`
	Error string `json:"error,omitempty"`
}

// NewRemoteClassifier checks the endpoint URL; it does not contact the service.
func NewRemoteClassifier(endpoint string, nFeatures int, client *http.Client) (*RemoteClassifier, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, invalidArtifact("parse endpoint: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, invalidArtifact("endpoint %q must be http or https", endpoint)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteClassifier{
		endpoint:  strings.TrimRight(endpoint, "/"),
		nFeatures: nFeatures,
		http:      client,
	}, nil
}

func (c *RemoteClassifier) NumFeatures() int { return c.nFeatures }

func (c *RemoteClassifier) Predict(ctx context.Context, features []float64) (int, error) {
	if err := checkDimension(c.nFeatures, features); err != nil {
		return 0, err
	}

	body, err := json.Marshal(remoteRequest{Features: features})
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var out remoteResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != "" {
			return 0, fmt.Errorf("unexpected status %s: %s", resp.Status, out.Error)
		}
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if decodeErr != nil {
		return 0, fmt.Errorf("decode response: %w", decodeErr)
	}
	if out.Class == nil {
		return 0, fmt.Errorf("decode response: missing class")
	}
	return *out.Class, nil
}
