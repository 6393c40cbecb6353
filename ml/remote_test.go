package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteClassifierPredict(t *testing.T) {
	received := make(chan []float64, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		var req remoteRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		received <- req.Features
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"class":2}`))
	}))
	defer srv.Close()

	model, err := LoadModel(TypeRemote, srv.URL+"/", WithFeatureCount(3), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	got, err := model.Predict(context.Background(), []float64{1, 0, -2.5})
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, []float64{1, 0, -2.5}, <-received)
}

func TestRemoteClassifierErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"expected 12 features"}`))
	}))
	defer srv.Close()

	model, err := NewRemoteClassifier(srv.URL, 0, srv.Client())
	require.NoError(t, err)

	_, err = model.Predict(context.Background(), []float64{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 12 features")

	sized, err := NewRemoteClassifier(srv.URL, 12, srv.Client())
	require.NoError(t, err)
	_, err = sized.Predict(context.Background(), []float64{1})
	var dimErr *DimensionError
	assert.ErrorAs(t, err, &dimErr)
}

func TestRemoteClassifierMissingClass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	model, err := NewRemoteClassifier(srv.URL, 0, srv.Client())
	require.NoError(t, err)
	_, err = model.Predict(context.Background(), []float64{1})
	assert.ErrorContains(t, err, "missing class")
}
