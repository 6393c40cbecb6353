package ml

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeArtifact(t *testing.T, name string, v any) string {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadModelDecisionTree(t *testing.T) {
	path := writeArtifact(t, "tree.json", map[string]any{"n_features": 12, "nodes": riskTree()})

	model, err := LoadModel(TypeDecisionTree, path, WithFeatureCount(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := model.Predict(context.Background(), vector(-4, 5))
	if err != nil || got != 0 {
		t.Fatalf("expected class 0, got %d (%v)", got, err)
	}
}

func TestLoadModelSVC(t *testing.T) {
	path := writeArtifact(t, "svc.json", map[string]any{
		"classes":         []int{0, 1, 2},
		"kernel":          "linear",
		"n_support":       []int{1, 1, 1},
		"support_vectors": [][]float64{{-1, 0}, {1, 0}, {0, 1}},
		"dual_coef":       [][]float64{{1, -1, -1}, {1, 1, -1}},
		"intercept":       []float64{0, 0, 0},
	})

	model, err := LoadModel(TypeSVC, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := model.Predict(context.Background(), []float64{2, 0})
	if err != nil || got != 1 {
		t.Fatalf("expected class 1, got %d (%v)", got, err)
	}

	if _, err := LoadModel(TypeSVC, path, WithFeatureCount(12)); !errors.Is(err, ErrInvalidArtifact) {
		t.Fatalf("expected width mismatch to fail with ErrInvalidArtifact, got %v", err)
	}
}

func TestLoadModelErrors(t *testing.T) {
	if _, err := LoadModel("random_forest", "model.json"); !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("expected ErrUnsupportedModel, got %v", err)
	}
	if _, err := LoadModel(TypeDecisionTree, filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	garbage := filepath.Join(t.TempDir(), "garbage.json")
	if err := os.WriteFile(garbage, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel(TypeSVC, garbage); !errors.Is(err, ErrInvalidArtifact) {
		t.Fatalf("expected ErrInvalidArtifact, got %v", err)
	}
	if _, err := LoadModel(TypeRemote, "ftp://models.local"); !errors.Is(err, ErrInvalidArtifact) {
		t.Fatalf("expected ErrInvalidArtifact for bad scheme, got %v", err)
	}
}

func TestBundledTreeArtifact(t *testing.T) {
	model, err := LoadModel(TypeDecisionTree, filepath.Join("..", "models", "tree.json"), WithFeatureCount(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// every input at its form default is the most severe profile
	baseline := []float64{0, 0, 0, 0, 0, 0, 0, -5, -5, -5, 5, 3}
	got, err := model.Predict(context.Background(), baseline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected class 0, got %d", got)
	}

	healthy := []float64{2, 1, 1, 1, 1, 0, 1, 0.5, 0.2, 0.1, 6, 3}
	if got, _ = model.Predict(context.Background(), healthy); got != 1 {
		t.Fatalf("expected class 1, got %d", got)
	}
}
