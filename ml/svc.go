package ml

import (
	"context"
	"encoding/json"
	"math"
	"os"
)

const (
	KernelLinear  = "linear"
	KernelRBF     = "rbf"
	KernelPoly    = "poly"
	KernelSigmoid = "sigmoid"
)

// SVC is a kernel support vector classifier exported in libsvm layout:
// support vectors grouped by class, one-vs-one dual coefficients and one
// intercept per class pair.
type SVC struct {
	Classes        []int       `json:"classes"`
	NFeatures      int         `json:"n_features"`
	Kernel         string      `json:"kernel"`
	Gamma          float64     `json:"gamma"`
	Coef0          float64     `json:"coef0"`
	Degree         int         `json:"degree"`
	NSupport       []int       `json:"n_support"`
	SupportVectors [][]float64 `json:"support_vectors"`
	DualCoef       [][]float64 `json:"dual_coef"`
	Intercept      []float64   `json:"intercept"`

	starts []int
}

// LoadSVC reads and validates an SVC artifact.
func LoadSVC(path string) (*SVC, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model SVC
	if err := json.Unmarshal(payload, &model); err != nil {
		return nil, invalidArtifact("decode svc: %v", err)
	}
	if err := model.init(); err != nil {
		return nil, err
	}
	return &model, nil
}

func (m *SVC) init() error {
	n := len(m.Classes)
	if n < 2 {
		return invalidArtifact("svc needs at least 2 classes, got %d", n)
	}
	switch m.Kernel {
	case KernelLinear, KernelRBF, KernelSigmoid:
	case KernelPoly:
		if m.Degree == 0 {
			m.Degree = 3
		}
	default:
		return invalidArtifact("unknown kernel %q", m.Kernel)
	}
	if len(m.NSupport) != n {
		return invalidArtifact("n_support has %d entries for %d classes", len(m.NSupport), n)
	}

	m.starts = make([]int, n)
	total := 0
	for i, count := range m.NSupport {
		if count < 0 {
			return invalidArtifact("negative support count for class %d", i)
		}
		m.starts[i] = total
		total += count
	}
	if total != len(m.SupportVectors) {
		return invalidArtifact("n_support sums to %d but %d support vectors present", total, len(m.SupportVectors))
	}
	if m.NFeatures == 0 && total > 0 {
		m.NFeatures = len(m.SupportVectors[0])
	}
	for i, sv := range m.SupportVectors {
		if len(sv) != m.NFeatures {
			return invalidArtifact("support vector %d has %d values, expected %d", i, len(sv), m.NFeatures)
		}
	}
	if len(m.DualCoef) != n-1 {
		return invalidArtifact("dual_coef has %d rows, expected %d", len(m.DualCoef), n-1)
	}
	for i, row := range m.DualCoef {
		if len(row) != total {
			return invalidArtifact("dual_coef row %d has %d values, expected %d", i, len(row), total)
		}
	}
	if pairs := n * (n - 1) / 2; len(m.Intercept) != pairs {
		return invalidArtifact("intercept has %d values, expected %d", len(m.Intercept), pairs)
	}
	return nil
}

func (m *SVC) NumFeatures() int { return m.NFeatures }

// Predict votes over every class pair and returns the class with most votes.
// Ties go to the lower class position.
func (m *SVC) Predict(_ context.Context, features []float64) (int, error) {
	if err := checkDimension(m.NFeatures, features); err != nil {
		return 0, err
	}

	k := make([]float64, len(m.SupportVectors))
	for i, sv := range m.SupportVectors {
		k[i] = m.kernel(sv, features)
	}

	n := len(m.Classes)
	votes := make([]int, n)
	p := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum := m.Intercept[p]
			for s := m.starts[i]; s < m.starts[i]+m.NSupport[i]; s++ {
				sum += m.DualCoef[j-1][s] * k[s]
			}
			for s := m.starts[j]; s < m.starts[j]+m.NSupport[j]; s++ {
				sum += m.DualCoef[i][s] * k[s]
			}
			if sum > 0 {
				votes[i]++
			} else {
				votes[j]++
			}
			p++
		}
	}

	best := 0
	for i := 1; i < n; i++ {
		if votes[i] > votes[best] {
			best = i
		}
	}
	return m.Classes[best], nil
}

func (m *SVC) kernel(a, b []float64) float64 {
	switch m.Kernel {
	case KernelRBF:
		dist := 0.0
		for i := range a {
			d := a[i] - b[i]
			dist += d * d
		}
		return math.Exp(-m.Gamma * dist)
	case KernelPoly:
		return math.Pow(m.Gamma*dot(a, b)+m.Coef0, float64(m.Degree))
	case KernelSigmoid:
		return math.Tanh(m.Gamma*dot(a, b) + m.Coef0)
	default:
		return dot(a, b)
	}
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
