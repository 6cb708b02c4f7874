package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"
)

// DemandModel is the fitted linear estimator: five calendar features in,
// one hourly session count out.
type DemandModel struct {
	Intercept    float64              `json:"intercept"`
	Coefs        [numFeatures]float64 `json:"coefficients"`
	TrainedAt    time.Time            `json:"trained_at"`
	Observations int                  `json:"observations"`
}

// Predict evaluates the model over a design matrix built by
// BuildFeatureMatrix. Raw outputs, no clamping or rounding.
func (m *DemandModel) Predict(x *mat.Dense) []float64 {
	n, _ := x.Dims()
	weights := make([]float64, numFeatures+1)
	weights[0] = m.Intercept
	copy(weights[1:], m.Coefs[:])
	beta := mat.NewVecDense(numFeatures+1, weights)

	var y mat.VecDense
	y.MulVec(x, beta)

	out := make([]float64, n)
	for i := range out {
		out[i] = y.AtVec(i)
	}
	return out
}

// ModelStore persists the single model artifact at a fixed path. Saves go
// through a temp file and an atomic rename, and are serialized by a mutex,
// so a crash mid-write or two concurrent retrains can never leave a
// corrupt or torn artifact behind.
type ModelStore struct {
	path string
	mu   sync.Mutex
}

func NewModelStore(path string) *ModelStore {
	return &ModelStore{path: path}
}

func (s *ModelStore) Path() string { return s.path }

func (s *ModelStore) Save(m *DemandModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".demand_model-*.json")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp artifact: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

// Load reads the persisted model. ErrModelNotFound when no training run
// has succeeded yet, so callers can answer "not yet trained" instead of a
// generic failure.
func (s *ModelStore) Load() (*DemandModel, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var m DemandModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &m, nil
}
