package prediction

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/caponcito/Plantaciones-agronomas/config"
)

var (
	// ErrModelNotTrained is returned by prediction paths before any
	// successful training run.
	ErrModelNotTrained = errors.New("prediction: model not trained")
	// ErrNoTrainingData is returned when the store holds no parcels.
	ErrNoTrainingData = errors.New("prediction: no training data")
)

// Model is an immutable bagged ensemble of regression trees together with
// the crop encoder it was fitted with. A Model never changes after Fit;
// retraining produces a new one.
type Model struct {
	trees     []*treeNode
	encoder   *CropEncoder
	samples   int
	trainedAt time.Time
}

// Fit trains the ensemble: each tree sees a bootstrap resample drawn from
// a source seeded by params.Seed, so the same inputs and seed always
// reproduce the same model.
func Fit(xs [][]float64, ys []float64, enc *CropEncoder, params config.ModelParams) (*Model, error) {
	if len(xs) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("prediction: %d feature rows for %d targets", len(xs), len(ys))
	}
	for i, row := range xs {
		if len(row) != featureCount {
			return nil, fmt.Errorf("prediction: row %d has %d features, want %d", i, len(row), featureCount)
		}
	}

	trees := params.Trees
	if trees <= 0 {
		trees = 100
	}
	maxDepth := params.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 10
	}

	rng := rand.New(rand.NewSource(params.Seed))
	m := &Model{
		trees:     make([]*treeNode, 0, trees),
		encoder:   enc,
		samples:   len(xs),
		trainedAt: time.Now().UTC(),
	}

	n := len(xs)
	for t := 0; t < trees; t++ {
		bootstrap := make([]int, n)
		for i := range bootstrap {
			bootstrap[i] = rng.Intn(n)
		}
		m.trees = append(m.trees, buildTree(xs, ys, bootstrap, 0, maxDepth))
	}

	return m, nil
}

// Predict averages the trees and clamps at zero: a yield below nothing is
// never reported.
func (m *Model) Predict(x []float64) float64 {
	var sum float64
	for _, t := range m.trees {
		sum += t.predict(x)
	}
	pred := sum / float64(len(m.trees))
	if pred < 0 {
		return 0
	}
	return pred
}

// Encoder returns the crop encoder frozen into this model.
func (m *Model) Encoder() *CropEncoder { return m.encoder }

// Samples is how many parcels the model was fitted on.
func (m *Model) Samples() int { return m.samples }

// TrainedAt is the fit timestamp.
func (m *Model) TrainedAt() time.Time { return m.trainedAt }
