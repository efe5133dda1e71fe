// Package prediction estimates per-parcel production with a bagged
// regression tree ensemble over graph connectivity and parcel covariates.
package prediction

import (
	"fmt"
	"sync"

	"github.com/caponcito/Plantaciones-agronomas/config"
	"github.com/caponcito/Plantaciones-agronomas/graph"
	"github.com/caponcito/Plantaciones-agronomas/models"
	"github.com/caponcito/Plantaciones-agronomas/store"
)

// Predictor owns the current model handle. Train fits a fresh model from
// the store and swaps the handle under the lock; readers that already hold
// the previous Model keep predicting against it safely.
type Predictor struct {
	store  *store.Store
	graph  *graph.Graph
	params config.ModelParams

	mu    sync.RWMutex
	model *Model
}

// NewPredictor wires a predictor. No model exists until Train runs.
func NewPredictor(st *store.Store, g *graph.Graph, params config.ModelParams) *Predictor {
	return &Predictor{store: st, graph: g, params: params}
}

// Train builds the dataset (one row per parcel, stated production as the
// target), fits a new model and installs it.
func (p *Predictor) Train() (*Model, error) {
	parcels := p.store.Parcels()
	if len(parcels) == 0 {
		return nil, ErrNoTrainingData
	}

	enc := FitCropEncoder(parcels)
	xs := make([][]float64, 0, len(parcels))
	ys := make([]float64, 0, len(parcels))
	for _, parcel := range parcels {
		xs = append(xs, features(parcel, p.graph.ConnectivityOf(parcel.NodeID), enc))
		ys = append(ys, parcel.ProductionTons)
	}

	model, err := Fit(xs, ys, enc, p.params)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.model = model
	p.mu.Unlock()
	return model, nil
}

// Model returns the current handle, nil before the first training run.
func (p *Predictor) Model() *Model {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

// Predict estimates production in tons for one parcel.
func (p *Predictor) Predict(parcelID string) (float64, error) {
	node, ok := p.graph.Node(parcelID)
	if !ok {
		return 0, fmt.Errorf("%w: %q", models.ErrNodeNotFound, parcelID)
	}
	parcel, ok := node.(*models.Parcel)
	if !ok {
		return 0, fmt.Errorf("%w: %q is a %s", models.ErrNotParcel, parcelID, node.Kind())
	}

	model := p.Model()
	if model == nil {
		return 0, ErrModelNotTrained
	}

	x := features(parcel, p.graph.ConnectivityOf(parcelID), model.Encoder())
	return model.Predict(x), nil
}
