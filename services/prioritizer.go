package services

import (
	"sort"

	"github.com/caponcito/Plantaciones-agronomas/models"
	"github.com/caponcito/Plantaciones-agronomas/store"
)

// ParcelPrioritizer orders parcels by expected yield density so harvest
// capacity goes to the densest fields first.
type ParcelPrioritizer struct {
	store     *store.Store
	estimator YieldEstimator
}

// NewParcelPrioritizer wires a prioritizer. estimator may be nil; the
// ranking then uses stated production throughout.
func NewParcelPrioritizer(st *store.Store, estimator YieldEstimator) *ParcelPrioritizer {
	return &ParcelPrioritizer{store: st, estimator: estimator}
}

// estimate returns predicted production when the model can serve this
// parcel, stated production otherwise. A prediction failure for one parcel
// never aborts a ranking run.
func (p *ParcelPrioritizer) estimate(parcel *models.Parcel) (float64, bool) {
	if p.estimator != nil {
		if predicted, err := p.estimator.Predict(parcel.NodeID); err == nil {
			return predicted, true
		}
	}
	return parcel.ProductionTons, false
}

// Rank returns the topN parcels by estimated tons per hectare, densest
// first, ties broken by parcel ID. topN is clamped to the available count;
// parcels without usable area are skipped.
func (p *ParcelPrioritizer) Rank(topN int) []models.ParcelRanking {
	parcels := p.store.Parcels()
	out := make([]models.ParcelRanking, 0, len(parcels))
	for _, parcel := range parcels {
		if parcel.AreaHa <= 0 {
			continue
		}
		tons, fromModel := p.estimate(parcel)
		out = append(out, models.ParcelRanking{
			ParcelID:      parcel.NodeID,
			Crop:          parcel.Crop,
			AreaHa:        parcel.AreaHa,
			EstimatedTons: tons,
			YieldPerHa:    tons / parcel.AreaHa,
			FromModel:     fromModel,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].YieldPerHa != out[j].YieldPerHa {
			return out[i].YieldPerHa > out[j].YieldPerHa
		}
		return out[i].ParcelID < out[j].ParcelID
	})

	if topN < 0 {
		topN = 0
	}
	if topN > len(out) {
		topN = len(out)
	}
	return out[:topN]
}

// Overview reports the estimate for every parcel, in store order, with the
// coordinates map layers need.
func (p *ParcelPrioritizer) Overview() []models.ParcelYield {
	parcels := p.store.Parcels()
	out := make([]models.ParcelYield, 0, len(parcels))
	for _, parcel := range parcels {
		tons, fromModel := p.estimate(parcel)
		out = append(out, models.ParcelYield{
			ParcelID:      parcel.NodeID,
			Crop:          parcel.Crop,
			AreaHa:        parcel.AreaHa,
			StatedTons:    parcel.ProductionTons,
			EstimatedTons: tons,
			FromModel:     fromModel,
			Lat:           parcel.Coord.Lat(),
			Lon:           parcel.Coord.Lon(),
		})
	}
	return out
}
