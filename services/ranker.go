// Package services composes the core layers into the operations the API
// exposes: multi-criteria route ranking, parcel prioritization and the
// weather outlook for the operating region.
package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/caponcito/Plantaciones-agronomas/graph"
	"github.com/caponcito/Plantaciones-agronomas/models"
)

// YieldEstimator is the prediction surface the ranking services consume.
type YieldEstimator interface {
	Predict(parcelID string) (float64, error)
}

// minAccessDivisor floors the rain divisor so an impassable road produces a
// huge finite weight instead of +Inf.
const minAccessDivisor = 0.01

// RouteRanker scores a parcel's outgoing connections under a criterion.
type RouteRanker struct {
	graph     *graph.Graph
	estimator YieldEstimator
}

// NewRouteRanker wires a ranker. estimator may be nil; ranking then always
// uses stated production.
func NewRouteRanker(g *graph.Graph, estimator YieldEstimator) *RouteRanker {
	return &RouteRanker{graph: g, estimator: estimator}
}

// BestRoutes weighs every outgoing route of a parcel under the criterion
// and returns them cheapest first, ties broken by destination ID. With
// considerRain, weights are divided by the route's rain accessibility so
// fragile roads fall behind.
func (r *RouteRanker) BestRoutes(parcelID string, criterion models.Criterion, considerRain bool) ([]models.RankedRoute, error) {
	switch criterion {
	case models.CriterionCost, models.CriterionTime, models.CriterionDistance, models.CriterionAccessibility:
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidCriterion, criterion)
	}

	node, ok := r.graph.Node(parcelID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrNodeNotFound, parcelID)
	}
	parcel, ok := node.(*models.Parcel)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %s", models.ErrNotParcel, parcelID, node.Kind())
	}

	production := parcel.ProductionTons
	fromModel := false
	if r.estimator != nil {
		if predicted, err := r.estimator.Predict(parcelID); err == nil {
			production = predicted
			fromModel = true
		}
	}

	adj := r.graph.Successors(parcelID)
	routes := make([]models.RankedRoute, 0, len(adj))
	for _, e := range adj {
		var weight float64
		switch criterion {
		case models.CriterionCost:
			weight = e.CostPerTon * production
		case models.CriterionTime:
			weight = e.TimeMinutes
		case models.CriterionDistance:
			weight = e.DistanceKm
		case models.CriterionAccessibility:
			weight = 1 / math.Max(e.RainAccessibility, minAccessDivisor)
		}

		rainAdjusted := false
		if considerRain && e.RainAccessibility < 1 {
			weight /= math.Max(e.RainAccessibility, minAccessDivisor)
			rainAdjusted = true
		}

		var destKind models.NodeKind
		if dest, ok := r.graph.Node(e.To); ok {
			destKind = dest.Kind()
		}

		routes = append(routes, models.RankedRoute{
			Destination:         e.To,
			DestinationKind:     destKind,
			Criterion:           criterion,
			Weight:              weight,
			RainAdjusted:        rainAdjusted,
			DistanceKm:          e.DistanceKm,
			TimeMinutes:         e.TimeMinutes,
			CostPerTon:          e.CostPerTon,
			RainAccessibility:   e.RainAccessibility,
			Road:                e.Road,
			ProductionTons:      production,
			PredictedProduction: fromModel,
		})
	}

	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Weight != routes[j].Weight {
			return routes[i].Weight < routes[j].Weight
		}
		return routes[i].Destination < routes[j].Destination
	})
	return routes, nil
}
