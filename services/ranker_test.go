package services

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caponcito/Plantaciones-agronomas/graph"
	"github.com/caponcito/Plantaciones-agronomas/models"
)

// stubEstimator returns a fixed prediction or a scripted failure.
type stubEstimator struct {
	tons float64
	err  error
}

func (s stubEstimator) Predict(string) (float64, error) { return s.tons, s.err }

func rankerGraph(t *testing.T) *graph.Graph {
	t.Helper()
	nodes := []models.Node{
		&models.Parcel{NodeID: "PARCELA_001", Coord: orb.Point{-114.65, 32.55}, Crop: "Naranjas", AreaHa: 20, ProductionTons: 100},
		&models.Parcel{NodeID: "PARCELA_002", Coord: orb.Point{-114.70, 32.60}, Crop: "Naranjas", AreaHa: 15, ProductionTons: 80},
		&models.CollectionCenter{NodeID: "ACOPIO_01", Coord: orb.Point{-114.62, 32.68}, CapacityTons: 1200},
		&models.CollectionCenter{NodeID: "ACOPIO_02", Coord: orb.Point{-114.40, 32.50}, CapacityTons: 800},
		&models.ExtractionPlant{NodeID: "PLANTA_EXTRACTORA_01", Coord: orb.Point{-114.63, 32.69}, DailyCapacityTons: 5000},
	}
	edges := []models.Edge{
		{
			From: "PARCELA_001", To: "ACOPIO_01",
			DistanceKm: 20, TimeMinutes: 30, CostPerTon: 2.0,
			Road: models.RoadPaved, AvgSpeedKmh: 40, RainAccessibility: 1.0,
			Connection: models.ConnParcelCenter,
		},
		{
			From: "PARCELA_001", To: "ACOPIO_02",
			DistanceKm: 5, TimeMinutes: 10, CostPerTon: 1.0,
			Road: models.RoadGravel, AvgSpeedKmh: 30, RainAccessibility: 0.5,
			Connection: models.ConnParcelCenter,
		},
		{
			From: "PARCELA_001", To: "PLANTA_EXTRACTORA_01",
			DistanceKm: 40, TimeMinutes: 5, CostPerTon: 3.0,
			Road: models.RoadDirt, AvgSpeedKmh: 60, RainAccessibility: 0.25,
			Connection: models.ConnParcelPlantDirect,
		},
	}
	g, err := graph.Build(nodes, edges)
	require.NoError(t, err)
	return g
}

func destinations(routes []models.RankedRoute) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.Destination
	}
	return out
}

func TestBestRoutesByCost(t *testing.T) {
	r := NewRouteRanker(rankerGraph(t), nil)

	routes, err := r.BestRoutes("PARCELA_001", models.CriterionCost, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACOPIO_02", "ACOPIO_01", "PLANTA_EXTRACTORA_01"}, destinations(routes))

	// Cost weight is dollars per ton times tons moved.
	assert.InDelta(t, 100.0, routes[0].Weight, 1e-9)
	assert.InDelta(t, 200.0, routes[1].Weight, 1e-9)
	assert.InDelta(t, 300.0, routes[2].Weight, 1e-9)
	for _, route := range routes {
		assert.Equal(t, 100.0, route.ProductionTons)
		assert.False(t, route.PredictedProduction)
		assert.False(t, route.RainAdjusted)
	}
}

func TestBestRoutesByTime(t *testing.T) {
	r := NewRouteRanker(rankerGraph(t), nil)

	routes, err := r.BestRoutes("PARCELA_001", models.CriterionTime, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"PLANTA_EXTRACTORA_01", "ACOPIO_02", "ACOPIO_01"}, destinations(routes))
}

func TestBestRoutesByDistance(t *testing.T) {
	r := NewRouteRanker(rankerGraph(t), nil)

	routes, err := r.BestRoutes("PARCELA_001", models.CriterionDistance, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACOPIO_02", "ACOPIO_01", "PLANTA_EXTRACTORA_01"}, destinations(routes))
	assert.InDelta(t, 5.0, routes[0].Weight, 1e-9)
}

func TestBestRoutesByAccessibility(t *testing.T) {
	r := NewRouteRanker(rankerGraph(t), nil)

	routes, err := r.BestRoutes("PARCELA_001", models.CriterionAccessibility, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACOPIO_01", "ACOPIO_02", "PLANTA_EXTRACTORA_01"}, destinations(routes))
	assert.InDelta(t, 1.0, routes[0].Weight, 1e-9)
	assert.InDelta(t, 2.0, routes[1].Weight, 1e-9)
	assert.InDelta(t, 4.0, routes[2].Weight, 1e-9)
}

func TestBestRoutesRainAdjustment(t *testing.T) {
	r := NewRouteRanker(rankerGraph(t), nil)

	routes, err := r.BestRoutes("PARCELA_001", models.CriterionCost, true)
	require.NoError(t, err)

	// The fully accessible paved route keeps its weight (200); the gravel
	// route doubles to the same 200 and the tie breaks on destination ID.
	assert.Equal(t, []string{"ACOPIO_01", "ACOPIO_02", "PLANTA_EXTRACTORA_01"}, destinations(routes))
	assert.False(t, routes[0].RainAdjusted)
	assert.True(t, routes[1].RainAdjusted)
	assert.InDelta(t, 200.0, routes[0].Weight, 1e-9)
	assert.InDelta(t, 200.0, routes[1].Weight, 1e-9)
	assert.InDelta(t, 1200.0, routes[2].Weight, 1e-9)
}

func TestBestRoutesWeightsSorted(t *testing.T) {
	r := NewRouteRanker(rankerGraph(t), nil)

	for _, criterion := range []models.Criterion{
		models.CriterionCost, models.CriterionTime,
		models.CriterionDistance, models.CriterionAccessibility,
	} {
		routes, err := r.BestRoutes("PARCELA_001", criterion, true)
		require.NoError(t, err)
		for i := 1; i < len(routes); i++ {
			assert.LessOrEqual(t, routes[i-1].Weight, routes[i].Weight,
				"criterion %s position %d", criterion, i)
		}
	}
}

func TestBestRoutesUsesPrediction(t *testing.T) {
	r := NewRouteRanker(rankerGraph(t), stubEstimator{tons: 50})

	routes, err := r.BestRoutes("PARCELA_001", models.CriterionCost, false)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, routes[0].Weight, 1e-9)
	assert.True(t, routes[0].PredictedProduction)
	assert.Equal(t, 50.0, routes[0].ProductionTons)
}

func TestBestRoutesPredictionFailureFallsBack(t *testing.T) {
	r := NewRouteRanker(rankerGraph(t), stubEstimator{err: errors.New("not trained")})

	routes, err := r.BestRoutes("PARCELA_001", models.CriterionCost, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, routes[0].ProductionTons)
	assert.False(t, routes[0].PredictedProduction)
}

func TestBestRoutesNoConnections(t *testing.T) {
	r := NewRouteRanker(rankerGraph(t), nil)

	routes, err := r.BestRoutes("PARCELA_002", models.CriterionCost, false)
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestBestRoutesErrors(t *testing.T) {
	r := NewRouteRanker(rankerGraph(t), nil)

	_, err := r.BestRoutes("PARCELA_001", models.Criterion("speed"), false)
	assert.ErrorIs(t, err, models.ErrInvalidCriterion)

	// The criterion gate runs before the node lookup.
	_, err = r.BestRoutes("PARCELA_999", models.Criterion("speed"), false)
	assert.ErrorIs(t, err, models.ErrInvalidCriterion)

	_, err = r.BestRoutes("PARCELA_999", models.CriterionCost, false)
	assert.ErrorIs(t, err, models.ErrNodeNotFound)

	_, err = r.BestRoutes("ACOPIO_01", models.CriterionCost, false)
	assert.ErrorIs(t, err, models.ErrNotParcel)
}
