package store

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

var testRegion = models.Region{MinLat: 32.3, MaxLat: 33.0, MinLon: -115.0, MaxLon: -114.2}

func validParcel() *models.Parcel {
	return &models.Parcel{
		NodeID:          "PARCELA_001",
		Coord:           orb.Point{-114.65, 32.55},
		Crop:            "Naranjas",
		AreaHa:          150.5,
		ProductionTons:  350.2,
		StorageTons:     105.06,
		HasColdRoom:     true,
		VegetationIndex: 0.72,
		SoilHumidity:    38,
		AvgTemperature:  29.4,
	}
}

func validCenter() *models.CollectionCenter {
	return &models.CollectionCenter{
		NodeID:       "ACOPIO_01",
		Coord:        orb.Point{-114.62, 32.68},
		CapacityTons: 1200,
		HasColdChain: true,
		Trucks:       4,
	}
}

func validPlant() *models.ExtractionPlant {
	return &models.ExtractionPlant{
		NodeID:            "PLANTA_EXTRACTORA_01",
		Coord:             orb.Point{-114.63, 32.69},
		DailyCapacityTons: 5000,
		Schedule:          "24/7",
		NeedsColdChain:    true,
	}
}

func validEdge() models.Edge {
	return models.Edge{
		From:              "PARCELA_001",
		To:                "ACOPIO_01",
		DistanceKm:        15.5,
		TimeMinutes:       18.6,
		CostPerTon:        2.33,
		Road:              models.RoadPaved,
		AvgSpeedKmh:       50,
		RainAccessibility: 0.92,
		Connection:        models.ConnParcelCenter,
	}
}

func TestNewAcceptsValidNetwork(t *testing.T) {
	s, err := New(testRegion,
		[]models.Node{validParcel(), validCenter(), validPlant()},
		[]models.Edge{validEdge()})
	require.NoError(t, err)

	parcels, centers, plants := s.Counts()
	assert.Equal(t, 1, parcels)
	assert.Equal(t, 1, centers)
	assert.Equal(t, 1, plants)
	assert.Len(t, s.Edges(), 1)
	assert.Equal(t, testRegion, s.Region())
}

func TestNodesOrderedByID(t *testing.T) {
	s, err := New(testRegion,
		[]models.Node{validPlant(), validParcel(), validCenter()}, nil)
	require.NoError(t, err)

	nodes := s.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "ACOPIO_01", nodes[0].ID())
	assert.Equal(t, "PARCELA_001", nodes[1].ID())
	assert.Equal(t, "PLANTA_EXTRACTORA_01", nodes[2].ID())
}

func TestNodeLookup(t *testing.T) {
	s, err := New(testRegion, []models.Node{validParcel()}, nil)
	require.NoError(t, err)

	n, err := s.Node("PARCELA_001")
	require.NoError(t, err)
	assert.Equal(t, models.NodeParcel, n.Kind())

	_, err = s.Node("PARCELA_999")
	assert.ErrorIs(t, err, models.ErrNodeNotFound)
}

func TestNewRejectsInvalidNodes(t *testing.T) {
	cases := []struct {
		name string
		node models.Node
	}{
		{"empty id", &models.Parcel{Coord: orb.Point{-114.65, 32.55}, AreaHa: 10}},
		{"nan latitude", func() models.Node {
			p := validParcel()
			p.Coord = orb.Point{-114.65, math.NaN()}
			return p
		}()},
		{"outside region", func() models.Node {
			p := validParcel()
			p.Coord = orb.Point{-110.0, 32.55}
			return p
		}()},
		{"zero area", func() models.Node {
			p := validParcel()
			p.AreaHa = 0
			return p
		}()},
		{"negative production", func() models.Node {
			p := validParcel()
			p.ProductionTons = -1
			return p
		}()},
		{"vegetation index above one", func() models.Node {
			p := validParcel()
			p.VegetationIndex = 1.3
			return p
		}()},
		{"soil humidity above hundred", func() models.Node {
			p := validParcel()
			p.SoilHumidity = 180
			return p
		}()},
		{"center zero capacity", func() models.Node {
			c := validCenter()
			c.CapacityTons = 0
			return c
		}()},
		{"center negative trucks", func() models.Node {
			c := validCenter()
			c.Trucks = -2
			return c
		}()},
		{"plant zero capacity", func() models.Node {
			pl := validPlant()
			pl.DailyCapacityTons = 0
			return pl
		}()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(testRegion, []models.Node{tc.node}, nil)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New(testRegion, []models.Node{validParcel(), validParcel()}, nil)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewRejectsInvalidEdges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Edge)
	}{
		{"empty endpoint", func(e *models.Edge) { e.To = "" }},
		{"negative distance", func(e *models.Edge) { e.DistanceKm = -1 }},
		{"nan distance", func(e *models.Edge) { e.DistanceKm = math.NaN() }},
		{"zero speed", func(e *models.Edge) { e.AvgSpeedKmh = 0 }},
		{"accessibility above one", func(e *models.Edge) { e.RainAccessibility = 1.4 }},
		{"unknown road kind", func(e *models.Edge) { e.Road = "asphalt" }},
		{"unknown connection kind", func(e *models.Edge) { e.Connection = "shortcut" }},
		{"geometry length mismatch", func(e *models.Edge) {
			e.Geometry = models.InterpolatedLine(
				orb.Point{-114.65, 32.55}, orb.Point{-114.649, 32.551}, 3)
		}},
	}
	nodes := []models.Node{validParcel(), validCenter()}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validEdge()
			tc.mutate(&e)
			_, err := New(testRegion, nodes, []models.Edge{e})
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestNewAcceptsConsistentGeometry(t *testing.T) {
	p, c := validParcel(), validCenter()
	e := validEdge()
	e.Geometry = models.InterpolatedLine(p.Coord, c.Coord, 5)
	e.DistanceKm = models.LineLengthKm(e.Geometry)
	e.TimeMinutes = e.DistanceKm / e.AvgSpeedKmh * 60

	_, err := New(testRegion, []models.Node{p, c}, []models.Edge{e})
	assert.NoError(t, err)
}

func TestEdgesReturnsCopy(t *testing.T) {
	s, err := New(testRegion,
		[]models.Node{validParcel(), validCenter()},
		[]models.Edge{validEdge()})
	require.NoError(t, err)

	edges := s.Edges()
	edges[0].CostPerTon = 99
	assert.Equal(t, 2.33, s.Edges()[0].CostPerTon)
}
