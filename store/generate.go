package store

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/paulmach/orb"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

// GeneratorConfig sizes the synthetic dataset.
type GeneratorConfig struct {
	Region  models.Region
	Seed    int64
	Parcels int
	Centers int
}

// Cost basis used by the generator, dollars per kilometer. Feeder routes
// pay a surcharge on unpaved surfaces; consolidated haulage to the plant
// runs cheaper per ton.
const (
	feederCostPerKm  = 0.15
	haulageCostPerKm = 0.12

	dirtSurcharge   = 1.3
	gravelSurcharge = 1.1
)

// GenerateYuma builds the demo dataset: orange parcels spread over the
// region, a handful of collection centers, one extraction plant near the
// region center. The same seed always yields the same store.
func GenerateYuma(cfg GeneratorConfig) (*Store, error) {
	if cfg.Parcels <= 0 {
		cfg.Parcels = 25
	}
	if cfg.Centers <= 0 {
		cfg.Centers = 5
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	uniform := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	randPoint := func() orb.Point {
		return orb.Point{
			uniform(cfg.Region.MinLon, cfg.Region.MaxLon),
			uniform(cfg.Region.MinLat, cfg.Region.MaxLat),
		}
	}

	var nodes []models.Node

	parcels := make([]*models.Parcel, 0, cfg.Parcels)
	for i := 0; i < cfg.Parcels; i++ {
		production := uniform(50, 500)
		p := &models.Parcel{
			NodeID:          fmt.Sprintf("PARCELA_%03d", i+1),
			Coord:           randPoint(),
			Crop:            "Naranjas",
			AreaHa:          uniform(10, 200),
			ProductionTons:  production,
			StorageTons:     production * 0.3,
			HasColdRoom:     rng.Float64() < 0.3,
			VegetationIndex: uniform(0.3, 0.9),
			SoilHumidity:    uniform(20, 60),
			AvgTemperature:  uniform(25, 35),
		}
		parcels = append(parcels, p)
		nodes = append(nodes, p)
	}

	centers := make([]*models.CollectionCenter, 0, cfg.Centers)
	for i := 0; i < cfg.Centers; i++ {
		c := &models.CollectionCenter{
			NodeID:       fmt.Sprintf("ACOPIO_%02d", i+1),
			Coord:        randPoint(),
			CapacityTons: uniform(500, 2000),
			HasColdChain: rng.Float64() < 0.8,
			Trucks:       2 + rng.Intn(6),
		}
		centers = append(centers, c)
		nodes = append(nodes, c)
	}

	centerLat := (cfg.Region.MinLat + cfg.Region.MaxLat) / 2
	centerLon := (cfg.Region.MinLon + cfg.Region.MaxLon) / 2
	plant := &models.ExtractionPlant{
		NodeID:            "PLANTA_EXTRACTORA_01",
		Coord:             orb.Point{centerLon + uniform(-0.1, 0.1), centerLat + uniform(-0.1, 0.1)},
		DailyCapacityTons: 5000,
		Schedule:          "24/7",
		NeedsColdChain:    true,
	}
	nodes = append(nodes, plant)

	var edges []models.Edge

	// Each parcel feeds its 2-3 nearest collection centers.
	for _, p := range parcels {
		byDistance := make([]*models.CollectionCenter, len(centers))
		copy(byDistance, centers)
		sort.Slice(byDistance, func(i, j int) bool {
			return models.DistanceKm(p.Coord, byDistance[i].Coord) <
				models.DistanceKm(p.Coord, byDistance[j].Coord)
		})

		links := 2 + rng.Intn(2)
		if links > len(byDistance) {
			links = len(byDistance)
		}
		for _, c := range byDistance[:links] {
			edges = append(edges, feederEdge(rng, p, c))
		}
	}

	// Every center hauls to the plant.
	for _, c := range centers {
		edges = append(edges, haulageEdge(rng, c.NodeID, c.Coord, plant,
			models.ConnCenterPlant, uniform(55, 70)))
	}

	// A few large parcels ship directly to the plant.
	var large []*models.Parcel
	for _, p := range parcels {
		if p.AreaHa > 100 {
			large = append(large, p)
		}
	}
	rng.Shuffle(len(large), func(i, j int) { large[i], large[j] = large[j], large[i] })
	direct := 5
	if direct > len(large) {
		direct = len(large)
	}
	for _, p := range large[:direct] {
		edges = append(edges, haulageEdge(rng, p.NodeID, p.Coord, plant,
			models.ConnParcelPlantDirect, uniform(55, 70)))
	}

	return New(cfg.Region, nodes, edges)
}

// feederEdge synthesizes a parcel -> center connection: surface and speed
// follow the distance bracket, cost pays the surface surcharge, rain
// accessibility is drawn per surface.
func feederEdge(rng *rand.Rand, p *models.Parcel, c *models.CollectionCenter) models.Edge {
	uniform := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	km := models.DistanceKm(p.Coord, c.Coord)

	var road models.RoadKind
	var speed float64
	switch {
	case km < 5:
		road = pickRoad(rng, []models.RoadKind{models.RoadPaved, models.RoadGravel}, []float64{0.7, 0.3})
		speed = uniform(40, 60)
	case km < 15:
		road = pickRoad(rng,
			[]models.RoadKind{models.RoadPaved, models.RoadGravel, models.RoadDirt},
			[]float64{0.5, 0.3, 0.2})
		speed = uniform(35, 55)
	default:
		road = pickRoad(rng,
			[]models.RoadKind{models.RoadPaved, models.RoadGravel, models.RoadDirt},
			[]float64{0.4, 0.4, 0.2})
		speed = uniform(30, 50)
	}

	cost := km * feederCostPerKm
	var access float64
	switch road {
	case models.RoadDirt:
		cost *= dirtSurcharge
		access = uniform(0.2, 0.6)
	case models.RoadGravel:
		cost *= gravelSurcharge
		access = uniform(0.5, 0.85)
	default:
		access = uniform(0.85, 1.0)
	}

	return models.Edge{
		From:              p.NodeID,
		To:                c.NodeID,
		DistanceKm:        km,
		TimeMinutes:       km / speed * 60,
		CostPerTon:        cost,
		Road:              road,
		AvgSpeedKmh:       speed,
		RainAccessibility: access,
		Connection:        models.ConnParcelCenter,
		Geometry:          models.InterpolatedLine(p.Coord, c.Coord, 5),
	}
}

// haulageEdge synthesizes a consolidated connection to the plant, always
// assumed paved.
func haulageEdge(rng *rand.Rand, fromID string, from orb.Point, plant *models.ExtractionPlant,
	conn models.ConnectionKind, speed float64) models.Edge {

	km := models.DistanceKm(from, plant.Coord)
	return models.Edge{
		From:              fromID,
		To:                plant.NodeID,
		DistanceKm:        km,
		TimeMinutes:       km / speed * 60,
		CostPerTon:        km * haulageCostPerKm,
		Road:              models.RoadPaved,
		AvgSpeedKmh:       speed,
		RainAccessibility: 0.9 + rng.Float64()*0.1,
		Connection:        conn,
		Geometry:          models.InterpolatedLine(from, plant.Coord, 5),
	}
}

func pickRoad(rng *rand.Rand, kinds []models.RoadKind, probs []float64) models.RoadKind {
	r := rng.Float64()
	var acc float64
	for i, p := range probs {
		acc += p
		if r < acc {
			return kinds[i]
		}
	}
	return kinds[len(kinds)-1]
}
