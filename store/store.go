// Package store is the validated in-memory collection of supply network
// entities. Everything downstream (graph, routing, prediction) reads from
// a Store and can rely on its invariants: unique IDs, coordinates inside
// the operating region, attribute ranges checked, edge distances consistent
// with their geometry.
package store

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

// ErrInvalidRecord wraps every validation failure raised by New.
var ErrInvalidRecord = errors.New("store: invalid record")

// geometryToleranceKm bounds how far an edge's stated distance may drift
// from its polyline length: max(0.25 km, 5% of the distance).
const geometryToleranceKm = 0.25

// Store holds the validated node and edge sets.
type Store struct {
	region models.Region
	nodes  map[string]models.Node
	ids    []string
	edges  []models.Edge
}

// New validates the given entities and builds a Store. Referential checks
// between edges and nodes belong to graph.Build; New checks each record on
// its own terms.
func New(region models.Region, nodes []models.Node, edges []models.Edge) (*Store, error) {
	s := &Store{
		region: region,
		nodes:  make(map[string]models.Node, len(nodes)),
		ids:    make([]string, 0, len(nodes)),
		edges:  make([]models.Edge, 0, len(edges)),
	}

	for _, n := range nodes {
		if err := validateNode(region, n); err != nil {
			return nil, err
		}
		if _, dup := s.nodes[n.ID()]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrInvalidRecord, n.ID())
		}
		s.nodes[n.ID()] = n
		s.ids = append(s.ids, n.ID())
	}
	sort.Strings(s.ids)

	for _, e := range edges {
		if err := validateEdge(e); err != nil {
			return nil, err
		}
		s.edges = append(s.edges, e)
	}

	return s, nil
}

// Node looks up a node by ID.
func (s *Store) Node(id string) (models.Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrNodeNotFound, id)
	}
	return n, nil
}

// Nodes returns all nodes ordered by ID.
func (s *Store) Nodes() []models.Node {
	out := make([]models.Node, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.nodes[id])
	}
	return out
}

// Parcels returns the parcel subset ordered by ID.
func (s *Store) Parcels() []*models.Parcel {
	var out []*models.Parcel
	for _, id := range s.ids {
		if p, ok := s.nodes[id].(*models.Parcel); ok {
			out = append(out, p)
		}
	}
	return out
}

// Edges returns a copy of the edge list.
func (s *Store) Edges() []models.Edge {
	out := make([]models.Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Region returns the operating bounding box.
func (s *Store) Region() models.Region { return s.region }

// Counts reports how many nodes of each kind the store holds.
func (s *Store) Counts() (parcels, centers, plants int) {
	for _, n := range s.nodes {
		switch n.Kind() {
		case models.NodeParcel:
			parcels++
		case models.NodeCollectionCenter:
			centers++
		case models.NodeExtractionPlant:
			plants++
		}
	}
	return
}

func validateNode(region models.Region, n models.Node) error {
	if n.ID() == "" {
		return fmt.Errorf("%w: node with empty id", ErrInvalidRecord)
	}
	if !models.ValidCoordinate(n.Location()) {
		return fmt.Errorf("%w: node %q has invalid coordinates", ErrInvalidRecord, n.ID())
	}
	if !region.Contains(n.Location()) {
		return fmt.Errorf("%w: node %q lies outside the operating region", ErrInvalidRecord, n.ID())
	}

	switch v := n.(type) {
	case *models.Parcel:
		if v.AreaHa <= 0 {
			return fmt.Errorf("%w: parcel %q area must be positive", ErrInvalidRecord, v.NodeID)
		}
		if v.ProductionTons < 0 || v.StorageTons < 0 {
			return fmt.Errorf("%w: parcel %q tonnage must be non-negative", ErrInvalidRecord, v.NodeID)
		}
		if v.VegetationIndex < 0 || v.VegetationIndex > 1 {
			return fmt.Errorf("%w: parcel %q vegetation index out of [0,1]", ErrInvalidRecord, v.NodeID)
		}
		if v.SoilHumidity < 0 || v.SoilHumidity > 100 {
			return fmt.Errorf("%w: parcel %q soil humidity out of [0,100]", ErrInvalidRecord, v.NodeID)
		}
	case *models.CollectionCenter:
		if v.CapacityTons <= 0 {
			return fmt.Errorf("%w: center %q capacity must be positive", ErrInvalidRecord, v.NodeID)
		}
		if v.Trucks < 0 {
			return fmt.Errorf("%w: center %q truck count must be non-negative", ErrInvalidRecord, v.NodeID)
		}
	case *models.ExtractionPlant:
		if v.DailyCapacityTons <= 0 {
			return fmt.Errorf("%w: plant %q daily capacity must be positive", ErrInvalidRecord, v.NodeID)
		}
	default:
		return fmt.Errorf("%w: node %q has unknown kind", ErrInvalidRecord, n.ID())
	}
	return nil
}

func validateEdge(e models.Edge) error {
	if e.From == "" || e.To == "" {
		return fmt.Errorf("%w: edge with empty endpoint id", ErrInvalidRecord)
	}
	if e.DistanceKm < 0 || e.TimeMinutes < 0 || e.CostPerTon < 0 {
		return fmt.Errorf("%w: edge %s->%s has negative metrics", ErrInvalidRecord, e.From, e.To)
	}
	if math.IsNaN(e.DistanceKm) || math.IsInf(e.DistanceKm, 0) {
		return fmt.Errorf("%w: edge %s->%s has non-finite distance", ErrInvalidRecord, e.From, e.To)
	}
	if e.AvgSpeedKmh <= 0 {
		return fmt.Errorf("%w: edge %s->%s speed must be positive", ErrInvalidRecord, e.From, e.To)
	}
	if e.RainAccessibility < 0 || e.RainAccessibility > 1 {
		return fmt.Errorf("%w: edge %s->%s rain accessibility out of [0,1]", ErrInvalidRecord, e.From, e.To)
	}
	switch e.Road {
	case models.RoadPaved, models.RoadGravel, models.RoadDirt:
	default:
		return fmt.Errorf("%w: edge %s->%s has unknown road kind %q", ErrInvalidRecord, e.From, e.To, e.Road)
	}
	switch e.Connection {
	case models.ConnParcelCenter, models.ConnCenterPlant, models.ConnParcelPlantDirect:
	default:
		return fmt.Errorf("%w: edge %s->%s has unknown connection kind %q", ErrInvalidRecord, e.From, e.To, e.Connection)
	}

	if len(e.Geometry) >= 2 {
		length := models.LineLengthKm(e.Geometry)
		tolerance := math.Max(geometryToleranceKm, 0.05*e.DistanceKm)
		if math.Abs(length-e.DistanceKm) > tolerance {
			return fmt.Errorf("%w: edge %s->%s distance %.2f km disagrees with geometry length %.2f km",
				ErrInvalidRecord, e.From, e.To, e.DistanceKm, length)
		}
	}
	return nil
}
