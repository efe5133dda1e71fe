// Package roadnet loads and queries the real road network of the growing
// region: OSMnx-style JSON exports, a gob cache so a region is converted
// once, nearest-vertex lookup and shortest paths over the drive graph.
package roadnet

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

// Vertex is a road intersection.
type Vertex struct {
	ID    int64
	Point orb.Point // (lon, lat)
}

// Arc is a directed road segment between two vertices.
type Arc struct {
	To       int64
	LengthM  float64
	SpeedKmh float64
	Highway  string
}

// Network is the in-memory drive graph of one region.
type Network struct {
	Region   string
	Vertices map[int64]Vertex
	Arcs     map[int64][]Arc
}

// VertexCount and ArcCount size the network for logging.
func (n *Network) VertexCount() int { return len(n.Vertices) }

func (n *Network) ArcCount() int {
	total := 0
	for _, arcs := range n.Arcs {
		total += len(arcs)
	}
	return total
}

// NearestVertex scans for the vertex closest to p and returns it with the
// separation in meters. ok is false on an empty network.
func (n *Network) NearestVertex(p orb.Point) (Vertex, float64, bool) {
	var nearest Vertex
	minDist := math.Inf(1)
	found := false

	for _, v := range n.Vertices {
		d := geo.DistanceHaversine(p, v.Point)
		if d < minDist {
			minDist = d
			nearest = v
			found = true
		}
	}
	return nearest, minDist, found
}

// ClassifyHighway maps an OSM highway tag onto the surface taxonomy the
// supply graph uses. Untagged segments count as paved, which is what drive
// networks exported for this region overwhelmingly are.
func ClassifyHighway(tag string) models.RoadKind {
	switch tag {
	case "motorway", "trunk", "primary", "secondary", "tertiary",
		"motorway_link", "trunk_link", "primary_link", "secondary_link",
		"residential", "":
		return models.RoadPaved
	case "unclassified", "service", "living_street":
		return models.RoadGravel
	default:
		return models.RoadDirt
	}
}
