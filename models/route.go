package models

import "github.com/paulmach/orb"

// RouteSource records which of the three resolution paths produced a result.
type RouteSource string

const (
	SourceGraphEdge   RouteSource = "graph_edge"
	SourceRoadNetwork RouteSource = "road_network"
	SourceSynthetic   RouteSource = "synthetic"
)

// RouteSegment is one piece of a resolved route. Access segments that bridge
// a node to the road network are synthetic even inside a real-network result.
type RouteSegment struct {
	Geometry   orb.LineString `json:"geometry"`
	DistanceKm float64        `json:"distance_km"`
	Road       RoadKind       `json:"road_kind"`
	Synthetic  bool           `json:"synthetic"`
}

// RouteResult is a resolved point-to-point route. Results are cached and
// shared between callers; treat them as read-only.
type RouteResult struct {
	From string `json:"from"`
	To   string `json:"to"`

	DistanceKm        float64  `json:"distance_km"`
	TimeMinutes       float64  `json:"time_minutes"`
	CostPerTon        float64  `json:"cost_per_ton"`
	Road              RoadKind `json:"road_kind"`
	AvgSpeedKmh       float64  `json:"avg_speed_kmh"`
	RainAccessibility float64  `json:"rain_accessibility"`

	Geometry      orb.LineString `json:"geometry"`
	Source        RouteSource    `json:"source"`
	UsesRealRoute bool           `json:"uses_real_route"`
	Segments      []RouteSegment `json:"segments,omitempty"`
}

// HasSyntheticSegments reports whether any part of the geometry was
// synthesized rather than taken from the road network.
func (r *RouteResult) HasSyntheticSegments() bool {
	for _, s := range r.Segments {
		if s.Synthetic {
			return true
		}
	}
	return r.Source == SourceSynthetic
}
