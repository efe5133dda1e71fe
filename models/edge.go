package models

import "github.com/paulmach/orb"

// RoadKind classifies the dominant surface of a connection.
type RoadKind string

const (
	RoadPaved  RoadKind = "paved"
	RoadGravel RoadKind = "gravel"
	RoadDirt   RoadKind = "dirt"
)

// ConnectionKind tells which tier of the network an edge belongs to.
type ConnectionKind string

const (
	ConnParcelCenter      ConnectionKind = "parcel_center"
	ConnCenterPlant       ConnectionKind = "center_plant"
	ConnParcelPlantDirect ConnectionKind = "parcel_plant_direct"
)

// Edge is a directed transport connection between two nodes.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`

	DistanceKm        float64        `json:"distance_km"`
	TimeMinutes       float64        `json:"time_minutes"`
	CostPerTon        float64        `json:"cost_per_ton"`
	Road              RoadKind       `json:"road_kind"`
	AvgSpeedKmh       float64        `json:"avg_speed_kmh"`
	RainAccessibility float64        `json:"rain_accessibility"` // 0 impassable .. 1 unaffected
	Connection        ConnectionKind `json:"connection_kind"`

	// Geometry is the polyline of the connection, (lon, lat) ordered.
	// RealGeometry marks shapes that came from a road network lookup
	// instead of a synthetic estimate.
	Geometry     orb.LineString `json:"geometry,omitempty"`
	RealGeometry bool           `json:"real_geometry"`
}
