// Package models holds the domain types shared across the supply network
// service: nodes, edges, resolved routes, rankings and forecasts.
package models

import "github.com/paulmach/orb"

// NodeKind discriminates the three entity kinds of the supply network.
type NodeKind string

const (
	NodeParcel           NodeKind = "parcel"
	NodeCollectionCenter NodeKind = "collection_center"
	NodeExtractionPlant  NodeKind = "extraction_plant"
)

// Node is implemented by exactly Parcel, CollectionCenter and
// ExtractionPlant. Code that needs variant fields type-switches on the
// concrete pointer types instead of reading zero values off a shared struct.
type Node interface {
	ID() string
	Kind() NodeKind
	Location() orb.Point
}

// Parcel is a crop field feeding the network.
type Parcel struct {
	NodeID         string    `json:"id"`
	Coord          orb.Point `json:"coordinates"` // (lon, lat)
	Crop           string    `json:"crop"`
	AreaHa         float64   `json:"area_ha"`
	ProductionTons float64   `json:"estimated_production_tons"`
	StorageTons    float64   `json:"storage_capacity_tons"`
	HasColdRoom    bool      `json:"has_cold_room"`

	// Environmental covariates captured with the parcel record and
	// consumed by the yield model.
	VegetationIndex float64 `json:"vegetation_index"`
	SoilHumidity    float64 `json:"soil_humidity"`
	AvgTemperature  float64 `json:"avg_temperature_c"`
}

func (p *Parcel) ID() string          { return p.NodeID }
func (p *Parcel) Kind() NodeKind      { return NodeParcel }
func (p *Parcel) Location() orb.Point { return p.Coord }

// CollectionCenter buffers harvested fruit between parcels and the plant.
type CollectionCenter struct {
	NodeID       string    `json:"id"`
	Coord        orb.Point `json:"coordinates"`
	CapacityTons float64   `json:"capacity_tons"`
	HasColdChain bool      `json:"has_cold_chain"`
	Trucks       int       `json:"trucks_available"`
}

func (c *CollectionCenter) ID() string          { return c.NodeID }
func (c *CollectionCenter) Kind() NodeKind      { return NodeCollectionCenter }
func (c *CollectionCenter) Location() orb.Point { return c.Coord }

// ExtractionPlant is the terminal processing facility.
type ExtractionPlant struct {
	NodeID            string    `json:"id"`
	Coord             orb.Point `json:"coordinates"`
	DailyCapacityTons float64   `json:"daily_capacity_tons"`
	Schedule          string    `json:"operating_schedule"`
	NeedsColdChain    bool      `json:"requires_cold_chain"`
}

func (p *ExtractionPlant) ID() string          { return p.NodeID }
func (p *ExtractionPlant) Kind() NodeKind      { return NodeExtractionPlant }
func (p *ExtractionPlant) Location() orb.Point { return p.Coord }
