package models

// RankedRoute is one outgoing connection of a parcel scored under a
// criterion. Lower weight ranks first.
type RankedRoute struct {
	Destination     string    `json:"destination"`
	DestinationKind NodeKind  `json:"destination_kind"`
	Criterion       Criterion `json:"criterion"`
	Weight          float64   `json:"weight"`
	RainAdjusted    bool      `json:"rain_adjusted"`

	DistanceKm        float64  `json:"distance_km"`
	TimeMinutes       float64  `json:"time_minutes"`
	CostPerTon        float64  `json:"cost_per_ton"`
	RainAccessibility float64  `json:"rain_accessibility"`
	Road              RoadKind `json:"road_kind"`

	// ProductionTons is the tonnage the cost criterion was computed with,
	// predicted when a trained model was available.
	ProductionTons      float64 `json:"production_tons"`
	PredictedProduction bool    `json:"predicted_production"`
}

// ParcelYield is the production estimate for one parcel.
type ParcelYield struct {
	ParcelID      string  `json:"parcel_id"`
	Crop          string  `json:"crop"`
	AreaHa        float64 `json:"area_ha"`
	StatedTons    float64 `json:"stated_production_tons"`
	EstimatedTons float64 `json:"estimated_production_tons"`
	FromModel     bool    `json:"from_model"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
}

// ParcelRanking is one row of the harvest priority list.
type ParcelRanking struct {
	ParcelID      string  `json:"parcel_id"`
	Crop          string  `json:"crop"`
	AreaHa        float64 `json:"area_ha"`
	EstimatedTons float64 `json:"estimated_production_tons"`
	YieldPerHa    float64 `json:"yield_tons_per_ha"`
	FromModel     bool    `json:"from_model"`
}
