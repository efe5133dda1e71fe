package models

import (
	"math"

	"github.com/paulmach/orb"
)

// Region is the bounding box all stored nodes must fall inside.
type Region struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether p lies inside the region.
func (r Region) Contains(p orb.Point) bool {
	return p.Lat() >= r.MinLat && p.Lat() <= r.MaxLat &&
		p.Lon() >= r.MinLon && p.Lon() <= r.MaxLon
}

// Bound converts the region to an orb bounding box.
func (r Region) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.MinLon, r.MinLat},
		Max: orb.Point{r.MaxLon, r.MaxLat},
	}
}

// ValidCoordinate reports whether p is a finite, plausible WGS84 point.
func ValidCoordinate(p orb.Point) bool {
	lat, lon := p.Lat(), p.Lon()
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
