package models

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// InterpolatedLine builds a straight polyline from a to b with the given
// number of evenly spaced intermediate points.
func InterpolatedLine(a, b orb.Point, intermediate int) orb.LineString {
	if intermediate < 0 {
		intermediate = 0
	}
	line := make(orb.LineString, 0, intermediate+2)
	line = append(line, a)
	for i := 1; i <= intermediate; i++ {
		t := float64(i) / float64(intermediate+1)
		line = append(line, orb.Point{
			a[0] + (b[0]-a[0])*t,
			a[1] + (b[1]-a[1])*t,
		})
	}
	return append(line, b)
}

// LineLengthKm sums the great-circle lengths of a polyline's segments.
func LineLengthKm(line orb.LineString) float64 {
	var meters float64
	for i := 1; i < len(line); i++ {
		meters += geo.DistanceHaversine(line[i-1], line[i])
	}
	return meters / 1000
}

// DistanceKm is the great-circle distance between two points in kilometers.
func DistanceKm(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b) / 1000
}
