package prediction

import (
	"github.com/caponcito/Plantaciones-agronomas/graph"
	"github.com/caponcito/Plantaciones-agronomas/models"
)

// featureCount is the fixed width of the model input. Training and
// prediction both build vectors through features(), so the order below is
// the single definition of the schema.
const featureCount = 10

// features assembles the model input for one parcel:
// crop code, area, cold room flag, outgoing route count, mean distance to
// collection centers, mean rain accessibility, mean cost per ton, then the
// environmental covariates.
func features(p *models.Parcel, conn graph.Connectivity, enc *CropEncoder) []float64 {
	coldRoom := 0.0
	if p.HasColdRoom {
		coldRoom = 1.0
	}
	return []float64{
		float64(enc.Encode(p.Crop)),
		p.AreaHa,
		coldRoom,
		float64(conn.RouteCount),
		conn.MeanCenterDistanceKm,
		conn.MeanRainAccessibility,
		conn.MeanCostPerTon,
		p.VegetationIndex,
		p.SoilHumidity,
		p.AvgTemperature,
	}
}
