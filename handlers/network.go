package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caponcito/Plantaciones-agronomas/models"
	"github.com/caponcito/Plantaciones-agronomas/routing"
)

func (h *Handler) listNodes(c *gin.Context) {
	nodes := h.store.Nodes()
	views := make([]gin.H, 0, len(nodes))
	for _, n := range nodes {
		view := gin.H{
			"id":   n.ID(),
			"kind": n.Kind(),
			"lat":  n.Location().Lat(),
			"lon":  n.Location().Lon(),
		}
		switch v := n.(type) {
		case *models.Parcel:
			view["info"] = gin.H{
				"crop":                      v.Crop,
				"area_ha":                   round2(v.AreaHa),
				"estimated_production_tons": round2(v.ProductionTons),
				"storage_capacity_tons":     round2(v.StorageTons),
				"has_cold_room":             v.HasColdRoom,
			}
		case *models.CollectionCenter:
			view["info"] = gin.H{
				"capacity_tons":    round2(v.CapacityTons),
				"has_cold_chain":   v.HasColdChain,
				"trucks_available": v.Trucks,
			}
		case *models.ExtractionPlant:
			view["info"] = gin.H{
				"daily_capacity_tons": round2(v.DailyCapacityTons),
				"operating_schedule":  v.Schedule,
				"requires_cold_chain": v.NeedsColdChain,
			}
		}
		views = append(views, view)
	}

	parcels, centers, plants := h.store.Counts()
	respond(c, http.StatusOK, gin.H{
		"nodes": views,
		"counts": gin.H{
			"parcels": parcels,
			"centers": centers,
			"plants":  plants,
		},
	})
}

func (h *Handler) listEdges(c *gin.Context) {
	edges := h.graph.Edges()
	views := make([]gin.H, 0, len(edges))
	for _, e := range edges {
		views = append(views, gin.H{
			"from":               e.From,
			"to":                 e.To,
			"distance_km":        round2(e.DistanceKm),
			"time_minutes":       round2(e.TimeMinutes),
			"cost_per_ton":       round2(e.CostPerTon),
			"road_kind":          e.Road,
			"avg_speed_kmh":      round2(e.AvgSpeedKmh),
			"rain_accessibility": round2(e.RainAccessibility),
			"connection_kind":    e.Connection,
			"real_geometry":      e.RealGeometry,
			"geometry":           e.Geometry,
		})
	}
	respond(c, http.StatusOK, gin.H{"edges": views, "count": len(views)})
}

type routeRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

func (h *Handler) resolveRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body must carry 'from' and 'to' node IDs")
		return
	}

	res, err := h.resolver.Resolve(c.Request.Context(), req.From, req.To)
	switch {
	case errors.Is(err, models.ErrNodeNotFound):
		notFound(c, err.Error())
		return
	case errors.Is(err, routing.ErrRouteNotFound):
		notFound(c, err.Error())
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	from, _ := h.graph.Node(req.From)
	to, _ := h.graph.Node(req.To)
	respond(c, http.StatusOK, gin.H{
		"from":               res.From,
		"to":                 res.To,
		"distance_km":        round2(res.DistanceKm),
		"time_minutes":       round2(res.TimeMinutes),
		"cost_per_ton":       round2(res.CostPerTon),
		"road_kind":          res.Road,
		"avg_speed_kmh":      round2(res.AvgSpeedKmh),
		"rain_accessibility": round2(res.RainAccessibility),
		"source":             res.Source,
		"uses_real_route":    res.UsesRealRoute,
		"synthetic_segments": res.HasSyntheticSegments(),
		"geometry":           res.Geometry,
		"direct_distance_km": round2(models.DistanceKm(from.Location(), to.Location())),
	})
}
