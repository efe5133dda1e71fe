package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

func (h *Handler) optimalRoutes(c *gin.Context) {
	id := c.Param("id")

	criterion, err := models.ParseCriterion(c.DefaultQuery("criterion", string(models.CriterionCost)))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	rain, _ := strconv.ParseBool(c.DefaultQuery("rain", "false"))

	routes, err := h.ranker.BestRoutes(id, criterion, rain)
	switch {
	case errors.Is(err, models.ErrNodeNotFound):
		notFound(c, err.Error())
		return
	case errors.Is(err, models.ErrNotParcel):
		badRequest(c, err.Error())
		return
	case errors.Is(err, models.ErrInvalidCriterion):
		badRequest(c, err.Error())
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]gin.H, 0, len(routes))
	for i, r := range routes {
		views = append(views, gin.H{
			"rank":                 i + 1,
			"destination":          r.Destination,
			"destination_kind":     r.DestinationKind,
			"weight":               round2(r.Weight),
			"rain_adjusted":        r.RainAdjusted,
			"distance_km":          round2(r.DistanceKm),
			"time_minutes":         round2(r.TimeMinutes),
			"cost_per_ton":         round2(r.CostPerTon),
			"rain_accessibility":   round2(r.RainAccessibility),
			"road_kind":            r.Road,
			"production_tons":      round2(r.ProductionTons),
			"predicted_production": r.PredictedProduction,
		})
	}

	respond(c, http.StatusOK, gin.H{
		"parcel_id":     id,
		"criterion":     criterion,
		"consider_rain": rain,
		"routes":        views,
	})
}
