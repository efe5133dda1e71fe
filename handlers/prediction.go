package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caponcito/Plantaciones-agronomas/models"
	"github.com/caponcito/Plantaciones-agronomas/prediction"
)

func (h *Handler) predictionByID(c *gin.Context) {
	id := c.Param("id")

	predicted, err := h.predictor.Predict(id)
	switch {
	case errors.Is(err, models.ErrNodeNotFound):
		notFound(c, err.Error())
		return
	case errors.Is(err, models.ErrNotParcel):
		badRequest(c, err.Error())
		return
	case errors.Is(err, prediction.ErrModelNotTrained):
		unavailable(c, "yield model not trained yet")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	node, _ := h.graph.Node(id)
	parcel := node.(*models.Parcel)

	diff := predicted - parcel.ProductionTons
	var diffPct float64
	if parcel.ProductionTons > 0 {
		diffPct = diff / parcel.ProductionTons * 100
	}

	respond(c, http.StatusOK, gin.H{
		"parcel_id":                 id,
		"crop":                      parcel.Crop,
		"area_ha":                   round2(parcel.AreaHa),
		"stated_production_tons":    round2(parcel.ProductionTons),
		"predicted_production_tons": round2(predicted),
		"difference_tons":           round2(diff),
		"difference_pct":            round2(diffPct),
	})
}

func (h *Handler) allPredictions(c *gin.Context) {
	yields := h.prioritizer.Overview()

	views := make([]gin.H, 0, len(yields))
	minTons, maxTons := 0.0, 0.0
	for i, y := range yields {
		if i == 0 || y.EstimatedTons < minTons {
			minTons = y.EstimatedTons
		}
		if i == 0 || y.EstimatedTons > maxTons {
			maxTons = y.EstimatedTons
		}
		views = append(views, gin.H{
			"parcel_id":                 y.ParcelID,
			"crop":                      y.Crop,
			"area_ha":                   round2(y.AreaHa),
			"stated_production_tons":    round2(y.StatedTons),
			"estimated_production_tons": round2(y.EstimatedTons),
			"from_model":                y.FromModel,
			"lat":                       y.Lat,
			"lon":                       y.Lon,
		})
	}

	respond(c, http.StatusOK, gin.H{
		"predictions": views,
		"min_tons":    round2(minTons),
		"max_tons":    round2(maxTons),
	})
}

func (h *Handler) priorityParcels(c *gin.Context) {
	top := 10
	if raw := c.Query("top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			top = n
		}
	}

	ranked := h.prioritizer.Rank(top)
	views := make([]gin.H, 0, len(ranked))
	for i, r := range ranked {
		views = append(views, gin.H{
			"rank":                      i + 1,
			"parcel_id":                 r.ParcelID,
			"crop":                      r.Crop,
			"area_ha":                   round2(r.AreaHa),
			"estimated_production_tons": round2(r.EstimatedTons),
			"yield_tons_per_ha":         round2(r.YieldPerHa),
			"from_model":                r.FromModel,
		})
	}
	respond(c, http.StatusOK, gin.H{"parcels": views, "count": len(views)})
}
