package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caponcito/Plantaciones-agronomas/services"
)

func (h *Handler) forecast(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "days must be an integer between 1 and 7")
			return
		}
		days = n
	}

	forecast, err := h.climate.Forecast(c.Request.Context(), days)
	switch {
	case errors.Is(err, services.ErrInvalidForecastDays):
		badRequest(c, err.Error())
		return
	case err != nil:
		upstreamError(c, err.Error())
		return
	}

	views := make([]gin.H, 0, len(forecast))
	for _, day := range forecast {
		views = append(views, gin.H{
			"date":             day.Date,
			"temp_min_c":       round2(day.TempMinC),
			"temp_max_c":       round2(day.TempMaxC),
			"precipitation_mm": round2(day.PrecipitationMm),
			"wind_kmh":         round2(day.WindKmh),
			"risk":             day.Risk,
			"alert":            day.Alert,
		})
	}
	respond(c, http.StatusOK, gin.H{"days": views, "count": len(views)})
}
