package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta(),
	})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, models.APIResponse{
		Success: false,
		Error:   message,
		Meta:    meta(),
	})
}

func meta() models.Meta {
	return models.Meta{
		RequestID:   uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
}

// clean maps NaN and infinities to zero; encoding/json refuses them and no
// metric here legitimately produces one.
func clean(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// round2 rounds a metric to two decimals for presentation. Core packages
// never round; this is the only place it happens.
func round2(f float64) float64 {
	return decimal.NewFromFloat(clean(f)).Round(2).InexactFloat64()
}

// httpStatus helpers shared by handlers.
func badRequest(c *gin.Context, message string) { fail(c, http.StatusBadRequest, message) }
func notFound(c *gin.Context, message string)   { fail(c, http.StatusNotFound, message) }
func unavailable(c *gin.Context, message string) {
	fail(c, http.StatusServiceUnavailable, message)
}
func upstreamError(c *gin.Context, message string) { fail(c, http.StatusBadGateway, message) }
