// Package handlers is the HTTP face of the service. It consumes the core
// through its public contracts and owns everything presentation: status
// codes, response envelopes, JSON sanitization and rounding.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/caponcito/Plantaciones-agronomas/graph"
	"github.com/caponcito/Plantaciones-agronomas/prediction"
	"github.com/caponcito/Plantaciones-agronomas/routing"
	"github.com/caponcito/Plantaciones-agronomas/services"
	"github.com/caponcito/Plantaciones-agronomas/store"
)

// Handler bundles the service layers behind the HTTP endpoints.
type Handler struct {
	store       *store.Store
	graph       *graph.Graph
	resolver    *routing.Resolver
	ranker      *services.RouteRanker
	prioritizer *services.ParcelPrioritizer
	predictor   *prediction.Predictor
	climate     *services.ClimateService
}

// New wires the handler.
func New(
	st *store.Store,
	g *graph.Graph,
	resolver *routing.Resolver,
	ranker *services.RouteRanker,
	prioritizer *services.ParcelPrioritizer,
	predictor *prediction.Predictor,
	climate *services.ClimateService,
) *Handler {
	return &Handler{
		store:       st,
		graph:       g,
		resolver:    resolver,
		ranker:      ranker,
		prioritizer: prioritizer,
		predictor:   predictor,
		climate:     climate,
	}
}

// Register mounts every route on the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.health)

	api := r.Group("/api")
	{
		api.GET("/nodes", h.listNodes)
		api.GET("/edges", h.listEdges)
		api.POST("/route", h.resolveRoute)
		api.GET("/routes/optimal/:id", h.optimalRoutes)
		api.GET("/predictions", h.allPredictions)
		api.GET("/predictions/:id", h.predictionByID)
		api.GET("/parcels/priority", h.priorityParcels)
		api.GET("/forecast", h.forecast)
	}
}

func (h *Handler) health(c *gin.Context) {
	parcels, centers, plants := h.store.Counts()
	c.JSON(200, gin.H{
		"status":        "healthy",
		"nodes":         h.graph.Order(),
		"edges":         h.graph.Size(),
		"parcels":       parcels,
		"centers":       centers,
		"plants":        plants,
		"model_trained": h.predictor.Model() != nil,
		"cached_routes": h.resolver.CacheSize(),
	})
}
