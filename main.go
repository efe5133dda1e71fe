package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/caponcito/Plantaciones-agronomas/config"
	"github.com/caponcito/Plantaciones-agronomas/graph"
	"github.com/caponcito/Plantaciones-agronomas/handlers"
	"github.com/caponcito/Plantaciones-agronomas/prediction"
	"github.com/caponcito/Plantaciones-agronomas/roadnet"
	"github.com/caponcito/Plantaciones-agronomas/routing"
	"github.com/caponcito/Plantaciones-agronomas/services"
	"github.com/caponcito/Plantaciones-agronomas/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	cfg := config.Load()

	st, err := loadStore(cfg)
	if err != nil {
		log.Fatalf("Failed to load network data: %v", err)
	}
	parcels, centers, plants := st.Counts()
	log.Printf("Loaded %d parcels, %d collection centers, %d plants", parcels, centers, plants)

	g, err := graph.Build(st.Nodes(), st.Edges())
	if err != nil {
		log.Fatalf("Failed to build supply graph: %v", err)
	}
	log.Printf("Supply graph ready: %d nodes, %d edges", g.Order(), g.Size())

	var provider routing.RoadNetwork
	if network := loadRoadNetwork(cfg); network != nil {
		provider = network
	}
	resolver := routing.NewResolver(g, provider, cfg.Routing, cfg.RoadNetworkTimeout)

	predictor := prediction.NewPredictor(st, g, cfg.Model)
	if model, err := predictor.Train(); err != nil {
		log.Printf("Yield model training failed: %v (predictions fall back to stated production)", err)
	} else {
		log.Printf("Yield model trained on %d parcels", model.Samples())
	}

	ranker := services.NewRouteRanker(g, predictor)
	prioritizer := services.NewParcelPrioritizer(st, predictor)
	climate := services.NewClimateService(cfg)

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	handlers.New(st, g, resolver, ranker, prioritizer, predictor, climate).Register(r)

	log.Printf("Listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// loadStore prefers CSV exports when DATA_DIR is set and generates the
// synthetic dataset otherwise.
func loadStore(cfg *config.Config) (*store.Store, error) {
	if cfg.DataDir != "" {
		log.Printf("Loading network from %s", cfg.DataDir)
		return store.LoadCSV(cfg.DataDir, cfg.Region)
	}
	log.Printf("Generating synthetic dataset (seed %d)", cfg.DataSeed)
	return store.GenerateYuma(store.GeneratorConfig{
		Region: cfg.Region,
		Seed:   cfg.DataSeed,
	})
}

// loadRoadNetwork tries the local cache first, then a configured remote
// export. Running without road data is fine; routes then come from the
// synthetic estimator.
func loadRoadNetwork(cfg *config.Config) *roadnet.Network {
	n, err := roadnet.Load(cfg.RoadNetworkDir, cfg.RoadNetworkRegion)
	if err == nil {
		log.Printf("Road network %q: %d vertices, %d arcs", cfg.RoadNetworkRegion, n.VertexCount(), n.ArcCount())
		return n
	}
	log.Printf("No local road network (%v)", err)

	if cfg.RoadNetworkURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RoadNetworkTimeout)
		defer cancel()
		client := &http.Client{Timeout: cfg.RoadNetworkTimeout}
		n, err = roadnet.Fetch(ctx, client, cfg.RoadNetworkURL, cfg.RoadNetworkRegion)
		if err == nil {
			log.Printf("Road network fetched: %d vertices, %d arcs", n.VertexCount(), n.ArcCount())
			return n
		}
		log.Printf("Road network fetch failed (%v)", err)
	}

	log.Println("Continuing without road network; routes will use synthetic estimates")
	return nil
}
