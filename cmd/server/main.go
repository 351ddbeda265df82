package main

import (
	"fmt"
	"log"
	"os"

	"github.com/liquiverde/backend/config"
	httpDelivery "github.com/liquiverde/backend/internal/delivery/http"
	"github.com/liquiverde/backend/internal/infrastructure/cache"
	"github.com/liquiverde/backend/internal/infrastructure/memstore"
	"github.com/liquiverde/backend/internal/infrastructure/nominatim"
	"github.com/liquiverde/backend/internal/infrastructure/openfoodfacts"
	"github.com/liquiverde/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting LiquiVerde Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s (TTL %s)", cfg.Cache.Type, cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	products := memstore.NewProductStore()
	stores := memstore.NewStoreStore()
	lists := memstore.NewListStore()

	offClient := openfoodfacts.NewClient(cfg.OpenFoodFacts.BaseURL, cfg.OpenFoodFacts.UserAgent)
	log.Printf("Open Food Facts API: %s (country: %s)", cfg.OpenFoodFacts.BaseURL, cfg.OpenFoodFacts.Country)

	geocoder := nominatim.NewClient(cfg.Nominatim.BaseURL, cfg.Nominatim.UserAgent)
	log.Printf("Nominatim API: %s", cfg.Nominatim.BaseURL)

	// Enable optimizer debug logging in development environment
	debug := cfg.Optimizer.Debug || cfg.Server.Environment == "development"

	// Initialize usecase layer
	scorer := usecase.NewScoringService(usecase.ScoringConfig{EnableDebugLogging: debug})
	substitution := usecase.NewSubstitutionService(scorer, debug)
	listService := usecase.NewListService(lists, products, scorer, substitution)
	analysisService := usecase.NewAnalysisService(products, scorer, substitution)

	log.Printf("Route origin: (%.4f, %.4f), debug=%v",
		cfg.Optimizer.StartLatitude, cfg.Optimizer.StartLongitude, debug)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(httpDelivery.Dependencies{
		Config:       cfg,
		Products:     products,
		Stores:       stores,
		Cache:        memoryCache,
		Source:       offClient,
		Geocoder:     geocoder,
		Scorer:       scorer,
		Substitution: substitution,
		Lists:        listService,
		Analysis:     analysisService,
	})

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
