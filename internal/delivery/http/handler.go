package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/liquiverde/backend/config"
	"github.com/liquiverde/backend/internal/domain"
	"github.com/liquiverde/backend/internal/infrastructure/openfoodfacts"
	"github.com/liquiverde/backend/internal/infrastructure/seed"
	"github.com/liquiverde/backend/internal/usecase"
)

// Result caps for list-shaped endpoints.
const (
	defaultSearchLimit = 50
	maxSearchLimit     = 100
	defaultListLimit   = 100
	maxListLimit       = 200
	maxSubstitutes     = 10
)

// Substitution defaults applied when the caller does not override them.
const (
	defaultMaxPriceIncrease = 0.1
	defaultMinImprovement   = 5.0
)

// Dependencies carries everything the HTTP handlers need.
type Dependencies struct {
	Config       *config.Config
	Products     domain.ProductRepository
	Stores       domain.StoreRepository
	Cache        domain.CacheRepository
	Source       domain.ProductSource
	Geocoder     domain.Geocoder
	Scorer       *usecase.ScoringService
	Substitution *usecase.SubstitutionService
	Lists        *usecase.ListService
	Analysis     *usecase.AnalysisService
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	cfg          *config.Config
	products     domain.ProductRepository
	stores       domain.StoreRepository
	cache        domain.CacheRepository
	source       domain.ProductSource
	geocoder     domain.Geocoder
	scorer       *usecase.ScoringService
	substitution *usecase.SubstitutionService
	lists        *usecase.ListService
	analysis     *usecase.AnalysisService
}

// NewHandler creates a new HTTP handler
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		cfg:          deps.Config,
		products:     deps.Products,
		stores:       deps.Stores,
		cache:        deps.Cache,
		source:       deps.Source,
		geocoder:     deps.Geocoder,
		scorer:       deps.Scorer,
		substitution: deps.Substitution,
		lists:        deps.Lists,
		analysis:     deps.Analysis,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "liquiverde-backend",
		"version": "1.0.0",
	})
}

// respondError maps domain sentinel errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrStoreNotFound),
		errors.Is(err, domain.ErrListNotFound),
		errors.Is(err, domain.ErrAddressNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrExternalAPIFailure):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func limitQuery(c *gin.Context, def, max int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if err != nil || limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// --- Products ---

// CreateProduct stores a product, scoring it first when the caller did not
// provide a sustainability score.
func (h *Handler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if product.Sustainability == nil {
		avg := openfoodfacts.CategoryAveragePrice(product.Category)
		product.Sustainability = h.scorer.Score(&product, avg)
	}

	id, err := h.products.Create(c.Request.Context(), &product)
	if err != nil {
		respondError(c, err)
		return
	}
	product.ID = id

	c.JSON(http.StatusCreated, product)
}

// ListProducts returns all stored products, newest-created last.
func (h *Handler) ListProducts(c *gin.Context) {
	limit := limitQuery(c, defaultListLimit, maxListLimit)

	products, err := h.products.GetAll(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product by id.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// SearchProducts filters the local catalog by text, category, price,
// sustainability and store.
func (h *Handler) SearchProducts(c *gin.Context) {
	search := domain.ProductSearch{
		Query:    c.Query("query"),
		Category: c.Query("category"),
		Store:    c.Query("store"),
	}
	if v := c.Query("max_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		search.MaxPrice = price
	}
	if v := c.Query("min_sustainability"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_sustainability"})
			return
		}
		search.MinSustainability = score
	}

	limit := limitQuery(c, defaultSearchLimit, maxSearchLimit)

	products, err := h.products.Search(c.Request.Context(), search, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// SearchExternal queries Open Food Facts and returns scored products with
// estimated prices. Results are not persisted.
func (h *Handler) SearchExternal(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	country := c.DefaultQuery("country", h.cfg.OpenFoodFacts.Country)
	category := c.Query("category")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 50 {
		pageSize = 20
	}

	products, err := h.source.Search(c.Request.Context(), query, country, category, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	for i := range products {
		avg := openfoodfacts.CategoryAveragePrice(products[i].Category)
		products[i].Sustainability = h.scorer.Score(&products[i], avg)
	}

	c.JSON(http.StatusOK, products)
}

// ScanProduct resolves a barcode: local catalog first, then cache, then
// Open Food Facts. External hits are scored, persisted and cached.
func (h *Handler) ScanProduct(c *gin.Context) {
	ctx := c.Request.Context()
	barcode := c.Param("barcode")

	if product, err := h.products.GetByBarcode(ctx, barcode); err == nil {
		log.Printf("[HTTP] barcode %s served from local catalog", barcode)
		c.JSON(http.StatusOK, product)
		return
	}

	cacheKey := "barcode:" + barcode
	if cached, err := h.cache.Get(ctx, cacheKey); err == nil {
		if product, ok := cached.(*domain.Product); ok {
			c.JSON(http.StatusOK, product)
			return
		}
	}

	product, err := h.source.GetByBarcode(ctx, barcode)
	if err != nil {
		respondError(c, err)
		return
	}

	avg := openfoodfacts.CategoryAveragePrice(product.Category)
	product.Sustainability = h.scorer.Score(product, avg)

	id, err := h.products.Create(ctx, product)
	if err != nil {
		respondError(c, err)
		return
	}
	product.ID = id

	if err := h.cache.Set(ctx, cacheKey, product, h.cfg.Cache.TTL); err != nil {
		log.Printf("[HTTP] failed to cache barcode %s: %v", barcode, err)
	}

	c.JSON(http.StatusOK, product)
}

// GetProductsByCategory lists products in a category.
func (h *Handler) GetProductsByCategory(c *gin.Context) {
	limit := limitQuery(c, defaultSearchLimit, maxSearchLimit)

	products, err := h.products.GetByCategory(c.Request.Context(), c.Param("category"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// FindSubstitutes ranks same-category alternatives for a product.
func (h *Handler) FindSubstitutes(c *gin.Context) {
	ctx := c.Request.Context()

	original, err := h.products.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	maxPriceIncrease := defaultMaxPriceIncrease
	if v := c.Query("max_price_increase"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price_increase"})
			return
		}
		maxPriceIncrease = parsed
	}
	minImprovement := defaultMinImprovement
	if v := c.Query("min_sustainability_improvement"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_sustainability_improvement"})
			return
		}
		minImprovement = parsed
	}

	candidates, err := h.products.GetByCategory(ctx, original.Category, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	substitutes := h.substitution.FindSubstitutes(original, candidates, maxPriceIncrease, minImprovement)
	total := len(substitutes)
	if total > maxSubstitutes {
		substitutes = substitutes[:maxSubstitutes]
	}

	c.JSON(http.StatusOK, gin.H{
		"original_product": original,
		"substitutes":      substitutes,
		"total_found":      total,
	})
}

type compareRequest struct {
	Product1ID string `json:"product_id_1" binding:"required"`
	Product2ID string `json:"product_id_2" binding:"required"`
}

// CompareProducts scores two products head to head.
func (h *Handler) CompareProducts(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	product1, err := h.products.GetByID(ctx, req.Product1ID)
	if err != nil {
		respondError(c, err)
		return
	}
	product2, err := h.products.GetByID(ctx, req.Product2ID)
	if err != nil {
		respondError(c, err)
		return
	}

	comparison := h.scorer.CompareProducts(product1, product2)

	c.JSON(http.StatusOK, gin.H{
		"product1":   product1,
		"product2":   product2,
		"comparison": comparison,
	})
}

// --- Shopping lists ---

// CreateList stores a new shopping list.
func (h *Handler) CreateList(c *gin.Context) {
	var list domain.ShoppingList
	if err := c.ShouldBindJSON(&list); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.lists.Create(c.Request.Context(), &list)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetList returns a shopping list by id.
func (h *Handler) GetList(c *gin.Context) {
	list, err := h.lists.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ListLists returns stored shopping lists.
func (h *Handler) ListLists(c *gin.Context) {
	limit := limitQuery(c, defaultSearchLimit, maxListLimit)

	lists, err := h.lists.GetAll(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lists)
}

// OptimizeList runs the budget optimizer over a stored list.
func (h *Handler) OptimizeList(c *gin.Context) {
	var criteria domain.OptimizationCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.lists.Optimize(c.Request.Context(), c.Param("id"), &criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeList aggregates an ad-hoc list of items without persisting it.
func (h *Handler) AnalyzeList(c *gin.Context) {
	var items []domain.ShoppingListItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := h.analysis.AnalyzeList(c.Request.Context(), items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

type quickOptimizeRequest struct {
	ProductIDs               []string `json:"product_ids" binding:"required,min=1"`
	MaxBudget                float64  `json:"max_budget" binding:"required,gt=0"`
	PrioritizeSustainability *bool    `json:"prioritize_sustainability"`
}

// QuickOptimize optimizes a plain set of product ids without a stored list.
func (h *Handler) QuickOptimize(c *gin.Context) {
	var req quickOptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prioritize := true
	if req.PrioritizeSustainability != nil {
		prioritize = *req.PrioritizeSustainability
	}

	result, err := h.lists.QuickOptimize(c.Request.Context(), req.ProductIDs, req.MaxBudget, prioritize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// --- Stores ---

// CreateStore stores a new store.
func (h *Handler) CreateStore(c *gin.Context) {
	var store domain.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.stores.Create(c.Request.Context(), &store)
	if err != nil {
		respondError(c, err)
		return
	}
	store.ID = id

	c.JSON(http.StatusCreated, store)
}

// ListStores returns all stores.
func (h *Handler) ListStores(c *gin.Context) {
	stores, err := h.stores.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stores)
}

type nearbyStore struct {
	domain.Store
	DistanceKm float64 `json:"distance_km"`
}

// NearbyStores returns stores within a radius of a point, closest first.
func (h *Handler) NearbyStores(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude"})
		return
	}
	radiusKm := 10.0
	if v := c.Query("radius_km"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius_km"})
			return
		}
		radiusKm = parsed
	}

	stores, err := h.stores.GetNearby(c.Request.Context(), lat, lon, radiusKm)
	if err != nil {
		respondError(c, err)
		return
	}

	origin := domain.Location{Latitude: lat, Longitude: lon}
	result := make([]nearbyStore, 0, len(stores))
	for _, store := range stores {
		result = append(result, nearbyStore{
			Store:      store,
			DistanceKm: roundKm(origin.DistanceKm(store.Location)),
		})
	}

	c.JSON(http.StatusOK, result)
}

func roundKm(km float64) float64 {
	return float64(int(km*100+0.5)) / 100
}

type geocodeRequest struct {
	Address string `json:"address" binding:"required"`
}

// GeocodeAddress resolves an address to coordinates via Nominatim.
func (h *Handler) GeocodeAddress(c *gin.Context) {
	var req geocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := h.geocoder.Geocode(c.Request.Context(), req.Address)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

type routeRequest struct {
	StartLatitude  *float64 `json:"start_latitude"`
	StartLongitude *float64 `json:"start_longitude"`
	StoreIDs       []string `json:"store_ids" binding:"required,min=1"`
}

type compareRoutesRequest struct {
	routeRequest
	AlternativeOrders [][]int `json:"alternative_orders"`
}

// resolveStores loads the requested stores, skipping unknown ids like the
// rest of the list endpoints do.
func (h *Handler) resolveStores(c *gin.Context, storeIDs []string) []domain.Store {
	stores := make([]domain.Store, 0, len(storeIDs))
	for _, id := range storeIDs {
		store, err := h.stores.GetByID(c.Request.Context(), id)
		if err != nil {
			log.Printf("[HTTP] store %s not found, skipping", id)
			continue
		}
		stores = append(stores, *store)
	}
	return stores
}

func (h *Handler) routeService(req routeRequest) *usecase.RouteService {
	lat := h.cfg.Optimizer.StartLatitude
	lon := h.cfg.Optimizer.StartLongitude
	if req.StartLatitude != nil {
		lat = *req.StartLatitude
	}
	if req.StartLongitude != nil {
		lon = *req.StartLongitude
	}
	return usecase.NewRouteService(lat, lon, h.cfg.Optimizer.Debug)
}

// OptimizeRoute computes a visiting order over the requested stores.
func (h *Handler) OptimizeRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stores := h.resolveStores(c, req.StoreIDs)
	if len(stores) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no valid stores found"})
		return
	}

	route := h.routeService(req).OptimizeRoute(stores)

	c.JSON(http.StatusOK, route)
}

// CompareRoutes compares the optimized route against alternative visit
// orders. Without explicit alternatives the natural and reversed orders
// are used.
func (h *Handler) CompareRoutes(c *gin.Context) {
	var req compareRoutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stores := h.resolveStores(c, req.StoreIDs)
	if len(stores) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no valid stores found"})
		return
	}

	orders := req.AlternativeOrders
	if len(orders) == 0 {
		natural := make([]int, len(stores))
		reversed := make([]int, len(stores))
		for i := range stores {
			natural[i] = i
			reversed[i] = len(stores) - 1 - i
		}
		orders = [][]int{natural, reversed}
	}

	comparison := h.routeService(req.routeRequest).CompareRoutes(stores, orders)

	c.JSON(http.StatusOK, comparison)
}

// --- Analysis ---

// Impact reports the environmental impact of a set of products.
func (h *Handler) Impact(c *gin.Context) {
	productIDs := c.QueryArray("product_ids")
	if len(productIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_ids is required"})
		return
	}

	report, err := h.analysis.Impact(c.Request.Context(), productIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// --- Seed ---

// SeedData loads the sample catalog and stores.
func (h *Handler) SeedData(c *gin.Context) {
	products, stores, err := seed.Load(c.Request.Context(), h.products, h.stores, h.scorer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "database seeded successfully",
		"products": products,
		"stores":   stores,
	})
}
