package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/artisy/storefront/internal/catalog/domain"
	"github.com/artisy/storefront/internal/catalog/usecase/command"
	"github.com/artisy/storefront/internal/catalog/usecase/query"
	"github.com/artisy/storefront/internal/identity"
	"github.com/artisy/storefront/pkg/apperr"
	"github.com/artisy/storefront/pkg/logger"
)

// CatalogHandler handles HTTP requests for products and reviews
type CatalogHandler struct {
	// Query handlers
	searchHandler        *query.SearchProductsHandler
	getHandler           *query.GetProductHandler
	featuredHandler      *query.FeaturedProductsHandler
	filterOptionsHandler *query.FilterOptionsHandler
	semanticHandler      *query.SemanticSearchHandler
	listReviewsHandler   *query.ListReviewsHandler

	// Command handlers
	addReviewHandler *command.AddReviewHandler

	auth *identity.Authenticator

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	searchHandler *query.SearchProductsHandler,
	getHandler *query.GetProductHandler,
	featuredHandler *query.FeaturedProductsHandler,
	filterOptionsHandler *query.FilterOptionsHandler,
	semanticHandler *query.SemanticSearchHandler,
	listReviewsHandler *query.ListReviewsHandler,
	addReviewHandler *command.AddReviewHandler,
	auth *identity.Authenticator,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_requests_total",
			Help: "Total number of requests to catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CatalogHandler{
		searchHandler:        searchHandler,
		getHandler:           getHandler,
		featuredHandler:      featuredHandler,
		filterOptionsHandler: filterOptionsHandler,
		semanticHandler:      semanticHandler,
		listReviewsHandler:   listReviewsHandler,
		addReviewHandler:     addReviewHandler,
		auth:                 auth,
		requestCounter:       requestCounter,
		requestLatency:       requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// SearchProducts handles GET /products
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := query.SearchProductsQuery{Filter: parseSearchFilter(r)}

	result, err := h.searchHandler.Handle(q)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result.Products,
		"pagination": map[string]interface{}{
			"total":   result.Total,
			"limit":   result.Limit,
			"offset":  result.Offset,
			"hasMore": result.HasMore,
		},
	})
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondData(w, http.StatusOK, product)
}

// FeaturedProducts handles GET /products/featured
func (h *CatalogHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.featuredHandler.Handle(query.FeaturedProductsQuery{Limit: limit})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondData(w, http.StatusOK, products)
}

// FilterOptions handles GET /products/filters
func (h *CatalogHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.filterOptionsHandler.Handle(query.FilterOptionsQuery{})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondData(w, http.StatusOK, options)
}

// SemanticSearch handles POST /products/semantic-search
func (h *CatalogHandler) SemanticSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	products, err := h.semanticHandler.Handle(r.Context(), query.SemanticSearchQuery{
		Query: req.Query,
		Limit: req.Limit,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondData(w, http.StatusOK, products)
}

// AddReview handles POST /products/{id}/reviews
func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseProductID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Rating     int    `json:"rating"`
		ReviewText string `json:"review_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.addReviewHandler.Handle(command.AddReviewCommand{
		ProductID:  id,
		UserID:     user.ID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondData(w, http.StatusCreated, review)
}

// ListReviews handles GET /products/{id}/reviews
func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	reviews, err := h.listReviewsHandler.Handle(query.ListReviewsQuery{
		ProductID: id,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondData(w, http.StatusOK, reviews)
}

// RegisterRoutes registers all catalog routes. Static paths come before
// {id} so mux never swallows them as a product id. The optional cacheWrap
// is applied to the read-mostly endpoints.
func (h *CatalogHandler) RegisterRoutes(router *mux.Router, cacheWrap func(http.HandlerFunc) http.HandlerFunc) {
	if cacheWrap == nil {
		cacheWrap = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	router.HandleFunc("/products/featured", h.metricsMiddleware("/products/featured", cacheWrap(h.FeaturedProducts))).Methods("GET")
	router.HandleFunc("/products/filters", h.metricsMiddleware("/products/filters", cacheWrap(h.FilterOptions))).Methods("GET")
	router.HandleFunc("/products/semantic-search", h.metricsMiddleware("/products/semantic-search", h.SemanticSearch)).Methods("POST")
	router.HandleFunc("/products/{id}/reviews", h.metricsMiddleware("/products/{id}/reviews", h.auth.Require(h.AddReview))).Methods("POST")
	router.HandleFunc("/products/{id}/reviews", h.metricsMiddleware("/products/{id}/reviews", h.ListReviews)).Methods("GET")
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/products", h.metricsMiddleware("/products", cacheWrap(h.SearchProducts))).Methods("GET")
}

func parseProductID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func parseSearchFilter(r *http.Request) (filter domain.SearchFilter) {
	params := r.URL.Query()

	filter.Query = params.Get("query")
	filter.Category = params.Get("category")
	filter.Subcategory = params.Get("subcategory")
	filter.ArtForm = params.Get("art_form")
	filter.OriginState = params.Get("state")
	filter.SortBy = params.Get("sortBy")

	if v := params.Get("minPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := params.Get("maxPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &price
		}
	}
	if params.Get("is_featured") == "true" {
		yes := true
		filter.IsFeatured = &yes
	}
	if params.Get("is_handmade") == "true" {
		yes := true
		filter.IsHandmade = &yes
	}

	filter.Limit, _ = strconv.Atoi(params.Get("limit"))
	filter.Offset, _ = strconv.Atoi(params.Get("offset"))
	return filter
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, map[string]interface{}{"success": true, "data": data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(r.Context()).Err(err).Msg("Catalog request failed")
	}
	respondError(w, status, apperr.Message(err))
}
