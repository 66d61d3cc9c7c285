package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/artisy/storefront/internal/identity"
	"github.com/artisy/storefront/internal/order/domain"
	"github.com/artisy/storefront/internal/order/usecase/command"
	"github.com/artisy/storefront/internal/order/usecase/query"
	"github.com/artisy/storefront/pkg/apperr"
	"github.com/artisy/storefront/pkg/logger"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	createCheckout *command.CreateCheckoutHandler
	listOrders     *query.ListOrdersHandler
	getOrder       *query.GetOrderHandler
	getStatus      *query.GetStatusHandler
	auth           *identity.Authenticator
}

// NewOrderHandler creates a new order HTTP handler
func NewOrderHandler(
	createCheckout *command.CreateCheckoutHandler,
	listOrders *query.ListOrdersHandler,
	getOrder *query.GetOrderHandler,
	getStatus *query.GetStatusHandler,
	auth *identity.Authenticator,
) *OrderHandler {
	return &OrderHandler{
		createCheckout: createCheckout,
		listOrders:     listOrders,
		getOrder:       getOrder,
		getStatus:      getStatus,
		auth:           auth,
	}
}

// RegisterRoutes registers order routes. Checkout and status lookups
// accept guests; history requires a user.
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/orders/checkout", h.auth.Optional(h.CreateCheckout)).Methods("POST")
	router.HandleFunc("/orders", h.auth.Require(h.ListOrders)).Methods("GET")
	router.HandleFunc("/orders/{id}/status", h.auth.Optional(h.GetStatus)).Methods("GET")
	router.HandleFunc("/orders/{id}", h.auth.Optional(h.GetOrder)).Methods("GET")
}

// CreateCheckout handles POST /orders/checkout
func (h *OrderHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string       `json:"email"`
		Items domain.Items `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var userID string
	email := req.Email
	if user, ok := identity.FromContext(r.Context()); ok {
		userID = user.ID
		if email == "" {
			email = user.Email
		}
	}

	result, err := h.createCheckout.Handle(r.Context(), command.CreateCheckoutCommand{
		UserID: userID,
		Email:  email,
		Items:  req.Items,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, result)
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())

	orders, err := h.listOrders.Handle(query.ListOrdersQuery{UserID: user.ID})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, orders)
}

// GetOrder handles GET /orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	var userID string
	if user, ok := identity.FromContext(r.Context()); ok {
		userID = user.ID
	}

	order, err := h.getOrder.Handle(query.GetOrderQuery{
		OrderID: mux.Vars(r)["id"],
		UserID:  userID,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, order)
}

// GetStatus handles GET /orders/{id}/status
func (h *OrderHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.getStatus.Handle(query.GetStatusQuery{OrderID: mux.Vars(r)["id"]})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, map[string]interface{}{"success": true, "data": data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"error": message})
}

func respondAppError(w http.ResponseWriter, r *http.Request, err error) {
	if apperr.KindOf(err) == apperr.Internal {
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Order request failed")
	}
	respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
}
