package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/artisy/storefront/internal/cart/usecase/command"
	"github.com/artisy/storefront/internal/cart/usecase/query"
	"github.com/artisy/storefront/internal/identity"
	"github.com/artisy/storefront/pkg/apperr"
	"github.com/artisy/storefront/pkg/logger"
)

// CartHandler handles cart HTTP requests
type CartHandler struct {
	getCart    *query.GetCartHandler
	addItem    *command.AddItemHandler
	updateItem *command.UpdateItemHandler
	removeItem *command.RemoveItemHandler
	clearCart  *command.ClearCartHandler
	auth       *identity.Authenticator
}

// NewCartHandler creates a new cart HTTP handler
func NewCartHandler(
	getCart *query.GetCartHandler,
	addItem *command.AddItemHandler,
	updateItem *command.UpdateItemHandler,
	removeItem *command.RemoveItemHandler,
	clearCart *command.ClearCartHandler,
	auth *identity.Authenticator,
) *CartHandler {
	return &CartHandler{
		getCart:    getCart,
		addItem:    addItem,
		updateItem: updateItem,
		removeItem: removeItem,
		clearCart:  clearCart,
		auth:       auth,
	}
}

// RegisterRoutes registers cart routes. Every cart route requires an
// authenticated user.
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/cart", h.auth.Require(h.GetCart)).Methods("GET")
	router.HandleFunc("/cart/items", h.auth.Require(h.AddItem)).Methods("POST")
	router.HandleFunc("/cart/items/{id}", h.auth.Require(h.UpdateItem)).Methods("PUT")
	router.HandleFunc("/cart/items/{id}", h.auth.Require(h.RemoveItem)).Methods("DELETE")
	router.HandleFunc("/cart/clear", h.auth.Require(h.ClearCart)).Methods("DELETE")
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())

	cart, err := h.getCart.Handle(query.GetCartQuery{UserID: user.ID})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, cart)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.addItem.Handle(command.AddItemCommand{
		UserID:    user.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, cart)
}

// UpdateItem handles PUT /cart/items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())

	productID, err := parseItemID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.updateItem.Handle(command.UpdateItemCommand{
		UserID:    user.ID,
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())

	productID, err := parseItemID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	cart, err := h.removeItem.Handle(command.RemoveItemCommand{
		UserID:    user.ID,
		ProductID: productID,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, cart)
}

// ClearCart handles DELETE /cart/clear
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())

	cart, err := h.clearCart.Handle(command.ClearCartCommand{UserID: user.ID})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, cart)
}

func parseItemID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
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
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Cart request failed")
	}
	respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
}
