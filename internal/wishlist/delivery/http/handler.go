package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/artisy/storefront/internal/identity"
	"github.com/artisy/storefront/internal/wishlist/usecase/command"
	"github.com/artisy/storefront/internal/wishlist/usecase/query"
	"github.com/artisy/storefront/pkg/apperr"
	"github.com/artisy/storefront/pkg/logger"
)

// WishlistHandler handles wishlist HTTP requests
type WishlistHandler struct {
	list       *query.ListWishlistHandler
	contains   *query.ContainsHandler
	addItem    *command.AddItemHandler
	removeItem *command.RemoveItemHandler
	auth       *identity.Authenticator
}

// NewWishlistHandler creates a new wishlist HTTP handler
func NewWishlistHandler(
	list *query.ListWishlistHandler,
	contains *query.ContainsHandler,
	addItem *command.AddItemHandler,
	removeItem *command.RemoveItemHandler,
	auth *identity.Authenticator,
) *WishlistHandler {
	return &WishlistHandler{
		list:       list,
		contains:   contains,
		addItem:    addItem,
		removeItem: removeItem,
		auth:       auth,
	}
}

// RegisterRoutes registers wishlist routes. The membership check allows
// anonymous visitors; everything else requires a user.
func (h *WishlistHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/wishlist", h.auth.Require(h.ListWishlist)).Methods("GET")
	router.HandleFunc("/wishlist/items", h.auth.Require(h.AddItem)).Methods("POST")
	router.HandleFunc("/wishlist/items/{id}", h.auth.Require(h.RemoveItem)).Methods("DELETE")
	router.HandleFunc("/wishlist/check/{productId}", h.auth.Optional(h.Contains)).Methods("GET")
}

// ListWishlist handles GET /wishlist
func (h *WishlistHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())

	result, err := h.list.Handle(query.ListWishlistQuery{UserID: user.ID})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

// AddItem handles POST /wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())

	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.addItem.Handle(command.AddItemCommand{
		UserID:    user.ID,
		ProductID: req.ProductID,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, item)
}

// RemoveItem handles DELETE /wishlist/items/{id}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())

	productID, err := parseProductID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.removeItem.Handle(command.RemoveItemCommand{
		UserID:    user.ID,
		ProductID: productID,
	}); err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"removed": true})
}

// Contains handles GET /wishlist/check/{productId}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(mux.Vars(r)["productId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var userID string
	if user, ok := identity.FromContext(r.Context()); ok {
		userID = user.ID
	}

	result, err := h.contains.Handle(query.ContainsQuery{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

func parseProductID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
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
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Wishlist request failed")
	}
	respondError(w, apperr.HTTPStatus(err), apperr.Message(err))
}
