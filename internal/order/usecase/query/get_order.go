package query

import (
	"github.com/artisy/storefront/internal/order/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

// GetOrderQuery represents the query for a single order. UserID is empty
// for anonymous callers.
type GetOrderQuery struct {
	OrderID string
	UserID  string
}

// GetOrderHandler handles single order queries
type GetOrderHandler struct {
	orders domain.Repository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(orders domain.Repository) *GetOrderHandler {
	return &GetOrderHandler{orders: orders}
}

// Handle fetches an order. Orders owned by a user are only visible to
// that user; guest orders are visible to whoever holds the id.
func (h *GetOrderHandler) Handle(q GetOrderQuery) (*domain.Order, error) {
	order, err := h.orders.FindByID(q.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != nil && *order.UserID != q.UserID {
		return nil, apperr.New(apperr.Forbidden, "you do not have access to this order")
	}
	return order, nil
}
