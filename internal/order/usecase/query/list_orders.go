package query

import "github.com/artisy/storefront/internal/order/domain"

// ListOrdersQuery represents the query for a user's order history
type ListOrdersQuery struct {
	UserID string
}

// ListOrdersHandler handles order history queries
type ListOrdersHandler struct {
	orders domain.Repository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(orders domain.Repository) *ListOrdersHandler {
	return &ListOrdersHandler{orders: orders}
}

// Handle executes the list orders query, newest first
func (h *ListOrdersHandler) Handle(q ListOrdersQuery) ([]domain.Order, error) {
	orders, err := h.orders.FindByUser(q.UserID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
