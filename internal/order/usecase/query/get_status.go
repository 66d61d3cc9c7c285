package query

import (
	"time"

	"github.com/artisy/storefront/internal/order/domain"
)

// GetStatusQuery represents the query for an order's payment status
type GetStatusQuery struct {
	OrderID string
}

// GetStatusResult is the trimmed view used by the order-success page
type GetStatusResult struct {
	Status    string    `json:"status"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// GetStatusHandler handles order status queries
type GetStatusHandler struct {
	orders domain.Repository
}

// NewGetStatusHandler creates a new order status handler
func NewGetStatusHandler(orders domain.Repository) *GetStatusHandler {
	return &GetStatusHandler{orders: orders}
}

// Handle executes the status query
func (h *GetStatusHandler) Handle(q GetStatusQuery) (*GetStatusResult, error) {
	order, err := h.orders.FindByID(q.OrderID)
	if err != nil {
		return nil, err
	}
	return &GetStatusResult{
		Status:    order.Status,
		Amount:    order.Amount,
		CreatedAt: order.CreatedAt,
	}, nil
}
