package kafka

import "time"

// TopicOrderEvents carries order lifecycle events
const TopicOrderEvents = "order-events"

// Order event types
const (
	EventTypeOrderPaid      = "order.paid"
	EventTypeOrderCancelled = "order.cancelled"
)

// OrderEvent is published when an order settles one way or the other
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
