package webhook

import (
	"context"

	"github.com/artisy/storefront/internal/order/domain"
	"github.com/artisy/storefront/kafka"
	"github.com/artisy/storefront/pkg/apperr"
	"github.com/artisy/storefront/pkg/logger"
)

// EventPublisher publishes order lifecycle events downstream
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event kafka.OrderEvent) error
}

// Reconciler applies verified payment provider events to orders. Every
// method is idempotent: replayed events leave settled orders alone.
type Reconciler struct {
	orders    domain.Repository
	publisher EventPublisher
}

// NewReconciler creates a new webhook reconciler. The publisher may be
// nil when the event bus is not configured.
func NewReconciler(orders domain.Repository, publisher EventPublisher) *Reconciler {
	return &Reconciler{orders: orders, publisher: publisher}
}

// MarkPaidBySession transitions the order behind a completed checkout
// session to paid. Unknown sessions are logged and ignored; an order is
// never fabricated from a webhook.
func (r *Reconciler) MarkPaidBySession(ctx context.Context, sessionID string) error {
	order, err := r.orders.FindBySessionID(sessionID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			logger.Warn(ctx).Str("session_id", sessionID).Msg("Webhook for unknown checkout session")
			return nil
		}
		return err
	}
	if order.Status == domain.StatusPaid {
		return nil
	}

	if err := r.orders.UpdateStatus(order.ID, domain.StatusPaid); err != nil {
		return err
	}
	r.publish(ctx, kafka.EventTypeOrderPaid, order)
	return nil
}

// MarkCancelled transitions a failed order to cancelled. Orders that
// already settled as paid are left alone.
func (r *Reconciler) MarkCancelled(ctx context.Context, orderID string) error {
	order, err := r.orders.FindByID(orderID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			logger.Warn(ctx).Str("order_id", orderID).Msg("Webhook for unknown order")
			return nil
		}
		return err
	}
	if order.Status == domain.StatusPaid || order.Status == domain.StatusCancelled {
		return nil
	}

	if err := r.orders.UpdateStatus(order.ID, domain.StatusCancelled); err != nil {
		return err
	}
	r.publish(ctx, kafka.EventTypeOrderCancelled, order)
	return nil
}

// publish sends the order event best-effort. Publishing failures never
// fail the reconciliation.
func (r *Reconciler) publish(ctx context.Context, eventType string, order *domain.Order) {
	if r.publisher == nil {
		return
	}
	event := kafka.OrderEvent{
		Type:    eventType,
		OrderID: order.ID,
		Email:   order.Email,
		Amount:  order.Amount,
	}
	if order.UserID != nil {
		event.UserID = *order.UserID
	}
	if err := r.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Str("order_id", order.ID).Msg("Failed to publish order event")
	}
}
