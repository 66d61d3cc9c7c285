package command

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/artisy/storefront/internal/order/domain"
	"github.com/artisy/storefront/pkg/apperr"
	"github.com/artisy/storefront/pkg/logger"
)

// CreateCheckoutCommand represents the command to start a checkout
type CreateCheckoutCommand struct {
	UserID string
	Email  string
	Items  domain.Items
}

// CreateCheckoutResult points the client at the hosted checkout page
type CreateCheckoutResult struct {
	OrderID     string `json:"order_id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckoutHandler handles checkout commands
type CreateCheckoutHandler struct {
	orders  domain.Repository
	gateway domain.CheckoutGateway
}

// NewCreateCheckoutHandler creates a new checkout handler
func NewCreateCheckoutHandler(orders domain.Repository, gateway domain.CheckoutGateway) *CreateCheckoutHandler {
	return &CreateCheckoutHandler{orders: orders, gateway: gateway}
}

// Handle records a pending order and opens a hosted checkout session for
// it. The order is created before the provider call so a webhook can
// always find it by metadata. The amount is computed from the submitted
// line items as-is; prices are not re-read from the catalog.
func (h *CreateCheckoutHandler) Handle(ctx context.Context, cmd CreateCheckoutCommand) (*CreateCheckoutResult, error) {
	if len(cmd.Items) == 0 {
		return nil, apperr.New(apperr.InvalidArgument, "cart is empty")
	}
	if strings.TrimSpace(cmd.Email) == "" {
		return nil, apperr.New(apperr.InvalidArgument, "email is required")
	}
	for _, item := range cmd.Items {
		if item.ProductID == 0 || item.Quantity <= 0 || item.Price < 0 {
			return nil, apperr.New(apperr.InvalidArgument, "invalid cart item")
		}
	}

	var amount float64
	for _, item := range cmd.Items {
		amount += item.Price * float64(item.Quantity)
	}
	amount = math.Round(amount*100) / 100

	order := &domain.Order{
		ID:     uuid.NewString(),
		Email:  cmd.Email,
		Amount: amount,
		Status: domain.StatusPending,
		Items:  cmd.Items,
	}
	if cmd.UserID != "" {
		order.UserID = &cmd.UserID
	}
	if err := h.orders.Create(order); err != nil {
		return nil, err
	}

	session, err := h.gateway.CreateCheckoutSession(ctx, domain.CheckoutSessionRequest{
		OrderID: order.ID,
		UserID:  cmd.UserID,
		Email:   cmd.Email,
		Items:   cmd.Items,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	// Best effort: the webhook can still resolve the order through
	// session metadata if this write fails.
	if err := h.orders.UpdateSessionID(order.ID, session.ID); err != nil {
		logger.Warn(ctx).Err(err).Str("order_id", order.ID).Msg("Failed to back-fill checkout session id")
	}

	return &CreateCheckoutResult{
		OrderID:     order.ID,
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}
