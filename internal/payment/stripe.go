package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/artisy/storefront/internal/order/domain"
)

// StripeGateway implements domain.CheckoutGateway against Stripe Checkout
type StripeGateway struct {
	siteURL string
}

// NewStripeGateway configures the Stripe client and returns a gateway.
// The secret key is process-global in the Stripe SDK.
func NewStripeGateway(secretKey, siteURL string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{siteURL: siteURL}
}

// CreateCheckoutSession opens a hosted Stripe Checkout page for the
// order. The order id rides along as metadata on both the session and
// the payment intent so webhooks can reconcile either object.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutSessionRequest) (*domain.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String("inr"),
			UnitAmount: stripe.Int64(int64(math.Round(item.Price * 100))),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(item.Name),
			},
		}
		if item.ImageURL != "" {
			priceData.ProductData.Images = stripe.StringSlice([]string{item.ImageURL})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: priceData,
			Quantity:  stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:     stripe.String(req.Email),
		LineItems:         lineItems,
		SuccessURL:        stripe.String(g.siteURL + "/order-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(g.siteURL + "/checkout"),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{},
	}
	params.Context = ctx
	params.AddMetadata("orderId", req.OrderID)
	params.PaymentIntentData.AddMetadata("orderId", req.OrderID)
	if req.UserID != "" {
		params.AddMetadata("userId", req.UserID)
		params.PaymentIntentData.AddMetadata("userId", req.UserID)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &domain.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
