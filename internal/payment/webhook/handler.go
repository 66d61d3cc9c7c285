package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/artisy/storefront/pkg/logger"
)

// Stripe recommends capping webhook bodies well below this
const maxBodyBytes = 65536

// Handler receives Stripe webhook deliveries. It must see the raw
// request body, so it registers outside any body-rewriting middleware.
type Handler struct {
	reconciler    *Reconciler
	webhookSecret string
}

// NewHandler creates a new webhook handler
func NewHandler(reconciler *Reconciler, webhookSecret string) *Handler {
	return &Handler{reconciler: reconciler, webhookSecret: webhookSecret}
}

// ServeHTTP handles POST /payments/webhook. Signature failures are the
// only rejection; business failures after verification are logged and
// acknowledged so Stripe does not retry forever.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Webhook signature verification failed")
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	switch string(event.Type) {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			logger.Error(r.Context()).Err(err).Msg("Failed to parse checkout session event")
			break
		}
		if err := h.reconciler.MarkPaidBySession(r.Context(), session.ID); err != nil {
			logger.Error(r.Context()).Err(err).Str("session_id", session.ID).Msg("Failed to reconcile paid order")
		}
	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			logger.Error(r.Context()).Err(err).Msg("Failed to parse payment intent event")
			break
		}
		orderID := intent.Metadata["orderId"]
		if orderID == "" {
			logger.Warn(r.Context()).Str("intent_id", intent.ID).Msg("Payment failure without order metadata")
			break
		}
		if err := h.reconciler.MarkCancelled(r.Context(), orderID); err != nil {
			logger.Error(r.Context()).Err(err).Str("order_id", orderID).Msg("Failed to reconcile cancelled order")
		}
	default:
		logger.Debug(r.Context()).Str("type", string(event.Type)).Msg("Ignoring webhook event")
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"received": true}`))
}
