package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/moeeznaveed278/myplug/internal/checkout"
)

// Stripe caps event payloads well below this.
const maxWebhookBody = 1 << 16

// WebhookHandler receives payment-provider events. The signature check is
// the sole authentication boundary protecting inventory and fulfillment
// from forged requests.
type WebhookHandler struct {
	Secret    string
	Fulfiller *checkout.Fulfiller
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		http.Error(w, "Missing stripe-signature header", http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(body, signature, h.Secret)
	if err != nil {
		slog.Warn("Webhook signature verification failed", "error", err)
		http.Error(w, "Webhook signature verification failed", http.StatusBadRequest)
		return
	}

	if event.Type == stripe.EventTypeCheckoutSessionCompleted {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			slog.Error("Failed to decode checkout session from event", "event_id", event.ID, "error", err)
		} else {
			// Process logs and swallows internal failures; once the
			// signature verifies we always acknowledge, so the provider's
			// retry loop never replays side effects that aren't safe to
			// repeat.
			h.Fulfiller.Process(r.Context(), checkout.CompletedFromSession(&session))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"received": true})
}
