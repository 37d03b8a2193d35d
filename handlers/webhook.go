package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/calcprep/calcprep-api/billing"
)

const maxWebhookBody = 64 * 1024

// HandleBillingWebhook consumes provider events. Unverifiable payloads are
// dropped with a 400 and never reach user state; event types we do not
// consume are acknowledged so the provider stops retrying them.
func (db *DBHandler) HandleBillingWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		log.Printf("HandleBillingWebhook: failed to read payload: %v", err)
		http.Error(w, "Failed to read payload", http.StatusBadRequest)
		return
	}

	event, err := db.Events.ParseWebhook(payload, r.Header.Get("Stripe-Signature"))
	if errors.Is(err, billing.ErrUnhandledEvent) {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		log.Printf("HandleBillingWebhook: dropping invalid event: %v", err)
		http.Error(w, "Invalid webhook payload", http.StatusBadRequest)
		return
	}

	if err := db.Billing.ApplyEvent(r.Context(), event); err != nil {
		// The provider retries on 5xx, which is what we want for
		// persistence failures.
		log.Printf("HandleBillingWebhook: failed to apply event %s: %v", event.ID, err)
		http.Error(w, "Failed to process event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
