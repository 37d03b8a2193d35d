package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/calcprep/calcprep-api/billing"
	"github.com/calcprep/calcprep-api/middleware"
	"github.com/calcprep/calcprep-api/utils"
)

// Checkout starts a subscription purchase and returns the hosted checkout
// URL. Provider outages surface as retryable failures; the user record is
// never left half-initialized.
func (db *DBHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	url, err := db.Billing.BeginPurchase(r.Context(), user)
	if errors.Is(err, billing.ErrProviderUnavailable) {
		log.Printf("Checkout: provider unavailable for user %d: %v", user.ID, err)
		http.Error(w, "Payment provider is temporarily unavailable, please try again", http.StatusBadGateway)
		return
	}
	if err != nil {
		log.Printf("Checkout: failed for user %d: %v", user.ID, err)
		http.Error(w, "Failed to start checkout", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

// SyncSubscription re-checks subscription truth with the provider for the
// signed-in user. Called by the success page so the UI unlocks even when
// the webhook is still in flight.
func (db *DBHandler) SyncSubscription(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	role, err := db.Billing.Reconcile(r.Context(), user)
	if errors.Is(err, billing.ErrProviderUnavailable) {
		log.Printf("SyncSubscription: provider unavailable for user %d: %v", user.ID, err)
		http.Error(w, "Payment provider is temporarily unavailable, please try again", http.StatusBadGateway)
		return
	}
	if err != nil {
		log.Printf("SyncSubscription: failed for user %d: %v", user.ID, err)
		http.Error(w, "Failed to refresh subscription", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"role": string(role)})
}
