package billing

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/calcprep/calcprep-api/models"
)

// Manager mediates all subscription state for users: customer creation,
// checkout initiation, webhook-driven role transitions, and reconciliation
// against provider truth.
type Manager struct {
	db         *gorm.DB
	provider   Provider
	priceID    string
	successURL string
	cancelURL  string
}

func NewManager(db *gorm.DB, provider Provider, priceID, successURL, cancelURL string) *Manager {
	return &Manager{
		db:         db,
		provider:   provider,
		priceID:    priceID,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// GetOrCreateCustomer returns the user's billing customer reference,
// creating one with the provider on first use. The reference is persisted
// only after the provider confirms, and only into a NULL column, so a
// failed create leaves the user untouched and a concurrent create from a
// duplicate tab cannot overwrite an already-stored reference. Losing that
// race leaves at most one orphaned provider customer, which is logged for
// cleanup.
func (m *Manager) GetOrCreateCustomer(ctx context.Context, user *models.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	customerID, err := m.provider.CreateCustomer(ctx, user.Email, user.Name)
	if err != nil {
		return "", err
	}

	res := m.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND stripe_customer_id IS NULL", user.ID).
		Update("stripe_customer_id", customerID)
	if res.Error != nil {
		return "", fmt.Errorf("billing: persist customer reference: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var fresh models.User
		if err := m.db.WithContext(ctx).First(&fresh, user.ID).Error; err != nil {
			return "", fmt.Errorf("billing: reload user %d: %w", user.ID, err)
		}
		if fresh.StripeCustomerID == nil || *fresh.StripeCustomerID == "" {
			return "", fmt.Errorf("billing: customer reference for user %d vanished mid-write", user.ID)
		}
		log.Printf("GetOrCreateCustomer: lost create race for user %d, orphaned provider customer %s superseded by %s",
			user.ID, customerID, *fresh.StripeCustomerID)
		user.StripeCustomerID = fresh.StripeCustomerID
		return *fresh.StripeCustomerID, nil
	}

	user.StripeCustomerID = &customerID
	return customerID, nil
}

// BeginPurchase starts a hosted checkout for the configured subscription
// price and returns the URL to redirect the browser to. It never changes
// the user's role; that happens only on a confirmed payment event.
func (m *Manager) BeginPurchase(ctx context.Context, user *models.User) (string, error) {
	customerID, err := m.GetOrCreateCustomer(ctx, user)
	if err != nil {
		return "", err
	}

	url, err := m.provider.CreateCheckoutSession(ctx, customerID, m.priceID, m.successURL, m.cancelURL)
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", fmt.Errorf("%w: empty checkout URL", ErrProviderUnavailable)
	}
	return url, nil
}

// ApplyEvent consumes one verified provider event. It is idempotent under
// at-least-once delivery and safe under reordering: the role is computed
// from the event's declared status and written through a conditional update
// that only fires when the event is newer than the last one applied.
// Events that cannot be matched to a user are logged and dropped rather
// than surfaced as retryable failures.
func (m *Manager) ApplyEvent(ctx context.Context, ev Event) error {
	role, ok := roleForKind(ev.Kind)
	if !ok {
		log.Printf("ApplyEvent: dropping event %s with unknown kind %q", ev.ID, ev.Kind)
		return nil
	}
	if ev.CustomerID == "" {
		log.Printf("ApplyEvent: dropping event %s with no customer reference", ev.ID)
		return nil
	}

	var user models.User
	err := m.db.WithContext(ctx).Where("stripe_customer_id = ?", ev.CustomerID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ApplyEvent: dropping event %s for unknown customer %s", ev.ID, ev.CustomerID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("billing: look up customer %s: %w", ev.CustomerID, err)
	}

	res := m.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND (last_billing_event_at IS NULL OR last_billing_event_at < ?)", user.ID, ev.OccurredAt).
		Updates(map[string]interface{}{
			"role":                  role,
			"last_billing_event_at": ev.OccurredAt,
		})
	if res.Error != nil {
		return fmt.Errorf("billing: apply event %s: %w", ev.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Stale or duplicate delivery; the stored state is newer.
		log.Printf("ApplyEvent: event %s (%s) is not newer than stored state for user %d, skipping", ev.ID, ev.Kind, user.ID)
		return nil
	}

	log.Printf("ApplyEvent: user %d role set to %s by event %s (%s)", user.ID, role, ev.ID, ev.Kind)
	return nil
}

// Reconcile re-reads subscription truth from the provider and overwrites
// the local role. It is the recovery path for missed or delayed webhooks,
// meant to be called sparingly (e.g. when the user lands on the checkout
// success page), not on every request.
func (m *Manager) Reconcile(ctx context.Context, user *models.User) (models.Role, error) {
	role := models.RoleFree
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		active, err := m.provider.SubscriptionActive(ctx, *user.StripeCustomerID)
		if err != nil {
			return user.Role, err
		}
		if active {
			role = models.RolePremium
		}
	}

	if role == user.Role {
		return role, nil
	}
	if err := m.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("role", role).Error; err != nil {
		return user.Role, fmt.Errorf("billing: reconcile user %d: %w", user.ID, err)
	}
	log.Printf("Reconcile: user %d role corrected from %s to %s", user.ID, user.Role, role)
	user.Role = role
	return role, nil
}

func roleForKind(kind EventKind) (models.Role, bool) {
	switch kind {
	case EventActivated, EventRenewed:
		return models.RolePremium, true
	case EventCanceled, EventExpired:
		return models.RoleFree, true
	default:
		return "", false
	}
}
