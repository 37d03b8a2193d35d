// Package billing maintains the authoritative mapping from users to
// subscription state and mediates every transition. Role changes happen in
// exactly two places: verified provider webhook events and explicit
// reconciliation against provider truth. Checkout never changes a role.
package billing

import (
	"context"
	"errors"
	"time"
)

// ErrProviderUnavailable marks failures that the caller may retry; nothing
// was persisted locally when it is returned.
var ErrProviderUnavailable = errors.New("billing provider unavailable")

// ErrInvalidEvent marks webhook payloads that failed signature verification
// or could not be decoded. They are dropped, never applied.
var ErrInvalidEvent = errors.New("invalid billing event")

// ErrUnhandledEvent marks verified events of a type this system does not
// consume. The webhook endpoint acknowledges them so the provider stops
// retrying.
var ErrUnhandledEvent = errors.New("unhandled billing event type")

// Provider is the payment-provider port. The production implementation is
// Stripe; tests substitute an in-memory fake.
type Provider interface {
	// CreateCustomer registers a billing customer and returns its
	// provider-side identifier.
	CreateCustomer(ctx context.Context, email, name string) (string, error)

	// CreateCheckoutSession returns the hosted checkout URL for a
	// subscription to the given price.
	CreateCheckoutSession(ctx context.Context, customerID, priceID, successURL, cancelURL string) (string, error)

	// SubscriptionActive reports whether the customer currently has an
	// active subscription. Used only for reconciliation.
	SubscriptionActive(ctx context.Context, customerID string) (bool, error)
}

// EventSource turns a raw webhook delivery into a verified, normalized
// event.
type EventSource interface {
	ParseWebhook(payload []byte, signature string) (Event, error)
}

type EventKind string

const (
	EventActivated EventKind = "activated"
	EventRenewed   EventKind = "renewed"
	EventCanceled  EventKind = "canceled"
	EventExpired   EventKind = "expired"
)

// Event is a subscription status change reported by the provider.
// Delivery is at-least-once with no ordering guarantee, so consumers key on
// OccurredAt (the provider's own timestamp), never on arrival order.
type Event struct {
	ID             string
	Kind           EventKind
	CustomerID     string
	SubscriptionID string
	OccurredAt     time.Time
}
