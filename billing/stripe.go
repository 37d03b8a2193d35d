package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/subscription"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeConfig holds Stripe credentials and the single subscription price
// the site sells.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string
}

// StripeClient implements Provider and EventSource against Stripe.
type StripeClient struct {
	config StripeConfig
}

func NewStripeClient(cfg StripeConfig) *StripeClient {
	stripe.Key = cfg.SecretKey
	return &StripeClient{config: cfg}
}

func (c *StripeClient) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	cust, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: create customer: %v", ErrProviderUnavailable, err)
	}
	return cust.ID, nil
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, customerID, priceID, successURL, cancelURL string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx
	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: create checkout session: %v", ErrProviderUnavailable, err)
	}
	return s.URL, nil
}

func (c *StripeClient) SubscriptionActive(ctx context.Context, customerID string) (bool, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Context = ctx
	iter := subscription.List(params)
	for iter.Next() {
		return true, nil
	}
	if err := iter.Err(); err != nil {
		return false, fmt.Errorf("%w: list subscriptions: %v", ErrProviderUnavailable, err)
	}
	return false, nil
}

// ParseWebhook verifies the Stripe signature and maps the event onto the
// normalized Event type. OccurredAt comes from Stripe's own event clock so
// that replayed or reordered deliveries can be discarded downstream.
func (c *StripeClient) ParseWebhook(payload []byte, signature string) (Event, error) {
	evt, err := webhook.ConstructEvent(payload, signature, c.config.WebhookSecret)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	occurredAt := time.Unix(evt.Created, 0)

	switch evt.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(evt.Data.Raw, &sub); err != nil {
			return Event{}, fmt.Errorf("%w: decode subscription: %v", ErrInvalidEvent, err)
		}
		kind, ok := kindForStatus(sub.Status)
		if !ok {
			return Event{}, fmt.Errorf("%w: subscription status %q", ErrUnhandledEvent, sub.Status)
		}
		return Event{
			ID:             evt.ID,
			Kind:           kind,
			CustomerID:     customerIDOf(sub.Customer),
			SubscriptionID: sub.ID,
			OccurredAt:     occurredAt,
		}, nil

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(evt.Data.Raw, &sub); err != nil {
			return Event{}, fmt.Errorf("%w: decode subscription: %v", ErrInvalidEvent, err)
		}
		return Event{
			ID:             evt.ID,
			Kind:           EventCanceled,
			CustomerID:     customerIDOf(sub.Customer),
			SubscriptionID: sub.ID,
			OccurredAt:     occurredAt,
		}, nil

	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(evt.Data.Raw, &inv); err != nil {
			return Event{}, fmt.Errorf("%w: decode invoice: %v", ErrInvalidEvent, err)
		}
		return Event{
			ID:         evt.ID,
			Kind:       EventRenewed,
			CustomerID: customerIDOf(inv.Customer),
			OccurredAt: occurredAt,
		}, nil

	default:
		return Event{}, fmt.Errorf("%w: %s", ErrUnhandledEvent, evt.Type)
	}
}

// kindForStatus maps a Stripe subscription status to a role-affecting event
// kind. past_due keeps access while Stripe retries the payment; the
// terminal statuses revoke it.
func kindForStatus(status stripe.SubscriptionStatus) (EventKind, bool) {
	switch status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing, stripe.SubscriptionStatusPastDue:
		return EventActivated, true
	case stripe.SubscriptionStatusCanceled:
		return EventCanceled, true
	case stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusIncompleteExpired:
		return EventExpired, true
	default:
		return "", false
	}
}

func customerIDOf(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}
