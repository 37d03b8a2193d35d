package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/calcprep/calcprep-api/billing"
	"github.com/calcprep/calcprep-api/middleware"
	"github.com/calcprep/calcprep-api/models"
)

type stubProvider struct {
	failCreate  bool
	createCalls int
}

func (s *stubProvider) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	s.createCalls++
	if s.failCreate {
		return "", billing.ErrProviderUnavailable
	}
	return "cus_stub", nil
}

func (s *stubProvider) CreateCheckoutSession(ctx context.Context, customerID, priceID, successURL, cancelURL string) (string, error) {
	return "https://checkout.example.com/c/stub", nil
}

func (s *stubProvider) SubscriptionActive(ctx context.Context, customerID string) (bool, error) {
	return false, nil
}

type stubEvents struct {
	event billing.Event
	err   error
}

func (s *stubEvents) ParseWebhook(payload []byte, signature string) (billing.Event, error) {
	return s.event, s.err
}

func postAs(t *testing.T, h http.HandlerFunc, path, body string, user *models.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func createUser(t *testing.T, h *DBHandler, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Role: models.RoleFree}
	if err := h.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestCheckoutReturnsURL(t *testing.T) {
	db := newTestDB(t)
	provider := &stubProvider{}
	h := &DBHandler{DB: db, Billing: billing.NewManager(db, provider, "price_basic", "https://app/ok", "https://app/no")}
	user := createUser(t, h, "student@example.com")

	rr := postAs(t, h.Checkout, "/api/checkout", "", user)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["url"] == "" {
		t.Fatalf("expected a checkout URL")
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.StripeCustomerID == nil || *stored.StripeCustomerID != "cus_stub" {
		t.Fatalf("customer reference not persisted")
	}
}

func TestCheckoutProviderDownIsRetryable(t *testing.T) {
	db := newTestDB(t)
	h := &DBHandler{DB: db, Billing: billing.NewManager(db, &stubProvider{failCreate: true}, "price_basic", "", "")}
	user := createUser(t, h, "student@example.com")

	rr := postAs(t, h.Checkout, "/api/checkout", "", user)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for a provider outage, got %d", rr.Code)
	}
}

func TestCheckoutRequiresIdentity(t *testing.T) {
	db := newTestDB(t)
	h := &DBHandler{DB: db, Billing: billing.NewManager(db, &stubProvider{}, "price_basic", "", "")}

	rr := postAs(t, h.Checkout, "/api/checkout", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestWebhookAppliesVerifiedEvent(t *testing.T) {
	db := newTestDB(t)
	user := &models.User{Email: "student@example.com", Role: models.RoleFree}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	db.Model(user).Update("stripe_customer_id", "cus_hook")

	h := &DBHandler{
		DB:      db,
		Billing: billing.NewManager(db, &stubProvider{}, "price_basic", "", ""),
		Events: &stubEvents{event: billing.Event{
			ID:         "evt_1",
			Kind:       billing.EventActivated,
			CustomerID: "cus_hook",
			OccurredAt: time.Now(),
		}},
	}

	rr := postAs(t, h.HandleBillingWebhook, "/api/webhooks/billing", "{}", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.Role != models.RolePremium {
		t.Fatalf("activation event not applied, role is %s", stored.Role)
	}
}

func TestWebhookRejectsInvalidPayload(t *testing.T) {
	db := newTestDB(t)
	h := &DBHandler{
		DB:      db,
		Billing: billing.NewManager(db, &stubProvider{}, "price_basic", "", ""),
		Events:  &stubEvents{err: billing.ErrInvalidEvent},
	}

	rr := postAs(t, h.HandleBillingWebhook, "/api/webhooks/billing", "not json", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unverifiable event, got %d", rr.Code)
	}
}

func TestWebhookAcknowledgesUnhandledTypes(t *testing.T) {
	db := newTestDB(t)
	h := &DBHandler{
		DB:      db,
		Billing: billing.NewManager(db, &stubProvider{}, "price_basic", "", ""),
		Events:  &stubEvents{err: billing.ErrUnhandledEvent},
	}

	rr := postAs(t, h.HandleBillingWebhook, "/api/webhooks/billing", "{}", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unhandled event types must be acknowledged, got %d", rr.Code)
	}
}

func TestCreateSessionCreatesUserAndLearningPath(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	db := newTestDB(t)
	h := &DBHandler{DB: db}

	rr := postAs(t, h.CreateSession, "/api/auth/session", `{"email":"New.Student@Example.com","name":"New Student"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
	}

	cookies := rr.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "session_token" && c.Value != "" && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("session cookie not set: %+v", cookies)
	}

	var user models.User
	if err := db.Where("email = ?", "new.student@example.com").First(&user).Error; err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if user.Role != models.RoleFree {
		t.Fatalf("new users start free, got %s", user.Role)
	}
	var path models.LearningPath
	if err := db.Where("user_id = ?", user.ID).First(&path).Error; err != nil {
		t.Fatalf("learning path not created with the user: %v", err)
	}
}

func TestCreateSessionRejectsBadEmail(t *testing.T) {
	db := newTestDB(t)
	h := &DBHandler{DB: db}

	rr := postAs(t, h.CreateSession, "/api/auth/session", `{"email":"not-an-email"}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGetMeRequiresIdentity(t *testing.T) {
	db := newTestDB(t)
	h := &DBHandler{DB: db}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rr := httptest.NewRecorder()
	h.GetMe(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	user := createUser(t, h, "me@example.com")
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), user))
	rr = httptest.NewRecorder()
	h.GetMe(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	var view userView
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if view.Email != "me@example.com" || view.Role != models.RoleFree {
		t.Fatalf("unexpected identity view: %+v", view)
	}
}
