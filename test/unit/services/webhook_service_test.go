package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/rudralabs/rudra/configs"
	impl "github.com/rudralabs/rudra/internal/application/services"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
	tmocks "github.com/rudralabs/rudra/test/mocks"
)

func ownedTenantRepo(realm, planID string) *tmocks.TenantRepositoryMock {
	return &tmocks.TenantRepositoryMock{
		GetByRealmFn: func(ctx context.Context, realmName string) (*tenant.Tenant, error) {
			if realmName != realm {
				return nil, apperr.ErrNotFound
			}
			return &tenant.Tenant{RealmName: realm, OwnerEmail: "owner@example.com", Plan: planID}, nil
		},
	}
}

func newWebhookService(repo *tmocks.WebhookRepositoryMock, tenants *tmocks.TenantRepositoryMock) *impl.WebhookService {
	cfg := &configs.WebhookConfig{DeliveryTimeout: 2 * time.Second, MaxResponseBody: 1024}
	return impl.NewWebhookService(repo, tenants, plan.BuiltinRegistry(), impl.NewEntitlementService(testLogger()), &tmocks.ActivityRecorderMock{}, cfg, testLogger())
}

func TestCreateWebhook_FreePlanDenied(t *testing.T) {
	svc := newWebhookService(&tmocks.WebhookRepositoryMock{}, ownedTenantRepo("acme", "free"))

	_, err := svc.Create(context.Background(), "owner@example.com", "acme", &webhook.CreateWebhookRequest{
		URL:    "https://example.com/hook",
		Events: []string{webhook.EventUserCreated},
	})
	if !apperr.IsEntitlement(err) {
		t.Fatalf("expected entitlement denial, got %v", err)
	}
}

func TestCreateWebhook_LimitReached(t *testing.T) {
	repo := &tmocks.WebhookRepositoryMock{
		CountFn: func(ctx context.Context, realmName string) (int, error) { return 5, nil },
	}
	svc := newWebhookService(repo, ownedTenantRepo("acme", "pro"))

	_, err := svc.Create(context.Background(), "owner@example.com", "acme", &webhook.CreateWebhookRequest{
		URL:    "https://example.com/hook",
		Events: []string{webhook.EventUserCreated},
	})
	if !apperr.IsEntitlement(err) {
		t.Fatalf("expected entitlement denial at webhook limit, got %v", err)
	}
}

func TestCreateWebhook_GeneratesSecret(t *testing.T) {
	var stored *webhook.Webhook
	repo := &tmocks.WebhookRepositoryMock{
		CreateFn: func(ctx context.Context, w *webhook.Webhook) error { stored = w; return nil },
	}
	svc := newWebhookService(repo, ownedTenantRepo("acme", "pro"))

	w, err := svc.Create(context.Background(), "owner@example.com", "acme", &webhook.CreateWebhookRequest{
		URL:    "https://example.com/hook",
		Events: []string{webhook.EventUserCreated, webhook.EventUserDeleted},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Secret == "" || len(w.Secret) != 64 {
		t.Fatalf("expected 32-byte hex secret, got %q", w.Secret)
	}
	if !w.Enabled {
		t.Fatal("new webhooks should start enabled")
	}
	if stored == nil || stored.Secret != w.Secret {
		t.Fatal("stored webhook should carry the returned secret")
	}
}

func TestDispatch_DeliversToSubscribedOnly(t *testing.T) {
	var mu sync.Mutex
	var gotSecret, gotContentType string
	hits := 0
	done := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		gotSecret = r.Header.Get("X-Webhook-Secret")
		gotContentType = r.Header.Get("Content-Type")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
		done <- struct{}{}
	}))
	defer srv.Close()

	subscribed := &webhook.Webhook{ID: uuid.New(), URL: srv.URL, Events: []string{webhook.EventUserCreated}, Secret: "s1", Enabled: true}
	other := &webhook.Webhook{ID: uuid.New(), URL: srv.URL, Events: []string{webhook.EventOrgCreated}, Secret: "s2", Enabled: true}
	disabled := &webhook.Webhook{ID: uuid.New(), URL: srv.URL, Events: []string{webhook.EventUserCreated}, Secret: "s3", Enabled: false}

	logged := make(chan *webhook.Log, 3)
	repo := &tmocks.WebhookRepositoryMock{
		ListFn: func(ctx context.Context, realmName string) ([]*webhook.Webhook, error) {
			return []*webhook.Webhook{subscribed, other, disabled}, nil
		},
		AppendLogFn: func(ctx context.Context, l *webhook.Log) error { logged <- l; return nil },
	}
	svc := newWebhookService(repo, ownedTenantRepo("acme", "pro"))

	svc.Dispatch("acme", webhook.EventUserCreated, map[string]any{"user_id": "u1"})

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("delivery never reached the endpoint")
	}
	select {
	case l := <-logged:
		if l.WebhookID != subscribed.ID {
			t.Fatalf("delivery logged against wrong webhook: %v", l.WebhookID)
		}
		if l.StatusCode != http.StatusOK {
			t.Fatalf("expected logged status 200, got %d", l.StatusCode)
		}
		if l.Event != webhook.EventUserCreated {
			t.Fatalf("expected event %q in log, got %q", webhook.EventUserCreated, l.Event)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("delivery log never appended")
	}

	mu.Lock()
	defer mu.Unlock()
	if hits != 1 {
		t.Fatalf("expected exactly one delivery, got %d", hits)
	}
	if gotSecret != "s1" {
		t.Fatalf("expected secret header s1, got %q", gotSecret)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotContentType)
	}
}

func TestDispatch_LogsTransportFailure(t *testing.T) {
	logged := make(chan *webhook.Log, 1)
	repo := &tmocks.WebhookRepositoryMock{
		ListFn: func(ctx context.Context, realmName string) ([]*webhook.Webhook, error) {
			return []*webhook.Webhook{
				{ID: uuid.New(), URL: "http://127.0.0.1:1", Events: []string{webhook.EventUserDeleted}, Enabled: true},
			}, nil
		},
		AppendLogFn: func(ctx context.Context, l *webhook.Log) error { logged <- l; return nil },
	}
	svc := newWebhookService(repo, ownedTenantRepo("acme", "pro"))

	svc.Dispatch("acme", webhook.EventUserDeleted, nil)

	select {
	case l := <-logged:
		if l.StatusCode != 0 {
			t.Fatalf("transport failures should log status 0, got %d", l.StatusCode)
		}
		if l.ResponseBody == "" {
			t.Fatal("transport failure should record the error text")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("failed delivery was never logged")
	}
}

func TestDispatch_CountsDeliveryOutcomes(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer target.Close()

	logged := make(chan *webhook.Log, 2)
	repo := &tmocks.WebhookRepositoryMock{
		ListFn: func(ctx context.Context, realmName string) ([]*webhook.Webhook, error) {
			return []*webhook.Webhook{
				{ID: uuid.New(), URL: target.URL, Events: []string{webhook.EventUserCreated}, Enabled: true},
				{ID: uuid.New(), URL: "http://127.0.0.1:1", Events: []string{webhook.EventUserCreated}, Enabled: true},
			}, nil
		},
		AppendLogFn: func(ctx context.Context, l *webhook.Log) error { logged <- l; return nil },
	}
	svc := newWebhookService(repo, ownedTenantRepo("acme", "pro"))

	successes := impl.GetWebhookDeliveriesTotal().WithLabelValues(webhook.EventUserCreated, "success")
	failures := impl.GetWebhookDeliveriesTotal().WithLabelValues(webhook.EventUserCreated, "failure")
	successBefore := testutil.ToFloat64(successes)
	failureBefore := testutil.ToFloat64(failures)

	svc.Dispatch("acme", webhook.EventUserCreated, nil)

	for i := 0; i < 2; i++ {
		select {
		case <-logged:
		case <-time.After(5 * time.Second):
			t.Fatal("delivery was never logged")
		}
	}

	if got := testutil.ToFloat64(successes) - successBefore; got != 1 {
		t.Fatalf("expected one success counted, got %v", got)
	}
	if got := testutil.ToFloat64(failures) - failureBefore; got != 1 {
		t.Fatalf("expected one failure counted, got %v", got)
	}
}

func TestWebhookLogs_NotOwner(t *testing.T) {
	svc := newWebhookService(&tmocks.WebhookRepositoryMock{}, ownedTenantRepo("acme", "pro"))

	_, err := svc.Logs(context.Background(), "intruder@example.com", "acme", uuid.New())
	if err == nil {
		t.Fatal("expected ownership check to fail")
	}
}
