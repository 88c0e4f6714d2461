package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/configs"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
	"github.com/rudralabs/rudra/internal/core/ports"
)

// WebhookService manages webhook registrations and delivers events to them.
// Delivery is fully asynchronous: each matching endpoint gets its own
// goroutine and its own timeout, and no outcome ever propagates to the
// operation that fired the event.
type WebhookService struct {
	repo         ports.WebhookRepository
	tenantRepo   ports.TenantRepository
	plans        *plan.Registry
	entitlements ports.EntitlementService
	activity     ports.ActivityRecorder
	httpc        *http.Client
	maxBody      int
	logger       *logrus.Logger
}

func NewWebhookService(repo ports.WebhookRepository, tenantRepo ports.TenantRepository, plans *plan.Registry, entitlements ports.EntitlementService, activity ports.ActivityRecorder, cfg *configs.WebhookConfig, logger *logrus.Logger) *WebhookService {
	return &WebhookService{
		repo:         repo,
		tenantRepo:   tenantRepo,
		plans:        plans,
		entitlements: entitlements,
		activity:     activity,
		httpc:        &http.Client{Timeout: cfg.DeliveryTimeout},
		maxBody:      cfg.MaxResponseBody,
		logger:       logger,
	}
}

// Create registers a webhook after the plan's webhook entitlements pass.
// The generated secret is returned once, on this response only.
func (s *WebhookService) Create(ctx context.Context, ownerEmail, realmName string, req *webhook.CreateWebhookRequest) (*webhook.Webhook, error) {
	t, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName)
	if err != nil {
		return nil, err
	}
	p := s.plans.GetOrFree(t.Plan)
	if err := s.entitlements.CheckFeature(p, plan.FeatureWebhooks); err != nil {
		return nil, err
	}
	count, err := s.repo.Count(ctx, realmName)
	if err != nil {
		return nil, err
	}
	if err := s.entitlements.CheckLimit(p, plan.LimitMaxWebhooks, count); err != nil {
		return nil, err
	}

	w := &webhook.Webhook{
		ID:        uuid.New(),
		RealmName: realmName,
		URL:       req.URL,
		Events:    req.Events,
		Secret:    newWebhookSecret(),
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	s.activity.LogActivity(ctx, ownerEmail, "create_webhook", "Added webhook to "+req.URL, realmName)
	return w, nil
}

func (s *WebhookService) List(ctx context.Context, ownerEmail, realmName string) ([]*webhook.Webhook, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, realmName)
}

func (s *WebhookService) Logs(ctx context.Context, ownerEmail, realmName string, webhookID uuid.UUID) ([]*webhook.Log, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, err
	}
	return s.repo.ListLogs(ctx, webhookID, 100)
}

func (s *WebhookService) Delete(ctx context.Context, ownerEmail, realmName string, webhookID uuid.UUID) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	return s.repo.Delete(ctx, webhookID)
}

// Dispatch fans an event out to every enabled, subscribed webhook on the
// realm. It returns immediately; deliveries run detached from the caller's
// request context.
func (s *WebhookService) Dispatch(realmName, eventType string, data map[string]any) {
	ctx := context.Background()
	webhooks, err := s.repo.List(ctx, realmName)
	if err != nil {
		s.logger.WithError(err).WithField("realm", realmName).Warn("Failed to load webhooks for dispatch")
		return
	}
	for _, w := range webhooks {
		if !w.Enabled || !w.Subscribed(eventType) {
			continue
		}
		go s.deliver(w, eventType, data)
	}
}

func (s *WebhookService) deliver(w *webhook.Webhook, eventType string, data map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), s.httpc.Timeout)
	defer cancel()

	body, err := json.Marshal(webhook.Payload{Type: eventType, Data: data})
	if err != nil {
		s.logger.WithError(err).WithField("webhook_id", w.ID).Error("Failed to encode webhook payload")
		return
	}

	statusCode := 0
	responseBody := ""
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		responseBody = truncate(err.Error(), s.maxBody)
	} else {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Webhook-Secret", w.Secret)
		resp, err := s.httpc.Do(req)
		if err != nil {
			responseBody = truncate(err.Error(), s.maxBody)
		} else {
			statusCode = resp.StatusCode
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, int64(s.maxBody)))
			resp.Body.Close()
			responseBody = string(raw)
		}
	}

	outcome := "failure"
	if statusCode >= 200 && statusCode < 300 {
		outcome = "success"
	}
	webhookDeliveriesTotal.WithLabelValues(eventType, outcome).Inc()

	logEntry := &webhook.Log{
		ID:           uuid.New(),
		WebhookID:    w.ID,
		Event:        eventType,
		StatusCode:   statusCode,
		ResponseBody: responseBody,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.AppendLog(context.Background(), logEntry); err != nil {
		s.logger.WithError(err).WithField("webhook_id", w.ID).Warn("Failed to record webhook delivery")
	}
}

func newWebhookSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
