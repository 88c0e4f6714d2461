package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/rudralabs/rudra/configs"
	"github.com/rudralabs/rudra/internal/application/services"
	"github.com/rudralabs/rudra/internal/core/domain/admin"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
	"github.com/rudralabs/rudra/internal/core/ports"
	"github.com/rudralabs/rudra/internal/infrastructure/health"
	rudrahttp "github.com/rudralabs/rudra/internal/infrastructure/httpserver"
	"github.com/rudralabs/rudra/test/mocks"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestServer wires real services over in-memory mocks the way main does
// over real infrastructure. Two tenants are seeded, both belonging to
// owner@example.com: "acme" on the free plan and "globex" on pro.
func newTestServer(t *testing.T, rateLimiter *mocks.RateLimiterServiceMock) *httptest.Server {
	t.Helper()

	logger := testLogger()
	plans := plan.BuiltinRegistry()
	entitlements := services.NewEntitlementService(logger)
	activity := &mocks.ActivityRecorderMock{}

	accounts := map[string]*admin.Admin{}
	adminRepo := &mocks.AdminRepositoryMock{
		CreateFn: func(ctx context.Context, a *admin.Admin) error {
			if _, ok := accounts[a.Email]; ok {
				return apperr.ErrConflict
			}
			accounts[a.Email] = a
			return nil
		},
		GetByEmailFn: func(ctx context.Context, email string) (*admin.Admin, error) {
			a, ok := accounts[email]
			if !ok {
				return nil, apperr.ErrNotFound
			}
			return a, nil
		},
	}

	tenantRepo := &mocks.TenantRepositoryMock{
		GetByRealmFn: func(ctx context.Context, realmName string) (*tenant.Tenant, error) {
			switch realmName {
			case "acme":
				return &tenant.Tenant{RealmName: "acme", OwnerEmail: "owner@example.com", Plan: "free"}, nil
			case "globex":
				return &tenant.Tenant{RealmName: "globex", OwnerEmail: "owner@example.com", Plan: "pro"}, nil
			}
			return nil, apperr.ErrNotFound
		},
	}
	orgRepo := &mocks.OrganizationRepositoryMock{}
	var storedWebhooks []*webhook.Webhook
	webhookRepo := &mocks.WebhookRepositoryMock{
		CreateFn: func(ctx context.Context, w *webhook.Webhook) error {
			storedWebhooks = append(storedWebhooks, w)
			return nil
		},
		ListFn: func(ctx context.Context, realmName string) ([]*webhook.Webhook, error) {
			return storedWebhooks, nil
		},
		CountFn: func(ctx context.Context, realmName string) (int, error) {
			return len(storedWebhooks), nil
		},
	}
	invitationRepo := &mocks.InvitationRepositoryMock{}
	analyticsRepo := &mocks.AnalyticsRepositoryMock{}
	activityRepo := &mocks.ActivityRepositoryMock{}
	idp := &mocks.IdentityProviderMock{}

	authService := services.NewAuthService(adminRepo, activity, &configs.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}, logger)
	couponService := services.NewCouponService(&mocks.CouponRepositoryMock{}, activity, logger)
	webhookService := services.NewWebhookService(webhookRepo, tenantRepo, plans, entitlements, activity, &configs.WebhookConfig{DeliveryTimeout: time.Second, MaxResponseBody: 1024}, logger)
	tenantService := services.NewTenantService(tenantRepo, orgRepo, webhookRepo, invitationRepo, analyticsRepo, idp, plans, entitlements, couponService, activity, logger)
	userService := services.NewUserService(tenantRepo, idp, plans, entitlements, activity, webhookService, logger)
	orgService := services.NewOrganizationService(orgRepo, invitationRepo, tenantRepo, idp, plans, entitlements, activity, webhookService, &mocks.EmailServiceMock{}, logger)
	ssoService := services.NewSSOService(tenantRepo, idp, plans, entitlements, activity, logger)
	analyticsService := services.NewAnalyticsService(analyticsRepo, activityRepo, tenantRepo, orgRepo, idp, plans, entitlements, logger)

	if rateLimiter == nil {
		rateLimiter = &mocks.RateLimiterServiceMock{}
	}

	deps := rudrahttp.ServerDeps{
		AuthService:        authService,
		TenantService:      tenantService,
		UserService:        userService,
		OrgService:         orgService,
		SSOService:         ssoService,
		WebhookService:     webhookService,
		CouponService:      couponService,
		AnalyticsService:   analyticsService,
		RateLimiterService: rateLimiter,
		Plans:              plans,
		HealthCheckers:     []ports.HealthChecker{health.NewIdentityProviderHealthChecker(idp)},
	}
	srv := rudrahttp.NewServer(&rudrahttp.ServerConfig{
		Host:         "127.0.0.1",
		Port:         "0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		IdleTimeout:  time.Second,
	}, logger, deps)

	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)
	return ts
}

func registerOwner(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    "owner@example.com",
		"password": "hunter2hunter2",
		"name":     "Owner",
	})
	resp, err := http.Post(ts.URL+"/api/v1/auth/register", echo.MIMEApplicationJSON, bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session admin.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func authedRequest(t *testing.T, method, url, token string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", echo.MIMEApplicationJSON)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAuthEndpoints_RegisterLoginProfile(t *testing.T) {
	ts := newTestServer(t, nil)
	token := registerOwner(t, ts)

	body, _ := json.Marshal(map[string]string{"email": "owner@example.com", "password": "hunter2hunter2"})
	resp, err := http.Post(ts.URL+"/api/v1/auth/login", echo.MIMEApplicationJSON, bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	me := authedRequest(t, http.MethodGet, ts.URL+"/api/v1/auth/me", token, nil)
	defer me.Body.Close()
	require.Equal(t, http.StatusOK, me.StatusCode)

	var profile admin.Admin
	require.NoError(t, json.NewDecoder(me.Body).Decode(&profile))
	require.Equal(t, "owner@example.com", profile.Email)
}

func TestLogin_BadCredentialsReturns401(t *testing.T) {
	ts := newTestServer(t, nil)
	registerOwner(t, ts)

	body, _ := json.Marshal(map[string]string{"email": "owner@example.com", "password": "wrong"})
	resp, err := http.Post(ts.URL+"/api/v1/auth/login", echo.MIMEApplicationJSON, bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/tenants")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPlans_PublicEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/plans")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Plans []*plan.Plan `json:"plans"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Plans, 4)
}

func TestEntitlementDenialMapsTo403(t *testing.T) {
	ts := newTestServer(t, nil)
	token := registerOwner(t, ts)

	// Webhooks are not in the free plan.
	body, _ := json.Marshal(map[string]any{"url": "https://example.com/hook", "events": []string{"user.created"}})
	resp := authedRequest(t, http.MethodPost, ts.URL+"/api/v1/tenants/acme/webhooks", token, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateWebhook_SecretDisclosedOnceOnCreate(t *testing.T) {
	ts := newTestServer(t, nil)
	token := registerOwner(t, ts)

	body, _ := json.Marshal(map[string]any{"url": "https://example.com/hook", "events": []string{"user.created"}})
	resp := authedRequest(t, http.MethodPost, ts.URL+"/api/v1/tenants/globex/webhooks", token, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	secret, ok := created["secret"].(string)
	require.True(t, ok, "create response must carry the secret")
	require.Len(t, secret, 64)

	// Subsequent reads never expose it again.
	list := authedRequest(t, http.MethodGet, ts.URL+"/api/v1/tenants/globex/webhooks", token, nil)
	defer list.Body.Close()
	require.Equal(t, http.StatusOK, list.StatusCode)

	var listed struct {
		Webhooks []map[string]any `json:"webhooks"`
	}
	require.NoError(t, json.NewDecoder(list.Body).Decode(&listed))
	require.Len(t, listed.Webhooks, 1)
	require.NotContains(t, listed.Webhooks[0], "secret")
	require.Equal(t, created["id"], listed.Webhooks[0]["id"])
}

func TestUnknownRealmMapsTo404(t *testing.T) {
	ts := newTestServer(t, nil)
	token := registerOwner(t, ts)

	resp := authedRequest(t, http.MethodGet, ts.URL+"/api/v1/tenants/ghost", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRealmRoutes_RateLimited(t *testing.T) {
	rl := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, realmName string) (bool, int, int, time.Time, error) {
		return false, 0, 100, time.Now().Add(time.Minute), nil
	}}
	ts := newTestServer(t, rl)
	token := registerOwner(t, ts)

	resp := authedRequest(t, http.MethodGet, ts.URL+"/api/v1/tenants/acme", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "100", resp.Header.Get("X-RateLimit-Limit"))
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "healthy", payload["status"])

	deps, ok := payload["dependencies"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "healthy", deps["keycloak"])
}
