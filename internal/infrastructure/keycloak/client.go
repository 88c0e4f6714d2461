// Package keycloak implements ports.IdentityProvider against the Keycloak
// admin REST API.
package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/configs"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
)

// Client talks to a Keycloak instance with master-realm admin credentials.
// Admin tokens are fetched with the password grant and cached briefly so a
// burst of gateway calls does not hammer the token endpoint.
type Client struct {
	baseURL       string
	adminUser     string
	adminPassword string
	tokenTTL      time.Duration
	httpc         *http.Client
	logger        *logrus.Logger

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewClient(cfg *configs.KeycloakConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		adminUser:     cfg.AdminUser,
		adminPassword: cfg.AdminPassword,
		tokenTTL:      cfg.TokenCacheTTL,
		httpc:         &http.Client{Timeout: cfg.RequestTimeout},
		logger:        logger,
	}
}

func (c *Client) adminToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}

	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {"admin-cli"},
		"username":   {c.adminUser},
		"password":   {c.adminPassword},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/realms/master/protocol/openid-connect/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch admin token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.token = body.AccessToken
	c.tokenExp = time.Now().Add(c.tokenTTL)
	return c.token, nil
}

// call performs an authenticated admin API request. A non-nil out is
// populated from a 2xx JSON body. The Location header of the response is
// returned so callers can extract IDs of created resources.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) (string, error) {
	token, err := c.adminToken(ctx)
	if err != nil {
		return "", err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return "", apperr.ErrConflict
	case resp.StatusCode == http.StatusNotFound:
		return "", apperr.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("admin API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.Header.Get("Location"), nil
}

func upstream(op string, err error) error {
	return apperr.Upstream(op, err)
}

// locationID extracts the trailing path segment of a Location header.
func locationID(location string) string {
	if location == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(location, "/"), "/")
	return parts[len(parts)-1]
}

// softList performs a read whose failure should not break dashboards. On
// any error it logs and reports ok=false so callers return empty results.
func (c *Client) softList(ctx context.Context, path string, query url.Values, out any) bool {
	if _, err := c.call(ctx, http.MethodGet, path, query, nil, out); err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("Best-effort identity provider read failed")
		return false
	}
	return true
}
