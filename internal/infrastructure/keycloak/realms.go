package keycloak

import (
	"context"
	"net/http"
)

// CreateRealm provisions an isolated realm with brute-force protection and
// event logging enabled. The plan ID is stored as a realm attribute so the
// provider side is self-describing.
func (c *Client) CreateRealm(ctx context.Context, name, displayName, plan string) error {
	cfg := map[string]any{
		"realm":                     name,
		"enabled":                   true,
		"displayName":               displayName,
		"sslRequired":               "none",
		"registrationAllowed":       true,
		"loginWithEmailAllowed":     true,
		"resetPasswordAllowed":      true,
		"bruteForceProtected":       true,
		"permanentLockout":          false,
		"maxFailureWaitSeconds":     900,
		"failureFactor":             5,
		"eventsEnabled":             true,
		"eventsExpiration":          2592000,
		"adminEventsEnabled":        true,
		"adminEventsDetailsEnabled": true,
		"attributes":                map[string]string{"plan": plan},
	}
	_, err := c.call(ctx, http.MethodPost, "/admin/realms", nil, cfg, nil)
	return upstream("create realm", err)
}

func (c *Client) GetRealm(ctx context.Context, name string) (map[string]any, error) {
	var out map[string]any
	if _, err := c.call(ctx, http.MethodGet, "/admin/realms/"+name, nil, nil, &out); err != nil {
		return nil, upstream("get realm", err)
	}
	return out, nil
}

func (c *Client) UpdateRealm(ctx context.Context, name string, updates map[string]any) error {
	_, err := c.call(ctx, http.MethodPut, "/admin/realms/"+name, nil, updates, nil)
	return upstream("update realm", err)
}

func (c *Client) DeleteRealm(ctx context.Context, name string) error {
	_, err := c.call(ctx, http.MethodDelete, "/admin/realms/"+name, nil, nil, nil)
	return upstream("delete realm", err)
}
