package keycloak

import (
	"context"
	"net/http"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
)

// GetUserSessions lists a user's active sessions. Failures degrade to an
// empty list so user detail views stay usable.
func (c *Client) GetUserSessions(ctx context.Context, realm, userID string) ([]*identity.Session, error) {
	var sessions []*identity.Session
	if !c.softList(ctx, "/admin/realms/"+realm+"/users/"+userID+"/sessions", nil, &sessions) {
		return []*identity.Session{}, nil
	}
	return sessions, nil
}

// RevokeUserSessions logs the user out everywhere.
func (c *Client) RevokeUserSessions(ctx context.Context, realm, userID string) error {
	_, err := c.call(ctx, http.MethodPost, "/admin/realms/"+realm+"/users/"+userID+"/logout", nil, nil, nil)
	return upstream("revoke user sessions", err)
}

func (c *Client) DeleteSession(ctx context.Context, realm, sessionID string) error {
	_, err := c.call(ctx, http.MethodDelete, "/admin/realms/"+realm+"/sessions/"+sessionID, nil, nil, nil)
	return upstream("delete session", err)
}

// ImpersonateUser starts an impersonation session and returns the provider's
// redirect payload.
func (c *Client) ImpersonateUser(ctx context.Context, realm, userID string) (map[string]any, error) {
	var out map[string]any
	if _, err := c.call(ctx, http.MethodPost, "/admin/realms/"+realm+"/users/"+userID+"/impersonation", nil, map[string]any{}, &out); err != nil {
		return nil, upstream("impersonate user", err)
	}
	return out, nil
}
