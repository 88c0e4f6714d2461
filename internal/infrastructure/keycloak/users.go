package keycloak

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
)

// CreateUser creates an enabled, email-verified user with a permanent
// password credential and returns the provider-side user ID.
func (c *Client) CreateUser(ctx context.Context, realm string, req *identity.CreateUserRequest) (string, error) {
	attrs := map[string][]string{}
	for k, v := range req.Metadata {
		attrs[k] = []string{v}
	}
	cfg := map[string]any{
		"username":      req.Username,
		"email":         req.Email,
		"firstName":     req.FirstName,
		"lastName":      req.LastName,
		"enabled":       true,
		"emailVerified": true,
		"attributes":    attrs,
		"credentials": []map[string]any{
			{"type": "password", "value": req.Password, "temporary": false},
		},
	}
	loc, err := c.call(ctx, http.MethodPost, "/admin/realms/"+realm+"/users", nil, cfg, nil)
	if err != nil {
		return "", upstream("create user", err)
	}
	return locationID(loc), nil
}

func (c *Client) ListUsers(ctx context.Context, realm string, first, max int, search string) ([]*identity.User, error) {
	query := url.Values{
		"first": {strconv.Itoa(first)},
		"max":   {strconv.Itoa(max)},
	}
	if search != "" {
		query.Set("search", search)
	}
	var users []*identity.User
	if _, err := c.call(ctx, http.MethodGet, "/admin/realms/"+realm+"/users", query, nil, &users); err != nil {
		return nil, upstream("list users", err)
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, realm, userID string) (*identity.User, error) {
	var user identity.User
	if _, err := c.call(ctx, http.MethodGet, "/admin/realms/"+realm+"/users/"+userID, nil, nil, &user); err != nil {
		return nil, upstream("get user", err)
	}
	return &user, nil
}

// UpdateUser applies a partial update; only non-nil fields are sent.
func (c *Client) UpdateUser(ctx context.Context, realm, userID string, req *identity.UpdateUserRequest) error {
	updates := map[string]any{}
	if req.FirstName != nil {
		updates["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["lastName"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if len(req.Metadata) > 0 {
		attrs := map[string][]string{}
		for k, v := range req.Metadata {
			attrs[k] = []string{v}
		}
		updates["attributes"] = attrs
	}
	if len(updates) == 0 {
		return nil
	}
	_, err := c.call(ctx, http.MethodPut, "/admin/realms/"+realm+"/users/"+userID, nil, updates, nil)
	return upstream("update user", err)
}

func (c *Client) DeleteUser(ctx context.Context, realm, userID string) error {
	_, err := c.call(ctx, http.MethodDelete, "/admin/realms/"+realm+"/users/"+userID, nil, nil, nil)
	return upstream("delete user", err)
}

func (c *Client) CountUsers(ctx context.Context, realm string) (int, error) {
	var count int
	if _, err := c.call(ctx, http.MethodGet, "/admin/realms/"+realm+"/users/count", nil, nil, &count); err != nil {
		return 0, upstream("count users", err)
	}
	return count, nil
}
