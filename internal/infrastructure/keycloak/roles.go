package keycloak

import (
	"context"
	"net/http"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
)

func (c *Client) CreateRole(ctx context.Context, realm, name, description string) error {
	body := map[string]string{"name": name, "description": description}
	_, err := c.call(ctx, http.MethodPost, "/admin/realms/"+realm+"/roles", nil, body, nil)
	return upstream("create role", err)
}

func (c *Client) ListRoles(ctx context.Context, realm string) ([]*identity.Role, error) {
	var roles []*identity.Role
	if _, err := c.call(ctx, http.MethodGet, "/admin/realms/"+realm+"/roles", nil, nil, &roles); err != nil {
		return nil, upstream("list roles", err)
	}
	return roles, nil
}

func (c *Client) GetRole(ctx context.Context, realm, name string) (*identity.Role, error) {
	var role identity.Role
	if _, err := c.call(ctx, http.MethodGet, "/admin/realms/"+realm+"/roles/"+name, nil, nil, &role); err != nil {
		return nil, upstream("get role", err)
	}
	return &role, nil
}

func (c *Client) DeleteRole(ctx context.Context, realm, name string) error {
	_, err := c.call(ctx, http.MethodDelete, "/admin/realms/"+realm+"/roles/"+name, nil, nil, nil)
	return upstream("delete role", err)
}

// GetUserRoles lists realm-level role mappings; failures degrade to empty.
func (c *Client) GetUserRoles(ctx context.Context, realm, userID string) ([]*identity.Role, error) {
	var roles []*identity.Role
	if !c.softList(ctx, "/admin/realms/"+realm+"/users/"+userID+"/role-mappings/realm", nil, &roles) {
		return []*identity.Role{}, nil
	}
	return roles, nil
}

func (c *Client) AssignRole(ctx context.Context, realm, userID string, role *identity.Role) error {
	body := []map[string]string{{"id": role.ID, "name": role.Name}}
	_, err := c.call(ctx, http.MethodPost, "/admin/realms/"+realm+"/users/"+userID+"/role-mappings/realm", nil, body, nil)
	return upstream("assign role", err)
}

func (c *Client) RemoveRole(ctx context.Context, realm, userID string, role *identity.Role) error {
	body := []map[string]string{{"id": role.ID, "name": role.Name}}
	_, err := c.call(ctx, http.MethodDelete, "/admin/realms/"+realm+"/users/"+userID+"/role-mappings/realm", nil, body, nil)
	return upstream("remove role", err)
}
