package keycloak

import (
	"context"
	"net/http"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
)

// builtinClients are Keycloak's own clients, hidden from tenant listings.
var builtinClients = map[string]bool{
	"account":                true,
	"account-console":        true,
	"admin-cli":              true,
	"broker":                 true,
	"realm-management":       true,
	"security-admin-console": true,
}

// CreateClient registers a public client and returns its provider-side ID.
func (c *Client) CreateClient(ctx context.Context, realm string, req *identity.CreateClientRequest) (string, error) {
	protocol := req.Protocol
	if protocol == "" {
		protocol = "openid-connect"
	}
	cfg := map[string]any{
		"clientId":                  req.ClientID,
		"enabled":                   true,
		"protocol":                  protocol,
		"publicClient":              true,
		"redirectUris":              req.RedirectURIs,
		"webOrigins":                []string{"*"},
		"standardFlowEnabled":       true,
		"directAccessGrantsEnabled": true,
	}
	loc, err := c.call(ctx, http.MethodPost, "/admin/realms/"+realm+"/clients", nil, cfg, nil)
	if err != nil {
		return "", upstream("create client", err)
	}
	return locationID(loc), nil
}

func (c *Client) ListClients(ctx context.Context, realm string) ([]*identity.Client, error) {
	var all []*identity.Client
	if _, err := c.call(ctx, http.MethodGet, "/admin/realms/"+realm+"/clients", nil, nil, &all); err != nil {
		return nil, upstream("list clients", err)
	}
	clients := make([]*identity.Client, 0, len(all))
	for _, cl := range all {
		if !builtinClients[cl.ClientID] {
			clients = append(clients, cl)
		}
	}
	return clients, nil
}

func (c *Client) DeleteClient(ctx context.Context, realm, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/admin/realms/"+realm+"/clients/"+id, nil, nil, nil)
	return upstream("delete client", err)
}
