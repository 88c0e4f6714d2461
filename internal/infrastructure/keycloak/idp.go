package keycloak

import (
	"context"
	"net/http"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
)

// CreateIdentityProvider attaches a federated login provider to a realm.
func (c *Client) CreateIdentityProvider(ctx context.Context, realm, alias, providerID string, config map[string]string) error {
	body := map[string]any{
		"alias":                     alias,
		"providerId":                providerID,
		"enabled":                   true,
		"storeToken":                true,
		"trustEmail":                true,
		"firstBrokerLoginFlowAlias": "first broker login",
		"config":                    config,
	}
	_, err := c.call(ctx, http.MethodPost, "/admin/realms/"+realm+"/identity-provider/instances", nil, body, nil)
	return upstream("create identity provider", err)
}

func (c *Client) ListIdentityProviders(ctx context.Context, realm string) ([]*identity.Provider, error) {
	var providers []*identity.Provider
	if !c.softList(ctx, "/admin/realms/"+realm+"/identity-provider/instances", nil, &providers) {
		return []*identity.Provider{}, nil
	}
	return providers, nil
}

func (c *Client) DeleteIdentityProvider(ctx context.Context, realm, alias string) error {
	_, err := c.call(ctx, http.MethodDelete, "/admin/realms/"+realm+"/identity-provider/instances/"+alias, nil, nil, nil)
	return upstream("delete identity provider", err)
}
