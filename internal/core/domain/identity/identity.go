// Package identity holds the wire types exchanged with the identity
// provider's admin API.
package identity

// User is a realm user as reported by the provider.
type User struct {
	ID               string              `json:"id"`
	Username         string              `json:"username"`
	Email            string              `json:"email"`
	FirstName        string              `json:"firstName"`
	LastName         string              `json:"lastName"`
	Enabled          bool                `json:"enabled"`
	EmailVerified    bool                `json:"emailVerified"`
	CreatedTimestamp int64               `json:"createdTimestamp"`
	Attributes       map[string][]string `json:"attributes,omitempty"`
}

// CreateUserRequest carries the fields needed to create a realm user.
type CreateUserRequest struct {
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Password  string            `json:"password"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// UpdateUserRequest is a partial user update; nil fields are untouched.
type UpdateUserRequest struct {
	FirstName *string           `json:"first_name,omitempty"`
	LastName  *string           `json:"last_name,omitempty"`
	Email     *string           `json:"email,omitempty"`
	Enabled   *bool             `json:"enabled,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Session is an active user session.
type Session struct {
	ID         string            `json:"id"`
	IPAddress  string            `json:"ipAddress"`
	Start      int64             `json:"start"`
	LastAccess int64             `json:"lastAccess"`
	Clients    map[string]string `json:"clients,omitempty"`
}

// Role is a realm role.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Composite   bool   `json:"composite"`
}

// Client is an application registered in a realm.
type Client struct {
	ID           string   `json:"id"`
	ClientID     string   `json:"clientId"`
	Protocol     string   `json:"protocol"`
	Enabled      bool     `json:"enabled"`
	PublicClient bool     `json:"publicClient"`
	RedirectURIs []string `json:"redirectUris"`
}

// CreateClientRequest carries the fields needed to register a client.
type CreateClientRequest struct {
	ClientID     string   `json:"client_id"`
	RedirectURIs []string `json:"redirect_uris"`
	Protocol     string   `json:"protocol"`
}

// Provider is a federated identity provider configured on a realm.
type Provider struct {
	Alias       string `json:"alias"`
	ProviderID  string `json:"providerId"`
	DisplayName string `json:"displayName"`
	Enabled     bool   `json:"enabled"`
}

// CreateOIDCProviderRequest configures a social or generic OIDC provider.
type CreateOIDCProviderRequest struct {
	Alias            string `json:"alias"`
	ProviderType     string `json:"provider_type"`
	ClientID         string `json:"client_id"`
	ClientSecret     string `json:"client_secret"`
	AuthorizationURL string `json:"authorization_url"`
	TokenURL         string `json:"token_url"`
}

// CreateSAMLProviderRequest configures a SAML connection.
type CreateSAMLProviderRequest struct {
	Alias              string `json:"alias"`
	EntityID           string `json:"entity_id"`
	SSOURL             string `json:"sso_url"`
	SigningCertificate string `json:"signing_certificate"`
}

// Group is a realm group.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Event is an authentication event from the provider's event log.
type Event struct {
	Time      int64             `json:"time"`
	Type      string            `json:"type"`
	RealmID   string            `json:"realmId"`
	ClientID  string            `json:"clientId"`
	UserID    string            `json:"userId"`
	IPAddress string            `json:"ipAddress"`
	Details   map[string]string `json:"details,omitempty"`
}

// AdminEvent is an administrative audit event from the provider.
type AdminEvent struct {
	Time          int64  `json:"time"`
	OperationType string `json:"operationType"`
	ResourceType  string `json:"resourceType"`
	ResourcePath  string `json:"resourcePath"`
}

// SessionStat is a per-client active/offline session count.
type SessionStat struct {
	ClientID string `json:"clientId"`
	Active   string `json:"active"`
	Offline  string `json:"offline"`
}

// AuthFlow is a realm authentication flow.
type AuthFlow struct {
	ID          string `json:"id"`
	Alias       string `json:"alias"`
	Description string `json:"description"`
	BuiltIn     bool   `json:"builtIn"`
}

// RequiredAction is a realm required-action configuration.
type RequiredAction struct {
	Alias    string `json:"alias"`
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	Priority int    `json:"priority"`
}
