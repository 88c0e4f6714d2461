package ports

import (
	"context"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
)

// IdentityProvider is the typed gateway over the remote identity provider's
// admin API. Reads used for display degrade to empty values on upstream
// failure; mutations surface errors.
type IdentityProvider interface {
	// Realms
	CreateRealm(ctx context.Context, name, displayName, plan string) error
	GetRealm(ctx context.Context, name string) (map[string]any, error)
	UpdateRealm(ctx context.Context, name string, updates map[string]any) error
	DeleteRealm(ctx context.Context, name string) error

	// Clients
	CreateClient(ctx context.Context, realm string, req *identity.CreateClientRequest) (string, error)
	ListClients(ctx context.Context, realm string) ([]*identity.Client, error)
	DeleteClient(ctx context.Context, realm, id string) error

	// Users
	CreateUser(ctx context.Context, realm string, req *identity.CreateUserRequest) (string, error)
	ListUsers(ctx context.Context, realm string, first, max int, search string) ([]*identity.User, error)
	GetUser(ctx context.Context, realm, userID string) (*identity.User, error)
	UpdateUser(ctx context.Context, realm, userID string, req *identity.UpdateUserRequest) error
	DeleteUser(ctx context.Context, realm, userID string) error
	CountUsers(ctx context.Context, realm string) (int, error)

	// Sessions
	GetUserSessions(ctx context.Context, realm, userID string) ([]*identity.Session, error)
	RevokeUserSessions(ctx context.Context, realm, userID string) error
	DeleteSession(ctx context.Context, realm, sessionID string) error
	ImpersonateUser(ctx context.Context, realm, userID string) (map[string]any, error)

	// Roles
	CreateRole(ctx context.Context, realm, name, description string) error
	ListRoles(ctx context.Context, realm string) ([]*identity.Role, error)
	GetRole(ctx context.Context, realm, name string) (*identity.Role, error)
	DeleteRole(ctx context.Context, realm, name string) error
	GetUserRoles(ctx context.Context, realm, userID string) ([]*identity.Role, error)
	AssignRole(ctx context.Context, realm, userID string, role *identity.Role) error
	RemoveRole(ctx context.Context, realm, userID string, role *identity.Role) error

	// Groups
	CreateGroup(ctx context.Context, realm, name string, attributes map[string][]string) (string, error)
	ListGroups(ctx context.Context, realm string) ([]*identity.Group, error)
	AddUserToGroup(ctx context.Context, realm, userID, groupID string) error
	RemoveUserFromGroup(ctx context.Context, realm, userID, groupID string) error
	GetGroupMembers(ctx context.Context, realm, groupID string) ([]*identity.User, error)

	// Federated identity providers
	CreateIdentityProvider(ctx context.Context, realm, alias, providerID string, config map[string]string) error
	ListIdentityProviders(ctx context.Context, realm string) ([]*identity.Provider, error)
	DeleteIdentityProvider(ctx context.Context, realm, alias string) error

	// Events and stats
	GetEvents(ctx context.Context, realm, eventType string, max int) ([]*identity.Event, error)
	GetAdminEvents(ctx context.Context, realm string, max int) ([]*identity.AdminEvent, error)
	GetSessionStats(ctx context.Context, realm string) ([]*identity.SessionStat, error)
	GetAuthFlows(ctx context.Context, realm string) ([]*identity.AuthFlow, error)
	GetRequiredActions(ctx context.Context, realm string) ([]*identity.RequiredAction, error)
}
