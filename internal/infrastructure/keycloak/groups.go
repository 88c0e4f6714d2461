package keycloak

import (
	"context"
	"net/http"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
)

// CreateGroup creates a realm group and returns its provider-side ID.
// Organizations are mirrored to groups so membership shows up in tokens.
func (c *Client) CreateGroup(ctx context.Context, realm, name string, attributes map[string][]string) (string, error) {
	if attributes == nil {
		attributes = map[string][]string{}
	}
	body := map[string]any{"name": name, "attributes": attributes}
	loc, err := c.call(ctx, http.MethodPost, "/admin/realms/"+realm+"/groups", nil, body, nil)
	if err != nil {
		return "", upstream("create group", err)
	}
	return locationID(loc), nil
}

func (c *Client) ListGroups(ctx context.Context, realm string) ([]*identity.Group, error) {
	var groups []*identity.Group
	if !c.softList(ctx, "/admin/realms/"+realm+"/groups", nil, &groups) {
		return []*identity.Group{}, nil
	}
	return groups, nil
}

func (c *Client) AddUserToGroup(ctx context.Context, realm, userID, groupID string) error {
	_, err := c.call(ctx, http.MethodPut, "/admin/realms/"+realm+"/users/"+userID+"/groups/"+groupID, nil, nil, nil)
	return upstream("add user to group", err)
}

func (c *Client) RemoveUserFromGroup(ctx context.Context, realm, userID, groupID string) error {
	_, err := c.call(ctx, http.MethodDelete, "/admin/realms/"+realm+"/users/"+userID+"/groups/"+groupID, nil, nil, nil)
	return upstream("remove user from group", err)
}

func (c *Client) GetGroupMembers(ctx context.Context, realm, groupID string) ([]*identity.User, error) {
	var members []*identity.User
	if !c.softList(ctx, "/admin/realms/"+realm+"/groups/"+groupID+"/members", nil, &members) {
		return []*identity.User{}, nil
	}
	return members, nil
}
