package keycloak

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
)

// GetEvents reads the realm's login event log, optionally filtered by event
// type. All reads here are best-effort: analytics views render with empty
// provider data rather than failing.
func (c *Client) GetEvents(ctx context.Context, realm, eventType string, max int) ([]*identity.Event, error) {
	query := url.Values{"max": {strconv.Itoa(max)}}
	if eventType != "" {
		query.Set("type", eventType)
	}
	var events []*identity.Event
	if !c.softList(ctx, "/admin/realms/"+realm+"/events", query, &events) {
		return []*identity.Event{}, nil
	}
	return events, nil
}

func (c *Client) GetAdminEvents(ctx context.Context, realm string, max int) ([]*identity.AdminEvent, error) {
	query := url.Values{"max": {strconv.Itoa(max)}}
	var events []*identity.AdminEvent
	if !c.softList(ctx, "/admin/realms/"+realm+"/admin-events", query, &events) {
		return []*identity.AdminEvent{}, nil
	}
	return events, nil
}

func (c *Client) GetSessionStats(ctx context.Context, realm string) ([]*identity.SessionStat, error) {
	var stats []*identity.SessionStat
	if !c.softList(ctx, "/admin/realms/"+realm+"/client-session-stats", nil, &stats) {
		return []*identity.SessionStat{}, nil
	}
	return stats, nil
}

func (c *Client) GetAuthFlows(ctx context.Context, realm string) ([]*identity.AuthFlow, error) {
	var flows []*identity.AuthFlow
	if !c.softList(ctx, "/admin/realms/"+realm+"/authentication/flows", nil, &flows) {
		return []*identity.AuthFlow{}, nil
	}
	return flows, nil
}

func (c *Client) GetRequiredActions(ctx context.Context, realm string) ([]*identity.RequiredAction, error) {
	var actions []*identity.RequiredAction
	if !c.softList(ctx, "/admin/realms/"+realm+"/authentication/required-actions", nil, &actions) {
		return []*identity.RequiredAction{}, nil
	}
	return actions, nil
}
