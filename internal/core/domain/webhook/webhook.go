package webhook

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Event names delivered to tenant webhooks.
const (
	EventUserCreated       = "user.created"
	EventUserUpdated       = "user.updated"
	EventUserDeleted       = "user.deleted"
	EventOrgCreated        = "organization.created"
	EventOrgMemberCreated  = "organizationMembership.created"
	EventInvitationCreated = "invitation.created"
	EventSessionRevoked    = "session.revoked"
)

// Webhook is a tenant-registered delivery endpoint. Secret is sent back in
// the X-Webhook-Secret header so the recipient can authenticate deliveries.
type Webhook struct {
	ID        uuid.UUID `json:"id" db:"id"`
	RealmName string    `json:"realm_name" db:"realm_name"`
	URL       string    `json:"url" db:"url"`
	Events    []string  `json:"events" db:"events"`
	Secret    string    `json:"-" db:"secret"`
	Enabled   bool      `json:"enabled" db:"enabled"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Subscribed reports whether the webhook wants the given event type.
func (w *Webhook) Subscribed(eventType string) bool {
	return slices.Contains(w.Events, eventType)
}

// Log is one delivery attempt outcome. Append-only; StatusCode 0 means the
// request never produced an HTTP response (transport failure).
type Log struct {
	ID           uuid.UUID `json:"id" db:"id"`
	WebhookID    uuid.UUID `json:"webhook_id" db:"webhook_id"`
	Event        string    `json:"event" db:"event"`
	StatusCode   int       `json:"status_code" db:"status_code"`
	ResponseBody string    `json:"response_body" db:"response_body"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateWebhookRequest represents the request to register a webhook.
type CreateWebhookRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

// CreateWebhookResponse is the registration result. This is the only
// response body the secret ever appears in; list and log reads omit it.
type CreateWebhookResponse struct {
	Webhook
	Secret string `json:"secret"`
}

// Payload is the delivered body shape: {"type": ..., "data": {...}}.
type Payload struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}
