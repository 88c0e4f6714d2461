package org

import (
	"time"

	"github.com/google/uuid"
)

// Organization belongs to exactly one tenant; (realm_name, slug) is unique.
type Organization struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	RealmName           string    `json:"realm_name" db:"realm_name"`
	Name                string    `json:"name" db:"name"`
	Slug                string    `json:"slug" db:"slug"`
	CreatedBy           string    `json:"created_by" db:"created_by"`
	Members             []Member  `json:"members" db:"members"`
	AllowedEmailDomains []string  `json:"allowed_email_domains" db:"allowed_email_domains"`
	// MaxMembers is modeled for future enforcement; -1 means unlimited.
	MaxMembers int       `json:"max_members" db:"max_members"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Member is one organization membership entry.
type Member struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// CreateOrganizationRequest represents the request to create an organization.
type CreateOrganizationRequest struct {
	Name                string   `json:"name"`
	Slug                string   `json:"slug"`
	AllowedEmailDomains []string `json:"allowed_email_domains"`
}

// AddMemberRequest represents the request to add a member.
type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// InvitationStatus is the lifecycle state of an invitation. Expiry is
// computed from ExpiresAt, not actively swept.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
)

// InvitationTTL is how long an invitation stays redeemable.
const InvitationTTL = 7 * 24 * time.Hour

// Invitation invites an email address into a tenant, optionally scoped to an
// organization.
type Invitation struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	RealmName string           `json:"realm_name" db:"realm_name"`
	Email     string           `json:"email" db:"email"`
	OrgSlug   string           `json:"org_slug" db:"org_slug"`
	Role      string           `json:"role" db:"role"`
	InvitedBy string           `json:"invited_by" db:"invited_by"`
	Status    InvitationStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	ExpiresAt time.Time        `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the invitation is past its expiry.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// CreateInvitationRequest represents the request to create an invitation.
type CreateInvitationRequest struct {
	Email   string `json:"email"`
	OrgSlug string `json:"org_slug"`
	Role    string `json:"role"`
}
