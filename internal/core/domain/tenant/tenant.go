package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a customer project. RealmName is globally unique, maps 1:1 to an
// identity-provider realm and is immutable after creation.
type Tenant struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	Name          string       `json:"name" db:"name"`
	RealmName     string       `json:"realm_name" db:"realm_name"`
	Plan          string       `json:"plan" db:"plan"`
	OwnerEmail    string       `json:"owner_email" db:"owner_email"`
	AppliedCoupon string       `json:"applied_coupon" db:"applied_coupon"`
	DiscountPct   int          `json:"discount_pct" db:"discount_pct"`
	AuthSettings  AuthSettings `json:"auth_settings" db:"auth_settings"`
	Branding      Branding     `json:"branding" db:"branding"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// AuthSettings is the per-tenant authentication configuration sub-document.
// Explicit fields, not an open map, so the documented defaults survive
// round-trips and unknown keys cannot drift in.
type AuthSettings struct {
	PasswordAuth            bool     `json:"password_auth"`
	SocialLogin             bool     `json:"social_login"`
	MagicLinks              bool     `json:"magic_links"`
	MFAEnabled              bool     `json:"mfa_enabled"`
	MFAMethods              []string `json:"mfa_methods"`
	DisposableEmailBlocking bool     `json:"disposable_email_blocking"`
	PasswordBreachDetection bool     `json:"password_breach_detection"`
	BotProtection           bool     `json:"bot_protection"`
	AllowedDomains          []string `json:"allowed_domains"`
	BlockedDomains          []string `json:"blocked_domains"`
}

// DefaultAuthSettings returns the documented defaults applied at tenant creation.
func DefaultAuthSettings() AuthSettings {
	return AuthSettings{
		PasswordAuth:   true,
		SocialLogin:    true,
		MFAMethods:     []string{"totp"},
		AllowedDomains: []string{},
		BlockedDomains: []string{},
	}
}

// Branding is the per-tenant appearance sub-document.
type Branding struct {
	LogoURL         string `json:"logo_url"`
	PrimaryColor    string `json:"primary_color"`
	BackgroundColor string `json:"background_color"`
}

// DefaultBranding returns the branding applied at tenant creation.
func DefaultBranding() Branding {
	return Branding{
		PrimaryColor:    "#10a0a0",
		BackgroundColor: "#f4f8f8",
	}
}

// CreateTenantRequest represents the request to create a new tenant.
type CreateTenantRequest struct {
	Name       string `json:"name"`
	RealmName  string `json:"realm_name"`
	Plan       string `json:"plan"`
	CouponCode string `json:"coupon_code"`
}

// UpdateTenantRequest represents a partial tenant update.
type UpdateTenantRequest struct {
	Plan        *string `json:"plan,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// UpdateAuthSettingsRequest merges non-nil fields into the auth settings
// sub-document.
type UpdateAuthSettingsRequest struct {
	PasswordAuth            *bool     `json:"password_auth,omitempty"`
	SocialLogin             *bool     `json:"social_login,omitempty"`
	MagicLinks              *bool     `json:"magic_links,omitempty"`
	MFAEnabled              *bool     `json:"mfa_enabled,omitempty"`
	MFAMethods              *[]string `json:"mfa_methods,omitempty"`
	DisposableEmailBlocking *bool     `json:"disposable_email_blocking,omitempty"`
	PasswordBreachDetection *bool     `json:"password_breach_detection,omitempty"`
	BotProtection           *bool     `json:"bot_protection,omitempty"`
}

// Apply merges the request into s.
func (r *UpdateAuthSettingsRequest) Apply(s *AuthSettings) {
	if r.PasswordAuth != nil {
		s.PasswordAuth = *r.PasswordAuth
	}
	if r.SocialLogin != nil {
		s.SocialLogin = *r.SocialLogin
	}
	if r.MagicLinks != nil {
		s.MagicLinks = *r.MagicLinks
	}
	if r.MFAEnabled != nil {
		s.MFAEnabled = *r.MFAEnabled
	}
	if r.MFAMethods != nil {
		s.MFAMethods = *r.MFAMethods
	}
	if r.DisposableEmailBlocking != nil {
		s.DisposableEmailBlocking = *r.DisposableEmailBlocking
	}
	if r.PasswordBreachDetection != nil {
		s.PasswordBreachDetection = *r.PasswordBreachDetection
	}
	if r.BotProtection != nil {
		s.BotProtection = *r.BotProtection
	}
}

// UpdateBrandingRequest merges non-nil fields into the branding sub-document.
type UpdateBrandingRequest struct {
	LogoURL         *string `json:"logo_url,omitempty"`
	PrimaryColor    *string `json:"primary_color,omitempty"`
	BackgroundColor *string `json:"background_color,omitempty"`
}

// Apply merges the request into b.
func (r *UpdateBrandingRequest) Apply(b *Branding) {
	if r.LogoURL != nil {
		b.LogoURL = *r.LogoURL
	}
	if r.PrimaryColor != nil {
		b.PrimaryColor = *r.PrimaryColor
	}
	if r.BackgroundColor != nil {
		b.BackgroundColor = *r.BackgroundColor
	}
}

// Overview is a tenant enriched with live usage counts. Counts degrade to
// zero when the identity provider is unreachable.
type Overview struct {
	Tenant
	UserCount    int `json:"user_count"`
	ClientCount  int `json:"client_count"`
	IdPCount     int `json:"idp_count"`
	OrgCount     int `json:"org_count"`
	RoleCount    int `json:"role_count"`
	WebhookCount int `json:"webhook_count"`
}
