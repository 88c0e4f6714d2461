package plan

// Unlimited is the sentinel for quantitative limits with no ceiling.
const Unlimited = -1

// Limit names a quantitative entitlement on a plan.
type Limit string

const (
	LimitMaxUsers        Limit = "max_users"
	LimitMaxAdmins       Limit = "max_admins"
	LimitMaxRealms       Limit = "max_realms"
	LimitMaxOrgs         Limit = "max_orgs"
	LimitMaxWebhooks     Limit = "max_webhooks"
	LimitMaxRoles        Limit = "max_roles"
	LimitSAMLConnections Limit = "saml_connections"
	LimitAPIRateLimit    Limit = "api_rate_limit"
)

// Feature names a boolean entitlement on a plan.
type Feature string

const (
	FeatureOIDCSSO                 Feature = "oidc_sso"
	FeatureSocialLogin             Feature = "social_login"
	FeatureMagicLinks              Feature = "magic_links"
	FeatureOrganizations           Feature = "organizations"
	FeatureWebhooks                Feature = "webhooks"
	FeatureAnalytics               Feature = "analytics"
	FeatureUserImpersonation       Feature = "user_impersonation"
	FeatureSessionManagement       Feature = "session_management"
	FeatureDeviceTracking          Feature = "device_tracking"
	FeatureDisposableEmailBlocking Feature = "disposable_email_blocking"
	FeatureCustomRoles             Feature = "custom_roles"
	FeatureBotProtection           Feature = "bot_protection"
	FeaturePasswordBreachDetection Feature = "password_breach_detection"
	FeatureCustomBranding          Feature = "custom_branding"
	FeaturePrioritySupport         Feature = "priority_support"
	FeaturePremiumSupport          Feature = "premium_support"
)

// Limits is the quantitative half of a plan's entitlement vector.
// A value of Unlimited (-1) means no ceiling.
type Limits struct {
	MaxUsers        int `json:"max_users"`
	MaxAdmins       int `json:"max_admins"`
	MaxRealms       int `json:"max_realms"`
	MaxOrgs         int `json:"max_orgs"`
	MaxWebhooks     int `json:"max_webhooks"`
	MaxRoles        int `json:"max_roles"`
	SAMLConnections int `json:"saml_connections"`
	APIRateLimit    int `json:"api_rate_limit"`
}

// Features is the boolean half of a plan's entitlement vector.
type Features struct {
	OIDCSSO                 bool `json:"oidc_sso"`
	SocialLogin             bool `json:"social_login"`
	MagicLinks              bool `json:"magic_links"`
	Organizations           bool `json:"organizations"`
	Webhooks                bool `json:"webhooks"`
	Analytics               bool `json:"analytics"`
	UserImpersonation       bool `json:"user_impersonation"`
	SessionManagement       bool `json:"session_management"`
	DeviceTracking          bool `json:"device_tracking"`
	DisposableEmailBlocking bool `json:"disposable_email_blocking"`
	CustomRoles             bool `json:"custom_roles"`
	BotProtection           bool `json:"bot_protection"`
	PasswordBreachDetection bool `json:"password_breach_detection"`
	CustomBranding          bool `json:"custom_branding"`
	PrioritySupport         bool `json:"priority_support"`
	PremiumSupport          bool `json:"premium_support"`
}

// Plan is an immutable entitlement vector. Instances live in a Registry
// built once at process start and are never mutated afterwards.
type Plan struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"name"`
	Price       int      `json:"price"`
	MFALevel    string   `json:"mfa_level"`
	Limits      Limits   `json:"limits"`
	Features    Features `json:"features"`
}

// LimitValue resolves a named limit against the plan's vector.
// Unknown names resolve to Unlimited so a registry/schema drift never
// produces a spurious denial.
func (p *Plan) LimitValue(l Limit) int {
	switch l {
	case LimitMaxUsers:
		return p.Limits.MaxUsers
	case LimitMaxAdmins:
		return p.Limits.MaxAdmins
	case LimitMaxRealms:
		return p.Limits.MaxRealms
	case LimitMaxOrgs:
		return p.Limits.MaxOrgs
	case LimitMaxWebhooks:
		return p.Limits.MaxWebhooks
	case LimitMaxRoles:
		return p.Limits.MaxRoles
	case LimitSAMLConnections:
		return p.Limits.SAMLConnections
	case LimitAPIRateLimit:
		return p.Limits.APIRateLimit
	default:
		return Unlimited
	}
}

// HasFeature resolves a named boolean flag against the plan's vector.
func (p *Plan) HasFeature(f Feature) bool {
	switch f {
	case FeatureOIDCSSO:
		return p.Features.OIDCSSO
	case FeatureSocialLogin:
		return p.Features.SocialLogin
	case FeatureMagicLinks:
		return p.Features.MagicLinks
	case FeatureOrganizations:
		return p.Features.Organizations
	case FeatureWebhooks:
		return p.Features.Webhooks
	case FeatureAnalytics:
		return p.Features.Analytics
	case FeatureUserImpersonation:
		return p.Features.UserImpersonation
	case FeatureSessionManagement:
		return p.Features.SessionManagement
	case FeatureDeviceTracking:
		return p.Features.DeviceTracking
	case FeatureDisposableEmailBlocking:
		return p.Features.DisposableEmailBlocking
	case FeatureCustomRoles:
		return p.Features.CustomRoles
	case FeatureBotProtection:
		return p.Features.BotProtection
	case FeaturePasswordBreachDetection:
		return p.Features.PasswordBreachDetection
	case FeatureCustomBranding:
		return p.Features.CustomBranding
	case FeaturePrioritySupport:
		return p.Features.PrioritySupport
	case FeaturePremiumSupport:
		return p.Features.PremiumSupport
	default:
		return false
	}
}

// Registry is the process-wide immutable plan table.
type Registry struct {
	plans map[string]*Plan
	order []string
}

// NewRegistry builds a registry from the given plans, preserving order for listing.
func NewRegistry(plans ...*Plan) *Registry {
	r := &Registry{plans: make(map[string]*Plan, len(plans))}
	for _, p := range plans {
		r.plans[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

// Get returns the plan with the given identifier, or false when unknown.
func (r *Registry) Get(id string) (*Plan, bool) {
	p, ok := r.plans[id]
	return p, ok
}

// GetOrFree returns the named plan, falling back to the free plan for
// unknown identifiers so a tenant row with a stale plan id keeps working.
func (r *Registry) GetOrFree(id string) *Plan {
	if p, ok := r.plans[id]; ok {
		return p
	}
	return r.plans["free"]
}

// List returns all plans in registration order.
func (r *Registry) List() []*Plan {
	out := make([]*Plan, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.plans[id])
	}
	return out
}
