package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/org"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
	"github.com/rudralabs/rudra/internal/core/ports"
)

var orgSlugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// OrganizationService manages organizations, memberships and invitations
// within a tenant. Each organization is mirrored as a provider group on a
// best-effort basis so realm tooling can see it.
type OrganizationService struct {
	orgRepo        ports.OrganizationRepository
	invitationRepo ports.InvitationRepository
	tenantRepo     ports.TenantRepository
	idp            ports.IdentityProvider
	plans          *plan.Registry
	entitlements   ports.EntitlementService
	activity       ports.ActivityRecorder
	dispatcher     ports.WebhookDispatcher
	email          ports.EmailService
	logger         *logrus.Logger
}

func NewOrganizationService(orgRepo ports.OrganizationRepository, invitationRepo ports.InvitationRepository, tenantRepo ports.TenantRepository, idp ports.IdentityProvider, plans *plan.Registry, entitlements ports.EntitlementService, activity ports.ActivityRecorder, dispatcher ports.WebhookDispatcher, email ports.EmailService, logger *logrus.Logger) ports.OrganizationService {
	return &OrganizationService{
		orgRepo:        orgRepo,
		invitationRepo: invitationRepo,
		tenantRepo:     tenantRepo,
		idp:            idp,
		plans:          plans,
		entitlements:   entitlements,
		activity:       activity,
		dispatcher:     dispatcher,
		email:          email,
		logger:         logger,
	}
}

// Create creates an organization after the plan's organizations flag and
// ceiling pass. The provider group mirror is best-effort.
func (s *OrganizationService) Create(ctx context.Context, ownerEmail, realmName string, req *org.CreateOrganizationRequest) (*org.Organization, error) {
	t, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName)
	if err != nil {
		return nil, err
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if req.Name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name and slug are required", apperr.ErrValidation)
	}
	if !orgSlugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug must be lowercase alphanumeric with hyphens", apperr.ErrValidation)
	}

	p := s.plans.GetOrFree(t.Plan)
	if err := s.entitlements.CheckFeature(p, plan.FeatureOrganizations); err != nil {
		return nil, err
	}
	count, err := s.orgRepo.Count(ctx, realmName)
	if err != nil {
		return nil, err
	}
	if err := s.entitlements.CheckLimit(p, plan.LimitMaxOrgs, count); err != nil {
		return nil, err
	}

	domains := make([]string, 0, len(req.AllowedEmailDomains))
	for _, d := range req.AllowedEmailDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			domains = append(domains, d)
		}
	}

	now := time.Now().UTC()
	o := &org.Organization{
		ID:                  uuid.New(),
		RealmName:           realmName,
		Name:                req.Name,
		Slug:                slug,
		CreatedBy:           ownerEmail,
		Members:             []org.Member{},
		AllowedEmailDomains: domains,
		MaxMembers:          plan.Unlimited,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.orgRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	if _, err := s.idp.CreateGroup(ctx, realmName, slug, map[string][]string{"display_name": {req.Name}}); err != nil {
		s.logger.WithError(err).WithField("slug", slug).Warn("Organization group mirror failed")
	}

	s.activity.LogActivity(ctx, ownerEmail, "create_organization", fmt.Sprintf("Created organization '%s'", req.Name), realmName)
	s.activity.TrackEvent(ctx, realmName, webhook.EventOrgCreated, map[string]any{"slug": slug})
	s.dispatcher.Dispatch(realmName, webhook.EventOrgCreated, map[string]any{
		"slug": slug,
		"name": req.Name,
	})
	return o, nil
}

func (s *OrganizationService) List(ctx context.Context, ownerEmail, realmName string) ([]*org.Organization, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, err
	}
	return s.orgRepo.List(ctx, realmName)
}

func (s *OrganizationService) Get(ctx context.Context, ownerEmail, realmName, slug string) (*org.Organization, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, err
	}
	return s.orgRepo.Get(ctx, realmName, slug)
}

func (s *OrganizationService) Delete(ctx context.Context, ownerEmail, realmName, slug string) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	if err := s.orgRepo.Delete(ctx, realmName, slug); err != nil {
		return err
	}
	s.activity.LogActivity(ctx, ownerEmail, "delete_organization", fmt.Sprintf("Deleted organization '%s'", slug), realmName)
	return nil
}

// AddMember appends a membership entry. Duplicate memberships are rejected
// before the document is touched.
func (s *OrganizationService) AddMember(ctx context.Context, ownerEmail, realmName, slug string, req *org.AddMemberRequest) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id is required", apperr.ErrValidation)
	}
	o, err := s.orgRepo.Get(ctx, realmName, slug)
	if err != nil {
		return err
	}
	for _, m := range o.Members {
		if m.UserID == req.UserID {
			return fmt.Errorf("%w: user is already a member", apperr.ErrConflict)
		}
	}
	role := req.Role
	if role == "" {
		role = "member"
	}
	m := org.Member{UserID: req.UserID, Role: role, JoinedAt: time.Now().UTC()}
	if err := s.orgRepo.AddMember(ctx, realmName, slug, m); err != nil {
		return err
	}
	s.dispatcher.Dispatch(realmName, webhook.EventOrgMemberCreated, map[string]any{
		"slug":    slug,
		"user_id": req.UserID,
		"role":    role,
	})
	return nil
}

func (s *OrganizationService) RemoveMember(ctx context.Context, ownerEmail, realmName, slug, userID string) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	return s.orgRepo.RemoveMember(ctx, realmName, slug, userID)
}

// CreateInvitation records a pending invitation and sends the invitation
// email on a best-effort basis. When scoped to an organization with an email
// domain allowlist, the invitee's domain must be on it.
func (s *OrganizationService) CreateInvitation(ctx context.Context, ownerEmail, realmName string, req *org.CreateInvitationRequest) (*org.Invitation, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", apperr.ErrValidation)
	}

	var orgName string
	if req.OrgSlug != "" {
		o, err := s.orgRepo.Get(ctx, realmName, req.OrgSlug)
		if err != nil {
			return nil, err
		}
		orgName = o.Name
		if len(o.AllowedEmailDomains) > 0 {
			domain := email[strings.LastIndex(email, "@")+1:]
			allowed := false
			for _, d := range o.AllowedEmailDomains {
				if d == domain {
					allowed = true
					break
				}
			}
			if !allowed {
				return nil, fmt.Errorf("%w: email domain '%s' is not allowed for this organization", apperr.ErrValidation, domain)
			}
		}
	}

	role := req.Role
	if role == "" {
		role = "member"
	}
	now := time.Now().UTC()
	inv := &org.Invitation{
		ID:        uuid.New(),
		RealmName: realmName,
		Email:     email,
		OrgSlug:   req.OrgSlug,
		Role:      role,
		InvitedBy: ownerEmail,
		Status:    org.InvitationPending,
		CreatedAt: now,
		ExpiresAt: now.Add(org.InvitationTTL),
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.email.SendInvitationEmail(ctx, inv, orgName); err != nil {
		s.logger.WithError(err).WithField("email", email).Warn("Invitation email failed")
	}

	s.activity.LogActivity(ctx, ownerEmail, "create_invitation", fmt.Sprintf("Invited %s", email), realmName)
	s.dispatcher.Dispatch(realmName, webhook.EventInvitationCreated, map[string]any{
		"email":    email,
		"org_slug": req.OrgSlug,
		"role":     role,
	})
	return inv, nil
}

func (s *OrganizationService) ListInvitations(ctx context.Context, ownerEmail, realmName, orgSlug string) ([]*org.Invitation, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, err
	}
	return s.invitationRepo.List(ctx, realmName, orgSlug)
}

// RevokeInvitation withdraws a pending invitation. The invitation must live
// in the caller's realm; accepted or already revoked invitations stay as
// they are.
func (s *OrganizationService) RevokeInvitation(ctx context.Context, ownerEmail, realmName string, id uuid.UUID) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}

	invitations, err := s.invitationRepo.List(ctx, realmName, "")
	if err != nil {
		return err
	}
	var target *org.Invitation
	for _, inv := range invitations {
		if inv.ID == id {
			target = inv
			break
		}
	}
	if target == nil {
		return apperr.ErrNotFound
	}
	if target.Status != org.InvitationPending {
		return fmt.Errorf("%w: only pending invitations can be revoked", apperr.ErrConflict)
	}

	if err := s.invitationRepo.UpdateStatus(ctx, id, org.InvitationRevoked); err != nil {
		return err
	}
	s.activity.LogActivity(ctx, ownerEmail, "revoke_invitation", fmt.Sprintf("Revoked invitation for %s", target.Email), realmName)
	return nil
}
