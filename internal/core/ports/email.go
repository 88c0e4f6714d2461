package ports

import (
	"context"

	"github.com/rudralabs/rudra/internal/core/domain/org"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendInvitationEmail(ctx context.Context, inv *org.Invitation, orgName string) error
}
