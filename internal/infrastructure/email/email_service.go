package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/configs"
	"github.com/rudralabs/rudra/internal/core/domain/org"
	"github.com/rudralabs/rudra/internal/core/ports"
)

// EmailService implements the EmailService interface
type EmailService struct {
	config    *configs.EmailConfig
	logger    *logrus.Logger
	client    *sendgrid.Client
	templates map[string]*template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(config *configs.EmailConfig, logger *logrus.Logger) (ports.EmailService, error) {
	client := sendgrid.NewSendClient(config.SendGridAPIKey)

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	return &EmailService{
		config:    config,
		logger:    logger,
		client:    client,
		templates: templates,
	}, nil
}

// loadTemplates loads all email templates from the templates directory
func loadTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	templateDir := "templates/email"
	templateFiles := []string{
		"invitation.html",
	}

	for _, file := range templateFiles {
		name := file[:len(file)-len(filepath.Ext(file))]
		tmpl, err := template.ParseFiles(filepath.Join(templateDir, file))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
		}
		templates[name] = tmpl
	}

	return templates, nil
}

// sendEmail sends an email using SendGrid
func (e *EmailService) sendEmail(to, subject, htmlContent string) error {
	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, "", htmlContent)

	response, err := e.client.Send(message)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
			"error":   err,
		}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"to":          to,
		"subject":     subject,
		"status_code": response.StatusCode,
	}).Info("Email sent successfully")

	return nil
}

// renderTemplate renders an email template with the provided data
func (e *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := e.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

// InvitationEmailData holds data for the invitation template
type InvitationEmailData struct {
	CompanyName      string
	OrganizationName string
	InvitedBy        string
	Role             string
	AcceptURL        string
	ExpiresAt        string
}

// SendInvitationEmail sends an organization invitation to the invitee.
func (e *EmailService) SendInvitationEmail(ctx context.Context, inv *org.Invitation, orgName string) error {
	data := InvitationEmailData{
		CompanyName:      e.config.CompanyName,
		OrganizationName: orgName,
		InvitedBy:        inv.InvitedBy,
		Role:             inv.Role,
		AcceptURL:        fmt.Sprintf("%s/invitations/%s/accept", e.config.BaseURL, inv.ID),
		ExpiresAt:        inv.ExpiresAt.Format("January 2, 2006"),
	}

	htmlContent, err := e.renderTemplate("invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render invitation email: %w", err)
	}

	subject := fmt.Sprintf("You've been invited to join %s", orgName)
	if orgName == "" {
		subject = fmt.Sprintf("You've been invited to %s", e.config.CompanyName)
	}
	return e.sendEmail(inv.Email, subject, htmlContent)
}
