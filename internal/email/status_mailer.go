package email

import (
	"context"
	"fmt"

	"github.com/chaitali929/coremodeling/internal/models"
)

// StatusMailer tells an artist that an admin decided on their profile.
type StatusMailer struct {
	provider Provider
	renderer TemplateRenderer
}

func NewStatusMailer(provider Provider, renderer TemplateRenderer) *StatusMailer {
	return &StatusMailer{provider: provider, renderer: renderer}
}

func (m *StatusMailer) NotifyStatusChanged(ctx context.Context, account *models.Account) error {
	var (
		templateName string
		subject      string
	)
	switch account.CurrentStatus() {
	case models.StatusApproved:
		templateName, subject = TemplateArtistApproved, "Your artist profile is approved"
	case models.StatusRejected:
		templateName, subject = TemplateArtistRejected, "Update on your artist profile"
	default:
		return fmt.Errorf("no notification for status %q", account.CurrentStatus())
	}

	body, err := m.renderer.Render(templateName, TemplateData{"Name": account.Name})
	if err != nil {
		return err
	}

	return m.provider.Send(ctx, &Email{
		To:       []string{account.Email},
		Subject:  subject,
		HTMLBody: body,
	})
}
