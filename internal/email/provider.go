package email

import "context"

// Provider delivers a single message.
type Provider interface {
	Send(ctx context.Context, email *Email) error
}

// NoopProvider drops messages. Used when SMTP is not configured.
type NoopProvider struct{}

func (NoopProvider) Send(ctx context.Context, email *Email) error {
	return nil
}

// TemplateRenderer renders named HTML templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
