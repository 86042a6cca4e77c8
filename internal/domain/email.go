package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ActivityEmailData holds data for the signup and unregister confirmation emails.
type ActivityEmailData struct {
	Email        string
	ActivityName string
	Schedule     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendSignupConfirmation(ctx context.Context, data *ActivityEmailData) error
	SendUnregisterConfirmation(ctx context.Context, data *ActivityEmailData) error
}
