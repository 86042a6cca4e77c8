package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergingtonactivities/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestTemplateRenderer_Render(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.ActivityEmailData{
		Email:        "test@mergington.edu",
		ActivityName: "Tennis Club",
		Schedule:     "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
	}

	for _, name := range []string{"signup_confirmation", "unregister_confirmation"} {
		t.Run(name, func(t *testing.T) {
			subject, html, text, err := r.Render(name, data)
			require.NoError(t, err)
			assert.Contains(t, subject, "Tennis Club")
			assert.NotContains(t, subject, "\n")
			assert.Contains(t, html, "test@mergington.edu")
			assert.Contains(t, text, "test@mergington.edu")
		})
	}
}

func TestTemplateRenderer_EscapesHTML(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.ActivityEmailData{Email: "<script>@mergington.edu", ActivityName: "Chess Club"}

	_, html, text, err := r.Render("signup_confirmation", data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, text, "<script>")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("welcome", &domain.ActivityEmailData{})
	require.ErrorIs(t, err, ErrUnknownTemplate)
	assert.Contains(t, err.Error(), `"welcome"`)
}

func TestTemplateRenderer_MissingField(t *testing.T) {
	data := map[string]any{"Email": "test@mergington.edu"}

	_, _, _, err := NewTemplateRenderer().Render("signup_confirmation", data)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownTemplate)
	assert.Contains(t, err.Error(), "render subject")
}

func TestTemplateRenderer_SubjectIsSingleLine(t *testing.T) {
	data := &domain.ActivityEmailData{ActivityName: "Art\n  Club"}

	subject, _, _, err := NewTemplateRenderer().Render("unregister_confirmation", data)
	require.NoError(t, err)
	assert.NotContains(t, subject, "\n")
	assert.Contains(t, subject, "Art Club")
}

func TestSESMailer_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("builds message", func(t *testing.T) {
		client := &fakeSES{}
		m := newSESMailer(client, "activities@mergington.edu", "Mergington Activities", testLogger)

		err := m.Send(ctx, "test@mergington.edu", "Subject", "<p>hi</p>", "hi")
		require.NoError(t, err)
		require.NotNil(t, client.input)
		assert.Equal(t, "Mergington Activities <activities@mergington.edu>", aws.ToString(client.input.Source))
		assert.Equal(t, []string{"test@mergington.edu"}, client.input.Destination.ToAddresses)
		assert.Equal(t, "Subject", aws.ToString(client.input.Message.Subject.Data))
		assert.Equal(t, "<p>hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
		assert.Equal(t, "hi", aws.ToString(client.input.Message.Body.Text.Data))
	})

	t.Run("omits empty bodies and name", func(t *testing.T) {
		client := &fakeSES{}
		m := newSESMailer(client, "activities@mergington.edu", "", testLogger)

		err := m.Send(ctx, "test@mergington.edu", "Subject", "", "hi")
		require.NoError(t, err)
		assert.Equal(t, "activities@mergington.edu", aws.ToString(client.input.Source))
		assert.Nil(t, client.input.Message.Body.Html)
	})

	t.Run("wraps client error", func(t *testing.T) {
		client := &fakeSES{err: errors.New("throttled")}
		m := newSESMailer(client, "activities@mergington.edu", "", testLogger)

		err := m.Send(ctx, "test@mergington.edu", "Subject", "", "hi")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SES")
	})
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name    string
		config  MailerConfig
		wantSES bool
		wantErr bool
	}{
		{name: "default noop", config: MailerConfig{}},
		{name: "explicit noop", config: MailerConfig{Provider: "noop"}},
		{name: "unknown falls back to noop", config: MailerConfig{Provider: "smtp"}},
		{
			name:    "ses",
			config:  MailerConfig{Provider: "ses", FromAddress: "a@mergington.edu", SES: SESConfig{Region: "us-east-1"}},
			wantSES: true,
		},
		{name: "ses without from address", config: MailerConfig{Provider: "ses"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, testLogger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, isSES := m.(*sesMailer)
			assert.Equal(t, tt.wantSES, isSES)
			if !isSES {
				require.NoError(t, m.Send(context.Background(), "x@mergington.edu", "s", "", ""))
			}
		})
	}
}
