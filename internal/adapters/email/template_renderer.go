package email

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"mergingtonactivities/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// ErrUnknownTemplate is returned by Render when no subject, html and text set exists for a name.
var ErrUnknownTemplate = errors.New("unknown email template")

// templateRenderer implements domain.EmailTemplateRenderer. Each email is a set of three
// files under templates/: <name>_subject.txt, <name>.html and <name>.txt.
type templateRenderer struct {
	html *template.Template
	text *texttemplate.Template
}

// NewTemplateRenderer parses the embedded templates once and panics if any fail to parse.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		html: template.Must(template.New("email").Option("missingkey=error").ParseFS(templateFS, "templates/*.html")),
		text: texttemplate.Must(texttemplate.New("email").Option("missingkey=error").ParseFS(templateFS, "templates/*.txt")),
	}
}

// Render executes the named set (e.g. "signup_confirmation") with data.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	subjectTmpl := r.text.Lookup(templateName + "_subject.txt")
	htmlTmpl := r.html.Lookup(templateName + ".html")
	textTmpl := r.text.Lookup(templateName + ".txt")
	if subjectTmpl == nil || htmlTmpl == nil || textTmpl == nil {
		return "", "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, templateName)
	}

	if subject, err = execute(subjectTmpl, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	if htmlBody, err = execute(htmlTmpl, data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	if textBody, err = execute(textTmpl, data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	// Subjects go into a single mail header line.
	return strings.Join(strings.Fields(subject), " "), htmlBody, textBody, nil
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(t executor, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
