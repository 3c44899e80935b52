package notifications

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns messages into HTML emails using the embedded templates.
type Renderer struct {
	pages map[Kind]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[Kind]*template.Template, len(allKinds))
	for _, kind := range allKinds {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+string(kind)+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", kind, err)
		}
		pages[kind] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(msg Message) (Email, error) {
	tmpl, ok := r.pages[msg.Kind]
	if !ok {
		return Email{}, fmt.Errorf("unknown email kind %q", msg.Kind)
	}
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return Email{}, fmt.Errorf("%s email has no recipient", msg.Kind)
	}

	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		subject = defaultSubjects[msg.Kind]
	}
	if subject == "" {
		return Email{}, fmt.Errorf("%s email requires a subject", msg.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", msg.Data); err != nil {
		return Email{}, fmt.Errorf("render %s email: %w", msg.Kind, err)
	}

	return Email{
		Kind:    msg.Kind,
		To:      to,
		ReplyTo: strings.TrimSpace(msg.ReplyTo),
		Subject: subject,
		HTML:    buf.String(),
	}, nil
}
