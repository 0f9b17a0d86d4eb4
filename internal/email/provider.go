package email

import "context"

// Provider delivers a single message and returns its Message-ID.
type Provider interface {
	Send(ctx context.Context, email *Email) (string, error)
	Validate() error
	Close() error
}

type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
