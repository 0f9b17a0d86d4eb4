package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Template names.
const (
	TemplateApproval     = "report_approved"
	TemplateRejection    = "report_rejected"
	TemplateCustom       = "report_custom"
	TemplateVerification = "verification"
)

// TemplateManager renders HTML mail bodies. Built-in templates are
// registered by NewTemplateManager and may be overridden from a directory.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

// LoadTemplates registers every *.html file in dirPath under its base name.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}
		return nil
	})
}

const reportSummary = `
<table style="border-collapse:collapse">
  <tr><td><b>Report</b></td><td>{{.Title}}</td></tr>
  <tr><td><b>Type</b></td><td>{{.Type}}</td></tr>
  <tr><td><b>Property</b></td><td>{{.Address}}</td></tr>
  <tr><td><b>Created</b></td><td>{{.CreatedAt}}</td></tr>
</table>
{{if .ViewURL}}<p><a href="{{.ViewURL}}">View the report</a></p>{{end}}`

var defaultTemplates = map[string]string{
	TemplateApproval: `<p>Hello {{.RecipientName}},</p>
<p>The report below has been <b>approved</b>.</p>
{{if .Message}}<blockquote>{{.Message}}</blockquote>{{end}}` + reportSummary,

	TemplateRejection: `<p>Hello {{.RecipientName}},</p>
<p>The report below has been <b>rejected</b>.</p>
<blockquote>{{.Message}}</blockquote>` + reportSummary,

	TemplateCustom: `<p>Hello {{.RecipientName}},</p>
<p>{{.Message}}</p>` + reportSummary,

	TemplateVerification: `<p>Hello {{.RecipientName}},</p>
<p>Your DepositShield verification code is <b>{{.Code}}</b>. It expires in 24 hours.</p>`,
}
