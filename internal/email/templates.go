package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateArtistApproved = "artist_approved"
	TemplateArtistRejected = "artist_rejected"
)

var builtinTemplates = map[string]string{
	TemplateArtistApproved: `<p>Hi {{.Name}},</p>
<p>Your artist profile has been approved. Recruiters can now find you in the artist directory.</p>`,
	TemplateArtistRejected: `<p>Hi {{.Name}},</p>
<p>Your artist profile was not approved. You can update your profile and gallery at any time.</p>`,
}

type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager returns a manager preloaded with the built-in templates.
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
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
