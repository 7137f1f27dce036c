package ai

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/doeshing/investigator-go/internal/domain"
)

// renderPromptMessages expands the model's prompt templates, or falls back to a
// system+user pair built from the request.
//
// Template variables:
//   - {{.SystemPrompt}}: the classifier instruction supplied by the resolver
//   - {{.Prompt}}: the user's utterance
//   - {{.Actions}}: comma-separated action vocabulary
func renderPromptMessages(model domain.ModelDefinition, systemPrompt, userPrompt string) ([]domain.PromptMessage, error) {
	data := templateData{
		SystemPrompt: systemPrompt,
		Prompt:       strings.TrimSpace(userPrompt),
		Actions:      actionList(),
	}

	messages := model.Prompt
	if len(messages) == 0 {
		messages = defaultTemplateMessages()
	}

	rendered := make([]domain.PromptMessage, 0, len(messages)+1)
	for _, msg := range messages {
		content, err := executeTemplate(msg.Content, data)
		if err != nil {
			return nil, err
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		rendered = append(rendered, domain.PromptMessage{Role: msg.Role, Content: content})
	}

	if !hasUserMessage(rendered) {
		rendered = append(rendered, domain.PromptMessage{Role: "user", Content: data.Prompt})
	}
	return rendered, nil
}

type templateData struct {
	SystemPrompt string
	Prompt       string
	Actions      string
}

func actionList() string {
	actions := domain.Actions()
	names := make([]string, 0, len(actions))
	for _, action := range actions {
		names = append(names, string(action))
	}
	return strings.Join(names, ", ")
}

func executeTemplate(raw string, data templateData) (string, error) {
	tmpl, err := template.New("prompt").Parse(raw)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func hasUserMessage(messages []domain.PromptMessage) bool {
	for _, msg := range messages {
		if strings.EqualFold(msg.Role, "user") {
			return true
		}
	}
	return false
}

func defaultTemplateMessages() []domain.PromptMessage {
	return []domain.PromptMessage{
		{Role: "system", Content: "{{.SystemPrompt}}"},
		{Role: "user", Content: "{{.Prompt}}"},
	}
}
