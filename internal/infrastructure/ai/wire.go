package ai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/investigator-go/internal/domain"
)

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Stream      bool          `json:"stream"`
}

// chatMessage carries Content as either a plain string or a list of text blocks.
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type textBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// encodeRequest shapes the rendered messages for the model's wire format.
func encodeRequest(model domain.ModelDefinition, messages []domain.PromptMessage) ([]byte, error) {
	format := model.APIFormat
	req := chatRequest{
		Model:       model.ModelID,
		MaxTokens:   model.MaxTokens,
		Temperature: format.Temperature,
		Messages:    make([]chatMessage, 0, len(messages)),
	}

	var system []string
	for _, msg := range messages {
		role := strings.ToLower(msg.Role)
		if role == "system" && format.IsSystemMessageSeparate() {
			system = append(system, msg.Content)
			continue
		}
		var content interface{} = msg.Content
		if format.IsContentWrapped() {
			content = []textBlock{{Type: "text", Text: msg.Content}}
		}
		req.Messages = append(req.Messages, chatMessage{Role: role, Content: content})
	}
	req.System = strings.TrimSpace(strings.Join(system, "\n"))

	return json.Marshal(req)
}

// decodeReply pulls the reply text out of a provider response body.
func decodeReply(body []byte, path string) (string, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("decode reply: %w", err)
	}
	text, err := extractJSONPath(doc, path)
	if err != nil {
		return "", fmt.Errorf("reply path %q: %w", path, err)
	}
	return strings.TrimSpace(text), nil
}

// extractJSONPath walks dotted keys with optional [n] indexes, e.g.
// "choices[0].message.content", and requires a string at the end.
func extractJSONPath(doc map[string]interface{}, path string) (string, error) {
	var node interface{} = doc
	for _, segment := range strings.Split(path, ".") {
		key, indexes := splitIndexes(segment)
		if key != "" {
			obj, ok := node.(map[string]interface{})
			if !ok {
				return "", fmt.Errorf("%s: not an object", key)
			}
			if node, ok = obj[key]; !ok {
				return "", fmt.Errorf("%s: missing", key)
			}
		}
		for _, idx := range indexes {
			list, ok := node.([]interface{})
			if !ok || idx < 0 || idx >= len(list) {
				return "", fmt.Errorf("%s[%d]: out of range", key, idx)
			}
			node = list[idx]
		}
	}

	text, ok := node.(string)
	if !ok {
		return "", fmt.Errorf("got %T, want string", node)
	}
	return text, nil
}

// splitIndexes turns "content[0]" into ("content", [0]).
func splitIndexes(segment string) (string, []int) {
	open := strings.IndexByte(segment, '[')
	if open < 0 {
		return segment, nil
	}
	key := segment[:open]
	var indexes []int
	for _, part := range strings.Split(segment[open:], "[") {
		part = strings.TrimSuffix(part, "]")
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			n = -1
		}
		indexes = append(indexes, n)
	}
	return key, indexes
}
