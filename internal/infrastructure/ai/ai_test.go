package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

func TestGenerateOpenAICompatible(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":" {\"action\":\"scan_ip\"} "}}]}`))
	}))
	defer server.Close()

	t.Setenv("TEST_LLM_KEY", "sk-test")
	provider, err := NewFactoryWithClient(server.Client()).ForModel(domain.ModelDefinition{
		Name:       "gpt",
		Endpoint:   server.URL,
		AuthEnvVar: "TEST_LLM_KEY",
		ModelID:    "gpt-4o-mini",
	})
	require.NoError(t, err)

	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{
		SystemPrompt: "classify",
		Prompt:       "scan 8.8.8.8",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"action":"scan_ip"}`, resp.Reply)

	assert.Equal(t, "gpt-4o-mini", captured["model"])
	messages, ok := captured["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, map[string]interface{}{"role": "system", "content": "classify"}, messages[0])
	assert.Equal(t, map[string]interface{}{"role": "user", "content": "scan 8.8.8.8"}, messages[1])
}

func TestGenerateAnthropicFormat(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"action\":\"unknown\"}"}]}`))
	}))
	defer server.Close()

	t.Setenv("TEST_ANTHROPIC_KEY", "sk-ant")
	provider, err := NewFactoryWithClient(server.Client()).ForModel(domain.ModelDefinition{
		Name:       "claude",
		Endpoint:   server.URL,
		AuthEnvVar: "TEST_ANTHROPIC_KEY",
		ModelID:    "claude-3-5-haiku-latest",
		MaxTokens:  256,
		APIFormat: domain.APIFormat{
			AuthHeaderName:    "x-api-key",
			SystemMessageMode: domain.SystemMessageModeSeparate,
			ContentWrapper:    domain.ContentWrapperAnthropic,
			ResponseJSONPath:  domain.AnthropicResponsePath,
			ExtraHeaders:      map[string]string{"anthropic-version": "2023-06-01"},
		},
	})
	require.NoError(t, err)

	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{SystemPrompt: "classify", Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, `{"action":"unknown"}`, resp.Reply)
	assert.Equal(t, "classify", captured["system"])
	assert.EqualValues(t, 256, captured["max_tokens"])
}

func TestGenerateMissingKeyIsUnavailable(t *testing.T) {
	provider, err := NewFactory(0).ForModel(domain.ModelDefinition{
		Name:       "gpt",
		Endpoint:   "http://127.0.0.1:1/v1/chat/completions",
		AuthEnvVar: "INVESTIGATOR_TEST_UNSET_KEY",
	})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), ports.ProviderRequest{Prompt: "x"})
	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestForModelRequiresEndpoint(t *testing.T) {
	_, err := NewFactory(0).ForModel(domain.ModelDefinition{Name: "empty"})
	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGenerateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider, err := NewFactoryWithClient(server.Client()).ForModel(domain.ModelDefinition{Name: "local", Endpoint: server.URL})
	require.NoError(t, err)
	_, err = provider.Generate(context.Background(), ports.ProviderRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestExtractJSONPath(t *testing.T) {
	data := map[string]interface{}{
		"choices": []interface{}{
			map[string]interface{}{"message": map[string]interface{}{"content": "hello"}},
		},
	}

	got, err := extractJSONPath(data, "choices[0].message.content")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	_, err = extractJSONPath(data, "choices[3].message.content")
	assert.Error(t, err)
	_, err = extractJSONPath(data, "choices[0].message")
	assert.Error(t, err)
}

func TestRenderPromptMessagesWithCustomTemplate(t *testing.T) {
	model := domain.ModelDefinition{
		Prompt: []domain.PromptMessage{
			{Role: "system", Content: "{{.SystemPrompt}}\nAllowed: {{.Actions}}"},
		},
	}
	messages, err := renderPromptMessages(model, "classify", "  check jane@example.com ")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "classify\nAllowed: scan_ip, web_scan, leak_check, username_hunt", messages[0].Content)
	assert.Equal(t, domain.PromptMessage{Role: "user", Content: "check jane@example.com"}, messages[1])
}

func TestExtractJSONPathNestedIndexes(t *testing.T) {
	data := map[string]interface{}{
		"grid": []interface{}{[]interface{}{"a", "b"}},
	}
	got, err := extractJSONPath(data, "grid[0][1]")
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	_, err = extractJSONPath(data, "grid[-1]")
	assert.Error(t, err)
}
