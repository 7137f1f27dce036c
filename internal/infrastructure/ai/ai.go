// Package ai provides the language-model provider used as the primary intent classifier.
//
// One configuration-driven HTTP provider covers OpenAI-compatible chat
// completion endpoints and the Anthropic messages format; the model's
// APIFormat decides which request shape and reply path apply.
package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

// ErrProviderUnavailable is returned when a model cannot be called at all.
var ErrProviderUnavailable = errors.New("provider unavailable")

const (
	providerName = "http"

	// maxReplyBytes caps how much of a model reply is read.
	maxReplyBytes = 1 << 20
)

// Factory builds classifier providers over one shared HTTP client.
type Factory struct {
	client *http.Client
}

// NewFactory returns a factory whose requests give up after timeout.
func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultModelTimeout
	}
	return &Factory{client: &http.Client{Timeout: timeout}}
}

// NewFactoryWithClient is used by tests to inject an httptest client.
func NewFactoryWithClient(client *http.Client) *Factory {
	return &Factory{client: client}
}

// ForModel returns the provider for one configured model.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	if strings.TrimSpace(model.Endpoint) == "" {
		return nil, fmt.Errorf("%w: model %q has no endpoint", ErrProviderUnavailable, model.Name)
	}
	return &classifierClient{model: model, client: f.client}, nil
}

var _ ports.ProviderFactory = (*Factory)(nil)

// classifierClient sends one utterance per call and returns the raw reply text.
type classifierClient struct {
	model  domain.ModelDefinition
	client *http.Client
}

func (c *classifierClient) Name() string {
	return providerName
}

func (c *classifierClient) Model() domain.ModelDefinition {
	return c.model
}

func (c *classifierClient) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	messages, err := renderPromptMessages(c.model, req.SystemPrompt, req.Prompt)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("render prompt: %w", err)
	}
	payload, err := encodeRequest(c.model, messages)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.model.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("new request: %w", err)
	}
	if err := c.authorize(httpReq); err != nil {
		return ports.ProviderResponse{}, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("call %s: %w", c.model.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("read reply: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return ports.ProviderResponse{}, fmt.Errorf("model %s answered %s", c.model.Name, resp.Status)
	}

	text, err := decodeReply(body, c.model.APIFormat.GetResponseJSONPath())
	if err != nil {
		return ports.ProviderResponse{}, err
	}
	return ports.ProviderResponse{Reply: text}, nil
}

// authorize sets the content type, the key header and any extra headers.
// A model without AuthEnvVar is a local endpoint and gets no credentials.
func (c *classifierClient) authorize(req *http.Request) error {
	format := c.model.APIFormat
	req.Header.Set("Content-Type", "application/json")
	for key, value := range format.ExtraHeaders {
		req.Header.Set(key, value)
	}
	if !c.model.RequiresAuth() {
		return nil
	}

	key := os.Getenv(c.model.AuthEnvVar)
	if key == "" {
		return fmt.Errorf("%w: set %s environment variable", ErrProviderUnavailable, c.model.AuthEnvVar)
	}
	req.Header.Set(format.GetAuthHeaderName(), format.GetAuthHeaderPrefix()+key)
	if c.model.OrgEnvVar != "" {
		if org := os.Getenv(c.model.OrgEnvVar); org != "" {
			req.Header.Set("OpenAI-Organization", org)
		}
	}
	return nil
}
