package recon

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

// LeakChecker hashes an email and, when an endpoint is configured, asks it
// whether the hash appears in a breach corpus.
type LeakChecker struct {
	endpoint string
	client   *http.Client
}

// NewLeakChecker builds a checker. An empty endpoint reports the hash only.
func NewLeakChecker(endpoint string, client *http.Client) *LeakChecker {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &LeakChecker{endpoint: strings.TrimRight(endpoint, "/"), client: client}
}

// Name implements ports.ReconModule.
func (c *LeakChecker) Name() string {
	return domain.ToolLeakCheck
}

// LeakReport is the module's JSON output.
type LeakReport struct {
	Email string `json:"email"`
	SHA1  string `json:"sha1"`
	Found bool   `json:"found"`
}

// Run returns the report as indented JSON.
func (c *LeakChecker) Run(ctx context.Context, email string) (string, error) {
	report, err := c.Check(ctx, email)
	if err != nil {
		return "", err
	}
	return encodeJSON(report)
}

// Check builds the report for email.
func (c *LeakChecker) Check(ctx context.Context, email string) (LeakReport, error) {
	report := LeakReport{Email: email, SHA1: HashEmail(email)}
	if c.endpoint == "" {
		return report, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/"+report.SHA1, nil)
	if err != nil {
		return LeakReport{}, fmt.Errorf("build leak request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return LeakReport{}, fmt.Errorf("query leak endpoint: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	switch resp.StatusCode {
	case http.StatusOK:
		report.Found = true
	case http.StatusNotFound:
		report.Found = false
	default:
		return LeakReport{}, fmt.Errorf("leak endpoint returned status %d", resp.StatusCode)
	}
	return report, nil
}

// HashEmail returns the upper-case hex SHA-1 of email.
func HashEmail(email string) string {
	sum := sha1.Sum([]byte(email))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

var _ ports.ReconModule = (*LeakChecker)(nil)
