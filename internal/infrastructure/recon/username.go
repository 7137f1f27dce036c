// Package recon holds the in-process recon modules: breach lookup and
// username enumeration.
package recon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/investigator-go/assets"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/pkg/filesystem"
	"github.com/doeshing/investigator-go/internal/ports"
)

const usernamePlaceholder = "{username}"

// userAgent is sent with every probe; several sites reject the Go default.
const userAgent = "Mozilla/5.0 (compatible; investigator/1.0)"

// Site is one profile URL template.
type Site struct {
	Name     string
	Template string
}

// URL renders the profile address for username.
func (s Site) URL(username string) string {
	return strings.ReplaceAll(s.Template, usernamePlaceholder, url.PathEscape(username))
}

type sitesFile struct {
	Sites map[string]string `yaml:"sites"`
}

// LoadSites reads a site database, or the embedded one when path is empty.
// Sites are returned sorted by name.
func LoadSites(path string) ([]Site, error) {
	data := assets.DefaultSitesYAML
	if path != "" {
		raw, err := os.ReadFile(filesystem.ExpandPath(path))
		if err != nil {
			return nil, fmt.Errorf("read sites file: %w", err)
		}
		data = raw
	}
	return ParseSites(data)
}

// ParseSites decodes a YAML site database.
func ParseSites(data []byte) ([]Site, error) {
	var file sitesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sites: %w", err)
	}
	if len(file.Sites) == 0 {
		return nil, errors.New("parse sites: no sites defined")
	}
	sites := make([]Site, 0, len(file.Sites))
	for name, tpl := range file.Sites {
		if !strings.Contains(tpl, usernamePlaceholder) {
			return nil, fmt.Errorf("parse sites: %s template has no %s placeholder", name, usernamePlaceholder)
		}
		sites = append(sites, Site{Name: name, Template: tpl})
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })
	return sites, nil
}

// UsernameHunter probes every site for a profile page.
type UsernameHunter struct {
	sites       []Site
	client      *http.Client
	concurrency int
	timeout     time.Duration
	logger      ports.Logger
}

// HunterOption customizes a UsernameHunter.
type HunterOption func(*UsernameHunter)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) HunterOption {
	return func(h *UsernameHunter) { h.client = client }
}

// WithConcurrency bounds the number of probes in flight.
func WithConcurrency(n int) HunterOption {
	return func(h *UsernameHunter) {
		if n > 0 {
			h.concurrency = n
		}
	}
}

// WithProbeTimeout bounds each probe.
func WithProbeTimeout(d time.Duration) HunterOption {
	return func(h *UsernameHunter) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithHunterLogger attaches a logger.
func WithHunterLogger(logger ports.Logger) HunterOption {
	return func(h *UsernameHunter) { h.logger = logger }
}

// NewUsernameHunter builds a hunter over sites.
func NewUsernameHunter(sites []Site, opts ...HunterOption) *UsernameHunter {
	h := &UsernameHunter{
		sites:       sites,
		client:      &http.Client{},
		concurrency: domain.DefaultProbeConcurrency,
		timeout:     domain.DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements ports.ReconModule.
func (h *UsernameHunter) Name() string {
	return domain.ToolUsernameHunt
}

// Sites returns the configured site list.
func (h *UsernameHunter) Sites() []Site {
	return h.sites
}

// HuntReport is the module's JSON output.
type HuntReport struct {
	Username string          `json:"username"`
	Hits     map[string]bool `json:"hits"`
}

// Run probes all sites concurrently and returns the report as indented JSON.
// A probe that errors or times out counts as a miss.
func (h *UsernameHunter) Run(ctx context.Context, username string) (string, error) {
	report, err := h.Hunt(ctx, username)
	if err != nil {
		return "", err
	}
	return encodeJSON(report)
}

// Hunt probes all sites and returns the structured report.
func (h *UsernameHunter) Hunt(ctx context.Context, username string) (HuntReport, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return HuntReport{}, errors.New("username is empty")
	}

	hits := make([]bool, len(h.sites))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)
	for i, site := range h.sites {
		i, site := i, site
		g.Go(func() error {
			hits[i] = h.probe(gctx, site.URL(username))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return HuntReport{}, err
	}

	report := HuntReport{Username: username, Hits: make(map[string]bool, len(h.sites))}
	found := 0
	for i, site := range h.sites {
		report.Hits[site.Name] = hits[i]
		if hits[i] {
			found++
		}
	}
	if h.logger != nil {
		h.logger.Info("username hunt finished", map[string]interface{}{
			"sites": len(h.sites),
			"hits":  found,
		})
	}
	return report, nil
}

func (h *UsernameHunter) probe(ctx context.Context, target string) bool {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := h.client.Do(req)
	if err != nil {
		if h.logger != nil {
			h.logger.Debug("probe failed", map[string]interface{}{"url": target, "error": err.Error()})
		}
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	return resp.StatusCode < http.StatusBadRequest
}

func encodeJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

var _ ports.ReconModule = (*UsernameHunter)(nil)
