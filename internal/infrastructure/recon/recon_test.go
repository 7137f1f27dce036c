package recon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func noKeepAliveClient() *http.Client {
	return &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
}

func TestUsernameHunterReportsHits(t *testing.T) {
	defer goleak.VerifyNone(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/found/"):
			w.WriteHeader(http.StatusOK)
		case strings.HasPrefix(r.URL.Path, "/moved/"):
			http.Redirect(w, r, "/found/x", http.StatusFound)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	sites := []Site{
		{Name: "Alpha", Template: server.URL + "/found/{username}"},
		{Name: "Beta", Template: server.URL + "/missing/{username}"},
		{Name: "Gamma", Template: server.URL + "/moved/{username}"},
	}
	hunter := NewUsernameHunter(sites, WithHTTPClient(noKeepAliveClient()), WithConcurrency(2))

	out, err := hunter.Run(context.Background(), "jdoe")
	require.NoError(t, err)

	var report HuntReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "jdoe", report.Username)
	assert.Equal(t, map[string]bool{"Alpha": true, "Beta": false, "Gamma": true}, report.Hits)
	assert.True(t, strings.HasPrefix(out, "{\n  \"username\": \"jdoe\""))
}

func TestUsernameHunterBoundsConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	var inFlight, peak int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var sites []Site
	for i := 0; i < 12; i++ {
		sites = append(sites, Site{Name: string(rune('A' + i)), Template: server.URL + "/{username}"})
	}
	hunter := NewUsernameHunter(sites, WithHTTPClient(noKeepAliveClient()), WithConcurrency(3))

	report, err := hunter.Hunt(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Len(t, report.Hits, 12)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestUsernameHunterTimeoutIsMiss(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	hunter := NewUsernameHunter(
		[]Site{{Name: "Slow", Template: server.URL + "/{username}"}},
		WithHTTPClient(noKeepAliveClient()),
		WithProbeTimeout(50*time.Millisecond),
	)

	report, err := hunter.Hunt(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.False(t, report.Hits["Slow"])
}

func TestUsernameHunterRejectsEmpty(t *testing.T) {
	_, err := NewUsernameHunter(nil).Run(context.Background(), "  ")
	assert.Error(t, err)
}

func TestLoadEmbeddedSites(t *testing.T) {
	sites, err := LoadSites("")
	require.NoError(t, err)
	require.NotEmpty(t, sites)
	for i, site := range sites {
		assert.Contains(t, site.Template, usernamePlaceholder, site.Name)
		if i > 0 {
			assert.Less(t, sites[i-1].Name, site.Name)
		}
	}
}

func TestParseSitesValidation(t *testing.T) {
	_, err := ParseSites([]byte("sites: {}\n"))
	assert.Error(t, err)

	_, err = ParseSites([]byte("sites:\n  Bad: https://example.com/profile\n"))
	assert.Error(t, err)
}

func TestSiteURLEscapesUsername(t *testing.T) {
	site := Site{Name: "X", Template: "https://x.example/{username}"}
	assert.Equal(t, "https://x.example/a%2Fb", site.URL("a/b"))
	assert.Equal(t, "https://x.example/john%3F", site.URL("john?"))
}

func TestLeakCheckerHashOnly(t *testing.T) {
	out, err := NewLeakChecker("", nil).Run(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, `{
  "email": "jane@example.com",
  "sha1": "0850A4CFFB73CBC53FD33E8990C2184C915FF041",
  "found": false
}`, out)
}

func TestLeakCheckerEndpoint(t *testing.T) {
	defer goleak.VerifyNone(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/range/0850A4CFFB73CBC53FD33E8990C2184C915FF041":
			w.WriteHeader(http.StatusOK)
		case "/range/" + HashEmail("broken@example.com"):
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	checker := NewLeakChecker(server.URL+"/range/", noKeepAliveClient())

	report, err := checker.Check(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.True(t, report.Found)

	report, err = checker.Check(context.Background(), "clean@example.com")
	require.NoError(t, err)
	assert.False(t, report.Found)

	_, err = checker.Check(context.Background(), "broken@example.com")
	assert.Error(t, err)
	assert.Equal(t, "leak_check", checker.Name())
}
