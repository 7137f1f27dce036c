package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/investigator-go/internal/domain"
)

type memoryCache struct {
	entries map[string]domain.CacheEntry
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]domain.CacheEntry{}}
}

func (c *memoryCache) Get(key string) (domain.CacheEntry, bool, error) {
	entry, ok := c.entries[key]
	return entry, ok, nil
}

func (c *memoryCache) Set(entry domain.CacheEntry) error {
	c.sets++
	c.entries[entry.Key] = entry
	return nil
}

func TestResolveUsesModelResult(t *testing.T) {
	resolver := &Resolver{Classifier: &Classifier{Provider: &stubProvider{
		reply: `{"action":"username_hunt","target":"jdoe","tools":[]}`,
	}}}

	intent, ok := resolver.Resolve(context.Background(), "who is jdoe")

	require.True(t, ok)
	assert.Equal(t, domain.NewIntent(domain.ActionUsernameHunt, "jdoe"), intent)
}

func TestResolveFallsBackWhenModelFails(t *testing.T) {
	resolver := &Resolver{Classifier: &Classifier{Provider: &stubProvider{err: errors.New("timeout")}}}

	intent, ok := resolver.Resolve(context.Background(), "scan 8.8.8.8")

	require.True(t, ok)
	assert.Equal(t, domain.ActionScanIP, intent.Action)
	assert.Equal(t, "8.8.8.8", intent.Target)
}

func TestResolveFallsBackOnGarbageReply(t *testing.T) {
	resolver := &Resolver{Classifier: &Classifier{Provider: &stubProvider{reply: `{"action":"pwn","target":"x"}`}}}

	intent, ok := resolver.Resolve(context.Background(), "check jane@example.com")

	require.True(t, ok)
	assert.Equal(t, domain.ActionLeakCheck, intent.Action)
	assert.Equal(t, "jane@example.com", intent.Target)
}

func TestResolveUnknownDoesNotFallBack(t *testing.T) {
	resolver := &Resolver{Classifier: &Classifier{Provider: &stubProvider{reply: `{"action":"unknown"}`}}}

	_, ok := resolver.Resolve(context.Background(), "scan 8.8.8.8")

	assert.False(t, ok)
}

func TestResolveWithoutClassifierUsesFallback(t *testing.T) {
	resolver := &Resolver{}

	intent, ok := resolver.Resolve(context.Background(), "scan example.com")

	require.True(t, ok)
	assert.Equal(t, domain.ActionWebScan, intent.Action)
}

func TestResolveNothingMatches(t *testing.T) {
	resolver := &Resolver{}

	_, ok := resolver.Resolve(context.Background(), "good morning")

	assert.False(t, ok)
}

func TestResolveCachesClassifications(t *testing.T) {
	provider := &stubProvider{reply: `{"action":"scan_ip","target":"1.1.1.1"}`}
	cache := newMemoryCache()
	resolver := &Resolver{Classifier: &Classifier{Provider: provider}, Cache: cache}

	first, ok := resolver.Resolve(context.Background(), "scan 1.1.1.1")
	require.True(t, ok)
	second, ok := resolver.Resolve(context.Background(), "  scan 1.1.1.1 ")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestResolveDoesNotCacheFailures(t *testing.T) {
	provider := &stubProvider{err: errors.New("down")}
	cache := newMemoryCache()
	resolver := &Resolver{Classifier: &Classifier{Provider: provider}, Cache: cache}

	_, _ = resolver.Resolve(context.Background(), "scan 1.1.1.1")
	_, _ = resolver.Resolve(context.Background(), "scan 1.1.1.1")

	assert.Equal(t, 2, provider.calls)
	assert.Zero(t, cache.sets)
}
