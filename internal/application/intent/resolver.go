// Package intent resolves free-form utterances into typed reconnaissance intents.
//
// Resolution runs in two explicit stages. The model-backed Classifier is tried
// first and reports failure as a value; any failure hands the utterance to the
// deterministic Fallback rules. The resolver itself never fails.
package intent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

// Resolver implements ports.IntentResolver.
type Resolver struct {
	Classifier *Classifier
	Cache      ports.CacheRepository
	Logger     ports.Logger
	Now        func() time.Time
}

// Resolve returns the intent for an utterance, or false when nothing matched.
func (r *Resolver) Resolve(ctx context.Context, utterance string) (domain.Intent, bool) {
	result := r.classify(ctx, utterance)
	if !result.Failed() {
		r.debug("intent classified by model", map[string]interface{}{
			"found":  result.Found,
			"action": string(result.Intent.Action),
		})
		return result.Intent, result.Found
	}

	r.warn("model classification failed, using pattern fallback", map[string]interface{}{
		"error": result.Err.Error(),
	})
	intent, ok := Fallback(utterance)
	r.debug("fallback resolution", map[string]interface{}{
		"found":  ok,
		"action": string(intent.Action),
	})
	return intent, ok
}

func (r *Resolver) classify(ctx context.Context, utterance string) Classification {
	if r.Classifier == nil || r.Classifier.Provider == nil {
		return r.Classifier.Classify(ctx, utterance)
	}

	modelName := r.Classifier.Provider.Model().Name
	key := cacheKey(modelName, utterance)
	if r.Cache != nil {
		entry, ok, err := r.Cache.Get(key)
		if err != nil {
			r.warn("classification cache read failed", map[string]interface{}{"error": err.Error()})
		} else if ok {
			r.debug("classification served from cache", map[string]interface{}{"key": key[:12]})
			return Classification{Intent: entry.Intent, Found: entry.Found}
		}
	}

	result := r.Classifier.Classify(ctx, utterance)
	if result.Failed() || r.Cache == nil {
		return result
	}
	if err := r.Cache.Set(domain.CacheEntry{
		Key:       key,
		Intent:    result.Intent,
		Found:     result.Found,
		Model:     modelName,
		CreatedAt: r.now(),
	}); err != nil {
		r.warn("classification cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return result
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Resolver) debug(msg string, fields map[string]interface{}) {
	if r.Logger != nil {
		r.Logger.Debug(msg, fields)
	}
}

func (r *Resolver) warn(msg string, fields map[string]interface{}) {
	if r.Logger != nil {
		r.Logger.Warn(msg, fields)
	}
}

func cacheKey(model, utterance string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + strings.TrimSpace(utterance)))
	return hex.EncodeToString(sum[:])
}

var _ ports.IntentResolver = (*Resolver)(nil)
