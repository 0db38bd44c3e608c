package scraper

import (
	"fmt"
	"strings"
	"sync"
)

// NotFoundError is returned when no scraper is registered for a key or
// matches a source URL.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no scraper registered for %q", e.Key)
}

type registration struct {
	key        string
	urlPattern string
	scraper    Scraper
}

// Registry maps selector keys to scraper implementations. It is safe for
// concurrent reads; Register should only be called at startup.
type Registry struct {
	mu      sync.RWMutex
	entries []registration
	byKey   map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]int)}
}

// Register adds a scraper under a key with a URL substring pattern used by
// ByURL. Panics on a duplicate key to surface misconfiguration early.
func (r *Registry) Register(key, urlPattern string, s Scraper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byKey[key]; exists {
		panic(fmt.Sprintf("scraper registry: duplicate key %q", key))
	}
	r.entries = append(r.entries, registration{key: key, urlPattern: urlPattern, scraper: s})
	r.byKey[key] = len(r.entries) - 1
}

// ByKey returns the scraper registered under the given selector key.
func (r *Registry) ByKey(key string) (Scraper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byKey[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return r.entries[idx].scraper, nil
}

// ByURL returns the first scraper whose URL pattern is a substring of the
// given URL, in registration order.
func (r *Registry) ByURL(url string) (Scraper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.entries {
		if entry.urlPattern != "" && strings.Contains(url, entry.urlPattern) {
			return entry.scraper, nil
		}
	}
	return nil, &NotFoundError{Key: url}
}

// Keys returns all registered selector keys in registration order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		keys = append(keys, entry.key)
	}
	return keys
}
