package auth

import "sync"

// Registry is the process-wide set of currently honored refresh tokens.
// It holds no timers: expiry is checked lazily when a token is presented,
// and entries leave the set on logout or on a failed verification.
//
// A restart empties the registry, invalidating all outstanding sessions.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]struct{})}
}

// Add registers a refresh token.
func (r *Registry) Add(token string) {
	if token == "" {
		return
	}
	r.mu.Lock()
	r.tokens[token] = struct{}{}
	r.mu.Unlock()
}

// Remove deletes a token. Removing an absent token is a no-op, which makes
// logout idempotent.
func (r *Registry) Remove(token string) {
	r.mu.Lock()
	delete(r.tokens, token)
	r.mu.Unlock()
}

// Contains reports whether the token is currently honored.
func (r *Registry) Contains(token string) bool {
	r.mu.RLock()
	_, ok := r.tokens[token]
	r.mu.RUnlock()
	return ok
}

// Len reports the number of registered tokens.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
