package backoffice

import (
	"sync"
	"time"

	"github.com/cccteam/ccc"
	"github.com/playline/backoffice/identity"
)

// identityCache holds the identity fetched from upstream for each live
// session. Every entry remembers the bearer token its identity was
// fetched with; a fetch result is only applied while the reservation made
// for that token is still present. Logout removes the entry, so an
// in-flight fetch that completes afterwards is discarded instead of
// resurrecting the identity.
type identityCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[ccc.UUID]*identityEntry
}

type identityEntry struct {
	token     string
	ident     *identity.Identity
	fetchedAt time.Time
}

func newIdentityCache(ttl time.Duration) *identityCache {
	return &identityCache{
		ttl:     ttl,
		entries: make(map[ccc.UUID]*identityEntry),
	}
}

// get returns the cached identity for the session when it was fetched
// with the same bearer token and is still fresh.
func (c *identityCache) get(sessionID ccc.UUID, token string) (*identity.Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[sessionID]
	if !ok || e.ident == nil || e.token != token {
		return nil, false
	}
	if c.ttl > 0 && time.Since(e.fetchedAt) > c.ttl {
		return nil, false
	}

	return e.ident, true
}

// reserve records that an identity fetch is starting for the session with
// the given token. Any previous entry for the session is replaced.
func (c *identityCache) reserve(sessionID ccc.UUID, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[sessionID] = &identityEntry{token: token}
}

// apply stores a fetched identity. It reports false, and stores nothing,
// when the reservation is gone or was re-made with a different token: the
// fetch result is stale and must be discarded.
func (c *identityCache) apply(sessionID ccc.UUID, token string, ident *identity.Identity) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[sessionID]
	if !ok || e.token != token {
		return false
	}

	e.ident = ident
	e.fetchedAt = time.Now()

	return true
}

// drop removes the session's entry. Called on logout and on any identity
// fetch failure; takes effect immediately.
func (c *identityCache) drop(sessionID ccc.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, sessionID)
}
