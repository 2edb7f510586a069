package backoffice

import (
	"time"

	"github.com/playline/backoffice/nav"
	"github.com/playline/backoffice/permission"
)

// Option configures a Session at construction.
type Option func(*session)

// WithSessionTimeout sets the inactivity window after which a session is
// treated as expired.
func WithSessionTimeout(timeout time.Duration) Option {
	return func(s *session) {
		s.sessionTimeout = timeout
	}
}

// WithIdentityRefreshInterval sets how long a fetched identity is served
// from cache before it is re-fetched from upstream.
func WithIdentityRefreshInterval(interval time.Duration) Option {
	return func(s *session) {
		s.identities = newIdentityCache(interval)
	}
}

// WithSignInURL sets the redirect target for unauthenticated navigation
// requests.
func WithSignInURL(url string) Option {
	return func(s *session) {
		s.signInURL = url
	}
}

// WithHomeURL sets the redirect target for forbidden navigation requests.
func WithHomeURL(url string) Option {
	return func(s *session) {
		s.homeURL = url
	}
}

// WithLogHandler overrides how handler errors are logged.
func WithLogHandler(handler LogHandler) Option {
	return func(s *session) {
		s.handle = handler
	}
}

// WithPermissionStore replaces the in-memory role permission cache, e.g.
// with the Redis-backed store when multiple gateway instances share one.
func WithPermissionStore(store permission.Store) Option {
	return func(s *session) {
		s.permStore = store
	}
}

// WithNavigation replaces the default navigation tree.
func WithNavigation(items []nav.Item) Option {
	return func(s *session) {
		s.menu = items
	}
}
