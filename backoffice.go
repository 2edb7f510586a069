// Package backoffice implements the session and access-control core of
// the backoffice dashboard gateway. The browser carries a securecookie
// encoded session cookie; the gateway keeps the upstream bearer token in
// durable session storage, resolves the signed-in identity and its
// permission set, and gates every protected route through a single guard
// decision. Business-entity endpoints are proxied elsewhere; only the
// authentication and authorization surface lives here.
package backoffice

import (
	"time"

	cloudspanner "cloud.google.com/go/spanner"
	"github.com/gorilla/securecookie"
	"github.com/playline/backoffice/nav"
	"github.com/playline/backoffice/permission"
	"github.com/playline/backoffice/postgres"
)

const name = "github.com/playline/backoffice"

const (
	ErrUnauthorized = "ErrUnauthorized"

	defaultSessionTimeout  = 10 * time.Minute
	defaultIdentityRefresh = 5 * time.Minute
	defaultPermissionTTL   = 5 * time.Minute
	defaultSignInURL       = "/signin"
	defaultHomeURL         = "/"
)

// session implements the shared internals behind the exported Session.
type session struct {
	sessionTimeout time.Duration
	signInURL      string
	homeURL        string
	handle         LogHandler
	cookieManager
	storage    SessionStorage
	auth       AuthProvider
	permStore  permission.Store
	resolver   *permission.Resolver
	identities *identityCache
	menu       []nav.Item
}

// Session exposes the gateway's HTTP handlers and middleware.
type Session struct {
	session
}

var _ Handlers = &Session{}

// New creates a Session over the given upstream collaborators and session
// storage. roles is consulted lazily through the permission resolver; its
// results are cached in the configured permission store.
func New(auth AuthProvider, roles permission.RoleFetcher, storage SessionStorage, secureCookie *securecookie.SecureCookie, options ...Option) *Session {
	s := &Session{
		session: session{
			sessionTimeout: defaultSessionTimeout,
			signInURL:      defaultSignInURL,
			homeURL:        defaultHomeURL,
			handle:         defaultLogHandler,
			cookieManager:  newCookieClient(secureCookie),
			storage:        storage,
			auth:           auth,
			permStore:      permission.NewMemoryStore(defaultPermissionTTL),
			identities:     newIdentityCache(defaultIdentityRefresh),
			menu:           nav.Default(),
		},
	}
	for _, opt := range options {
		opt(&s.session)
	}
	s.resolver = permission.NewResolver(roles, s.permStore)

	return s
}

// NewPostgres creates a Session with PostgreSQL session storage.
func NewPostgres(auth AuthProvider, roles permission.RoleFetcher, conn postgres.Queryer, secureCookie *securecookie.SecureCookie, options ...Option) *Session {
	return New(auth, roles, NewPostgresSessionStorage(conn), secureCookie, options...)
}

// NewSpanner creates a Session with Spanner session storage.
func NewSpanner(auth AuthProvider, roles permission.RoleFetcher, client *cloudspanner.Client, secureCookie *securecookie.SecureCookie, options ...Option) *Session {
	return New(auth, roles, NewSpannerSessionStorage(client), secureCookie, options...)
}
