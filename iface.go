package backoffice

import (
	"context"
	"net/http"

	"github.com/cccteam/ccc"
	"github.com/playline/backoffice/identity"
	"github.com/playline/backoffice/sessioninfo"
	"github.com/playline/backoffice/upstream"
)

// Authenticator is the upstream authentication collaborator: it exchanges
// credentials for a bearer token and resolves a token to the identity it
// belongs to. Both operations are fallible; an invalid or expired token is
// reported as an unauthorized error.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*upstream.Token, error)
	CurrentIdentity(ctx context.Context, bearer string) (*identity.Identity, error)
}

// PasswordResetter is the upstream password reset flow.
type PasswordResetter interface {
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// AuthProvider is the full upstream auth surface the gateway consumes.
// upstream.Client satisfies it.
type AuthProvider interface {
	Authenticator
	PasswordResetter
}

// SessionStorage manages the durable session records, including the
// upstream bearer token persisted at login.
type SessionStorage interface {
	// NewSession creates a session for the user with the bearer token it
	// authenticated with and returns the session ID.
	NewSession(ctx context.Context, username, bearerToken string) (ccc.UUID, error)

	// Session returns the session record for the given sessionID.
	Session(ctx context.Context, sessionID ccc.UUID) (*sessioninfo.SessionInfo, error)

	// UpdateSessionActivity updates the session activity timestamp with the current time.
	UpdateSessionActivity(ctx context.Context, sessionID ccc.UUID) error

	// DestroySession marks the session as expired and discards its bearer token.
	DestroySession(ctx context.Context, sessionID ccc.UUID) error
}

// Handlers is the HTTP surface of the session layer.
type Handlers interface {
	Login() http.HandlerFunc
	Logout() http.HandlerFunc
	Authenticated() http.HandlerFunc
	Navigation() http.HandlerFunc
	ForgotPassword() http.HandlerFunc
	VerifyResetCode() http.HandlerFunc
	ResetPassword() http.HandlerFunc
	SetSessionTimeout(next http.Handler) http.Handler
	StartSession(next http.Handler) http.Handler
	SetXSRFToken(next http.Handler) http.Handler
	ValidateXSRFToken(next http.Handler) http.Handler
	Require(requirement Requirement) func(next http.Handler) http.Handler
}
