package backoffice

import (
	"context"
	"net/http"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"github.com/playline/backoffice/identity"
	"github.com/playline/backoffice/sessioninfo"
	"go.opentelemetry.io/otel"
)

// ctxKey is a type for storing values in the request context
type ctxKey string

const (
	// Keys used within the request Context
	ctxSessionID                 ctxKey = "sessionID"
	ctxSessionExpirationDuration ctxKey = "sessionExpirationDuration"
)

// SetSessionTimeout is a Handler to set the session timeout
func (s *session) SetSessionTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(context.WithValue(r.Context(), ctxSessionExpirationDuration, s.sessionTimeout))

		next.ServeHTTP(w, r)
	})
}

// StartSession restores the session ID from the auth cookie and stores it
// in the request context. A missing or undecodable cookie stores the nil
// ID; whether that is acceptable is decided downstream by the guard, since
// public routes (sign-in, password reset) carry no session at all.
func (s *session) StartSession(next http.Handler) http.Handler {
	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "session.StartSession()")
		defer span.End()

		sessionID := ccc.NilUUID
		if cval, ok := s.readAuthCookie(r); ok {
			if id, valid := validSessionID(cval[scSessionID]); valid {
				sessionID = id
			}
		}

		r = r.WithContext(context.WithValue(ctx, ctxSessionID, sessionID))

		if !sessionID.IsNil() {
			logger.Req(r).AddRequestAttribute("session ID", sessionID.String())
			l := logger.Req(r).WithAttributes().AddAttribute("session ID", sessionID.String()).Logger()
			r = r.WithContext(logger.NewCtx(r.Context(), l))
		}

		next.ServeHTTP(w, r)

		return nil
	})
}

// checkSession validates the session against storage, refreshes its
// activity timestamp, fetches the identity for its bearer token, and
// resolves the permission set. On success the request context carries the
// SessionInfo and AccessInfo. Every failure mode that means "no valid
// session" is reported as an unauthorized error, never as a fatal one.
func (s *session) checkSession(r *http.Request) (req *http.Request, err error) {
	ctx, span := otel.Tracer(name).Start(r.Context(), "session.checkSession()")
	defer span.End()

	sessionID := sessionIDFromRequest(r)
	if sessionID.IsNil() {
		return r, httpio.NewUnauthorizedMessage("no session")
	}

	si, err := s.storage.Session(ctx, sessionID)
	if err != nil {
		return r, httpio.NewUnauthorizedMessageWithError(err, "invalid session")
	}

	if si.Expired || time.Since(si.UpdatedAt) > sessionExpirationFromRequest(r) {
		return r, httpio.NewUnauthorizedMessage("session expired")
	}

	if err := s.storage.UpdateSessionActivity(ctx, si.ID); err != nil {
		return r, errors.Wrap(err, "SessionStorage.UpdateSessionActivity()")
	}

	ident, err := s.currentIdentity(ctx, si)
	if err != nil {
		return r, err
	}

	if !ident.Active() {
		return r, httpio.NewUnauthorizedMessage("account is not active")
	}

	access, err := s.resolver.Resolve(ctx, si.BearerToken, ident)
	if err != nil {
		return r, errors.Wrap(err, "permission.Resolver.Resolve()")
	}

	ctx = context.WithValue(ctx, sessioninfo.CtxSessionInfo, si)
	ctx = context.WithValue(ctx, sessioninfo.CtxAccessInfo, &sessioninfo.AccessInfo{Identity: ident, Access: access})
	r = r.WithContext(ctx)

	logger.Req(r).AddRequestAttribute("username", si.Username)
	l := logger.Req(r).WithAttributes().AddAttribute("username", si.Username).Logger()
	r = r.WithContext(logger.NewCtx(r.Context(), l))

	return r, nil
}

// currentIdentity returns the identity for the session, fetching it from
// upstream when the cache has no fresh entry for the session's bearer
// token. A fetch that completes after the session ended, or after its
// token changed, is discarded rather than applied.
func (s *session) currentIdentity(ctx context.Context, si *sessioninfo.SessionInfo) (*identity.Identity, error) {
	if ident, ok := s.identities.get(si.ID, si.BearerToken); ok {
		return ident, nil
	}

	s.identities.reserve(si.ID, si.BearerToken)

	ident, err := s.auth.CurrentIdentity(ctx, si.BearerToken)
	if err != nil {
		s.identities.drop(si.ID)
		if httpio.HasUnauthorized(err) {
			// The upstream token is no longer valid. Destroy the session
			// so the stored token is cleared along with the identity.
			if derr := s.storage.DestroySession(ctx, si.ID); derr != nil {
				logger.Ctx(ctx).Error(errors.Wrap(derr, "SessionStorage.DestroySession()"))
			}

			return nil, httpio.NewUnauthorizedMessageWithError(err, "session is no longer valid")
		}

		return nil, errors.Wrap(err, "Authenticator.CurrentIdentity()")
	}

	if !s.identities.apply(si.ID, si.BearerToken, ident) {
		return nil, httpio.NewUnauthorizedMessage("session ended during identity refresh")
	}

	return ident, nil
}

func sessionIDFromRequest(r *http.Request) ccc.UUID {
	id, ok := r.Context().Value(ctxSessionID).(ccc.UUID)
	if !ok {
		logger.Req(r).Errorf("failed to find %s in request context", ctxSessionID)
	}

	return id
}

func sessionExpirationFromRequest(r *http.Request) time.Duration {
	d, ok := r.Context().Value(ctxSessionExpirationDuration).(time.Duration)
	if !ok {
		logger.Req(r).Errorf("failed to find %s in request context", ctxSessionExpirationDuration)
	}

	return d
}
