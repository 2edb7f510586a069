package backoffice

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/cccteam/ccc"
	"github.com/cccteam/ccc/accesstypes"
	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"github.com/playline/backoffice/identity"
	"github.com/playline/backoffice/permission"
	"github.com/playline/backoffice/sessioninfo"
	"go.opentelemetry.io/otel"
)

// Login exchanges credentials for an upstream bearer token and establishes
// the session cookie. The token is persisted with the session record
// before the identity fetch, so a crash between the two leaves a session
// that recovers on the next request instead of an orphaned token.
func (s *session) Login() http.HandlerFunc {
	type request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	type response struct {
		Authenticated bool                     `json:"authenticated"`
		Username      string                   `json:"username"`
		Actor         identity.Actor           `json:"actor"`
		Permissions   []accesstypes.Permission `json:"permissions"`
	}

	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "session.Login()")
		defer span.End()

		payload := &request{}
		if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "invalid request body")
		}

		payload.Username = strings.TrimSpace(payload.Username)
		if payload.Username == "" || payload.Password == "" {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "username and password are required")
		}

		token, err := s.auth.Login(ctx, payload.Username, payload.Password)
		if err != nil {
			if httpio.HasUnauthorized(err) || httpio.HasNotFound(err) {
				return httpio.NewEncoder(w).ClientMessage(ctx, httpio.NewUnauthorizedMessage("invalid username or password"))
			}

			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		sessionID, err := s.storage.NewSession(ctx, payload.Username, token.AccessToken)
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		si := &sessioninfo.SessionInfo{ID: sessionID, Username: payload.Username, BearerToken: token.AccessToken}
		ident, err := s.currentIdentity(ctx, si)
		if err != nil {
			s.abandonSession(ctx, sessionID)

			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}
		if !ident.Active() {
			s.abandonSession(ctx, sessionID)

			return httpio.NewEncoder(w).ClientMessage(ctx, httpio.NewUnauthorizedMessage("account is not active"))
		}

		if _, err := s.newAuthCookie(w, sessionID); err != nil {
			s.abandonSession(ctx, sessionID)

			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		s.setXSRFTokenCookie(w, r, sessionID, xsrfCookieLife)

		access, err := s.resolver.Resolve(ctx, si.BearerToken, ident)
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		res := response{
			Authenticated: true,
			Username:      ident.Username,
			Actor:         access.Actor,
			Permissions:   sortedPermissions(access.Set),
		}

		return httpio.NewEncoder(w).Ok(res)
	})
}

// abandonSession backs out a half-established login. Failures are logged
// only: the session row is already expired-or-doomed and the caller is
// about to receive the real error.
func (s *session) abandonSession(ctx context.Context, sessionID ccc.UUID) {
	s.identities.drop(sessionID)
	if err := s.storage.DestroySession(ctx, sessionID); err != nil {
		logger.Ctx(ctx).Error(errors.Wrap(err, "SessionStorage.DestroySession()"))
	}
}

// Logout ends the session. The identity cache entry and the auth cookie go
// first, so the caller is signed out the moment this returns even if the
// storage write fails; a failed row update is logged and retried by nature
// of the row's expiry check.
func (s *session) Logout() http.HandlerFunc {
	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "session.Logout()")
		defer span.End()

		sessionID := sessionIDFromRequest(r)
		s.identities.drop(sessionID)
		s.clearAuthCookie(w)

		if !sessionID.IsNil() {
			if err := s.storage.DestroySession(ctx, sessionID); err != nil {
				logger.Ctx(ctx).Error(errors.Wrap(err, "SessionStorage.DestroySession()"))
			}
		}

		return httpio.NewEncoder(w).Ok(nil)
	})
}

// Authenticated reports whether the caller has a valid session, and if so
// who they are and what they may do. An invalid session is a normal
// answer here, not an error.
func (s *session) Authenticated() http.HandlerFunc {
	type response struct {
		Authenticated bool                     `json:"authenticated"`
		Username      string                   `json:"username"`
		Actor         identity.Actor           `json:"actor"`
		Permissions   []accesstypes.Permission `json:"permissions"`
	}

	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "session.Authenticated()")
		defer span.End()

		r, err := s.checkSession(r)
		if err != nil {
			if httpio.HasUnauthorized(err) {
				return httpio.NewEncoder(w).Ok(response{})
			}

			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		ai := sessioninfo.AccessFromRequest(r)
		res := response{
			Authenticated: true,
			Username:      sessioninfo.FromRequest(r).Username,
			Actor:         ai.Access.Actor,
			Permissions:   sortedPermissions(ai.Access.Set),
		}

		return httpio.NewEncoder(w).Ok(res)
	})
}

func sortedPermissions(set permission.Set) []accesstypes.Permission {
	perms := set.List()
	slices.Sort(perms)

	return perms
}
