package backoffice

import (
	"net/http"
	"strings"

	"github.com/cccteam/ccc/accesstypes"
	"github.com/cccteam/httpio"
	"github.com/playline/backoffice/identity"
	"github.com/playline/backoffice/permission"
	"github.com/playline/backoffice/sessioninfo"
	"go.opentelemetry.io/otel"
)

// Decision is the outcome of evaluating a Requirement against the current
// session state.
type Decision int

const (
	// DecisionResolving means the session's access is not yet known and no
	// grant or denial can be issued.
	DecisionResolving Decision = iota

	// DecisionUnauthenticated means no valid session exists.
	DecisionUnauthenticated

	// DecisionForbidden means the session is valid but does not satisfy
	// the requirement.
	DecisionForbidden

	// DecisionAuthorized means the requirement is satisfied.
	DecisionAuthorized
)

func (d Decision) String() string {
	switch d {
	case DecisionResolving:
		return "resolving"
	case DecisionUnauthenticated:
		return "unauthenticated"
	case DecisionForbidden:
		return "forbidden"
	case DecisionAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Requirement describes what a route demands of the caller. The zero value
// requires only a valid session.
type Requirement struct {
	// Permission that must be held. Empty means no permission check.
	Permission accesstypes.Permission

	// Actors that may pass, any one sufficing. Empty means no actor check.
	Actors []identity.Actor
}

// State is the session state a Decision is derived from.
type State struct {
	// Resolving is true while the session is still being established.
	Resolving bool

	// Authenticated is true when a valid session exists.
	Authenticated bool

	// Access holds the session's resolved permissions and actor class.
	Access permission.Access
}

// Decide maps a session state and a requirement to a Decision. It is pure:
// the same inputs always produce the same Decision, so re-evaluating after
// a state change is always safe.
//
// Authentication is settled before authorization. An authenticated session
// whose access is not yet known stays in DecisionResolving rather than
// being denied on incomplete information.
func Decide(s State, req Requirement) Decision {
	switch {
	case s.Resolving:
		return DecisionResolving
	case s.Authenticated && !s.Access.Known():
		return DecisionResolving
	case !s.Authenticated:
		return DecisionUnauthenticated
	case !s.Access.Allows(req.Permission):
		return DecisionForbidden
	case !s.Access.AllowsActor(req.Actors...):
		return DecisionForbidden
	default:
		return DecisionAuthorized
	}
}

// Require returns middleware enforcing req on every request it wraps.
//
// Denials are delivered two ways. A navigation request is redirected with
// 303 See Other, to the sign-in page when unauthenticated and to the home
// page when forbidden, so the denied location never remains the current
// one. Any other request receives a structured 401 or 403 response.
func (s *session) Require(req Requirement) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return s.handle(func(w http.ResponseWriter, r *http.Request) error {
			ctx, span := otel.Tracer(name).Start(r.Context(), "session.Require()")
			defer span.End()

			state := State{}

			r2, err := s.checkSession(r)
			switch {
			case err == nil:
				r = r2
				state.Authenticated = true
				state.Access = sessioninfo.AccessFromRequest(r).Access
			case httpio.HasUnauthorized(err):
				state.Access = permission.Access{State: permission.StateResolved}
			default:
				return httpio.NewEncoder(w).ClientMessage(ctx, err)
			}

			switch d := Decide(state, req); d {
			case DecisionAuthorized:
				next.ServeHTTP(w, r)

				return nil
			case DecisionUnauthenticated:
				return s.deny(w, r, http.StatusUnauthorized, err)
			case DecisionForbidden:
				return s.deny(w, r, http.StatusForbidden, nil)
			default:
				// Blocking resolution failed upstream of a grant; the
				// caller can retry once the permission source recovers.
				return httpio.NewEncoder(w).ClientMessage(ctx, httpio.NewServiceUnavailableMessage("access resolution incomplete"))
			}
		})
	}
}

// deny writes the denial for a failed requirement. Navigation requests are
// redirected so the browser does not land on the denied location; all
// others get the structured error.
func (s *session) deny(w http.ResponseWriter, r *http.Request, status int, cause error) error {
	if wantsNavigation(r) {
		target := s.homeURL
		if status == http.StatusUnauthorized {
			target = s.signInURL
		}

		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, target, http.StatusSeeOther)

		return nil
	}

	if status == http.StatusUnauthorized {
		if cause == nil {
			cause = httpio.NewUnauthorizedMessage("not authenticated")
		}

		return httpio.NewEncoder(w).ClientMessage(r.Context(), cause)
	}

	return httpio.NewEncoder(w).ClientMessage(r.Context(), httpio.NewForbiddenMessage("insufficient access"))
}

// wantsNavigation reports whether the request is a browser navigation, as
// opposed to a fetch issued by page code.
func wantsNavigation(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}

	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
