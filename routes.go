package backoffice

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes assembles the session layer's HTTP surface on a chi router. Every
// request passes through the session middleware chain; the XSRF middleware
// only bites on unsafe methods, so the public endpoints below remain
// reachable without a session.
func (s *Session) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.SetSessionTimeout)
	r.Use(s.StartSession)
	r.Use(s.SetXSRFToken)
	r.Use(s.ValidateXSRFToken)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.Login())
		r.Post("/logout", s.Logout())
		r.Get("/authenticated", s.Authenticated())
		r.Get("/navigation", s.Navigation())
		r.Post("/forgot-password", s.ForgotPassword())
		r.Post("/verify-reset-code", s.VerifyResetCode())
		r.Post("/reset-password", s.ResetPassword())
	})

	return r
}

// Protect is a convenience for route groups outside this router that need
// the full middleware chain plus a guard requirement.
func (s *Session) Protect(req Requirement) func(next http.Handler) http.Handler {
	guard := s.Require(req)

	return func(next http.Handler) http.Handler {
		return s.SetSessionTimeout(s.StartSession(s.SetXSRFToken(s.ValidateXSRFToken(guard(next)))))
	}
}
