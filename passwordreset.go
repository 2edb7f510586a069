package backoffice

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cccteam/httpio"
	"go.opentelemetry.io/otel"
)

// The password reset flow is owned by the upstream API; these handlers
// only proxy it so the browser never talks to upstream directly. None of
// them require a session.

// ForgotPassword requests a reset code be sent to the given email.
func (s *session) ForgotPassword() http.HandlerFunc {
	type request struct {
		Email string `json:"email"`
	}

	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "session.ForgotPassword()")
		defer span.End()

		payload := &request{}
		if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "invalid request body")
		}

		payload.Email = strings.TrimSpace(payload.Email)
		if payload.Email == "" {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "email is required")
		}

		if err := s.auth.ForgotPassword(ctx, payload.Email); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		return httpio.NewEncoder(w).Ok(nil)
	})
}

// VerifyResetCode checks a reset code before the new password is collected.
func (s *session) VerifyResetCode() http.HandlerFunc {
	type request struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}

	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "session.VerifyResetCode()")
		defer span.End()

		payload := &request{}
		if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "invalid request body")
		}

		if payload.Email == "" || payload.Code == "" {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "email and code are required")
		}

		if err := s.auth.VerifyResetCode(ctx, payload.Email, payload.Code); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		return httpio.NewEncoder(w).Ok(nil)
	})
}

// ResetPassword sets a new password using a verified reset code.
func (s *session) ResetPassword() http.HandlerFunc {
	type request struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}

	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "session.ResetPassword()")
		defer span.End()

		payload := &request{}
		if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "invalid request body")
		}

		if payload.Email == "" || payload.Code == "" || payload.NewPassword == "" {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "email, code, and new password are required")
		}

		if err := s.auth.ResetPassword(ctx, payload.Email, payload.Code, payload.NewPassword); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		return httpio.NewEncoder(w).Ok(nil)
	})
}
