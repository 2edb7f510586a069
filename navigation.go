package backoffice

import (
	"net/http"

	"github.com/cccteam/httpio"
	"github.com/playline/backoffice/nav"
	"github.com/playline/backoffice/sessioninfo"
	"go.opentelemetry.io/otel"
)

// Navigation returns the navigation tree filtered to what the session's
// access can reach. Branches with nothing visible underneath are omitted
// entirely, so the response never advertises an empty section.
func (s *session) Navigation() http.HandlerFunc {
	type response struct {
		Items []nav.Item `json:"items"`
	}

	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "session.Navigation()")
		defer span.End()

		r, err := s.checkSession(r)
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		access := sessioninfo.AccessFromRequest(r).Access

		return httpio.NewEncoder(w).Ok(response{Items: nav.Filter(s.menu, access)})
	})
}
