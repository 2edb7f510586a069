package backoffice

import (
	"net/http"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"github.com/gofrs/uuid"
)

// stKey is a type for keys stored in the XSRF token cookie
type stKey string

func (c stKey) String() string {
	return string(c)
}

const (
	stCookieName = "XSRF-TOKEN"
	stHeaderName = "X-XSRF-TOKEN"
	// Keys used in the XSRF Token Cookie
	stSessionID       stKey = "sessionid"
	stNonce           stKey = "nonce"
	stTokenExpiration stKey = "expiration"

	xsrfCookieLife = time.Hour

	// rewrite xsrf cookie token if it expires within duration
	xsrfReWriteWindow = 30 * time.Minute
)

// safeMethods are Idempotent methods as defined by RFC7231 section 4.2.2.
var safeMethods = methods([]string{"GET", "HEAD", "OPTIONS", "TRACE"})

type methods []string

func (vals methods) contain(s string) bool {
	for _, v := range vals {
		if v == s {
			return true
		}
	}

	return false
}

// SetXSRFToken sets the XSRF Token
func (s *session) SetXSRFToken(next http.Handler) http.Handler {
	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		if s.setXSRFTokenCookie(w, r, sessionIDFromRequest(r), xsrfCookieLife) && !safeMethods.contain(r.Method) {
			// Cookie was not present and request requires XSRF Token, so
			// redirect request to try again now that the XSRF Token Cookie is set
			http.Redirect(w, r, r.RequestURI, http.StatusTemporaryRedirect)

			return nil
		}

		next.ServeHTTP(w, r)

		return nil
	})
}

// ValidateXSRFToken validates the XSRF Token
func (s *session) ValidateXSRFToken(next http.Handler) http.Handler {
	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		if !safeMethods.contain(r.Method) && !s.hasValidXSRFToken(r) {
			return httpio.NewEncoder(w).ClientMessage(r.Context(), httpio.NewForbiddenMessage("invalid XSRF token"))
		}

		next.ServeHTTP(w, r)

		return nil
	})
}

// setXSRFTokenCookie sets the cookie if it does not exist and rewrites it
// when it is close to expiration or bound to a different session.
func (c *cookieClient) setXSRFTokenCookie(w http.ResponseWriter, r *http.Request, sessionID ccc.UUID, cookieExpiration time.Duration) (set bool) {
	cval, found := c.readXSRFCookie(r)
	if found && cval[stSessionID] == sessionID.String() {
		exp, err := time.Parse(time.UnixDate, cval[stTokenExpiration])
		if err != nil {
			logger.Req(r).Error(errors.Wrap(err, "time.Parse()"))
		} else if time.Now().Before(exp.Add(-xsrfReWriteWindow)) {
			return false
		}
	}

	nonce, err := uuid.NewV4()
	if err != nil {
		logger.Req(r).Error(errors.Wrap(err, "uuid.NewV4()"))

		return false
	}

	cval = map[stKey]string{
		stSessionID:       sessionID.String(),
		stNonce:           nonce.String(),
		stTokenExpiration: time.Now().Add(cookieExpiration).Format(time.UnixDate),
	}

	if err := c.writeXSRFCookie(w, cval); err != nil {
		logger.Req(r).Error(err)

		return false
	}

	return true
}

// hasValidXSRFToken validates that the token in the request header matches
// the token in the cookie, is bound to the same session, and has not expired.
func (c *cookieClient) hasValidXSRFToken(r *http.Request) bool {
	cval, found := c.readXSRFCookie(r)
	if !found {
		return false
	}

	exp, err := time.Parse(time.UnixDate, cval[stTokenExpiration])
	if err != nil || time.Now().After(exp) {
		return false
	}

	header := r.Header.Get(stHeaderName)
	if header == "" {
		return false
	}

	hval := make(map[stKey]string)
	if err := c.secureCookie.Decode(stCookieName, header, &hval); err != nil {
		return false
	}

	return hval[stNonce] == cval[stNonce] && hval[stSessionID] == cval[stSessionID]
}

func (c *cookieClient) readXSRFCookie(r *http.Request) (map[stKey]string, bool) {
	cval := make(map[stKey]string)

	cookie, err := r.Cookie(stCookieName)
	if err != nil {
		return cval, false
	}
	if err := c.secureCookie.Decode(stCookieName, cookie.Value, &cval); err != nil {
		return cval, false
	}

	return cval, true
}

func (c *cookieClient) writeXSRFCookie(w http.ResponseWriter, cval map[stKey]string) error {
	encoded, err := c.secureCookie.Encode(stCookieName, cval)
	if err != nil {
		return errors.Wrap(err, "securecookie.SecureCookie.Encode()")
	}

	// Not HttpOnly: the browser client reads this cookie and echoes its
	// value in the XSRF header.
	http.SetCookie(w, &http.Cookie{
		Name:     stCookieName,
		Value:    encoded,
		Path:     "/",
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	return nil
}
