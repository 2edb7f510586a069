package backoffice

import (
	"net/http"
	"time"

	"github.com/cccteam/ccc"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"github.com/gorilla/securecookie"
)

// scKey is a type for keys stored in the session cookie
type scKey string

func (c scKey) String() string {
	return string(c)
}

const (
	// Keys used within the Secure Cookie
	scAuthCookieName scKey = "auth"
	scSessionID      scKey = "sessionID"
)

// Interface included for testability
type cookieManager interface {
	newAuthCookie(w http.ResponseWriter, sessionID ccc.UUID) (map[scKey]string, error)
	readAuthCookie(r *http.Request) (map[scKey]string, bool)
	writeAuthCookie(w http.ResponseWriter, cval map[scKey]string) error
	clearAuthCookie(w http.ResponseWriter)
	setXSRFTokenCookie(w http.ResponseWriter, r *http.Request, sessionID ccc.UUID, cookieExpiration time.Duration) (set bool)
	hasValidXSRFToken(r *http.Request) bool
}

var _ cookieManager = &cookieClient{}

type cookieClient struct {
	secureCookie *securecookie.SecureCookie
}

func newCookieClient(secureCookie *securecookie.SecureCookie) *cookieClient {
	return &cookieClient{
		secureCookie: secureCookie,
	}
}

func (c *cookieClient) newAuthCookie(w http.ResponseWriter, sessionID ccc.UUID) (map[scKey]string, error) {
	cval := map[scKey]string{
		scSessionID: sessionID.String(),
	}

	if err := c.writeAuthCookie(w, cval); err != nil {
		return nil, errors.Wrap(err, "cookieClient.writeAuthCookie()")
	}

	return cval, nil
}

func (c *cookieClient) readAuthCookie(r *http.Request) (map[scKey]string, bool) {
	cval := make(map[scKey]string)

	cookie, err := r.Cookie(scAuthCookieName.String())
	if err != nil {
		return cval, false
	}
	if err := c.secureCookie.Decode(scAuthCookieName.String(), cookie.Value, &cval); err != nil {
		logger.Req(r).Error(errors.Wrap(err, "securecookie.SecureCookie.Decode()"))

		return cval, false
	}

	return cval, true
}

func (c *cookieClient) writeAuthCookie(w http.ResponseWriter, cval map[scKey]string) error {
	encoded, err := c.secureCookie.Encode(scAuthCookieName.String(), cval)
	if err != nil {
		return errors.Wrap(err, "securecookie.SecureCookie.Encode()")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     scAuthCookieName.String(),
		Value:    encoded,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return nil
}

// clearAuthCookie expires the session cookie. Logout must take effect from
// the caller's perspective without waiting on anything else.
func (c *cookieClient) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     scAuthCookieName.String(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// validSessionID checks that the sessionID is a valid uuid
func validSessionID(sessionID string) (ccc.UUID, bool) {
	sessionUUID, err := ccc.UUIDFromString(sessionID)
	if err != nil {
		return ccc.NilUUID, false
	}

	return sessionUUID, true
}
