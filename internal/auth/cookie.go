package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// CookieTransport is the small port the session flow reads and writes cookies
// through, keeping the policy and use-case layers independent of the HTTP
// runtime. Attributes are fixed by the implementation, not chosen per call:
// every session cookie is HttpOnly, Path=/, SameSite=Strict.
type CookieTransport interface {
	Get(name string) (string, bool)
	Set(name, value string, maxAge time.Duration)
	Delete(name string)
}

type httpCookies struct {
	w http.ResponseWriter
	r *http.Request
}

// NewHTTPCookies binds a transport to one request/response pair.
func NewHTTPCookies(w http.ResponseWriter, r *http.Request) CookieTransport {
	return &httpCookies{w: w, r: r}
}

func (c *httpCookies) Get(name string) (string, bool) {
	cookie, err := c.r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (c *httpCookies) Set(name, value string, maxAge time.Duration) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(maxAge.Seconds()),
	})
}

// Delete expires the cookie immediately. Deleting an absent cookie is fine.
func (c *httpCookies) Delete(name string) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}
