package middleware

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/finlight/dashboard-be/internal/auth"
)

// Session runs the per-request auth chain before any page logic: classify the
// route, decode the cookie, apply the rotation policy, then authorize. An
// invalid or expired token is cleared and treated as no session.
func Session(codec *auth.TokenCodec, policy *auth.SessionPolicy, authorizer *auth.RouteAuthorizer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies := auth.NewHTTPCookies(w, r)
		class := authorizer.Classify(r.URL.Path)

		var claims *auth.SessionClaims
		if raw, ok := cookies.Get(auth.SessionCookieName); ok {
			decoded, err := codec.Decode(raw)
			switch {
			case err == nil:
				claims = applyPolicy(codec, policy, cookies, decoded)
			case errors.Is(err, auth.ErrInvalidToken):
				cookies.Delete(auth.SessionCookieName)
			}
		}

		decision := authorizer.Authorize(class, claims)
		if !decision.Allow {
			log.Printf("authorize: %s %s -> %s (%s)", r.Method, r.URL.Path, decision.Target, decision.Reason)
			http.Redirect(w, r, decision.Target, http.StatusSeeOther)
			return
		}

		if claims != nil {
			r = r.WithContext(auth.WithClaims(r.Context(), *claims))
		}
		next.ServeHTTP(w, r)
	})
}

func applyPolicy(codec *auth.TokenCodec, policy *auth.SessionPolicy, cookies auth.CookieTransport, decoded auth.SessionClaims) *auth.SessionClaims {
	now := time.Now().UTC()
	decision := policy.Evaluate(decoded, now)
	switch decision.Outcome {
	case auth.SessionExpired:
		cookies.Delete(auth.SessionCookieName)
		return nil
	case auth.SessionRotate:
		token, err := codec.Sign(decision.Claims)
		if err != nil {
			// The current token is still valid; keep it and retry
			// rotation on the next request.
			log.Printf("session rotation failed: %v", err)
			return &decoded
		}
		cookies.Set(auth.SessionCookieName, token, decision.Claims.ExpiresAt.Sub(now))
		rotated := decision.Claims
		return &rotated
	default:
		return &decoded
	}
}
