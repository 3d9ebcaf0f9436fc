package auth

import (
	"strings"

	"github.com/finlight/dashboard-be/internal/models"
)

// RouteClass is the access class of a request path.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteProtected
	RouteAdmin
)

// Redirect reasons surfaced on denied or bounced requests.
const (
	ReasonBounceAuthenticated = "public.bounce_authenticated"
	ReasonNotAuthenticated    = "protected.not_authenticated"
	ReasonAdminNotAuthed      = "admin.not_authenticated"
	ReasonAdminNotAuthorized  = "admin.not_authorized"
)

// Decision is the authorizer's verdict: pass the request through, or redirect
// with a reason the routing layer can log.
type Decision struct {
	Allow  bool
	Target string
	Reason string
}

// RouteAuthorizer classifies paths and gates them on session claims. The
// prefix table is built once at startup and read-only afterwards.
type RouteAuthorizer struct {
	adminPrefixes     []string
	protectedPrefixes []string
	loginPath         string
	dashboardPath     string
}

// NewRouteAuthorizer builds the static route table. Admin wins over
// protected; anything matching neither is public.
func NewRouteAuthorizer() *RouteAuthorizer {
	return &RouteAuthorizer{
		adminPrefixes:     []string{"/admin"},
		protectedPrefixes: []string{"/dashboard", "/logout"},
		loginPath:         "/login",
		dashboardPath:     "/dashboard",
	}
}

// Classify maps a request path to its route class.
func (a *RouteAuthorizer) Classify(path string) RouteClass {
	if matchesPrefix(path, a.adminPrefixes) {
		return RouteAdmin
	}
	if matchesPrefix(path, a.protectedPrefixes) {
		return RouteProtected
	}
	return RoutePublic
}

// Authorize decides allow or redirect for one request. claims is nil when
// there is no session or the token failed verification; both cases are
// treated identically.
func (a *RouteAuthorizer) Authorize(class RouteClass, claims *SessionClaims) Decision {
	switch class {
	case RouteAdmin:
		if claims == nil {
			return Decision{Target: a.loginPath, Reason: ReasonAdminNotAuthed}
		}
		if claims.Role != models.RoleAdmin {
			return Decision{Target: a.dashboardPath, Reason: ReasonAdminNotAuthorized}
		}
	case RouteProtected:
		if claims == nil {
			return Decision{Target: a.loginPath, Reason: ReasonNotAuthenticated}
		}
	case RoutePublic:
		// Logged-in users should not land back on login or signup.
		if claims != nil {
			return Decision{Target: a.dashboardPath, Reason: ReasonBounceAuthenticated}
		}
	}
	return Decision{Allow: true}
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
