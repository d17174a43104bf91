package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// The role gate is the coarse, path-prefix layer of authorization. It
// runs before any handler body; data-dependent ownership checks live in
// the services, independently of this gate.

// Route targets used by redirect decisions.
const (
	AdminHome  = "/admin/clients"
	ClientHome = "/client/profile"
)

// DecisionKind classifies the gate's verdict for a request.
type DecisionKind int

const (
	Allow DecisionKind = iota
	Redirect
	Deny
)

// Decision is the gate's verdict; Target is set for Redirect only.
type Decision struct {
	Kind   DecisionKind
	Target string
}

// Decide classifies the path and applies the role rules. role is empty
// when no valid session accompanies the request.
//
//	auth-entry / unclassified        → Allow, no session required
//	scoped path, no session          → Deny
//	ADMIN on a client-scoped path    → Redirect to the admin home
//	CLIENT on an admin-scoped path   → Redirect to the client home
//	matching role and path           → Allow
func Decide(role, path string) Decision {
	if isAuthEntry(path) {
		return Decision{Kind: Allow}
	}

	adminScoped := strings.HasPrefix(path, "/admin")
	clientScoped := strings.HasPrefix(path, "/client")
	if !adminScoped && !clientScoped {
		return Decision{Kind: Allow}
	}

	if role == "" {
		return Decision{Kind: Deny}
	}

	switch role {
	case domain.RoleAdmin:
		if clientScoped {
			return Decision{Kind: Redirect, Target: AdminHome}
		}
		return Decision{Kind: Allow}
	case domain.RoleClient:
		if adminScoped {
			return Decision{Kind: Redirect, Target: ClientHome}
		}
		return Decision{Kind: Allow}
	}
	return Decision{Kind: Deny}
}

func isAuthEntry(path string) bool {
	return path == "/login" || path == "/register" ||
		strings.HasPrefix(path, "/api/auth/login") ||
		strings.HasPrefix(path, "/api/auth/register")
}

// RoleGate applies Decide before any handler executes. It parses the
// session token best-effort; parse failures count as "no session" here
// and the stricter Auth middleware still guards API route groups.
func RoleGate(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var role string
			if token := bearerToken(c); token != "" {
				if claims, err := ParseSessionToken(token, jwtSecret); err == nil {
					role = claims.Role
				}
			}

			switch d := Decide(role, c.Request().URL.Path); d.Kind {
			case Redirect:
				return c.Redirect(http.StatusFound, d.Target)
			case Deny:
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			default:
				return next(c)
			}
		}
	}
}
