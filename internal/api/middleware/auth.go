package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/persoshop/persoshop-api/internal/api/metrics"
	"github.com/persoshop/persoshop-api/pkg/bounded"
)

// RefreshedTokenHeader carries the re-signed session token back to the
// client on every authenticated response.
const RefreshedTokenHeader = "X-Session-Token"

// SessionClaims is what a validated session token proves.
type SessionClaims struct {
	UserID   string
	Role     string
	IssuedAt time.Time
}

// TokenMinter re-signs session tokens with extended expiry.
type TokenMinter interface {
	RefreshToken(userID, role string) (string, error)
}

// RevocationChecker reports the per-user revocation cutoff. Tokens issued
// at or before the cutoff are rejected, which is the forced-refresh path
// for role changes.
type RevocationChecker interface {
	RevokedAfter(ctx context.Context, userID string) (time.Time, error)
}

// Auth validates the session token, checks the revocation marker, injects
// claims into context, and transparently refreshes the token. The whole
// check runs under the session verification budget; an overrun surfaces
// as a 504, not a hang.
func Auth(jwtSecret string, minter TokenMinter, revoker RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			claims, err := ParseSessionToken(token, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			if revoker != nil {
				cutoff, err := bounded.Run(c.Request().Context(), bounded.SessionBudget, func(ctx context.Context) (time.Time, error) {
					return revoker.RevokedAfter(ctx, claims.UserID)
				})
				if err != nil {
					if errors.Is(err, bounded.ErrTimeout) {
						return echo.NewHTTPError(http.StatusGatewayTimeout, "session verification timed out")
					}
					return echo.NewHTTPError(http.StatusUnauthorized, "session verification failed")
				}
				if !cutoff.IsZero() && !claims.IssuedAt.After(cutoff) {
					return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
				}
			}

			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)

			if minter != nil {
				if refreshed, err := minter.RefreshToken(claims.UserID, claims.Role); err == nil {
					c.Response().Header().Set(RefreshedTokenHeader, refreshed)
					metrics.SessionRefreshesTotal.Inc()
				}
			}

			return next(c)
		}
	}
}

// ParseSessionToken verifies signature and expiry (HS256 only) and
// extracts the session claims.
func ParseSessionToken(token, jwtSecret string) (*SessionClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	out := &SessionClaims{UserID: sub, Role: role}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time.UTC()
	}
	return out, nil
}

// bearerToken extracts the session token from the Authorization header,
// falling back to the session cookie used by page navigation.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie("session"); err == nil {
		return cookie.Value
	}
	return ""
}
