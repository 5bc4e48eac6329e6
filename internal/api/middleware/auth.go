package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Options carries the token validation settings.
type Options struct {
	SecurityKey string
	Issuer      string
	Audience    string
}

// Auth validates the bearer JWT and injects its claims into the request
// context. Issuer, audience, lifetime and signing method are all enforced;
// any failure is a 401.
func Auth(opts Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(opts.SecurityKey), nil
			},
				jwt.WithIssuer(opts.Issuer),
				jwt.WithAudience(opts.Audience),
				jwt.WithExpirationRequired(),
			)
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user_id", claims["sid"])
			c.Set("username", claims["sub"])
			c.Set("email", claims["email"])
			c.Set("first_name", claims["given_name"])
			c.Set("last_name", claims["family_name"])
			c.Set("roles", rolesFromClaims(claims))

			return next(c)
		}
	}
}

// rolesFromClaims converts the decoded roles claim (a []interface{} after
// JSON parsing) into a string slice. A missing claim yields nil.
func rolesFromClaims(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
