package http

import (
	"crypto/rsa"
	"encoding/base64"
	"net/http"
	"strings"

	"ordering/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// actorContextKey is the echo context key under which the authenticated
// Actor is stored by the auth middleware.
const actorContextKey = "actor"

// roleEntry mirrors the nested role shape the identity provider emits:
// "role": [{"role": {"role": "ADMIN"}}].
type roleEntry struct {
	Role struct {
		Role string `json:"role"`
	} `json:"role"`
}

type authClaims struct {
	Roles []roleEntry `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthMiddleware builds an echo middleware validating RS256 bearer tokens
// against the identity provider's public key, supplied as base64-encoded PEM.
// On success the caller identity is decoded once into a kernel.Actor and
// stored on the request context; any failure yields 401.
func NewAuthMiddleware(publicKeyBase64 string) (echo.MiddlewareFunc, error) {
	pemBytes, err := base64.StdEncoding.DecodeString(publicKeyBase64)
	if err != nil {
		return nil, err
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, err := authenticate(ctx, publicKey)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Unauthorized",
				})
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}, nil
}

func authenticate(ctx echo.Context, publicKey *rsa.PublicKey) (kernel.Actor, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return kernel.Actor{}, echo.ErrUnauthorized
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) { return publicKey, nil },
		jwt.WithValidMethods([]string{"RS256"}),
	)
	if err != nil {
		return kernel.Actor{}, err
	}
	if !token.Valid || claims.Subject == "" {
		return kernel.Actor{}, echo.ErrUnauthorized
	}

	// Unknown role labels are skipped rather than rejected: role sets evolve
	// on the identity provider side independently of this service.
	roles := make([]kernel.Role, 0, len(claims.Roles))
	for _, entry := range claims.Roles {
		role, roleErr := kernel.RoleFromString(entry.Role.Role)
		if roleErr != nil {
			continue
		}
		roles = append(roles, role)
	}

	return kernel.NewActor(claims.Subject, roles)
}

// ActorFromContext returns the authenticated caller stored by the middleware.
func ActorFromContext(ctx echo.Context) (kernel.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(kernel.Actor)
	return actor, ok
}
