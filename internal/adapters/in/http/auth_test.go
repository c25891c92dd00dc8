package http_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "ordering/internal/adapters/in/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKeys(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, base64.StdEncoding.EncodeToString(pemBytes)
}

func signToken(t *testing.T, key *rsa.PrivateKey, subject string, roles ...string) string {
	t.Helper()

	roleEntries := make([]map[string]map[string]string, 0, len(roles))
	for _, role := range roles {
		roleEntries = append(roleEntries, map[string]map[string]string{"role": {"role": role}})
	}

	claims := jwt.MapClaims{
		"sub":  subject,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
		"role": roleEntries,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

// authProbe builds an echo instance with the middleware and a route echoing
// the decoded actor back.
func authProbe(t *testing.T, publicKeyBase64 string) *echo.Echo {
	t.Helper()

	middleware, err := httpadapter.NewAuthMiddleware(publicKeyBase64)
	require.NoError(t, err)

	e := echo.New()
	e.GET("/whoami", func(ctx echo.Context) error {
		actor, ok := httpadapter.ActorFromContext(ctx)
		if !ok {
			return ctx.NoContent(nethttp.StatusInternalServerError)
		}
		return ctx.JSON(nethttp.StatusOK, map[string]any{
			"id":         actor.ID(),
			"privileged": actor.IsPrivileged(),
		})
	}, middleware)

	return e
}

func TestAuthMiddleware_ValidTokenDecodesActor(t *testing.T) {
	key, publicKeyBase64 := generateKeys(t)
	e := authProbe(t, publicKeyBase64)

	req := httptest.NewRequest(nethttp.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, key, "user-7", "CUSTOMER"))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"user-7","privileged":false}`, rec.Body.String())
}

func TestAuthMiddleware_PrivilegedRoles(t *testing.T) {
	key, publicKeyBase64 := generateKeys(t)
	e := authProbe(t, publicKeyBase64)

	for _, role := range []string{"ADMIN", "STAFF", "FRANCHISE_OWNER"} {
		req := httptest.NewRequest(nethttp.MethodGet, "/whoami", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, key, "op-1", role))
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, nethttp.StatusOK, rec.Code, role)
		assert.JSONEq(t, `{"id":"op-1","privileged":true}`, rec.Body.String(), role)
	}
}

func TestAuthMiddleware_UnknownRolesAreSkipped(t *testing.T) {
	key, publicKeyBase64 := generateKeys(t)
	e := authProbe(t, publicKeyBase64)

	req := httptest.NewRequest(nethttp.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, key, "user-7", "SUPERVISOR", "CUSTOMER"))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"user-7","privileged":false}`, rec.Body.String())
}

func TestAuthMiddleware_OnlyUnknownRolesRejected(t *testing.T) {
	key, publicKeyBase64 := generateKeys(t)
	e := authProbe(t, publicKeyBase64)

	req := httptest.NewRequest(nethttp.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, key, "user-7", "SUPERVISOR"))
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MissingHeaderRejected(t *testing.T) {
	_, publicKeyBase64 := generateKeys(t)
	e := authProbe(t, publicKeyBase64)

	req := httptest.NewRequest(nethttp.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_WrongSigningMethodRejected(t *testing.T) {
	_, publicKeyBase64 := generateKeys(t)
	e := authProbe(t, publicKeyBase64)

	claims := jwt.MapClaims{
		"sub": "user-7",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredTokenRejected(t *testing.T) {
	key, publicKeyBase64 := generateKeys(t)
	e := authProbe(t, publicKeyBase64)

	claims := jwt.MapClaims{
		"sub":  "user-7",
		"exp":  time.Now().Add(-time.Hour).Unix(),
		"role": []map[string]map[string]string{{"role": {"role": "CUSTOMER"}}},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_TokenWithoutSubjectRejected(t *testing.T) {
	key, publicKeyBase64 := generateKeys(t)
	e := authProbe(t, publicKeyBase64)

	claims := jwt.MapClaims{
		"exp":  time.Now().Add(time.Hour).Unix(),
		"role": []map[string]map[string]string{{"role": {"role": "CUSTOMER"}}},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestNewAuthMiddleware_InvalidKeyMaterial(t *testing.T) {
	_, err := httpadapter.NewAuthMiddleware("not-base64!!!")
	require.Error(t, err)

	_, err = httpadapter.NewAuthMiddleware(base64.StdEncoding.EncodeToString([]byte("not a pem key")))
	require.Error(t, err)
}
