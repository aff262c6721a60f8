package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/vet-scheduler/internal/config"
	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/identity"
)

const testSecret = "test-secret"

type mapResolver map[string]*identity.Identity

func (m mapResolver) Resolve(_ context.Context, subject string) (*identity.Identity, error) {
	if subject == "broken" {
		return nil, errors.New("db down")
	}
	id, ok := m[subject]
	if !ok {
		return nil, identity.ErrUnknownUser
	}
	return id, nil
}

func signed(t *testing.T, method jwt.SigningMethod, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func claimsFor(sub string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func newAuthRouter(cfg *config.Config, resolver IdentityResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	r := gin.New()
	r.Use(AuthMiddleware(cfg, resolver, log))
	r.GET("/whoami", func(c *gin.Context) {
		a := Actor(c)
		c.JSON(http.StatusOK, gin.H{"user": a.UserID, "role": a.Role})
	})
	r.GET("/front-desk", RequireRoles(domain.RoleFrontDesk, domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func call(r *gin.Engine, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var e httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e.Code
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	resolver := mapResolver{
		"auth-recepcion": {UserID: userID, Role: "recepcion", Active: true},
		"auth-inactivo":  {UserID: uuid.New(), Role: "tutor", Active: false},
	}
	r := newAuthRouter(&config.Config{JWTSecret: testSecret}, resolver)

	t.Run("missing header", func(t *testing.T) {
		w := call(r, "/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "missing_authorization", errorCode(t, w))
	})

	t.Run("not bearer", func(t *testing.T) {
		w := call(r, "/whoami", "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad signature", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor("auth-recepcion")).SignedString([]byte("other"))
		require.NoError(t, err)
		w := call(r, "/whoami", "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid_token", errorCode(t, w))
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		w := call(r, "/whoami", "Bearer "+signed(t, jwt.SigningMethodHS512, claimsFor("auth-recepcion")))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired", func(t *testing.T) {
		c := claimsFor("auth-recepcion")
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		w := call(r, "/whoami", "Bearer "+signed(t, jwt.SigningMethodHS256, c))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := call(r, "/whoami", "Bearer "+signed(t, jwt.SigningMethodHS256, claimsFor("nadie")))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "user_not_found", errorCode(t, w))
	})

	t.Run("inactive user", func(t *testing.T) {
		w := call(r, "/whoami", "Bearer "+signed(t, jwt.SigningMethodHS256, claimsFor("auth-inactivo")))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "account_disabled", errorCode(t, w))
	})

	t.Run("identity store down", func(t *testing.T) {
		w := call(r, "/whoami", "Bearer "+signed(t, jwt.SigningMethodHS256, claimsFor("broken")))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
	})

	t.Run("valid", func(t *testing.T) {
		w := call(r, "/whoami", "Bearer "+signed(t, jwt.SigningMethodHS256, claimsFor("auth-recepcion")))
		require.Equal(t, http.StatusOK, w.Code)

		var out struct {
			User uuid.UUID `json:"user"`
			Role string    `json:"role"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, userID, out.User)
		assert.Equal(t, "recepcion", out.Role)
	})
}

func TestAuthMiddleware_Issuer(t *testing.T) {
	resolver := mapResolver{"auth-admin": {UserID: uuid.New(), Role: "admin", Active: true}}
	r := newAuthRouter(&config.Config{JWTSecret: testSecret, JWTIssuer: "https://auth.clinic"}, resolver)

	c := claimsFor("auth-admin")
	c.Issuer = "https://elsewhere"
	w := call(r, "/whoami", "Bearer "+signed(t, jwt.SigningMethodHS256, c))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c.Issuer = "https://auth.clinic"
	w = call(r, "/whoami", "Bearer "+signed(t, jwt.SigningMethodHS256, c))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles(t *testing.T) {
	resolver := mapResolver{
		"auth-recepcion": {UserID: uuid.New(), Role: "recepcion", Active: true},
		"auth-tutor":     {UserID: uuid.New(), Role: "tutor", Active: true},
	}
	r := newAuthRouter(&config.Config{JWTSecret: testSecret}, resolver)

	w := call(r, "/front-desk", "Bearer "+signed(t, jwt.SigningMethodHS256, claimsFor("auth-recepcion")))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = call(r, "/front-desk", "Bearer "+signed(t, jwt.SigningMethodHS256, claimsFor("auth-tutor")))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden_role", errorCode(t, w))
}
