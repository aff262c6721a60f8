package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/vet-scheduler/internal/config"
	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/identity"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextIdentity = "identity"
)

type IdentityResolver interface {
	Resolve(ctx context.Context, subject string) (*identity.Identity, error)
}

func AuthMiddleware(cfg *config.Config, resolver IdentityResolver, log logrus.FieldLogger) gin.HandlerFunc {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.JWTIssuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(cfg.JWTIssuer))
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_token")
			return
		}

		claims := jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		}, parserOpts...)
		if err != nil || !token.Valid || claims.Subject == "" {
			httperr.Unauthorized(c, "invalid_token")
			return
		}

		id, err := resolver.Resolve(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, identity.ErrUnknownUser) {
				httperr.Unauthorized(c, "user_not_found")
				return
			}
			log.WithError(err).Error("identity resolution failed")
			c.Abort()
			httperr.Respond(c, httperr.Store("resolve_identity", err))
			return
		}

		if !id.Active {
			c.Abort()
			httperr.Write(c, http.StatusForbidden, httperr.KindForbidden, "account_disabled", httperr.Message("account_disabled"))
			return
		}

		c.Set(ContextUserID, id.UserID)
		c.Set(ContextUserRole, id.Role)
		c.Set(ContextIdentity, id)

		c.Next()
	}
}

// Actor returns the authenticated caller set by AuthMiddleware.
func Actor(c *gin.Context) domain.Actor {
	userID, _ := c.Get(ContextUserID)
	role, _ := c.Get(ContextUserRole)

	uid, _ := userID.(uuid.UUID)
	r, _ := role.(string)

	return domain.Actor{UserID: uid, Role: domain.Role(r)}
}
