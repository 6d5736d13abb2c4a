package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mainta/internal/domain/user"
	"mainta/internal/infrastructure/auth"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/constants"
	"mainta/internal/shared/logger"
	"mainta/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   user.Repository
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, userRepo user.Repository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and resolves the account behind
// it. The loaded actor is stored in the request context so handlers and
// use cases share one consistent identity per request.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		authHeader := c.GetHeader("Authorization")
		switch {
		case authHeader != "":
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
				c.Abort()
				return
			}
			token = parts[1]
		case c.Query("token") != "":
			// Browsers cannot set headers on a websocket handshake, so
			// the token may ride in the query string instead.
			token = c.Query("token")
		default:
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		// Roles can change between token issuance and use, so the account
		// is loaded fresh on every request.
		u, err := m.userRepo.GetByUserID(c.Request.Context(), claims.UserID)
		if err != nil {
			m.logger.Warnw("token for unknown account", "user_id", claims.UserID)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		if !u.IsActive() {
			utils.ErrorResponse(c, http.StatusForbidden, "account is deactivated")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, u.UserID())
		c.Set(constants.ContextKeyUserRole, string(u.Role()))
		c.Set(constants.ContextKeyUserService, string(u.Service()))
		c.Set(constants.ContextKeyActor, u.Actor())

		c.Next()
	}
}

// ActorFromContext returns the authenticated actor stored by RequireAuth.
func ActorFromContext(c *gin.Context) (authorization.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return authorization.Actor{}, false
	}
	actor, ok := value.(authorization.Actor)
	return actor, ok
}
