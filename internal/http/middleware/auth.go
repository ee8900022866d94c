package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jyotishya/jyotishya-backend/internal/http/response"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"github.com/jyotishya/jyotishya-backend/internal/requestdata"
	"github.com/jyotishya/jyotishya-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		log:         log.With("middleware", "AuthMiddleware"),
		authService: authService,
	}
}

// RequireAuth verifies the Supabase bearer token, upserts the local user row
// and attaches the identity to the request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing bearer token"))
			c.Abort()
			return
		}

		claims, err := am.authService.VerifyToken(tokenString)
		if err != nil {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
			c.Abort()
			return
		}

		u, err := am.authService.EnsureUser(c.Request.Context(), claims)
		if err != nil {
			am.log.Error("user upsert failed during auth", "error", err)
			response.RespondError(c, http.StatusInternalServerError, "internal", fmt.Errorf("could not resolve user"))
			c.Abort()
			return
		}

		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
			UserID: u.ID,
			Email:  u.Email,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
