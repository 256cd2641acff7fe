package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/helpers"
	"github.com/skmohanty2628/Finverse-AI-Finance/pkg/response"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserIDKey    = "userID"
	CtxUserNameKey  = "userName"
	CtxUserEmailKey = "userEmail"
)

// Auth admits requests that carry a valid signed token in the Authorization
// header. Verification is signature plus expiry only; no session store is
// consulted, so a token stays valid until it expires.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortErr(c, http.StatusUnauthorized, "authorization required")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortErr(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserNameKey, claims.Name)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
