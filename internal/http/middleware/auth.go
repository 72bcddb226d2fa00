package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/diebraga/daily-diet-api/internal/services"
	"github.com/diebraga/daily-diet-api/internal/utils"
)

// Context keys the gate sets for downstream handlers.
const (
	CtxUserID  = "user_id"
	CtxIsAdmin = "is_admin"
)

// RequireAuth verifies the bearer token and attaches the claim set to
// the request context. Every failure mode gets the same 401 body; which
// mode it was is only visible in the debug log. Role is not checked
// here — handlers that need admin read CtxIsAdmin themselves.
func RequireAuth(tokens *services.TokenIssuer, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			log.Debug("auth rejected", "reason", "missing bearer header", "path", c.Request.URL.Path)
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			reason := "invalid token"
			if errors.Is(err, services.ErrTokenExpired) {
				reason = "expired token"
			}
			log.Debug("auth rejected", "reason", reason, "path", c.Request.URL.Path)
			abortUnauthorized(c)
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing token", nil))
	c.Abort()
}
