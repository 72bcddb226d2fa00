package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diebraga/daily-diet-api/internal/http/middleware"
	"github.com/diebraga/daily-diet-api/internal/services"
	"github.com/diebraga/daily-diet-api/internal/utils"
)

type MeHandler struct {
	auth *services.AuthService
}

func NewMeHandler(auth *services.AuthService) *MeHandler {
	return &MeHandler{auth: auth}
}

// GetMe reads the current record from the store, so is_admin here can
// differ from the snapshot inside a still-valid token.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"is_admin":   user.IsAdmin,
		"created_at": user.CreatedAt,
	})
}
