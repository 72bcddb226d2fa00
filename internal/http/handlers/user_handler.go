package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/diebraga/daily-diet-api/internal/services"
	"github.com/diebraga/daily-diet-api/internal/utils"
)

type UserHandler struct {
	auth *services.AuthService
}

type SignUpRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

func NewUserHandler(auth *services.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// SignUp creates a new user. Only admins may call it; the check reads
// the admin flag off the claims the gate attached, so it is as fresh as
// the caller's token.
func (h *UserHandler) SignUp(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, err := h.auth.SignUp(c.Request.Context(), req.Username, req.Password, req.IsAdmin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{
		"message":  "user created",
		"username": user.Username,
	})
}
