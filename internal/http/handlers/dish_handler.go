package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/diebraga/daily-diet-api/internal/http/middleware"
	"github.com/diebraga/daily-diet-api/internal/models"
	"github.com/diebraga/daily-diet-api/internal/repo"
	"github.com/diebraga/daily-diet-api/internal/services"
	"github.com/diebraga/daily-diet-api/internal/utils"
)

type DishHandler struct {
	dishes *services.DishService
}

type DishCreateRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"required,max=200"`
	IsOnDiet    *bool  `json:"is_on_diet" binding:"required"`
	DateTime    string `json:"date_time"`
}

type DishUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
	IsOnDiet    *bool   `json:"is_on_diet"`
	DateTime    *string `json:"date_time"`
}

func NewDishHandler(dishes *services.DishService) *DishHandler {
	return &DishHandler{dishes: dishes}
}

// Create stamps the owner from the caller's claims; a user_id in the
// request body is ignored.
func (h *DishHandler) Create(c *gin.Context) {
	var req DishCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	dish := &models.Dish{
		Name:        req.Name,
		Description: req.Description,
		IsOnDiet:    *req.IsOnDiet,
	}
	if req.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.DateTime)
		if err != nil {
			utils.RespondValidationError(c, "date_time must be RFC3339")
			return
		}
		dish.DateTime = parsed.UTC()
	}

	ownerID := c.GetInt64(middleware.CtxUserID)
	created, err := h.dishes.Create(c.Request.Context(), ownerID, dish)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{
		"message": "dish created",
		"dish_id": created.ID,
		"user_id": created.UserID,
		"name":    created.Name,
	})
}

func (h *DishHandler) GetByID(c *gin.Context) {
	id, ok := dishID(c)
	if !ok {
		return
	}

	dish, err := h.dishes.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dish)
}

func (h *DishHandler) List(c *gin.Context) {
	filters := repo.DishFilters{
		Search:  c.Query("search"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.Query("sort_dir"),
	}
	if onDietStr := c.Query("is_on_diet"); onDietStr != "" {
		onDiet, err := strconv.ParseBool(onDietStr)
		if err != nil {
			utils.RespondValidationError(c, "is_on_diet must be a boolean")
			return
		}
		filters.IsOnDiet = &onDiet
	}

	dishes, err := h.dishes.List(c.Request.Context(), filters)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dishes)
}

func (h *DishHandler) Update(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	id, ok := dishID(c)
	if !ok {
		return
	}

	var req DishUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	update := services.DishUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsOnDiet:    req.IsOnDiet,
	}
	if req.DateTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.DateTime)
		if err != nil {
			utils.RespondValidationError(c, "date_time must be RFC3339")
			return
		}
		update.DateTime = &parsed
	}

	dish, err := h.dishes.Update(c.Request.Context(), id, update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dish)
}

func (h *DishHandler) Delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	id, ok := dishID(c)
	if !ok {
		return
	}

	if err := h.dishes.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "dish deleted",
		"dish_id": id,
	})
}

func dishID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "id must be an integer")
		return 0, false
	}
	return id, true
}

// requireAdmin enforces the role off the claims already attached by the
// gate. The flag is a snapshot from issuance time, so it can lag the
// store by up to the token lifetime.
func requireAdmin(c *gin.Context) bool {
	if !c.GetBool(middleware.CtxIsAdmin) {
		utils.RespondError(c, utils.NewAppError(http.StatusForbidden, "FORBIDDEN", "admin privileges required", nil))
		c.Abort()
		return false
	}
	return true
}
