package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/diebraga/daily-diet-api/internal/models"
	"github.com/diebraga/daily-diet-api/internal/repo"
	"github.com/diebraga/daily-diet-api/internal/utils"
)

// DishStore is what the dish service needs from the store.
// *repo.DishRepo satisfies it.
type DishStore interface {
	Create(ctx context.Context, dish *models.Dish) (*models.Dish, error)
	GetByID(ctx context.Context, id int64) (*models.Dish, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, filters repo.DishFilters) ([]models.Dish, error)
	Update(ctx context.Context, dish *models.Dish) (*models.Dish, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type DishService struct {
	dishes DishStore
}

// DishUpdate carries a partial update; nil fields are left untouched.
type DishUpdate struct {
	Name        *string
	Description *string
	DateTime    *time.Time
	IsOnDiet    *bool
}

func NewDishService(dishes DishStore) *DishService {
	return &DishService{dishes: dishes}
}

// Create persists a dish owned by ownerID. The owner always comes from
// the caller's claim set, never from client input. A missing DateTime
// defaults to now in UTC.
func (s *DishService) Create(ctx context.Context, ownerID int64, dish *models.Dish) (*models.Dish, error) {
	dish.UserID = ownerID
	if dish.DateTime.IsZero() {
		dish.DateTime = time.Now().UTC()
	}

	exists, err := s.dishes.ExistsByName(ctx, dish.Name)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not check existing dishes", nil)
	}
	if exists {
		return nil, errDishNameTaken(http.StatusConflict)
	}

	created, err := s.dishes.Create(ctx, dish)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, errDishNameTaken(http.StatusConflict)
		}
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not create dish", nil)
	}
	return created, nil
}

func (s *DishService) Get(ctx context.Context, id int64) (*models.Dish, error) {
	dish, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errDishNotFound()
		}
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not look up dish", nil)
	}
	return dish, nil
}

// List returns all matching dishes; an empty result is a 404, matching
// the surface this API replaces.
func (s *DishService) List(ctx context.Context, filters repo.DishFilters) ([]models.Dish, error) {
	dishes, err := s.dishes.List(ctx, filters)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not list dishes", nil)
	}
	if len(dishes) == 0 {
		return nil, utils.NewAppError(http.StatusNotFound, "NOT_FOUND", "no dishes found", nil)
	}
	return dishes, nil
}

// Update applies a partial update. A rename onto an existing name is a
// conflict and leaves the stored row untouched. The observed surface
// reports this one as a 400.
func (s *DishService) Update(ctx context.Context, id int64, update DishUpdate) (*models.Dish, error) {
	dish, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != dish.Name {
		exists, err := s.dishes.ExistsByName(ctx, *update.Name)
		if err != nil {
			return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not check existing dishes", nil)
		}
		if exists {
			return nil, errDishNameTaken(http.StatusBadRequest)
		}
		dish.Name = *update.Name
	}
	if update.Description != nil {
		dish.Description = *update.Description
	}
	if update.DateTime != nil {
		dish.DateTime = update.DateTime.UTC()
	}
	if update.IsOnDiet != nil {
		dish.IsOnDiet = *update.IsOnDiet
	}

	updated, err := s.dishes.Update(ctx, dish)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, errDishNameTaken(http.StatusBadRequest)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errDishNotFound()
		}
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not update dish", nil)
	}
	return updated, nil
}

func (s *DishService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.dishes.Delete(ctx, id)
	if err != nil {
		return utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not delete dish", nil)
	}
	if !deleted {
		return errDishNotFound()
	}
	return nil
}

func errDishNotFound() *utils.AppError {
	return utils.NewAppError(http.StatusNotFound, "NOT_FOUND", "dish not found", nil)
}

func errDishNameTaken(status int) *utils.AppError {
	return utils.NewAppError(status, "CONFLICT", "dish name already exists", nil)
}
