package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diebraga/daily-diet-api/internal/models"
)

type DishRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// DishFilters narrows and orders the dish listing. Zero values mean "no
// filter".
type DishFilters struct {
	Search   string
	IsOnDiet *bool
	SortBy   string
	SortDir  string
}

func NewDishRepo(pool *pgxpool.Pool, timeout time.Duration) *DishRepo {
	return &DishRepo{pool: pool, timeout: timeout}
}

func (r *DishRepo) Create(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO dishes (name, description, date_time, is_on_diet, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`,
		dish.Name,
		dish.Description,
		dish.DateTime,
		dish.IsOnDiet,
		dish.UserID,
	)

	if err := row.Scan(&dish.ID, &dish.CreatedAt, &dish.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert dish: %w", err)
	}
	return dish, nil
}

func (r *DishRepo) GetByID(ctx context.Context, id int64) (*models.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, date_time, is_on_diet, user_id, created_at, updated_at
		FROM dishes
		WHERE id = $1
	`, id)

	return scanDish(row)
}

func (r *DishRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM dishes WHERE name = $1)", name)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check dish name exists: %w", err)
	}
	return exists, nil
}

func (r *DishRepo) List(ctx context.Context, filters DishFilters) ([]models.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	whereSQL, args := buildDishFilters(filters)
	sortColumn := mapDishSortColumn(filters.SortBy)
	sortDir := "ASC"
	if strings.ToLower(filters.SortDir) == "desc" {
		sortDir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, date_time, is_on_diet, user_id, created_at, updated_at
		FROM dishes
		%s
		ORDER BY %s %s
	`, whereSQL, sortColumn, sortDir)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	defer rows.Close()

	var results []models.Dish
	for rows.Next() {
		var dish models.Dish
		if err := rows.Scan(
			&dish.ID,
			&dish.Name,
			&dish.Description,
			&dish.DateTime,
			&dish.IsOnDiet,
			&dish.UserID,
			&dish.CreatedAt,
			&dish.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		results = append(results, dish)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dishes: %w", err)
	}

	return results, nil
}

func (r *DishRepo) Update(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		UPDATE dishes
		SET name = $1, description = $2, date_time = $3, is_on_diet = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`,
		dish.Name,
		dish.Description,
		dish.DateTime,
		dish.IsOnDiet,
		dish.ID,
	)

	if err := row.Scan(&dish.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update dish: %w", err)
	}
	return dish, nil
}

func (r *DishRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd, err := r.pool.Exec(ctx, "DELETE FROM dishes WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete dish: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func buildDishFilters(filters DishFilters) (string, []any) {
	clauses := []string{"WHERE 1=1"}
	args := []any{}
	index := 1

	if filters.Search != "" {
		clauses = append(clauses, fmt.Sprintf("AND (name ILIKE $%d OR description ILIKE $%d)", index, index))
		args = append(args, "%"+filters.Search+"%")
		index++
	}

	if filters.IsOnDiet != nil {
		clauses = append(clauses, fmt.Sprintf("AND is_on_diet = $%d", index))
		args = append(args, *filters.IsOnDiet)
		index++
	}

	return strings.Join(clauses, "\n"), args
}

func mapDishSortColumn(sortBy string) string {
	switch strings.ToLower(sortBy) {
	case "name":
		return "name"
	case "date":
		return "date_time"
	case "id":
		return "id"
	default:
		return "id"
	}
}

func scanDish(row pgx.Row) (*models.Dish, error) {
	var dish models.Dish
	err := row.Scan(
		&dish.ID,
		&dish.Name,
		&dish.Description,
		&dish.DateTime,
		&dish.IsOnDiet,
		&dish.UserID,
		&dish.CreatedAt,
		&dish.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan dish: %w", err)
	}
	return &dish, nil
}
