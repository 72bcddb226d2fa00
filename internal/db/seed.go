package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const (
	bootstrapUsername = "admin"
	bootstrapPassword = "admin123"
)

// EnsureAdminUser inserts the bootstrap admin account if it does not
// exist. Without it a fresh database has no admin to sign further users
// up with.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration) error {
	exists, err := userExists(ctx, pool, timeout, bootstrapUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	ctxInsert, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	_, err = pool.Exec(ctxInsert, `
		INSERT INTO users (username, password, is_admin)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (username) DO NOTHING
	`, bootstrapUsername, string(hash))
	if err != nil {
		return fmt.Errorf("insert bootstrap admin: %w", err)
	}
	return nil
}

func userExists(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration, username string) (bool, error) {
	ctxCheck, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	row := pool.QueryRow(ctxCheck, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}
