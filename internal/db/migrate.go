package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/diebraga/daily-diet-api/internal/models"
)

// Migrate creates the users and dishes tables if they do not exist yet.
// The gorm handle is only used for this bootstrap step; all request-path
// SQL goes through the pgx pool.
func Migrate(ctx context.Context, databaseURL string) error {
	gormDB, err := openGorm(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer closeGorm(gormDB)

	if err := gormDB.WithContext(ctx).AutoMigrate(&models.User{}, &models.Dish{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// DropAll removes both tables. Used by the dbreset tool, never by the
// server.
func DropAll(ctx context.Context, databaseURL string) error {
	gormDB, err := openGorm(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer closeGorm(gormDB)

	if err := gormDB.WithContext(ctx).Migrator().DropTable(&models.Dish{}, &models.User{}); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return nil
}

func openGorm(ctx context.Context, databaseURL string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open gorm db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get gorm sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(2)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctxPing); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping gorm db: %w", err)
	}

	return gormDB, nil
}

func closeGorm(gormDB *gorm.DB) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
