package models

import "time"

type Dish struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"size:200;not null"`
	DateTime    time.Time `json:"date_time" gorm:"not null"`
	IsOnDiet    bool      `json:"is_on_diet" gorm:"not null"`
	UserID      int64     `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
