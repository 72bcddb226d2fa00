package models

import "time"

// User is the persisted credential record. PasswordHash holds the bcrypt
// digest, never the plaintext.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Deleting a user takes its dishes with it.
	Dishes []Dish `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
