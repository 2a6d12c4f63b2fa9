package model

import "time"

type User struct {
	UserID       string    `json:"user_id" validate:"required"`
	FullName     string    `json:"full_name" validate:"required,min=1,max=100"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
