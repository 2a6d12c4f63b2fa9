package model

import "time"

type Review struct {
	RoomID    string    `json:"room_id" validate:"required"`
	UserEmail string    `json:"user_email" validate:"required,email"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment" validate:"max=500"`
	Date      time.Time `json:"date"`
}
