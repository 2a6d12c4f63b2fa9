package model

import "time"

const (
	// StatusPending is part of the domain vocabulary but the workflow never
	// produces it today.
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Booking references its room by id only; the room may have been delisted or
// deleted since. CheckOut is exclusive: a checkout and a same-day check-in do
// not overlap.
type Booking struct {
	BookingID  string    `json:"booking_id" validate:"required"`
	GuestName  string    `json:"guest_name" validate:"required,min=1,max=100"`
	RoomID     string    `json:"room_id" validate:"required"`
	CheckIn    time.Time `json:"check_in" validate:"required"`
	CheckOut   time.Time `json:"check_out" validate:"required"`
	Guests     int       `json:"guests" validate:"required,min=1"`
	TotalPrice float64   `json:"total_price" validate:"gte=0"`
	Status     string    `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED"`
}

// Nights returns the stay length in whole days.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}
