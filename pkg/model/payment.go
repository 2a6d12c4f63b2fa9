package model

import "time"

const PaymentStatusPaid = "PAID"

// Payment rows accumulate per booking; "the latest payment for a booking" is
// the row with the greatest PaidAt timestamp.
type Payment struct {
	PaymentID string    `json:"payment_id" validate:"required"`
	BookingID string    `json:"booking_id" validate:"required"`
	Amount    float64   `json:"amount" validate:"gte=0"`
	Method    string    `json:"method" validate:"required"`
	Status    string    `json:"status" validate:"required"`
	PaidAt    time.Time `json:"paid_at" validate:"required"`
}
