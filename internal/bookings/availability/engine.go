package availability

import (
	"context"
	"strings"
	"time"

	"hotelbooker/pkg/model"
)

// RoomSource resolves a room listing; missing rooms are tolerated (the
// engine falls back to a single unit).
type RoomSource interface {
	ByID(ctx context.Context, id string) (*model.Room, error)
}

// BookingSource yields the booking ledger snapshot the engine counts against.
type BookingSource interface {
	All(ctx context.Context) []*model.Booking
}

// Engine answers "how many units of this room are still free for these
// dates". It is a pure read over the room catalog and booking ledger and is
// usable standalone for calendar and inventory displays.
type Engine struct {
	rooms    RoomSource
	bookings BookingSource
}

func NewEngine(rooms RoomSource, bookings BookingSource) *Engine {
	return &Engine{rooms: rooms, bookings: bookings}
}

// RemainingUnits counts CONFIRMED bookings for the room whose half-open
// interval [checkIn, checkOut) overlaps [start, end) and subtracts them from
// the room's unit count. excludeBookingID lets a reschedule test its new
// dates without counting the booking being moved; pass "" otherwise.
func (e *Engine) RemainingUnits(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) int {
	units := e.unitsFor(ctx, roomID)

	overlapping := 0
	for _, b := range e.bookings.All(ctx) {
		if e.counts(b, roomID, start, end, excludeBookingID) {
			overlapping++
		}
	}

	remaining := units - overlapping
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsAvailable is the boolean form of RemainingUnits. It stops counting as
// soon as demand reaches the unit count.
func (e *Engine) IsAvailable(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) bool {
	units := e.unitsFor(ctx, roomID)

	overlapping := 0
	for _, b := range e.bookings.All(ctx) {
		if e.counts(b, roomID, start, end, excludeBookingID) {
			overlapping++
			if overlapping >= units {
				return false
			}
		}
	}
	return true
}

func (e *Engine) counts(b *model.Booking, roomID string, start, end time.Time, excludeBookingID string) bool {
	if excludeBookingID != "" && strings.EqualFold(b.BookingID, excludeBookingID) {
		return false
	}
	if !strings.EqualFold(b.RoomID, roomID) {
		return false
	}
	if !strings.EqualFold(b.Status, model.StatusConfirmed) {
		return false
	}
	return overlaps(start, end, b.CheckIn, b.CheckOut)
}

// unitsFor defaults to 1 when the room is unknown; bookings against deleted
// rooms still occupy something.
func (e *Engine) unitsFor(ctx context.Context, roomID string) int {
	room, err := e.rooms.ByID(ctx, roomID)
	if err != nil || room == nil {
		return 1
	}
	if room.Units < 1 {
		return 1
	}
	return room.Units
}

// overlaps applies the half-open rule: [start1, end1) and [start2, end2)
// intersect iff start1 < end2 && end1 > start2. A checkout and a same-day
// check-in therefore do not collide.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}
