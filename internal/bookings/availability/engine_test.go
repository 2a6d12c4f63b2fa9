package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelbooker/pkg/model"
)

type mockRoomSource struct {
	byIDFunc func(ctx context.Context, id string) (*model.Room, error)
}

func (m *mockRoomSource) ByID(ctx context.Context, id string) (*model.Room, error) {
	if m.byIDFunc != nil {
		return m.byIDFunc(ctx, id)
	}
	return nil, errors.New("no room")
}

type mockBookingSource struct {
	bookings []*model.Booking
}

func (m *mockBookingSource) All(ctx context.Context) []*model.Booking {
	return m.bookings
}

func date(day int) time.Time {
	return time.Date(2030, time.January, day, 0, 0, 0, 0, time.UTC)
}

func confirmed(id string, roomID string, inDay, outDay int) *model.Booking {
	return &model.Booking{
		BookingID: id,
		RoomID:    roomID,
		CheckIn:   date(inDay),
		CheckOut:  date(outDay),
		Status:    model.StatusConfirmed,
	}
}

func twoUnitRoom() *mockRoomSource {
	return &mockRoomSource{
		byIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return &model.Room{ID: "R1", Units: 2, Available: true}, nil
		},
	}
}

func TestRemainingUnits_OverlapCounting(t *testing.T) {
	// units = 2, bookings on [Jan 10, Jan 15) and [Jan 12, Jan 20).
	bookings := &mockBookingSource{bookings: []*model.Booking{
		confirmed("B1", "R1", 10, 15),
		confirmed("B2", "R1", 12, 20),
	}}
	engine := NewEngine(twoUnitRoom(), bookings)

	tests := []struct {
		name     string
		start    int
		end      int
		expected int
	}{
		{"both bookings overlap", 13, 14, 0},
		{"one booking overlaps", 16, 19, 1},
		{"no bookings overlap", 1, 5, 2},
		{"checkout day does not collide", 20, 25, 2},
		{"same-day turnover on first booking", 15, 16, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.RemainingUnits(context.Background(), "R1", date(tt.start), date(tt.end), "")
			if got != tt.expected {
				t.Errorf("RemainingUnits(Jan %d, Jan %d) = %d, want %d", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}

func TestRemainingUnits_NeverNegative(t *testing.T) {
	bookings := &mockBookingSource{bookings: []*model.Booking{
		confirmed("B1", "R1", 10, 15),
		confirmed("B2", "R1", 10, 15),
		confirmed("B3", "R1", 10, 15),
	}}
	engine := NewEngine(twoUnitRoom(), bookings)

	got := engine.RemainingUnits(context.Background(), "R1", date(10), date(15), "")
	if got != 0 {
		t.Errorf("expected 0 when demand exceeds units, got %d", got)
	}
}

func TestRemainingUnits_IgnoresCancelledAndOtherRooms(t *testing.T) {
	cancelled := confirmed("B1", "R1", 10, 15)
	cancelled.Status = model.StatusCancelled
	bookings := &mockBookingSource{bookings: []*model.Booking{
		cancelled,
		confirmed("B2", "R2", 10, 15),
	}}
	engine := NewEngine(twoUnitRoom(), bookings)

	got := engine.RemainingUnits(context.Background(), "R1", date(10), date(15), "")
	if got != 2 {
		t.Errorf("expected 2 free units, got %d", got)
	}
}

func TestRemainingUnits_MissingRoomDefaultsToOneUnit(t *testing.T) {
	rooms := &mockRoomSource{
		byIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return nil, errors.New("room not found")
		},
	}
	bookings := &mockBookingSource{bookings: []*model.Booking{
		confirmed("B1", "RX", 10, 15),
	}}
	engine := NewEngine(rooms, bookings)

	if got := engine.RemainingUnits(context.Background(), "RX", date(10), date(15), ""); got != 0 {
		t.Errorf("expected 0 (1 unit, 1 overlap), got %d", got)
	}
	if got := engine.RemainingUnits(context.Background(), "RX", date(20), date(25), ""); got != 1 {
		t.Errorf("expected 1 (1 unit, no overlap), got %d", got)
	}
}

func TestIsAvailable_ExcludeBookingID(t *testing.T) {
	// A single-unit room occupied by B1 is still "available" for B1's own
	// reschedule onto overlapping dates.
	rooms := &mockRoomSource{
		byIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return &model.Room{ID: "R1", Units: 1, Available: true}, nil
		},
	}
	bookings := &mockBookingSource{bookings: []*model.Booking{
		confirmed("B1", "R1", 10, 15),
	}}
	engine := NewEngine(rooms, bookings)

	if engine.IsAvailable(context.Background(), "R1", date(12), date(17), "") {
		t.Error("expected unavailable without exclusion")
	}
	if !engine.IsAvailable(context.Background(), "R1", date(12), date(17), "B1") {
		t.Error("expected available when excluding the booking being moved")
	}
	// Exclusion id matching is case-insensitive like the rest of the ids.
	if !engine.IsAvailable(context.Background(), "R1", date(12), date(17), "b1") {
		t.Error("expected exclusion to match case-insensitively")
	}
}

func TestRemainingUnits_ClampsStoredUnits(t *testing.T) {
	rooms := &mockRoomSource{
		byIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return &model.Room{ID: "R1", Units: 0, Available: true}, nil
		},
	}
	engine := NewEngine(rooms, &mockBookingSource{})

	if got := engine.RemainingUnits(context.Background(), "R1", date(1), date(2), ""); got != 1 {
		t.Errorf("expected stored units 0 to be treated as 1, got %d", got)
	}
}
