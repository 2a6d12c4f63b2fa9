package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	bookingserrors "hotelbooker/internal/bookings/errors"
	"hotelbooker/internal/store"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

func newTestRepo(t *testing.T) BookingRepository {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "bookings.txt"), nil, logger.Discard())
	return NewFileBookingRepositoryWithStore(s, logger.Discard())
}

func testBooking(id, guest string) *model.Booking {
	return &model.Booking{
		BookingID:  id,
		GuestName:  guest,
		RoomID:     "R1",
		CheckIn:    time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2030, 1, 12, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalPrice: 400,
		Status:     model.StatusConfirmed,
	}
}

func TestByID_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	if err := repo.Append(ctx, testBooking("B1A2B3C4", "Dana")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := repo.ByID(ctx, "b1a2b3c4")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if got.GuestName != "Dana" {
		t.Errorf("expected Dana, got %s", got.GuestName)
	}

	if _, err := repo.ByID(ctx, "missing"); err != bookingserrors.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.ByID(ctx, " "); err != bookingserrors.ErrNotFound {
		t.Errorf("expected ErrNotFound for blank id, got %v", err)
	}
}

func TestByGuestName_SubstringMatch(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	for _, b := range []*model.Booking{
		testBooking("B1", "Dana Cohen"),
		testBooking("B2", "Dan Levi"),
		testBooking("B3", "Omer"),
	} {
		if err := repo.Append(ctx, b); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got := repo.ByGuestName(ctx, "dan")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for 'dan', got %d", len(got))
	}
	if got := repo.ByGuestName(ctx, "  "); got != nil {
		t.Errorf("expected no matches for blank query, got %v", got)
	}
}

func TestAppend_GuestNameWithDelimiter(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	if err := repo.Append(ctx, testBooking("B1", "Smith | Jones")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	all := repo.All(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 booking after reload, got %d", len(all))
	}
	if all[0].GuestName != "Smith Jones" {
		t.Errorf("expected delimiter stripped from name, got %q", all[0].GuestName)
	}
	if all[0].Status != model.StatusConfirmed {
		t.Errorf("expected status to survive reload, got %q", all[0].Status)
	}
}

func TestUpsert_ReplacesOrAppends(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	if err := repo.Append(ctx, testBooking("B1", "Dana")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	update := testBooking("B1", "Dana")
	update.Status = model.StatusCancelled
	if err := repo.Upsert(ctx, update); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(ctx, testBooking("B2", "Noam")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	all := repo.All(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(all))
	}
	if all[0].Status != model.StatusCancelled {
		t.Errorf("expected B1 to be cancelled, got %s", all[0].Status)
	}
	if all[1].BookingID != "B2" {
		t.Errorf("expected B2 appended, got %s", all[1].BookingID)
	}
}
