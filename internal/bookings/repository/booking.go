package repository

import (
	"context"
	"strings"

	bookingserrors "hotelbooker/internal/bookings/errors"
	"hotelbooker/internal/store"
	"hotelbooker/pkg/config"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

type BookingRepository interface {
	All(ctx context.Context) []*model.Booking
	ByID(ctx context.Context, id string) (*model.Booking, error)
	ByGuestName(ctx context.Context, name string) []*model.Booking
	Append(ctx context.Context, booking *model.Booking) error
	Upsert(ctx context.Context, booking *model.Booking) error
}

type fileBookingRepository struct {
	store *store.Store
	log   *logger.Logger
}

func NewFileBookingRepository(cfg *config.Config) BookingRepository {
	return &fileBookingRepository{
		store: store.New(cfg.BookingsFile(), nil, cfg.Log),
		log:   cfg.Log,
	}
}

func NewFileBookingRepositoryWithStore(s *store.Store, log *logger.Logger) BookingRepository {
	return &fileBookingRepository{store: s, log: log}
}

func (r *fileBookingRepository) All(ctx context.Context) []*model.Booking {
	return DecodeAll(r.store.LoadAll(), r.log)
}

func (r *fileBookingRepository) ByID(ctx context.Context, id string) (*model.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, bookingserrors.ErrNotFound
	}
	for _, b := range r.All(ctx) {
		if strings.EqualFold(b.BookingID, id) {
			return b, nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

// ByGuestName matches by substring, case-insensitive. The guest name is free
// text on the booking, not an account reference.
func (r *fileBookingRepository) ByGuestName(ctx context.Context, name string) []*model.Booking {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return nil
	}
	var out []*model.Booking
	for _, b := range r.All(ctx) {
		if strings.Contains(strings.ToLower(b.GuestName), q) {
			out = append(out, b)
		}
	}
	return out
}

func (r *fileBookingRepository) Append(ctx context.Context, booking *model.Booking) error {
	return r.store.Append(EncodeLine(booking))
}

// Upsert replaces the booking with the same id or appends, rewriting the
// whole collection.
func (r *fileBookingRepository) Upsert(ctx context.Context, booking *model.Booking) error {
	return r.store.Update(func(lines []string) []string {
		existing := DecodeAll(lines, r.log)
		replaced := false
		out := make([]string, 0, len(existing)+1)
		for _, b := range existing {
			if strings.EqualFold(b.BookingID, booking.BookingID) {
				out = append(out, EncodeLine(booking))
				replaced = true
				continue
			}
			out = append(out, EncodeLine(b))
		}
		if !replaced {
			out = append(out, EncodeLine(booking))
		}
		return out
	})
}
