package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	bookingserrors "hotelbooker/internal/bookings/errors"
	"hotelbooker/internal/bookings/repository"
	"hotelbooker/internal/bookings/validator"
	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/model"

	"github.com/google/uuid"
)

// RoomCatalog is the slice of the room catalog the workflow needs.
type RoomCatalog interface {
	ByID(ctx context.Context, id string) (*model.Room, error)
}

// PaymentLedger records payments alongside bookings. Create appends a new
// row; Reschedule only mutates the amount of the latest existing row.
type PaymentLedger interface {
	Append(ctx context.Context, payment *model.Payment) error
	UpdateLatestAmountForBooking(ctx context.Context, bookingID string, newAmount float64) error
}

// AvailabilityChecker answers whether a room still has a free unit for an
// interval, optionally ignoring one booking id.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) bool
}

// Pricer computes the stay total including any promo discount.
type Pricer interface {
	Total(ctx context.Context, room *model.Room, nights int, promoCode string) float64
}

type CreateRequest struct {
	GuestName     string
	RoomID        string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	PaymentMethod string
	PromoCode     string
}

type BookingService interface {
	Create(ctx context.Context, req CreateRequest) (*model.Booking, error)
	Reschedule(ctx context.Context, bookingID string, newCheckIn, newCheckOut time.Time, newGuests int) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID string) error
	GetByID(ctx context.Context, bookingID string) (*model.Booking, error)
	GetAll(ctx context.Context) []*model.Booking
	FindByGuest(ctx context.Context, guestName string) []*model.Booking
}

type bookingService struct {
	repo      repository.BookingRepository
	rooms     RoomCatalog
	payments  PaymentLedger
	avail     AvailabilityChecker
	pricer    Pricer
	validator *validator.BookingValidator
	cfg       *config.Config
	now       func() time.Time

	// Serializes the read-check-write cycle of every mutation so two
	// in-process callers cannot both pass the availability check and
	// overbook the last unit.
	mu sync.Mutex
}

func NewBookingService(
	repo repository.BookingRepository,
	rooms RoomCatalog,
	payments PaymentLedger,
	avail AvailabilityChecker,
	pricer Pricer,
	bookingValidator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		rooms:     rooms,
		payments:  payments,
		avail:     avail,
		pricer:    pricer,
		validator: bookingValidator,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Create reserves one unit of a room for [checkIn, checkOut). On success a
// CONFIRMED booking is appended, then its PAID payment. The two writes are
// ordered, not atomic: a crash in between leaves a booking without a payment.
func (s *bookingService) Create(ctx context.Context, req CreateRequest) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(req.GuestName) == "" {
		return nil, apperrors.InvalidInput("Guest name cannot be empty.")
	}

	room, err := s.rooms.ByID(ctx, req.RoomID)
	if err != nil || room == nil {
		return nil, apperrors.NotFoundWithID("Room", req.RoomID)
	}
	if !room.Available {
		return nil, apperrors.Validation("This room is currently unavailable.", map[string]any{"room_id": room.ID})
	}
	if err := s.validator.ValidateStay(req.CheckIn, req.CheckOut, s.today()); err != nil {
		return nil, s.asValidationError(err)
	}
	if err := s.validator.ValidateGuests(req.Guests, room.Capacity); err != nil {
		return nil, s.asValidationError(err)
	}
	if !s.avail.IsAvailable(ctx, room.ID, req.CheckIn, req.CheckOut, "") {
		return nil, apperrors.NoCapacity("Room is already booked for the selected dates.")
	}

	nights := int(req.CheckOut.Sub(req.CheckIn).Hours() / 24)
	if nights <= 0 {
		return nil, apperrors.Validation("Invalid stay length.", nil)
	}
	total := s.pricer.Total(ctx, room, nights, req.PromoCode)

	booking := &model.Booking{
		BookingID:  newID("B"),
		GuestName:  strings.TrimSpace(req.GuestName),
		RoomID:     room.ID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
		TotalPrice: total,
		Status:     model.StatusConfirmed,
	}
	if err := s.validator.Validate(booking); err != nil {
		return nil, s.asValidationError(err)
	}
	if err := s.repo.Append(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to record booking", "error", err)
		return nil, apperrors.Internal("Failed to record booking", err)
	}

	payment := &model.Payment{
		PaymentID: newID("P"),
		BookingID: booking.BookingID,
		Amount:    total,
		Method:    req.PaymentMethod,
		Status:    model.PaymentStatusPaid,
		PaidAt:    s.now(),
	}
	if err := s.payments.Append(ctx, payment); err != nil {
		// The booking is already on disk; this is the documented crash
		// window between the two writes.
		s.cfg.Log.Error("Booking recorded but payment write failed",
			"booking_id", booking.BookingID, "error", err)
		return nil, apperrors.Internal("Failed to record payment", err)
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", booking.BookingID,
		"room_id", room.ID,
		"check_in", req.CheckIn.Format("2006-01-02"),
		"check_out", req.CheckOut.Format("2006-01-02"),
		"total", total,
	)
	return booking, nil
}

// Reschedule moves a CONFIRMED booking to new dates and guest count. The
// availability check excludes the booking itself so it does not block its own
// move. The recomputed price overwrites the amount of the latest payment row;
// no new payment is created and promo discounts do not re-apply.
func (s *bookingService) Reschedule(ctx context.Context, bookingID string, newCheckIn, newCheckOut time.Time, newGuests int) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Booking", bookingID)
	}
	if !booking.IsConfirmed() {
		return nil, apperrors.Conflict("Only CONFIRMED bookings can be rescheduled.")
	}
	if err := s.validator.ValidateStay(newCheckIn, newCheckOut, s.today()); err != nil {
		return nil, s.asValidationError(err)
	}

	room, err := s.rooms.ByID(ctx, booking.RoomID)
	if err != nil || room == nil {
		return nil, apperrors.NotFoundWithID("Room", booking.RoomID)
	}
	if !room.Available {
		return nil, apperrors.Validation("This room is currently unavailable.", map[string]any{"room_id": room.ID})
	}
	if err := s.validator.ValidateGuests(newGuests, room.Capacity); err != nil {
		return nil, s.asValidationError(err)
	}
	if !s.avail.IsAvailable(ctx, room.ID, newCheckIn, newCheckOut, booking.BookingID) {
		return nil, apperrors.NoCapacity("Room is already booked for the selected dates.")
	}

	nights := int(newCheckOut.Sub(newCheckIn).Hours() / 24)
	if nights <= 0 {
		return nil, apperrors.Validation("Invalid stay length.", nil)
	}
	total := room.PricePerNight * float64(nights)

	booking.CheckIn = newCheckIn
	booking.CheckOut = newCheckOut
	booking.Guests = newGuests
	booking.TotalPrice = total

	if err := s.validator.Validate(booking); err != nil {
		return nil, s.asValidationError(err)
	}
	if err := s.repo.Upsert(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to update booking", "booking_id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}
	if err := s.payments.UpdateLatestAmountForBooking(ctx, booking.BookingID, total); err != nil {
		s.cfg.Log.Error("Booking updated but payment amount update failed",
			"booking_id", booking.BookingID, "error", err)
		return nil, apperrors.Internal("Failed to update payment amount", err)
	}

	s.cfg.Log.Info("Booking rescheduled",
		"booking_id", booking.BookingID,
		"check_in", newCheckIn.Format("2006-01-02"),
		"check_out", newCheckOut.Format("2006-01-02"),
		"total", total,
	)
	return booking, nil
}

// Cancel is the one-way CONFIRMED -> CANCELLED transition. Payments are left
// untouched (no refund modeling); freed capacity follows from the
// availability engine no longer counting the booking.
func (s *bookingService) Cancel(ctx context.Context, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return apperrors.NotFoundWithID("Booking", bookingID)
	}
	if !booking.IsConfirmed() {
		return apperrors.Conflict(
			fmt.Sprintf("Only CONFIRMED bookings can be cancelled; this one is %s.", booking.Status))
	}

	booking.Status = model.StatusCancelled
	if err := s.repo.Upsert(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to cancel booking", "booking_id", bookingID, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled", "booking_id", booking.BookingID)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, bookingID string) (*model.Booking, error) {
	booking, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		if err == bookingserrors.ErrNotFound {
			return nil, apperrors.NotFoundWithID("Booking", bookingID)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context) []*model.Booking {
	return s.repo.All(ctx)
}

func (s *bookingService) FindByGuest(ctx context.Context, guestName string) []*model.Booking {
	return s.repo.ByGuestName(ctx, guestName)
}

// --- Helpers ---

func (s *bookingService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *bookingService) asValidationError(err error) error {
	s.cfg.Log.Warn("Booking validation failed", "error", err)
	if vErrs, ok := err.(validator.ValidationErrors); ok && len(vErrs) > 0 {
		return apperrors.Validation(vErrs[0].Message, map[string]any{"field": vErrs[0].Field})
	}
	return apperrors.Validation(err.Error(), nil)
}

func newID(prefix string) string {
	return prefix + strings.ToUpper(uuid.NewString()[:8])
}
