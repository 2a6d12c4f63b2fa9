package analytics

import (
	"context"
	"strings"
	"time"

	"hotelbooker/pkg/model"
)

// RoomSource, BookingSource, PaymentSource and UserSource are the read-only
// slices of the data layer the reports need.
type RoomSource interface {
	All(ctx context.Context) []*model.Room
}

type BookingSource interface {
	GetAll(ctx context.Context) []*model.Booking
}

type PaymentSource interface {
	All(ctx context.Context) []*model.Payment
}

type UserSource interface {
	All(ctx context.Context) []*model.User
}

// Service computes lightweight reports straight from the collections; nothing
// is cached, every call re-reads.
type Service struct {
	rooms    RoomSource
	bookings BookingSource
	payments PaymentSource
	users    UserSource
	now      func() time.Time
}

func NewService(rooms RoomSource, bookings BookingSource, payments PaymentSource, users UserSource) *Service {
	return &Service{
		rooms:    rooms,
		bookings: bookings,
		payments: payments,
		users:    users,
		now:      time.Now,
	}
}

// TotalRevenue sums every PAID payment row, cancelled bookings included:
// cancellation does not refund.
func (s *Service) TotalRevenue(ctx context.Context) float64 {
	sum := 0.0
	for _, p := range s.payments.All(ctx) {
		if strings.EqualFold(p.Status, model.PaymentStatusPaid) {
			sum += p.Amount
		}
	}
	return sum
}

func (s *Service) TotalBookings(ctx context.Context) int {
	return len(s.bookings.GetAll(ctx))
}

func (s *Service) ActiveGuests(ctx context.Context) int {
	return len(s.users.All(ctx))
}

// HotelsCount counts distinct hotel names across the catalog.
func (s *Service) HotelsCount(ctx context.Context) int {
	hotels := map[string]bool{}
	for _, r := range s.rooms.All(ctx) {
		name := strings.TrimSpace(r.HotelName)
		if name != "" {
			hotels[strings.ToLower(name)] = true
		}
	}
	return len(hotels)
}

// BookingsByStatus counts bookings per status, uppercased. CONFIRMED and
// CANCELLED always appear, even at zero.
func (s *Service) BookingsByStatus(ctx context.Context) map[string]int {
	out := map[string]int{
		model.StatusConfirmed: 0,
		model.StatusCancelled: 0,
	}
	for _, b := range s.bookings.GetAll(ctx) {
		out[strings.ToUpper(b.Status)]++
	}
	return out
}

// MonthRevenue is one month's PAID revenue; Month is formatted "2006-01".
type MonthRevenue struct {
	Month   string
	Revenue float64
}

// RevenueByMonth returns PAID revenue for the last monthsBack months,
// oldest first, the current month included. Months with no payments report
// zero.
func (s *Service) RevenueByMonth(ctx context.Context, monthsBack int) []MonthRevenue {
	if monthsBack <= 0 {
		return nil
	}
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	index := make(map[string]int, monthsBack)
	out := make([]MonthRevenue, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		month := first.AddDate(0, -i, 0).Format("2006-01")
		index[month] = len(out)
		out = append(out, MonthRevenue{Month: month})
	}

	for _, p := range s.payments.All(ctx) {
		if !strings.EqualFold(p.Status, model.PaymentStatusPaid) || p.PaidAt.IsZero() {
			continue
		}
		if i, ok := index[p.PaidAt.Format("2006-01")]; ok {
			out[i].Revenue += p.Amount
		}
	}
	return out
}

// OccupancyRate is the share of rooms with a CONFIRMED stay covering today.
func (s *Service) OccupancyRate(ctx context.Context) float64 {
	rooms := s.rooms.All(ctx)
	if len(rooms) == 0 {
		return 0
	}
	occupied := s.occupiedRoomIDs(ctx)
	count := 0
	for _, r := range rooms {
		if occupied[strings.ToUpper(r.ID)] {
			count++
		}
	}
	return float64(count) / float64(len(rooms))
}

// OccupancyByHotel counts currently occupied rooms per hotel; every hotel in
// the catalog appears, even at zero.
func (s *Service) OccupancyByHotel(ctx context.Context) map[string]int {
	occupied := s.occupiedRoomIDs(ctx)
	out := map[string]int{}
	for _, r := range s.rooms.All(ctx) {
		name := strings.TrimSpace(r.HotelName)
		if _, ok := out[name]; !ok {
			out[name] = 0
		}
		if occupied[strings.ToUpper(r.ID)] {
			out[name]++
		}
	}
	return out
}

// occupiedRoomIDs resolves which rooms hold a CONFIRMED booking whose
// half-open stay covers today.
func (s *Service) occupiedRoomIDs(ctx context.Context) map[string]bool {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := map[string]bool{}
	for _, b := range s.bookings.GetAll(ctx) {
		if !strings.EqualFold(b.Status, model.StatusConfirmed) {
			continue
		}
		if !today.Before(b.CheckIn) && today.Before(b.CheckOut) {
			out[strings.ToUpper(b.RoomID)] = true
		}
	}
	return out
}
