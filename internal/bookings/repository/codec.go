package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
	"hotelbooker/pkg/sanitizer"
)

// Line shape: bookingId|guestName|roomId|checkIn|checkOut|guests|totalPrice|status
const dateLayout = "2006-01-02"

func DecodeLine(line string) (*model.Booking, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 8 {
		return nil, fmt.Errorf("booking line has %d fields, need 8", len(parts))
	}

	checkIn, err := time.Parse(dateLayout, strings.TrimSpace(parts[3]))
	if err != nil {
		return nil, fmt.Errorf("bad check-in date %q: %w", parts[3], err)
	}
	checkOut, err := time.Parse(dateLayout, strings.TrimSpace(parts[4]))
	if err != nil {
		return nil, fmt.Errorf("bad check-out date %q: %w", parts[4], err)
	}
	guests, err := strconv.Atoi(strings.TrimSpace(parts[5]))
	if err != nil {
		return nil, fmt.Errorf("bad guest count %q: %w", parts[5], err)
	}
	totalPrice, err := strconv.ParseFloat(strings.TrimSpace(parts[6]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad total price %q: %w", parts[6], err)
	}

	return &model.Booking{
		BookingID:  strings.TrimSpace(parts[0]),
		GuestName:  strings.TrimSpace(parts[1]),
		RoomID:     strings.TrimSpace(parts[2]),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     guests,
		TotalPrice: totalPrice,
		Status:     strings.TrimSpace(parts[7]),
	}, nil
}

func DecodeAll(lines []string, log *logger.Logger) []*model.Booking {
	var out []*model.Booking
	for _, line := range lines {
		if !store.IsRecord(line) {
			continue
		}
		b, err := DecodeLine(strings.TrimSpace(line))
		if err != nil {
			log.Warn("Dropping unparsable booking line", "line", line, "error", err)
			continue
		}
		out = append(out, b)
	}
	return out
}

func EncodeLine(b *model.Booking) string {
	return strings.Join([]string{
		b.BookingID,
		sanitizer.Field(b.GuestName),
		b.RoomID,
		b.CheckIn.Format(dateLayout),
		b.CheckOut.Format(dateLayout),
		strconv.Itoa(b.Guests),
		strconv.FormatFloat(b.TotalPrice, 'f', -1, 64),
		b.Status,
	}, "|")
}
