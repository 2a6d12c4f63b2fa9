package receipts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

const dateLayout = "2006-01-02"

// AmountFormatter renders a stored USD amount in the display currency.
type AmountFormatter interface {
	FormatAmount(amountUSD float64) string
}

// Generator writes booking receipts under the receipts directory, one file
// per booking, as email-style text or as a one-page PDF.
type Generator struct {
	dir     string
	amounts AmountFormatter
	log     *logger.Logger
	now     func() time.Time
}

func NewGenerator(dir string, amounts AmountFormatter, log *logger.Logger) *Generator {
	return &Generator{dir: dir, amounts: amounts, log: log, now: time.Now}
}

// BuildText renders the email-style receipt body. room and user may be nil
// when the referenced records no longer exist.
func (g *Generator) BuildText(booking *model.Booking, room *model.Room, user *model.User) string {
	guest := booking.GuestName
	if guest == "" && user != nil {
		guest = user.FullName
	}
	if guest == "" {
		guest = "Guest"
	}
	email := "(not provided)"
	if user != nil {
		email = user.Email
	}
	hotel := "(Unknown Hotel)"
	location := ""
	if room != nil {
		hotel = room.HotelName
		location = room.Location
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Subject: Booking Receipt - %s\n", booking.BookingID)
	fmt.Fprintf(&sb, "To: %s\n\n", email)
	fmt.Fprintf(&sb, "Hi %s,\n\n", guest)
	sb.WriteString("Thank you for booking with us! Here is your receipt.\n\n")
	fmt.Fprintf(&sb, "Booking ID: %s\n", booking.BookingID)
	fmt.Fprintf(&sb, "Status: %s\n", booking.Status)
	fmt.Fprintf(&sb, "Hotel: %s\n", hotel)
	if strings.TrimSpace(location) != "" {
		fmt.Fprintf(&sb, "Location: %s\n", location)
	}
	fmt.Fprintf(&sb, "Room ID: %s\n", booking.RoomID)
	fmt.Fprintf(&sb, "Check-in: %s\n", booking.CheckIn.Format(dateLayout))
	fmt.Fprintf(&sb, "Check-out: %s\n", booking.CheckOut.Format(dateLayout))
	fmt.Fprintf(&sb, "Guests: %d\n", booking.Guests)
	fmt.Fprintf(&sb, "Total Paid: %s\n", g.amounts.FormatAmount(booking.TotalPrice))
	sb.WriteString("\nIf you have questions, reply to this message with your Booking ID.\n\n")
	sb.WriteString("Regards,\nHotel Booking System\n")
	return sb.String()
}

// WriteText saves the email-style receipt as <bookingId>_receipt.txt and
// returns its path.
func (g *Generator) WriteText(booking *model.Booking, room *model.Room, user *model.User) (string, error) {
	if booking == nil {
		return "", apperrors.InvalidInput("Booking is required.")
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", apperrors.Internal("Failed to create receipts directory", err)
	}
	path := filepath.Join(g.dir, booking.BookingID+"_receipt.txt")
	if err := os.WriteFile(path, []byte(g.BuildText(booking, room, user)), 0o644); err != nil {
		return "", apperrors.Internal("Failed to write receipt", err)
	}
	g.log.Info("Receipt written", "booking_id", booking.BookingID, "path", path)
	return path, nil
}
