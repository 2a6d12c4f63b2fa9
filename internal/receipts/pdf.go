package receipts

import (
	"fmt"
	"os"
	"path/filepath"

	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/model"

	"github.com/phpdave11/gofpdf"
)

// WritePDF saves a one-page PDF receipt as Booking_<id>.pdf and returns its
// path.
func (g *Generator) WritePDF(booking *model.Booking, room *model.Room, user *model.User) (string, error) {
	if booking == nil {
		return "", apperrors.InvalidInput("Booking is required.")
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", apperrors.Internal("Failed to create receipts directory", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "HotelBooker - Booking Receipt")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "Generated: "+g.now().Format("2006-01-02 15:04"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range g.pdfLines(booking, room, user) {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	path := filepath.Join(g.dir, "Booking_"+booking.BookingID+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", apperrors.Internal("Failed to write PDF receipt", err)
	}
	g.log.Info("PDF receipt written", "booking_id", booking.BookingID, "path", path)
	return path, nil
}

func (g *Generator) pdfLines(booking *model.Booking, room *model.Room, user *model.User) []string {
	lines := []string{"Booking ID: " + booking.BookingID}
	if user != nil {
		lines = append(lines, fmt.Sprintf("Guest: %s (%s)", user.FullName, user.Email))
	} else {
		lines = append(lines, "Guest: "+booking.GuestName)
	}
	if room != nil {
		lines = append(lines,
			"Hotel: "+room.HotelName,
			"Location: "+room.Location,
		)
	}
	lines = append(lines,
		"Check-in: "+booking.CheckIn.Format(dateLayout),
		"Check-out: "+booking.CheckOut.Format(dateLayout),
		fmt.Sprintf("Guests: %d", booking.Guests),
		fmt.Sprintf("Nights: %d", booking.Nights()),
		"Total: "+g.amounts.FormatAmount(booking.TotalPrice),
		"Status: "+booking.Status,
	)
	return lines
}
