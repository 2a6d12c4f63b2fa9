package receipts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

type plainUSD struct{}

func (plainUSD) FormatAmount(amountUSD float64) string {
	return fmt.Sprintf("$%.2f", amountUSD)
}

func testBooking() *model.Booking {
	return &model.Booking{
		BookingID:  "B1A2B3C4",
		GuestName:  "Dana Cohen",
		RoomID:     "R3",
		CheckIn:    time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalPrice: 1495.5,
		Status:     model.StatusConfirmed,
	}
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g := NewGenerator(t.TempDir(), plainUSD{}, logger.Discard())
	g.now = func() time.Time {
		return time.Date(2030, 1, 10, 14, 30, 0, 0, time.UTC)
	}
	return g
}

func TestBuildText(t *testing.T) {
	g := newTestGenerator(t)
	room := &model.Room{ID: "R3", HotelName: "Hotel Three", Location: "Haifa"}
	user := &model.User{FullName: "Dana Cohen", Email: "dana@example.com"}

	text := g.BuildText(testBooking(), room, user)

	for _, want := range []string{
		"Subject: Booking Receipt - B1A2B3C4",
		"To: dana@example.com",
		"Hi Dana Cohen,",
		"Hotel: Hotel Three",
		"Location: Haifa",
		"Check-in: 2030-01-10",
		"Check-out: 2030-01-15",
		"Guests: 2",
		"Total Paid: $1495.50",
		"Status: CONFIRMED",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("receipt missing %q:\n%s", want, text)
		}
	}
}

func TestBuildText_MissingRoomAndUser(t *testing.T) {
	g := newTestGenerator(t)

	text := g.BuildText(testBooking(), nil, nil)

	if !strings.Contains(text, "To: (not provided)") {
		t.Errorf("receipt missing placeholder email:\n%s", text)
	}
	if !strings.Contains(text, "Hotel: (Unknown Hotel)") {
		t.Errorf("receipt missing placeholder hotel:\n%s", text)
	}
	if strings.Contains(text, "Location:") {
		t.Errorf("receipt shows location for unknown room:\n%s", text)
	}
}

func TestWriteText(t *testing.T) {
	g := newTestGenerator(t)

	path, err := g.WriteText(testBooking(), nil, nil)
	if err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if filepath.Base(path) != "B1A2B3C4_receipt.txt" {
		t.Errorf("receipt filename = %q, want B1A2B3C4_receipt.txt", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading receipt: %v", err)
	}
	if !strings.Contains(string(data), "Booking ID: B1A2B3C4") {
		t.Errorf("written receipt missing booking id:\n%s", data)
	}

	if _, err := g.WriteText(nil, nil, nil); err == nil {
		t.Error("WriteText(nil booking) succeeded, want error")
	}
}

func TestWritePDF(t *testing.T) {
	g := newTestGenerator(t)
	room := &model.Room{ID: "R3", HotelName: "Hotel Three", Location: "Haifa"}

	path, err := g.WritePDF(testBooking(), room, nil)
	if err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if filepath.Base(path) != "Booking_B1A2B3C4.pdf" {
		t.Errorf("PDF filename = %q, want Booking_B1A2B3C4.pdf", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Errorf("file does not start with a PDF header: %q", data[:8])
	}

	if _, err := g.WritePDF(nil, nil, nil); err == nil {
		t.Error("WritePDF(nil booking) succeeded, want error")
	}
}
