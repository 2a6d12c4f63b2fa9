package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

const (
	dateLayout  = "2006-01-02"
	stampLayout = "20060102_150405"
)

// Exporter writes timestamped CSV snapshots of the collections under the
// exports directory.
type Exporter struct {
	dir string
	log *logger.Logger
	now func() time.Time
}

func NewExporter(dir string, log *logger.Logger) *Exporter {
	return &Exporter{dir: dir, log: log, now: time.Now}
}

// ExportBookings writes one row per booking, joined with the room catalog
// for hotel name and location. Bookings whose room is gone export with those
// columns blank.
func (e *Exporter) ExportBookings(bookings []*model.Booking, rooms []*model.Room) (string, error) {
	byID := make(map[string]*model.Room, len(rooms))
	for _, r := range rooms {
		byID[strings.ToUpper(r.ID)] = r
	}

	rows := [][]string{{"booking_id", "guest", "room_id", "hotel", "location", "check_in", "check_out", "guests", "total", "status"}}
	for _, b := range bookings {
		hotel, location := "", ""
		if r, ok := byID[strings.ToUpper(b.RoomID)]; ok {
			hotel, location = r.HotelName, r.Location
		}
		rows = append(rows, []string{
			b.BookingID,
			b.GuestName,
			b.RoomID,
			hotel,
			location,
			b.CheckIn.Format(dateLayout),
			b.CheckOut.Format(dateLayout),
			strconv.Itoa(b.Guests),
			strconv.FormatFloat(b.TotalPrice, 'f', -1, 64),
			b.Status,
		})
	}
	return e.write("bookings", rows)
}

// ExportGuests writes one row per registered account. Password hashes never
// leave the users file.
func (e *Exporter) ExportGuests(users []*model.User) (string, error) {
	rows := [][]string{{"user_id", "name", "email", "created_at"}}
	for _, u := range users {
		rows = append(rows, []string{
			u.UserID,
			u.FullName,
			u.Email,
			u.CreatedAt.Format("2006-01-02T15:04:05"),
		})
	}
	return e.write("guests", rows)
}

func (e *Exporter) write(prefix string, rows [][]string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", apperrors.Internal("Failed to create exports directory", err)
	}
	path := filepath.Join(e.dir, prefix+"_"+e.now().Format(stampLayout)+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.Internal("Failed to create export file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return "", apperrors.Internal("Failed to write export file", err)
	}
	e.log.Info("Export written", "path", path, "rows", len(rows)-1)
	return path, nil
}
