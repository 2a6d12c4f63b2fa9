package rooms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
	"hotelbooker/pkg/sanitizer"
)

// Historical line shapes, oldest first. There is no version tag; the decoder
// probes the first field and counts columns.
//
//	legacy: hotel|location|price|rating|reviews|amenities|capacity|available
//	v11:    id|hotel|location|price|rating|reviews|amenities|capacity|available|imagePath
//	v12:    id|hotel|location|price|rating|reviews|amenities|capacity|units|available|imagePath
//	v13:    id|hotel|roomType|location|price|rating|reviews|amenities|capacity|units|available|imagePath
//
// Encode always emits v13, so every rewrite upgrades old rows in place.

var idPattern = regexp.MustCompile(`^[A-Za-z]+\d+$`)

// DecodeLine parses one record line. fallbackID is used when column 0 does
// not look like an explicit id (legacy rows carry none).
func DecodeLine(line, fallbackID string) (*model.Room, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 7 {
		return nil, fmt.Errorf("room line has %d fields, need at least 7", len(parts))
	}

	idx := 0
	id := fallbackID
	if idPattern.MatchString(strings.TrimSpace(parts[0])) {
		id = strings.TrimSpace(parts[0])
		idx = 1
	}

	hotelName := strings.TrimSpace(parts[idx])
	idx++

	// v13 inserts roomType right after the hotel name; its presence is
	// inferred from the remaining column count, not a tag.
	roomType := model.DefaultRoomType
	if len(parts) >= idx+10 {
		roomType = strings.TrimSpace(parts[idx])
		idx++
	}

	location := strings.TrimSpace(parts[idx])
	idx++

	price, err := strconv.ParseFloat(strings.TrimSpace(parts[idx]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad price %q: %w", parts[idx], err)
	}
	idx++

	rating, err := strconv.ParseFloat(strings.TrimSpace(parts[idx]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad rating %q: %w", parts[idx], err)
	}
	idx++

	reviews, err := strconv.Atoi(strings.TrimSpace(parts[idx]))
	if err != nil {
		return nil, fmt.Errorf("bad review count %q: %w", parts[idx], err)
	}
	idx++

	amenities := strings.Split(strings.TrimSpace(parts[idx]), ",")
	for i := range amenities {
		amenities[i] = strings.TrimSpace(amenities[i])
	}
	idx++

	capacity, err := strconv.Atoi(strings.TrimSpace(parts[idx]))
	if err != nil {
		return nil, fmt.Errorf("bad capacity %q: %w", parts[idx], err)
	}
	idx++

	// v12 added a units column before the available flag. If the next field
	// does not parse as an integer this is a v11 row and units stays 1.
	units := 1
	if len(parts) >= idx+3 {
		if u, uerr := strconv.Atoi(strings.TrimSpace(parts[idx])); uerr == nil {
			units = u
			idx++
		}
	}

	available := true
	if len(parts) > idx {
		available = strings.EqualFold(strings.TrimSpace(parts[idx]), "true")
		idx++
	}

	imagePath := ""
	if len(parts) > idx {
		imagePath = strings.TrimSpace(parts[idx])
	}
	if imagePath == "" {
		imagePath = model.DefaultImagePath
	}
	if roomType == "" {
		roomType = model.DefaultRoomType
	}
	if units < 1 {
		units = 1
	}

	return &model.Room{
		ID:            id,
		HotelName:     hotelName,
		RoomType:      roomType,
		Location:      location,
		PricePerNight: price,
		Rating:        rating,
		ReviewCount:   reviews,
		Amenities:     amenities,
		Capacity:      capacity,
		Units:         units,
		Available:     available,
		ImagePath:     imagePath,
	}, nil
}

// DecodeAll parses every record line, dropping unparsable rows with a log
// instead of failing the whole load. Synthesized fallback ids advance only on
// successfully decoded rows, matching how existing data files were numbered.
func DecodeAll(lines []string, log *logger.Logger) []*model.Room {
	var out []*model.Room
	next := 1
	for _, line := range lines {
		if !store.IsRecord(line) {
			continue
		}
		room, err := DecodeLine(strings.TrimSpace(line), fmt.Sprintf("R%d", next))
		if err != nil {
			log.Warn("Dropping unparsable room line", "line", line, "error", err)
			continue
		}
		out = append(out, room)
		next++
	}
	return out
}

// EncodeLine renders the canonical (v13) shape. Free-text fields are
// sanitized so an embedded delimiter cannot shift the columns of the row.
func EncodeLine(r *model.Room) string {
	amenities := make([]string, len(r.Amenities))
	for i, a := range r.Amenities {
		amenities[i] = sanitizer.Field(a)
	}
	return strings.Join([]string{
		r.ID,
		sanitizer.Field(r.HotelName),
		sanitizer.Field(r.RoomType),
		sanitizer.Field(r.Location),
		formatFloat(r.PricePerNight),
		formatFloat(r.Rating),
		strconv.Itoa(r.ReviewCount),
		strings.Join(amenities, ","),
		strconv.Itoa(r.Capacity),
		strconv.Itoa(max(1, r.Units)),
		strconv.FormatBool(r.Available),
		r.ImagePath,
	}, "|")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
