package rooms

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

func newTestCatalog(t *testing.T, seed []string) *Catalog {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "rooms.txt"), seed, logger.Discard())
	return NewCatalogWithStore(st, logger.Discard())
}

func TestCatalog_SeededCollection(t *testing.T) {
	c := newTestCatalog(t, seedRooms)
	ctx := context.Background()

	if got := len(c.All(ctx)); got != len(seedRooms) {
		t.Fatalf("All() returned %d rooms, want %d", got, len(seedRooms))
	}

	room, err := c.ByID(ctx, "r3")
	if err != nil {
		t.Fatalf("ByID(r3) error = %v", err)
	}
	if room.HotelName != "Beachside Paradise Resort" {
		t.Errorf("ByID(r3).HotelName = %q", room.HotelName)
	}
	if room.Units != 3 {
		t.Errorf("ByID(r3).Units = %d, want 3", room.Units)
	}

	if _, err := c.ByID(ctx, "R99"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ByID(R99) error = %v, want ErrNotFound", err)
	}
}

func TestCatalog_Search(t *testing.T) {
	c := newTestCatalog(t, seedRooms)
	ctx := context.Background()

	byCity := c.Search(ctx, "miami")
	if len(byCity) != 1 || byCity[0].ID != "R3" {
		t.Errorf("Search(miami) = %v, want just R3", ids(byCity))
	}

	byName := c.Search(ctx, "grand plaza")
	if len(byName) != 1 || byName[0].ID != "R1" {
		t.Errorf("Search(grand plaza) = %v, want just R1", ids(byName))
	}

	if got := c.Search(ctx, "atlantis"); len(got) != 0 {
		t.Errorf("Search(atlantis) = %v, want empty", ids(got))
	}
}

func TestCatalog_SearchByPriceAndRating(t *testing.T) {
	c := newTestCatalog(t, seedRooms)
	ctx := context.Background()

	cheap := c.SearchByPrice(ctx, 0, 200)
	for _, r := range cheap {
		if r.PricePerNight > 200 {
			t.Errorf("SearchByPrice returned %s at %v", r.ID, r.PricePerNight)
		}
	}
	if len(cheap) != 2 {
		t.Errorf("SearchByPrice(0, 200) = %v, want R4 and R6", ids(cheap))
	}

	top := c.SearchByRating(ctx, 4.9)
	if len(top) != 2 {
		t.Errorf("SearchByRating(4.9) = %v, want R3 and R5", ids(top))
	}
}

func TestCatalog_AvailableFiltersDelisted(t *testing.T) {
	c := newTestCatalog(t, []string{
		"R1|Hotel One|Deluxe|Haifa|100|4.5|10|WiFi|2|2|true|img.jpg",
		"R2|Hotel Two|Deluxe|Haifa|100|4.5|10|WiFi|2|2|false|img.jpg",
	})
	ctx := context.Background()

	got := c.Available(ctx)
	if len(got) != 1 || got[0].ID != "R1" {
		t.Errorf("Available() = %v, want just R1", ids(got))
	}
	// Delisted rooms stay reachable by id.
	if _, err := c.ByID(ctx, "R2"); err != nil {
		t.Errorf("ByID(R2) error = %v, want found", err)
	}
}

func TestCatalog_Upsert(t *testing.T) {
	c := newTestCatalog(t, []string{
		"R1|Hotel One|Deluxe|Haifa|100|4.5|10|WiFi|2|2|true|img.jpg",
	})
	ctx := context.Background()

	updated := &model.Room{
		ID: "R1", HotelName: "Hotel One", RoomType: "Deluxe", Location: "Haifa",
		PricePerNight: 120, Rating: 4.5, ReviewCount: 10, Amenities: []string{"WiFi"},
		Capacity: 2, Units: 4, Available: true, ImagePath: "img.jpg",
	}
	if err := c.Upsert(ctx, updated); err != nil {
		t.Fatalf("Upsert(existing) error = %v", err)
	}

	fresh := &model.Room{
		ID: "R7", HotelName: "New Hotel", RoomType: "Suite", Location: "Eilat",
		PricePerNight: 200, Rating: 0, ReviewCount: 0, Amenities: nil,
		Capacity: 3, Units: 1, Available: true, ImagePath: "img.jpg",
	}
	if err := c.Upsert(ctx, fresh); err != nil {
		t.Fatalf("Upsert(new) error = %v", err)
	}

	all := c.All(ctx)
	if len(all) != 2 {
		t.Fatalf("All() after upserts = %v, want 2 rooms", ids(all))
	}
	r1, err := c.ByID(ctx, "R1")
	if err != nil {
		t.Fatal(err)
	}
	if r1.PricePerNight != 120 || r1.Units != 4 {
		t.Errorf("R1 after upsert: price=%v units=%d, want 120/4", r1.PricePerNight, r1.Units)
	}
	if _, err := c.ByID(ctx, "R7"); err != nil {
		t.Errorf("ByID(R7) after upsert error = %v", err)
	}
}

func ids(rooms []*model.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.ID)
	}
	return out
}
