package rooms

import (
	"context"
	"errors"
	"strings"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/config"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

var ErrNotFound = errors.New("room not found")

// Sample listings written on first run so a fresh install has something to
// show. Admin CRUD takes over from there.
var seedRooms = []string{
	"R1|Grand Plaza Hotel|Deluxe King|New York, USA|299|4.8|324|Free WiFi,Pool,Spa|2|5|true|assets/images/grand_plaza.jpg",
	"R2|Urban Luxury Suites|Executive Suite|Los Angeles, USA|249|4.6|198|Free WiFi,Gym,Bar|2|4|true|assets/images/urban_luxury.jpg",
	"R3|Beachside Paradise Resort|Ocean View|Miami, USA|399|4.9|452|Beach Access,Pool,Spa|2|3|true|assets/images/beachside_paradise.jpg",
	"R4|Boutique Heritage Inn|Heritage Single|San Francisco, USA|189|4.7|276|Free WiFi,Breakfast,Historic Building|1|2|true|assets/images/boutique_heritage.jpg",
	"R5|Mountain Peak Lodge|Chalet Queen|Aspen, USA|349|4.9|389|Ski-in/Ski-out,Hot Tub,Restaurant|2|2|true|assets/images/mountain_peak.jpg",
	"R6|City Center Comfort Hotel|Standard Twin|Chicago, USA|159|4.5|143|Free WiFi,Parking,Pet Friendly|2|6|true|assets/images/city_center.jpg",
}

type Catalog struct {
	store *store.Store
	log   *logger.Logger
}

func NewCatalog(cfg *config.Config) *Catalog {
	var seed []string
	if cfg.SeedSampleData {
		seed = seedRooms
	}
	return &Catalog{
		store: store.New(cfg.RoomsFile(), seed, cfg.Log),
		log:   cfg.Log,
	}
}

// NewCatalogWithStore wires an explicit store, used by tests and tooling.
func NewCatalogWithStore(s *store.Store, log *logger.Logger) *Catalog {
	return &Catalog{store: s, log: log}
}

func (c *Catalog) All(ctx context.Context) []*model.Room {
	return DecodeAll(c.store.LoadAll(), c.log)
}

// Available returns only listed rooms (the admin switch, not date
// availability).
func (c *Catalog) Available(ctx context.Context) []*model.Room {
	var out []*model.Room
	for _, r := range c.All(ctx) {
		if r.Available {
			out = append(out, r)
		}
	}
	return out
}

func (c *Catalog) ByID(ctx context.Context, id string) (*model.Room, error) {
	for _, r := range c.All(ctx) {
		if strings.EqualFold(r.ID, id) {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

// Search matches hotel name or location, case-insensitive.
func (c *Catalog) Search(ctx context.Context, destination string) []*model.Room {
	q := strings.ToLower(strings.TrimSpace(destination))
	var out []*model.Room
	for _, r := range c.All(ctx) {
		if strings.Contains(strings.ToLower(r.HotelName), q) ||
			strings.Contains(strings.ToLower(r.Location), q) {
			out = append(out, r)
		}
	}
	return out
}

func (c *Catalog) SearchByPrice(ctx context.Context, minPrice, maxPrice float64) []*model.Room {
	var out []*model.Room
	for _, r := range c.Available(ctx) {
		if r.PricePerNight >= minPrice && r.PricePerNight <= maxPrice {
			out = append(out, r)
		}
	}
	return out
}

func (c *Catalog) SearchByRating(ctx context.Context, minRating float64) []*model.Room {
	var out []*model.Room
	for _, r := range c.Available(ctx) {
		if r.Rating >= minRating {
			out = append(out, r)
		}
	}
	return out
}

// Save appends a new listing without touching existing rows. Bulk import path.
func (c *Catalog) Save(ctx context.Context, room *model.Room) error {
	return c.store.Append(EncodeLine(room))
}

// Upsert replaces the listing with the same id, or appends when absent. The
// whole collection is rewritten, which also upgrades legacy rows to the
// canonical shape.
func (c *Catalog) Upsert(ctx context.Context, room *model.Room) error {
	return c.store.Update(func(lines []string) []string {
		existing := DecodeAll(lines, c.log)
		replaced := false
		out := make([]string, 0, len(existing)+1)
		for _, r := range existing {
			if strings.EqualFold(r.ID, room.ID) {
				out = append(out, EncodeLine(room))
				replaced = true
				continue
			}
			out = append(out, EncodeLine(r))
		}
		if !replaced {
			out = append(out, EncodeLine(room))
		}
		return out
	})
}
