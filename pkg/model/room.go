package model

// Room is a listing for a number of identical physical units. Available is
// the admin on/off switch for the listing, not date availability.
type Room struct {
	ID            string   `json:"id" validate:"required"`
	HotelName     string   `json:"hotel_name" validate:"required,min=2,max=100"`
	RoomType      string   `json:"room_type"`
	Location      string   `json:"location" validate:"required"`
	PricePerNight float64  `json:"price_per_night" validate:"gte=0"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int      `json:"review_count" validate:"gte=0"`
	Amenities     []string `json:"amenities"`
	Capacity      int      `json:"capacity" validate:"gte=1"`
	Units         int      `json:"units" validate:"gte=1"`
	Available     bool     `json:"available"`
	ImagePath     string   `json:"image_path"`
}

const (
	DefaultRoomType  = "Standard Room"
	DefaultImagePath = "assets/images/city_center.jpg"
)
