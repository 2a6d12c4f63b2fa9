package model

// Promo codes are case-insensitive; they are stored and compared uppercased.
type Promo struct {
	Code        string  `json:"code" validate:"required,min=1,max=32"`
	Percent     float64 `json:"percent" validate:"gt=0,lte=100"`
	Active      bool    `json:"active"`
	Description string  `json:"description"`
}
