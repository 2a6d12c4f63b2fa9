package pricing

import (
	"context"

	"hotelbooker/pkg/model"
)

// DiscountSource resolves a promo code to a percent in [0, 100]; unknown or
// inactive codes resolve to 0.
type DiscountSource interface {
	DiscountPercent(ctx context.Context, code string) float64
}

type Calculator struct {
	promos DiscountSource
}

func NewCalculator(promos DiscountSource) *Calculator {
	return &Calculator{promos: promos}
}

// Total computes nights x nightly rate minus the promo discount. nights must
// already be validated as positive; this is arithmetic, not a gatekeeper.
func (c *Calculator) Total(ctx context.Context, room *model.Room, nights int, promoCode string) float64 {
	total := room.PricePerNight * float64(nights)
	if pct := c.promos.DiscountPercent(ctx, promoCode); pct > 0 {
		total = total * (1.0 - pct/100.0)
	}
	return total
}
