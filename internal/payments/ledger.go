package payments

import (
	"context"
	"strings"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/config"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

type Ledger struct {
	store *store.Store
	log   *logger.Logger
}

func NewLedger(cfg *config.Config) *Ledger {
	return &Ledger{
		store: store.New(cfg.PaymentsFile(), nil, cfg.Log),
		log:   cfg.Log,
	}
}

func NewLedgerWithStore(s *store.Store, log *logger.Logger) *Ledger {
	return &Ledger{store: s, log: log}
}

func (l *Ledger) All(ctx context.Context) []*model.Payment {
	return DecodeAll(l.store.LoadAll(), l.log)
}

func (l *Ledger) ForBooking(ctx context.Context, bookingID string) []*model.Payment {
	var out []*model.Payment
	for _, p := range l.All(ctx) {
		if strings.EqualFold(p.BookingID, bookingID) {
			out = append(out, p)
		}
	}
	return out
}

func (l *Ledger) Append(ctx context.Context, payment *model.Payment) error {
	return l.store.Append(EncodeLine(payment))
}

// UpdateLatestAmountForBooking finds the newest payment row (by timestamp)
// for a booking and rewrites its amount. Reschedules mutate the existing row
// rather than adding a new one; when no payment exists this is a no-op.
func (l *Ledger) UpdateLatestAmountForBooking(ctx context.Context, bookingID string, newAmount float64) error {
	if strings.TrimSpace(bookingID) == "" {
		return nil
	}
	return l.store.Update(func(lines []string) []string {
		all := DecodeAll(lines, l.log)
		if len(all) == 0 {
			return lines
		}

		var latest *model.Payment
		for _, p := range all {
			if !strings.EqualFold(p.BookingID, bookingID) {
				continue
			}
			if latest == nil || p.PaidAt.After(latest.PaidAt) {
				latest = p
			}
		}
		if latest == nil {
			return lines
		}
		latest.Amount = newAmount

		out := make([]string, 0, len(all))
		for _, p := range all {
			out = append(out, EncodeLine(p))
		}
		return out
	})
}
