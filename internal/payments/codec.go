package payments

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

// Line shape: paymentId|bookingId|amount|method|status|timestamp
const timestampLayout = "2006-01-02T15:04:05"

func DecodeLine(line string) (*model.Payment, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 6 {
		return nil, fmt.Errorf("payment line has %d fields, need 6", len(parts))
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad amount %q: %w", parts[2], err)
	}
	paidAt, err := time.Parse(timestampLayout, strings.TrimSpace(parts[5]))
	if err != nil {
		return nil, fmt.Errorf("bad timestamp %q: %w", parts[5], err)
	}

	return &model.Payment{
		PaymentID: strings.TrimSpace(parts[0]),
		BookingID: strings.TrimSpace(parts[1]),
		Amount:    amount,
		Method:    strings.TrimSpace(parts[3]),
		Status:    strings.TrimSpace(parts[4]),
		PaidAt:    paidAt,
	}, nil
}

func DecodeAll(lines []string, log *logger.Logger) []*model.Payment {
	var out []*model.Payment
	for _, line := range lines {
		if !store.IsRecord(line) {
			continue
		}
		p, err := DecodeLine(strings.TrimSpace(line))
		if err != nil {
			log.Warn("Dropping unparsable payment line", "line", line, "error", err)
			continue
		}
		out = append(out, p)
	}
	return out
}

func EncodeLine(p *model.Payment) string {
	return strings.Join([]string{
		p.PaymentID,
		p.BookingID,
		strconv.FormatFloat(p.Amount, 'f', -1, 64),
		p.Method,
		p.Status,
		p.PaidAt.Format(timestampLayout),
	}, "|")
}
