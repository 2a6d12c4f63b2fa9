package payments

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "payments.txt"), nil, logger.Discard())
	return NewLedgerWithStore(s, logger.Discard())
}

func payment(id, bookingID string, amount float64, paidAt time.Time) *model.Payment {
	return &model.Payment{
		PaymentID: id,
		BookingID: bookingID,
		Amount:    amount,
		Method:    "CREDIT_CARD",
		Status:    model.PaymentStatusPaid,
		PaidAt:    paidAt,
	}
}

func TestUpdateLatestAmountForBooking(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	t1 := time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2030, 1, 12, 9, 0, 0, 0, time.UTC)
	for _, p := range []*model.Payment{
		payment("P1", "B1", 100, t1),
		payment("P2", "B1", 150, t2),
		payment("P3", "B2", 999, t1),
	} {
		if err := l.Append(ctx, p); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	if err := l.UpdateLatestAmountForBooking(ctx, "b1", 175); err != nil {
		t.Fatalf("UpdateLatestAmountForBooking: %v", err)
	}

	got := l.ForBooking(ctx, "B1")
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for B1, got %d", len(got))
	}
	// Only the newest row (P2) changes.
	for _, p := range got {
		switch p.PaymentID {
		case "P1":
			if p.Amount != 100 {
				t.Errorf("P1 amount changed to %v", p.Amount)
			}
		case "P2":
			if p.Amount != 175 {
				t.Errorf("expected P2 amount 175, got %v", p.Amount)
			}
		}
	}
	// Other bookings untouched.
	other := l.ForBooking(ctx, "B2")
	if len(other) != 1 || other[0].Amount != 999 {
		t.Errorf("B2 payment should be untouched, got %v", other)
	}
}

func TestUpdateLatestAmountForBooking_NoOps(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	if err := l.UpdateLatestAmountForBooking(ctx, "", 100); err != nil {
		t.Errorf("blank booking id should be a no-op, got %v", err)
	}
	if err := l.UpdateLatestAmountForBooking(ctx, "B9", 100); err != nil {
		t.Errorf("unknown booking id should be a no-op, got %v", err)
	}
	if got := l.All(ctx); len(got) != 0 {
		t.Errorf("no-op update must not create rows, got %v", got)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	p := payment("P1A2B3C4", "B9X8Y7Z6", 1234.56, time.Date(2030, 1, 10, 14, 30, 5, 0, time.UTC))

	line := EncodeLine(p)
	want := "P1A2B3C4|B9X8Y7Z6|1234.56|CREDIT_CARD|PAID|2030-01-10T14:30:05"
	if line != want {
		t.Errorf("EncodeLine = %q, want %q", line, want)
	}

	got, err := DecodeLine(line)
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if *got != *p {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestDecodeAll_DropsBadLines(t *testing.T) {
	lines := []string{
		"P1|B1|100|CARD|PAID|2030-01-10T09:00:00",
		"P2|B1|oops|CARD|PAID|2030-01-10T09:00:00",
		"# comment",
		"",
	}
	got := DecodeAll(lines, logger.Discard())
	if len(got) != 1 || got[0].PaymentID != "P1" {
		t.Errorf("expected only P1 to survive, got %v", got)
	}
}
