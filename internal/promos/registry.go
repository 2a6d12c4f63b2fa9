package promos

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
	"hotelbooker/pkg/sanitizer"
)

// Line shape: CODE|percent or CODE|percent|active|description.
// Codes are case-insensitive and stored uppercased.

var seedPromos = []string{
	"WELCOME10|10|true|Welcome discount",
	"STUDENT5|5|true|Student discount",
	"SUMMER15|15|true|Seasonal promo",
}

// Registry is a read-through cache over the promo collection. It loads once
// per process; Reload forces a re-read after external edits.
type Registry struct {
	store  *store.Store
	log    *logger.Logger
	mu     sync.Mutex
	codes  []*model.Promo
	loaded bool
}

func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		store: store.New(cfg.PromosFile(), seedPromos, cfg.Log),
		log:   cfg.Log,
	}
}

func NewRegistryWithStore(s *store.Store, log *logger.Logger) *Registry {
	return &Registry{store: s, log: log}
}

// Load reads the collection unless already cached.
func (r *Registry) Load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return
	}
	r.reloadLocked()
}

// Reload drops the cache and re-reads from storage.
func (r *Registry) Reload(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadLocked()
}

func (r *Registry) reloadLocked() {
	r.codes = r.codes[:0]
	for _, line := range r.store.LoadAll() {
		if !store.IsRecord(line) {
			continue
		}
		p, err := decodeLine(strings.TrimSpace(line))
		if err != nil {
			r.log.Warn("Dropping unparsable promo line", "line", line, "error", err)
			continue
		}
		r.codes = append(r.codes, p)
	}
	r.loaded = true
}

// DiscountPercent returns 0 for blank, unknown, or inactive codes.
func (r *Registry) DiscountPercent(ctx context.Context, code string) float64 {
	r.Load(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()

	c := sanitizer.Code(code)
	if c == "" {
		return 0
	}
	for _, p := range r.codes {
		if p.Code == c {
			if !p.Active {
				return 0
			}
			return p.Percent
		}
	}
	return 0
}

func (r *Registry) List(ctx context.Context) []*model.Promo {
	r.Load(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Promo, len(r.codes))
	copy(out, r.codes)
	return out
}

// Upsert adds or replaces a code. Percent outside (0, 100] is rejected and
// the registry is left unchanged.
func (r *Registry) Upsert(ctx context.Context, code string, percent float64, active bool, description string) error {
	c := sanitizer.Code(code)
	if c == "" {
		return apperrors.InvalidInput("Promo code cannot be empty.")
	}
	if percent <= 0 || percent > 100 {
		return apperrors.Validation(
			fmt.Sprintf("Promo percent must be greater than 0 and at most 100, got %v.", percent),
			map[string]any{"code": c, "percent": percent},
		)
	}

	r.Load(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()

	promo := &model.Promo{Code: c, Percent: percent, Active: active, Description: description}
	replaced := false
	for i, p := range r.codes {
		if p.Code == c {
			r.codes[i] = promo
			replaced = true
			break
		}
	}
	if !replaced {
		r.codes = append(r.codes, promo)
	}
	return r.saveLocked()
}

// Delete removes a code. Unknown codes are a NotFound error, not a no-op.
func (r *Registry) Delete(ctx context.Context, code string) error {
	c := sanitizer.Code(code)
	if c == "" {
		return apperrors.InvalidInput("Promo code cannot be empty.")
	}

	r.Load(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.codes[:0]
	removed := false
	for _, p := range r.codes {
		if p.Code == c {
			removed = true
			continue
		}
		out = append(out, p)
	}
	if !removed {
		return apperrors.NotFoundWithID("Promo", c)
	}
	r.codes = out
	return r.saveLocked()
}

func (r *Registry) saveLocked() error {
	lines := make([]string, 0, len(r.codes))
	for _, p := range r.codes {
		lines = append(lines, encodeLine(p))
	}
	if err := r.store.ReplaceAll(lines); err != nil {
		r.log.Error("Failed to save promo codes", "error", err)
		return apperrors.Internal("Failed to save promo codes", err)
	}
	return nil
}

func decodeLine(line string) (*model.Promo, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return nil, fmt.Errorf("promo line has %d fields, need at least 2", len(parts))
	}

	code := sanitizer.Code(parts[0])
	if code == "" {
		return nil, fmt.Errorf("promo line has empty code")
	}
	percent, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad percent %q: %w", parts[1], err)
	}
	if percent <= 0 || percent > 100 {
		return nil, fmt.Errorf("percent %v out of range (0, 100]", percent)
	}

	active := true
	if len(parts) >= 3 {
		switch strings.ToLower(strings.TrimSpace(parts[2])) {
		case "", "true", "1", "yes":
			active = true
		default:
			active = false
		}
	}

	description := ""
	if len(parts) >= 4 {
		description = strings.TrimSpace(parts[3])
	}

	return &model.Promo{Code: code, Percent: percent, Active: active, Description: description}, nil
}

func encodeLine(p *model.Promo) string {
	desc := sanitizer.Field(p.Description)
	return strings.Join([]string{
		p.Code,
		strconv.FormatFloat(p.Percent, 'f', -1, 64),
		strconv.FormatBool(p.Active),
		desc,
	}, "|")
}
