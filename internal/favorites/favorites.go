package favorites

import (
	"context"
	"strings"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/sanitizer"
)

// Service persists per-guest room shortlists.
// Format: email|roomId, one pair per line; emails are stored lowercased.
type Service struct {
	store *store.Store
	log   *logger.Logger
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		store: store.New(cfg.FavoritesFile(), nil, cfg.Log),
		log:   cfg.Log,
	}
}

func NewServiceWithStore(s *store.Store, log *logger.Logger) *Service {
	return &Service{store: s, log: log}
}

// RoomIDs returns every room the guest has shortlisted.
func (s *Service) RoomIDs(ctx context.Context, email string) []string {
	key := normalize(email)
	if key == "" {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, line := range s.store.LoadAll() {
		if !store.IsRecord(line) {
			continue
		}
		e, roomID, ok := decodeLine(line)
		if !ok || e != key || seen[roomID] {
			continue
		}
		seen[roomID] = true
		out = append(out, roomID)
	}
	return out
}

func (s *Service) IsFavorite(ctx context.Context, email, roomID string) bool {
	roomID = strings.TrimSpace(roomID)
	for _, id := range s.RoomIDs(ctx, email) {
		if strings.EqualFold(id, roomID) {
			return true
		}
	}
	return false
}

// Toggle flips a room in or out of the shortlist and reports whether the
// room is a favorite afterwards.
func (s *Service) Toggle(ctx context.Context, email, roomID string) (bool, error) {
	key := normalize(email)
	roomID = strings.TrimSpace(roomID)
	if key == "" || roomID == "" {
		return false, apperrors.InvalidInput("Guest and room are required.")
	}

	added := false
	err := s.store.Update(func(lines []string) []string {
		out := make([]string, 0, len(lines)+1)
		removed := false
		for _, line := range lines {
			if store.IsRecord(line) {
				if e, id, ok := decodeLine(line); ok && e == key && strings.EqualFold(id, roomID) {
					removed = true
					continue
				}
			}
			out = append(out, line)
		}
		if !removed {
			out = append(out, key+"|"+roomID)
			added = true
		}
		return out
	})
	if err != nil {
		return false, apperrors.Internal("Failed to update favorites", err)
	}
	return added, nil
}

func decodeLine(line string) (email, roomID string, ok bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return "", "", false
	}
	email = normalize(parts[0])
	roomID = strings.TrimSpace(parts[1])
	if email == "" || roomID == "" {
		return "", "", false
	}
	return email, roomID, true
}

func normalize(email string) string {
	return sanitizer.Email(email)
}
