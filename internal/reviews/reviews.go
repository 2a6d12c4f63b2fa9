package reviews

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
	"hotelbooker/pkg/sanitizer"
)

const dateLayout = "2006-01-02"

// Service keeps at most one review per user per room, newest first.
// Format: roomId|userEmail|rating|comment|date
type Service struct {
	store *store.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		store: store.New(cfg.ReviewsFile(), nil, cfg.Log),
		log:   cfg.Log,
		now:   time.Now,
	}
}

func NewServiceWithStore(s *store.Store, log *logger.Logger) *Service {
	return &Service{store: s, log: log, now: time.Now}
}

// Stats summarizes the reviews of one room.
type Stats struct {
	Average float64
	Count   int
}

// Tag renders the stat the way room listings show it: the average to one
// decimal, or "New" when no reviews exist yet.
func (s Stats) Tag() string {
	if s.Count <= 0 {
		return "New"
	}
	return fmt.Sprintf("%.1f", s.Average)
}

func (s *Service) All(ctx context.Context) []*model.Review {
	out := decodeAll(s.store.LoadAll())
	sortNewestFirst(out)
	return out
}

func (s *Service) ForRoom(ctx context.Context, roomID string) []*model.Review {
	var out []*model.Review
	for _, r := range decodeAll(s.store.LoadAll()) {
		if strings.EqualFold(r.RoomID, roomID) {
			out = append(out, r)
		}
	}
	sortNewestFirst(out)
	return out
}

func (s *Service) StatsForRoom(ctx context.Context, roomID string) Stats {
	rs := s.ForRoom(ctx, roomID)
	if len(rs) == 0 {
		return Stats{}
	}
	sum := 0.0
	for _, r := range rs {
		sum += float64(r.Rating)
	}
	return Stats{Average: sum / float64(len(rs)), Count: len(rs)}
}

// Upsert records a review, replacing any prior review by the same user for
// the same room. Ratings are clamped to [1, 5].
func (s *Service) Upsert(ctx context.Context, roomID, userEmail string, rating int, comment string) error {
	roomID = strings.TrimSpace(roomID)
	userEmail = strings.TrimSpace(userEmail)
	if roomID == "" || userEmail == "" {
		return apperrors.InvalidInput("Room and reviewer are required.")
	}
	if rating < 1 {
		rating = 1
	} else if rating > 5 {
		rating = 5
	}

	newLine := encodeLine(&model.Review{
		RoomID:    roomID,
		UserEmail: userEmail,
		Rating:    rating,
		Comment:   comment,
		Date:      s.now(),
	})

	err := s.store.Update(func(lines []string) []string {
		out := make([]string, 0, len(lines)+1)
		replaced := false
		for _, line := range lines {
			if store.IsRecord(line) {
				if r, ok := decodeLine(line); ok && strings.EqualFold(r.RoomID, roomID) && strings.EqualFold(r.UserEmail, userEmail) {
					out = append(out, newLine)
					replaced = true
					continue
				}
			}
			out = append(out, line)
		}
		if !replaced {
			out = append(out, newLine)
		}
		return out
	})
	if err != nil {
		return apperrors.Internal("Failed to record review", err)
	}
	return nil
}

// Delete removes a user's review of a room.
func (s *Service) Delete(ctx context.Context, roomID, userEmail string) error {
	roomID = strings.TrimSpace(roomID)
	userEmail = strings.TrimSpace(userEmail)
	if roomID == "" || userEmail == "" {
		return apperrors.InvalidInput("Room and reviewer are required.")
	}

	removed := false
	err := s.store.Update(func(lines []string) []string {
		out := make([]string, 0, len(lines))
		for _, line := range lines {
			if store.IsRecord(line) {
				if r, ok := decodeLine(line); ok && strings.EqualFold(r.RoomID, roomID) && strings.EqualFold(r.UserEmail, userEmail) {
					removed = true
					continue
				}
			}
			out = append(out, line)
		}
		return out
	})
	if err != nil {
		return apperrors.Internal("Failed to delete review", err)
	}
	if !removed {
		return apperrors.NotFound("Review")
	}
	return nil
}

func decodeAll(lines []string) []*model.Review {
	var out []*model.Review
	for _, line := range lines {
		if !store.IsRecord(line) {
			continue
		}
		if r, ok := decodeLine(line); ok {
			out = append(out, r)
		}
	}
	return out
}

func decodeLine(line string) (*model.Review, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 5 {
		return nil, false
	}
	rating, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, false
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(parts[4]))
	if err != nil {
		return nil, false
	}
	return &model.Review{
		RoomID:    strings.TrimSpace(parts[0]),
		UserEmail: strings.TrimSpace(parts[1]),
		Rating:    rating,
		Comment:   parts[3],
		Date:      date,
	}, true
}

func encodeLine(r *model.Review) string {
	return strings.Join([]string{
		r.RoomID,
		r.UserEmail,
		strconv.Itoa(r.Rating),
		sanitizer.Field(r.Comment),
		r.Date.Format(dateLayout),
	}, "|")
}

func sortNewestFirst(rs []*model.Review) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Date.After(rs[j].Date)
	})
}
