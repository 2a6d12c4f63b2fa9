package users

import (
	"context"
	"strings"
	"time"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var seedHeader = []string{"# userId|fullName|email|passwordHash|createdAt"}

// Service manages guest accounts. Passwords are bcrypt-hashed before they
// touch disk; the plaintext never leaves Register or Authenticate.
type Service struct {
	store *store.Store
	log   *logger.Logger
	cost  int
	now   func() time.Time
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		store: store.New(cfg.UsersFile(), seedHeader, cfg.Log),
		log:   cfg.Log,
		cost:  cfg.BcryptCost,
		now:   time.Now,
	}
}

func NewServiceWithStore(s *store.Store, log *logger.Logger, cost int) *Service {
	return &Service{store: s, log: log, cost: cost, now: time.Now}
}

func (s *Service) All(ctx context.Context) []*model.User {
	return DecodeAll(s.store.LoadAll(), s.log)
}

// ByEmail matches case-insensitively; emails are the natural key of the
// collection.
func (s *Service) ByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NotFound("User")
	}
	for _, u := range s.All(ctx) {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("User")
}

func (s *Service) EmailExists(ctx context.Context, email string) bool {
	_, err := s.ByEmail(ctx, email)
	return err == nil
}

// Register creates a new account. The email must not already be taken.
func (s *Service) Register(ctx context.Context, fullName, email, password string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" {
		return nil, apperrors.InvalidInput("Full name cannot be empty.")
	}
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty.")
	}
	if password == "" {
		return nil, apperrors.InvalidInput("Password cannot be empty.")
	}
	if s.EmailExists(ctx, email) {
		return nil, apperrors.Conflict("An account with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		UserID:       "U" + strings.ToUpper(uuid.NewString()[:8]),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.store.Append(EncodeLine(user)); err != nil {
		s.log.Error("Failed to record user", "error", err)
		return nil, apperrors.Internal("Failed to record user", err)
	}

	s.log.Info("User registered", "user_id", user.UserID, "email", user.Email)
	return user, nil
}

// Authenticate verifies the credentials and returns the matching account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.ByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password.")
	}
	return user, nil
}

// UpdateProfile changes the display name and, when newPassword is non-empty,
// the password of an existing account. Blank values leave the current field
// untouched.
func (s *Service) UpdateProfile(ctx context.Context, userID, newFullName, newPassword string) error {
	var newHash string
	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
		if err != nil {
			return apperrors.Internal("Failed to hash password", err)
		}
		newHash = string(hash)
	}

	updated := false
	err := s.store.Update(func(lines []string) []string {
		out := make([]string, 0, len(lines))
		for _, line := range lines {
			if !store.IsRecord(line) {
				out = append(out, line)
				continue
			}
			u, ok := DecodeLine(line)
			if !ok || !strings.EqualFold(u.UserID, userID) {
				out = append(out, line)
				continue
			}
			if name := strings.TrimSpace(newFullName); name != "" {
				u.FullName = name
			}
			if newHash != "" {
				u.PasswordHash = newHash
			}
			out = append(out, EncodeLine(u))
			updated = true
		}
		return out
	})
	if err != nil {
		return apperrors.Internal("Failed to update user", err)
	}
	if !updated {
		return apperrors.NotFoundWithID("User", userID)
	}
	return nil
}

// Delete removes an account. Bookings made under the account are untouched;
// they reference the guest by name only.
func (s *Service) Delete(ctx context.Context, userID string) error {
	removed := false
	err := s.store.Update(func(lines []string) []string {
		out := make([]string, 0, len(lines))
		for _, line := range lines {
			if store.IsRecord(line) {
				if u, ok := DecodeLine(line); ok && strings.EqualFold(u.UserID, userID) {
					removed = true
					continue
				}
			}
			out = append(out, line)
		}
		return out
	})
	if err != nil {
		return apperrors.Internal("Failed to delete user", err)
	}
	if !removed {
		return apperrors.NotFoundWithID("User", userID)
	}
	s.log.Info("User deleted", "user_id", userID)
	return nil
}
