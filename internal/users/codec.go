package users

import (
	"strings"
	"time"

	"hotelbooker/internal/store"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
	"hotelbooker/pkg/sanitizer"
)

const timestampLayout = "2006-01-02T15:04:05"

// DecodeLine parses one account record:
//
//	userId|fullName|email|passwordHash|createdAt
func DecodeLine(line string) (*model.User, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 5 {
		return nil, false
	}
	createdAt, err := time.Parse(timestampLayout, strings.TrimSpace(parts[4]))
	if err != nil {
		return nil, false
	}
	return &model.User{
		UserID:       strings.TrimSpace(parts[0]),
		FullName:     strings.TrimSpace(parts[1]),
		Email:        strings.TrimSpace(parts[2]),
		PasswordHash: strings.TrimSpace(parts[3]),
		CreatedAt:    createdAt,
	}, true
}

func EncodeLine(u *model.User) string {
	return strings.Join([]string{
		u.UserID,
		sanitizer.Field(u.FullName),
		sanitizer.Field(u.Email),
		u.PasswordHash,
		u.CreatedAt.Format(timestampLayout),
	}, "|")
}

func DecodeAll(lines []string, log *logger.Logger) []*model.User {
	var out []*model.User
	for _, line := range lines {
		if !store.IsRecord(line) {
			continue
		}
		u, ok := DecodeLine(line)
		if !ok {
			log.Warn("Skipping malformed user record", "line", line)
			continue
		}
		out = append(out, u)
	}
	return out
}
