package users

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"hotelbooker/internal/store"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "users.txt"), seedHeader, logger.Discard())
	return NewServiceWithStore(st, logger.Discard(), bcrypt.MinCost)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Dana Cohen", "dana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.UserID == "" || !strings.HasPrefix(user.UserID, "U") {
		t.Errorf("UserID = %q, want U-prefixed id", user.UserID)
	}
	if user.PasswordHash == "s3cret" {
		t.Error("password stored in plaintext")
	}

	got, err := svc.Authenticate(ctx, "DANA@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.UserID != user.UserID {
		t.Errorf("Authenticate() returned user %q, want %q", got.UserID, user.UserID)
	}

	if _, err := svc.Authenticate(ctx, "dana@example.com", "wrong"); apperrors.CodeOf(err) != apperrors.CodeUnauthorized {
		t.Errorf("wrong password: code = %q, want %q", apperrors.CodeOf(err), apperrors.CodeUnauthorized)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "s3cret"); apperrors.CodeOf(err) != apperrors.CodeUnauthorized {
		t.Errorf("unknown email: code = %q, want %q", apperrors.CodeOf(err), apperrors.CodeUnauthorized)
	}
}

func TestRegister_Rejections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Dana Cohen", "dana@example.com", "s3cret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		fullName string
		email    string
		password string
		wantCode string
	}{
		{"duplicate email", "Other Person", "dana@example.com", "pw", apperrors.CodeConflict},
		{"duplicate email different case", "Other Person", "DANA@EXAMPLE.COM", "pw", apperrors.CodeConflict},
		{"blank name", "  ", "new@example.com", "pw", apperrors.CodeInvalidInput},
		{"blank email", "Someone", "", "pw", apperrors.CodeInvalidInput},
		{"blank password", "Someone", "new@example.com", "", apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.fullName, tt.email, tt.password)
			if apperrors.CodeOf(err) != tt.wantCode {
				t.Errorf("Register() code = %q, want %q", apperrors.CodeOf(err), tt.wantCode)
			}
		})
	}

	if got := len(svc.All(ctx)); got != 1 {
		t.Errorf("user count after rejections = %d, want 1", got)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Dana Cohen", "dana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.UpdateProfile(ctx, user.UserID, "Dana C.", "newpw"); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	got, err := svc.ByEmail(ctx, "dana@example.com")
	if err != nil {
		t.Fatalf("ByEmail() error = %v", err)
	}
	if got.FullName != "Dana C." {
		t.Errorf("FullName = %q, want %q", got.FullName, "Dana C.")
	}
	if _, err := svc.Authenticate(ctx, "dana@example.com", "newpw"); err != nil {
		t.Errorf("Authenticate() with new password error = %v", err)
	}
	if _, err := svc.Authenticate(ctx, "dana@example.com", "s3cret"); err == nil {
		t.Error("old password still accepted after update")
	}

	// Blank fields leave the account untouched.
	if err := svc.UpdateProfile(ctx, user.UserID, "", ""); err != nil {
		t.Fatalf("UpdateProfile() no-op error = %v", err)
	}
	got, _ = svc.ByEmail(ctx, "dana@example.com")
	if got.FullName != "Dana C." {
		t.Errorf("FullName after no-op update = %q, want %q", got.FullName, "Dana C.")
	}

	if err := svc.UpdateProfile(ctx, "U-MISSING", "X", ""); apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Errorf("UpdateProfile() unknown id code = %q, want %q", apperrors.CodeOf(err), apperrors.CodeNotFound)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Dana Cohen", "dana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.Delete(ctx, user.UserID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := len(svc.All(ctx)); got != 0 {
		t.Errorf("user count after delete = %d, want 0", got)
	}
	if err := svc.Delete(ctx, user.UserID); apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Errorf("double delete code = %q, want %q", apperrors.CodeOf(err), apperrors.CodeNotFound)
	}
}

func TestEncodeLine_SanitizesFields(t *testing.T) {
	u, ok := DecodeLine("U1|Dana Cohen|dana@example.com|$2a$04$hash|2030-01-10T14:30:05")
	if !ok {
		t.Fatal("DecodeLine() failed on valid line")
	}
	u.FullName = "Dana|Cohen\nJr"
	line := EncodeLine(u)
	if strings.Count(line, "|") != 4 {
		t.Errorf("encoded line has %d delimiters, want 4: %q", strings.Count(line, "|"), line)
	}
	if strings.ContainsAny(line, "\n\r") {
		t.Errorf("encoded line contains newline: %q", line)
	}
}
