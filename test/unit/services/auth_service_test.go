package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rudralabs/rudra/configs"
	impl "github.com/rudralabs/rudra/internal/application/services"
	"github.com/rudralabs/rudra/internal/core/domain/admin"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/ports"
	tmocks "github.com/rudralabs/rudra/test/mocks"
)

func newAuthService(repo *tmocks.AdminRepositoryMock) ports.AuthService {
	cfg := &configs.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}
	return impl.NewAuthService(repo, &tmocks.ActivityRecorderMock{}, cfg, testLogger())
}

// inMemoryAdminRepo wires the mock's function fields to a map so
// register/login roundtrips see their own writes.
func inMemoryAdminRepo() *tmocks.AdminRepositoryMock {
	accounts := map[string]*admin.Admin{}
	repo := &tmocks.AdminRepositoryMock{}
	repo.CreateFn = func(ctx context.Context, a *admin.Admin) error {
		if _, ok := accounts[a.Email]; ok {
			return apperr.ErrConflict
		}
		accounts[a.Email] = a
		return nil
	}
	repo.GetByEmailFn = func(ctx context.Context, email string) (*admin.Admin, error) {
		a, ok := accounts[email]
		if !ok {
			return nil, apperr.ErrNotFound
		}
		return a, nil
	}
	return repo
}

func TestRegisterLoginValidate_Roundtrip(t *testing.T) {
	svc := newAuthService(inMemoryAdminRepo())

	reg, err := svc.Register(context.Background(), &admin.RegisterRequest{
		Email:    "  Owner@Example.COM ",
		Password: "hunter2hunter2",
		Name:     "Owner",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if reg.Email != "owner@example.com" {
		t.Fatalf("expected normalized email, got %q", reg.Email)
	}
	if reg.Token == "" {
		t.Fatal("register should issue a token")
	}

	sess, err := svc.Login(context.Background(), &admin.LoginRequest{
		Email:    "owner@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	email, name, err := svc.ValidateToken(sess.Token)
	if err != nil {
		t.Fatalf("token should validate: %v", err)
	}
	if email != "owner@example.com" || name != "Owner" {
		t.Fatalf("unexpected claims: %q %q", email, name)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := inMemoryAdminRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), &admin.RegisterRequest{
		Email:    "owner@example.com",
		Password: "correct-password",
		Name:     "Owner",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), &admin.LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc := newAuthService(inMemoryAdminRepo())

	_, err := svc.Login(context.Background(), &admin.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("unknown accounts must fail like wrong passwords, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newAuthService(inMemoryAdminRepo())

	_, err := svc.Register(context.Background(), &admin.RegisterRequest{Email: "a@b.com"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newAuthService(inMemoryAdminRepo())

	if _, _, err := svc.ValidateToken("not-a-jwt"); err == nil {
		t.Fatal("expected garbage token to fail")
	}
}
