package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rudralabs/rudra/configs"
	"github.com/rudralabs/rudra/internal/core/domain/admin"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/ports"
)

// AuthService manages dashboard accounts and their bearer tokens.
type AuthService struct {
	adminRepo ports.AdminRepository
	activity  ports.ActivityRecorder
	secret    []byte
	tokenTTL  time.Duration
	logger    *logrus.Logger
}

func NewAuthService(adminRepo ports.AdminRepository, activity ports.ActivityRecorder, cfg *configs.JWTConfig, logger *logrus.Logger) ports.AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		activity:  activity,
		secret:    []byte(cfg.Secret),
		tokenTTL:  cfg.AccessTokenTTL,
		logger:    logger,
	}
}

type adminClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Register creates an account and returns a signed session.
func (s *AuthService) Register(ctx context.Context, req *admin.RegisterRequest) (*admin.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: email, password and name are required", apperr.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &admin.Admin{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Company:      req.Company,
		CreatedAt:    time.Now(),
	}
	if err := s.adminRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.activity.LogActivity(ctx, email, "register", "Account created", "")
	s.logger.WithField("email", email).Info("Admin account registered")

	return s.issueSession(a)
}

// Login verifies credentials and returns a signed session. Missing accounts
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *admin.LoginRequest) (*admin.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	a, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrValidation)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrValidation)
	}
	return s.issueSession(a)
}

// GetAdmin returns the account behind an authenticated request.
func (s *AuthService) GetAdmin(ctx context.Context, email string) (*admin.Admin, error) {
	return s.adminRepo.GetByEmail(ctx, email)
}

// ValidateToken parses and verifies a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (string, string, error) {
	var claims adminClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid or expired token")
	}
	if claims.Subject == "" {
		return "", "", fmt.Errorf("invalid token")
	}
	return claims.Subject, claims.Name, nil
}

func (s *AuthService) issueSession(a *admin.Admin) (*admin.Session, error) {
	now := time.Now()
	claims := adminClaims{
		Name: a.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &admin.Session{Token: token, Email: a.Email, Name: a.Name}, nil
}
