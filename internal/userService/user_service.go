package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/config"
	"auction-services/internal/models"
	"auction-services/internal/reporting"
	"auction-services/internal/repository"
	"auction-services/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	// MaxPasswordLength is bcrypt's input limit in bytes
	MaxPasswordLength = 72
	DefaultPageSize   = 100
)

// Registration is the input of Register
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Profile carries the editable user fields
type Profile struct {
	FirstName string
	LastName  string
	Email     string
}

// Token is an issued access token
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UserService manages identities and issues HS256 access tokens
type UserService struct {
	repo repository.UserStore
	auth config.AuthConfig
	now  func() time.Time
}

// NewUserService creates a new UserService instance
func NewUserService(repo repository.UserStore, auth config.AuthConfig) *UserService {
	return &UserService{
		repo: repo,
		auth: auth,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("service: %w - malformed email", auctionerrors.ErrInvalidUser)
	}
	return email, nil
}

// Register creates a user with a bcrypt-hashed password
func (s *UserService) Register(ctx context.Context, reg Registration) (models.User, error) {
	email, err := normalizeEmail(reg.Email)
	if err != nil {
		return models.User{}, err
	}
	if len(reg.Password) < MinPasswordLength {
		return models.User{}, fmt.Errorf("service: %w - password must be at least %d characters", auctionerrors.ErrInvalidUser, MinPasswordLength)
	}
	if len(reg.Password) > MaxPasswordLength {
		return models.User{}, fmt.Errorf("service: %w - password must be at most %d bytes", auctionerrors.ErrInvalidUser, MaxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.auth.BcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to hash password: %w", err)
	}

	now := s.now()
	user := models.User{
		ID:           utils.GenerateID(),
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("service: failed to register %s: %w", email, err)
	}
	return user, nil
}

// GetUser returns a single user
func (s *UserService) GetUser(ctx context.Context, id string) (models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to get user %s: %w", id, err)
	}
	return user, nil
}

// ListUsers returns a page of users. limit <= 0 means DefaultPageSize.
func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	if skip < 0 {
		return nil, fmt.Errorf("service: %w - negative skip", auctionerrors.ErrInvalidUser)
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	users, err := s.repo.ListUsers(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser replaces names and email
func (s *UserService) UpdateUser(ctx context.Context, id string, p Profile) (models.User, error) {
	email, err := normalizeEmail(p.Email)
	if err != nil {
		return models.User{}, err
	}

	err = s.repo.UpdateUser(ctx, models.User{
		ID:        id,
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     email,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to update user %s: %w", id, err)
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes a user
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete user %s: %w", id, err)
	}
	return nil
}

// Login checks credentials and issues a signed token. Unknown email and wrong password fail the same way.
func (s *UserService) Login(ctx context.Context, email, password string) (Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, auctionerrors.ErrNotFound) {
		return Token{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}
	if err != nil {
		return Token{}, fmt.Errorf("service: failed to look up %s: %w", email, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Token{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}

	now := s.now()
	expires := now.Add(s.auth.JWTTTL)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}).SignedString([]byte(s.auth.JWTSecret))
	if err != nil {
		return Token{}, fmt.Errorf("service: failed to sign token: %w", err)
	}

	return Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expires}, nil
}

// VerifyToken parses an access token and returns the user it was issued to
func (s *UserService) VerifyToken(ctx context.Context, raw string) (models.User, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.auth.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return models.User{}, fmt.Errorf("service: %w: %v", auctionerrors.ErrInvalidToken, err)
	}

	user, err := s.repo.GetUser(ctx, claims.Subject)
	if errors.Is(err, auctionerrors.ErrNotFound) {
		return models.User{}, fmt.Errorf("service: %w - user no longer exists", auctionerrors.ErrInvalidToken)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to load token subject: %w", err)
	}
	return user, nil
}

// Report counts registered users over the requested trailing windows
func (s *UserService) Report(ctx context.Context, windows []reporting.Window) (reporting.Report[models.UserStats], error) {
	report, err := reporting.Build(ctx, s.now(), windows, s.repo.UserStats)
	if err != nil {
		return reporting.Report[models.UserStats]{}, fmt.Errorf("service: failed to build user report: %w", err)
	}
	return report, nil
}
