package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

const maxNameLength = 256

// emailRx is a deliberately loose shape check; deliverability is not this
// layer's problem.
var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthOptions carries the token and password-policy settings.
type AuthOptions struct {
	SecurityKey        string
	Issuer             string
	Audience           string
	ExpirationMinutes  int
	MinPasswordLength  int
	RequireUniqueEmail bool
}

// AuthService implements registration and login with JWT issuance.
type AuthService struct {
	repo   ports.UserRepository
	opts   AuthOptions
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, opts AuthOptions, logger zerolog.Logger) *AuthService {
	if opts.ExpirationMinutes <= 0 {
		opts.ExpirationMinutes = 60
	}
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = 6
	}
	return &AuthService{repo: repo, opts: opts, logger: logger}
}

// Register validates the input and persists a new identity. All violations
// are collected and reported together; registration never fails fast on the
// first error.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)

	var violations []string
	switch {
	case email == "":
		violations = append(violations, "email is required")
	case !emailRx.MatchString(email):
		violations = append(violations, "email is not a valid email address")
	}
	if len(input.Password) < s.opts.MinPasswordLength {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters", s.opts.MinPasswordLength))
	}
	if strings.TrimSpace(input.FirstName) == "" {
		violations = append(violations, "first name is required")
	} else if len(input.FirstName) > maxNameLength {
		violations = append(violations, fmt.Sprintf("first name must be at most %d characters", maxNameLength))
	}
	if len(input.LastName) > maxNameLength {
		violations = append(violations, fmt.Sprintf("last name must be at most %d characters", maxNameLength))
	}

	if s.opts.RequireUniqueEmail && email != "" && emailRx.MatchString(email) {
		_, err := s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			violations = append(violations, fmt.Sprintf("email %q is already taken", email))
		case !errors.Is(err, domain.ErrUserNotFound):
			return nil, err
		}
	}

	if err := domain.NewValidationError(violations); err != nil {
		s.logger.Warn().Str("email", email).Strs("violations", violations).Msg("registration rejected")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// Lost a race on the unique index: report it the same way as the
		// up-front uniqueness check.
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.NewValidationError([]string{fmt.Sprintf("email %q is already taken", email)})
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies the credential and issues a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("email", email).Msg("login failed")
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	return &ports.LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// generateToken assembles the claim set and signs it with HS256. Expiry is
// always issuance time plus the configured minutes.
func (s *AuthService) generateToken(user *domain.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(s.opts.ExpirationMinutes) * time.Minute)

	claims := jwt.MapClaims{}

	// Supplemental claims stored on the identity pass through verbatim, but
	// must not shadow the registered claims assembled below.
	for k, v := range user.Claims {
		claims[k] = v
	}

	claims["sid"] = user.ID
	claims["sub"] = user.Email
	claims["jti"] = uuid.NewString()
	claims["name"] = user.Email
	claims["email"] = user.Email
	claims["given_name"] = user.FirstName
	claims["family_name"] = user.LastName
	if len(user.Roles) > 0 {
		claims["roles"] = user.Roles
	}
	claims["iss"] = s.opts.Issuer
	claims["aud"] = s.opts.Audience
	claims["nbf"] = now.Unix()
	claims["iat"] = now.Unix()
	claims["exp"] = expiresAt.Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.opts.SecurityKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
