package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sebastupa/testAssist/internal/domain/user"
	"github.com/sebastupa/testAssist/internal/pkg/jwt"
	"github.com/sebastupa/testAssist/internal/pkg/password"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserNotFound           = errors.New("user not found")
	ErrTooManyResets          = errors.New("too many reset attempts")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrInternal               = errors.New("internal error")
)

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// TokenPair carries the access/refresh pair issued on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ResetLimiter bounds reset-password attempts per email. Implementations are
// expected to fail open when the backing store is unavailable.
type ResetLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

type Service struct {
	users   user.Repository
	tokens  jwt.Service
	limiter ResetLimiter
}

func NewService(users user.Repository, tokens jwt.Service, limiter ResetLimiter) *Service {
	return &Service{users: users, tokens: tokens, limiter: limiter}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return user.User{}, ErrInvalidInput
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.CreateWithEmptyPreferences(ctx, u, uuid.New()); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, TokenPair, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return user.User{}, TokenPair{}, ErrInternal
	}

	if err := password.Compare(u.PasswordHash, in.Password); err != nil {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	return sanitize(u), pair, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, ErrInternal
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return pair, nil
}

// ResetPassword replaces the stored hash with one derived from a freshly
// generated temporary password and returns that plaintext. The caller is the
// only place the plaintext ever appears.
func (s *Service) ResetPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", ErrInvalidInput
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err == nil && !allowed {
			return "", ErrTooManyResets
		}
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternal
	}

	temp, err := password.NewTemporary()
	if err != nil {
		return "", ErrInternal
	}
	hash, err := password.Hash(temp)
	if err != nil {
		return "", ErrInternal
	}

	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternal
	}

	return temp, nil
}

func (s *Service) issueTokens(u user.User) (TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func sanitize(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
