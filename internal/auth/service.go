package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidLogin is returned when the email or password does not match.
// Wrong-email and wrong-password are deliberately indistinguishable.
var ErrInvalidLogin = errors.New("invalid email or password")

// Service provides account operations: registration, login and token issuance.
type Service struct {
	users      UserRepository
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewService creates a new auth Service.
func NewService(users UserRepository, secret string, tokenTTL time.Duration, bcryptCost int) *Service {
	return &Service{
		users:      users,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account and issues its first token.
func (s *Service) Register(ctx context.Context, email, name, password string) (*User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.IssueToken(user.ID.String())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login resolves an email/password pair to a user and issues a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidLogin
		}
		return nil, "", fmt.Errorf("finding user by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidLogin
	}

	token, err := s.IssueToken(user.ID.String())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// IssueToken signs a bearer token carrying the user id under the canonical
// userId claim.
func (s *Service) IssueToken(userID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNotConfigured
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}
