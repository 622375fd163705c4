// README: User service implements register and login with JWT issuance.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"carpool/internal/types"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadRequest         = errors.New("bad request")
)

// Claims is the JWT payload attached to every authenticated request.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Roles Roles  `json:"roles"`
	jwt.RegisteredClaims
}

type Service struct {
	store    Store
	secret   []byte
	tokenTTL time.Duration
	logger   *slog.Logger
}

func NewService(store Store, secret string, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{store: store, secret: []byte(secret), tokenTTL: tokenTTL, logger: logger}
}

type RegisterCommand struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Roles    Roles
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Phone = strings.TrimSpace(cmd.Phone)
	switch {
	case cmd.Name == "", cmd.Email == "", cmd.Phone == "":
		return nil, ErrBadRequest
	case !strings.Contains(cmd.Email, "@"):
		return nil, ErrBadRequest
	case len(cmd.Password) < 6:
		return nil, ErrBadRequest
	case !cmd.Roles.Rider && !cmd.Roles.Driver:
		return nil, ErrBadRequest
	}

	if _, err := s.store.GetByEmail(ctx, cmd.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           types.ID(uuid.NewString()),
		Name:         cmd.Name,
		Email:        cmd.Email,
		Phone:        cmd.Phone,
		Roles:        cmd.Roles,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// Login verifies the password and returns a signed token for the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrBadRequest
	}

	u, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("user logged in", "user_id", u.ID, "email", u.Email)
	return token, u, nil
}

func (s *Service) issueToken(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Roles: u.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates the signature and expiry and returns the claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
