package service

import (
	"context"
	"errors"
	"time"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/mailer"
	"reviewhub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// dummy bcrypt hash compared on lookup misses so that unknown-email and
// wrong-code failures take the same time and return the same error.
const dummyCodeHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e"

// Claims is the JWT payload for an access token.
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	RequestCode(ctx context.Context, email string) error
	ExchangeToken(ctx context.Context, email, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	mailer    mailer.Mailer
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, m mailer.Mailer, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		mailer:    m,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// RequestCode starts registration for an email address. A fresh address gets
// an inactive account; an existing inactive one gets its code regenerated; an
// already-active one is rejected. The raw code leaves the process only
// through the mailer.
func (s *authService) RequestCode(ctx context.Context, email string) error {
	code := auth.GenerateCode()
	hash, err := auth.HashCode(code)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.IsActive {
			return ErrEmailInUse
		}
		user.ConfirmationCode = &hash
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			Email:            email,
			Role:             models.RoleUser,
			ConfirmationCode: &hash,
			IsActive:         false,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
	default:
		return err
	}

	return s.mailer.SendConfirmationCode(ctx, email, code)
}

// ExchangeToken trades (email, code) for a bearer token. Unknown email and
// wrong code fail identically. On success the account is activated and the
// code is consumed: a second exchange with the same code fails.
func (s *authService) ExchangeToken(ctx context.Context, email, code string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		auth.VerifyCode(dummyCodeHash, code)
		return "", ErrInvalidCredentials
	}

	if user.ConfirmationCode == nil {
		auth.VerifyCode(dummyCodeHash, code)
		return "", ErrInvalidCredentials
	}

	if err := auth.VerifyCode(*user.ConfirmationCode, code); err != nil {
		return "", ErrInvalidCredentials
	}

	user.IsActive = true
	user.ConfirmationCode = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	var username string
	if user.Username != nil {
		username = *user.Username
	}

	claims := &Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
