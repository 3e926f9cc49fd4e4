package usecase

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"section-notify-server/pkg/config"
)

// Claims carries the authenticated identity inside the access token
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthUsecase defines the interface for token-based authentication
type AuthUsecase interface {
	// GenerateToken issues an access token for the user
	GenerateToken(userID, role string) (string, error)

	// ValidateToken parses the token and returns the user id and role
	ValidateToken(token string) (userID, role string, err error)
}

type authUsecase struct {
	secret []byte
	expiry time.Duration
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(cfg *config.Config) AuthUsecase {
	return &authUsecase{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTAccessExpiry,
	}
}

func (u *authUsecase) GenerateToken(userID, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
}

func (u *authUsecase) ValidateToken(token string) (string, string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return u.secret, nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", "", errors.New("invalid token")
	}
	return claims.Subject, claims.Role, nil
}
