package services

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/bst-coder/irrigation-last/config"
	"github.com/bst-coder/irrigation-last/models"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the authenticated principal extracted from an access token.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

// TokenService issues and verifies the JWT pair: a short-lived access
// token carrying the full identity and a long-lived refresh token
// carrying only the user id.
type TokenService struct {
	secret        []byte
	refreshSecret []byte
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret:        []byte(cfg.JWTSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
	}
}

// IssuePair signs an access/refresh token pair for the user.
func (s *TokenService) IssuePair(user *models.User) (access string, refresh string, err error) {
	now := time.Now()

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     now.Add(accessTokenTTL).Unix(),
	})
	access, err = accessToken.SignedString(s.secret)
	if err != nil {
		return "", "", err
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     now.Add(refreshTokenTTL).Unix(),
	})
	refresh, err = refreshToken.SignedString(s.refreshSecret)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Verify parses an access token and returns the identity it carries.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	identity := &Identity{UserID: uint(rawID)}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}
	return identity, nil
}
