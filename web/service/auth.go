package service

import (
	"errors"
	"time"

	"github.com/confetti-cuisine/confetti/config"
	"github.com/confetti-cuisine/confetti/database/model"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// AuthService signs and verifies the JWTs handed out by the API login.
type AuthService struct {
	JWTSecret []byte
}

func NewAuthService() *AuthService {
	return &AuthService{JWTSecret: []byte(config.GetJWTSecret())}
}

func (s *AuthService) IssueToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"data": user.Id,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

// VerifyToken returns the user id carried by a valid, unexpired token.
func (s *AuthService) VerifyToken(tokenStr string) (int, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return s.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, ok := claims["data"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int(id), nil
}
