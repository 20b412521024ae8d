package service

import (
	"testing"
	"time"

	"github.com/confetti-cuisine/confetti/database/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceRoundTrip(t *testing.T) {
	s := &AuthService{JWTSecret: []byte("test-secret")}

	token, err := s.IssueToken(&model.User{Id: 7})
	require.NoError(t, err)

	id, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, id)
}

func TestAuthServiceRejects(t *testing.T) {
	s := &AuthService{JWTSecret: []byte("test-secret")}

	other := &AuthService{JWTSecret: []byte("other-secret")}
	foreign, err := other.IssueToken(&model.User{Id: 7})
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"data": 7,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}).SignedString(s.JWTSecret)
	require.NoError(t, err)

	noData, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(s.JWTSecret)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":       "not-a-token",
		"wrong secret":  foreign,
		"expired":       expired,
		"missing claim": noData,
	} {
		_, err := s.VerifyToken(token)
		assert.Error(t, err, name)
	}
}
