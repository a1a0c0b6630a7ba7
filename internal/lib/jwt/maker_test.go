package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

var (
	loginDate = models.MustParseDate("2024-05-10")
	loginAt   = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	expiresAt = time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890")

	tests := []struct {
		name string
		user models.User
	}{
		{
			name: "admin",
			user: models.User{ID: models.AdminID, Name: "Gerente Geral", Role: models.RoleAdmin},
		},
		{
			name: "worker",
			user: models.User{ID: "0190a1b2-0000-7000-8000-000000000001", Name: "Ana", Role: models.RoleWorker},
		},
		{
			name: "worker with spaces in name",
			user: models.User{ID: "w2", Name: "João Mavila", Role: models.RoleWorker},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.user, loginDate, expiresAt)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token, loginAt)
			require.NoError(t, err)

			assert.Equal(t, tt.user, claims.User())
			assert.Equal(t, "2024-05-10", claims.LoginDate)
			assert.Equal(t, expiresAt, claims.ExpiresAt.Time.UTC())
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey)
	user := models.User{ID: "w1", Name: "Ana", Role: models.RoleWorker}

	validToken, err := maker.GenerateToken(user, loginDate, expiresAt)
	require.NoError(t, err)

	wrongSecret, err := NewJWTMaker("wrong_secret_key").GenerateToken(user, loginDate, expiresAt)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		Name: "Ana",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gym-manager",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		now   time.Time
	}{
		{name: "empty token", token: "", now: loginAt},
		{name: "malformed token", token: "invalid.token.here", now: loginAt},
		{name: "expired at next day", token: validToken, now: expiresAt.Add(time.Second)},
		{name: "wrong secret key", token: wrongSecret, now: loginAt},
		{name: "tampered token", token: validToken + "tampered", now: loginAt},
		{name: "alg none", token: noneToken, now: loginAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token, tt.now)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	maker := NewJWTMaker("test_secret_key")
	user := models.User{ID: "w1", Name: "Ana", Role: models.RoleWorker}

	token, err := maker.GenerateToken(user, loginDate, expiresAt)
	require.NoError(t, err)

	_, err = maker.ParseToken(token, expiresAt.Add(-time.Minute))
	require.NoError(t, err)

	_, err = maker.ParseToken(token, expiresAt.Add(time.Minute))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}
