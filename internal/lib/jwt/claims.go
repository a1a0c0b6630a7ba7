package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// SessionClaims данные сотрудника в токене. Subject содержит ID пользователя.
type SessionClaims struct {
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	LoginDate string      `json:"login_date"`
	jwt.RegisteredClaims
}

// User восстанавливает пользователя из claims.
func (c *SessionClaims) User() models.User {
	return models.User{
		ID:   c.Subject,
		Name: c.Name,
		Role: c.Role,
	}
}

// GenerateToken создает подписанный токен сессии.
func (j *MakerImpl) GenerateToken(user models.User, loginDate models.Date, expiresAt time.Time) (string, error) {
	const op = "jwt.GenerateToken"
	claims := SessionClaims{
		Name:      user.Name,
		Role:      user.Role,
		LoginDate: loginDate.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken проверяет подпись, алгоритм, издателя и срок действия на момент now.
func (j *MakerImpl) ParseToken(tokenStr string, now time.Time) (*SessionClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
