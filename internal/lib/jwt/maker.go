// Package jwt выпускает и проверяет токены сессии сотрудников.
//
// Токен действует до начала следующего рабочего дня: срок передается явно при выпуске,
// а дата входа хранится в claims и сверяется с текущей датой при проверке.
package jwt

import (
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Maker описывает выпуск и разбор токенов сессии.
type Maker interface {
	// GenerateToken подписывает токен для пользователя с датой входа и сроком действия.
	GenerateToken(user models.User, loginDate models.Date, expiresAt time.Time) (string, error)
	// ParseToken проверяет подпись и срок на момент now и возвращает claims.
	ParseToken(tokenStr string, now time.Time) (*SessionClaims, error)
}

// MakerImpl реализует Maker на HMAC-SHA256 с общим секретом.
type MakerImpl struct {
	secretKey string
	issuer    string
}

// NewJWTMaker создаёт MakerImpl с секретным ключом.
func NewJWTMaker(secretKey string) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		issuer:    "gym-manager",
	}
}
