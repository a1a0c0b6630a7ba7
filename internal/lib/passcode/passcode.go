// Package passcode хэширует и проверяет коды доступа сотрудников.
//
// Коды из конфига хэшируются при старте, в снапшотах хранится только bcrypt-хэш.
package passcode

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Length длина кода доступа.
const Length = 4

// Hash возвращает bcrypt-хэш кода.
func Hash(code string) (string, error) {
	const op = "passcode.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare проверяет код по хэшу. Возвращает nil, если код подходит.
func Compare(hash, code string) error {
	const op = "passcode.Compare"
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Matches удобная обертка над Compare для проверок в условиях.
func Matches(hash, code string) bool {
	return hash != "" && Compare(hash, code) == nil
}

// WellFormed сообщает, состоит ли код ровно из Length цифр.
func WellFormed(code string) bool {
	if len(code) != Length {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
