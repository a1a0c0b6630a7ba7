// Package models содержит доменные структуры спортзала: сотрудники, абонементы,
// разовые посещения, сессия входа, а также строки отчетов и входные запросы API.
package models

import "time"

// Role роль сотрудника.
type Role string

const (
	// RoleWorker сотрудник на ресепшене.
	RoleWorker Role = "worker"
	// RoleAdmin управляющий.
	RoleAdmin Role = "admin"
)

// AdminID фиксированный идентификатор управляющего. Управляющий не хранится в списке сотрудников.
const AdminID = "admin-master"

// User сотрудник или управляющий.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	PasscodeHash string     `json:"passcode_hash,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// IsAdmin сообщает, является ли пользователь управляющим.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public возвращает копию без хэша кода доступа, для ответов API.
func (u User) Public() User {
	u.PasscodeHash = ""
	return u
}

// Session текущая сессия входа. Действует только в день входа.
type Session struct {
	User      User      `json:"user"`
	LoginDate Date      `json:"login_date"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidAt сообщает, действует ли сессия в момент now.
func (s Session) ValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
