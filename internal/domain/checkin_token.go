package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// TokenStatus статус токена регистрации прибытия
type TokenStatus string

const (
	TokenIssued    TokenStatus = "issued"
	TokenCheckedIn TokenStatus = "checked_in"
	TokenExpired   TokenStatus = "expired"
	TokenConsumed  TokenStatus = "consumed"
)

// tokenPattern формат токена: 3 заглавные буквы + 3 цифры (например, QQQ001)
var tokenPattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

// IsValidTokenFormat проверяет формат токена без обращения к хранилищу
// Дешёвая отбраковка мусорного ввода до любых запросов к БД
func IsValidTokenFormat(token string) bool {
	return tokenPattern.MatchString(token)
}

// CheckInToken одноразовый токен прибытия для записи или walk-in очереди
// Токен эфемерный: после истечения срока действия удаляется janitor'ом
type CheckInToken struct {
	ID    int64
	Token string // Формат QQQ001

	// Ровно одна из ссылок заполнена
	AppointmentID *int64     // Для записей
	WalkInRef     *uuid.UUID // Для walk-in очереди

	SalonID int64
	Status  TokenStatus

	IssuedAt    time.Time
	ExpiresAt   time.Time
	CheckedInAt *time.Time
}

// IsExpiredAt возвращает true, если срок действия токена истёк к моменту now
func (t *CheckInToken) IsExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsActive возвращает true, если токен ещё можно предъявить
func (t *CheckInToken) IsActive() bool {
	return t.Status == TokenIssued
}

// IsWalkIn возвращает true для токенов walk-in очереди
func (t *CheckInToken) IsWalkIn() bool {
	return t.WalkInRef != nil
}
