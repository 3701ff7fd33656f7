package entity

import "time"

// EmailVerificationCode хранит хеш кода подтверждения email.
// Сам код отправляется письмом и в базе не хранится.
type EmailVerificationCode struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"userId"`
	Email        string     `gorm:"size:100;not null" json:"email"`
	CodeHash     string     `gorm:"size:64;not null" json:"-"`
	CodeSalt     string     `gorm:"size:64;not null" json:"-"`
	ExpiresAt    time.Time  `gorm:"not null;index" json:"expiresAt"`
	AttemptCount int        `gorm:"not null;default:0" json:"attemptCount"`
	MaxAttempts  int        `gorm:"not null;default:5" json:"maxAttempts"`
	LastSentAt   time.Time  `gorm:"not null" json:"lastSentAt"`
	ConsumedAt   *time.Time `gorm:"index" json:"consumedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// TableName определяет имя таблицы для GORM
func (EmailVerificationCode) TableName() string {
	return "email_verification_codes"
}

// IsConsumed проверяет, был ли код уже использован
func (e *EmailVerificationCode) IsConsumed() bool {
	return e.ConsumedAt != nil
}

// IsExpired проверяет срок действия кода
func (e *EmailVerificationCode) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// AttemptsExhausted проверяет, исчерпаны ли попытки ввода
func (e *EmailVerificationCode) AttemptsExhausted() bool {
	return e.AttemptCount >= e.MaxAttempts
}
