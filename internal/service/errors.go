package service

import (
	"errors"
	"fmt"

	"github.com/yourusername/spacesnap-api/internal/service/stylequiz"
)

var (
	// ErrPersistenceFailure - результат квиза посчитан, но не сохранен
	ErrPersistenceFailure = errors.New("quiz result was computed but could not be saved")
	// ErrInvalidCredentials - неверный email или пароль
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Ошибки подтверждения email, по ним обработчики выставляют error_type
var (
	ErrInvalidVerificationCode      = errors.New("invalid_verification_code")
	ErrVerificationExpired          = errors.New("verification_expired")
	ErrVerificationAttemptsExceeded = errors.New("verification_attempts_exceeded")
	ErrVerificationResendCooldown   = errors.New("verification_resend_cooldown")
)

// PersistenceError возвращается, когда результат посчитан, но не записан в хранилище.
// Outcome содержит посчитанный результат без ID.
type PersistenceError struct {
	Outcome *stylequiz.Outcome
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%v: %v", ErrPersistenceFailure, e.Err)
}

// Unwrap позволяет проверять и ErrPersistenceFailure, и исходную ошибку хранилища
func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistenceFailure, e.Err}
}
