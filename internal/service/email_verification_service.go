package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// EmailVerificationStatus - состояние подтверждения email пользователя
type EmailVerificationStatus struct {
	Email                string     `json:"email"`
	EmailVerified        bool       `json:"emailVerified"`
	CanSendCode          bool       `json:"canSendCode"`
	CooldownRemainingSec int        `json:"cooldownRemainingSec"`
	ExpiresAt            *time.Time `json:"expiresAt,omitempty"`
	AttemptsLeft         int        `json:"attemptsLeft"`
}

// EmailVerificationConfig - параметры кодов подтверждения
type EmailVerificationConfig struct {
	CodeTTL        time.Duration
	ResendCooldown time.Duration
	MaxAttempts    int
	CodePepper     string
}

// EmailVerificationService выдает и проверяет шестизначные коды подтверждения email
type EmailVerificationService struct {
	userRepo     repository.UserRepository
	codeRepo     repository.EmailVerificationRepository
	emailService EmailService
	cfg          EmailVerificationConfig
	now          func() time.Time
}

// NewEmailVerificationService создает сервис подтверждения email
func NewEmailVerificationService(
	userRepo repository.UserRepository,
	codeRepo repository.EmailVerificationRepository,
	emailService EmailService,
	cfg EmailVerificationConfig,
) (*EmailVerificationService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if codeRepo == nil {
		return nil, fmt.Errorf("email verification repository is required")
	}
	if emailService == nil {
		return nil, fmt.Errorf("email service is required")
	}
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 15 * time.Minute
	}
	if cfg.ResendCooldown <= 0 {
		cfg.ResendCooldown = 60 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}

	return &EmailVerificationService{
		userRepo:     userRepo,
		codeRepo:     codeRepo,
		emailService: emailService,
		cfg:          cfg,
		now:          time.Now,
	}, nil
}

// SendCode выдает новый код и отправляет его письмом.
// Для уже подтвержденного email ничего не делает.
func (s *EmailVerificationService) SendCode(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsEmailVerified() {
		return nil
	}

	now := s.now()
	latest, err := s.codeRepo.GetLatestActiveByUserID(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if latest != nil && now.Before(latest.LastSentAt.Add(s.cfg.ResendCooldown)) {
		return fmt.Errorf("%w: please wait before requesting a new code", ErrVerificationResendCooldown)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}
	salt, err := generateVerificationSalt()
	if err != nil {
		return fmt.Errorf("failed to generate verification salt: %w", err)
	}

	record := &entity.EmailVerificationCode{
		UserID:      user.ID,
		Email:       user.Email,
		CodeHash:    hashVerificationCode(code, salt, s.cfg.CodePepper),
		CodeSalt:    salt,
		ExpiresAt:   now.Add(s.cfg.CodeTTL),
		MaxAttempts: s.cfg.MaxAttempts,
		LastSentAt:  now,
	}
	if err := s.codeRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to create verification record: %w", err)
	}

	idempotencyKey := fmt.Sprintf("spacesnap-verify:%d:%d", user.ID, record.ID)
	if err := s.emailService.SendVerificationCode(ctx, user.Email, code, idempotencyKey); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// ConfirmCode проверяет код и отмечает email подтвержденным
func (s *EmailVerificationService) ConfirmCode(ctx context.Context, userID uint, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: empty verification code", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsEmailVerified() {
		return nil
	}

	record, err := s.codeRepo.GetLatestActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrInvalidVerificationCode
		}
		return err
	}

	if record.IsConsumed() {
		return ErrInvalidVerificationCode
	}
	if record.IsExpired(s.now()) {
		return ErrVerificationExpired
	}
	if record.AttemptsExhausted() {
		return ErrVerificationAttemptsExceeded
	}

	expectedHash := hashVerificationCode(code, record.CodeSalt, s.cfg.CodePepper)
	if subtle.ConstantTimeCompare([]byte(expectedHash), []byte(record.CodeHash)) != 1 {
		if err := s.codeRepo.IncrementAttempts(ctx, record.ID); err != nil {
			log.Printf("[EmailVerification] Не удалось учесть попытку для кода %d: %v", record.ID, err)
		}
		if record.AttemptCount+1 >= record.MaxAttempts {
			return ErrVerificationAttemptsExceeded
		}
		return ErrInvalidVerificationCode
	}

	if err := s.codeRepo.MarkConsumed(ctx, record.ID); err != nil {
		return fmt.Errorf("failed to mark verification code consumed: %w", err)
	}
	if err := s.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark user email verified: %w", err)
	}
	log.Printf("[EmailVerification] Email пользователя %d подтвержден", userID)
	return nil
}

// GetStatus возвращает состояние подтверждения для клиента
func (s *EmailVerificationService) GetStatus(ctx context.Context, userID uint) (*EmailVerificationStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &EmailVerificationStatus{
		Email:         user.Email,
		EmailVerified: user.IsEmailVerified(),
		CanSendCode:   !user.IsEmailVerified(),
		AttemptsLeft:  s.cfg.MaxAttempts,
	}
	if user.IsEmailVerified() {
		status.AttemptsLeft = 0
		return status, nil
	}

	latest, err := s.codeRepo.GetLatestActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return status, nil
		}
		return nil, err
	}

	now := s.now()
	if !latest.IsExpired(now) && !latest.IsConsumed() {
		exp := latest.ExpiresAt
		status.ExpiresAt = &exp
		status.AttemptsLeft = latest.MaxAttempts - latest.AttemptCount
		if status.AttemptsLeft < 0 {
			status.AttemptsLeft = 0
		}
	}

	cooldownRemaining := int(latest.LastSentAt.Add(s.cfg.ResendCooldown).Sub(now).Seconds())
	if cooldownRemaining > 0 {
		status.CanSendCode = false
		status.CooldownRemainingSec = cooldownRemaining
	}

	if latest.AttemptsExhausted() {
		status.AttemptsLeft = 0
		status.CanSendCode = true
		status.CooldownRemainingSec = 0
	}
	return status, nil
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func generateVerificationSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashVerificationCode(code, salt, pepper string) string {
	sum := sha256.Sum256([]byte(pepper + ":" + salt + ":" + code))
	return hex.EncodeToString(sum[:])
}
