package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

const testPepper = "pepper"

func newVerificationServiceForTest(t *testing.T, now time.Time) (*EmailVerificationService, *MockUserRepository, *MockEmailVerificationRepository, *MockEmailService) {
	t.Helper()
	userRepo := new(MockUserRepository)
	codeRepo := new(MockEmailVerificationRepository)
	emailService := new(MockEmailService)
	svc, err := NewEmailVerificationService(userRepo, codeRepo, emailService, EmailVerificationConfig{CodePepper: testPepper})
	require.NoError(t, err)
	svc.now = func() time.Time { return now }
	return svc, userRepo, codeRepo, emailService
}

func activeCode(code string, now time.Time) *entity.EmailVerificationCode {
	return &entity.EmailVerificationCode{
		ID:          8,
		UserID:      1,
		CodeHash:    hashVerificationCode(code, "salt", testPepper),
		CodeSalt:    "salt",
		ExpiresAt:   now.Add(10 * time.Minute),
		MaxAttempts: 5,
		LastSentAt:  now.Add(-5 * time.Minute),
	}
}

func TestEmailVerificationService_SendCode(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, userRepo, codeRepo, emailService := newVerificationServiceForTest(t, now)
	ctx := context.Background()

	userRepo.On("GetByID", ctx, uint(1)).Return(&entity.User{ID: 1, Email: "anna@example.com"}, nil)
	codeRepo.On("GetLatestActiveByUserID", ctx, uint(1)).Return(nil, apperrors.ErrNotFound)
	codeRepo.On("Create", ctx, mock.AnythingOfType("*entity.EmailVerificationCode")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.EmailVerificationCode).ID = 21
		}).Return(nil)
	emailService.On("SendVerificationCode", ctx, "anna@example.com", mock.MatchedBy(func(code string) bool {
		return len(code) == 6
	}), "spacesnap-verify:1:21").Return(nil)

	require.NoError(t, svc.SendCode(ctx, 1))

	record := codeRepo.Calls[1].Arguments.Get(1).(*entity.EmailVerificationCode)
	assert.Equal(t, now.Add(15*time.Minute), record.ExpiresAt)
	assert.Equal(t, 5, record.MaxAttempts)
	assert.Len(t, record.CodeHash, 64)
	emailService.AssertExpectations(t)
}

func TestEmailVerificationService_SendCode_Cooldown(t *testing.T) {
	now := time.Now()
	svc, userRepo, codeRepo, emailService := newVerificationServiceForTest(t, now)
	ctx := context.Background()

	latest := activeCode("123456", now)
	latest.LastSentAt = now.Add(-10 * time.Second)
	userRepo.On("GetByID", ctx, uint(1)).Return(&entity.User{ID: 1, Email: "anna@example.com"}, nil)
	codeRepo.On("GetLatestActiveByUserID", ctx, uint(1)).Return(latest, nil)

	err := svc.SendCode(ctx, 1)

	assert.ErrorIs(t, err, ErrVerificationResendCooldown)
	emailService.AssertNotCalled(t, "SendVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEmailVerificationService_SendCode_AlreadyVerified(t *testing.T) {
	now := time.Now()
	svc, userRepo, codeRepo, _ := newVerificationServiceForTest(t, now)
	ctx := context.Background()
	userRepo.On("GetByID", ctx, uint(1)).Return(&entity.User{ID: 1, EmailVerifiedAt: &now}, nil)

	require.NoError(t, svc.SendCode(ctx, 1))
	codeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEmailVerificationService_ConfirmCode_Success(t *testing.T) {
	now := time.Now()
	svc, userRepo, codeRepo, _ := newVerificationServiceForTest(t, now)
	ctx := context.Background()

	userRepo.On("GetByID", ctx, uint(1)).Return(&entity.User{ID: 1}, nil)
	codeRepo.On("GetLatestActiveByUserID", ctx, uint(1)).Return(activeCode("123456", now), nil)
	codeRepo.On("MarkConsumed", ctx, uint(8)).Return(nil)
	userRepo.On("MarkEmailVerified", ctx, uint(1)).Return(nil)

	require.NoError(t, svc.ConfirmCode(ctx, 1, " 123456 "))
	userRepo.AssertExpectations(t)
}

func TestEmailVerificationService_ConfirmCode_WrongCode(t *testing.T) {
	now := time.Now()
	svc, userRepo, codeRepo, _ := newVerificationServiceForTest(t, now)
	ctx := context.Background()

	userRepo.On("GetByID", ctx, uint(1)).Return(&entity.User{ID: 1}, nil)
	codeRepo.On("GetLatestActiveByUserID", ctx, uint(1)).Return(activeCode("123456", now), nil)
	codeRepo.On("IncrementAttempts", ctx, uint(8)).Return(nil)

	err := svc.ConfirmCode(ctx, 1, "654321")

	assert.ErrorIs(t, err, ErrInvalidVerificationCode)
	codeRepo.AssertCalled(t, "IncrementAttempts", ctx, uint(8))
	userRepo.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
}

func TestEmailVerificationService_ConfirmCode_LastAttempt(t *testing.T) {
	now := time.Now()
	svc, userRepo, codeRepo, _ := newVerificationServiceForTest(t, now)
	ctx := context.Background()

	record := activeCode("123456", now)
	record.AttemptCount = 4
	userRepo.On("GetByID", ctx, uint(1)).Return(&entity.User{ID: 1}, nil)
	codeRepo.On("GetLatestActiveByUserID", ctx, uint(1)).Return(record, nil)
	codeRepo.On("IncrementAttempts", ctx, uint(8)).Return(nil)

	assert.ErrorIs(t, svc.ConfirmCode(ctx, 1, "000000"), ErrVerificationAttemptsExceeded)
}

func TestEmailVerificationService_ConfirmCode_Expired(t *testing.T) {
	now := time.Now()
	svc, userRepo, codeRepo, _ := newVerificationServiceForTest(t, now)
	ctx := context.Background()

	record := activeCode("123456", now)
	record.ExpiresAt = now.Add(-time.Second)
	userRepo.On("GetByID", ctx, uint(1)).Return(&entity.User{ID: 1}, nil)
	codeRepo.On("GetLatestActiveByUserID", ctx, uint(1)).Return(record, nil)

	assert.ErrorIs(t, svc.ConfirmCode(ctx, 1, "123456"), ErrVerificationExpired)
}

func TestEmailVerificationService_ConfirmCode_NoCode(t *testing.T) {
	now := time.Now()
	svc, userRepo, codeRepo, _ := newVerificationServiceForTest(t, now)
	ctx := context.Background()
	userRepo.On("GetByID", ctx, uint(1)).Return(&entity.User{ID: 1}, nil)
	codeRepo.On("GetLatestActiveByUserID", ctx, uint(1)).Return(nil, apperrors.ErrNotFound)

	assert.ErrorIs(t, svc.ConfirmCode(ctx, 1, "123456"), ErrInvalidVerificationCode)
	assert.ErrorIs(t, svc.ConfirmCode(ctx, 1, "   "), apperrors.ErrValidation)
}

func TestEmailVerificationService_GetStatus(t *testing.T) {
	now := time.Now()
	svc, userRepo, codeRepo, _ := newVerificationServiceForTest(t, now)
	ctx := context.Background()

	record := activeCode("123456", now)
	record.LastSentAt = now.Add(-20 * time.Second)
	record.AttemptCount = 2
	userRepo.On("GetByID", ctx, uint(1)).Return(&entity.User{ID: 1, Email: "anna@example.com"}, nil)
	codeRepo.On("GetLatestActiveByUserID", ctx, uint(1)).Return(record, nil)

	status, err := svc.GetStatus(ctx, 1)

	require.NoError(t, err)
	assert.False(t, status.EmailVerified)
	assert.False(t, status.CanSendCode)
	assert.InDelta(t, 40, status.CooldownRemainingSec, 1)
	assert.Equal(t, 3, status.AttemptsLeft)
	require.NotNil(t, status.ExpiresAt)
}

func TestEmailVerificationService_GetStatus_RepoFailure(t *testing.T) {
	now := time.Now()
	svc, userRepo, codeRepo, _ := newVerificationServiceForTest(t, now)
	ctx := context.Background()
	userRepo.On("GetByID", ctx, uint(1)).Return(&entity.User{ID: 1}, nil)
	codeRepo.On("GetLatestActiveByUserID", ctx, uint(1)).Return(nil, errors.New("db down"))

	_, err := svc.GetStatus(ctx, 1)

	assert.Error(t, err)
}

func TestResendRetryDelay_NonRetryable(t *testing.T) {
	_, retry := resendRetryDelay(errors.New("invalid api key"), 0)
	assert.False(t, retry)

	wait, retry := resendRetryDelay(errors.New("request timeout"), 1)
	assert.True(t, retry)
	assert.Equal(t, time.Second, wait)
}
