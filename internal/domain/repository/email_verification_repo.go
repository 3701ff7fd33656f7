package repository

import (
	"context"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
)

// EmailVerificationRepository хранит выданные коды подтверждения email
type EmailVerificationRepository interface {
	Create(ctx context.Context, code *entity.EmailVerificationCode) error
	GetLatestActiveByUserID(ctx context.Context, userID uint) (*entity.EmailVerificationCode, error)
	IncrementAttempts(ctx context.Context, id uint) error
	MarkConsumed(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}
