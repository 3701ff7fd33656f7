package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// EmailVerificationRepo реализует repository.EmailVerificationRepository
type EmailVerificationRepo struct {
	db *gorm.DB
}

func NewEmailVerificationRepo(db *gorm.DB) *EmailVerificationRepo {
	return &EmailVerificationRepo{db: db}
}

func (r *EmailVerificationRepo) Create(ctx context.Context, code *entity.EmailVerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *EmailVerificationRepo) GetLatestActiveByUserID(ctx context.Context, userID uint) (*entity.EmailVerificationCode, error) {
	var code entity.EmailVerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND consumed_at IS NULL", userID).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest active verification code: %w", err)
	}
	return &code, nil
}

func (r *EmailVerificationRepo) IncrementAttempts(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.EmailVerificationCode{}).
		Where("id = ?", id).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}

func (r *EmailVerificationRepo) MarkConsumed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.EmailVerificationCode{}).
		Where("id = ?", id).
		UpdateColumn("consumed_at", time.Now()).Error
}

func (r *EmailVerificationRepo) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.EmailVerificationCode{}).Error
}
