package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Create сохраняет результат прохождения квиза
func (r *ResultRepo) Create(ctx context.Context, result *entity.QuizResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("save quiz result failed: %w", err)
	}
	return nil
}

// GetByID возвращает результат по ID
func (r *ResultRepo) GetByID(ctx context.Context, id uint) (*entity.QuizResult, error) {
	var result entity.QuizResult
	err := r.db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get quiz result #%d failed: %w", id, err)
	}
	return &result, nil
}

// ListByUser возвращает результаты пользователя, новые первыми
func (r *ResultRepo) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]entity.QuizResult, error) {
	var results []entity.QuizResult
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("list quiz results for user #%d failed: %w", userID, err)
	}
	return results, nil
}

// ListAll возвращает все результаты в порядке создания
func (r *ResultRepo) ListAll(ctx context.Context) ([]entity.QuizResult, error) {
	var results []entity.QuizResult
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&results).Error; err != nil {
		return nil, fmt.Errorf("list quiz results failed: %w", err)
	}
	return results, nil
}
