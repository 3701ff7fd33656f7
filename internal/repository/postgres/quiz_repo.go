package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий курируемых квизов
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create сохраняет новый набор вопросов
func (r *QuizRepo) Create(ctx context.Context, quiz *entity.Quiz) error {
	if err := r.db.WithContext(ctx).Create(quiz).Error; err != nil {
		return fmt.Errorf("create quiz failed: %w", err)
	}
	return nil
}

// GetLatest возвращает последний сохраненный набор вопросов
func (r *QuizRepo) GetLatest(ctx context.Context) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.WithContext(ctx).Order("id DESC").First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get latest quiz failed: %w", err)
	}
	return &quiz, nil
}
