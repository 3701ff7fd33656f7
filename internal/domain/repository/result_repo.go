package repository

import (
	"context"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
)

// ResultRepository определяет методы для работы с результатами квиза
type ResultRepository interface {
	Create(ctx context.Context, result *entity.QuizResult) error
	GetByID(ctx context.Context, id uint) (*entity.QuizResult, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]entity.QuizResult, error)
	// ListAll возвращает результаты в порядке создания, используется для выгрузки
	ListAll(ctx context.Context) ([]entity.QuizResult, error)
}
