package repository

import (
	"context"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
)

// QuizRepository хранит курируемые наборы вопросов.
// Активным считается последний созданный набор.
type QuizRepository interface {
	Create(ctx context.Context, quiz *entity.Quiz) error
	// GetLatest возвращает apperrors.ErrNotFound, если наборов нет
	GetLatest(ctx context.Context) (*entity.Quiz, error)
}
