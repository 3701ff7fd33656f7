package repository

import (
	"context"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
)

// StyleRepository определяет методы для работы с описаниями стилей
type StyleRepository interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Style, error)
	List(ctx context.Context) ([]entity.Style, error)
	// Upsert создает стиль или обновляет существующий с тем же slug
	Upsert(ctx context.Context, style *entity.Style) error
}
