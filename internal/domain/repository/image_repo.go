package repository

import (
	"context"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
)

// ImageFilter задает выборку изображений для списка
type ImageFilter struct {
	Category    string
	Subcategory string
	Limit       int
	Offset      int
}

// ImageRepository определяет методы для работы с изображениями
type ImageRepository interface {
	Create(ctx context.Context, image *entity.Image) error
	// GetByName возвращает изображение вместе с данными
	GetByName(ctx context.Context, name string) (*entity.Image, error)
	// List возвращает страницу изображений без поля Data и общее количество
	List(ctx context.Context, filter ImageFilter) ([]entity.Image, int64, error)
	// ListByCategory возвращает метаданные всех изображений категории без поля Data
	ListByCategory(ctx context.Context, category string) ([]entity.Image, error)
	ListByCategoryAndSubcategory(ctx context.Context, category, subcategory string) ([]entity.Image, error)
	DeleteByName(ctx context.Context, name string) (*entity.Image, error)
}
