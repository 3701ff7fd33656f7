package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// StyleRepo реализует repository.StyleRepository
type StyleRepo struct {
	db *gorm.DB
}

// NewStyleRepo создает новый репозиторий стилей
func NewStyleRepo(db *gorm.DB) *StyleRepo {
	return &StyleRepo{db: db}
}

// GetBySlug возвращает стиль по идентификатору
func (r *StyleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Style, error) {
	var style entity.Style
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&style).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get style %q failed: %w", slug, err)
	}
	return &style, nil
}

// List возвращает все стили
func (r *StyleRepo) List(ctx context.Context) ([]entity.Style, error) {
	var styles []entity.Style
	if err := r.db.WithContext(ctx).Order("slug ASC").Find(&styles).Error; err != nil {
		return nil, fmt.Errorf("list styles failed: %w", err)
	}
	return styles, nil
}

// Upsert создает стиль или обновляет описание существующего
func (r *StyleRepo) Upsert(ctx context.Context, style *entity.Style) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "characteristics", "color_palette", "key_elements", "image", "updated_at",
		}),
	}).Create(style).Error
	if err != nil {
		return fmt.Errorf("upsert style %q failed: %w", style.Slug, err)
	}
	return nil
}
