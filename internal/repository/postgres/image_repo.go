package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// ImageRepo реализует repository.ImageRepository
type ImageRepo struct {
	db *gorm.DB
}

// NewImageRepo создает новый репозиторий изображений
func NewImageRepo(db *gorm.DB) *ImageRepo {
	return &ImageRepo{db: db}
}

// Create сохраняет изображение. Повтор имени возвращает apperrors.ErrConflict.
func (r *ImageRepo) Create(ctx context.Context, image *entity.Image) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: image %q already exists", apperrors.ErrConflict, image.Name)
		}
		return fmt.Errorf("create image %q failed: %w", image.Name, err)
	}
	return nil
}

// GetByName возвращает изображение вместе с данными
func (r *ImageRepo) GetByName(ctx context.Context, name string) (*entity.Image, error) {
	var image entity.Image
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get image %q failed: %w", name, err)
	}
	return &image, nil
}

// List возвращает страницу изображений без данных и общее количество по фильтру
func (r *ImageRepo) List(ctx context.Context, filter repository.ImageFilter) ([]entity.Image, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&entity.Image{}).
		Scopes(imageFilterScope(filter)).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count images failed: %w", err)
	}

	var images []entity.Image
	err = r.db.WithContext(ctx).
		Omit("data").
		Scopes(imageFilterScope(filter)).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&images).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list images failed: %w", err)
	}
	return images, total, nil
}

func imageFilterScope(filter repository.ImageFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		if filter.Subcategory != "" {
			db = db.Where("subcategory = ?", filter.Subcategory)
		}
		return db
	}
}

// ListByCategory возвращает метаданные изображений категории в порядке загрузки
func (r *ImageRepo) ListByCategory(ctx context.Context, category string) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.WithContext(ctx).
		Omit("data").
		Where("category = ?", category).
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("list images in category %q failed: %w", category, err)
	}
	return images, nil
}

// ListByCategoryAndSubcategory возвращает метаданные изображений подкатегории в порядке загрузки
func (r *ImageRepo) ListByCategoryAndSubcategory(ctx context.Context, category, subcategory string) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.WithContext(ctx).
		Omit("data").
		Where("category = ? AND subcategory = ?", category, subcategory).
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("list images in %s/%s failed: %w", category, subcategory, err)
	}
	return images, nil
}

// DeleteByName удаляет изображение и возвращает его метаданные
func (r *ImageRepo) DeleteByName(ctx context.Context, name string) (*entity.Image, error) {
	var image entity.Image
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("data").Where("name = ?", name).First(&image).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		return tx.Delete(&entity.Image{}, image.ID).Error
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete image %q failed: %w", name, err)
	}
	return &image, nil
}
