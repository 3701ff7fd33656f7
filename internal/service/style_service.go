package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
	"github.com/yourusername/spacesnap-api/internal/service/stylequiz"
)

// StyleService отдает описания стилей: сохраненные в базе или встроенные
type StyleService struct {
	styleRepo repository.StyleRepository
	catalog   *stylequiz.Catalog
}

// NewStyleService создает сервис стилей
func NewStyleService(styleRepo repository.StyleRepository, catalog *stylequiz.Catalog) *StyleService {
	return &StyleService{styleRepo: styleRepo, catalog: catalog}
}

// List возвращает все стили. Сохраненное описание заменяет встроенное с тем же slug.
func (s *StyleService) List(ctx context.Context) ([]entity.Style, error) {
	stored, err := s.styleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]entity.Style, len(stored))
	for _, style := range s.catalog.AllStyleDetails() {
		bySlug[style.Slug] = style
	}
	for _, style := range stored {
		bySlug[style.Slug] = style
	}

	styles := make([]entity.Style, 0, len(bySlug))
	for _, style := range bySlug {
		styles = append(styles, style)
	}
	sort.Slice(styles, func(i, j int) bool {
		return styles[i].Slug < styles[j].Slug
	})
	return styles, nil
}

// Get возвращает описание стиля по slug
func (s *StyleService) Get(ctx context.Context, slug string) (*entity.Style, error) {
	slug = entity.NormalizeStyleSlug(slug)
	style, err := s.styleRepo.GetBySlug(ctx, slug)
	if err == nil {
		return style, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if !s.catalog.HasStyleDetails(slug) {
		return nil, fmt.Errorf("%w: style %q", apperrors.ErrNotFound, slug)
	}
	builtin := s.catalog.StyleDetails(slug)
	return &builtin, nil
}

// Upsert сохраняет описание стиля
func (s *StyleService) Upsert(ctx context.Context, style *entity.Style) error {
	style.Slug = entity.NormalizeStyleSlug(style.Slug)
	style.Name = strings.TrimSpace(style.Name)
	style.Description = strings.TrimSpace(style.Description)

	if style.Slug == "" || strings.Contains(style.Slug, "/") {
		return fmt.Errorf("%w: invalid style id %q", apperrors.ErrValidation, style.Slug)
	}
	if style.Name == "" || style.Description == "" {
		return fmt.Errorf("%w: name and description are required", apperrors.ErrValidation)
	}
	if style.Characteristics == nil {
		style.Characteristics = entity.StringArray{}
	}
	if style.ColorPalette == nil {
		style.ColorPalette = entity.StringArray{}
	}
	if style.KeyElements == nil {
		style.KeyElements = entity.StringArray{}
	}
	return s.styleRepo.Upsert(ctx, style)
}
