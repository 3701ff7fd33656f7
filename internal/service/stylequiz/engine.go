package stylequiz

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// AssetCatalog ищет фото комнат, оформленных в стиле.
// Пустой список - нормальный результат.
type AssetCatalog interface {
	FindRoomImages(ctx context.Context, style string) ([]entity.RoomImage, error)
}

// StyleDescriptionStore хранит описания стилей.
// Отсутствие описания - apperrors.ErrNotFound.
type StyleDescriptionStore interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Style, error)
}

// Attempt - ответы одной попытки прохождения квиза
type Attempt struct {
	SessionID string
	UserID    *uint
	Answers   []entity.AnswerSelection
}

// Outcome - собранный результат и описание рекомендованного стиля
type Outcome struct {
	Result       *entity.QuizResult
	StyleDetails entity.Style
}

// Engine считает очки, выбирает стиль и собирает результат попытки.
// Не хранит состояния между вызовами и безопасен для параллельного использования.
type Engine struct {
	catalog *Catalog
	assets  AssetCatalog
	styles  StyleDescriptionStore
}

// NewEngine создает движок подбора стиля
func NewEngine(catalog *Catalog, assets AssetCatalog, styles StyleDescriptionStore) *Engine {
	return &Engine{catalog: catalog, assets: assets, styles: styles}
}

// Catalog возвращает справочник движка
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// BuildResult считает очки попытки по набору вопросов, выбирает стиль,
// подбирает фото комнат и описание стиля. Результат не сохраняется.
func (e *Engine) BuildResult(ctx context.Context, attempt Attempt, questions []entity.Question) (*Outcome, error) {
	tally := Score(attempt.Answers, questions)
	for _, u := range tally.Unresolved {
		log.Printf("[StyleQuiz] Сессия %s: пропущен ответ %q на вопрос %d, ссылка не найдена в наборе",
			attempt.SessionID, u.AnswerID, u.QuestionID)
	}

	recommended := Resolve(tally.Scores)
	imageStyle := e.catalog.ImageStyleFor(recommended)

	roomImages, err := e.assets.FindRoomImages(ctx, imageStyle)
	if err != nil {
		return nil, fmt.Errorf("find room images for %q: %w", imageStyle, err)
	}
	if roomImages == nil {
		roomImages = []entity.RoomImage{}
	}

	details, err := e.StyleDetails(ctx, recommended)
	if err != nil {
		return nil, err
	}

	answers := make(entity.AnswerSelections, len(attempt.Answers))
	copy(answers, attempt.Answers)

	result := &entity.QuizResult{
		UserID:            attempt.UserID,
		SessionID:         attempt.SessionID,
		Answers:           answers,
		SelectedArt:       tally.SelectedArt,
		SelectedFurniture: tally.SelectedFurniture,
		RecommendedStyle:  recommended,
		StyleScores:       tally.Scores,
		StyleRoomImages:   roomImages,
	}
	return &Outcome{Result: result, StyleDetails: details}, nil
}

// StyleDetails возвращает сохраненное описание стиля или встроенное
func (e *Engine) StyleDetails(ctx context.Context, slug string) (entity.Style, error) {
	stored, err := e.styles.GetBySlug(ctx, slug)
	if err == nil {
		return *stored, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return e.catalog.StyleDetails(slug), nil
	}
	return entity.Style{}, fmt.Errorf("get style details for %q: %w", slug, err)
}

// RoomImageLister отдает метаданные изображений подкатегории
type RoomImageLister interface {
	ListByCategoryAndSubcategory(ctx context.Context, category, subcategory string) ([]entity.Image, error)
}

// ImageRoomCatalog ищет фото комнат среди изображений категории style-rooms,
// подкатегория которых совпадает со стилем
type ImageRoomCatalog struct {
	images RoomImageLister
}

// NewImageRoomCatalog создает AssetCatalog поверх хранилища изображений
func NewImageRoomCatalog(images RoomImageLister) *ImageRoomCatalog {
	return &ImageRoomCatalog{images: images}
}

// FindRoomImages возвращает фото комнат стиля в порядке загрузки
func (c *ImageRoomCatalog) FindRoomImages(ctx context.Context, style string) ([]entity.RoomImage, error) {
	images, err := c.images.ListByCategoryAndSubcategory(ctx, entity.ImageCategoryStyleRooms, style)
	if err != nil {
		return nil, err
	}
	rooms := make([]entity.RoomImage, 0, len(images))
	for _, img := range images {
		rooms = append(rooms, entity.RoomImage{
			RoomType:  img.Metadata.RoomType,
			ImageURL:  entity.ImageURL(img.Name),
			ImageName: img.Name,
		})
	}
	return rooms, nil
}
