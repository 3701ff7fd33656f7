package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// MaxImageSize - максимальный размер загружаемого изображения
const MaxImageSize = 5 << 20

const (
	defaultImageListLimit = 50
	maxImageListLimit     = 100
)

var imageNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// UploadImageInput - данные загружаемого изображения
type UploadImageInput struct {
	Name         string
	OriginalName string
	Category     string
	Subcategory  string
	Description  string
	ContentType  string
	Data         []byte
	Tags         []string
	Metadata     entity.ImageMetadata
}

// ImageService управляет каталогом изображений
type ImageService struct {
	imageRepo     repository.ImageRepository
	questionCache QuestionCache
}

// NewImageService создает сервис изображений. questionCache может быть nil.
func NewImageService(imageRepo repository.ImageRepository, questionCache QuestionCache) *ImageService {
	return &ImageService{imageRepo: imageRepo, questionCache: questionCache}
}

// Upload проверяет и сохраняет изображение
func (s *ImageService) Upload(ctx context.Context, input UploadImageInput) (*entity.Image, error) {
	if len(input.Data) == 0 {
		return nil, fmt.Errorf("%w: image file is empty", apperrors.ErrValidation)
	}
	if len(input.Data) > MaxImageSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", apperrors.ErrValidation, MaxImageSize)
	}

	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	if !contains(entity.ImageContentTypes, contentType) {
		return nil, fmt.Errorf("%w: unsupported content type %q", apperrors.ErrValidation, input.ContentType)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = entity.ImageCategoryGeneral
	}
	if !contains(entity.ImageCategories, category) {
		return nil, fmt.Errorf("%w: unknown image category %q", apperrors.ErrValidation, input.Category)
	}

	subcategory := strings.TrimSpace(input.Subcategory)
	metadata := input.Metadata
	if category == entity.ImageCategoryStyleRooms {
		if subcategory == "" {
			subcategory = metadata.Style
		}
		subcategory = entity.NormalizeStyleSlug(subcategory)
		if subcategory == "" {
			return nil, fmt.Errorf("%w: style-rooms images need a style subcategory", apperrors.ErrValidation)
		}
		if metadata.Style == "" {
			metadata.Style = subcategory
		}
	}
	if err := metadata.StylePoints.Validate(); err != nil {
		return nil, fmt.Errorf("%w: stylePoints: %v", apperrors.ErrValidation, err)
	}
	if category == entity.ImageCategoryQuizQuestions && !metadata.IsQuizAnswer() {
		log.Printf("[ImageService] Изображение %q в категории quiz-questions без полных метаданных ответа, в квиз не попадет",
			input.OriginalName)
	}
	if metadata.OriginalName == "" {
		metadata.OriginalName = input.OriginalName
	}

	name := buildImageName(input.Name, input.OriginalName, contentType)
	width, height := imageDimensions(input.Data)

	tags := entity.StringArray{}
	for _, tag := range input.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	img := &entity.Image{
		Name:        name,
		Category:    category,
		Subcategory: subcategory,
		Description: strings.TrimSpace(input.Description),
		Data:        base64.StdEncoding.EncodeToString(input.Data),
		ContentType: contentType,
		Size:        len(input.Data),
		Width:       width,
		Height:      height,
		Tags:        tags,
		Metadata:    metadata,
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		return nil, err
	}

	if img.Category == entity.ImageCategoryQuizQuestions {
		s.invalidateQuestions()
	}
	log.Printf("[ImageService] Загружено изображение %s (%s, %d байт)", img.Name, img.Category, img.Size)
	return img, nil
}

// Get возвращает изображение и его содержимое
func (s *ImageService) Get(ctx context.Context, name string) (*entity.Image, []byte, error) {
	img, err := s.imageRepo.GetByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	return img, data, nil
}

// List возвращает страницу изображений без содержимого
func (s *ImageService) List(ctx context.Context, filter repository.ImageFilter) ([]entity.Image, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultImageListLimit
	}
	if filter.Limit > maxImageListLimit {
		filter.Limit = maxImageListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.imageRepo.List(ctx, filter)
}

// Delete удаляет изображение по имени
func (s *ImageService) Delete(ctx context.Context, name string) error {
	img, err := s.imageRepo.DeleteByName(ctx, name)
	if err != nil {
		return err
	}
	if img.Category == entity.ImageCategoryQuizQuestions {
		s.invalidateQuestions()
	}
	log.Printf("[ImageService] Удалено изображение %s", name)
	return nil
}

func (s *ImageService) invalidateQuestions() {
	if s.questionCache == nil {
		return
	}
	if err := s.questionCache.Invalidate(); err != nil {
		log.Printf("[ImageService] Не удалось сбросить кеш вопросов: %v", err)
	}
}

// buildImageName возвращает безопасное имя файла, при отсутствии имени генерирует его
func buildImageName(name, originalName, contentType string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		ext := path.Ext(originalName)
		if ext == "" {
			ext = extensionFor(contentType)
		}
		return uuid.New().String() + strings.ToLower(ext)
	}
	name = imageNameSanitizer.ReplaceAllString(path.Base(name), "-")
	if path.Ext(name) == "" {
		name += extensionFor(contentType)
	}
	return name
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	}
	return ""
}

// imageDimensions читает размеры растровых форматов, для остальных возвращает нули
func imageDimensions(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
