package dto

import (
	"time"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
)

// ImageResponse - метаданные изображения без содержимого
type ImageResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	URL         string               `json:"url"`
	Category    string               `json:"category"`
	Subcategory string               `json:"subcategory,omitempty"`
	Description string               `json:"description,omitempty"`
	ContentType string               `json:"contentType"`
	Size        int                  `json:"size"`
	Width       int                  `json:"width,omitempty"`
	Height      int                  `json:"height,omitempty"`
	Tags        []string             `json:"tags"`
	Metadata    entity.ImageMetadata `json:"metadata"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// NewImageResponse создает DTO изображения
func NewImageResponse(img *entity.Image) *ImageResponse {
	tags := []string(img.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &ImageResponse{
		ID:          img.ID,
		Name:        img.Name,
		URL:         img.URL(),
		Category:    img.Category,
		Subcategory: img.Subcategory,
		Description: img.Description,
		ContentType: img.ContentType,
		Size:        img.Size,
		Width:       img.Width,
		Height:      img.Height,
		Tags:        tags,
		Metadata:    img.Metadata,
		CreatedAt:   img.CreatedAt,
	}
}

// ImageListResponse - страница каталога изображений
type ImageListResponse struct {
	Images []*ImageResponse `json:"images"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Skip   int              `json:"skip"`
}
