package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
	"github.com/yourusername/spacesnap-api/internal/handler/dto"
	"github.com/yourusername/spacesnap-api/internal/handler/helper"
	"github.com/yourusername/spacesnap-api/internal/service"
)

// multipart-запрос может быть немного больше самого файла
const uploadBodyOverhead = 1 << 20

// ImageService - операции каталога изображений
type ImageService interface {
	Upload(ctx context.Context, input service.UploadImageInput) (*entity.Image, error)
	Get(ctx context.Context, name string) (*entity.Image, []byte, error)
	List(ctx context.Context, filter repository.ImageFilter) ([]entity.Image, int64, error)
	Delete(ctx context.Context, name string) error
}

// ImageHandler обрабатывает запросы каталога изображений
type ImageHandler struct {
	imageService ImageService
}

// NewImageHandler создает обработчик изображений
func NewImageHandler(imageService ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// Upload загружает изображение из multipart-формы (поле image)
// POST /api/images
func (h *ImageHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+uploadBodyOverhead)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > service.MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image must not exceed 5 MB", "error_type": "file_too_large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image file"})
		return
	}

	var metadata entity.ImageMetadata
	if raw := strings.TrimSpace(c.PostForm("metadata")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "metadata must be a JSON object"})
			return
		}
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	img, err := h.imageService.Upload(c.Request.Context(), service.UploadImageInput{
		Name:         c.PostForm("name"),
		OriginalName: fileHeader.Filename,
		Category:     c.PostForm("category"),
		Subcategory:  c.PostForm("subcategory"),
		Description:  c.PostForm("description"),
		ContentType:  contentType,
		Data:         data,
		Tags:         splitTags(c.PostForm("tags")),
		Metadata:     metadata,
	})
	if err != nil {
		handleServiceError(c, "ImageHandler", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewImageResponse(img))
}

// Get отдает содержимое изображения
// GET /api/images/:name
func (h *ImageHandler) Get(c *gin.Context) {
	img, data, err := h.imageService.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		handleServiceError(c, "ImageHandler", err)
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000")
	c.Data(http.StatusOK, img.ContentType, data)
}

// List возвращает страницу каталога без содержимого изображений
// GET /api/images?category=&subcategory=&limit=&skip=
func (h *ImageHandler) List(c *gin.Context) {
	filter := repository.ImageFilter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Limit:       helper.QueryInt(c, "limit", 50),
		Offset:      helper.QueryInt(c, "skip", 0),
	}

	images, total, err := h.imageService.List(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, "ImageHandler", err)
		return
	}

	items := make([]*dto.ImageResponse, 0, len(images))
	for i := range images {
		items = append(items, dto.NewImageResponse(&images[i]))
	}
	c.JSON(http.StatusOK, dto.ImageListResponse{Images: items, Total: total, Limit: filter.Limit, Skip: filter.Offset})
}

// Delete удаляет изображение
// DELETE /api/images/:name
func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.imageService.Delete(c.Request.Context(), c.Param("name")); err != nil {
		handleServiceError(c, "ImageHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
