package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/handler/dto"
)

// StyleService - операции со справочником стилей
type StyleService interface {
	List(ctx context.Context) ([]entity.Style, error)
	Get(ctx context.Context, slug string) (*entity.Style, error)
	Upsert(ctx context.Context, style *entity.Style) error
}

// StyleHandler обрабатывает запросы справочника стилей
type StyleHandler struct {
	styleService StyleService
}

// NewStyleHandler создает обработчик стилей
func NewStyleHandler(styleService StyleService) *StyleHandler {
	return &StyleHandler{styleService: styleService}
}

// List GET /api/styles
func (h *StyleHandler) List(c *gin.Context) {
	styles, err := h.styleService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, "StyleHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"styles": styles})
}

// Get GET /api/styles/:id
func (h *StyleHandler) Get(c *gin.Context) {
	style, err := h.styleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, "StyleHandler", err)
		return
	}
	c.JSON(http.StatusOK, style)
}

// Upsert PUT /api/admin/styles/:id
func (h *StyleHandler) Upsert(c *gin.Context) {
	var req dto.UpsertStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	style := &entity.Style{
		Slug:            c.Param("id"),
		Name:            req.Name,
		Description:     req.Description,
		Characteristics: req.Characteristics,
		ColorPalette:    req.ColorPalette,
		KeyElements:     req.KeyElements,
		Image:           req.Image,
	}
	if err := h.styleService.Upsert(c.Request.Context(), style); err != nil {
		handleServiceError(c, "StyleHandler", err)
		return
	}
	c.JSON(http.StatusOK, style)
}
