package helper

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/spacesnap-api/internal/middleware"
)

// CurrentUserID возвращает ID аутентифицированного пользователя, если он есть
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok && userID > 0
}

// OptionalUserID возвращает указатель на ID пользователя или nil для анонимного запроса
func OptionalUserID(c *gin.Context) *uint {
	if userID, ok := CurrentUserID(c); ok {
		return &userID
	}
	return nil
}

// QueryInt читает неотрицательный целый параметр запроса, при ошибке возвращает def
func QueryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return def
	}
	return value
}
