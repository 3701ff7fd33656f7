package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/spacesnap-api/internal/handler/dto"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
	"github.com/yourusername/spacesnap-api/internal/service"
	"github.com/yourusername/spacesnap-api/internal/service/stylequiz"
)

// handleServiceError переводит ошибки сервисов в HTTP-ответы
func handleServiceError(c *gin.Context, component string, err error) {
	var persistErr *service.PersistenceError

	switch {
	case errors.Is(err, stylequiz.ErrNoQuestionsAvailable):
		log.Printf("[%s] Нет доступных вопросов: %v", component, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No quiz questions are available", "error_type": "no_questions"})
	case errors.As(err, &persistErr):
		log.Printf("[%s] Результат не сохранен: %v", component, err)
		body := gin.H{"error": "Quiz result was computed but could not be saved", "error_type": "result_not_saved"}
		if persistErr.Outcome != nil {
			body["result"] = dto.NewQuizResultResponse(persistErr.Outcome)
		}
		c.JSON(http.StatusInternalServerError, body)
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password", "error_type": "invalid_credentials"})
	case errors.Is(err, service.ErrInvalidVerificationCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code", "error_type": "invalid_verification_code"})
	case errors.Is(err, service.ErrVerificationExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code expired", "error_type": "verification_expired"})
	case errors.Is(err, service.ErrVerificationAttemptsExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification attempts exceeded", "error_type": "verification_attempts_exceeded"})
	case errors.Is(err, service.ErrVerificationResendCooldown):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests", "error_type": "rate_limited"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "error_type": "validation_error"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "error_type": "forbidden"})
	default:
		log.Printf("ERROR: Internal server error in %s: %v", component, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal_server_error"})
	}
}
