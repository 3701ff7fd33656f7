package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/handler/dto"
	"github.com/yourusername/spacesnap-api/internal/handler/helper"
	"github.com/yourusername/spacesnap-api/internal/service"
)

// AuthService - регистрация, вход и профиль
type AuthService interface {
	Register(ctx context.Context, input service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	GetUser(ctx context.Context, userID uint) (*entity.User, error)
}

// EmailVerifier - подтверждение email кодом из письма
type EmailVerifier interface {
	SendCode(ctx context.Context, userID uint) error
	ConfirmCode(ctx context.Context, userID uint, code string) error
	GetStatus(ctx context.Context, userID uint) (*service.EmailVerificationStatus, error)
}

// AuthHandler обрабатывает запросы аутентификации
type AuthHandler struct {
	authService  AuthService
	verifier     EmailVerifier
	tokenTTLSecs int
}

// NewAuthHandler создает обработчик аутентификации
func NewAuthHandler(authService AuthService, verifier EmailVerifier, tokenTTLSecs int) *AuthHandler {
	return &AuthHandler{authService: authService, verifier: verifier, tokenTTLSecs: tokenTTLSecs}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		handleServiceError(c, "AuthHandler", err)
		return
	}
	c.JSON(http.StatusCreated, h.authResponse(result))
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, "AuthHandler", err)
		return
	}
	c.JSON(http.StatusOK, h.authResponse(result))
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := helper.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, "AuthHandler", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SendVerificationCode POST /api/auth/verify-email/send
func (h *AuthHandler) SendVerificationCode(c *gin.Context) {
	userID, ok := helper.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.verifier.SendCode(c.Request.Context(), userID); err != nil {
		handleServiceError(c, "AuthHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// ConfirmVerificationCode POST /api/auth/verify-email/confirm
func (h *AuthHandler) ConfirmVerificationCode(c *gin.Context) {
	userID, ok := helper.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.verifier.ConfirmCode(c.Request.Context(), userID, req.Code); err != nil {
		handleServiceError(c, "AuthHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// VerificationStatus GET /api/auth/verify-email/status
func (h *AuthHandler) VerificationStatus(c *gin.Context) {
	userID, ok := helper.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status, err := h.verifier.GetStatus(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, "AuthHandler", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *AuthHandler) authResponse(result *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		User:        result.User,
		AccessToken: result.Token,
		TokenType:   "Bearer",
		ExpiresIn:   h.tokenTTLSecs,
	}
}
