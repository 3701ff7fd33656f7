package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
	"github.com/yourusername/spacesnap-api/pkg/auth"
)

const minPasswordLength = 6

// RegisterInput - данные регистрации
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult - пользователь и выданный токен доступа
type AuthResult struct {
	User  *entity.User
	Token string
}

// VerificationSender отправляет код подтверждения email
type VerificationSender interface {
	SendCode(ctx context.Context, userID uint) error
}

// AuthService регистрирует и аутентифицирует пользователей
type AuthService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	verification VerificationSender
}

// NewAuthService создает сервис аутентификации. verification может быть nil.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, verification VerificationSender) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{userRepo: userRepo, jwtService: jwtService, verification: verification}, nil
}

// Register создает пользователя и выдает токен.
// Письмо с кодом подтверждения отправляется сразу, его ошибка регистрацию не отменяет.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := strings.TrimSpace(input.Role)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}
	if role == "" {
		role = entity.RoleRegistered
	}
	if role != entity.RoleRegistered && role != entity.RoleDesigner {
		return nil, fmt.Errorf("%w: role %q cannot be chosen at registration", apperrors.ErrValidation, role)
	}

	user := &entity.User{
		Name:     name,
		Email:    email,
		Password: input.Password,
		Role:     role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: user with this email already exists", apperrors.ErrConflict)
		}
		return nil, err
	}

	if s.verification != nil {
		if err := s.verification.SendCode(ctx, user.ID); err != nil {
			log.Printf("[AuthService] Не удалось отправить код подтверждения пользователю %d: %v", user.ID, err)
		}
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	log.Printf("[AuthService] Зарегистрирован пользователь %d (%s)", user.ID, user.Role)
	return &AuthResult{User: user, Token: token}, nil
}

// Login проверяет пароль и выдает токен
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", apperrors.ErrForbidden)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("[AuthService] Не удалось обновить время входа пользователя %d: %v", user.ID, err)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// GetUser возвращает пользователя по ID
func (s *AuthService) GetUser(ctx context.Context, userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
