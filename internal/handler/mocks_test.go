package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
	"github.com/yourusername/spacesnap-api/internal/middleware"
	"github.com/yourusername/spacesnap-api/internal/service"
	"github.com/yourusername/spacesnap-api/internal/service/stylequiz"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withUser имитирует RequireAuth/OptionalAuth
func withUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

// ============================================================================
// Моки сервисов
// ============================================================================

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) ListQuestions(ctx context.Context) ([]entity.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuizService) SubmitQuiz(ctx context.Context, input service.SubmitQuizInput) (*stylequiz.Outcome, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stylequiz.Outcome), args.Error(1)
}

func (m *MockQuizService) GetResult(ctx context.Context, id uint, viewer service.ResultViewer) (*stylequiz.Outcome, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stylequiz.Outcome), args.Error(1)
}

func (m *MockQuizService) ListUserResults(ctx context.Context, userID uint, limit, offset int) ([]entity.QuizResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizResult), args.Error(1)
}

func (m *MockQuizService) ListAllResults(ctx context.Context) ([]entity.QuizResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizResult), args.Error(1)
}

func (m *MockQuizService) ReplaceCuratedQuiz(ctx context.Context, title string, questions []entity.Question) (*entity.Quiz, error) {
	args := m.Called(ctx, title, questions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, input service.UploadImageInput) (*entity.Image, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Image), args.Error(1)
}

func (m *MockImageService) Get(ctx context.Context, name string) (*entity.Image, []byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Image), args.Get(1).([]byte), args.Error(2)
}

func (m *MockImageService) List(ctx context.Context, filter repository.ImageFilter) ([]entity.Image, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Image), args.Get(1).(int64), args.Error(2)
}

func (m *MockImageService) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, userID uint) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockEmailVerifier struct {
	mock.Mock
}

func (m *MockEmailVerifier) SendCode(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockEmailVerifier) ConfirmCode(ctx context.Context, userID uint, code string) error {
	args := m.Called(ctx, userID, code)
	return args.Error(0)
}

func (m *MockEmailVerifier) GetStatus(ctx context.Context, userID uint) (*service.EmailVerificationStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EmailVerificationStatus), args.Error(1)
}

type MockStyleService struct {
	mock.Mock
}

func (m *MockStyleService) List(ctx context.Context) ([]entity.Style, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Style), args.Error(1)
}

func (m *MockStyleService) Get(ctx context.Context, slug string) (*entity.Style, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Style), args.Error(1)
}

func (m *MockStyleService) Upsert(ctx context.Context, style *entity.Style) error {
	args := m.Called(ctx, style)
	return args.Error(0)
}
