package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockResultRepository реализует repository.ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, result *entity.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) GetByID(ctx context.Context, id uint) (*entity.QuizResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizResult), args.Error(1)
}

func (m *MockResultRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]entity.QuizResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizResult), args.Error(1)
}

func (m *MockResultRepository) ListAll(ctx context.Context) ([]entity.QuizResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizResult), args.Error(1)
}

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *entity.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetLatest(ctx context.Context) (*entity.Quiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

// MockStyleRepository реализует repository.StyleRepository
type MockStyleRepository struct {
	mock.Mock
}

func (m *MockStyleRepository) GetBySlug(ctx context.Context, slug string) (*entity.Style, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Style), args.Error(1)
}

func (m *MockStyleRepository) List(ctx context.Context) ([]entity.Style, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Style), args.Error(1)
}

func (m *MockStyleRepository) Upsert(ctx context.Context, style *entity.Style) error {
	args := m.Called(ctx, style)
	return args.Error(0)
}

// MockImageRepository реализует repository.ImageRepository
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, image *entity.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepository) GetByName(ctx context.Context, name string) (*entity.Image, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Image), args.Error(1)
}

func (m *MockImageRepository) List(ctx context.Context, filter repository.ImageFilter) ([]entity.Image, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Image), args.Get(1).(int64), args.Error(2)
}

func (m *MockImageRepository) ListByCategory(ctx context.Context, category string) ([]entity.Image, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Image), args.Error(1)
}

func (m *MockImageRepository) ListByCategoryAndSubcategory(ctx context.Context, category, subcategory string) ([]entity.Image, error) {
	args := m.Called(ctx, category, subcategory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Image), args.Error(1)
}

func (m *MockImageRepository) DeleteByName(ctx context.Context, name string) (*entity.Image, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Image), args.Error(1)
}

// MockEmailVerificationRepository реализует repository.EmailVerificationRepository
type MockEmailVerificationRepository struct {
	mock.Mock
}

func (m *MockEmailVerificationRepository) Create(ctx context.Context, code *entity.EmailVerificationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockEmailVerificationRepository) GetLatestActiveByUserID(ctx context.Context, userID uint) (*entity.EmailVerificationCode, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EmailVerificationCode), args.Error(1)
}

func (m *MockEmailVerificationRepository) IncrementAttempts(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmailVerificationRepository) MarkConsumed(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmailVerificationRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// ============================================================================
// Моки сервисных зависимостей
// ============================================================================

// MockQuestionSource реализует stylequiz.QuestionSource
type MockQuestionSource struct {
	mock.Mock
}

func (m *MockQuestionSource) ActiveQuestionSet(ctx context.Context) ([]entity.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

// MockQuestionCache реализует QuestionCache
type MockQuestionCache struct {
	mock.Mock
}

func (m *MockQuestionCache) Invalidate() error {
	args := m.Called()
	return args.Error(0)
}

// MockSubmissionRecorder реализует SubmissionRecorder
type MockSubmissionRecorder struct {
	mock.Mock
}

func (m *MockSubmissionRecorder) QuizSubmitted(style string) {
	m.Called(style)
}

// MockEmailService реализует EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendVerificationCode(ctx context.Context, toEmail, code, idempotencyKey string) error {
	args := m.Called(ctx, toEmail, code, idempotencyKey)
	return args.Error(0)
}

// MockVerificationSender реализует VerificationSender
type MockVerificationSender struct {
	mock.Mock
}

func (m *MockVerificationSender) SendCode(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
