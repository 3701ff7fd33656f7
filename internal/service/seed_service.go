package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
	"github.com/yourusername/spacesnap-api/internal/service/stylequiz"
)

// SeedReport - итог заполнения базы начальными данными
type SeedReport struct {
	StylesCreated int
	StylesSkipped int
	QuizCreated   bool
	AdminCreated  bool
}

// AdminSeed - учетные данные первого администратора
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// SeedService заполняет пустую базу встроенными стилями и квизом
type SeedService struct {
	styleRepo repository.StyleRepository
	quizRepo  repository.QuizRepository
	userRepo  repository.UserRepository
	catalog   *stylequiz.Catalog
}

// NewSeedService создает сервис начального заполнения
func NewSeedService(
	styleRepo repository.StyleRepository,
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
	catalog *stylequiz.Catalog,
) *SeedService {
	return &SeedService{styleRepo: styleRepo, quizRepo: quizRepo, userRepo: userRepo, catalog: catalog}
}

// Seed записывает встроенные стили (существующие не трогает, если
// overwriteStyles=false), курируемый квиз при его отсутствии и администратора,
// если admin задан.
func (s *SeedService) Seed(ctx context.Context, overwriteStyles bool, admin *AdminSeed) (*SeedReport, error) {
	report := &SeedReport{}

	for _, style := range s.catalog.AllStyleDetails() {
		if !overwriteStyles {
			_, err := s.styleRepo.GetBySlug(ctx, style.Slug)
			if err == nil {
				report.StylesSkipped++
				continue
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return report, fmt.Errorf("check style %q: %w", style.Slug, err)
			}
		}
		style := style
		if err := s.styleRepo.Upsert(ctx, &style); err != nil {
			return report, fmt.Errorf("upsert style %q: %w", style.Slug, err)
		}
		report.StylesCreated++
	}
	log.Printf("[SeedService] Стили: записано %d, пропущено %d", report.StylesCreated, report.StylesSkipped)

	_, err := s.quizRepo.GetLatest(ctx)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		quiz := &entity.Quiz{Title: defaultQuizTitle, Questions: s.catalog.DefaultQuestions()}
		if err := s.quizRepo.Create(ctx, quiz); err != nil {
			return report, fmt.Errorf("create curated quiz: %w", err)
		}
		report.QuizCreated = true
		log.Printf("[SeedService] Создан курируемый квиз ID=%d (%d вопросов)", quiz.ID, len(quiz.Questions))
	case err != nil:
		return report, fmt.Errorf("check curated quiz: %w", err)
	default:
		log.Printf("[SeedService] Курируемый квиз уже существует, пропускаем")
	}

	if admin != nil {
		created, err := s.seedAdmin(ctx, admin)
		if err != nil {
			return report, err
		}
		report.AdminCreated = created
	}
	return report, nil
}

func (s *SeedService) seedAdmin(ctx context.Context, admin *AdminSeed) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || len(admin.Password) < minPasswordLength {
		return false, fmt.Errorf("%w: admin email and a password of at least %d characters are required", apperrors.ErrValidation, minPasswordLength)
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		log.Printf("[SeedService] Пользователь %s уже существует, администратор не создан", email)
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return false, fmt.Errorf("check admin user: %w", err)
	}

	name := strings.TrimSpace(admin.Name)
	if name == "" {
		name = "Administrator"
	}
	now := time.Now()
	user := &entity.User{
		Name:            name,
		Email:           email,
		Password:        admin.Password,
		Role:            entity.RoleAdmin,
		IsActive:        true,
		EmailVerifiedAt: &now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("create admin user: %w", err)
	}
	log.Printf("[SeedService] Создан администратор ID=%d (%s)", user.ID, email)
	return true, nil
}
