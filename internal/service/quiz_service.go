package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
	"github.com/yourusername/spacesnap-api/internal/service/stylequiz"
)

// defaultQuizTitle - название курируемого квиза, если админ его не задал
const defaultQuizTitle = "Style quiz"

// QuestionCache сбрасывает закешированный активный набор вопросов
type QuestionCache interface {
	Invalidate() error
}

// SubmissionRecorder учитывает завершенные попытки
type SubmissionRecorder interface {
	QuizSubmitted(style string)
}

// SubmitQuizInput - ответы пользователя на квиз
type SubmitQuizInput struct {
	SessionID string
	UserID    *uint
	Answers   []entity.AnswerSelection
}

// ResultViewer - кто запрашивает сохраненный результат
type ResultViewer struct {
	UserID  *uint
	IsAdmin bool
}

// QuizService связывает движок подбора стиля с хранилищами
type QuizService struct {
	questions  stylequiz.QuestionSource
	engine     *stylequiz.Engine
	resultRepo repository.ResultRepository
	quizRepo   repository.QuizRepository
	cache      QuestionCache
	recorder   SubmissionRecorder
}

// NewQuizService создает сервис квиза. cache и recorder могут быть nil.
func NewQuizService(
	questions stylequiz.QuestionSource,
	engine *stylequiz.Engine,
	resultRepo repository.ResultRepository,
	quizRepo repository.QuizRepository,
	cache QuestionCache,
	recorder SubmissionRecorder,
) (*QuizService, error) {
	if questions == nil {
		return nil, fmt.Errorf("QuestionSource is required for QuizService")
	}
	if engine == nil {
		return nil, fmt.Errorf("Engine is required for QuizService")
	}
	if resultRepo == nil {
		return nil, fmt.Errorf("ResultRepository is required for QuizService")
	}
	if quizRepo == nil {
		return nil, fmt.Errorf("QuizRepository is required for QuizService")
	}
	return &QuizService{
		questions:  questions,
		engine:     engine,
		resultRepo: resultRepo,
		quizRepo:   quizRepo,
		cache:      cache,
		recorder:   recorder,
	}, nil
}

// ListQuestions возвращает активный набор вопросов без stylePoints
func (s *QuizService) ListQuestions(ctx context.Context) ([]entity.Question, error) {
	questions, err := s.questions.ActiveQuestionSet(ctx)
	if err != nil {
		return nil, err
	}
	return stylequiz.PublicQuestions(questions), nil
}

// SubmitQuiz считает результат попытки и сохраняет его.
// Если сохранить не удалось, возвращается *PersistenceError с посчитанным результатом.
func (s *QuizService) SubmitQuiz(ctx context.Context, input SubmitQuizInput) (*stylequiz.Outcome, error) {
	questions, err := s.questions.ActiveQuestionSet(ctx)
	if err != nil {
		return nil, err
	}

	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	outcome, err := s.engine.BuildResult(ctx, stylequiz.Attempt{
		SessionID: sessionID,
		UserID:    input.UserID,
		Answers:   input.Answers,
	}, questions)
	if err != nil {
		return nil, err
	}

	if err := s.resultRepo.Create(ctx, outcome.Result); err != nil {
		log.Printf("[QuizService] Результат сессии %s (стиль %s) не сохранен: %v",
			sessionID, outcome.Result.RecommendedStyle, err)
		return nil, &PersistenceError{Outcome: outcome, Err: err}
	}

	if s.recorder != nil {
		s.recorder.QuizSubmitted(outcome.Result.RecommendedStyle)
	}
	log.Printf("[QuizService] Квиз завершен: сессия=%s, результат #%d, стиль=%s, фото комнат=%d",
		sessionID, outcome.Result.ID, outcome.Result.RecommendedStyle, len(outcome.Result.StyleRoomImages))
	return outcome, nil
}

// GetResult возвращает сохраненный результат с описанием стиля.
// Результат пользователя виден только ему и администратору, для остальных
// он не существует. Анонимный результат доступен по ссылке.
func (s *QuizService) GetResult(ctx context.Context, id uint, viewer ResultViewer) (*stylequiz.Outcome, error) {
	result, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.UserID != nil && !viewer.IsAdmin && (viewer.UserID == nil || *viewer.UserID != *result.UserID) {
		log.Printf("[QuizService] Отказано в доступе к результату #%d", id)
		return nil, apperrors.ErrNotFound
	}
	details, err := s.engine.StyleDetails(ctx, result.RecommendedStyle)
	if err != nil {
		return nil, err
	}
	return &stylequiz.Outcome{Result: result, StyleDetails: details}, nil
}

// ListUserResults возвращает историю прохождений пользователя
func (s *QuizService) ListUserResults(ctx context.Context, userID uint, limit, offset int) ([]entity.QuizResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.resultRepo.ListByUser(ctx, userID, limit, offset)
}

// ListAllResults возвращает все результаты для выгрузки
func (s *QuizService) ListAllResults(ctx context.Context) ([]entity.QuizResult, error) {
	return s.resultRepo.ListAll(ctx)
}

// ReplaceCuratedQuiz сохраняет новый курируемый набор вопросов, он сразу становится активным
func (s *QuizService) ReplaceCuratedQuiz(ctx context.Context, title string, questions []entity.Question) (*entity.Quiz, error) {
	if err := stylequiz.ValidateQuestions(questions); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultQuizTitle
	}
	quiz := &entity.Quiz{Title: title, Questions: questions}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}

	s.InvalidateQuestionCache()
	log.Printf("[QuizService] Сохранен курируемый квиз #%d (%d вопросов)", quiz.ID, len(questions))
	return quiz, nil
}

// InvalidateQuestionCache сбрасывает кеш активного набора вопросов
func (s *QuizService) InvalidateQuestionCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(); err != nil {
		log.Printf("[QuizService] Не удалось сбросить кеш вопросов: %v", err)
	}
}
