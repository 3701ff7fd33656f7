package stylequiz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// ErrNoQuestionsAvailable - ни один источник не вернул вопросов
var ErrNoQuestionsAvailable = errors.New("no quiz questions available")

// Имена источников вопросов
const (
	TierCurated      = "curated"
	TierImageCatalog = "image_catalog"
	TierDefault      = "default"
)

// QuestionSource отдает активный набор вопросов
type QuestionSource interface {
	ActiveQuestionSet(ctx context.Context) ([]entity.Question, error)
}

// Tier - один источник в цепочке. Пустой результат без ошибки означает
// "данных нет", и цепочка переходит к следующему источнику.
type Tier interface {
	Name() string
	Questions(ctx context.Context) ([]entity.Question, error)
}

// SourceObserver получает имя источника, из которого собран набор
type SourceObserver interface {
	QuestionSourceUsed(tier string)
}

// ChainSource перебирает источники по порядку до первого непустого
type ChainSource struct {
	tiers    []Tier
	observer SourceObserver
}

// NewChainSource создает цепочку источников. observer может быть nil.
func NewChainSource(observer SourceObserver, tiers ...Tier) *ChainSource {
	return &ChainSource{tiers: tiers, observer: observer}
}

// ActiveQuestionSet возвращает набор первого источника, у которого есть вопросы.
// К следующему источнику цепочка переходит только при отсутствии данных.
// Ошибка чтения источника возвращается вызывающему.
func (c *ChainSource) ActiveQuestionSet(ctx context.Context) ([]entity.Question, error) {
	for _, tier := range c.tiers {
		questions, err := tier.Questions(ctx)
		if err != nil {
			log.Printf("[QuestionSource] Источник %s недоступен: %v", tier.Name(), err)
			return nil, fmt.Errorf("question source %s: %w", tier.Name(), err)
		}
		if len(questions) == 0 {
			continue
		}
		if c.observer != nil {
			c.observer.QuestionSourceUsed(tier.Name())
		}
		return questions, nil
	}
	return nil, ErrNoQuestionsAvailable
}

// LatestQuizReader читает последний курируемый набор
type LatestQuizReader interface {
	GetLatest(ctx context.Context) (*entity.Quiz, error)
}

// CuratedTier отдает вопросы последнего курируемого набора как есть
type CuratedTier struct {
	quizzes LatestQuizReader
}

// NewCuratedTier создает источник курируемых вопросов
func NewCuratedTier(quizzes LatestQuizReader) *CuratedTier {
	return &CuratedTier{quizzes: quizzes}
}

func (t *CuratedTier) Name() string { return TierCurated }

func (t *CuratedTier) Questions(ctx context.Context) ([]entity.Question, error) {
	quiz, err := t.quizzes.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return quiz.Questions, nil
}

// CategoryImageLister отдает метаданные изображений категории
type CategoryImageLister interface {
	ListByCategory(ctx context.Context, category string) ([]entity.Image, error)
}

// ImageCatalogTier собирает квиз из изображений категории quiz-questions.
// Каждое изображение становится ответом, изображения группируются по
// questionNumber, вопросы идут по возрастанию номера.
type ImageCatalogTier struct {
	images  CategoryImageLister
	catalog *Catalog
}

// NewImageCatalogTier создает источник вопросов из каталога изображений
func NewImageCatalogTier(images CategoryImageLister, catalog *Catalog) *ImageCatalogTier {
	return &ImageCatalogTier{images: images, catalog: catalog}
}

func (t *ImageCatalogTier) Name() string { return TierImageCatalog }

func (t *ImageCatalogTier) Questions(ctx context.Context) ([]entity.Question, error) {
	images, err := t.images.ListByCategory(ctx, entity.ImageCategoryQuizQuestions)
	if err != nil {
		return nil, fmt.Errorf("list quiz question images: %w", err)
	}
	return SynthesizeQuestions(images, t.catalog), nil
}

// SynthesizeQuestions превращает изображения с метаданными вопроса в набор вопросов.
// Изображение без questionNumber, answerId или stylePoints, а также с
// некорректными stylePoints пропускается с предупреждением.
func SynthesizeQuestions(images []entity.Image, catalog *Catalog) []entity.Question {
	grouped := make(map[int]*entity.Question)
	for _, img := range images {
		meta := img.Metadata
		if !meta.IsQuizAnswer() {
			log.Printf("[QuestionSource] Изображение %s пропущено: нет questionNumber, answerId или stylePoints", img.Name)
			continue
		}
		if err := meta.StylePoints.Validate(); err != nil {
			log.Printf("[QuestionSource] Изображение %s пропущено: некорректные stylePoints: %v", img.Name, err)
			continue
		}

		question, ok := grouped[meta.QuestionNumber]
		if !ok {
			question = &entity.Question{
				ID:       meta.QuestionNumber,
				Text:     catalog.QuestionText(meta.QuestionNumber),
				Type:     entity.QuestionTypeImage,
				Category: catalog.QuestionCategory(meta.QuestionNumber),
			}
			grouped[meta.QuestionNumber] = question
		}
		question.Answers = append(question.Answers, entity.Answer{
			ID:          meta.AnswerID,
			Text:        meta.Description,
			Image:       entity.ImageURL(img.Name),
			StylePoints: meta.StylePoints.Clone(),
		})
	}

	questions := make([]entity.Question, 0, len(grouped))
	for _, q := range grouped {
		questions = append(questions, *q)
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].ID < questions[j].ID
	})
	return questions
}

// DefaultTier отдает встроенный набор из 7 текстовых вопросов
type DefaultTier struct {
	catalog *Catalog
}

// NewDefaultTier создает источник встроенных вопросов
func NewDefaultTier(catalog *Catalog) *DefaultTier {
	return &DefaultTier{catalog: catalog}
}

func (t *DefaultTier) Name() string { return TierDefault }

func (t *DefaultTier) Questions(_ context.Context) ([]entity.Question, error) {
	return t.catalog.DefaultQuestions(), nil
}

// PublicQuestions возвращает копию набора без stylePoints для отправки клиенту
func PublicQuestions(questions []entity.Question) []entity.Question {
	out := make([]entity.Question, len(questions))
	for i, q := range questions {
		public := q.Clone()
		for j := range public.Answers {
			public.Answers[j].StylePoints = nil
		}
		out[i] = public
	}
	return out
}
