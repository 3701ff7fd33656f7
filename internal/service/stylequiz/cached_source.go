package stylequiz

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/domain/repository"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// QuestionCacheKey - ключ кеша активного набора вопросов
const QuestionCacheKey = "quiz:questions:active"

// CachedSource кеширует активный набор вопросов в Redis.
// Одновременные промахи кеша схлопываются в одно обращение к источнику.
type CachedSource struct {
	next  QuestionSource
	cache repository.CacheRepository
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedSource оборачивает источник вопросов кешем
func NewCachedSource(next QuestionSource, cache repository.CacheRepository, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, cache: cache, ttl: ttl}
}

// ActiveQuestionSet возвращает набор из кеша или из источника.
// Недоступность кеша не мешает отдать вопросы.
func (s *CachedSource) ActiveQuestionSet(ctx context.Context) ([]entity.Question, error) {
	if questions, ok := s.fromCache(); ok {
		return questions, nil
	}

	// Результат общий для всех ожидающих, поэтому отмена первого вызова не должна его прерывать
	loadCtx := context.WithoutCancel(ctx)
	result, err, _ := s.group.Do(QuestionCacheKey, func() (interface{}, error) {
		if questions, ok := s.fromCache(); ok {
			return questions, nil
		}

		questions, err := s.next.ActiveQuestionSet(loadCtx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetJSON(QuestionCacheKey, questions, s.ttl); err != nil {
			log.Printf("[QuestionCache] Не удалось сохранить набор вопросов в кеш: %v", err)
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]entity.Question), nil
}

// Invalidate сбрасывает закешированный набор
func (s *CachedSource) Invalidate() error {
	return s.cache.Delete(QuestionCacheKey)
}

func (s *CachedSource) fromCache() ([]entity.Question, bool) {
	var questions []entity.Question
	err := s.cache.GetJSON(QuestionCacheKey, &questions)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuestionCache] Ошибка чтения кеша: %v", err)
		}
		return nil, false
	}
	return questions, len(questions) > 0
}
