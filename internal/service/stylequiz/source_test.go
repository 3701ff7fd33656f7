package stylequiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

type MockQuizReader struct {
	mock.Mock
}

func (m *MockQuizReader) GetLatest(ctx context.Context) (*entity.Quiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

type MockCategoryLister struct {
	mock.Mock
}

func (m *MockCategoryLister) ListByCategory(ctx context.Context, category string) ([]entity.Image, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Image), args.Error(1)
}

type recordingObserver struct {
	tiers []string
}

func (r *recordingObserver) QuestionSourceUsed(tier string) {
	r.tiers = append(r.tiers, tier)
}

type staticTier struct {
	name      string
	questions []entity.Question
	err       error
	calls     int
}

func (s *staticTier) Name() string { return s.name }

func (s *staticTier) Questions(context.Context) ([]entity.Question, error) {
	s.calls++
	return s.questions, s.err
}

func quizImage(name string, number int, answerID, description string, points entity.StyleScores) entity.Image {
	return entity.Image{
		Name:     name,
		Category: entity.ImageCategoryQuizQuestions,
		Metadata: entity.ImageMetadata{QuestionNumber: number, AnswerID: answerID, Description: description, StylePoints: points},
	}
}

func TestChainSource_CuratedWins(t *testing.T) {
	quizzes := new(MockQuizReader)
	images := new(MockCategoryLister)
	observer := &recordingObserver{}
	curated := []entity.Question{{ID: 10, Text: "Curated", Type: entity.QuestionTypeText,
		Answers: []entity.Answer{{ID: "x", Text: "X", StylePoints: entity.StyleScores{{Style: "modern", Points: 1}}}}}}
	quizzes.On("GetLatest", mock.Anything).Return(&entity.Quiz{ID: 1, Questions: curated}, nil)

	catalog := DefaultCatalog()
	chain := NewChainSource(observer, NewCuratedTier(quizzes), NewImageCatalogTier(images, catalog), NewDefaultTier(catalog))

	questions, err := chain.ActiveQuestionSet(context.Background())

	require.NoError(t, err)
	assert.Equal(t, curated, questions, "Курируемый набор используется как есть")
	assert.Equal(t, []string{TierCurated}, observer.tiers)
	images.AssertNotCalled(t, "ListByCategory", mock.Anything, mock.Anything)
}

func TestChainSource_FallsBackToImageCatalog(t *testing.T) {
	quizzes := new(MockQuizReader)
	images := new(MockCategoryLister)
	observer := &recordingObserver{}
	quizzes.On("GetLatest", mock.Anything).Return(nil, apperrors.ErrNotFound)
	images.On("ListByCategory", mock.Anything, entity.ImageCategoryQuizQuestions).Return([]entity.Image{
		quizImage("q2-a.jpg", 2, "2a", "White walls", entity.StyleScores{{Style: "scandinavian", Points: 3}}),
		quizImage("q1-a.jpg", 1, "1a", "Sofa", entity.StyleScores{{Style: "modern", Points: 2}}),
	}, nil)

	catalog := DefaultCatalog()
	chain := NewChainSource(observer, NewCuratedTier(quizzes), NewImageCatalogTier(images, catalog), NewDefaultTier(catalog))

	questions, err := chain.ActiveQuestionSet(context.Background())

	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].ID)
	assert.Equal(t, 2, questions[1].ID)
	assert.Equal(t, []string{TierImageCatalog}, observer.tiers)
}

func TestChainSource_FallsBackToDefault(t *testing.T) {
	quizzes := new(MockQuizReader)
	images := new(MockCategoryLister)
	quizzes.On("GetLatest", mock.Anything).Return(&entity.Quiz{ID: 1}, nil)
	images.On("ListByCategory", mock.Anything, entity.ImageCategoryQuizQuestions).Return([]entity.Image{}, nil)

	catalog := DefaultCatalog()
	chain := NewChainSource(nil, NewCuratedTier(quizzes), NewImageCatalogTier(images, catalog), NewDefaultTier(catalog))

	questions, err := chain.ActiveQuestionSet(context.Background())

	require.NoError(t, err)
	assert.Len(t, questions, 7, "Пустой курируемый набор и пустой каталог ведут к встроенному квизу")
}

func TestChainSource_TierFailurePropagates(t *testing.T) {
	dbErr := errors.New("pq: connection refused")
	quizzes := new(MockQuizReader)
	quizzes.On("GetLatest", mock.Anything).Return(nil, dbErr)

	fallback := &staticTier{name: "fallback", questions: DefaultCatalog().DefaultQuestions()}
	chain := NewChainSource(nil, NewCuratedTier(quizzes), fallback)

	questions, err := chain.ActiveQuestionSet(context.Background())

	assert.Nil(t, questions)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNoQuestionsAvailable)
	assert.Zero(t, fallback.calls, "Ошибка источника не должна приводить к встроенному набору")
}

func TestChainSource_NotFoundMovesToNextTier(t *testing.T) {
	quizzes := new(MockQuizReader)
	quizzes.On("GetLatest", mock.Anything).Return(nil, apperrors.ErrNotFound)

	chain := NewChainSource(nil, NewCuratedTier(quizzes), NewDefaultTier(DefaultCatalog()))

	questions, err := chain.ActiveQuestionSet(context.Background())

	require.NoError(t, err)
	assert.Len(t, questions, 7)
}

func TestChainSource_AllEmpty(t *testing.T) {
	first := &staticTier{name: "first"}
	second := &staticTier{name: "second"}
	chain := NewChainSource(nil, first, second)

	questions, err := chain.ActiveQuestionSet(context.Background())

	assert.Nil(t, questions)
	assert.ErrorIs(t, err, ErrNoQuestionsAvailable)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestSynthesizeQuestions_GroupsAndSorts(t *testing.T) {
	images := []entity.Image{
		quizImage("q3-b.jpg", 3, "3b", "Vintage chair", entity.StyleScores{{Style: "rustic", Points: 3}}),
		quizImage("q1-a.jpg", 1, "1a", "Reading nook", entity.StyleScores{{Style: "scandinavian", Points: 2}, {Style: "minimalist", Points: 1}}),
		quizImage("q3-a.jpg", 3, "3a", "Steel table", entity.StyleScores{{Style: "industrial", Points: 3}}),
		quizImage("q9-a.jpg", 9, "9a", "", entity.StyleScores{{Style: "modern", Points: 1}}),
	}

	questions := SynthesizeQuestions(images, DefaultCatalog())

	require.Len(t, questions, 3)
	assert.Equal(t, []int{1, 3, 9}, []int{questions[0].ID, questions[1].ID, questions[2].ID})

	q3 := questions[1]
	assert.Equal(t, "What type of furniture do you prefer?", q3.Text)
	assert.Equal(t, entity.QuestionCategoryFurniture, q3.Category)
	assert.Equal(t, entity.QuestionTypeImage, q3.Type)
	require.Len(t, q3.Answers, 2)
	assert.Equal(t, "3b", q3.Answers[0].ID, "Ответы идут в порядке изображений")
	assert.Equal(t, "/api/images/q3-b.jpg", q3.Answers[0].Image)
	assert.Equal(t, "Vintage chair", q3.Answers[0].Text)

	assert.Equal(t, "Question 9", questions[2].Text)
	assert.Equal(t, "general", questions[2].Category)
	assert.Equal(t, entity.StyleScores{{Style: "scandinavian", Points: 2}, {Style: "minimalist", Points: 1}}, questions[0].Answers[0].StylePoints)
}

func TestSynthesizeQuestions_SkipsIncompleteMetadata(t *testing.T) {
	images := []entity.Image{
		quizImage("no-number.jpg", 0, "1a", "", entity.StyleScores{{Style: "modern", Points: 1}}),
		quizImage("no-answer.jpg", 1, "", "", entity.StyleScores{{Style: "modern", Points: 1}}),
		quizImage("no-points.jpg", 1, "1b", "", nil),
		quizImage("ok.jpg", 1, "1c", "", entity.StyleScores{{Style: "bohemian", Points: 2}}),
	}

	questions := SynthesizeQuestions(images, DefaultCatalog())

	require.Len(t, questions, 1)
	require.Len(t, questions[0].Answers, 1)
	assert.Equal(t, "1c", questions[0].Answers[0].ID)
}

func TestSynthesizeQuestions_SkipsInvalidStylePoints(t *testing.T) {
	images := []entity.Image{
		quizImage("negative.jpg", 2, "2a", "", entity.StyleScores{{Style: "Modern", Points: -3}, {Style: "modern", Points: 2}}),
		quizImage("zero.jpg", 2, "2b", "", entity.StyleScores{{Style: "rustic", Points: 0}}),
		quizImage("raw-key.jpg", 2, "2c", "", entity.StyleScores{{Style: "Mid Century", Points: 2}}),
		quizImage("ok.jpg", 2, "2d", "", entity.StyleScores{{Style: "mid-century", Points: 2}}),
	}

	questions := SynthesizeQuestions(images, DefaultCatalog())

	require.Len(t, questions, 1)
	require.Len(t, questions[0].Answers, 1)
	assert.Equal(t, "2d", questions[0].Answers[0].ID)
}

func TestSynthesizeQuestions_AllInvalid(t *testing.T) {
	questions := SynthesizeQuestions([]entity.Image{quizImage("x.jpg", 0, "", "", nil)}, DefaultCatalog())

	assert.Empty(t, questions)
}

func TestImageCatalogTier_ListFailure(t *testing.T) {
	images := new(MockCategoryLister)
	images.On("ListByCategory", mock.Anything, entity.ImageCategoryQuizQuestions).Return(nil, errors.New("db down"))

	_, err := NewImageCatalogTier(images, DefaultCatalog()).Questions(context.Background())

	assert.Error(t, err)
}

func TestPublicQuestions_StripsStylePoints(t *testing.T) {
	questions := DefaultCatalog().DefaultQuestions()

	public := PublicQuestions(questions)

	require.Len(t, public, len(questions))
	for _, q := range public {
		for _, a := range q.Answers {
			assert.Nil(t, a.StylePoints)
		}
	}
	assert.NotEmpty(t, questions[0].Answers[0].StylePoints, "Исходный набор не изменяется")
	assert.Equal(t, questions[0].Answers[0].Text, public[0].Answers[0].Text)
}
