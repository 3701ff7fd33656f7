package stylequiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
)

func sel(questionID int, answerID string) entity.AnswerSelection {
	return entity.AnswerSelection{QuestionID: questionID, AnswerID: answerID}
}

// multiStyleQuestions - набор, где ответы дают очки нескольким стилям
func multiStyleQuestions() []entity.Question {
	return []entity.Question{
		{ID: 1, Text: "Art", Type: entity.QuestionTypeImage, Category: entity.QuestionCategoryArt, Answers: []entity.Answer{
			{ID: "1a", Image: "/api/images/art-a.jpg", StylePoints: entity.StyleScores{{Style: "bohemian", Points: 3}, {Style: "eclectic", Points: 1}}},
			{ID: "1b", Image: "/api/images/art-b.jpg", StylePoints: entity.StyleScores{{Style: "modern", Points: 2}}},
		}},
		{ID: 2, Text: "Furniture", Type: entity.QuestionTypeImage, Category: entity.QuestionCategoryFurniture, Answers: []entity.Answer{
			{ID: "2a", Image: "/api/images/sofa-a.jpg", StylePoints: entity.StyleScores{{Style: "modern", Points: 3}, {Style: "minimalist", Points: 2}}},
			{ID: "2b", Image: "/api/images/sofa-b.jpg", StylePoints: entity.StyleScores{{Style: "rustic", Points: 4}}},
		}},
		{ID: 3, Text: "Color", Type: entity.QuestionTypeText, Category: "color", Answers: []entity.Answer{
			{ID: "3a", Text: "Warm", StylePoints: entity.StyleScores{{Style: "rustic", Points: 1}, {Style: "bohemian", Points: 1}}},
		}},
	}
}

func TestScore_IsOrderIndependent(t *testing.T) {
	questions := multiStyleQuestions()
	permutations := [][]entity.AnswerSelection{
		{sel(1, "1a"), sel(2, "2a"), sel(3, "3a")},
		{sel(3, "3a"), sel(2, "2a"), sel(1, "1a")},
		{sel(2, "2a"), sel(1, "1a"), sel(3, "3a")},
		{sel(2, "2a"), sel(3, "3a"), sel(1, "1a")},
	}

	expected := Score(permutations[0], questions).Scores.Map()
	for _, answers := range permutations[1:] {
		assert.Equal(t, expected, Score(answers, questions).Scores.Map(), "Суммы не должны зависеть от порядка ответов")
	}
	assert.Equal(t, map[string]int{"bohemian": 4, "eclectic": 1, "modern": 3, "minimalist": 2, "rustic": 1}, expected)
}

func TestScore_InsertionOrderFollowsFirstCredit(t *testing.T) {
	tally := Score([]entity.AnswerSelection{sel(2, "2b"), sel(1, "1a")}, multiStyleQuestions())

	require.Len(t, tally.Scores, 3)
	assert.Equal(t, "rustic", tally.Scores[0].Style)
	assert.Equal(t, "bohemian", tally.Scores[1].Style)
	assert.Equal(t, "eclectic", tally.Scores[2].Style)
}

func TestScore_UnknownReferencesAreSkipped(t *testing.T) {
	questions := multiStyleQuestions()
	valid := []entity.AnswerSelection{sel(1, "1b"), sel(2, "2b")}
	withUnknown := []entity.AnswerSelection{sel(1, "1b"), sel(99, "99a"), sel(2, "2b"), sel(3, "3z")}

	clean := Score(valid, questions)
	dirty := Score(withUnknown, questions)

	assert.Equal(t, clean.Scores, dirty.Scores, "Неизвестные ссылки не должны влиять на очки")
	assert.Equal(t, []entity.AnswerSelection{sel(99, "99a"), sel(3, "3z")}, dirty.Unresolved)
	assert.Empty(t, clean.Unresolved)
}

func TestScore_SnapshotsArtAndFurniture(t *testing.T) {
	tally := Score([]entity.AnswerSelection{sel(1, "1b"), sel(2, "2a"), sel(3, "3a")}, multiStyleQuestions())

	require.NotNil(t, tally.SelectedArt)
	assert.Equal(t, entity.AnswerSnapshot{ID: "1b", Image: "/api/images/art-b.jpg"}, *tally.SelectedArt)
	require.NotNil(t, tally.SelectedFurniture)
	assert.Equal(t, entity.AnswerSnapshot{ID: "2a", Image: "/api/images/sofa-a.jpg"}, *tally.SelectedFurniture)
}

func TestScore_DuplicateCategoryLastWriteWins(t *testing.T) {
	questions := multiStyleQuestions()
	questions = append(questions, entity.Question{
		ID: 4, Category: entity.QuestionCategoryArt, Answers: []entity.Answer{
			{ID: "4a", Image: "/api/images/art-c.jpg", StylePoints: entity.StyleScores{{Style: "modern", Points: 1}}},
		},
	})

	tally := Score([]entity.AnswerSelection{sel(1, "1a"), sel(4, "4a")}, questions)

	require.NotNil(t, tally.SelectedArt)
	assert.Equal(t, "4a", tally.SelectedArt.ID)
}

func TestScore_EmptyInput(t *testing.T) {
	tally := Score(nil, multiStyleQuestions())

	assert.Empty(t, tally.Scores)
	assert.Nil(t, tally.SelectedArt)
	assert.Nil(t, tally.SelectedFurniture)
}

func TestScore_DefaultQuizAllScandinavian(t *testing.T) {
	questions := DefaultCatalog().DefaultQuestions()
	answers := []entity.AnswerSelection{
		sel(1, "1a"), sel(2, "2a"), sel(4, "4b"), sel(5, "5b"), sel(7, "7a"),
	}

	tally := Score(answers, questions)

	assert.Equal(t, entity.StyleScores{{Style: "scandinavian", Points: 25}}, tally.Scores)
	assert.Equal(t, "scandinavian", Resolve(tally.Scores))
}

func TestResolve_EmptyReturnsModern(t *testing.T) {
	assert.Equal(t, "modern", Resolve(entity.StyleScores{}))
	assert.Equal(t, "modern", Resolve(nil))
}

func TestResolve_HighestWins(t *testing.T) {
	scores := entity.StyleScores{{Style: "rustic", Points: 2}, {Style: "industrial", Points: 7}, {Style: "modern", Points: 3}}

	assert.Equal(t, "industrial", Resolve(scores))
}

func TestResolve_TieKeepsFirstSeen(t *testing.T) {
	scores := entity.StyleScores{{Style: "bohemian", Points: 5}, {Style: "scandinavian", Points: 5}, {Style: "modern", Points: 1}}

	for i := 0; i < 50; i++ {
		require.Equal(t, "bohemian", Resolve(scores), "При равенстве побеждает стиль, встреченный первым")
	}

	reversed := entity.StyleScores{{Style: "scandinavian", Points: 5}, {Style: "bohemian", Points: 5}}
	assert.Equal(t, "scandinavian", Resolve(reversed))
}

func TestResolve_TieBreakThroughScore(t *testing.T) {
	questions := []entity.Question{
		{ID: 1, Answers: []entity.Answer{{ID: "1a", StylePoints: entity.StyleScores{{Style: "industrial", Points: 5}}}}},
		{ID: 2, Answers: []entity.Answer{{ID: "2a", StylePoints: entity.StyleScores{{Style: "minimalist", Points: 5}}}}},
	}

	assert.Equal(t, "industrial", Resolve(Score([]entity.AnswerSelection{sel(1, "1a"), sel(2, "2a")}, questions).Scores))
	assert.Equal(t, "minimalist", Resolve(Score([]entity.AnswerSelection{sel(2, "2a"), sel(1, "1a")}, questions).Scores))
}

func TestResolve_ZeroScoresFallBackToDefault(t *testing.T) {
	assert.Equal(t, "modern", Resolve(entity.StyleScores{{Style: "rustic", Points: 0}}))
}
