package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleScores_AddKeepsFirstSeenOrder(t *testing.T) {
	var scores StyleScores
	scores.Add("bohemian", 2)
	scores.Add("modern", 5)
	scores.Add("bohemian", 3)

	require.Len(t, scores, 2)
	assert.Equal(t, "bohemian", scores[0].Style, "Порядок определяется первым появлением стиля")
	assert.Equal(t, 5, scores[0].Points)
	assert.Equal(t, "modern", scores[1].Style)
}

func TestStyleScores_MarshalJSON_PreservesOrder(t *testing.T) {
	scores := StyleScores{{Style: "rustic", Points: 3}, {Style: "modern", Points: 1}, {Style: "bohemian", Points: 2}}

	data, err := json.Marshal(scores)

	require.NoError(t, err)
	assert.Equal(t, `{"rustic":3,"modern":1,"bohemian":2}`, string(data))
}

func TestStyleScores_MarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(StyleScores{})

	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestStyleScores_UnmarshalJSON_PreservesOrder(t *testing.T) {
	var scores StyleScores

	err := json.Unmarshal([]byte(`{"industrial": 2, "bohemian": 4, "modern": 1}`), &scores)

	require.NoError(t, err)
	assert.Equal(t, StyleScores{
		{Style: "industrial", Points: 2},
		{Style: "bohemian", Points: 4},
		{Style: "modern", Points: 1},
	}, scores)
}

func TestStyleScores_UnmarshalJSON_DuplicateKeyKeepsPosition(t *testing.T) {
	var scores StyleScores

	err := json.Unmarshal([]byte(`{"modern": 1, "rustic": 2, "modern": 7}`), &scores)

	require.NoError(t, err)
	assert.Equal(t, StyleScores{{Style: "modern", Points: 7}, {Style: "rustic", Points: 2}}, scores)
}

func TestStyleScores_UnmarshalJSON_RejectsArray(t *testing.T) {
	var scores StyleScores

	err := json.Unmarshal([]byte(`[1,2]`), &scores)

	assert.Error(t, err)
}

func TestStyleScores_UnmarshalJSON_RejectsFractionalPoints(t *testing.T) {
	var scores StyleScores

	err := json.Unmarshal([]byte(`{"modern":1.5}`), &scores)

	assert.Error(t, err)
	assert.Nil(t, scores)
}

func TestStyleScores_UnmarshalJSON_AcceptsWholeFloat(t *testing.T) {
	var scores StyleScores

	require.NoError(t, json.Unmarshal([]byte(`{"modern":2.0}`), &scores))
	assert.Equal(t, StyleScores{{Style: "modern", Points: 2}}, scores)
}

func TestStyleScores_Validate(t *testing.T) {
	assert.NoError(t, StyleScores{{Style: "mid-century", Points: 2}}.Validate())
	assert.NoError(t, StyleScores(nil).Validate())
	assert.Error(t, StyleScores{{Style: "Modern", Points: 2}}.Validate(), "Ключ должен быть в каноническом виде")
	assert.Error(t, StyleScores{{Style: "", Points: 2}}.Validate())
	assert.Error(t, StyleScores{{Style: "modern", Points: 0}}.Validate())
	assert.Error(t, StyleScores{{Style: "modern", Points: -3}}.Validate())
}

func TestStyleScores_ScanValue(t *testing.T) {
	original := StyleScores{{Style: "scandinavian", Points: 35}}

	value, err := original.Value()
	require.NoError(t, err)

	var restored StyleScores
	require.NoError(t, restored.Scan(value))
	assert.Equal(t, original, restored)

	var empty StyleScores
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}

func TestQuestion_FindAnswer(t *testing.T) {
	question := &Question{
		ID: 1,
		Answers: []Answer{
			{ID: "1a", Text: "Relaxing/Resting"},
			{ID: "1b", Text: "Entertaining Guests"},
		},
	}

	answer, ok := question.FindAnswer("1b")
	require.True(t, ok)
	assert.Equal(t, "Entertaining Guests", answer.Text)

	_, ok = question.FindAnswer("9z")
	assert.False(t, ok, "Неизвестный ответ не должен находиться")
}

func TestQuestion_CloneIsIndependent(t *testing.T) {
	original := Question{
		ID:      2,
		Answers: []Answer{{ID: "2a", StylePoints: StyleScores{{Style: "modern", Points: 5}}}},
	}

	clone := original.Clone()
	clone.Answers[0].StylePoints[0].Points = 100
	clone.Answers[0].ID = "changed"

	assert.Equal(t, 5, original.Answers[0].StylePoints[0].Points, "Изменение копии не должно затрагивать оригинал")
	assert.Equal(t, "2a", original.Answers[0].ID)
}

func TestQuestion_JSONFieldNames(t *testing.T) {
	question := Question{
		ID:       3,
		Text:     "What type of furniture do you prefer?",
		Type:     QuestionTypeText,
		Category: QuestionCategoryFurniture,
		Answers:  []Answer{{ID: "3a", Text: "Modern", StylePoints: StyleScores{{Style: "modern", Points: 5}}}},
	}

	data, err := json.Marshal(question)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 3,
		"question": "What type of furniture do you prefer?",
		"type": "text",
		"category": "furniture",
		"answers": [{"id": "3a", "text": "Modern", "stylePoints": {"modern": 5}}]
	}`, string(data))
}

func TestQuestionList_EmptyValue(t *testing.T) {
	value, err := QuestionList{}.Value()

	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}

func TestImageMetadata_IsQuizAnswer(t *testing.T) {
	assert.True(t, ImageMetadata{QuestionNumber: 1, AnswerID: "1a", StylePoints: StyleScores{{Style: "modern", Points: 1}}}.IsQuizAnswer())
	assert.False(t, ImageMetadata{QuestionNumber: 1, AnswerID: "1a"}.IsQuizAnswer(), "Без stylePoints ответ не собирается")
	assert.False(t, ImageMetadata{AnswerID: "1a", StylePoints: StyleScores{{Style: "modern", Points: 1}}}.IsQuizAnswer())
}

func TestNormalizeStyleSlug(t *testing.T) {
	assert.Equal(t, "shabby-chic", NormalizeStyleSlug(" Shabby Chic "))
	assert.Equal(t, "mid-century", NormalizeStyleSlug("mid_century"))
	assert.Equal(t, "modern", NormalizeStyleSlug("MODERN"))
	assert.Equal(t, "", NormalizeStyleSlug("   "))
}
