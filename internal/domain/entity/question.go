package entity

import (
	"database/sql/driver"
)

// Типы вопросов
const (
	QuestionTypeImage = "image"
	QuestionTypeText  = "text"
)

// Категории вопросов, для которых в результате сохраняется выбранный ответ
const (
	QuestionCategoryArt       = "art"
	QuestionCategoryFurniture = "furniture"
)

// Answer представляет вариант ответа на вопрос квиза.
// StylePoints скрыты от клиента при выдаче вопросов (см. stylequiz.PublicQuestions).
type Answer struct {
	ID          string      `json:"id"`
	Text        string      `json:"text,omitempty"`
	Image       string      `json:"image,omitempty"`
	StylePoints StyleScores `json:"stylePoints,omitempty"`
}

// Question представляет вопрос квиза стилей
type Question struct {
	ID       int      `json:"id"`
	Text     string   `json:"question"`
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Answers  []Answer `json:"answers"`
}

// FindAnswer возвращает ответ по ID
func (q *Question) FindAnswer(answerID string) (*Answer, bool) {
	for i := range q.Answers {
		if q.Answers[i].ID == answerID {
			return &q.Answers[i], true
		}
	}
	return nil, false
}

// Clone возвращает глубокую копию вопроса
func (q Question) Clone() Question {
	out := q
	out.Answers = make([]Answer, len(q.Answers))
	for i, a := range q.Answers {
		a.StylePoints = a.StylePoints.Clone()
		out.Answers[i] = a
	}
	return out
}

// QuestionList - набор вопросов, хранится в JSONB
type QuestionList []Question

// Scan реализует sql.Scanner для QuestionList
func (l *QuestionList) Scan(value interface{}) error {
	*l = QuestionList{}
	return scanJSONB(value, l)
}

// Value реализует driver.Valuer для QuestionList
func (l QuestionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return jsonbValue([]Question(l))
}
