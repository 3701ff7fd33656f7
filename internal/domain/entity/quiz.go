package entity

import (
	"time"
)

// Quiz представляет вручную составленный набор вопросов.
// Активным считается последний созданный.
type Quiz struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Title     string       `gorm:"size:100;not null;default:''" json:"title"`
	Questions QuestionList `gorm:"type:jsonb;not null" json:"questions"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}
