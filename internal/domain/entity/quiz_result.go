package entity

import (
	"database/sql/driver"
	"time"
)

// AnswerSelection - выбор пользователя: пара (вопрос, ответ)
type AnswerSelection struct {
	QuestionID int    `json:"questionId"`
	AnswerID   string `json:"answerId"`
}

// AnswerSelections - список выборов попытки, хранится в JSONB
type AnswerSelections []AnswerSelection

// Scan реализует sql.Scanner для AnswerSelections
func (a *AnswerSelections) Scan(value interface{}) error {
	*a = AnswerSelections{}
	return scanJSONB(value, a)
}

// Value реализует driver.Valuer для AnswerSelections
func (a AnswerSelections) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return jsonbValue([]AnswerSelection(a))
}

// AnswerSnapshot - копия выбранного ответа (арт, мебель)
type AnswerSnapshot struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

// Scan реализует sql.Scanner для AnswerSnapshot
func (a *AnswerSnapshot) Scan(value interface{}) error {
	return scanJSONB(value, a)
}

// Value реализует driver.Valuer для AnswerSnapshot
func (a AnswerSnapshot) Value() (driver.Value, error) {
	return jsonbValue(a)
}

// RoomImage - референсное фото комнаты в стиле
type RoomImage struct {
	RoomType  string `json:"roomType"`
	ImageURL  string `json:"imageUrl"`
	ImageName string `json:"imageName"`
}

// RoomImageList - список фото комнат, хранится в JSONB
type RoomImageList []RoomImage

// Scan реализует sql.Scanner для RoomImageList
func (l *RoomImageList) Scan(value interface{}) error {
	*l = RoomImageList{}
	return scanJSONB(value, l)
}

// Value реализует driver.Valuer для RoomImageList
func (l RoomImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return jsonbValue([]RoomImage(l))
}

// QuizResult представляет сохраненный результат прохождения квиза.
// После создания не изменяется.
type QuizResult struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	UserID            *uint            `gorm:"index" json:"userId,omitempty"`
	SessionID         string           `gorm:"size:100;not null;index" json:"sessionId"`
	Answers           AnswerSelections `gorm:"type:jsonb;not null" json:"answers"`
	SelectedArt       *AnswerSnapshot  `gorm:"type:jsonb" json:"selectedArt"`
	SelectedFurniture *AnswerSnapshot  `gorm:"type:jsonb" json:"selectedFurniture"`
	RecommendedStyle  string           `gorm:"size:50;not null;index" json:"recommendedStyle"`
	StyleScores       StyleScores      `gorm:"type:jsonb;not null" json:"styleScores"`
	StyleRoomImages   RoomImageList    `gorm:"type:jsonb;not null" json:"styleRoomImages"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// TableName определяет имя таблицы для GORM
func (QuizResult) TableName() string {
	return "quiz_results"
}

// HasReferenceImages сообщает, нашлись ли фото комнат для стиля
func (r *QuizResult) HasReferenceImages() bool {
	return len(r.StyleRoomImages) > 0
}
