package entity

import (
	"database/sql/driver"
	"time"
)

// Категории изображений
const (
	ImageCategoryQuiz          = "quiz"
	ImageCategoryStyle         = "style"
	ImageCategoryGeneral       = "general"
	ImageCategoryQuizQuestions = "quiz-questions"
	ImageCategoryStyleRooms    = "style-rooms"
)

// ImageCategories - допустимые категории
var ImageCategories = []string{
	ImageCategoryQuiz,
	ImageCategoryStyle,
	ImageCategoryGeneral,
	ImageCategoryQuizQuestions,
	ImageCategoryStyleRooms,
}

// ImageContentTypes - допустимые типы содержимого
var ImageContentTypes = []string{"image/jpeg", "image/png", "image/webp", "image/svg+xml"}

// ImageMetadata хранит данные, привязывающие изображение к вопросу квиза
// (QuestionNumber, AnswerID, StylePoints) или к стилю и комнате (Style, RoomType).
type ImageMetadata struct {
	QuestionNumber int         `json:"questionNumber,omitempty"`
	AnswerID       string      `json:"answerId,omitempty"`
	Description    string      `json:"description,omitempty"`
	StylePoints    StyleScores `json:"stylePoints,omitempty"`
	Style          string      `json:"style,omitempty"`
	RoomType       string      `json:"roomType,omitempty"`
	OriginalName   string      `json:"originalName,omitempty"`
}

// Scan реализует sql.Scanner для ImageMetadata
func (m *ImageMetadata) Scan(value interface{}) error {
	*m = ImageMetadata{}
	return scanJSONB(value, m)
}

// Value реализует driver.Valuer для ImageMetadata
func (m ImageMetadata) Value() (driver.Value, error) {
	return jsonbValue(m)
}

// IsQuizAnswer проверяет, хватает ли метаданных, чтобы превратить изображение в ответ
func (m ImageMetadata) IsQuizAnswer() bool {
	return m.QuestionNumber > 0 && m.AnswerID != "" && len(m.StylePoints) > 0
}

// Image хранит изображение в базе (base64) вместе с метаданными каталога
type Image struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Category    string        `gorm:"size:30;not null;index:idx_images_category" json:"category"`
	Subcategory string        `gorm:"size:30;not null;default:'';index:idx_images_category" json:"subcategory,omitempty"`
	Description string        `gorm:"size:500;not null;default:''" json:"description,omitempty"`
	Data        string        `gorm:"type:text;not null" json:"-"`
	ContentType string        `gorm:"size:30;not null" json:"contentType"`
	Size        int           `gorm:"not null" json:"size"`
	Width       int           `gorm:"not null;default:0" json:"width,omitempty"`
	Height      int           `gorm:"not null;default:0" json:"height,omitempty"`
	Tags        StringArray   `gorm:"type:jsonb;not null" json:"tags"`
	Metadata    ImageMetadata `gorm:"type:jsonb;not null" json:"metadata"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Image) TableName() string {
	return "images"
}

// URL возвращает публичный путь изображения
func (i *Image) URL() string {
	return ImageURL(i.Name)
}

// ImageURL формирует публичный путь по имени изображения
func ImageURL(name string) string {
	return "/api/images/" + name
}
