package entity

import (
	"strings"
	"time"
)

// Style описывает стиль интерьера: характеристики, палитру, ключевые элементы.
// Slug ("modern", "bohemian") совпадает с ключами stylePoints.
type Style struct {
	ID              uint        `gorm:"primaryKey" json:"-"`
	Slug            string      `gorm:"size:50;not null;uniqueIndex" json:"id"`
	Name            string      `gorm:"size:100;not null" json:"name"`
	Description     string      `gorm:"size:1000;not null" json:"description"`
	Characteristics StringArray `gorm:"type:jsonb;not null" json:"characteristics"`
	ColorPalette    StringArray `gorm:"type:jsonb;not null" json:"colorPalette"`
	KeyElements     StringArray `gorm:"type:jsonb;not null" json:"keyElements"`
	Image           string      `gorm:"size:255;not null;default:''" json:"image"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Style) TableName() string {
	return "styles"
}

// NormalizeStyleSlug приводит имя стиля к ключу словаря: "Shabby Chic" -> "shabby-chic"
func NormalizeStyleSlug(style string) string {
	fields := strings.FieldsFunc(strings.ToLower(style), func(r rune) bool {
		return r == ' ' || r == '_' || r == '\t'
	})
	return strings.Join(fields, "-")
}
