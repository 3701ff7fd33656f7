package dto

// UpsertStyleRequest - описание стиля для сохранения администратором
type UpsertStyleRequest struct {
	Name            string   `json:"name" binding:"required,max=100"`
	Description     string   `json:"description" binding:"required"`
	Characteristics []string `json:"characteristics"`
	ColorPalette    []string `json:"colorPalette"`
	KeyElements     []string `json:"keyElements"`
	Image           string   `json:"image" binding:"omitempty,max=255"`
}
