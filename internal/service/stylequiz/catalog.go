package stylequiz

import (
	"fmt"
	"strings"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
)

// DefaultStyle возвращается, когда ни один стиль не набрал очков
const DefaultStyle = "modern"

// defaultAnswerWeight - вес единственного стиля в ответах встроенного квиза
const defaultAnswerWeight = 5

// Catalog - неизменяемые справочные данные движка: таблица соответствия
// стилей, встроенные описания стилей, встроенный набор вопросов и подписи
// вопросов для сборки квиза из каталога изображений.
//
// Создается один раз при старте процесса и передается в движок по указателю.
// Методы возвращают копии, поэтому вызывающий код не может изменить данные.
type Catalog struct {
	styleMapping       map[string]string
	styleDetails       map[string]entity.Style
	defaultQuestions   []entity.Question
	questionTexts      map[int]string
	questionCategories map[int]string
}

// DefaultCatalog собирает справочник со встроенными данными
func DefaultCatalog() *Catalog {
	return &Catalog{
		styleMapping: map[string]string{
			"traditional":  "rustic",
			"classical":    "rustic",
			"eclectic":     "bohemian",
			"transitional": "modern",
			"maximalist":   "bohemian",
		},
		styleDetails:       defaultStyleDetails(),
		defaultQuestions:   defaultQuestions(),
		questionTexts:      defaultQuestionTexts(),
		questionCategories: defaultQuestionCategories(),
	}
}

// ImageStyleFor возвращает стиль, под которым хранятся фото комнат.
// Результат используется только для поиска изображений.
func (c *Catalog) ImageStyleFor(style string) string {
	normalized := strings.ToLower(style)
	if mapped, ok := c.styleMapping[normalized]; ok {
		return mapped
	}
	return normalized
}

// MappedStyles возвращает стили, у которых нет собственных фото
func (c *Catalog) MappedStyles() map[string]string {
	out := make(map[string]string, len(c.styleMapping))
	for k, v := range c.styleMapping {
		out[k] = v
	}
	return out
}

// HasStyleDetails проверяет, есть ли встроенное описание стиля
func (c *Catalog) HasStyleDetails(slug string) bool {
	_, ok := c.styleDetails[slug]
	return ok
}

// StyleDetails возвращает встроенное описание стиля.
// Для неизвестного стиля возвращается описание DefaultStyle.
func (c *Catalog) StyleDetails(slug string) entity.Style {
	style, ok := c.styleDetails[slug]
	if !ok {
		style = c.styleDetails[DefaultStyle]
	}
	return cloneStyle(style)
}

// AllStyleDetails возвращает все встроенные описания
func (c *Catalog) AllStyleDetails() []entity.Style {
	out := make([]entity.Style, 0, len(c.styleDetails))
	for _, slug := range builtinStyleOrder {
		if style, ok := c.styleDetails[slug]; ok {
			out = append(out, cloneStyle(style))
		}
	}
	return out
}

// DefaultQuestions возвращает копию встроенного набора вопросов
func (c *Catalog) DefaultQuestions() []entity.Question {
	out := make([]entity.Question, len(c.defaultQuestions))
	for i, q := range c.defaultQuestions {
		out[i] = q.Clone()
	}
	return out
}

// QuestionText возвращает текст вопроса по его номеру в каталоге изображений
func (c *Catalog) QuestionText(number int) string {
	if text, ok := c.questionTexts[number]; ok {
		return text
	}
	return fmt.Sprintf("Question %d", number)
}

// QuestionCategory возвращает категорию вопроса по его номеру
func (c *Catalog) QuestionCategory(number int) string {
	if category, ok := c.questionCategories[number]; ok {
		return category
	}
	return "general"
}

func cloneStyle(s entity.Style) entity.Style {
	s.Characteristics = append(entity.StringArray(nil), s.Characteristics...)
	s.ColorPalette = append(entity.StringArray(nil), s.ColorPalette...)
	s.KeyElements = append(entity.StringArray(nil), s.KeyElements...)
	return s
}

func defaultQuestionTexts() map[int]string {
	return map[int]string{
		1: "How do you primarily use your living space?",
		2: "What colors do you prefer in your home?",
		3: "What type of furniture do you prefer?",
		4: "Which of these best describes your preferred vibe?",
		5: "How much furniture do you want in your space?",
		6: "Which material do you prefer for your furniture and finishes?",
		7: "What type of lighting do you prefer?",
	}
}

func defaultQuestionCategories() map[int]string {
	return map[int]string{
		1: "ambiance",
		2: "color",
		3: entity.QuestionCategoryFurniture,
		4: "vibe",
		5: "furniture-amount",
		6: "material",
		7: "lighting",
	}
}

// textQuestion собирает вопрос встроенного квиза: у каждого ответа один стиль
func textQuestion(id int, category string, texts []string, styles []string) entity.Question {
	q := entity.Question{
		ID:       id,
		Text:     defaultQuestionTexts()[id],
		Type:     entity.QuestionTypeText,
		Category: category,
		Answers:  make([]entity.Answer, len(texts)),
	}
	for i := range texts {
		q.Answers[i] = entity.Answer{
			ID:          fmt.Sprintf("%d%c", id, 'a'+i),
			Text:        texts[i],
			StylePoints: entity.StyleScores{{Style: styles[i], Points: defaultAnswerWeight}},
		}
	}
	return q
}

func defaultQuestions() []entity.Question {
	return []entity.Question{
		textQuestion(1, "usage",
			[]string{"Relaxing/Resting", "Entertaining Guests", "Working/Studying", "Family Time"},
			[]string{"scandinavian", "modern", "minimalist", "rustic"}),
		textQuestion(2, "color",
			[]string{"Neutral tones (Whites, Grays, Beiges)", "Bold colors (Red, Yellow, Green)", "Earthy tones (Greens, Browns)", "Pastels (Light Pink, Blue, Lavender)"},
			[]string{"scandinavian", "bohemian", "rustic", "shabby-chic"}),
		textQuestion(3, entity.QuestionCategoryFurniture,
			[]string{"Modern, Clean lines, minimal design", "Vintage, Timeless and classic pieces", "Industrial, Exposed metal and wood", "Eclectic, A mix of different styles and eras"},
			[]string{"modern", "rustic", "industrial", "bohemian"}),
		textQuestion(4, "vibe",
			[]string{"Cozy and inviting", "Bright and open", "Calm and serene", "Luxurious and sophisticated"},
			[]string{"rustic", "scandinavian", "minimalist", "modern"}),
		textQuestion(5, "amount",
			[]string{"A few statement pieces", "Plenty of comfortable seating", "A few high-end, luxurious pieces", "A mix of old and new furniture"},
			[]string{"minimalist", "scandinavian", "modern", "bohemian"}),
		textQuestion(6, "material",
			[]string{"Wood", "Metal and Glass", "Fabric (upholstered)", "Leather and Polished Wood"},
			[]string{"rustic", "industrial", "shabby-chic", "modern"}),
		textQuestion(7, "lighting",
			[]string{"Natural light with big windows", "Bright and well-lit with lamps", "Soft, ambient lighting", "Moody, low-light atmosphere"},
			[]string{"scandinavian", "modern", "bohemian", "industrial"}),
	}
}

var builtinStyleOrder = []string{
	"modern", "minimalist", "bohemian", "scandinavian", "industrial", "rustic", "shabby-chic",
	"traditional", "transitional", "eclectic", "classical", "maximalist",
}

func builtinStyle(slug, name, description string, characteristics, palette, elements []string) entity.Style {
	return entity.Style{
		Slug:            slug,
		Name:            name,
		Description:     description,
		Characteristics: characteristics,
		ColorPalette:    palette,
		KeyElements:     elements,
		Image:           entity.ImageURL(slug),
	}
}

func defaultStyleDetails() map[string]entity.Style {
	styles := []entity.Style{
		builtinStyle("modern", "Modern",
			"Clean lines, neutral colors, and functional design characterize the modern style.",
			[]string{"Minimalist", "Functional", "Clean lines", "Neutral colors"},
			[]string{"#000000", "#FFFFFF", "#808080", "#C0C0C0"},
			[]string{"Glass", "Steel", "Concrete", "Simple furniture"}),
		builtinStyle("minimalist", "Minimalist",
			"Less is more. Focus on essential elements with plenty of space and light.",
			[]string{"Simple", "Uncluttered", "Functional", "Neutral palette"},
			[]string{"#FFFFFF", "#F5F5F5", "#E0E0E0", "#333333"},
			[]string{"Open space", "Natural light", "Simple forms", "Hidden storage"}),
		builtinStyle("bohemian", "Bohemian",
			"Eclectic, colorful, and full of life. Mix patterns, textures, and cultural elements.",
			[]string{"Eclectic", "Colorful", "Textured", "Personal"},
			[]string{"#B8860B", "#8B4513", "#FF6347", "#4682B4"},
			[]string{"Textiles", "Plants", "Vintage items", "Global decor"}),
		builtinStyle("scandinavian", "Scandinavian",
			"Cozy minimalism with natural materials, light colors, and functional design.",
			[]string{"Hygge", "Natural", "Light", "Functional"},
			[]string{"#FFFFFF", "#F0F0F0", "#D2B48C", "#8B7355"},
			[]string{"Wood", "Wool", "Natural light", "Simple furniture"}),
		builtinStyle("industrial", "Industrial",
			"Raw, unfinished look with exposed elements and urban warehouse feel.",
			[]string{"Raw", "Urban", "Exposed elements", "Dark tones"},
			[]string{"#2F4F4F", "#696969", "#8B4513", "#CD853F"},
			[]string{"Metal", "Brick", "Concrete", "Edison bulbs"}),
		builtinStyle("rustic", "Rustic",
			"Warm, natural and lived-in. Rough wood, stone and handcrafted pieces bring the countryside indoors.",
			[]string{"Warm", "Natural", "Handcrafted", "Cozy"},
			[]string{"#8B5A2B", "#A0522D", "#DEB887", "#556B2F"},
			[]string{"Reclaimed wood", "Stone", "Wool throws", "Exposed beams"}),
		builtinStyle("shabby-chic", "Shabby Chic",
			"Soft, romantic and vintage-inspired, with worn finishes and pastel fabrics.",
			[]string{"Romantic", "Vintage", "Soft", "Feminine"},
			[]string{"#FFF0F5", "#E6E6FA", "#F5F5DC", "#B0C4DE"},
			[]string{"Distressed furniture", "Floral fabrics", "Lace", "Pastel accents"}),
		builtinStyle("traditional", "Traditional",
			"Classic, timeless design with rich colors, elegant furniture, and refined details.",
			[]string{"Classic", "Elegant", "Warm", "Detailed"},
			[]string{"#8B4513", "#A0522D", "#D2691E", "#F5DEB3"},
			[]string{"Wood furniture", "Crown molding", "Classic patterns", "Warm lighting"}),
		builtinStyle("transitional", "Transitional",
			"Perfect blend of traditional and contemporary styles for a balanced look.",
			[]string{"Balanced", "Neutral", "Comfortable", "Sophisticated"},
			[]string{"#F5F5DC", "#D3D3D3", "#A9A9A9", "#696969"},
			[]string{"Mixed materials", "Neutral colors", "Clean lines", "Comfort"}),
		builtinStyle("eclectic", "Eclectic",
			"Mix and match different styles, periods, and cultures for a unique personal space.",
			[]string{"Mixed", "Personal", "Creative", "Unexpected"},
			[]string{"#FF6347", "#4682B4", "#FFD700", "#9370DB"},
			[]string{"Mix of styles", "Bold colors", "Unique pieces", "Personal items"}),
		builtinStyle("classical", "Classical",
			"Inspired by Greek and Roman design with symmetry, columns, and ornate details.",
			[]string{"Symmetrical", "Ornate", "Grand", "Timeless"},
			[]string{"#F5F5DC", "#FFE4B5", "#F0E68C", "#BDB76B"},
			[]string{"Columns", "Moldings", "Symmetry", "Rich fabrics"}),
		builtinStyle("maximalist", "Maximalist",
			"More is more! Bold patterns, rich colors, and layers of decor create visual interest.",
			[]string{"Bold", "Layered", "Colorful", "Dramatic"},
			[]string{"#FF1493", "#00CED1", "#FFD700", "#8A2BE2"},
			[]string{"Patterns", "Colors", "Art", "Collections"}),
	}

	out := make(map[string]entity.Style, len(styles))
	for _, s := range styles {
		out[s.Slug] = s
	}
	return out
}
