package dto

import (
	"time"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/service/stylequiz"
)

// SubmitQuizRequest - ответы пользователя на квиз
type SubmitQuizRequest struct {
	SessionID string                   `json:"sessionId" binding:"omitempty,max=100"`
	Answers   []entity.AnswerSelection `json:"answers" binding:"required"`
}

// ReplaceQuizRequest - новый курируемый набор вопросов
type ReplaceQuizRequest struct {
	Title     string            `json:"title" binding:"omitempty,max=200"`
	Questions []entity.Question `json:"questions" binding:"required,min=1"`
}

// QuestionsResponse - активный набор вопросов без весов стилей
type QuestionsResponse struct {
	Questions []entity.Question `json:"questions"`
	Total     int               `json:"total"`
}

// QuizResultResponse - результат квиза с описанием рекомендованного стиля
type QuizResultResponse struct {
	ResultID           uint                   `json:"resultId,omitempty"`
	SessionID          string                 `json:"sessionId"`
	RecommendedStyle   string                 `json:"recommendedStyle"`
	StyleDetails       entity.Style           `json:"styleDetails"`
	SelectedArt        *entity.AnswerSnapshot `json:"selectedArt"`
	SelectedFurniture  *entity.AnswerSnapshot `json:"selectedFurniture"`
	StyleScores        entity.StyleScores     `json:"styleScores"`
	StyleRoomImages    []entity.RoomImage     `json:"styleRoomImages"`
	HasReferenceImages bool                   `json:"has_reference_images"`
	CreatedAt          *time.Time             `json:"createdAt,omitempty"`
}

// NewQuizResultResponse собирает ответ из результата движка
func NewQuizResultResponse(outcome *stylequiz.Outcome) *QuizResultResponse {
	result := outcome.Result
	scores := result.StyleScores
	if scores == nil {
		scores = entity.StyleScores{}
	}
	rooms := []entity.RoomImage(result.StyleRoomImages)
	if rooms == nil {
		rooms = []entity.RoomImage{}
	}

	resp := &QuizResultResponse{
		ResultID:           result.ID,
		SessionID:          result.SessionID,
		RecommendedStyle:   result.RecommendedStyle,
		StyleDetails:       outcome.StyleDetails,
		SelectedArt:        result.SelectedArt,
		SelectedFurniture:  result.SelectedFurniture,
		StyleScores:        scores,
		StyleRoomImages:    rooms,
		HasReferenceImages: result.HasReferenceImages(),
	}
	if !result.CreatedAt.IsZero() {
		createdAt := result.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

// ResultSummary - краткая запись истории прохождений
type ResultSummary struct {
	ResultID         uint               `json:"resultId"`
	RecommendedStyle string             `json:"recommendedStyle"`
	StyleScores      entity.StyleScores `json:"styleScores"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// NewResultSummaries преобразует результаты в записи истории
func NewResultSummaries(results []entity.QuizResult) []ResultSummary {
	summaries := make([]ResultSummary, 0, len(results))
	for _, r := range results {
		scores := r.StyleScores
		if scores == nil {
			scores = entity.StyleScores{}
		}
		summaries = append(summaries, ResultSummary{
			ResultID:         r.ID,
			RecommendedStyle: r.RecommendedStyle,
			StyleScores:      scores,
			CreatedAt:        r.CreatedAt,
		})
	}
	return summaries
}
