package stylequiz

import (
	"fmt"
	"strings"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	apperrors "github.com/yourusername/spacesnap-api/internal/pkg/errors"
)

// ValidateQuestions проверяет курируемый набор вопросов перед сохранением
func ValidateQuestions(questions []entity.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: quiz must contain at least one question", apperrors.ErrValidation)
	}

	seenQuestions := make(map[int]struct{}, len(questions))
	for _, q := range questions {
		if q.ID <= 0 {
			return fmt.Errorf("%w: question id must be positive, got %d", apperrors.ErrValidation, q.ID)
		}
		if _, dup := seenQuestions[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %d", apperrors.ErrValidation, q.ID)
		}
		seenQuestions[q.ID] = struct{}{}

		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: question %d has no text", apperrors.ErrValidation, q.ID)
		}
		if q.Type != entity.QuestionTypeImage && q.Type != entity.QuestionTypeText {
			return fmt.Errorf("%w: question %d has unknown type %q", apperrors.ErrValidation, q.ID, q.Type)
		}
		if len(q.Answers) == 0 {
			return fmt.Errorf("%w: question %d has no answers", apperrors.ErrValidation, q.ID)
		}

		seenAnswers := make(map[string]struct{}, len(q.Answers))
		for _, a := range q.Answers {
			if a.ID == "" {
				return fmt.Errorf("%w: question %d has an answer without id", apperrors.ErrValidation, q.ID)
			}
			if _, dup := seenAnswers[a.ID]; dup {
				return fmt.Errorf("%w: duplicate answer id %q in question %d", apperrors.ErrValidation, a.ID, q.ID)
			}
			seenAnswers[a.ID] = struct{}{}

			if a.Text == "" && a.Image == "" {
				return fmt.Errorf("%w: answer %q needs text or image", apperrors.ErrValidation, a.ID)
			}
			if err := a.StylePoints.Validate(); err != nil {
				return fmt.Errorf("%w: answer %q: %v", apperrors.ErrValidation, a.ID, err)
			}
		}
	}
	return nil
}
