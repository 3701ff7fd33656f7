package stylequiz

import "github.com/yourusername/spacesnap-api/internal/domain/entity"

// Tally - итог подсчета очков по одной попытке
type Tally struct {
	Scores            entity.StyleScores
	SelectedArt       *entity.AnswerSnapshot
	SelectedFurniture *entity.AnswerSnapshot
	// Unresolved - выборы, ссылающиеся на неизвестный вопрос или ответ
	Unresolved []entity.AnswerSelection
}

// Score суммирует stylePoints выбранных ответов.
//
// Порядок стилей в Scores - порядок, в котором стиль впервые получил очки.
// Итоговые суммы от порядка ответов не зависят. Выбор с неизвестным
// вопросом или ответом пропускается и попадает в Unresolved.
func Score(answers []entity.AnswerSelection, questions []entity.Question) Tally {
	byID := make(map[int]*entity.Question, len(questions))
	for i := range questions {
		if _, exists := byID[questions[i].ID]; !exists {
			byID[questions[i].ID] = &questions[i]
		}
	}

	tally := Tally{Scores: entity.StyleScores{}}
	for _, selection := range answers {
		question, ok := byID[selection.QuestionID]
		if !ok {
			tally.Unresolved = append(tally.Unresolved, selection)
			continue
		}
		answer, ok := question.FindAnswer(selection.AnswerID)
		if !ok {
			tally.Unresolved = append(tally.Unresolved, selection)
			continue
		}

		for _, sp := range answer.StylePoints {
			tally.Scores.Add(sp.Style, sp.Points)
		}

		switch question.Category {
		case entity.QuestionCategoryArt:
			tally.SelectedArt = &entity.AnswerSnapshot{ID: answer.ID, Image: answer.Image}
		case entity.QuestionCategoryFurniture:
			tally.SelectedFurniture = &entity.AnswerSnapshot{ID: answer.ID, Image: answer.Image}
		}
	}
	return tally
}

// Resolve выбирает стиль с наибольшим количеством очков.
// При равенстве побеждает стиль, встретившийся раньше. Если ни один
// стиль не набрал положительных очков, возвращается DefaultStyle.
func Resolve(scores entity.StyleScores) string {
	winner := DefaultStyle
	highest := 0
	for _, sc := range scores {
		if sc.Points > highest {
			highest = sc.Points
			winner = sc.Style
		}
	}
	return winner
}
