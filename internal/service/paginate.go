package service

import "github.com/quizbank/trivia/internal/domain"

// QuestionsPerPage is the fixed page size for every paginated listing.
const QuestionsPerPage = 10

// Paginate returns the zero-based half-open window
// [(page-1)*QuestionsPerPage, page*QuestionsPerPage) over questions.
// Pages beyond the end of the data yield an empty slice, never an error.
func Paginate(page int, questions []domain.Question) []domain.Question {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * QuestionsPerPage
	if start >= len(questions) {
		return []domain.Question{}
	}

	end := start + QuestionsPerPage
	if end > len(questions) {
		end = len(questions)
	}

	return questions[start:end]
}
