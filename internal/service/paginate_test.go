package service_test

import (
	"testing"

	"github.com/quizbank/trivia/internal/domain"
	"github.com/quizbank/trivia/internal/service"
	"github.com/stretchr/testify/assert"
)

func makeQuestions(n int) []domain.Question {
	questions := make([]domain.Question, n)
	for i := range questions {
		questions[i] = domain.Question{ID: i + 1, Question: "q", Answer: "a", Category: 1, Difficulty: 1}
	}
	return questions
}

func TestPaginateWindow(t *testing.T) {
	questions := makeQuestions(25)

	page1 := service.Paginate(1, questions)
	assert.Len(t, page1, 10)
	assert.Equal(t, questions[0:10], page1)

	page2 := service.Paginate(2, questions)
	assert.Len(t, page2, 10)
	assert.Equal(t, questions[10:20], page2)

	page3 := service.Paginate(3, questions)
	assert.Len(t, page3, 5)
	assert.Equal(t, questions[20:25], page3)
}

func TestPaginateBeyondData(t *testing.T) {
	questions := makeQuestions(25)

	page := service.Paginate(20000, questions)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestPaginateInvalidPageDefaultsToFirst(t *testing.T) {
	questions := makeQuestions(15)

	assert.Equal(t, questions[0:10], service.Paginate(0, questions))
	assert.Equal(t, questions[0:10], service.Paginate(-3, questions))
}

func TestPaginateEmptyInput(t *testing.T) {
	page := service.Paginate(1, nil)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}
