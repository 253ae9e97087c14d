package service_test

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/quizbank/trivia/internal/domain"
	"github.com/quizbank/trivia/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepo struct {
	categories []domain.Category
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), r.categories...), nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	for _, category := range r.categories {
		if category.ID == id {
			c := category
			return &c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

type fakeQuestionRepo struct {
	questions []domain.Question
	nextID    int
}

func (r *fakeQuestionRepo) sorted(filter func(domain.Question) bool) []domain.Question {
	var out []domain.Question
	for _, question := range r.questions {
		if filter == nil || filter(question) {
			out = append(out, question)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeQuestionRepo) List(ctx context.Context) ([]domain.Question, error) {
	return r.sorted(nil), nil
}

func (r *fakeQuestionRepo) ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error) {
	return r.sorted(func(q domain.Question) bool { return q.Category == categoryID }), nil
}

func (r *fakeQuestionRepo) Search(ctx context.Context, term string) ([]domain.Question, error) {
	lower := strings.ToLower(term)
	return r.sorted(func(q domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), lower)
	}), nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	for _, question := range r.questions {
		if question.ID == id {
			q := question
			return &q, nil
		}
	}
	return nil, domain.ErrQuestionNotFound
}

func (r *fakeQuestionRepo) Create(ctx context.Context, question *domain.Question) error {
	if r.nextID == 0 {
		r.nextID = 1
		for _, q := range r.questions {
			if q.ID >= r.nextID {
				r.nextID = q.ID + 1
			}
		}
	}
	question.ID = r.nextID
	r.nextID++
	r.questions = append(r.questions, *question)
	return nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id int) error {
	for i, question := range r.questions {
		if question.ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

func newTestService(categories []domain.Category, questions []domain.Question) (*service.TriviaService, *fakeQuestionRepo) {
	questionRepo := &fakeQuestionRepo{questions: questions}
	categoryRepo := &fakeCategoryRepo{categories: categories}
	rng := rand.New(rand.NewSource(42))
	return service.NewTriviaService(categoryRepo, questionRepo, rng), questionRepo
}

func defaultCategories() []domain.Category {
	return []domain.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
	}
}

func defaultQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
		{ID: 2, Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", Category: 1, Difficulty: 2},
		{ID: 3, Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: 2, Difficulty: 3},
		{ID: 4, Question: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", Category: 3, Difficulty: 3},
		{ID: 5, Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2},
	}
}

func TestListCategories(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), nil)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 3)
	assert.Equal(t, "Science", categories[0].Type)
}

func TestListCategoriesEmpty(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	_, err := svc.ListCategories(context.Background())
	assert.ErrorIs(t, err, service.ErrNoCategories)
}

func TestListQuestionsShufflesButKeepsTotal(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), defaultQuestions())

	page, err := svc.ListQuestions(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Len(t, page.Questions, 5)
	assert.Len(t, page.Categories, 3)

	// Same five questions, whatever order the shuffle produced
	ids := make([]int, 0, len(page.Questions))
	for _, question := range page.Questions {
		ids = append(ids, question.ID)
	}
	sort.Ints(ids)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
}

func TestListQuestionsPageBeyondData(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), defaultQuestions())

	page, err := svc.ListQuestions(context.Background(), 20000)
	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.Equal(t, 5, page.Total)
}

func TestDeleteQuestion(t *testing.T) {
	svc, repo := newTestService(defaultCategories(), defaultQuestions())

	page, err := svc.DeleteQuestion(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	for _, question := range page.Questions {
		assert.NotEqual(t, 3, question.ID)
	}

	_, err = repo.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestDeleteQuestionNotFound(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), defaultQuestions())

	_, err := svc.DeleteQuestion(context.Background(), 999, 1)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestCreateQuestion(t *testing.T) {
	svc, repo := newTestService(defaultCategories(), defaultQuestions())

	question := &domain.Question{
		Question:   "In which year was Africa's most populous country formed?",
		Answer:     "1914",
		Category:   3,
		Difficulty: 3,
	}
	page, err := svc.CreateQuestion(context.Background(), question, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 6, question.ID)

	stored, err := repo.GetByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.Equal(t, "1914", stored.Answer)
}

func TestSearchQuestionsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), defaultQuestions())

	page, err := svc.SearchQuestions(context.Background(), "LAKE", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Contains(t, page.Questions[0].Question, "lake")
}

func TestSearchQuestionsNoMatches(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), defaultQuestions())

	_, err := svc.SearchQuestions(context.Background(), "zzzzzz", 1)
	assert.ErrorIs(t, err, service.ErrNoMatches)
}

func TestSearchQuestionsEmptyTerm(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), defaultQuestions())

	_, err := svc.SearchQuestions(context.Background(), "", 1)
	assert.ErrorIs(t, err, service.ErrEmptySearch)
}

func TestQuestionsByCategory(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), defaultQuestions())

	page, err := svc.QuestionsByCategory(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	for _, question := range page.Questions {
		assert.Equal(t, 3, question.Category)
	}
}

func TestQuestionsByCategoryMissing(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), defaultQuestions())

	_, err := svc.QuestionsByCategory(context.Background(), 1000, 1)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestQuestionsByCategoryEmptyIsNotAnError(t *testing.T) {
	categories := append(defaultCategories(), domain.Category{ID: 4, Type: "History"})
	svc, _ := newTestService(categories, defaultQuestions())

	page, err := svc.QuestionsByCategory(context.Background(), 4, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.Equal(t, 0, page.Total)
}

func TestQuizNeverRepeatsSeenQuestions(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), defaultQuestions())

	seen := []int{}
	for i := 0; i < 5; i++ {
		question, exhausted, err := svc.NextQuizQuestion(context.Background(), seen, 0)
		require.NoError(t, err)
		require.False(t, exhausted)
		assert.NotContains(t, seen, question.ID)
		seen = append(seen, question.ID)
	}

	_, exhausted, err := svc.NextQuizQuestion(context.Background(), seen, 0)
	require.NoError(t, err)
	assert.True(t, exhausted)
}

func TestQuizFiltersByCategory(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), defaultQuestions())

	for i := 0; i < 10; i++ {
		question, exhausted, err := svc.NextQuizQuestion(context.Background(), nil, 3)
		require.NoError(t, err)
		require.False(t, exhausted)
		assert.Equal(t, 3, question.Category)
	}
}

func TestQuizExhaustedForCategory(t *testing.T) {
	questions := []domain.Question{
		{ID: 5, Question: "q5", Answer: "a5", Category: 2, Difficulty: 1},
		{ID: 6, Question: "q6", Answer: "a6", Category: 2, Difficulty: 1},
	}
	svc, _ := newTestService(defaultCategories(), questions)

	question, exhausted, err := svc.NextQuizQuestion(context.Background(), []int{5, 6}, 2)
	require.NoError(t, err)
	assert.True(t, exhausted)
	assert.Nil(t, question)
}

func TestQuizSingleCandidateAlwaysTerminates(t *testing.T) {
	questions := []domain.Question{
		{ID: 7, Question: "q7", Answer: "a7", Category: 1, Difficulty: 1},
	}
	svc, _ := newTestService(defaultCategories(), questions)

	// Previous ids outside the candidate set must not stall the draw
	question, exhausted, err := svc.NextQuizQuestion(context.Background(), []int{1, 2, 3}, 1)
	require.NoError(t, err)
	require.False(t, exhausted)
	assert.Equal(t, 7, question.ID)

	_, exhausted, err = svc.NextQuizQuestion(context.Background(), []int{7, 8, 9}, 1)
	require.NoError(t, err)
	assert.True(t, exhausted)
}

func TestQuizEmptyCandidateSet(t *testing.T) {
	svc, _ := newTestService(defaultCategories(), nil)

	_, _, err := svc.NextQuizQuestion(context.Background(), nil, 0)
	assert.ErrorIs(t, err, service.ErrNoCandidates)
}
