package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/quizbank/trivia/internal/domain"
)

// QuestionPage is the outcome of a listing operation: one page of
// questions plus the pre-pagination total. Categories is filled only by
// operations whose response includes the category listing.
type QuestionPage struct {
	Questions  []domain.Question
	Total      int
	Categories []domain.Category
}

// TriviaService implements the question-bank operations over the
// category and question repositories.
type TriviaService struct {
	categoryRepo domain.CategoryRepository
	questionRepo domain.QuestionRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewTriviaService creates a new trivia service. A nil rng gets a
// time-seeded source; tests pass a fixed seed for reproducible draws.
func NewTriviaService(categoryRepo domain.CategoryRepository, questionRepo domain.QuestionRepository, rng *rand.Rand) *TriviaService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TriviaService{
		categoryRepo: categoryRepo,
		questionRepo: questionRepo,
		rng:          rng,
	}
}

// ListCategories retrieves all categories ordered by id
func (s *TriviaService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	return categories, nil
}

// ListQuestions reads the full question list ordered by id, shuffles it,
// and returns the requested page. The shuffle is intentional: every page
// load presents a different random ordering. Total is the full
// pre-pagination count.
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.shuffle(questions)

	return &QuestionPage{
		Questions:  Paginate(page, questions),
		Total:      len(questions),
		Categories: categories,
	}, nil
}

// DeleteQuestion removes the question with the given id and returns the
// requested page of the remaining ordered list. A missing id is
// domain.ErrQuestionNotFound; the delete and the re-read are two separate
// store operations.
func (s *TriviaService) DeleteQuestion(ctx context.Context, id, page int) (*QuestionPage, error) {
	if _, err := s.questionRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions: Paginate(page, questions),
		Total:     len(questions),
	}, nil
}

// CreateQuestion inserts the question and returns the requested page of
// the re-read ordered list. The new question appears in the returned page
// only if it lands within the page window; it is persisted and counted
// either way.
func (s *TriviaService) CreateQuestion(ctx context.Context, question *domain.Question, page int) (*QuestionPage, error) {
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:  Paginate(page, questions),
		Total:      len(questions),
		Categories: categories,
	}, nil
}

// SearchQuestions performs a case-insensitive substring match on question
// text and returns the requested page of matches ordered by id. An empty
// term is ErrEmptySearch; zero matches is ErrNoMatches.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error) {
	if term == "" {
		return nil, ErrEmptySearch
	}

	questions, err := s.questionRepo.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoMatches
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:  Paginate(page, questions),
		Total:      len(questions),
		Categories: categories,
	}, nil
}

// QuestionsByCategory returns the requested page of questions in the
// given category, ordered by id. A missing category is
// domain.ErrCategoryNotFound; an existing category with no questions is
// an empty page, not an error.
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID, page int) (*QuestionPage, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:  Paginate(page, questions),
		Total:      len(questions),
		Categories: categories,
	}, nil
}

// NextQuizQuestion draws one question uniformly at random from the
// candidates not yet listed in previous. Category id 0 means all
// categories. The unseen subset is computed directly, so the draw always
// terminates; an empty unseen subset reports exhaustion (question nil,
// exhausted true). An empty candidate set is ErrNoCandidates.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, previous []int, categoryID int) (*domain.Question, bool, error) {
	var candidates []domain.Question
	var err error
	if categoryID != 0 {
		candidates, err = s.questionRepo.ListByCategory(ctx, categoryID)
	} else {
		candidates, err = s.questionRepo.List(ctx)
	}
	if err != nil {
		return nil, false, err
	}
	if len(candidates) == 0 {
		return nil, false, ErrNoCandidates
	}

	seen := make(map[int]bool, len(previous))
	for _, id := range previous {
		seen[id] = true
	}

	unseen := candidates[:0:0]
	for _, candidate := range candidates {
		if !seen[candidate.ID] {
			unseen = append(unseen, candidate)
		}
	}
	if len(unseen) == 0 {
		return nil, true, nil
	}

	question := unseen[s.intn(len(unseen))]
	return &question, false, nil
}

func (s *TriviaService) shuffle(questions []domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

func (s *TriviaService) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
