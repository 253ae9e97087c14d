package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves all questions ordered by id ascending
	List(ctx context.Context) ([]Question, error)

	// ListByCategory retrieves all questions in a category ordered by id ascending
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)

	// Search retrieves all questions whose text contains the term,
	// case-insensitively, ordered by id ascending
	Search(ctx context.Context, term string) ([]Question, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create inserts a new question and fills in its generated ID
	Create(ctx context.Context, question *Question) error

	// Delete removes a question by its ID
	Delete(ctx context.Context, id int) error
}

// Question represents a trivia question
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}
