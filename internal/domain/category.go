package domain

import (
	"context"
	"errors"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	// List retrieves all categories ordered by id ascending
	List(ctx context.Context) ([]Category, error)

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id int) (*Category, error)
}

// Category represents a topic grouping for questions
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}
