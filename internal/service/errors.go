package service

import "errors"

// Common service errors
var (
	ErrNoCategories = errors.New("no categories exist")
	ErrNoMatches    = errors.New("no questions match the search term")
	ErrEmptySearch  = errors.New("search term is required")
	ErrNoCandidates = errors.New("no candidate questions for the quiz")
)
