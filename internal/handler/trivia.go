package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/quizbank/trivia/internal/domain"
	"github.com/quizbank/trivia/internal/service"
)

// TriviaHandler handles question-bank HTTP requests
type TriviaHandler struct {
	trivia   *service.TriviaService
	validate *validator.Validate
}

// NewTriviaHandler creates a new trivia handler
func NewTriviaHandler(trivia *service.TriviaService) *TriviaHandler {
	return &TriviaHandler{
		trivia:   trivia,
		validate: validator.New(),
	}
}

// Register registers the trivia routes
func (h *TriviaHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.GetCategories)
	e.GET("/categories/:id/questions", h.GetQuestionsByCategory)
	e.GET("/questions", h.GetQuestions)
	e.POST("/questions", h.CreateQuestion)
	e.DELETE("/questions/:id", h.DeleteQuestion)
	e.GET("/questions/search", h.SearchQuestions)
	e.POST("/questions/search", h.SearchQuestions)
	e.POST("/quizzes", h.GetQuizQuestion)
}

// CreateQuestionRequest represents the request to add a new question
type CreateQuestionRequest struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   int    `json:"category" validate:"required"`
	Difficulty int    `json:"difficulty" validate:"required"`
}

// SearchRequest represents the request to search question text
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// QuizCategory identifies the category a quiz draws from. ID 0, like an
// absent quiz_category, means all categories.
type QuizCategory struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// QuizRequest represents the request for the next quiz question
type QuizRequest struct {
	PreviousQuestions []int         `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

type categoriesResponse struct {
	Categories      map[int]string `json:"categories"`
	Success         bool           `json:"success"`
	TotalCategories int            `json:"total_categories"`
}

type questionsResponse struct {
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory []int             `json:"current_category"`
	Categories      map[int]string    `json:"categories"`
	Success         bool              `json:"success"`
}

type deleteQuestionResponse struct {
	Success        bool              `json:"success"`
	Deleted        int               `json:"deleted"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

type createQuestionResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory []int             `json:"current_category"`
	Categories      map[int]string    `json:"categories"`
	Created         int               `json:"created"`
}

type categoryQuestionsResponse struct {
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory int               `json:"current_category"`
	Categories      []domain.Category `json:"categories"`
	Success         bool              `json:"success"`
}

type quizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

type quizExhaustedResponse struct {
	Success           bool  `json:"success"`
	PreviousQuestions []int `json:"previous_questions"`
	FinalQuestion     bool  `json:"final_question"`
}

// GetCategories lists all categories as an id-to-type mapping
func (h *TriviaHandler) GetCategories(c echo.Context) error {
	categories, err := h.trivia.ListCategories(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrNoCategories) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, categoriesResponse{
		Categories:      categoryMap(categories),
		Success:         true,
		TotalCategories: len(categories),
	})
}

// GetQuestions lists all questions in a freshly shuffled order, paginated.
// An out-of-range page returns an empty list with success true.
func (h *TriviaHandler) GetQuestions(c echo.Context) error {
	page, err := h.trivia.ListQuestions(c.Request().Context(), pageParam(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, questionsResponse{
		Questions:       page.Questions,
		TotalQuestions:  page.Total,
		CurrentCategory: []int{},
		Categories:      categoryMap(page.Categories),
		Success:         true,
	})
}

// DeleteQuestion removes a question by id and returns the requested page
// of the remaining questions
func (h *TriviaHandler) DeleteQuestion(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	page, err := h.trivia.DeleteQuestion(c.Request().Context(), id, pageParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	return c.JSON(http.StatusOK, deleteQuestionResponse{
		Success:        true,
		Deleted:        id,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
	})
}

// CreateQuestion inserts a new question and returns the requested page of
// the updated listing. Every failure, validation or storage, is 422.
func (h *TriviaHandler) CreateQuestion(c echo.Context) error {
	var req CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	question := &domain.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		Difficulty: req.Difficulty,
	}

	page, err := h.trivia.CreateQuestion(c.Request().Context(), question, pageParam(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	return c.JSON(http.StatusOK, createQuestionResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.Total,
		CurrentCategory: []int{},
		Categories:      categoryMap(page.Categories),
		Created:         question.ID,
	})
}

// SearchQuestions matches question text case-insensitively against the
// submitted term. A missing or empty term is a 400; zero matches is a 404.
func (h *TriviaHandler) SearchQuestions(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	page, err := h.trivia.SearchQuestions(c.Request().Context(), req.SearchTerm, pageParam(c))
	if err != nil {
		if errors.Is(err, service.ErrEmptySearch) {
			return echo.NewHTTPError(http.StatusBadRequest)
		}
		return echo.NewHTTPError(http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, questionsResponse{
		Questions:       page.Questions,
		TotalQuestions:  page.Total,
		CurrentCategory: []int{},
		Categories:      categoryMap(page.Categories),
		Success:         true,
	})
}

// GetQuestionsByCategory lists the questions of one category. Unlike the
// other listings, categories is returned as an array of category objects.
func (h *TriviaHandler) GetQuestionsByCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	page, err := h.trivia.QuestionsByCategory(c.Request().Context(), id, pageParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, categoryQuestionsResponse{
		Questions:       page.Questions,
		TotalQuestions:  page.Total,
		CurrentCategory: id,
		Categories:      page.Categories,
		Success:         true,
	})
}

// GetQuizQuestion draws one random question the client has not seen yet.
// When every candidate has been shown it reports final_question instead.
func (h *TriviaHandler) GetQuizQuestion(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	categoryID := 0
	if req.QuizCategory != nil {
		categoryID = req.QuizCategory.ID
	}
	previous := req.PreviousQuestions
	if previous == nil {
		previous = []int{}
	}

	question, exhausted, err := h.trivia.NextQuizQuestion(c.Request().Context(), previous, categoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}
	if exhausted {
		return c.JSON(http.StatusOK, quizExhaustedResponse{
			Success:           true,
			PreviousQuestions: previous,
			FinalQuestion:     true,
		})
	}

	return c.JSON(http.StatusOK, quizResponse{
		Success:  true,
		Question: question,
	})
}

// pageParam reads the page query parameter, defaulting to 1 when absent,
// non-numeric, or below 1.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func categoryMap(categories []domain.Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, category := range categories {
		m[category.ID] = category.Type
	}
	return m
}
