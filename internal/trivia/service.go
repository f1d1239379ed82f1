package trivia

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// CategoryStore provides read-only access to category records.
type CategoryStore interface {
	// List returns all categories ordered by display type ascending.
	// An empty store yields an empty slice, not an error.
	List(ctx context.Context) ([]Category, error)
	// GetByID returns ErrCategoryNotFound when no category has the id.
	GetByID(ctx context.Context, id int64) (Category, error)
}

// QuestionStore provides filtered, ordered access to question records.
// All listings are ordered by question id ascending.
type QuestionStore interface {
	ListAll(ctx context.Context) ([]Question, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Question, error)
	// SearchByText matches term as a case-insensitive substring of the
	// question text. Term validation is the caller's job.
	SearchByText(ctx context.Context, term string) ([]Question, error)
	// ListCandidates restricts to the given category (nil means all)
	// and excludes every id in excludeIDs.
	ListCandidates(ctx context.Context, categoryID *int64, excludeIDs []int64) ([]Question, error)
	// Insert persists q and returns the store-assigned id.
	Insert(ctx context.Context, q NewQuestion) (int64, error)
	// DeleteByID reports whether a record was found and removed.
	DeleteByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Service implements the question bank use cases on top of the store
// adapters. It holds no state between calls; the only shared mutable
// resource is the persistent dataset itself.
type Service struct {
	categories CategoryStore
	questions  QuestionStore
	cache      CategoryCache
	intN       func(int) int
	logger     zerolog.Logger
}

func NewService(categories CategoryStore, questions QuestionStore, cache CategoryCache, logger zerolog.Logger) *Service {
	return &Service{
		categories: categories,
		questions:  questions,
		cache:      cache,
		intN:       defaultIntN,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

// ListCategories returns the id -> type mapping of every category,
// read-through the cache. An empty bank is ErrNotFound: the frontend
// cannot function without seeded categories.
func (s *Service) ListCategories(ctx context.Context) (CategoryMap, error) {
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNotFound
	}
	return categories, nil
}

// ListQuestions returns one page of all questions plus the total count
// and the category mapping.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	all, err := s.questions.ListAll(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}
	if len(all) == 0 {
		return QuestionPage{}, ErrNotFound
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:  Paginate(all, page),
		Total:      len(all),
		Categories: categories,
	}, nil
}

// SearchQuestions returns one page of the questions whose text contains
// term, case-insensitively. Zero matches is ErrNotFound, a blank term
// is ErrNoSearchTerm; the two are distinct conditions.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (SearchResult, error) {
	if strings.TrimSpace(term) == "" {
		return SearchResult{}, ErrNoSearchTerm
	}

	matches, err := s.questions.SearchByText(ctx, term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search questions: %w", err)
	}
	if len(matches) == 0 {
		return SearchResult{}, ErrNotFound
	}

	return SearchResult{
		Questions: Paginate(matches, page),
		Total:     len(matches),
	}, nil
}

// ListByCategory returns one page of the questions in the category. An
// unknown category id is ErrCategoryNotFound; a known but empty
// category is a legitimate empty page.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64, page int) (CategoryQuestions, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, err
	}

	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("list by category: %w", err)
	}

	return CategoryQuestions{
		Questions:       Paginate(questions, page),
		Total:           len(questions),
		CurrentCategory: category.Type,
	}, nil
}

// CreateQuestion validates and persists a new question, returning the
// store-assigned id and the new total question count.
func (s *Service) CreateQuestion(ctx context.Context, q NewQuestion) (int64, int, error) {
	if err := validateNewQuestion(q); err != nil {
		return 0, 0, err
	}

	id, err := s.questions.Insert(ctx, q)
	if err != nil {
		return 0, 0, fmt.Errorf("insert question: %w", err)
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count questions: %w", err)
	}

	s.logger.Info().Int64("question_id", id).Int64("category", q.Category).Msg("question created")
	return id, total, nil
}

// DeleteQuestion removes the question by id. An absent id is
// ErrQuestionNotFound, not a store failure.
func (s *Service) DeleteQuestion(ctx context.Context, id int64) error {
	found, err := s.questions.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if !found {
		return ErrQuestionNotFound
	}
	s.logger.Info().Int64("question_id", id).Msg("question deleted")
	return nil
}

// NextQuizQuestion picks one question the round has not shown yet,
// uniformly at random over the filtered candidate set, or reports the
// round complete when every candidate has been seen.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (QuizResult, error) {
	if req.Category != nil {
		if _, err := s.categories.GetByID(ctx, *req.Category); err != nil {
			return QuizResult{}, err
		}
	}

	candidates, err := s.questions.ListCandidates(ctx, req.Category, req.PreviousIDs)
	if err != nil {
		return QuizResult{}, fmt.Errorf("list quiz candidates: %w", err)
	}

	return pickQuestion(candidates, s.intN), nil
}

func (s *Service) categoryMap(ctx context.Context) (CategoryMap, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	m := make(CategoryMap, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}

	if s.cache != nil && len(m) > 0 {
		// Best effort: a failed cache write never fails the request.
		if err := s.cache.Set(ctx, m); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return m, nil
}

func validateNewQuestion(q NewQuestion) error {
	switch {
	case strings.TrimSpace(q.Question) == "":
		return fmt.Errorf("%w: question text is required", ErrValidation)
	case strings.TrimSpace(q.Answer) == "":
		return fmt.Errorf("%w: answer text is required", ErrValidation)
	case q.Difficulty <= 0:
		return fmt.Errorf("%w: difficulty must be a positive integer", ErrValidation)
	case q.Category <= 0:
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	return nil
}
