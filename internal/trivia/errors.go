package trivia

import "errors"

// Sentinel conditions surfaced by the service. Handlers translate these
// into the uniform error payloads; any other error collapses to the
// generic unprocessable response.
var (
	// ErrNotFound covers every empty-listing and absent-record case
	// the API treats as client-visible "resource not found".
	ErrNotFound = errors.New("resource not found")

	// ErrCategoryNotFound marks an id that resolves to no category.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrQuestionNotFound marks a delete targeting an absent question.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrNoSearchTerm is returned when a search request carries an
	// empty or whitespace-only term. Distinct from zero matches.
	ErrNoSearchTerm = errors.New("no search term supplied")

	// ErrValidation marks a create request with missing or invalid
	// required fields.
	ErrValidation = errors.New("invalid question payload")
)
