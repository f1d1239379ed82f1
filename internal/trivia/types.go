package trivia

// Category groups questions under a display type (e.g. "Science").
// Categories are seeded once and never mutated by the service.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// Question is a single quiz item. Category is a weak reference to a
// Category id; a dangling reference is tolerated and simply never
// matches a category filter.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
}

// NewQuestion carries the fields required to insert a question.
// The id is assigned by the store.
type NewQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
}

// CategoryMap is the outward id -> type mapping used by listings.
type CategoryMap map[int64]string

// QuestionPage is the result of the paginated listings.
type QuestionPage struct {
	Questions  []Question
	Total      int
	Categories CategoryMap
}

// CategoryQuestions is the result of a by-category listing.
type CategoryQuestions struct {
	Questions       []Question
	Total           int
	CurrentCategory string
}

// SearchResult holds the matches for a text search.
type SearchResult struct {
	Questions []Question
	Total     int
}

// QuizRequest selects the next question of a round. Category is
// optional (nil means all categories); PreviousIDs holds every
// question id already shown this round.
type QuizRequest struct {
	Category    *int64
	PreviousIDs []int64
}

// QuizResult is either one question or the end of the round.
// Question is nil exactly when Done is true.
type QuizResult struct {
	Question *Question
	Done     bool
}
