package trivia

// QuestionsPerPage is the fixed page size for every paginated listing.
const QuestionsPerPage = 10

// Paginate returns the page-th slice of items (1-based, QuestionsPerPage
// items per page), clamped to the bounds of items. A page beyond the end
// yields an empty slice rather than an error, so callers never need to
// pre-validate page numbers. Pages below 1 are treated as page 1.
func Paginate(items []Question, page int) []Question {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * QuestionsPerPage
	end := start + QuestionsPerPage

	if start >= len(items) {
		return []Question{}
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
