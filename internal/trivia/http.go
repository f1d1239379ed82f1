package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers exposes the question bank use cases over REST. It is the
// outermost assembler: it shapes success payloads and maps every domain
// condition onto the uniform failure payload, without retries.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// ListCategories handles GET /v1/categories.
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.respondFailure(w, "list_categories", err)
		return
	}
	observe("list_categories", "ok")
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": categories,
	})
}

// ListQuestions handles GET /v1/questions?page=N.
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListQuestions(r.Context(), parsePage(r))
	if err != nil {
		h.respondFailure(w, "list_questions", err)
		return
	}
	observe("list_questions", "ok")
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"questions":       page.Questions,
		"total_questions": page.Total,
		"categories":      page.Categories,
	})
}

type questionPostRequest struct {
	// SearchTerm selects the search branch when present, even when
	// blank; a blank term is a bad request, not a create.
	SearchTerm *string `json:"searchTerm"`

	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
}

// PostQuestions handles POST /v1/questions: a search when the body
// carries searchTerm, a create otherwise.
func (h *HTTPHandlers) PostQuestions(w http.ResponseWriter, r *http.Request) {
	var req questionPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observe("post_questions", "bad_request")
		httperrors.RespondBadRequest(w)
		return
	}

	if req.SearchTerm != nil {
		h.searchQuestions(w, r, *req.SearchTerm)
		return
	}
	h.createQuestion(w, r, NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: req.Difficulty,
		Category:   req.Category,
	})
}

func (h *HTTPHandlers) searchQuestions(w http.ResponseWriter, r *http.Request, term string) {
	result, err := h.svc.SearchQuestions(r.Context(), term, parsePage(r))
	if err != nil {
		h.respondFailure(w, "search_questions", err)
		return
	}
	observe("search_questions", "ok")
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"questions":       result.Questions,
		"total_questions": result.Total,
	})
}

func (h *HTTPHandlers) createQuestion(w http.ResponseWriter, r *http.Request, q NewQuestion) {
	id, total, err := h.svc.CreateQuestion(r.Context(), q)
	if err != nil {
		h.respondFailure(w, "create_question", err)
		return
	}
	observe("create_question", "ok")
	h.respondJSON(w, http.StatusCreated, map[string]any{
		"success":         true,
		"created":         id,
		"total_questions": total,
	})
}

// DeleteQuestion handles DELETE /v1/questions/{id}.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		observe("delete_question", "not_found")
		httperrors.RespondNotFound(w)
		return
	}

	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		h.respondFailure(w, "delete_question", err)
		return
	}
	observe("delete_question", "ok")
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"deleted": id,
	})
}

// ListByCategory handles GET /v1/categories/{id}/questions.
func (h *HTTPHandlers) ListByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		observe("list_by_category", "not_found")
		httperrors.RespondNotFound(w)
		return
	}

	result, err := h.svc.ListByCategory(r.Context(), id, parsePage(r))
	if err != nil {
		h.respondFailure(w, "list_by_category", err)
		return
	}
	observe("list_by_category", "ok")
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": result.CurrentCategory,
	})
}

type quizCategoryRef struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

type quizPostRequest struct {
	PreviousQuestions []int64          `json:"previous_questions"`
	Category          *quizCategoryRef `json:"quiz_category"`
}

// PlayQuiz handles POST /v1/quizzes. An absent or undecodable body is a
// bad request; an empty round-complete result is still a success.
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observe("play_quiz", "bad_request")
		httperrors.RespondBadRequest(w)
		return
	}

	quizReq := QuizRequest{PreviousIDs: req.PreviousQuestions}
	// Category id 0 is the frontend's "all categories" selection.
	if req.Category != nil && req.Category.ID != 0 {
		quizReq.Category = &req.Category.ID
	}

	result, err := h.svc.NextQuizQuestion(r.Context(), quizReq)
	if err != nil {
		h.respondFailure(w, "play_quiz", err)
		return
	}

	observe("play_quiz", "ok")
	if result.Done {
		h.respondJSON(w, http.StatusOK, map[string]any{
			"success":        true,
			"question":       nil,
			"round_complete": true,
		})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"question": result.Question,
	})
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("response encode failed")
	}
}

// respondFailure maps domain conditions to the fixed failure payloads.
// Specific conditions stay specific; only unexpected store failures
// collapse to the generic 422.
func (h *HTTPHandlers) respondFailure(w http.ResponseWriter, useCase string, err error) {
	switch {
	case errors.Is(err, ErrNoSearchTerm), errors.Is(err, ErrValidation):
		observe(useCase, "bad_request")
		httperrors.RespondBadRequest(w)
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrQuestionNotFound):
		observe(useCase, "not_found")
		httperrors.RespondNotFound(w)
	default:
		observe(useCase, "unprocessable")
		h.logger.Error().Err(err).Str("use_case", useCase).Msg("store operation failed")
		httperrors.RespondUnprocessable(w)
	}
}

func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
