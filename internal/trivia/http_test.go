package trivia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

func newTestRouter(categories CategoryStore, questions QuestionStore) http.Handler {
	handlers := NewHTTPHandlers(newTestService(categories, questions, nil), zerolog.Nop())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/categories", handlers.ListCategories)
	mux.HandleFunc("GET /v1/categories/{id}/questions", handlers.ListByCategory)
	mux.HandleFunc("GET /v1/questions", handlers.ListQuestions)
	mux.HandleFunc("POST /v1/questions", handlers.PostQuestions)
	mux.HandleFunc("DELETE /v1/questions/{id}", handlers.DeleteQuestion)
	mux.HandleFunc("POST /v1/quizzes", handlers.PlayQuiz)
	return mux
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func assertFailurePayload(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rec.Code)

	var payload httperrors.Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.False(t, payload.Success)
	assert.Equal(t, status, payload.Error)
	assert.Equal(t, message, payload.Message)
}

func TestGetCategories(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodGet, "/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, map[string]any{"1": "Science", "2": "Art"}, payload["categories"])
}

func TestGetCategoriesEmptyBank(t *testing.T) {
	router := newTestRouter(&stubCategoryStore{}, &memQuestionStore{})

	rec := doJSON(t, router, http.MethodGet, "/v1/categories", nil)
	assertFailurePayload(t, rec, http.StatusNotFound, httperrors.MsgNotFound)
}

func TestGetCategoriesStoreFailure(t *testing.T) {
	router := newTestRouter(&stubCategoryStore{err: errors.New("db down")}, &memQuestionStore{})

	rec := doJSON(t, router, http.MethodGet, "/v1/categories", nil)
	assertFailurePayload(t, rec, http.StatusUnprocessableEntity, httperrors.MsgUnprocessable)
}

func TestGetQuestionsPaginated(t *testing.T) {
	categories, _ := scenarioStores()
	questions := &memQuestionStore{}
	for i := 0; i < 12; i++ {
		_, err := questions.Insert(context.Background(), NewQuestion{
			Question: "q", Answer: "a", Difficulty: 1, Category: 1,
		})
		require.NoError(t, err)
	}
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodGet, "/v1/questions?page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, float64(12), payload["total_questions"])
	assert.Len(t, payload["questions"], 2)

	// Non-numeric page falls back to page 1.
	rec = doJSON(t, router, http.MethodGet, "/v1/questions?page=abc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["questions"], QuestionsPerPage)
}

func TestGetQuestionsEmptyBank(t *testing.T) {
	categories, _ := scenarioStores()
	router := newTestRouter(categories, &memQuestionStore{})

	rec := doJSON(t, router, http.MethodGet, "/v1/questions", nil)
	assertFailurePayload(t, rec, http.StatusNotFound, httperrors.MsgNotFound)
}

func TestPostQuestionsCreate(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodPost, "/v1/questions", map[string]any{
		"question":   "What boxer's original name is Cassius Clay?",
		"answer":     "Muhammad Ali",
		"difficulty": 1,
		"category":   4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(13), payload["created"])
	assert.Equal(t, float64(4), payload["total_questions"])
}

func TestPostQuestionsCreateMissingField(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodPost, "/v1/questions", map[string]any{
		"question": "incomplete",
		"category": 1,
	})
	assertFailurePayload(t, rec, http.StatusBadRequest, httperrors.MsgBadRequest)
}

func TestPostQuestionsSearch(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodPost, "/v1/questions", map[string]any{
		"searchTerm": "penicillin",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, float64(1), payload["total_questions"])
	assert.Len(t, payload["questions"], 1)
}

func TestPostQuestionsSearchNoMatches(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodPost, "/v1/questions", map[string]any{
		"searchTerm": "no such question anywhere",
	})
	assertFailurePayload(t, rec, http.StatusNotFound, httperrors.MsgNotFound)
}

func TestPostQuestionsSearchBlankTerm(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodPost, "/v1/questions", map[string]any{
		"searchTerm": "   ",
	})
	assertFailurePayload(t, rec, http.StatusBadRequest, httperrors.MsgBadRequest)
}

func TestDeleteQuestion(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodDelete, "/v1/questions/11", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(11), decodeBody(t, rec)["deleted"])

	rec = doJSON(t, router, http.MethodDelete, "/v1/questions/11", nil)
	assertFailurePayload(t, rec, http.StatusNotFound, httperrors.MsgNotFound)
}

func TestDeleteQuestionNonNumericID(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodDelete, "/v1/questions/abc", nil)
	assertFailurePayload(t, rec, http.StatusNotFound, httperrors.MsgNotFound)
}

func TestGetQuestionsByCategory(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodGet, "/v1/categories/1/questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, "Science", payload["current_category"])
	assert.Equal(t, float64(2), payload["total_questions"])
	assert.Len(t, payload["questions"], 2)
}

func TestGetQuestionsByUnknownCategory(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodGet, "/v1/categories/42/questions", nil)
	assertFailurePayload(t, rec, http.StatusNotFound, httperrors.MsgNotFound)
}

func TestPlayQuizMissingBody(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	req := httptest.NewRequest(http.MethodPost, "/v1/quizzes", strings.NewReader(""))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assertFailurePayload(t, rec, http.StatusBadRequest, httperrors.MsgBadRequest)
}

func TestPlayQuizExcludesPreviousQuestions(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodPost, "/v1/quizzes", map[string]any{
		"previous_questions": []int64{10},
		"quiz_category":      map[string]any{"id": 1, "type": "Science"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	question, ok := payload["question"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(11), question["id"])
}

func TestPlayQuizRoundComplete(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodPost, "/v1/quizzes", map[string]any{
		"previous_questions": []int64{10, 11},
		"quiz_category":      map[string]any{"id": 1},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, true, payload["round_complete"])
	assert.Nil(t, payload["question"])
}

func TestPlayQuizCategoryZeroMeansAll(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodPost, "/v1/quizzes", map[string]any{
		"previous_questions": []int64{10, 11},
		"quiz_category":      map[string]any{"id": 0},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	question, ok := payload["question"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(12), question["id"])
}

func TestPlayQuizUnknownCategory(t *testing.T) {
	categories, questions := scenarioStores()
	router := newTestRouter(categories, questions)

	rec := doJSON(t, router, http.MethodPost, "/v1/quizzes", map[string]any{
		"quiz_category": map[string]any{"id": 42},
	})
	assertFailurePayload(t, rec, http.StatusNotFound, httperrors.MsgNotFound)
}
