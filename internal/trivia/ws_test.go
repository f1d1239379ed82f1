package trivia

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialQuizSocket(t *testing.T, serverURL, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(serverURL, "http") + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return conn
}

func TestQuizRoundOverWebSocket(t *testing.T) {
	categories, questions := scenarioStores()
	handler := NewWSHandler(newTestService(categories, questions, nil), zerolog.Nop())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleQuizRound))
	defer server.Close()

	conn := dialQuizSocket(t, server.URL, "?category=1")
	defer conn.Close()

	var seen []int64
	for {
		var frame wsQuizFrame
		require.NoError(t, conn.ReadJSON(&frame))
		if frame.Type == "round_complete" {
			break
		}
		require.Equal(t, "question", frame.Type)
		require.NotNil(t, frame.Question)
		assert.NotContains(t, seen, frame.Question.ID, "round must never repeat a question")
		seen = append(seen, frame.Question.ID)
		require.NoError(t, conn.WriteJSON(wsClientFrame{Action: "next"}))
	}

	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	assert.Equal(t, []int64{10, 11}, seen)
}

func TestQuizRoundSocketUnknownCategory(t *testing.T) {
	categories, questions := scenarioStores()
	handler := NewWSHandler(newTestService(categories, questions, nil), zerolog.Nop())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleQuizRound))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?category=99"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err, "handshake must fail for an unknown category")
	if conn != nil {
		conn.Close()
	}
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuizRoundSocketUnknownAction(t *testing.T) {
	categories, questions := scenarioStores()
	handler := NewWSHandler(newTestService(categories, questions, nil), zerolog.Nop())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleQuizRound))
	defer server.Close()

	conn := dialQuizSocket(t, server.URL, "?category=2")
	defer conn.Close()

	var frame wsQuizFrame
	require.NoError(t, conn.ReadJSON(&frame))
	require.Equal(t, "question", frame.Type)

	require.NoError(t, conn.WriteJSON(wsClientFrame{Action: "dance"}))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "error", frame.Type)
}
