package trivia

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// WSHandler streams a full quiz round over one WebSocket connection.
// Unlike the REST endpoint, the server tracks the previously-seen id
// set for the lifetime of the connection, so clients only ask for the
// next question.
type WSHandler struct {
	svc      *Service
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

type wsQuizFrame struct {
	Type     string    `json:"type"`
	Question *Question `json:"question,omitempty"`
	Message  string    `json:"message,omitempty"`
}

type wsClientFrame struct {
	Action string `json:"action"`
}

func NewWSHandler(svc *Service, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger.With().Str("component", "trivia_ws").Logger(),
	}
}

// HandleQuizRound handles GET /ws/quizzes?category=N. Each question is
// pushed as a frame; the client answers with {"action":"next"} until
// the round_complete frame closes the round.
func (h *WSHandler) HandleQuizRound(w http.ResponseWriter, r *http.Request) {
	req := QuizRequest{}
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httperrors.RespondBadRequest(w)
			return
		}
		if _, err := h.svc.categories.GetByID(r.Context(), id); err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				httperrors.RespondNotFound(w)
			} else {
				h.logger.Error().Err(err).Msg("category lookup failed")
				httperrors.RespondUnprocessable(w)
			}
			return
		}
		req.Category = &id
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		result, err := h.svc.NextQuizQuestion(r.Context(), req)
		if err != nil {
			h.logger.Error().Err(err).Msg("quiz pick failed")
			_ = conn.WriteJSON(wsQuizFrame{Type: "error", Message: httperrors.MsgUnprocessable})
			return
		}

		if result.Done {
			_ = conn.WriteJSON(wsQuizFrame{Type: "round_complete"})
			return
		}

		if err := conn.WriteJSON(wsQuizFrame{Type: "question", Question: result.Question}); err != nil {
			return
		}
		req.PreviousIDs = append(req.PreviousIDs, result.Question.ID)

		var frame wsClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		if frame.Action != "next" {
			_ = conn.WriteJSON(wsQuizFrame{Type: "error", Message: "unknown action"})
			return
		}
	}
}
