package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quiz-grading-service/internal/app"
)

// WSHandler grades submissions sent over a websocket, one result per message.
type WSHandler struct {
	questions *app.QuestionService
	upgrader  websocket.Upgrader
}

func NewWSHandler(questions *app.QuestionService) *WSHandler {
	return &WSHandler{
		questions: questions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and grades every "submit" message against the
// quiz named by the quizId query parameter.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	if !validID(quizID) {
		http.Error(w, "missing or invalid quizId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			return
		}

		var reply any
		switch inbound.Type {
		case "submit":
			var payload submitRequest
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				reply = outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid submit payload"}}
				break
			}
			result, err := h.questions.SubmitAnswers(r.Context(), quizID, payload.Answers)
			if err != nil {
				_, message := classify(err)
				reply = outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}}
				break
			}
			reply = outboundMessage[any]{Type: "result", Payload: result}
		default:
			reply = outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}

		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("ws write error: %v", err)
			return
		}
	}
}
