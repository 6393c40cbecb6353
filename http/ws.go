package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageType 消息类型
type MessageType string

const (
	MessageAssess     MessageType = "assess"
	MessageAssessment MessageType = "assessment"
	MessageError      MessageType = "error"
)

const (
	wsIdleTimeout  = 5 * time.Minute
	wsWriteTimeout = 10 * time.Second
	wsMaxMessage   = 64 << 10
)

// Message WebSocket消息结构
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
	ID        string          `json:"id"`
}

// handleAssessWS answers each "assess" message with one "assessment" or
// "error" message carrying the same id. Messages on a connection are handled
// in order.
func (a *API) handleAssessWS(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsMaxMessage)

	clientID := GetRequestID(r.Context())
	logger := a.logger.With(zap.String("client_id", clientID))
	logger.Info("websocket client connected")

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
		var in Message
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			logger.Info("websocket client disconnected")
			return
		}

		out := a.answer(r.Context(), in)
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(out); err != nil {
			logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (a *API) answer(ctx context.Context, in Message) Message {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	reply := func(t MessageType, v any) Message {
		data, _ := json.Marshal(v)
		return Message{Type: t, Timestamp: time.Now().UTC(), Data: data, ID: id}
	}

	if in.Type != MessageAssess {
		return reply(MessageError, errorResponse{Error: "unsupported message type " + string(in.Type), Kind: "invalid_input"})
	}
	result, err := a.assess(ctx, in.Data)
	if err != nil {
		_, resp := a.errorFor(ctx, err)
		return reply(MessageError, resp)
	}
	return reply(MessageAssessment, newAssessResponse(result))
}
