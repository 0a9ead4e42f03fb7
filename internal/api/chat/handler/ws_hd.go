package chatHandler

import (
	"TravelGolang/internal/api/chat"
	"TravelGolang/internal/entity"
	contextPkg "TravelGolang/pkg/context"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type wsError struct {
	Error string `json:"error"`
}

// StreamConversation runs the chat turn loop over a websocket. Each inbound
// JSON message is processed exactly like POST /messages and the full turn
// response is written back on the same connection.
func (h *ChatHandler) StreamConversation(conn *websocket.Conn) {
	defer conn.Close()

	conversationID := conn.Params("id")

	userData, ok := conn.Locals("user").(entity.UserLoginData)
	if !ok {
		_ = conn.WriteJSON(wsError{Error: "Unauthorized"})
		return
	}

	requestID, _ := conn.Locals("X-Request-ID").(string)

	h.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"conversation_id": conversationID,
		"user_id":         userData.ID,
	}).Info("Websocket conversation stream opened")

	for {
		var req chat.SendMessageRequest
		if err := conn.ReadJSON(&req); err != nil {
			h.log.WithFields(logrus.Fields{
				"request_id":      requestID,
				"conversation_id": conversationID,
				"error":           err.Error(),
			}).Debug("Websocket read ended")
			return
		}

		if err := h.validator.Struct(req); err != nil {
			if err := conn.WriteJSON(wsError{Error: "Validation failed: " + err.Error()}); err != nil {
				return
			}
			continue
		}

		c, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), 30*time.Second)
		turn, err := h.chatService.SendMessage(c, userData.ID, conversationID, req, nil)
		cancel()

		if err != nil {
			h.log.WithFields(logrus.Fields{
				"request_id":      requestID,
				"conversation_id": conversationID,
				"error":           err.Error(),
			}).Warn("Websocket turn failed")
			if err := conn.WriteJSON(wsError{Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(turn); err != nil {
			return
		}
	}
}
