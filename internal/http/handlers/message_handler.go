// README: Message handlers for send and conversation retrieval.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/http/middleware"
	"carpool/internal/modules/message"
)

type MessageHandler struct {
	messages *message.Service
}

func NewMessageHandler(messages *message.Service) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type sendMessageReq struct {
	PeerPhone string `json:"peer_phone"`
	Body      string `json:"body"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	m, err := h.messages.Send(c.Request.Context(), message.SendCommand{
		SenderPhone: middleware.CallerPhone(c),
		SenderName:  middleware.CallerName(c),
		PeerPhone:   req.PeerPhone,
		Body:        req.Body,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, m)
}

// Conversation returns the full exchange with the peer given in the
// query string.
func (h *MessageHandler) Conversation(c *gin.Context) {
	peer := c.Query("peer")
	if peer == "" {
		writeError(c, http.StatusBadRequest, "peer is required")
		return
	}
	msgs, err := h.messages.Conversation(c.Request.Context(), middleware.CallerPhone(c), peer)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"messages": msgs})
}
