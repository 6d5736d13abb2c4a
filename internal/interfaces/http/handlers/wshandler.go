package handlers

import (
	"github.com/gin-gonic/gin"

	"mainta/internal/infrastructure/notification"
	"mainta/internal/shared/logger"
)

// WSHandler exposes the notification hub over a websocket endpoint.
type WSHandler struct {
	hub    *notification.Hub
	logger logger.Interface
}

func NewWSHandler(hub *notification.Hub, logger logger.Interface) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

func (h *WSHandler) Subscribe(c *gin.Context) {
	if err := h.hub.HandleConnection(c.Writer, c.Request); err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.Warnw("websocket upgrade failed", "error", err, "client_ip", c.ClientIP())
	}
}
