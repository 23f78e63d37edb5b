package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/ctf-arena/internal/realtime"
)

// WSHandler обрабатывает WebSocket-подключения к ленте событий соревнования
type WSHandler struct {
	feed *realtime.Feed
}

// NewWSHandler создает новый обработчик WebSocket-подключений
func NewWSHandler(feed *realtime.Feed) *WSHandler {
	return &WSHandler{feed: feed}
}

// HandleConnection апгрейдит соединение и подписывает клиента на
// события соревнования (засчитанные решения)
func (h *WSHandler) HandleConnection(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)
	h.feed.ServeCompetition(c.Writer, c.Request, competitionID)
}
