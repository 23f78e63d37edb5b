// Package realtime раздает обновления итоговых таблиц по WebSocket.
// Клиент подписывается на соревнование и получает событие на каждое
// засчитанное решение. Фид best-effort: источник истины - итоговые
// таблицы, упущенное событие восполняется обычным чтением standings.
package realtime

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yourusername/ctf-arena/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 16
)

// SolveEvent - событие "команде засчитано решение"
type SolveEvent struct {
	CompetitionID uint      `json:"competition_id"`
	TeamID        uint      `json:"team_id"`
	ChallengeID   uint      `json:"challenge_id"`
	Score         int       `json:"score"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan SolveEvent
}

// Feed - хаб подписчиков, сгруппированных по соревнованию
type Feed struct {
	mu       sync.Mutex
	clients  map[uint]map[*client]bool // competitionID → клиенты
	upgrader websocket.Upgrader
}

// NewFeed создает новый фид итогов
func NewFeed() *Feed {
	return &Feed{
		clients: make(map[uint]map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Доступ контролирует внешний слой, фид отдает только публичные итоги
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeCompetition апгрейдит HTTP-запрос до WebSocket и подписывает
// соединение на события соревнования до закрытия клиентом.
func (f *Feed) ServeCompetition(w http.ResponseWriter, r *http.Request, competitionID uint) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Realtime] WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan SolveEvent, sendBufferSize),
	}

	f.register(competitionID, c)
	log.Printf("[Realtime] Клиент %s подписан на соревнование #%d", c.id, competitionID)

	go f.writeLoop(competitionID, c)
	f.readLoop(competitionID, c)
}

// NotifySolve реализует service.StandingsNotifier: рассылает событие
// всем подписчикам соревнования. Медленный клиент пропускает событие
// (non-blocking send), рассылка не задерживает сдачу флага.
func (f *Feed) NotifySolve(competitionID, teamID, challengeID uint, score int) {
	event := SolveEvent{
		CompetitionID: competitionID,
		TeamID:        teamID,
		ChallengeID:   challengeID,
		Score:         score,
		OccurredAt:    time.Now(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients[competitionID] {
		select {
		case c.send <- event:
		default:
			log.Printf("[Realtime] Клиент %s не успевает, событие пропущено", c.id)
		}
	}
}

func (f *Feed) register(competitionID uint, c *client) {
	f.mu.Lock()
	if f.clients[competitionID] == nil {
		f.clients[competitionID] = make(map[*client]bool)
	}
	f.clients[competitionID][c] = true
	f.mu.Unlock()
	metrics.RealtimeClients.Inc()
}

func (f *Feed) unregister(competitionID uint, c *client) {
	f.mu.Lock()
	if clients, ok := f.clients[competitionID]; ok {
		if clients[c] {
			delete(clients, c)
			close(c.send)
			metrics.RealtimeClients.Dec()
		}
		if len(clients) == 0 {
			delete(f.clients, competitionID)
		}
	}
	f.mu.Unlock()
}

// readLoop дочитывает соединение до закрытия; входящие сообщения фид не принимает
func (f *Feed) readLoop(competitionID uint, c *client) {
	defer func() {
		f.unregister(competitionID, c)
		c.conn.Close()
		log.Printf("[Realtime] Клиент %s отключен", c.id)
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *Feed) writeLoop(competitionID uint, c *client) {
	defer c.conn.Close()
	for event := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(event); err != nil {
			log.Printf("[Realtime] WebSocket write error for client %s: %v", c.id, err)
			f.unregister(competitionID, c)
			return
		}
	}
	// Канал закрыт при unregister - шлем close frame
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
