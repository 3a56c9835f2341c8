package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"five_in_row/internal/domain"
	"five_in_row/internal/logger"
)

// рассылает подтверждения ходов подписчикам доски
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	log     *slog.Logger
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		log:     logger.For("ws"),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.clients[c.BoardID]
	if !ok {
		subs = make(map[*Client]struct{})
		h.clients[c.BoardID] = subs
	}
	subs[c] = struct{}{}
	h.log.Debug("subscriber added", "board_id", c.BoardID, "subscribers", len(subs))
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	subs, ok := h.clients[c.BoardID]
	if !ok {
		return
	}
	if _, ok := subs[c]; !ok {
		return
	}
	delete(subs, c)
	if len(subs) == 0 {
		delete(h.clients, c.BoardID)
	}
	c.close()
}

// Subscribers возвращает число подписчиков доски
func (h *Hub) Subscribers(boardID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[boardID])
}

// BroadcastMove отправляет ход всем подписчикам; медленные клиенты отключаются
func (h *Hub) BroadcastMove(m domain.MoveConfirmation) {
	msg, err := json.Marshal(struct {
		Type string                  `json:"type"`
		Move domain.MoveConfirmation `json:"move"`
	}{Type: "move", Move: m})
	if err != nil {
		h.log.Error("failed to encode move", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[m.BoardID] {
		select {
		case c.Send <- msg:
		default:
			h.log.Warn("subscriber too slow, dropping", "board_id", m.BoardID)
			h.removeLocked(c)
		}
	}
}

// CloseBoard отключает всех подписчиков удаленной доски
func (h *Hub) CloseBoard(boardID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[boardID] {
		h.removeLocked(c)
	}
}
