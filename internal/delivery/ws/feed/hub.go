package ws_feed

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/humanbelnik/cinetally/internal/model"
	"github.com/humanbelnik/cinetally/internal/service/consensus"
)

const (
	EventCollectionUpdate = "COLLECTION_UPDATE"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Event
}

// Hub pushes collection updates to every connected client. It carries no
// collection state of its own: whatever the sync layer emits goes out as-is.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*Client]bool),
		logger:  logger,
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	h.logger.Info("feed client registered", "clients", len(h.clients))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}

	h.logger.Info("feed client unregistered", "clients", len(h.clients))
}

// BroadcastEntries fans the current collection state out to all clients.
// Wired as the sync layer's update callback.
func (h *Hub) BroadcastEntries(entries []model.Entry) {
	h.broadcast(Event{
		Type:    EventCollectionUpdate,
		Payload: convertEntries(entries),
	})
}

func (h *Hub) broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- event:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

type entryPayload struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Kind       string    `json:"kind"`
	Category   string    `json:"category"`
	Year       int       `json:"year"`
	Score      float64   `json:"score"`
	Votes      int       `json:"votes"`
	PosterLink string    `json:"poster_link,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func convertEntries(entries []model.Entry) map[string]interface{} {
	out := make([]entryPayload, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryPayload{
			ID:         e.ID,
			Title:      e.Title,
			Kind:       string(e.Kind),
			Category:   string(e.Category),
			Year:       e.Year,
			Score:      consensus.Display(consensus.Score(e)),
			Votes:      1 + len(e.Ratings),
			PosterLink: e.PosterLink,
			CreatedAt:  e.CreatedAt,
		})
	}

	return map[string]interface{}{
		"entries": out,
		"total":   len(out),
	}
}

func (h *Hub) startClientReading(client *Client) {
	defer func() {
		h.removeClient(client)
		client.conn.Close()
	}()

	for {
		_, _, err := client.conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (h *Hub) startClientWriting(client *Client) {
	defer client.conn.Close()

	for event := range client.send {
		if err := client.conn.WriteJSON(event); err != nil {
			break
		}
	}
}
