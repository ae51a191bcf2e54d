package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// RoomAll receives every change regardless of resource.
const RoomAll = "all"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

type Message struct {
	Type    string      `json:"type"` // e.g. "liga.created"
	Payload interface{} `json:"payload"`
	Room    string      `json:"room,omitempty"`
}

type envelope struct {
	room string
	data []byte
}

// Hub fans change notifications out to websocket clients grouped in rooms.
// Each resource (liga, klub, pemain, fans) has its own room.
type Hub struct {
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.stopOnce.Do(func() { close(h.done) })
			h.closeAll()
			return nil

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			total := len(h.rooms[client.room])
			h.mu.Unlock()
			h.logger.Debug("websocket client registered", slog.String("room", client.room), slog.Int("clients", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok && clients[client] {
				delete(clients, client)
				client.closeSend()
				if len(clients) == 0 {
					delete(h.rooms, client.room)
				}
			}
			h.mu.Unlock()
			h.logger.Debug("websocket client unregistered", slog.String("room", client.room))

		case msg := <-h.broadcast:
			h.deliver(msg.room, msg.data)
			if msg.room != RoomAll {
				h.deliver(RoomAll, msg.data)
			}
		}
	}
}

func (h *Hub) deliver(room string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("websocket client send buffer full, dropping message", slog.String("room", room))
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.rooms {
		for client := range clients {
			client.closeSend()
		}
		delete(h.rooms, room)
	}
}

// Publish queues a change notification for the resource room. It never
// blocks the caller; when the queue is full the message is dropped.
func (h *Hub) Publish(resource, action string, payload interface{}) {
	data, err := json.Marshal(Message{
		Type:    resource + "." + action,
		Payload: payload,
		Room:    resource,
	})
	if err != nil {
		h.logger.Error("failed to marshal change notification", slog.String("resource", resource), slog.Any("error", err))
		return
	}

	select {
	case h.broadcast <- envelope{room: resource, data: data}:
	default:
		h.logger.Warn("change notification queue full, dropping message", slog.String("resource", resource), slog.String("action", action))
	}
}

// Done is closed once Run has stopped accepting clients.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
