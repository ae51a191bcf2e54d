package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/football-api/events"
	"github.com/Dosada05/football-api/services"
	"github.com/gorilla/websocket"
)

var feedRooms = map[string]bool{
	events.RoomAll:          true,
	services.ResourceLeague: true,
	services.ResourceClub:   true,
	services.ResourcePlayer: true,
	services.ResourceFan:    true,
}

type WebSocketHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler accepts connections whose Origin is in allowedOrigins;
// "*" allows any origin.
func NewWebSocketHandler(hub *events.Hub, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// ServeWs streams change notifications. ?resource=liga|klub|pemain|fans
// narrows the feed; without it every change is sent.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("resource")
	if room == "" {
		room = events.RoomAll
	}
	if !feedRooms[room] {
		errorResponse(w, r, http.StatusBadRequest, msgBadRequest, map[string]string{"resource": "The selected resource is invalid."})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		slog.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := events.NewClient(h.hub, conn, room)
	if !client.Register() {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
