package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// WSHandler upgrades connections and attaches them to the settlement
// hub.
type WSHandler struct {
	hub *hub.Hub
}

// NewWSHandler creates a WebSocket handler.
func NewWSHandler(h *hub.Hub) *WSHandler {
	return &WSHandler{hub: h}
}

// HandleWebSocket upgrades an HTTP connection and streams settlement
// events to it until the peer disconnects.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("⚠️  WebSocket upgrade error: %v\n", err)
		return
	}

	clientID := uuid.New().String()
	c := hub.NewClient(clientID, conn, h.hub)

	h.hub.Register(c)

	go c.WritePump()
	go c.ReadPump()

	fmt.Printf("✓ WebSocket connection established: %s\n", clientID)
}
