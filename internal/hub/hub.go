// Package hub fans settlement events out to WebSocket subscribers.
package hub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

// Event is the wire message pushed to subscribers when a ticket
// reaches a terminal status.
type Event struct {
	Type      string         `json:"type"`
	Ticket    *models.Ticket `json:"ticket"`
	Timestamp time.Time      `json:"timestamp"`
}

const EventTicketSettled = "ticket_settled"

// Hub maintains the set of active clients and broadcasts settlement
// events to them.
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a hub. Run must be called for it to do anything.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop and blocks until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	fmt.Println("✓ Settlement hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// TicketSettled implements settlement.Notifier: every terminally
// settled ticket is pushed to all connected clients.
func (h *Hub) TicketSettled(ticket *models.Ticket) {
	event := Event{
		Type:      EventTicketSettled,
		Ticket:    ticket,
		Timestamp: time.Now(),
	}

	select {
	case h.broadcast <- event:
	default:
		fmt.Println("⚠️  Broadcast buffer full, dropping settlement event")
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// ClientCount returns the number of active clients.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	fmt.Printf("client %s connected (total: %d)\n", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		fmt.Printf("client %s disconnected (total: %d)\n", c.ID, len(h.clients))
	}
}

func (h *Hub) broadcastEvent(event Event) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range clients {
		if !c.trySend(event) {
			// Client buffer full, they are too slow.
			fmt.Printf("⚠️  client %s buffer full, disconnecting\n", c.ID)
			go h.Unregister(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	fmt.Printf("Shutting down hub (%d active clients)\n", len(h.clients))

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
