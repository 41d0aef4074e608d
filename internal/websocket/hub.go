package websocket

import (
	"context"
	"encoding/json"
	"log/slog"

	"hrms-portal/internal/event"
)

// Hub fans record events from the bus out to every connected client.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	bus  event.Bus
	log  *slog.Logger
	done chan struct{}
}

func NewHub(bus event.Bus, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		bus:        bus,
		log:        log.With("component", "websocket"),
		done:       make(chan struct{}),
	}
}

// Run pumps events until ctx ends, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	events, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			h.log.Debug("client connected", "user", client.user, "clients", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Debug("client disconnected", "user", client.user, "clients", len(h.clients))
			}
		case e, ok := <-events:
			if !ok {
				return
			}
			message, err := json.Marshal(e)
			if err != nil {
				h.log.Error("failed to marshal event", "error", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall the broadcast.
					close(client.send)
					delete(h.clients, client)
					h.log.Warn("dropping slow websocket client", "user", client.user)
				}
			}
		}
	}
}
