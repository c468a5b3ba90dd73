// server/ws/hub.go
package ws

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ViniZap4/studynotes-server/domain"
	"github.com/ViniZap4/studynotes-server/platform"
	"github.com/ViniZap4/studynotes-server/store"
)

const EventNoteShared = "note_shared"

type Message struct {
	Type  string              `json:"type"`
	Note  *domain.Note        `json:"note,omitempty"`
	Admin *bool               `json:"admin,omitempty"`
	Share *platform.ShareData `json:"share,omitempty"`
}

// Conn is the part of a websocket connection the hub uses.
type Conn interface {
	WriteJSON(v interface{}) error
	ReadJSON(v interface{}) error
	Close() error
}

type Hub struct {
	clients    map[Conn]bool
	broadcast  chan Message
	register   chan Conn
	unregister chan Conn
	done       chan struct{}
	mu         sync.RWMutex
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[Conn]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan Conn),
		unregister: make(chan Conn),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.drop(conn)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var failed []Conn
			for conn := range h.clients {
				if err := conn.WriteJSON(msg); err != nil {
					h.log.Warn().Err(err).Msg("websocket write error")
					failed = append(failed, conn)
				}
			}
			h.mu.RUnlock()
			for _, conn := range failed {
				h.drop(conn)
			}
		}
	}
}

func (h *Hub) drop(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Broadcast queues msg for every client. A full queue drops the message
// and reports false.
func (h *Hub) Broadcast(msg Message) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		h.log.Warn().Str("type", msg.Type).Msg("broadcast queue full, dropping message")
		return false
	}
}

// Publish forwards a store event to the clients.
func (h *Hub) Publish(ev store.Event) {
	msg := Message{Type: ev.Type, Note: ev.Note}
	if ev.Type == store.EventModeChanged {
		admin := ev.Admin
		msg.Admin = &admin
	}
	h.Broadcast(msg)
}

// Share hands a note to the connected clients. With no clients, or when
// the message cannot be queued, there is nothing to share to.
func (h *Hub) Share(data platform.ShareData) error {
	if h.ClientCount() == 0 {
		return platform.ErrShareUnavailable
	}
	if !h.Broadcast(Message{Type: EventNoteShared, Share: &data}) {
		return platform.ErrShareUnavailable
	}
	return nil
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Register(conn Conn) {
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
	}
}

func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// HandleConnection reads from conn until it fails, then unregisters it.
func (h *Hub) HandleConnection(conn Conn) {
	defer h.Unregister(conn)

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		if msgType, ok := msg["type"].(string); ok && msgType == "subscribe" {
			h.log.Debug().Msg("client subscribed")
		}
	}
}
