package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"go-inventory-qr/pkg/logger"
)

// Client is the part of *websocket.Conn the hub needs.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Event is the envelope broadcast to every connected client.
type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data"`
	At   time.Time `json:"at"`
}

// maxBacklog bounds the events waiting for Run.
const maxBacklog = 1024

type Hub struct {
	clients    map[Client]bool
	register   chan Client
	unregister chan Client
	done       chan struct{}
	mutex      sync.Mutex
	logg       *logger.Logger

	// Events wait here in publish order until Run sends them.
	queueMu sync.Mutex
	queue   [][]byte
	wake    chan struct{}
}

func NewHub(logg *logger.Logger) *Hub {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Hub{
		clients:    make(map[Client]bool),
		register:   make(chan Client),
		unregister: make(chan Client),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
		logg:       logg,
	}
}

// Run dispatches registrations and broadcasts until ctx is cancelled, then
// closes every remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			return

		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			h.logg.Debug(ctx, "websocket client connected")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case <-h.wake:
			for _, message := range h.drain() {
				h.send(message)
			}
		}
	}
}

func (h *Hub) drain() [][]byte {
	h.queueMu.Lock()
	defer h.queueMu.Unlock()
	batch := h.queue
	h.queue = nil
	return batch
}

func (h *Hub) send(message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

// Register adds conn. It returns false once the hub has stopped.
func (h *Hub) Register(conn Client) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(conn Client) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish queues an event for every client without blocking the caller.
// Events are delivered in the order they were published. When the backlog is
// full the event is dropped.
func (h *Hub) Publish(eventType string, payload any) {
	select {
	case <-h.done:
		return
	default:
	}

	msg, err := json.Marshal(Event{Type: eventType, Data: payload, At: time.Now().UTC()})
	if err != nil {
		h.logg.Warn(context.Background(), "marshal websocket event", err)
		return
	}

	h.queueMu.Lock()
	if len(h.queue) >= maxBacklog {
		h.queueMu.Unlock()
		h.logg.Warn(context.Background(), "websocket backlog full, dropping event", nil)
		return
	}
	h.queue = append(h.queue, msg)
	h.queueMu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
}
