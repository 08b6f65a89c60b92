package services

import (
	"context"
	"sync"
	"time"
)

const (
	EventLessonDone     = "lesson.done"
	EventLessonNotDone  = "lesson.not_done"
	EventLessonVerified = "lesson.verified"
	EventIngestFinished = "ingest.finished"
)

type ActivityEvent struct {
	Type       string    `json:"type"`
	At         time.Time `json:"at"`
	LessonID   string    `json:"lessonId,omitempty"`
	LessonCode string    `json:"lessonCode,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	UserName   string    `json:"userName,omitempty"`
	Payload    any       `json:"payload,omitempty"`
}

// Subscriber is satisfied by *websocket.Conn.
type Subscriber interface {
	WriteJSON(v interface{}) error
	Close() error
}

// ActivityHub fans events out to connected admin dashboards.
type ActivityHub struct {
	mu      sync.Mutex
	clients map[Subscriber]bool
	ch      chan ActivityEvent
}

func NewActivityHub() *ActivityHub {
	return &ActivityHub{
		clients: map[Subscriber]bool{},
		ch:      make(chan ActivityEvent, 64),
	}
}

func (h *ActivityHub) Run(ctx context.Context) {
	for {
		select {
		case event := <-h.ch:
			h.deliver(event)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *ActivityHub) deliver(event ActivityEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}

func (h *ActivityHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

// Broadcast drops the event when the queue is full. Safe on a nil hub.
func (h *ActivityHub) Broadcast(event ActivityEvent) {
	if h == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	select {
	case h.ch <- event:
	default:
	}
}

func (h *ActivityHub) Add(conn Subscriber) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *ActivityHub) Remove(conn Subscriber) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func (h *ActivityHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
