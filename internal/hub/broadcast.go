package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/menu"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster turns published menu views into full and delta messages for the
// hub. Views are coalesced: only the latest published view is diffed.
type Broadcaster struct {
	hub    *Hub
	notify chan struct{}

	mu         sync.Mutex
	pending    menu.View
	lastView   menu.View
	seq        int64
	deltaCount int
}

func NewBroadcaster(h *Hub) *Broadcaster {
	return &Broadcaster{
		hub:    h,
		notify: make(chan struct{}, 1),
	}
}

// Publish records the latest view. It never blocks.
func (b *Broadcaster) Publish(v menu.View) {
	b.mu.Lock()
	b.pending = v
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// PublishEvent broadcasts a controller connection change immediately.
func (b *Broadcaster) PublishEvent(ev gamepad.ConnectionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	b.broadcast(NewEventMessage(b.seq, ev))
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-b.notify:
			b.flush()
		case <-ticker.C:
			b.mu.Lock()
			b.seq++
			b.deltaCount = 0
			b.broadcast(NewFullMessage(b.seq, &b.lastView))
			b.mu.Unlock()
		}
	}
}

func (b *Broadcaster) flush() {
	b.mu.Lock()
	defer b.mu.Unlock()

	view := b.pending
	delta := menu.ComputeDelta(b.lastView, view)
	b.lastView = view
	if delta.IsEmpty() {
		return
	}

	b.seq++
	b.deltaCount++

	// Send full sync periodically
	if b.deltaCount >= deltaCountSync {
		b.deltaCount = 0
		b.broadcast(NewFullMessage(b.seq, &view))
	} else {
		b.broadcast(NewDeltaMessage(b.seq, delta))
	}
}

// Attach sends the welcome and current full view to a new client and then
// registers it, so it sees every later delta.
func (b *Broadcaster) Attach(c *Client) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.send(c, NewWelcomeMessage(c.id))
	b.seq++
	view := b.lastView
	b.send(c, NewFullMessage(b.seq, &view))
	return b.hub.Register(c)
}

func (b *Broadcaster) send(c *Client, msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Error marshaling message", "type", msg.Type, "error", err)
		return
	}
	c.Enqueue(data)
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Error marshaling message", "type", msg.Type, "error", err)
		return
	}
	b.hub.Broadcast(data)
}
