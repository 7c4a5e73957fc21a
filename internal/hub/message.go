package hub

import (
	"time"

	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/menu"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type       string                   `json:"type"`                 // "full", "delta", "event", "welcome"
	Seq        int64                    `json:"seq"`                  // Sequence number for ordering
	Timestamp  int64                    `json:"timestamp"`            // Unix timestamp in milliseconds
	Event      string                   `json:"event,omitempty"`      // Event name for type "event"
	Data       *menu.View               `json:"data,omitempty"`       // Complete view for type "full"
	Changes    *menu.Delta              `json:"changes,omitempty"`    // Changed fields for type "delta"
	Connection *gamepad.ConnectionEvent `json:"connection,omitempty"` // Payload of controller events
	ClientID   string                   `json:"clientId,omitempty"`   // Assigned id for type "welcome"
}

// Event names.
const (
	EventConnected    = "controller_connected"
	EventDisconnected = "controller_disconnected"
)

// NewFullMessage creates a "full" type message containing the complete view.
func NewFullMessage(seq int64, view *menu.View) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      view,
	}
}

// NewDeltaMessage creates a "delta" type message containing only changed fields.
func NewDeltaMessage(seq int64, changes *menu.Delta) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// NewEventMessage creates an "event" message for a controller connection change.
func NewEventMessage(seq int64, ev gamepad.ConnectionEvent) *WSMessage {
	name := EventDisconnected
	if ev.Connected {
		name = EventConnected
	}
	return &WSMessage{
		Type:       "event",
		Seq:        seq,
		Timestamp:  time.Now().UnixMilli(),
		Event:      name,
		Connection: &ev,
	}
}

// NewWelcomeMessage tells a new client its id.
func NewWelcomeMessage(clientID string) *WSMessage {
	return &WSMessage{
		Type:      "welcome",
		Timestamp: time.Now().UnixMilli(),
		ClientID:  clientID,
	}
}

// Client message types.
const (
	ClientKey    = "key"
	ClientHover  = "hover"
	ClientClick  = "click"
	ClientGrid   = "grid"
	ClientIntent = "intent"
)

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type    string `json:"type"`
	Key     string `json:"key,omitempty"`
	Shift   bool   `json:"shift,omitempty"`
	Ctrl    bool   `json:"ctrl,omitempty"`
	Alt     bool   `json:"alt,omitempty"`
	Meta    bool   `json:"meta,omitempty"`
	ID      string `json:"id,omitempty"`
	Enabled bool   `json:"enabled,omitempty"`
	Intent  string `json:"intent,omitempty"`
}
