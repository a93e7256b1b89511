// Package realtime maintains the trip-scoped push channel. A Channel wraps
// one websocket connection: it joins the trip room on connect, decodes the
// two event kinds the backend pushes (new_message and message_stream), and
// delivers them in server-send order on a single Go channel. Reconnection
// policy belongs to the caller; the Channel itself holds no retry logic.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	eventBuffer  = 64
	writeTimeout = 5 * time.Second
)

// Event is a decoded push event. Exactly one of the concrete types below is
// delivered per received frame; malformed frames are dropped silently.
type Event interface {
	isEvent()
}

// NewMessage is a complete chat message pushed to the room.
type NewMessage struct {
	MessageID  string
	IsAI       bool
	Content    string
	SenderName string
	CreatedAt  string
	ClientKey  string
}

// StreamStart opens an incremental assistant message.
type StreamStart struct {
	MessageID string
}

// StreamUpdate appends a delta to the streaming message. MessageID may be
// empty; the consumer then targets the most recent assistant message.
type StreamUpdate struct {
	MessageID string
	Delta     string
}

// StreamEnd finalizes the streaming message.
type StreamEnd struct {
	MessageID string
	CreatedAt string
}

// Disconnected reports that the connection is gone. It is always the last
// event delivered before the event channel closes.
type Disconnected struct {
	Err error
}

func (NewMessage) isEvent()   {}
func (StreamStart) isEvent()  {}
func (StreamUpdate) isEvent() {}
func (StreamEnd) isEvent()    {}
func (Disconnected) isEvent() {}

// envelope is the wire frame: an event name plus its payload.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// wireID tolerates the two id encodings the backend uses: integers for
// persisted messages and uuid strings for in-flight streams.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = wireID(n.String())
	return nil
}

// messagePayload covers both new_message and message_stream frames; the
// fields not present for a given event kind are simply left zero.
type messagePayload struct {
	Type      string `json:"type"`
	MessageID wireID `json:"message_id"`
	IsAI      bool   `json:"is_ai"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	ClientKey string `json:"client_key"`
	Sender    *struct {
		Name string `json:"name"`
	} `json:"sender"`
}

// Channel is a live subscription to one trip's room.
type Channel struct {
	conn   *websocket.Conn
	events chan Event

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to the realtime endpoint and joins the given trip's room.
func Dial(ctx context.Context, socketURL string, tripID int) (*Channel, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, socketURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "dialing realtime endpoint")
	}

	join := struct {
		Event string `json:"event"`
		Data  struct {
			TripID int `json:"trip_id"`
		} `json:"data"`
	}{Event: "join"}
	join.Data.TripID = tripID

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(join); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "joining trip room")
	}
	conn.SetWriteDeadline(time.Time{})

	c := &Channel{
		conn:   conn,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Events returns the delivery channel. It is closed after teardown or once
// a Disconnected event has been delivered; no event follows the close.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Close tears the subscription down deterministically: the room is left,
// the connection closed, and the event channel drained and closed. After
// Close returns no further events reach the consumer.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)

		leave := struct {
			Event string `json:"event"`
		}{Event: "leave"}
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		_ = c.conn.WriteJSON(leave) // best effort
		_ = c.conn.Close()
	})
}

// readLoop decodes frames until the connection dies or Close is called.
// It is the only writer to c.events, so it alone closes the channel.
func (c *Channel) readLoop() {
	defer close(c.events)
	for {
		var frame envelope
		if err := c.conn.ReadJSON(&frame); err != nil {
			select {
			case <-c.done:
				// Deliberate teardown; not an error.
			default:
				c.deliver(Disconnected{Err: err})
			}
			return
		}

		event, ok := decode(frame)
		if !ok {
			continue
		}
		if !c.deliver(event) {
			return
		}
	}
}

// deliver pushes an event unless teardown has started.
func (c *Channel) deliver(event Event) bool {
	select {
	case c.events <- event:
		return true
	case <-c.done:
		return false
	}
}

// decode maps a wire frame to an Event. Unknown event names, unknown stream
// types, and frames missing a required id all decode to nothing.
func decode(frame envelope) (Event, bool) {
	payload := messagePayload{}
	if err := json.Unmarshal(frame.Data, &payload); err != nil {
		return nil, false
	}
	id := string(payload.MessageID)

	switch frame.Event {
	case "new_message":
		if id == "" {
			return nil, false
		}
		senderName := ""
		if payload.Sender != nil {
			senderName = payload.Sender.Name
		}
		return NewMessage{
			MessageID:  id,
			IsAI:       payload.IsAI,
			Content:    payload.Content,
			SenderName: senderName,
			CreatedAt:  payload.CreatedAt,
			ClientKey:  payload.ClientKey,
		}, true

	case "message_stream":
		switch payload.Type {
		case "start":
			if id == "" {
				return nil, false
			}
			return StreamStart{MessageID: id}, true
		case "update":
			return StreamUpdate{MessageID: id, Delta: payload.Content}, true
		case "end":
			if id == "" {
				return nil, false
			}
			return StreamEnd{MessageID: id, CreatedAt: payload.CreatedAt}, true
		}
	}
	return nil, false
}
