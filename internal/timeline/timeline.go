// Package timeline maintains the ordered chat message list for a trip view.
// It merges complete messages and incremental streaming tokens into one
// insertion-ordered, deduplicated list. It never
// reorders: new messages are appended at the tail, and a streaming message's
// text only grows until it is finalized.
package timeline

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the sender kind of a message.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// echoTolerance bounds the fuzzy fallback that suppresses the realtime echo
// of a message this client just displayed optimistically. Echoes carrying
// our client key are matched exactly and do not rely on this window.
const echoTolerance = 5 * time.Second

// Message is one entry in the timeline. Text is mutable while streaming and
// frozen once Final is set. Segments are produced exactly once, at
// finalization, so views never re-parse content on render.
type Message struct {
	ID         string
	Role       Role
	SenderName string
	Text       string
	Timestamp  time.Time
	Final      bool
	Segments   []Segment
}

// NewMessageEvent is a complete message delivered over the realtime channel.
// ClientKey echoes the idempotency key of a locally-sent message, when the
// origin system preserved it.
type NewMessageEvent struct {
	ID         string
	Role       Role
	Content    string
	Timestamp  time.Time
	SenderName string
	ClientKey  string
}

// pendingEcho records a locally-displayed human message whose realtime echo
// has not arrived yet.
type pendingEcho struct {
	key  string
	text string
	at   time.Time
}

// Timeline is the reconciler state. It is owned by a single view and mutated
// only from that view's event loop; it needs no locking of its own.
type Timeline struct {
	messages []*Message
	byID     map[string]*Message
	echoes   []pendingEcho

	// now is swappable in tests.
	now func() time.Time
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{
		byID: map[string]*Message{},
		now:  time.Now,
	}
}

// Messages returns the display list in arrival order of first-seen ids.
func (t *Timeline) Messages() []*Message {
	return t.messages
}

// Len returns the number of messages.
func (t *Timeline) Len() int {
	return len(t.messages)
}

// LoadHistory appends a message fetched from the trip-info endpoint. History
// entries carry no identifier of their own, so one is assigned locally.
func (t *Timeline) LoadHistory(role Role, senderName, content string, timestamp time.Time) {
	t.append(&Message{
		ID:         uuid.New().String(),
		Role:       role,
		SenderName: senderName,
		Text:       content,
		Timestamp:  timestamp,
		Final:      true,
		Segments:   ParseSegments(content),
	})
}

// AppendLocal optimistically displays a message the user just sent, before
// the server echo arrives. It returns the idempotency key the caller should
// attach to the send request so the echo can be suppressed by key.
func (t *Timeline) AppendLocal(senderName, content string) string {
	key := uuid.New().String()
	now := t.now()
	t.append(&Message{
		ID:         key,
		Role:       RoleHuman,
		SenderName: senderName,
		Text:       content,
		Timestamp:  now,
		Final:      true,
		Segments:   ParseSegments(content),
	})
	t.echoes = append(t.echoes, pendingEcho{key: key, text: content, at: now})
	return key
}

// ApplyNewMessage handles a full-message event. The event is dropped when a
// message with the same id is already present, or when it is the echo of a
// message this client displayed optimistically.
func (t *Timeline) ApplyNewMessage(e NewMessageEvent) {
	if e.ID == "" {
		return
	}
	if _, ok := t.byID[e.ID]; ok {
		return
	}
	if t.suppressEcho(e) {
		return
	}
	t.append(&Message{
		ID:         e.ID,
		Role:       e.Role,
		SenderName: e.SenderName,
		Text:       e.Content,
		Timestamp:  e.Timestamp,
		Final:      true,
		Segments:   ParseSegments(e.Content),
	})
}

// ApplyStreamStart begins a new assistant message with empty text.
func (t *Timeline) ApplyStreamStart(id string) {
	if id == "" {
		return
	}
	if _, ok := t.byID[id]; ok {
		return
	}
	t.append(&Message{
		ID:        id,
		Role:      RoleAssistant,
		Timestamp: t.now(),
	})
}

// ApplyStreamAppend grows the text of the streaming message. With an id, the
// delta applies only when that message is still the last one in the list;
// without an id it falls back to the last message, provided it is an
// unfinalized assistant message. Anything else is discarded.
func (t *Timeline) ApplyStreamAppend(id, delta string) {
	last := t.last()
	if last == nil || last.Final || last.Role != RoleAssistant {
		return
	}
	if id != "" && last.ID != id {
		return
	}
	last.Text += delta
}

// ApplyStreamEnd finalizes the streaming message: its timestamp is set, its
// segments are produced, and its text becomes immutable. A stream-end for
// anything but the current last assistant message is a no-op.
func (t *Timeline) ApplyStreamEnd(id string, timestamp time.Time) {
	last := t.last()
	if last == nil || last.Role != RoleAssistant || last.ID != id || last.Final {
		return
	}
	if !timestamp.IsZero() {
		last.Timestamp = timestamp
	}
	last.Final = true
	last.Segments = ParseSegments(last.Text)
}

func (t *Timeline) append(m *Message) {
	t.messages = append(t.messages, m)
	t.byID[m.ID] = m
}

func (t *Timeline) last() *Message {
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

// suppressEcho reports whether e is the realtime echo of an optimistically
// displayed message, and consumes the matching pending record. Matching is
// by client key when present, else by content within the tolerance window.
// The fuzzy fallback can both miss a real duplicate and swallow a legitimate
// repeat; the key path has neither failure mode.
func (t *Timeline) suppressEcho(e NewMessageEvent) bool {
	if e.Role != RoleHuman {
		return false
	}
	now := t.now()
	for i, echo := range t.echoes {
		matched := false
		switch {
		case e.ClientKey != "":
			matched = e.ClientKey == echo.key
		case e.Content == echo.text:
			matched = now.Sub(echo.at) <= echoTolerance
		}
		if matched {
			t.echoes = append(t.echoes[:i], t.echoes[i+1:]...)
			return true
		}
	}
	// Drop expired records so the fuzzy path cannot match stale sends.
	kept := t.echoes[:0]
	for _, echo := range t.echoes {
		if now.Sub(echo.at) <= echoTolerance {
			kept = append(kept, echo)
		}
	}
	t.echoes = kept
	return false
}
