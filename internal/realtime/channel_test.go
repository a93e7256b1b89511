package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/Sebo-the-tramp/travelsync/internal/realtime"
)

// script is what the test server does with a connection once the client's
// join frame has been read.
type script func(t *testing.T, conn *websocket.Conn, join map[string]any)

func newServer(t *testing.T, run script) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var join map[string]any
		require.NoError(t, conn.ReadJSON(&join))
		run(t, conn, join)
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func send(t *testing.T, conn *websocket.Conn, event string, data map[string]any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"event": event, "data": data}))
}

func receive(t *testing.T, channel *realtime.Channel) realtime.Event {
	t.Helper()
	select {
	case event, ok := <-channel.Events():
		require.True(t, ok, "event channel closed early")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestDial_SendsJoinWithTripID(t *testing.T) {
	joined := make(chan map[string]any, 1)
	url := newServer(t, func(t *testing.T, conn *websocket.Conn, join map[string]any) {
		joined <- join
		conn.ReadMessage()
	})

	channel, err := realtime.Dial(context.Background(), url, 42)
	require.NoError(t, err)
	defer channel.Close()

	join := <-joined
	require.Equal(t, "join", join["event"])
	data, ok := join["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(42), data["trip_id"])
}

func TestNewMessage_DecodesIntegerIDAndSender(t *testing.T) {
	url := newServer(t, func(t *testing.T, conn *websocket.Conn, _ map[string]any) {
		send(t, conn, "new_message", map[string]any{
			"message_id": 7,
			"is_ai":      false,
			"content":    "anyone up for tapas?",
			"created_at": "2026-03-01T18:22:05.104000",
			"sender":     map[string]any{"name": "Marta"},
		})
		conn.ReadMessage()
	})

	channel, err := realtime.Dial(context.Background(), url, 1)
	require.NoError(t, err)
	defer channel.Close()

	event := receive(t, channel)
	message, ok := event.(realtime.NewMessage)
	require.True(t, ok)
	require.Equal(t, "7", message.MessageID)
	require.Equal(t, "Marta", message.SenderName)
	require.Equal(t, "anyone up for tapas?", message.Content)
	require.False(t, message.IsAI)
}

func TestStream_FullLifecycleWithStringID(t *testing.T) {
	url := newServer(t, func(t *testing.T, conn *websocket.Conn, _ map[string]any) {
		send(t, conn, "message_stream", map[string]any{
			"type": "start", "message_id": "abc-123",
		})
		send(t, conn, "message_stream", map[string]any{
			"type": "update", "message_id": "abc-123", "content": "Barce",
		})
		send(t, conn, "message_stream", map[string]any{
			"type": "update", "message_id": "abc-123", "content": "lona",
		})
		send(t, conn, "message_stream", map[string]any{
			"type": "end", "message_id": "abc-123", "created_at": "2026-03-01T18:22:09",
		})
		conn.ReadMessage()
	})

	channel, err := realtime.Dial(context.Background(), url, 1)
	require.NoError(t, err)
	defer channel.Close()

	start, ok := receive(t, channel).(realtime.StreamStart)
	require.True(t, ok)
	require.Equal(t, "abc-123", start.MessageID)

	first, ok := receive(t, channel).(realtime.StreamUpdate)
	require.True(t, ok)
	require.Equal(t, "Barce", first.Delta)

	second, ok := receive(t, channel).(realtime.StreamUpdate)
	require.True(t, ok)
	require.Equal(t, "lona", second.Delta)

	end, ok := receive(t, channel).(realtime.StreamEnd)
	require.True(t, ok)
	require.Equal(t, "abc-123", end.MessageID)
	require.Equal(t, "2026-03-01T18:22:09", end.CreatedAt)
}

func TestMalformedAndUnknownFramesAreSkipped(t *testing.T) {
	url := newServer(t, func(t *testing.T, conn *websocket.Conn, _ map[string]any) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
		send(t, conn, "presence", map[string]any{"who": "cares"})
		send(t, conn, "message_stream", map[string]any{"type": "start"})
		send(t, conn, "new_message", map[string]any{
			"message_id": 9, "content": "still here",
			"sender": map[string]any{"name": "Ben"},
		})
		conn.ReadMessage()
	})

	channel, err := realtime.Dial(context.Background(), url, 1)
	require.NoError(t, err)
	defer channel.Close()

	message, ok := receive(t, channel).(realtime.NewMessage)
	require.True(t, ok)
	require.Equal(t, "still here", message.Content)
}

func TestServerClose_DeliversDisconnectedThenClosesChannel(t *testing.T) {
	url := newServer(t, func(t *testing.T, conn *websocket.Conn, _ map[string]any) {
		conn.Close()
	})

	channel, err := realtime.Dial(context.Background(), url, 1)
	require.NoError(t, err)
	defer channel.Close()

	disconnected, ok := receive(t, channel).(realtime.Disconnected)
	require.True(t, ok)
	require.Error(t, disconnected.Err)

	select {
	case _, open := <-channel.Events():
		require.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("event channel did not close after disconnect")
	}
}

func TestClose_SendsLeaveAndSuppressesDisconnected(t *testing.T) {
	frames := make(chan map[string]any, 1)
	url := newServer(t, func(t *testing.T, conn *websocket.Conn, _ map[string]any) {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame map[string]any
		require.NoError(t, json.Unmarshal(raw, &frame))
		frames <- frame
	})

	channel, err := realtime.Dial(context.Background(), url, 1)
	require.NoError(t, err)
	channel.Close()

	select {
	case frame := <-frames:
		require.Equal(t, "leave", frame["event"])
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw the leave frame")
	}

	for event := range channel.Events() {
		_, isDisconnect := event.(realtime.Disconnected)
		require.False(t, isDisconnect, "teardown must not surface as a disconnect")
	}
}
