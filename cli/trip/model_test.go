package trip

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Sebo-the-tramp/travelsync/configuration"
	"github.com/Sebo-the-tramp/travelsync/internal/api"
	triptypes "github.com/Sebo-the-tramp/travelsync/internal/trip"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	config := &configuration.Config{
		SocketURL:     "ws://localhost:0/socket",
		DataDirectory: t.TempDir(),
	}
	info := &api.TripInfo{
		TripName:    "Summer 2026",
		CreatorName: "Ana",
		IsMember:    true,
		Members: []triptypes.Member{
			{ID: "u1", Name: "Ana", HomeAirport: "BCN"},
			{ID: "u2", Name: "Ben"},
		},
	}
	apiClient := api.New("http://localhost:0/api", time.Second)
	m, err := NewModel(context.Background(), config, apiClient, 1, info)
	require.NoError(t, err)
	return m
}

// Drains a command returned by Update back into the model, unpacking batches.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, inner := range batch {
			drain(t, m, inner)
		}
		return
	}
	if msg != nil {
		m.Update(msg)
	}
}

func TestSendFailureRaisesTransientAlert(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.True(t, m.ready)

	_, cmd := m.Update(sendErrMsg{err: context.DeadlineExceeded})
	require.NotNil(t, cmd)
	// The failure is surfaced as a toast, not as the persistent error line
	// reserved for a dead realtime connection.
	require.NoError(t, m.err)

	drain(t, m, cmd)
	require.Contains(t, m.View(), "Send failed")
}

func TestConnectionErrorStaysVisible(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.Update(connectErrMsg{err: context.DeadlineExceeded})
	require.Error(t, m.err)
	require.Contains(t, m.View(), "Error:")
	require.Contains(t, m.View(), "offline")
}

func TestTextareaGrowsWithContentUpToCap(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, minTextareaHeight, m.textarea.Height())

	m.textarea.SetValue("line one\nline two\nline three\nline four\nline five")
	m.adjustTextareaHeight()
	require.Equal(t, 5, m.textarea.Height())

	m.textarea.SetValue(strings.Repeat("filler\n", 20) + "end")
	m.adjustTextareaHeight()
	require.Equal(t, maxTextareaHeight, m.textarea.Height())

	m.textarea.SetValue("just one line")
	m.adjustTextareaHeight()
	require.Equal(t, minTextareaHeight, m.textarea.Height())
}
