package onboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Sebo-the-tramp/travelsync/internal/airports"
	"github.com/Sebo-the-tramp/travelsync/internal/deck"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNumberKeysPickSwipeOptions(t *testing.T) {
	questions := []deck.Question{
		{Prompt: "Beach or mountains?", Left: "Beach", Right: "Mountains"},
		{Prompt: "Hostel or hotel?", Left: "Hostel", Right: "Hotel"},
	}
	m := NewModel(questions)

	m.Update(key("1"))
	m.Update(key("2"))

	answers := m.deck.Answers()
	require.Len(t, answers, 2)
	require.Equal(t, "Beach", answers[0].Answer)
	require.Equal(t, "Hotel", answers[1].Answer)
	require.True(t, m.quitting)
}

func TestAirportCardAnswersFromPicker(t *testing.T) {
	questions := []deck.Question{{Prompt: "What is your home airport?", Airport: true}}
	m := NewModel(questions)

	// Swipe picks are not valid on the airport card and must not advance it.
	m.Update(key("1"))
	require.False(t, m.deck.Done())

	m.Update(key("down"))
	m.Update(key("down"))
	m.Update(key("enter"))

	answers := m.deck.Answers()
	require.Len(t, answers, 1)
	require.Equal(t, airports.Reference[2].Code, answers[0].Answer)
}
