// Package onboard runs the swipe questionnaire shown before creating or
// joining a trip.
package onboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/Sebo-the-tramp/travelsync/internal/airports"
	"github.com/Sebo-the-tramp/travelsync/internal/debug"
	"github.com/Sebo-the-tramp/travelsync/internal/deck"
	"github.com/Sebo-the-tramp/travelsync/internal/trip"
)

// Model is the Bubble Tea model for the questionnaire.
type Model struct {
	deck      *deck.Deck
	pickIndex int
	width     int
	height    int
	cancelled bool
	quitting  bool
}

// NewModel creates a questionnaire model over the given cards.
func NewModel(questions []deck.Question) *Model {
	return &Model{deck: deck.New(questions)}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		current, ok := m.deck.Current()
		if !ok {
			return m, tea.Quit
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.quitting = true
			return m, tea.Quit
		}

		if current.Airport {
			return m.updateAirportCard(msg)
		}
		return m.updateSwipeCard(msg)
	}
	return m, nil
}

func (m *Model) updateSwipeCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.deck.Drag(-dragStep)
	case "right", "l":
		m.deck.Drag(dragStep)
	case "enter", " ":
		m.deck.Release()
	case "1":
		if err := m.deck.Choose(deck.DirectionLeft); err != nil {
			debug.GetLogger().Debug("choosing left", "error", err)
		}
	case "2":
		if err := m.deck.Choose(deck.DirectionRight); err != nil {
			debug.GetLogger().Debug("choosing right", "error", err)
		}
	}
	if m.deck.Done() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateAirportCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.pickIndex > 0 {
			m.pickIndex--
		}
	case "down", "j":
		if m.pickIndex < len(airports.Reference)-1 {
			m.pickIndex++
		}
	case "enter":
		if err := m.deck.AnswerAirport(airports.Reference[m.pickIndex].Code); err != nil {
			debug.GetLogger().Debug("answering airport card", "error", err)
		}
	}
	if m.deck.Done() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	current, ok := m.deck.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Tell us about your preferences"))
	b.WriteString("\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n\n")

	if current.Airport {
		b.WriteString(m.renderAirportCard(current))
	} else {
		b.WriteString(m.renderSwipeCard(current))
	}

	if m.width > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

func (m *Model) renderProgress() string {
	answered, total := m.deck.Progress()
	var b strings.Builder
	for i := 0; i < total; i++ {
		if i < answered {
			b.WriteString(progressDoneStyle.Render("▰"))
		} else {
			b.WriteString(progressPendingStyle.Render("▱"))
		}
	}
	b.WriteString(progressPendingStyle.Render(fmt.Sprintf("  %d/%d", answered, total)))
	return b.String()
}

func (m *Model) renderSwipeCard(current deck.Question) string {
	style := cardStyle
	leftStyle, rightStyle := optionStyle, optionStyle
	switch m.deck.Direction() {
	case deck.DirectionLeft:
		style = cardRejectStyle
		leftStyle = optionActiveStyle
	case deck.DirectionRight:
		style = cardAcceptStyle
		rightStyle = optionActiveStyle
	}

	options := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render("◀ "+current.Left),
		strings.Repeat(" ", max(1, cardWidth-2*cardPaddingHorz-
			lipgloss.Width(current.Left)-lipgloss.Width(current.Right)-4)),
		rightStyle.Render(current.Right+" ▶"),
	)

	card := style.Render(promptStyle.Render(current.Prompt) + "\n\n" + options)

	// Shift the card sideways with the drag.
	if offset := m.deck.Offset(); offset > 0 {
		card = lipgloss.NewStyle().MarginLeft(offset / 2).Render(card)
	} else if offset < 0 {
		card = lipgloss.NewStyle().MarginRight(-offset / 2).Render(card)
	}

	return card + "\n" + helpStyle.Render("←/→ swipe, enter to release, 1/2 to pick directly, q to quit")
}

func (m *Model) renderAirportCard(current deck.Question) string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(current.Prompt))
	b.WriteString("\n\n")
	for i, airport := range airports.Reference {
		cursor := "  "
		line := fmt.Sprintf("%s - %s", airport.Code, airport.Name)
		if i == m.pickIndex {
			cursor = pickerCursorStyle.Render("> ")
			line = optionActiveStyle.Render(line)
		} else {
			line = optionStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	card := cardStyle.Render(b.String())
	return card + "\n" + helpStyle.Render("↑/↓ to select, enter to confirm, q to quit")
}

// Run shows the questionnaire and returns the collected answers. A nil error
// with nil answers is never returned; cancelling yields an error.
func Run(questions []deck.Question) ([]trip.QuestionAnswer, error) {
	m := NewModel(questions)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return nil, errors.Wrap(err, "running questionnaire")
	}
	if m.cancelled {
		return nil, errors.New("onboarding cancelled")
	}
	return m.deck.Answers(), nil
}
