package trip

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.dalton.dog/bubbleup"

	"github.com/Sebo-the-tramp/travelsync/configuration"
	"github.com/Sebo-the-tramp/travelsync/internal/api"
	"github.com/Sebo-the-tramp/travelsync/internal/debug"
	"github.com/Sebo-the-tramp/travelsync/internal/history"
	"github.com/Sebo-the-tramp/travelsync/internal/meetingpoint"
	"github.com/Sebo-the-tramp/travelsync/internal/realtime"
	"github.com/Sebo-the-tramp/travelsync/internal/timeline"
)

// Model represents the Bubble Tea model for the trip view
type Model struct {
	// Core dependencies
	ctx       context.Context
	config    *configuration.Config
	apiClient *api.Client

	// Trip state
	tripID   int
	info     *api.TripInfo
	selfName string
	timeline *timeline.Timeline
	meeting  meetingpoint.Result

	// Realtime channel
	channel *realtime.Channel

	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	alert    bubbleup.AlertModel

	// Renderer.
	renderer *renderer

	// UI state
	width         int
	height        int
	ready         bool
	streaming     bool
	connected     bool
	showReasoning bool
	err           error
	quitting      bool

	// Program reference for sending messages from goroutines
	program   *tea.Program
	programMu sync.Mutex

	// Input history
	history           *history.History
	historyNavigating bool
}

// Message types for Bubble Tea
type (
	channelEventMsg struct{ event realtime.Event }
	connectedMsg    struct{ channel *realtime.Channel }
	connectErrMsg   struct{ err error }
	sendErrMsg      struct{ err error }
	sentMsg         struct{}
)

// NewModel creates a trip view model over an already-fetched trip.
func NewModel(
	ctx context.Context,
	config *configuration.Config,
	apiClient *api.Client,
	tripID int,
	info *api.TripInfo,
) (*Model, error) {
	ta := textarea.New()
	ta.Placeholder = "Message the group... (Ctrl+J to send, Ctrl+R to toggle reasoning, Ctrl+C to quit)"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetHeight(minTextareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	tl := timeline.New()
	for _, message := range info.Messages {
		role := timeline.RoleHuman
		if message.IsAI {
			role = timeline.RoleAssistant
		}
		tl.LoadHistory(role, message.SenderName, message.Content, message.Time())
	}

	selfName := "You"
	for _, member := range info.Members {
		if member.ID == apiClient.UserID() {
			selfName = member.Name
		}
	}

	renderer, err := newRenderer(80)
	if err != nil {
		return nil, err
	}

	alert := bubbleup.NewAlertModel(25, true, 1)

	return &Model{
		ctx:       ctx,
		config:    config,
		apiClient: apiClient,
		tripID:    tripID,
		info:      info,
		selfName:  selfName,
		timeline:  tl,
		meeting:   meetingpoint.Calculate(info.Members),
		textarea:  ta,
		spinner:   sp,
		alert:     *alert,
		renderer:  renderer,
		history:   history.New(config.DataDirectory),
	}, nil
}

// SetProgram sets the tea.Program reference for async message sending
func (m *Model) SetProgram(p *tea.Program) {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	m.program = p
}

// getProgram safely gets the program reference
func (m *Model) getProgram() *tea.Program {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	return m.program
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.alert.Init(),
		m.connect(),
	)
}

// connect dials the realtime channel and starts pumping its events into the
// program.
func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		channel, err := realtime.Dial(m.ctx, m.config.SocketURL, m.tripID)
		if err != nil {
			return connectErrMsg{err: err}
		}
		return connectedMsg{channel: channel}
	}
}

func (m *Model) pumpEvents(channel *realtime.Channel) {
	p := m.getProgram()
	if p == nil {
		return
	}
	for event := range channel.Events() {
		p.Send(channelEventMsg{event: event})
	}
}

// teardown closes the realtime channel before leaving the view.
func (m *Model) teardown() {
	if m.channel != nil {
		m.channel.Close()
		m.channel = nil
	}
	m.connected = false
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The alert model sees every message so its timers keep ticking.
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle history navigation (Alt)
		if msg.Alt {
			switch msg.String() {
			case "alt+p":
				if entry, ok := m.history.Previous(m.textarea.Value()); ok {
					m.textarea.SetValue(entry)
					m.historyNavigating = true
					m.adjustTextareaHeight()
					return m, nil
				}
			case "alt+n":
				if entry, ok := m.history.Next(); ok {
					m.textarea.SetValue(entry)
					m.historyNavigating = true
					m.adjustTextareaHeight()
					return m, nil
				}
			}
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			m.teardown()
			return m, tea.Quit

		case tea.KeyCtrlJ:
			if strings.TrimSpace(m.textarea.Value()) != "" {
				return m, m.sendMessage()
			}

		case tea.KeyCtrlR:
			m.showReasoning = !m.showReasoning
			m.refreshViewport(false)
			return m, nil

		case tea.KeyEnter:
			if m.historyNavigating {
				m.history.Reset()
				m.historyNavigating = false
			}

		case tea.KeyRunes, tea.KeyBackspace, tea.KeyDelete:
			if m.historyNavigating {
				m.history.Reset()
				m.historyNavigating = false
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalculateLayout()

	case connectedMsg:
		m.channel = msg.channel
		m.connected = true
		m.err = nil
		go m.pumpEvents(msg.channel)
		return m, nil

	case connectErrMsg:
		m.connected = false
		m.err = msg.err
		return m, nil

	case channelEventMsg:
		return m.applyEvent(msg.event)

	case sendErrMsg:
		debug.GetLogger().Debug("send failed", "error", msg.err)
		cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.ErrorKey, fmt.Sprintf("Send failed: %v", msg.err)))
		return m, tea.Batch(cmds...)

	case sentMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.adjustTextareaHeight()

	// Block keys that conflict with typing from scrolling the viewport.
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "j", "k", "g", "G", "u", "d", "b", "ctrl+u", "ctrl+d", "f", " ":
			return m, tea.Batch(cmds...)
		}
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// applyEvent folds one realtime event into the timeline.
func (m *Model) applyEvent(event realtime.Event) (tea.Model, tea.Cmd) {
	switch event := event.(type) {
	case realtime.NewMessage:
		role := timeline.RoleHuman
		if event.IsAI {
			role = timeline.RoleAssistant
		}
		m.timeline.ApplyNewMessage(timeline.NewMessageEvent{
			ID:         event.MessageID,
			Role:       role,
			Content:    event.Content,
			Timestamp:  api.ParseTime(event.CreatedAt),
			SenderName: event.SenderName,
			ClientKey:  event.ClientKey,
		})

	case realtime.StreamStart:
		m.timeline.ApplyStreamStart(event.MessageID)
		m.streaming = true

	case realtime.StreamUpdate:
		m.timeline.ApplyStreamAppend(event.MessageID, event.Delta)

	case realtime.StreamEnd:
		m.timeline.ApplyStreamEnd(event.MessageID, api.ParseTime(event.CreatedAt))
		m.streaming = false

	case realtime.Disconnected:
		m.connected = false
		m.streaming = false
		if event.Err != nil {
			debug.GetLogger().Debug("realtime channel dropped", "error", event.Err)
			return m, m.alert.NewAlertCmd(bubbleup.WarnKey, "Connection lost")
		}
		return m, nil
	}

	m.refreshViewport(true)
	return m, nil
}

func (m *Model) sendMessage() tea.Cmd {
	content := strings.TrimSpace(m.textarea.Value())
	if content == "" {
		return nil
	}

	m.history.Add(content)
	m.historyNavigating = false
	m.textarea.Reset()

	// Echo locally; the server's broadcast of this message is suppressed.
	clientKey := m.timeline.AppendLocal(m.selfName, content)
	m.refreshViewport(true)

	apiClient := m.apiClient
	tripID := m.tripID
	ctx := m.ctx
	return func() tea.Msg {
		if _, err := apiClient.SendMessage(ctx, tripID, content, clientKey); err != nil {
			return sendErrMsg{err: err}
		}
		return sentMsg{}
	}
}

func (m *Model) refreshViewport(stickToBottom bool) {
	if !m.ready {
		return
	}
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderMessages())
	if stickToBottom && wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Loading trip..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		viewportStyle.Render(m.viewport.View()),
		m.renderSidebar(),
	)
	b.WriteString(main)
	b.WriteString("\n")

	if m.streaming {
		b.WriteString(fmt.Sprintf("%s Assistant is thinking...\n", m.spinner.View()))
	} else {
		b.WriteString(textAreaStyle.Render(m.textarea.View()))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	return m.alert.Render(b.String())
}

func (m *Model) renderTitle() string {
	status := connectedStyle.Render(" ● live ")
	if !m.connected {
		status = disconnectedStyle.Render(" ○ offline ")
	}
	title := fmt.Sprintf(" %s │ by %s │ %d members ",
		m.info.TripName, m.info.CreatorName, len(m.info.Members))
	return titleStyle.Width(m.width).Render(title + status)
}

func (m *Model) renderMessages() string {
	var b strings.Builder

	for i, message := range m.timeline.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}

		switch {
		case message.Role == timeline.RoleAssistant:
			b.WriteString(aiLabelStyle.Render("Assistant"))
			b.WriteString("\n")
			rendered := m.renderer.message(message, m.showReasoning)
			if !message.Final {
				rendered += spinnerStyle.Render("▋")
			}
			b.WriteString(aiMessageStyle.Render(rendered))

		case message.SenderName == m.selfName:
			b.WriteString(senderLabelStyle.Render(message.SenderName))
			b.WriteString("\n")
			b.WriteString(selfMessageStyle.Render(message.Text))

		default:
			b.WriteString(senderLabelStyle.Render(message.SenderName))
			b.WriteString("\n")
			b.WriteString(memberMessageStyle.Render(message.Text))
		}

		if !message.Timestamp.IsZero() {
			b.WriteString("\n")
			b.WriteString(dimTextStyle.Render(message.Timestamp.Format("15:04")))
		}
	}

	return b.String()
}

func (m *Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(sidebarTitleStyle.Render("Members"))
	b.WriteString("\n")
	for _, member := range m.info.Members {
		b.WriteString(memberNameStyle.Render(member.Name))
		if member.HomeAirport != "" {
			b.WriteString(" ")
			b.WriteString(airportTagStyle.Render(member.HomeAirport))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sidebarTitleStyle.Render("Map"))
	b.WriteString("\n")
	mapWidth := sidebarWidth - sidebarStyle.GetHorizontalFrameSize()
	b.WriteString(renderMap(mapWidth, mapWidth/2, m.meeting, m.info.Members))
	b.WriteString("\n\n")

	if m.meeting.Airport != nil {
		b.WriteString(meetingPointStyle.Render(fmt.Sprintf("Meet at %s", m.meeting.Airport.Code)))
		b.WriteString("\n")
		b.WriteString(dimTextStyle.Render(m.meeting.Airport.Name))
	} else {
		b.WriteString(dimTextStyle.Render("Add home airports to find a meeting point"))
	}

	return sidebarStyle.Render(b.String())
}

// adjustTextareaHeight resizes the textarea based on content line count
func (m *Model) adjustTextareaHeight() {
	content := m.textarea.Value()
	lineCount := strings.Count(content, "\n") + 1

	newHeight := lineCount
	if newHeight < minTextareaHeight {
		newHeight = minTextareaHeight
	}
	if newHeight > maxTextareaHeight {
		newHeight = maxTextareaHeight
	}

	oldHeight := m.textarea.Height()
	if oldHeight != newHeight {
		m.textarea.SetHeight(newHeight)
		heightDiff := newHeight - oldHeight
		m.recalculateLayout()

		// The viewport gives up the rows the textarea gained, scroll to
		// keep the latest content in view.
		if heightDiff != 0 && m.ready {
			m.viewport.LineDown(heightDiff)
		}
	}
}

// recalculateLayout adjusts viewport and textarea dimensions based on current state
func (m *Model) recalculateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	viewportHeight := m.height - headerHeight
	viewportHeight -= m.textarea.Height() + inputBorderHeight
	if m.err != nil {
		viewportHeight -= 1
	}
	if viewportHeight < minViewportHeight {
		viewportHeight = minViewportHeight
	}

	viewportWidth := m.width - sidebarWidth
	if viewportWidth < 20 {
		viewportWidth = m.width
	}

	if err := m.renderer.SetWidth(viewportWidth - messageHorizontalFrameSize); err != nil {
		debug.GetLogger().Error("resizing markdown renderer", "error", err)
	}

	if !m.ready {
		m.viewport = viewport.New(viewportWidth, viewportHeight)
		m.ready = true
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom() // Only on initial render
	} else {
		m.viewport.Width = viewportWidth
		m.viewport.Height = viewportHeight
		m.viewport.SetContent(m.renderMessages())
	}

	m.textarea.SetWidth(viewportWidth - textAreaStyle.GetHorizontalPadding() - textAreaStyle.GetHorizontalBorderSize())
}
