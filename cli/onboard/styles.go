package onboard

import "github.com/charmbracelet/lipgloss"

const (
	cardWidth       = 46
	cardPaddingVert = 1
	cardPaddingHorz = 2
	dragStep        = 10
)

var (
	// Color palette
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	acceptColor  = lipgloss.Color("#10B981") // Green
	rejectColor  = lipgloss.Color("#EF4444") // Red
	textColor    = lipgloss.Color("#F9FAFB") // Light gray
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	dimTextColor = lipgloss.Color("#9CA3AF") // Dim gray

	titleStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(cardPaddingVert, cardPaddingHorz).
			Width(cardWidth)

	cardAcceptStyle = cardStyle.BorderForeground(acceptColor)
	cardRejectStyle = cardStyle.BorderForeground(rejectColor)

	promptStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true).
			Align(lipgloss.Center).
			Width(cardWidth - 2*cardPaddingHorz)

	optionStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	optionActiveStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Bold(true)

	progressDoneStyle    = lipgloss.NewStyle().Foreground(primaryColor)
	progressPendingStyle = lipgloss.NewStyle().Foreground(mutedColor)

	pickerCursorStyle = lipgloss.NewStyle().
				Foreground(acceptColor).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			MarginTop(1)
)
