package trip

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	textAreaPaddingLeft = 1
	messagePaddingLeft  = 2

	// Border adjustments
	inputBorderHeight = 2
	headerHeight      = 2

	sidebarWidth      = 38
	minTextareaHeight = 3
	maxTextareaHeight = 8
	minViewportHeight = 1
)

var (
	messageHorizontalFrameSize = aiMessageStyle.GetHorizontalFrameSize()

	// Color palette
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#06B6D4") // Cyan
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	successColor   = lipgloss.Color("#10B981") // Green
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	textColor      = lipgloss.Color("#F9FAFB") // Light gray
	dimTextColor   = lipgloss.Color("#9CA3AF") // Dim gray
	messageColor   = lipgloss.Color("#E5E7EB")
	thoughtColor   = lipgloss.Color("#FCD34D")
	borderColor    = lipgloss.Color("#4B5563")

	// Title bar style
	titleStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(textColor).
			Bold(true)

	// Member messages
	senderLabelStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	selfMessageStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1).
				MarginLeft(10)

	memberMessageStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(borderColor).
				Padding(0, 1)

	// AI assistant messages
	aiLabelStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	aiMessageStyle = lipgloss.NewStyle().
			Foreground(messageColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1).
			MarginRight(10)

	// Reasoning styles
	thoughtLabelStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Italic(true)

	thoughtStyle = lipgloss.NewStyle().
			Foreground(thoughtColor).
			Italic(true).
			PaddingLeft(messagePaddingLeft)

	dimTextStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	// Sidebar
	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	sidebarTitleStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Bold(true)

	memberNameStyle = lipgloss.NewStyle().
			Foreground(textColor)

	airportTagStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	meetingPointStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	// Map glyphs
	mapWaterStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	mapAirportStyle = lipgloss.NewStyle().Foreground(secondaryColor)
	mapMeanStyle    = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	mapMeetingStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Connection status styles
	connectedStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Background(primaryColor)

	disconnectedStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Background(primaryColor)

	// Input area styles
	textAreaStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			PaddingLeft(textAreaPaddingLeft)

	// Spinner style
	spinnerStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Viewport border
	viewportStyle = lipgloss.NewStyle().Margin(0).Padding(0)
)
