package cli

import (
	"fmt"
	"strings"

	"github.com/buger/goterm"
	"github.com/fatih/color"
)

var (
	// Colors.
	tripColor   = color.New(color.Bold)
	memberColor = color.New(color.FgCyan)
	formatColor = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
	noticeColor = color.New(color.FgYellow)

	width = goterm.Width()
)

// Separator printed to cli.
func Separator() {
	separator := strings.Repeat("-", width)
	formatColor.Println(separator)
}

// Title printed to cli.
func Title(text string, args ...any) {
	title := "      " + fmt.Sprintf(text, args...) + "      "
	leftWidth := (width - len(title)) / 2
	separator1 := strings.Repeat("-", leftWidth)
	separator2 := strings.Repeat("-", width-len(title)-len(separator1))
	output := fmt.Sprintf("%s%s%s", separator1, title, separator2)
	formatColor.Println(output)
}

// Trip printed to cli.
func Trip(text string, args ...any) {
	tripColor.Printf(text, args...)
}

// Member printed to cli.
func Member(text string, args ...any) {
	memberColor.Printf(text, args...)
}

// Error printed to cli.
func Error(text string, args ...any) {
	errorColor.Printf(text, args...)
}

// Notice printed to cli.
func Notice(text string, args ...any) {
	noticeColor.Printf(text, args...)
}
