package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style definitions for consistent console output across the application.
var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
)

// SetNoColor disables (or re-enables) ANSI styling for all render functions.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info returns text with info (cyan) styling.
func Info(text string) string {
	return infoStyle.Render(text)
}

// Fprint functions write styled text to w with a newline.

// FprintSuccess writes text with success styling.
func FprintSuccess(w io.Writer, text string) {
	fmt.Fprintln(w, Success(text))
}

// FprintError writes text with error styling.
func FprintError(w io.Writer, text string) {
	fmt.Fprintln(w, Error(text))
}

// FprintWarning writes text with warning styling.
func FprintWarning(w io.Writer, text string) {
	fmt.Fprintln(w, Warning(text))
}

// FprintInfo writes text with info styling.
func FprintInfo(w io.Writer, text string) {
	fmt.Fprintln(w, Info(text))
}

// FprintFaint writes text with faint styling.
func FprintFaint(w io.Writer, text string) {
	fmt.Fprintln(w, Faint(text))
}
