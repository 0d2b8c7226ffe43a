package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette used by the relfiles prompt theme.
var (
	accentPrimary = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"}
	accentBright  = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#93c5fd"}
	accentMuted   = lipgloss.AdaptiveColor{Light: "#3b82f6", Dark: "#3b82f6"}

	textStrong = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	textNormal = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
	textMuted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	textFaint  = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}

	borderFocused = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}

	buttonBg          = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#2563eb"}
	buttonBgBlurred   = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}
	buttonText        = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#ffffff"}
	buttonTextBlurred = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}

	errorColor = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// currentTheme holds the theme used by Confirm and MultiSelect.
// When nil the relfiles theme is used.
var currentTheme *huh.Theme

// SetTheme selects a theme by name. Unknown or empty names fall back to
// the relfiles theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return relfilesTheme()
	}
	return currentTheme
}

func resetTheme() {
	currentTheme = nil
}

func relfilesTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderFocused)
	t.Focused.Title = t.Focused.Title.Foreground(accentPrimary).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(accentPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(textMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errorColor)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorColor)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accentBright)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(accentBright)
	t.Focused.Option = t.Focused.Option.Foreground(textNormal)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(accentMuted)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(accentBright).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(textFaint).SetString("[ ] ")
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(textNormal)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(buttonText).
		Background(buttonBg).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(buttonTextBlurred).
		Background(buttonBgBlurred).
		Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(textMuted)

	t.Help.ShortKey = t.Help.ShortKey.Foreground(textNormal)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(textFaint)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(textFaint)
	t.Help.FullKey = t.Help.FullKey.Foreground(textNormal)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(textFaint)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(textFaint)

	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(textStrong)
	return t
}
