package tui

import (
	"github.com/charmbracelet/huh"
)

// themes maps each --theme value to its constructor.
var themes = map[string]func() *huh.Theme{
	"relfiles":   relfilesTheme,
	"base":       huh.ThemeBase,
	"base16":     huh.ThemeBase16,
	"catppuccin": huh.ThemeCatppuccin,
	"charm":      huh.ThemeCharm,
	"dracula":    huh.ThemeDracula,
}

// ValidThemes lists the accepted --theme values, default first.
var ValidThemes = []string{"relfiles", "base", "base16", "catppuccin", "charm", "dracula"}

// IsValidTheme reports whether name is an accepted --theme value.
func IsValidTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// GetTheme builds the theme called name, or returns nil for unknown names.
func GetTheme(name string) *huh.Theme {
	build, ok := themes[name]
	if !ok {
		return nil
	}
	return build()
}
