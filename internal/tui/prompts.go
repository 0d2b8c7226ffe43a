package tui

import (
	"github.com/charmbracelet/huh"
)

// Confirm shows a yes/no prompt and returns the answer.
func Confirm(title, description string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)

	if err := huh.NewForm(huh.NewGroup(field)).WithTheme(currentThemeOrDefault()).Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// MultiSelect shows a multi-select prompt. Values listed in defaults start
// selected.
func MultiSelect(title, description string, options []huh.Option[string], defaults []string) ([]string, error) {
	selected := append([]string(nil), defaults...)
	field := huh.NewMultiSelect[string]().
		Title(title).
		Description(description).
		Options(options...).
		Value(&selected)

	if err := huh.NewForm(huh.NewGroup(field)).WithTheme(currentThemeOrDefault()).Run(); err != nil {
		return nil, err
	}
	return selected, nil
}
