package tui

import (
	"github.com/pterm/pterm"
)

// Prompter asks the player questions
type Prompter interface {
	Select(label string, options []string) (string, error)
	MultiSelect(label string, options []string) ([]string, error)
	Input(label, defaultValue string) (string, error)
}

// Interactive prompts on the terminal
type Interactive struct{}

// Select asks for one of the options
func (Interactive) Select(label string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithDefaultText(label).WithOptions(options).Show()
}

// MultiSelect asks for any number of the options
func (Interactive) MultiSelect(label string, options []string) ([]string, error) {
	return pterm.DefaultInteractiveMultiselect.WithDefaultText(label).WithOptions(options).Show()
}

// Input asks for free text
func (Interactive) Input(label, defaultValue string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultText(label).WithDefaultValue(defaultValue).Show()
}
