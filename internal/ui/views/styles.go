package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	PageTitle      lipgloss.Style
	Address        lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Prompt         lipgloss.Style
	Help           lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	PageLabel      lipgloss.Style
	Focus          lipgloss.Style
	ErrorBox       lipgloss.Style
	StatusError    lipgloss.Style
	StatusLoading  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		PageTitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Address:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		Dim:            lipgloss.NewStyle().Faint(true),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Prompt:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Help:           lipgloss.NewStyle().Faint(true),
		Button:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		ButtonDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		PageLabel:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Focus:          lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
	}
}
