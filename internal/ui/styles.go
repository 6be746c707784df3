// Package ui renders promptcraft output for the terminal: status messages,
// the command table, markdown previews and the interactive picker.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	colorAccent  = lipgloss.Color("69")  // blue
	colorSuccess = lipgloss.Color("114") // soft green
	colorWarn    = lipgloss.Color("214") // orange
	colorError   = lipgloss.Color("196") // red
	colorDim     = lipgloss.Color("242") // gray
	colorProject = lipgloss.Color("75")  // lighter blue
	colorGlobal  = lipgloss.Color("183") // lighter purple
)

// styles is bound to one renderer so colour detection follows the writer
// the text ends up on.
type styles struct {
	success   lipgloss.Style
	warn      lipgloss.Style
	err       lipgloss.Style
	dim       lipgloss.Style
	title     lipgloss.Style
	header    lipgloss.Style
	name      lipgloss.Style
	project   lipgloss.Style
	global    lipgloss.Style
	selected  lipgloss.Style
	indicator lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		success:   r.NewStyle().Foreground(colorSuccess),
		warn:      r.NewStyle().Foreground(colorWarn),
		err:       r.NewStyle().Foreground(colorError),
		dim:       r.NewStyle().Foreground(colorDim),
		title:     r.NewStyle().Foreground(colorAccent).Bold(true),
		header:    r.NewStyle().Bold(true),
		name:      r.NewStyle().Foreground(colorAccent),
		project:   r.NewStyle().Foreground(colorProject),
		global:    r.NewStyle().Foreground(colorGlobal),
		selected:  r.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")).Bold(true),
		indicator: r.NewStyle().Foreground(colorAccent).Bold(true),
	}
}

// sourceStyle colours a Source column value.
func (s styles) sourceStyle(source string) lipgloss.Style {
	if source == "Global" {
		return s.global
	}
	return s.project
}
