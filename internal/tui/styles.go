// Package tui provides the interactive terminal viewer for analysis results.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#06B6D4") // Cyan
	agentColor     = lipgloss.Color("#3B82F6") // Blue
	toolColor      = lipgloss.Color("#F59E0B") // Amber
	mutedColor     = lipgloss.Color("#6B7280") // Gray
)

var (
	// TitleStyle for the viewer title bar
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 2)

	// TabStyle for inactive section tabs
	TabStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	// ActiveTabStyle for the selected section tab
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(secondaryColor).
			Padding(0, 1)

	// AgentStyle for collaborator-agent names
	AgentStyle = lipgloss.NewStyle().
			Foreground(agentColor)

	// ToolStyle for tool/function names
	ToolStyle = lipgloss.NewStyle().
			Foreground(toolColor)

	// CountStyle for invocation counts
	CountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor)

	// MutedStyle for less important text
	MutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// HelpStyle for the bottom help bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	// HelpKeyStyle for key hints in the help bar
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)
)
