package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/convtrace/convtrace/internal/analyzer"
	"github.com/convtrace/convtrace/internal/report"
)

// Section identifies the active tab of the viewer.
type Section int

const (
	SectionAgents Section = iota
	SectionTools
	SectionToolCalls
)

var sectionNames = []string{"Agents", "Tools", "Tool Calls"}

// Model is the bubbletea model for browsing one analysis result.
type Model struct {
	title    string
	agg      *analyzer.Aggregates
	section  Section
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// NewViewer creates a viewer over final aggregates.
func NewViewer(title string, agg *analyzer.Aggregates) Model {
	return Model{
		title:    title,
		agg:      agg,
		section:  SectionAgents,
		viewport: viewport.New(80, 20),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.section = (m.section + 1) % Section(len(sectionNames))
			m.viewport.SetContent(m.sectionContent())
			m.viewport.GotoTop()
		case "shift+tab", "left", "h":
			m.section = (m.section + Section(len(sectionNames)) - 1) % Section(len(sectionNames))
			m.viewport.SetContent(m.sectionContent())
			m.viewport.GotoTop()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 3
		footerHeight := 2
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		if !m.ready {
			m.viewport.SetContent(m.sectionContent())
			m.ready = true
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return fmt.Sprintf("%s\n%s\n%s\n%s", m.titleBar(), m.tabBar(), m.viewport.View(), m.helpBar())
}

func (m Model) titleBar() string {
	return TitleStyle.Render("convtrace: " + m.title)
}

func (m Model) tabBar() string {
	tabs := make([]string, len(sectionNames))
	for i, name := range sectionNames {
		if Section(i) == m.section {
			tabs[i] = ActiveTabStyle.Render(name)
		} else {
			tabs[i] = TabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) helpBar() string {
	return HelpStyle.Render(fmt.Sprintf("%s switch section  %s scroll  %s quit",
		HelpKeyStyle.Render("tab"),
		HelpKeyStyle.Render("↑/↓"),
		HelpKeyStyle.Render("q"),
	))
}

func (m Model) sectionContent() string {
	switch m.section {
	case SectionAgents:
		return renderListing(report.BuildListing("agent", m.agg.AgentInvocations), AgentStyle)
	case SectionTools:
		return renderListing(report.BuildListing("tool", m.agg.ToolInvocations), ToolStyle)
	case SectionToolCalls:
		return renderToolCalls(m.agg.ToolCalls)
	}
	return ""
}

func renderListing(listing report.Listing, nameStyle lipgloss.Style) string {
	if len(listing.Entries) == 0 {
		return MutedStyle.Render(fmt.Sprintf("No %s invocations found", listing.Kind))
	}

	var b strings.Builder
	for _, e := range listing.Entries {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			nameStyle.Render(e.Name),
			CountStyle.Render(fmt.Sprintf("×%d", e.Count)),
		))
	}
	b.WriteString(MutedStyle.Render(fmt.Sprintf("\nTotal %s invocations: %d", listing.Kind, listing.Total)))
	return b.String()
}

func renderToolCalls(calls []analyzer.ToolCall) string {
	if len(calls) == 0 {
		return MutedStyle.Render("No tool call records")
	}

	columns := report.Columns(calls)
	var b strings.Builder
	for i, row := range report.Rows(calls, columns) {
		b.WriteString(CountStyle.Render(fmt.Sprintf("#%d", i+1)))
		b.WriteString("\n")
		for j, col := range columns {
			if row[j] == "" {
				continue
			}
			b.WriteString(fmt.Sprintf("  %s: %s\n", MutedStyle.Render(col), row[j]))
		}
		b.WriteString("\n")
	}
	return b.String()
}
