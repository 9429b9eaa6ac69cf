// Package report renders aggregated invocation statistics as text summaries,
// CSV tables, console tables and Mermaid diagrams.
package report

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/convtrace/convtrace/internal/analyzer"
)

// Entry is one name/count pair in a summary listing.
type Entry struct {
	Name  string
	Count int
}

// Listing is a sorted-by-name view of one invocation counter mapping.
type Listing struct {
	Kind    string // "agent" or "tool"
	Entries []Entry
	Total   int
}

// BuildListing converts a counter mapping into a sorted listing.
func BuildListing(kind string, counts map[string]int) Listing {
	listing := Listing{Kind: kind}
	for _, name := range sortedCountKeys(counts) {
		listing.Entries = append(listing.Entries, Entry{Name: name, Count: counts[name]})
		listing.Total += counts[name]
	}
	return listing
}

// Summary is the rendered view of a completed analysis run.
type Summary struct {
	Agents Listing
	Tools  Listing
}

// BuildSummary derives the summary listings from the final aggregates.
// Rendering the same aggregates twice yields identical output.
func BuildSummary(agg *analyzer.Aggregates) Summary {
	return Summary{
		Agents: BuildListing("agent", agg.AgentInvocations),
		Tools:  BuildListing("tool", agg.ToolInvocations),
	}
}

// statisticsTemplate matches the layout of the statistics text report.
var statisticsTemplate = template.Must(
	template.New("statistics").Funcs(sprig.FuncMap()).Parse(`CONVERSATION ANALYSIS STATISTICS
{{ repeat 60 "=" }}

AGENT INVOCATIONS:
{{ repeat 30 "-" }}
{{- if .Agents.Entries }}
{{- range .Agents.Entries }}
  {{ .Name }}: {{ .Count }}
{{- end }}

Total agent invocations: {{ .Agents.Total }}
{{- else }}
  No agent invocations found
{{- end }}

TOOL INVOCATIONS:
{{ repeat 30 "-" }}
{{- if .Tools.Entries }}
{{- range .Tools.Entries }}
  {{ .Name }}: {{ .Count }}
{{- end }}

Total tool invocations: {{ .Tools.Total }}
{{- else }}
  No tool invocations found
{{- end }}
`))

// WriteStatistics renders the statistics text report to w.
func WriteStatistics(w io.Writer, agg *analyzer.Aggregates) error {
	summary := BuildSummary(agg)
	if err := statisticsTemplate.Execute(w, summary); err != nil {
		return fmt.Errorf("failed to render statistics: %w", err)
	}
	return nil
}

// WriteListing renders one listing as plain lines: sorted "name: count"
// entries followed by the total.
func WriteListing(w io.Writer, listing Listing) error {
	if len(listing.Entries) == 0 {
		if _, err := fmt.Fprintf(w, "  No %s invocations found\n", listing.Kind); err != nil {
			return err
		}
		return nil
	}
	for _, e := range listing.Entries {
		if _, err := fmt.Fprintf(w, "  %s: %d\n", e.Name, e.Count); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nTotal %s invocations: %d\n", listing.Kind, listing.Total); err != nil {
		return err
	}
	return nil
}
