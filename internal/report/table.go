package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/convtrace/convtrace/internal/analyzer"
)

// tableOptions is the shared console-table formatting: left-aligned cells,
// light box-drawing borders, headers kept verbatim so column names like
// param_orderID survive untouched.
func tableOptions(headers []string) []tablewriter.Option {
	return []tablewriter.Option{
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			MaxWidth: 140,
		}),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleLight),
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNormal),
	}
}

// WriteToolCallTable renders the flattened tool-call records as a table with
// a union-of-keys header.
func WriteToolCallTable(w io.Writer, calls []analyzer.ToolCall) error {
	columns := Columns(calls)
	table := tablewriter.NewTable(w, tableOptions(columns)...)
	for _, row := range Rows(calls, columns) {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// WriteCountTable renders a listing as a two-column name/count table.
func WriteCountTable(w io.Writer, listing Listing) error {
	table := tablewriter.NewTable(w, tableOptions([]string{"Name", "Invocations"})...)
	for _, e := range listing.Entries {
		if err := table.Append([]string{e.Name, strconv.Itoa(e.Count)}); err != nil {
			return err
		}
	}
	return table.Render()
}
