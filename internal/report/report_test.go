package report

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/convtrace/convtrace/internal/analyzer"
)

func sampleAggregates() *analyzer.Aggregates {
	agg := analyzer.NewAggregates()
	agg.AgentInvocations["orders_agent_vtex"] = 3
	agg.AgentInvocations["faq_agent"] = 1
	agg.ToolInvocations["order_status_by_order_number-17"] = 2
	agg.ToolInvocations["lookup_customer"] = 1
	agg.ToolCalls = []analyzer.ToolCall{
		{
			"function_name":     "order_status_by_order_number-17",
			"action_group_name": "getstatusbyordernumber",
			"execution_type":    "LAMBDA",
			"param_orderID":     "1506390500046-01",
		},
		{
			"function_name":     "lookup_customer",
			"action_group_name": "customers",
			"execution_type":    "LAMBDA",
			"param_customer_id": "42",
			"param_email":       "a@b.com",
		},
		{
			"function_name":     "order_status_by_order_number-17",
			"action_group_name": "getstatusbyordernumber",
			"execution_type":    "LAMBDA",
			"param_orderID":     "999",
		},
	}
	return agg
}

func TestColumnsUnionOfKeys(t *testing.T) {
	columns := Columns(sampleAggregates().ToolCalls)

	want := []string{
		"function_name", "action_group_name", "execution_type",
		"param_customer_id", "param_email", "param_orderID",
	}
	if !reflect.DeepEqual(columns, want) {
		t.Errorf("Columns() = %v, want %v", columns, want)
	}
}

func TestRowsFillMissingCells(t *testing.T) {
	agg := sampleAggregates()
	columns := Columns(agg.ToolCalls)
	rows := Rows(agg.ToolCalls, columns)

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// First record has no customer_id/email columns of its own.
	byCol := func(row []string, name string) string {
		for i, col := range columns {
			if col == name {
				return row[i]
			}
		}
		t.Fatalf("column %s not found", name)
		return ""
	}
	if got := byCol(rows[0], "param_customer_id"); got != "" {
		t.Errorf("missing cell = %q, want empty", got)
	}
	if got := byCol(rows[0], "param_orderID"); got != "1506390500046-01" {
		t.Errorf("param_orderID = %q", got)
	}
	if got := byCol(rows[1], "param_email"); got != "a@b.com" {
		t.Errorf("param_email = %q", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleAggregates().ToolCalls); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows", len(lines))
	}
	if lines[0] != "function_name,action_group_name,execution_type,param_customer_id,param_email,param_orderID" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "order_status_by_order_number-17,getstatusbyordernumber,LAMBDA,,,1506390500046-01" {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestBuildSummary(t *testing.T) {
	summary := BuildSummary(sampleAggregates())

	if summary.Agents.Total != 4 {
		t.Errorf("agent total = %d, want 4", summary.Agents.Total)
	}
	if summary.Tools.Total != 3 {
		t.Errorf("tool total = %d, want 3", summary.Tools.Total)
	}
	// Entries sorted lexicographically by name.
	if summary.Agents.Entries[0].Name != "faq_agent" {
		t.Errorf("first agent = %q, want faq_agent", summary.Agents.Entries[0].Name)
	}
	if summary.Tools.Entries[0].Name != "lookup_customer" {
		t.Errorf("first tool = %q, want lookup_customer", summary.Tools.Entries[0].Name)
	}
}

func TestWriteStatistics(t *testing.T) {
	agg := sampleAggregates()

	var first, second bytes.Buffer
	if err := WriteStatistics(&first, agg); err != nil {
		t.Fatalf("WriteStatistics() error = %v", err)
	}
	if err := WriteStatistics(&second, agg); err != nil {
		t.Fatalf("WriteStatistics() error = %v", err)
	}

	t.Run("Idempotent", func(t *testing.T) {
		if first.String() != second.String() {
			t.Error("rendering the same aggregates twice produced different output")
		}
	})

	t.Run("Content", func(t *testing.T) {
		out := first.String()
		for _, want := range []string{
			"AGENT INVOCATIONS:",
			"  orders_agent_vtex: 3",
			"Total agent invocations: 4",
			"TOOL INVOCATIONS:",
			"  order_status_by_order_number-17: 2",
			"Total tool invocations: 3",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}

func TestWriteStatisticsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStatistics(&buf, analyzer.NewAggregates()); err != nil {
		t.Fatalf("WriteStatistics() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "No agent invocations found") {
		t.Errorf("output missing empty-agents marker:\n%s", out)
	}
	if !strings.Contains(out, "No tool invocations found") {
		t.Errorf("output missing empty-tools marker:\n%s", out)
	}
}

func TestWriteListing(t *testing.T) {
	listing := BuildListing("agent", map[string]int{"b": 2, "a": 1})

	var buf bytes.Buffer
	if err := WriteListing(&buf, listing); err != nil {
		t.Fatalf("WriteListing() error = %v", err)
	}
	want := "  a: 1\n  b: 2\n\nTotal agent invocations: 3\n"
	if buf.String() != want {
		t.Errorf("WriteListing() = %q, want %q", buf.String(), want)
	}
}

func TestExportCSVFiles(t *testing.T) {
	tmpDir := t.TempDir()
	agg := sampleAggregates()

	written, err := ExportCSVFiles(tmpDir, "20250522_120000", agg)
	if err != nil {
		t.Fatalf("ExportCSVFiles() error = %v", err)
	}

	// Overall file plus one per distinct function.
	if len(written) != 3 {
		t.Fatalf("wrote %d files, want 3: %v", len(written), written)
	}

	overall := filepath.Join(tmpDir, "tool_invocations_20250522_120000.csv")
	data, err := os.ReadFile(overall)
	if err != nil {
		t.Fatalf("overall CSV not written: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 4 {
		t.Errorf("overall CSV has %d lines, want 4", got)
	}

	perTool := filepath.Join(tmpDir, "tool_lookup_customer_20250522_120000.csv")
	data, err = os.ReadFile(perTool)
	if err != nil {
		t.Fatalf("per-function CSV not written: %v", err)
	}
	if !strings.Contains(string(data), "lookup_customer") {
		t.Errorf("per-function CSV missing records:\n%s", data)
	}
	if strings.Contains(string(data), "order_status") {
		t.Error("per-function CSV contains other functions' records")
	}
}

func TestExportCSVFilesEmpty(t *testing.T) {
	written, err := ExportCSVFiles(t.TempDir(), "ts", analyzer.NewAggregates())
	if err != nil {
		t.Fatalf("ExportCSVFiles() error = %v", err)
	}
	if written != nil {
		t.Errorf("wrote files for empty aggregates: %v", written)
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename("order/status by:number-17"); got != "order_status_by_number-17" {
		t.Errorf("sanitizeFilename() = %q", got)
	}
}

func TestWriteToolCallTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteToolCallTable(&buf, sampleAggregates().ToolCalls); err != nil {
		t.Fatalf("WriteToolCallTable() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "param_orderID") {
		t.Errorf("table missing union column:\n%s", out)
	}
	if !strings.Contains(out, "getstatusbyordernumber") {
		t.Errorf("table missing row data:\n%s", out)
	}
	if !strings.Contains(out, "│") {
		t.Errorf("table not rendered with light box-drawing borders:\n%s", out)
	}
}

func TestWriteCountTable(t *testing.T) {
	var buf bytes.Buffer
	listing := BuildListing("tool", map[string]int{"lookup_customer": 1})
	if err := WriteCountTable(&buf, listing); err != nil {
		t.Fatalf("WriteCountTable() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "lookup_customer") || !strings.Contains(out, "1") {
		t.Errorf("count table missing data:\n%s", out)
	}
}

func TestGenerateMermaid(t *testing.T) {
	out := GenerateMermaid(sampleAggregates())

	if !strings.Contains(out, "flowchart") {
		t.Errorf("output is not a flowchart:\n%s", out)
	}
	for _, want := range []string{"orders_agent_vtex", "lookup_customer", "supervisor"} {
		if !strings.Contains(out, want) {
			t.Errorf("diagram missing %q:\n%s", want, out)
		}
	}
}
