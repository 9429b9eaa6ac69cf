package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/convtrace/convtrace/internal/analyzer"
)

// Columns computes the header for a set of tool-call records: the base fields
// in fixed order, then the union of all param_* fields sorted lexicographically.
// Records missing a column render that cell empty.
func Columns(calls []analyzer.ToolCall) []string {
	seen := make(map[string]bool)
	for _, call := range calls {
		for field := range call {
			seen[field] = true
		}
	}

	base := []string{
		analyzer.FieldFunctionName,
		analyzer.FieldActionGroupName,
		analyzer.FieldExecutionType,
	}

	columns := make([]string, 0, len(seen))
	for _, field := range base {
		if seen[field] {
			columns = append(columns, field)
			delete(seen, field)
		}
	}

	params := make([]string, 0, len(seen))
	for field := range seen {
		params = append(params, field)
	}
	sort.Strings(params)

	return append(columns, params...)
}

// Rows flattens the records against a fixed column set, filling missing
// cells with empty strings.
func Rows(calls []analyzer.ToolCall, columns []string) [][]string {
	rows := make([][]string, 0, len(calls))
	for _, call := range calls {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = call[col]
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes the records as delimited rows with a union-of-keys header.
func WriteCSV(w io.Writer, calls []analyzer.ToolCall) error {
	columns := Columns(calls)

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range Rows(calls, columns) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FilterByFunction returns the records whose function_name matches, in order.
func FilterByFunction(calls []analyzer.ToolCall, function string) []analyzer.ToolCall {
	var filtered []analyzer.ToolCall
	for _, call := range calls {
		if call[analyzer.FieldFunctionName] == function {
			filtered = append(filtered, call)
		}
	}
	return filtered
}

// ExportCSVFiles writes the overall tool-invocation CSV plus one filtered CSV
// per distinct function name into dir, returning the paths written. The
// timestamp keeps filenames unique across runs.
func ExportCSVFiles(dir, timestamp string, agg *analyzer.Aggregates) ([]string, error) {
	if len(agg.ToolCalls) == 0 {
		return nil, nil
	}

	var written []string

	overall := filepath.Join(dir, fmt.Sprintf("tool_invocations_%s.csv", timestamp))
	if err := writeCSVFile(overall, agg.ToolCalls); err != nil {
		return written, err
	}
	written = append(written, overall)

	for _, function := range agg.FunctionNames() {
		path := filepath.Join(dir, fmt.Sprintf("tool_%s_%s.csv", sanitizeFilename(function), timestamp))
		if err := writeCSVFile(path, FilterByFunction(agg.ToolCalls, function)); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

func writeCSVFile(path string, calls []analyzer.ToolCall) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, calls); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// sanitizeFilename replaces characters that are unsafe in file names.
// Platform function names are operator-controlled and may contain slashes.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}

func sortedCountKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
