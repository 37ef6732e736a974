// ABOUTME: Shared output helpers for gpu-tco commands
// ABOUTME: Table rendering, JSON encoding and unit formatting

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/docker/go-units"
	"github.com/olekukonko/tablewriter"
)

const bytesPerTB = 1e12

// emitTable renders rows under headers; customize may adjust the table first
func emitTable(w io.Writer, headers []string, rows [][]string, customize func(t *tablewriter.Table)) {
	table := tablewriter.NewWriter(w)
	if len(headers) > 0 {
		table.SetHeader(headers)
		table.SetAutoFormatHeaders(false)
	}
	table.SetAutoWrapText(false)
	if customize != nil {
		customize(table)
	}
	table.AppendBulk(rows)
	table.Render()
}

// rightAlignNumbers right-aligns every column but the first
func rightAlignNumbers(cols int) func(t *tablewriter.Table) {
	return func(t *tablewriter.Table) {
		align := make([]int, cols)
		align[0] = tablewriter.ALIGN_LEFT
		for i := 1; i < cols; i++ {
			align[i] = tablewriter.ALIGN_RIGHT
		}
		t.SetColumnAlignment(align)
	}
}

// writeJSON pretty-prints v
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// humanTB formats terabytes using decimal units
func humanTB(tb float64) string {
	if tb <= 0 {
		return "0B"
	}
	return units.HumanSize(tb * bytesPerTB)
}

// money formats dollars with thousands-scale suffixes
func money(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
