// Package renderer builds the markdown reports shown by the CLI: stock
// overviews, history listings, open event sessions and reconciliation
// summaries. Rendering to the terminal is the caller's concern.
package renderer

import (
	"fmt"
	"strings"
)

// mdTable writes a markdown table with a header row and a separator.
func mdTable(b *strings.Builder, header []string, rows [][]string) {
	writeRow(b, header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(b, sep)
	for _, row := range rows {
		writeRow(b, row)
	}
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

// option renders an option key for display; the no-option key shows as "-".
func option(opt string) string {
	if opt == "" {
		return "-"
	}
	return opt
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }
