package renderer

import (
	"strings"

	"github.com/yoon/stockbook"
)

// EventsMarkdown lists the open event sessions: outbound movements still
// waiting for their return.
func EventsMarkdown(entries []IndexedMovement) string {
	var out strings.Builder
	out.WriteString("# Open Event Sessions\n\n")
	if len(entries) == 0 {
		out.WriteString("No open sessions.\n")
		return out.String()
	}

	header := []string{"#", "Event", "Artist", "Item", "Option", "Location", "Qty", "Since"}
	var rows [][]string
	for _, e := range entries {
		m := e.Movement
		rows = append(rows, []string{
			itoa(e.Position),
			m.EventID,
			m.Artist,
			m.Item,
			option(m.Option),
			m.Location,
			itoa(m.Quantity),
			m.Day,
		})
	}
	mdTable(&out, header, rows)
	return out.String()
}

// ReconcileMarkdown summarizes a reconciliation pass for the operator.
func ReconcileMarkdown(r *stockbook.ReconcileReport) string {
	var out strings.Builder
	out.WriteString("# Reconciliation — " + r.Source + "\n\n")
	out.WriteString("Pass " + r.PassID + "\n\n")
	if r.Committed == 0 {
		out.WriteString("Already in sync, nothing to do.\n")
		return out.String()
	}

	header := []string{"Type", "Item", "Option", "Location", "Qty"}
	var rows [][]string
	for _, m := range r.Movements {
		rows = append(rows, []string{
			string(m.Type), m.Item, option(m.Option), m.Location, itoa(m.Quantity),
		})
	}
	mdTable(&out, header, rows)
	out.WriteString("\n" + itoa(r.Committed) + " corrections recorded.\n")
	return out.String()
}

// BackupsMarkdown lists the retained backup files, newest first.
func BackupsMarkdown(paths []string) string {
	var out strings.Builder
	out.WriteString("# Backups\n\n")
	if len(paths) == 0 {
		out.WriteString("No backups retained.\n")
		return out.String()
	}
	for _, p := range paths {
		out.WriteString("- " + p + "\n")
	}
	return out.String()
}
