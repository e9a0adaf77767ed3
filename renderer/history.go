package renderer

import (
	"fmt"
	"strings"

	"github.com/yoon/stockbook"
)

// HistoryMarkdown renders a history selection, one row per movement, with
// each movement's ledger position so the operator can address entries for
// edit or delete. Positions come paired with their movements.
func HistoryMarkdown(title string, entries []IndexedMovement) string {
	var out strings.Builder
	fmt.Fprintf(&out, "# %s\n\n", title)
	if len(entries) == 0 {
		out.WriteString("No movements matched.\n")
		return out.String()
	}

	header := []string{"#", "Type", "Artist", "Item", "Option", "Location", "Qty", "When", "Description"}
	var rows [][]string
	for _, e := range entries {
		m := e.Movement
		desc := m.Description
		if m.Event {
			state := "closed"
			if m.EventOpen {
				state = "open"
			}
			desc = strings.TrimSpace(desc + fmt.Sprintf(" [event %s %s]", m.EventID, state))
		}
		rows = append(rows, []string{
			itoa(e.Position),
			string(m.Type),
			m.Artist,
			m.Item,
			option(m.Option),
			m.Location,
			itoa(m.Quantity),
			stockbook.DisplayTimestamp(m.Timestamp),
			desc,
		})
	}
	mdTable(&out, header, rows)

	net := make([]stockbook.Movement, 0, len(entries))
	for _, e := range entries {
		net = append(net, e.Movement)
	}
	out.WriteString("\n## Net\n\n")
	SummaryMarkdown(&out, stockbook.Summarize(net))
	return out.String()
}

// IndexedMovement pairs a movement with its history position.
type IndexedMovement struct {
	Position int
	Movement stockbook.Movement
}

// Collect gathers an indexed movement sequence into a slice.
func Collect(seq func(func(int, stockbook.Movement) bool)) []IndexedMovement {
	var out []IndexedMovement
	seq(func(i int, m stockbook.Movement) bool {
		out = append(out, IndexedMovement{Position: i, Movement: m})
		return true
	})
	return out
}
