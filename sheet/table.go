// Package sheet implements the tabular peer contract: reading and writing
// the inventory as spreadsheet tables. The peer workbook carries stock tables
// partitioned by category, a history table and a metadata table; the export
// sink produces a transactions table and an optional summary. Headers match
// case-insensitively and accept the bilingual (Korean/English) aliases the
// operators' sheets use.
package sheet

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Table is one worksheet worth of cells: a header row and data rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Column roles of the stock and history tables.
const (
	colType        = "type"
	colArtist      = "artist"
	colItem        = "item"
	colCategory    = "category"
	colOption      = "option"
	colLocation    = "location"
	colQuantity    = "quantity"
	colTimestamp   = "timestamp"
	colDay         = "day"
	colPeriod      = "period"
	colYear        = "year"
	colDescription = "description"
	colActor       = "actor"
	colEvent       = "event"
	colEventID     = "event_id"
	colEventOpen   = "event_open"
)

// headerAliases maps each column role to the accepted header spellings,
// lowercased. Operators maintain these sheets by hand in two languages, so
// the reader meets them where they are.
var headerAliases = map[string][]string{
	colType:        {"type", "타입"},
	colArtist:      {"artist", "아티스트"},
	colItem:        {"item", "album", "품목", "앨범"},
	colCategory:    {"category", "구분"},
	colOption:      {"option", "옵션"},
	colLocation:    {"location", "로케이션", "위치"},
	colQuantity:    {"quantity", "qty", "수량", "현재고"},
	colTimestamp:   {"timestamp", "기록시각"},
	colDay:         {"day", "date", "일자"},
	colPeriod:      {"period", "month", "월"},
	colYear:        {"year", "연"},
	colDescription: {"description", "상세내용"},
	colActor:       {"actor", "작성자"},
	colEvent:       {"event", "이벤트"},
	colEventID:     {"event_id", "eventid", "이벤트id"},
	colEventOpen:   {"event_open", "eventopen", "이벤트진행"},
}

// columns resolves a header row into role → column index. Unknown headers
// are ignored; missing roles are simply absent from the result.
func columns(header []string) map[string]int {
	byAlias := make(map[string]string)
	for role, aliases := range headerAliases {
		for _, a := range aliases {
			byAlias[a] = role
		}
	}
	idx := make(map[string]int)
	for i, h := range header {
		role, ok := byAlias[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, taken := idx[role]; !taken {
			idx[role] = i
		}
	}
	return idx
}

// cell returns the trimmed cell under a role, or "" when the column is absent
// or the row is short.
func cell(row []string, idx map[string]int, role string) string {
	i, ok := idx[role]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseQuantity reads a quantity cell leniently: thousands separators are
// dropped, decimal cells are truncated to their integer part, and anything
// unreadable (or empty) counts as 0. Hand-maintained stock sheets carry all
// of these.
func parseQuantity(raw string) int {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0
	}
	return int(d.IntPart())
}

// parseQuantityStrict is the history-table variant: a malformed cell is an
// error, because silently zeroing a movement would corrupt the replay.
func parseQuantityStrict(raw string) (int, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}

// parseBool reads the boolean encodings the sheets use.
func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "y", "yes":
		return true
	}
	return false
}

func formatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
