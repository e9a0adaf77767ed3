package sheet

import (
	"fmt"
	"strconv"

	"github.com/yoon/stockbook"
)

// Worksheet names of the peer workbook. Older workbooks carried a single
// "Stock" sheet before the album/merchandise split.
const (
	SheetStockAlbum = "Stock_Album"
	SheetStockMD    = "Stock_MD"
	SheetStock      = "Stock" // legacy, read only
	SheetHistory    = "History"
	SheetMetadata   = "Metadata"
)

// Workbook is the peer's view of the inventory, decoded from its tables.
type Workbook struct {
	Stock       stockbook.Snapshot
	Artists     map[string]string // item → artist, from the stock tables
	History     []stockbook.Movement
	LastUpdated string
}

// CurrentPeriod is the latest period key seen in the peer's history, or ""
// for an empty history.
func (w *Workbook) CurrentPeriod() string {
	latest := ""
	for _, m := range w.History {
		if m.Period > latest {
			latest = m.Period
		}
	}
	return latest
}

var historyHeader = []string{
	"Type", "Artist", "Category", "Item", "Option", "Location", "Quantity",
	"Timestamp", "Day", "Period", "Year", "Description", "Actor",
	"Event", "EventId", "EventOpen",
}

var stockHeader = []string{"아티스트", "품목", "옵션", "로케이션", "수량", "구분"}

// StockTables renders the book's live stock as per-category tables:
// album items under Stock_Album, everything else under Stock_MD.
func StockTables(b *stockbook.Book) []Table {
	album := Table{Name: SheetStockAlbum, Header: stockHeader}
	md := Table{Name: SheetStockMD, Header: stockHeader}

	snap := b.Snapshot()
	for _, key := range snap.Keys() {
		entry := snap[key]
		row := []string{
			entry.Artist,
			key.Item,
			key.Option,
			key.Location,
			strconv.Itoa(entry.Quantity),
			key.Category,
		}
		if key.Category == stockbook.CategoryAlbum {
			album.Rows = append(album.Rows, row)
		} else {
			md.Rows = append(md.Rows, row)
		}
	}
	return []Table{album, md}
}

// HistoryTable renders the full movement history, one row per movement,
// timestamps in display form.
func HistoryTable(b *stockbook.Book) Table {
	t := Table{Name: SheetHistory, Header: historyHeader}
	for _, m := range b.History {
		t.Rows = append(t.Rows, []string{
			string(m.Type),
			m.Artist,
			m.Category,
			m.Item,
			m.Option,
			m.Location,
			strconv.Itoa(m.Quantity),
			stockbook.DisplayTimestamp(m.Timestamp),
			m.Day,
			m.Period,
			m.Year,
			m.Description,
			m.Actor,
			formatBool(m.Event),
			m.EventID,
			formatBool(m.EventOpen),
		})
	}
	return t
}

// MetadataTable renders the workbook metadata: one key/value row per field.
func MetadataTable(b *stockbook.Book) Table {
	return Table{
		Name:   SheetMetadata,
		Header: []string{"Key", "Value"},
		Rows:   [][]string{{"last_updated", b.LastUpdated}},
	}
}

// ParseStockTable folds one stock table into the snapshot. The category
// column wins when present; otherwise defaultCategory (derived from the
// sheet name) applies. Quantity cells parse leniently; rows without an item
// are skipped.
func ParseStockTable(t Table, defaultCategory string, into stockbook.Snapshot, artists map[string]string) error {
	idx := columns(t.Header)
	if _, ok := idx[colItem]; !ok {
		return fmt.Errorf("%w: stock sheet %q has no item column", stockbook.ErrSyncFailure, t.Name)
	}
	for _, row := range t.Rows {
		item := stockbook.NormalizeItem(cell(row, idx, colItem))
		if item == "" {
			continue
		}
		category := stockbook.NormalizeCategory(cell(row, idx, colCategory))
		if cell(row, idx, colCategory) == "" {
			category = defaultCategory
		}
		key := stockbook.SnapshotKey{
			Category: category,
			Item:     item,
			Option:   cell(row, idx, colOption),
			Location: stockbook.NormalizeLocation(cell(row, idx, colLocation)),
		}
		entry := into[key]
		entry.Quantity += parseQuantity(cell(row, idx, colQuantity))
		if artist := cell(row, idx, colArtist); artist != "" {
			entry.Artist = artist
			artists[item] = artist
		}
		into[key] = entry
	}
	return nil
}

// ParseHistoryTable decodes the peer's history rows into movements. Errors
// carry the spreadsheet row number (1-based, counting the header) so the
// operator can find the bad cell.
func ParseHistoryTable(t Table) ([]stockbook.Movement, error) {
	idx := columns(t.Header)
	if _, ok := idx[colType]; !ok {
		return nil, fmt.Errorf("%w: history sheet has no type column", stockbook.ErrSyncFailure)
	}

	var out []stockbook.Movement
	for i, row := range t.Rows {
		qty, err := parseQuantityStrict(cell(row, idx, colQuantity))
		if err != nil {
			return nil, fmt.Errorf("%w: bad quantity in history row %d: %v", stockbook.ErrSyncFailure, i+2, err)
		}
		m := stockbook.Movement{
			Type:        stockbook.MovementType(cell(row, idx, colType)),
			Artist:      cell(row, idx, colArtist),
			Item:        stockbook.NormalizeItem(cell(row, idx, colItem)),
			Category:    stockbook.NormalizeCategory(cell(row, idx, colCategory)),
			Option:      cell(row, idx, colOption),
			Location:    stockbook.NormalizeLocation(cell(row, idx, colLocation)),
			Quantity:    qty,
			Timestamp:   cell(row, idx, colTimestamp),
			Day:         cell(row, idx, colDay),
			Period:      cell(row, idx, colPeriod),
			Year:        cell(row, idx, colYear),
			Description: cell(row, idx, colDescription),
			Actor:       cell(row, idx, colActor),
			Event:       parseBool(cell(row, idx, colEvent)),
			EventID:     cell(row, idx, colEventID),
			EventOpen:   parseBool(cell(row, idx, colEventOpen)),
		}
		if at, err := stockbook.ParseTimestamp(m.Timestamp); err == nil {
			m.Stamp(at)
		}
		out = append(out, m)
	}
	return out, nil
}
