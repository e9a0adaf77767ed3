package sheet

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/yoon/stockbook"
)

// ReadWorkbook opens the peer workbook and decodes its stock, history and
// metadata tables. Failures wrap ErrSyncFailure: the caller must leave the
// local document untouched when the peer cannot be read.
func ReadWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open workbook %q: %v", stockbook.ErrSyncFailure, path, err)
	}
	defer f.Close()

	w := &Workbook{
		Stock:   make(stockbook.Snapshot),
		Artists: make(map[string]string),
	}

	stockSheets := []struct {
		name, category string
	}{
		{SheetStockAlbum, stockbook.CategoryAlbum},
		{SheetStockMD, stockbook.CategoryMerch},
		{SheetStock, stockbook.CategoryAlbum}, // legacy single sheet
	}
	found := false
	for _, s := range stockSheets {
		t, ok, err := readTable(f, s.name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		found = true
		if err := ParseStockTable(t, s.category, w.Stock, w.Artists); err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: workbook %q has no stock sheet", stockbook.ErrSyncFailure, path)
	}

	if t, ok, err := readTable(f, SheetHistory); err != nil {
		return nil, err
	} else if ok {
		w.History, err = ParseHistoryTable(t)
		if err != nil {
			return nil, err
		}
	}

	if t, ok, _ := readTable(f, SheetMetadata); ok {
		for _, row := range t.Rows {
			if len(row) >= 2 && row[0] == "last_updated" {
				w.LastUpdated = row[1]
			}
		}
	}
	return w, nil
}

// readTable reads one worksheet as a Table. ok is false when the sheet does
// not exist; an existing but empty sheet yields an empty table.
func readTable(f *excelize.File, name string) (Table, bool, error) {
	if idx, _ := f.GetSheetIndex(name); idx < 0 {
		return Table{}, false, nil
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return Table{}, false, fmt.Errorf("%w: could not read sheet %q: %v", stockbook.ErrSyncFailure, name, err)
	}
	t := Table{Name: name}
	if len(rows) > 0 {
		t.Header = rows[0]
		t.Rows = rows[1:]
	}
	return t, true, nil
}

// WriteWorkbook renders the book into the peer workbook shape and writes it
// to path, replacing any previous file.
func WriteWorkbook(path string, b *stockbook.Book) error {
	tables := StockTables(b)
	tables = append(tables, HistoryTable(b), MetadataTable(b))

	f := excelize.NewFile()
	defer f.Close()
	for i, t := range tables {
		if i == 0 {
			f.SetSheetName("Sheet1", t.Name)
		} else {
			if _, err := f.NewSheet(t.Name); err != nil {
				return fmt.Errorf("could not create sheet %q: %w", t.Name, err)
			}
		}
		if err := writeTable(f, t); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not write workbook %q: %w", path, err)
	}
	return nil
}

func writeTable(f *excelize.File, t Table) error {
	for c, h := range t.Header {
		cellRef, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(t.Name, cellRef, h); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		for c, value := range row {
			cellRef, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(t.Name, cellRef, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// exportHeader is the fixed column order of the transactions export.
var exportHeader = []string{
	"타입", "아티스트", "품목", "구분", "옵션", "로케이션", "수량",
	"기록시각", "일자", "월", "연", "상세내용", "작성자",
}

// ExportTransactions writes the movements to an xlsx file: a Transactions
// sheet with the fixed column order, and, when withSummary is set, a Summary
// sheet of net quantities per item and location.
func ExportTransactions(path string, movements []stockbook.Movement, withSummary bool) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Transactions")

	t := Table{Name: "Transactions", Header: exportHeader}
	for _, m := range movements {
		t.Rows = append(t.Rows, []string{
			string(m.Type),
			m.Artist,
			m.Item,
			m.Category,
			m.Option,
			m.Location,
			strconv.Itoa(m.Quantity),
			stockbook.DisplayTimestamp(m.Timestamp),
			m.Day,
			m.Period,
			m.Year,
			m.Description,
			m.Actor,
		})
	}
	if err := writeTable(f, t); err != nil {
		return err
	}

	if withSummary {
		if _, err := f.NewSheet("Summary"); err != nil {
			return fmt.Errorf("could not create summary sheet: %w", err)
		}
		s := Table{Name: "Summary", Header: []string{"품목", "로케이션", "수량"}}
		net := stockbook.Summarize(movements)
		for ref, qty := range net.All() {
			item := ref.Item
			if ref.Option != "" {
				item = ref.Item + " (" + ref.Option + ")"
			}
			s.Rows = append(s.Rows, []string{item, ref.Location, strconv.Itoa(qty)})
		}
		if err := writeTable(f, s); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not write export %q: %w", path, err)
	}
	return nil
}
