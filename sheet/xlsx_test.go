package sheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yoon/stockbook"
)

func TestWriteReadWorkbookRoundTrip(t *testing.T) {
	b := testBook(t)
	b.Touch()
	path := filepath.Join(t.TempDir(), "peer.xlsx")

	require.NoError(t, WriteWorkbook(path, b))

	w, err := ReadWorkbook(path)
	require.NoError(t, err)

	// The peer's stock view matches the book's snapshot.
	local := b.Snapshot()
	for _, key := range local.Keys() {
		assert.Equal(t, local[key].Quantity, w.Stock[key].Quantity, "key %+v", key)
	}
	assert.Empty(t, local.Diff(w.Stock), "round trip must be reconciliation-clean")

	assert.Equal(t, "ArtistA", w.Artists["Album X"])
	assert.Len(t, w.History, len(b.History))
	assert.Equal(t, b.LastUpdated, w.LastUpdated)
	assert.Equal(t, b.CurrentPeriod, w.CurrentPeriod())
}

func TestReadWorkbookLegacyStockSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.xlsx")

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetStock)
	require.NoError(t, writeTable(f, Table{
		Name:   SheetStock,
		Header: []string{"아티스트", "품목", "로케이션", "수량"},
		Rows:   [][]string{{"ArtistA", "Old Album", "Seoul", "7"}},
	}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	w, err := ReadWorkbook(path)
	require.NoError(t, err)

	key := stockbook.SnapshotKey{Category: "album", Item: "Old Album", Location: "Seoul"}
	assert.Equal(t, 7, w.Stock[key].Quantity)
	assert.Equal(t, "ArtistA", w.Artists["Old Album"])
	assert.Empty(t, w.History, "a workbook without a history sheet reads fine")
}

func TestReadWorkbookErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"))
		assert.ErrorIs(t, err, stockbook.ErrSyncFailure)
	})

	t.Run("no stock sheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.xlsx")
		f := excelize.NewFile()
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		_, err := ReadWorkbook(path)
		assert.ErrorIs(t, err, stockbook.ErrSyncFailure)
	})
}

func TestExportTransactions(t *testing.T) {
	b := testBook(t)
	path := filepath.Join(t.TempDir(), "export.xlsx")

	require.NoError(t, ExportTransactions(path, b.History, true))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, len(b.History)+1)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "in", rows[1][0])
	assert.Equal(t, "Album X", rows[1][2])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.NotEmpty(t, summary)
	assert.Equal(t, []string{"품목", "로케이션", "수량"}, summary[0])
	// Net per item: 10 in, 3 out.
	assert.Contains(t, summary, []string{"Album X", "Seoul", "7"})
}

func TestExportTransactionsWithoutSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, ExportTransactions(path, nil, false))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	idx, err := f.GetSheetIndex("Summary")
	require.NoError(t, err)
	assert.Negative(t, idx, "no summary sheet requested")
}
