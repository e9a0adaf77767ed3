package stockbook

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Reconciliation aligns local stock with an external snapshot by replaying
// the quantity differences as ordinary movements. The stock map is never
// overwritten directly, so the history keeps explaining the stock even after
// an external correction.

// SnapshotKey addresses one quantity cell across both sides of a
// reconciliation pass.
type SnapshotKey struct {
	Category string
	Item     string
	Option   string
	Location string
}

// SnapshotEntry is the external view of one cell: the quantity plus the item
// metadata the external side carries for it.
type SnapshotEntry struct {
	Quantity int
	Artist   string
}

// Snapshot is one side's flat view of the stock. Absent keys read as
// quantity 0.
type Snapshot map[SnapshotKey]SnapshotEntry

// Snapshot flattens the book's live stock, attaching each item's recorded
// artist and normalized category.
func (b *Book) Snapshot() Snapshot {
	b.Upgrade()
	snap := make(Snapshot)
	for ref, qty := range b.Stock.All() {
		category := CategoryAlbum
		artist := ""
		if info := b.Items[ref.Item]; info != nil {
			category = NormalizeCategory(info.Category)
			artist = info.Artist
		}
		snap[SnapshotKey{
			Category: category,
			Item:     ref.Item,
			Option:   ref.Option,
			Location: ref.Location,
		}] = SnapshotEntry{Quantity: qty, Artist: artist}
	}
	return snap
}

// Keys returns the snapshot keys in sorted order.
func (s Snapshot) Keys() []SnapshotKey {
	keys := make([]SnapshotKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareSnapshotKeys)
	return keys
}

// Diff lists the keys whose quantities differ between the two snapshots, in
// sorted key order. Keys present on only one side are compared against 0.
func (local Snapshot) Diff(external Snapshot) []SnapshotKey {
	keys := make(map[SnapshotKey]struct{}, len(local)+len(external))
	for k := range local {
		keys[k] = struct{}{}
	}
	for k := range external {
		keys[k] = struct{}{}
	}

	var changed []SnapshotKey
	for k := range keys {
		if local[k].Quantity != external[k].Quantity {
			changed = append(changed, k)
		}
	}
	slices.SortFunc(changed, compareSnapshotKeys)
	return changed
}

func compareSnapshotKeys(a, b SnapshotKey) int {
	if c := compareStrings(a.Category, b.Category); c != 0 {
		return c
	}
	if c := compareStrings(a.Item, b.Item); c != 0 {
		return c
	}
	if c := compareStrings(a.Option, b.Option); c != 0 {
		return c
	}
	return compareStrings(a.Location, b.Location)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ReconcileReport summarizes one reconciliation pass.
type ReconcileReport struct {
	PassID    string     // correlation id for logs and operator reports
	Source    string     // label of the external side, e.g. "workbook"
	Started   time.Time  //
	Committed int        // synthesized movements recorded
	Movements []Movement // the synthesized movements, in key order
}

// Reconcile pulls the external snapshot into the book: every differing
// quantity becomes a synthesized in/out movement recorded with negative stock
// allowed, because the external side is authoritative for the pass. External
// artist metadata is merged preferentially, bypassing the mismatch guard.
//
// The pass commits key by key. When a key fails, the movements already
// recorded stay committed and the returned SyncError reports their count;
// the caller decides whether to retry the remainder.
//
// Callers must snapshot the document (a forced labeled backup) before calling
// Reconcile; the pass itself has no rollback.
func (b *Book) Reconcile(external Snapshot, source, actor string, at time.Time) (*ReconcileReport, error) {
	b.Upgrade()
	report := &ReconcileReport{
		PassID:  uuid.NewString(),
		Source:  source,
		Started: at,
	}

	// Merge external artists first: synthesized movements must carry the
	// authoritative artist or Record would reject them as mismatches.
	for key, entry := range external {
		if entry.Artist == "" {
			continue
		}
		info := b.ensureItem(key.Item)
		if info.Artist != entry.Artist {
			info.Artist = entry.Artist
		}
		if info.Category == "" || info.Category == CategoryAlbum {
			info.Category = NormalizeCategory(key.Category)
		}
	}

	local := b.Snapshot()
	for _, key := range local.Diff(external) {
		diff := external[key].Quantity - local[key].Quantity
		typ := Inbound
		if diff < 0 {
			typ = Outbound
			diff = -diff
		}
		artist := external[key].Artist
		if artist == "" {
			artist = b.Artist(key.Item)
		}
		m := NewMovement(typ, artist, key.Item, key.Category, key.Option, key.Location,
			diff, at, actor, source+" correction")
		if err := b.Record(m, true); err != nil {
			log.Error().Str("pass", report.PassID).Str("item", key.Item).
				Int("committed", report.Committed).Err(err).
				Msg("reconciliation aborted mid-pass")
			return report, &SyncError{Committed: report.Committed, Cause: err}
		}
		report.Committed++
		report.Movements = append(report.Movements, m)
	}

	log.Info().Str("pass", report.PassID).Str("source", source).
		Int("committed", report.Committed).Msg("reconciliation pass done")
	return report, nil
}

// MergeMetadata copies non-empty external artists into the local metadata,
// without the mismatch guard. Used on pull for items that have metadata rows
// but no stock cells.
func (b *Book) MergeMetadata(artists map[string]string) {
	for _, item := range slices.Sorted(maps.Keys(artists)) {
		if artist := artists[item]; artist != "" {
			b.ensureItem(item).Artist = artist
		}
	}
}
