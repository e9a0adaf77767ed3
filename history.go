package stockbook

import (
	"iter"
)

// The history is the audit trail: an ordered sequence of movements addressed
// by position. Edits and deletes are compensating operations; the stock map
// always equals the fold of the post-edit history over the period's opening
// stock.

// EditMovement replaces the entry at position i with updated, reversing the
// old entry's stock effect and applying the new one. Outbound entries must
// carry a description, and the updated entry is held to the same artist
// binding as a fresh Record. When the new effect would drive the location
// negative and allowNegative is false, the reversal is rolled back and the
// document is left untouched.
func (b *Book) EditMovement(i int, updated Movement, allowNegative bool) error {
	if i < 0 || i >= len(b.History) {
		return notFoundErrorf("history position %d does not exist", i)
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	if updated.Type == Outbound && updated.Description == "" {
		return validationErrorf("outbound movements require a description")
	}
	// The artist binding is as hard here as on Record: rewriting one entry
	// must not leave the item's history split across two artists.
	if info := b.Items[updated.Item]; info != nil && info.Artist != "" && info.Artist != updated.Artist {
		return &ArtistMismatchError{Item: updated.Item, Have: info.Artist, Want: updated.Artist}
	}

	old := b.History[i]
	b.applyEffect(old, true)

	if updated.Type == Outbound {
		available := b.Stock.At(updated.Item, updated.Option, updated.Location)
		if available < updated.Quantity && !allowNegative {
			b.applyEffect(old, false) // roll back, net zero
			return &InsufficientStockError{
				Item:      updated.Item,
				Option:    updated.Option,
				Location:  updated.Location,
				Available: available,
				Requested: updated.Quantity,
			}
		}
	}

	b.EnsurePeriod(updated.Period)
	info := b.ensureItem(updated.Item)
	info.Artist = updated.Artist
	info.Category = NormalizeCategory(updated.Category)
	if updated.Option != "" {
		info.Option = updated.Option
	}
	b.applyEffect(updated, false)
	b.History[i] = updated
	return nil
}

// DeleteMovement removes the entry at position i, reversing its stock
// effect. Deleting an inbound entry that would drive the location negative
// requires allowNegative. Deleting the inbound return that closed an event
// session reopens the session's outbound rows.
func (b *Book) DeleteMovement(i int, allowNegative bool) error {
	if i < 0 || i >= len(b.History) {
		return notFoundErrorf("history position %d does not exist", i)
	}
	entry := b.History[i]

	if entry.Type == Inbound {
		available := b.Stock.At(entry.Item, entry.Option, entry.Location)
		if available < entry.Quantity && !allowNegative {
			return &InsufficientStockError{
				Item:      entry.Item,
				Option:    entry.Option,
				Location:  entry.Location,
				Available: available,
				Requested: entry.Quantity,
			}
		}
	}

	if entry.Event && entry.Type == Inbound && entry.EventID != "" {
		b.ReopenEvent(entry.EventID)
	}

	b.applyEffect(entry, true)
	b.History = append(b.History[:i], b.History[i+1:]...)
	return nil
}

// HistoryFilter selects movements; all set fields must match.
type HistoryFilter struct {
	Day    string // exact day "2006-01-02"
	Month  string // period key "2006-01"
	Year   string // "2006"
	Artist string
	From   Date // inclusive day range start; zero means unbounded
	To     Date // inclusive day range end; zero means unbounded
}

// IsZero reports whether no criterion is set.
func (f HistoryFilter) IsZero() bool { return f == HistoryFilter{} }

// Match reports whether the movement satisfies every set criterion.
// Movements whose day does not parse are excluded by a date range.
func (f HistoryFilter) Match(m Movement) bool {
	if f.Day != "" && m.Day != f.Day {
		return false
	}
	if f.Month != "" && m.Period != f.Month {
		return false
	}
	if f.Year != "" && m.Year != f.Year {
		return false
	}
	if f.Artist != "" && m.Artist != f.Artist {
		return false
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		day, err := ParseDate(m.Day)
		if err != nil {
			return false
		}
		if !f.From.IsZero() && day.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && day.After(f.To) {
			return false
		}
	}
	return true
}

// SearchHistory iterates the matching movements in order, yielding each with
// its history position so callers can address entries for edit or delete.
func (b *Book) SearchHistory(f HistoryFilter) iter.Seq2[int, Movement] {
	return func(yield func(int, Movement) bool) {
		for i, m := range b.History {
			if !f.Match(m) {
				continue
			}
			if !yield(i, m) {
				return
			}
		}
	}
}

// FilterHistory collects the matching movements in order.
func (b *Book) FilterHistory(f HistoryFilter) []Movement {
	out := make([]Movement, 0)
	for _, m := range b.SearchHistory(f) {
		out = append(out, m)
	}
	return out
}

// Summarize folds movements into net signed quantities per
// item/option/location: inbound adds, outbound subtracts. Pure; it can be
// applied to any sub-range of history.
func Summarize(entries []Movement) Stock {
	net := make(Stock)
	for _, m := range entries {
		net.Add(m.Item, m.Option, m.Location, m.Sign()*m.Quantity)
	}
	return net
}

// ItemOption identifies an item/option pair in activity summaries.
type ItemOption struct {
	Item   string
	Option string
}

// Flow carries a period's inbound and outbound totals.
type Flow struct {
	In  int
	Out int
}

// PeriodActivity totals the period's movements per item/option, optionally
// restricted to one location.
func (b *Book) PeriodActivity(period, location string) map[ItemOption]Flow {
	totals := make(map[ItemOption]Flow)
	for _, m := range b.History {
		if m.Period != period {
			continue
		}
		if location != "" && m.Location != location {
			continue
		}
		key := ItemOption{Item: m.Item, Option: m.Option}
		flow := totals[key]
		if m.Type == Inbound {
			flow.In += m.Quantity
		} else {
			flow.Out += m.Quantity
		}
		totals[key] = flow
	}
	return totals
}
