package stockbook

import (
	"iter"
	"time"
)

// Event sessions tie an outbound dispatch to the inbound return that settles
// it. A session is one outbound history row flagged event+open; repeated
// dispatches for the same item merge into that row, and the return closes it.

// NewEventID mints a session identifier from the dispatch time.
func NewEventID(at time.Time) string {
	return at.Format("20060102150405")
}

// FindOpenEvent returns the history position of the open session matching
// artist, item, option and category, or -1. The most recent session wins.
func (b *Book) FindOpenEvent(artist, item, option, category string) int {
	item = NormalizeItem(item)
	category = NormalizeCategory(category)
	for i := len(b.History) - 1; i >= 0; i-- {
		m := b.History[i]
		if !m.Event || m.Type != Outbound || !m.EventOpen {
			continue
		}
		if m.Artist != artist || m.Item != item || m.Option != option {
			continue
		}
		if NormalizeCategory(m.Category) != category {
			continue
		}
		return i
	}
	return -1
}

// DispatchEvent records an outbound movement as an event session. When an
// open session already matches, the new movement is folded into its row: the
// quantity accumulates and the row takes the new movement's timestamp. The
// returned id identifies the session for the eventual return.
func (b *Book) DispatchEvent(m Movement, allowNegative bool) (eventID string, merged bool, err error) {
	if m.Type != Outbound {
		return "", false, validationErrorf("event dispatch must be an outbound movement")
	}
	at := m.When()
	if at.IsZero() {
		at = time.Now()
	}

	idx := b.FindOpenEvent(m.Artist, m.Item, m.Option, m.Category)
	eventID = NewEventID(at)
	if idx >= 0 && b.History[idx].EventID != "" {
		eventID = b.History[idx].EventID
	}

	m.Event = true
	m.EventID = eventID
	m.EventOpen = true
	if err := b.Record(m, allowNegative); err != nil {
		return "", false, err
	}
	if idx < 0 {
		return eventID, false, nil
	}

	// Fold the freshly appended row into the open session. The stock effect
	// of both rows has already been applied, so only the history collapses.
	appended := b.History[len(b.History)-1]
	b.History = b.History[:len(b.History)-1]
	target := &b.History[idx]
	target.Quantity += appended.Quantity
	target.Timestamp = appended.Timestamp
	target.Day = appended.Day
	target.Period = appended.Period
	target.Year = appended.Year
	target.Event = true
	target.EventOpen = true
	if target.EventID == "" {
		target.EventID = eventID
	}
	return eventID, true, nil
}

// ReturnEvent records the inbound return for a session and closes it.
func (b *Book) ReturnEvent(m Movement, eventID string, allowNegative bool) error {
	if m.Type != Inbound {
		return validationErrorf("event return must be an inbound movement")
	}
	m.Event = true
	m.EventID = eventID
	m.EventOpen = false
	if err := b.Record(m, allowNegative); err != nil {
		return err
	}
	b.CloseEvent(eventID)
	return nil
}

// CloseEvent marks every outbound row of the session as settled. Empty ids
// are ignored; legacy rows recorded before sessions carried ids have none.
func (b *Book) CloseEvent(eventID string) {
	if eventID == "" {
		return
	}
	for i := range b.History {
		m := &b.History[i]
		if m.Event && m.Type == Outbound && m.EventID == eventID {
			m.EventOpen = false
		}
	}
}

// ReopenEvent reverts CloseEvent, typically when the settling return is
// deleted.
func (b *Book) ReopenEvent(eventID string) {
	if eventID == "" {
		return
	}
	for i := range b.History {
		m := &b.History[i]
		if m.Event && m.Type == Outbound && m.EventID == eventID {
			m.EventOpen = true
		}
	}
}

// ClearEventFlag settles a single session row without recording a return,
// for sessions that will never see one.
func (b *Book) ClearEventFlag(i int) error {
	if i < 0 || i >= len(b.History) {
		return notFoundErrorf("history position %d does not exist", i)
	}
	if !b.History[i].Event {
		return validationErrorf("history position %d is not an event movement", i)
	}
	b.History[i].EventOpen = false
	return nil
}

// OpenEvents iterates the open sessions in history order, yielding each with
// its position.
func (b *Book) OpenEvents() iter.Seq2[int, Movement] {
	return func(yield func(int, Movement) bool) {
		for i, m := range b.History {
			if m.Event && m.Type == Outbound && m.EventOpen {
				if !yield(i, m) {
					return
				}
			}
		}
	}
}
