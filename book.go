package stockbook

import (
	"time"
)

// PeriodRecord freezes the stock at the start of a period.
type PeriodRecord struct {
	OpeningStock Stock  `json:"opening_stock"`
	CreatedAt    string `json:"created_at"`
}

// ActivityEntry is one line of the operator activity log.
type ActivityEntry struct {
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// activityLogCap bounds the activity log; older entries are dropped.
const activityLogCap = 5000

// LoadError annotates a document recovered from a corrupt file.
type LoadError struct {
	Message       string `json:"error"`
	CorruptBackup string `json:"corrupt_backup"`
	RecoveredAt   string `json:"recovered_at"`
}

// Book is the root aggregate: the whole inventory document. It is owned by a
// single writer; all mutation goes through its methods and the document is
// persisted wholesale.
//
// In a Book the history is an ordered sequence; movements are addressed by
// position for edits and deletes.
type Book struct {
	CurrentPeriod string                   `json:"current_period"`
	Periods       map[string]*PeriodRecord `json:"periods"`
	Stock         Stock                    `json:"stock"`
	History       []Movement               `json:"history"`
	Items         map[string]*ItemInfo     `json:"item_metadata"`
	LastUpdated   string                   `json:"last_updated"`
	ActivityLog   []ActivityEntry          `json:"activity_log"`
	LastLoadError *LoadError               `json:"last_load_error,omitempty"`
}

// NewBook creates an empty document.
func NewBook() *Book {
	return &Book{
		Periods:     make(map[string]*PeriodRecord),
		Stock:       make(Stock),
		History:     make([]Movement, 0),
		Items:       make(map[string]*ItemInfo),
		ActivityLog: make([]ActivityEntry, 0),
	}
}

// Clone returns a deep copy of the document, safe to hand to the background
// saver while the original keeps being mutated.
func (b *Book) Clone() *Book {
	c := &Book{
		CurrentPeriod: b.CurrentPeriod,
		Periods:       make(map[string]*PeriodRecord, len(b.Periods)),
		Stock:         b.Stock.Clone(),
		History:       make([]Movement, len(b.History)),
		Items:         make(map[string]*ItemInfo, len(b.Items)),
		LastUpdated:   b.LastUpdated,
		ActivityLog:   make([]ActivityEntry, len(b.ActivityLog)),
	}
	for key, period := range b.Periods {
		c.Periods[key] = &PeriodRecord{
			OpeningStock: period.OpeningStock.Clone(),
			CreatedAt:    period.CreatedAt,
		}
	}
	copy(c.History, b.History)
	for item, info := range b.Items {
		ci := *info
		ci.LastAudit = make(map[string]string, len(info.LastAudit))
		for k, v := range info.LastAudit {
			ci.LastAudit[k] = v
		}
		c.Items[item] = &ci
	}
	copy(c.ActivityLog, b.ActivityLog)
	if b.LastLoadError != nil {
		le := *b.LastLoadError
		c.LastLoadError = &le
	}
	return c
}

// EnsurePeriod opens the period for the given key if it is later than
// everything seen so far: the live stock is deep-copied as the period's
// opening stock and CurrentPeriod advances. Re-opening an existing period or
// a period earlier than CurrentPeriod is a no-op, so back-dated movements can
// never rewrite a closed month's opening snapshot.
func (b *Book) EnsurePeriod(key string) {
	b.Upgrade()
	if _, ok := b.Periods[key]; ok {
		return
	}
	if b.CurrentPeriod != "" && key < b.CurrentPeriod {
		return
	}
	if b.CurrentPeriod == key {
		return
	}
	b.Periods[key] = &PeriodRecord{
		OpeningStock: b.Stock.Clone(),
		CreatedAt:    time.Now().Format(TimestampFormat),
	}
	b.CurrentPeriod = key
}

// OpeningStock returns the opening stock of a period, or nil when the period
// was never started.
func (b *Book) OpeningStock(key string) Stock {
	if p, ok := b.Periods[key]; ok {
		return p.OpeningStock
	}
	return nil
}

// UpdateStock adds a signed delta at item/option/location, creating
// intermediate maps as needed. No bounds check happens here; availability is
// the recording layer's concern.
func (b *Book) UpdateStock(item, option, location string, delta int) {
	b.Upgrade()
	b.Stock.Add(item, option, location, delta)
}

// Record validates and applies one movement: ensures its period, guards the
// item's artist binding, checks availability on outbound, updates stock and
// appends to history. The call is all-or-nothing; on error the document is
// unchanged.
//
// allowNegative permits the outbound quantity to exceed availability; it is
// used by reconciliation (the external side is authoritative) and by explicit
// operator override.
func (b *Book) Record(m Movement, allowNegative bool) error {
	if err := m.Validate(); err != nil {
		return err
	}
	b.EnsurePeriod(m.Period)

	info := b.ensureItem(m.Item)
	if info.Artist != "" && info.Artist != m.Artist {
		return &ArtistMismatchError{Item: m.Item, Have: info.Artist, Want: m.Artist}
	}

	if m.Type == Outbound {
		available := b.Stock.At(m.Item, m.Option, m.Location)
		if available < m.Quantity && !allowNegative {
			return &InsufficientStockError{
				Item:      m.Item,
				Option:    m.Option,
				Location:  m.Location,
				Available: available,
				Requested: m.Quantity,
			}
		}
	}

	// All checks passed: the movement will be recorded.
	info.Artist = m.Artist
	info.Category = NormalizeCategory(m.Category)
	if m.Option != "" {
		info.Option = m.Option
	}
	b.UpdateStock(m.Item, m.Option, m.Location, m.Sign()*m.Quantity)
	b.History = append(b.History, m)
	return nil
}

// applyEffect applies a movement's stock effect; inverse reverses it.
func (b *Book) applyEffect(m Movement, inverse bool) {
	delta := m.Sign() * m.Quantity
	if inverse {
		delta = -delta
	}
	b.UpdateStock(m.Item, m.Option, m.Location, delta)
}

// Touch refreshes the last-updated stamp.
func (b *Book) Touch() {
	b.LastUpdated = time.Now().Format(TimestampFormat)
}

// LogActivity appends an operator action to the activity log, dropping the
// oldest entries beyond the cap.
func (b *Book) LogActivity(actor, action string) {
	b.ActivityLog = append(b.ActivityLog, ActivityEntry{
		Actor:     actor,
		Action:    action,
		Timestamp: time.Now().Format(TimestampFormat),
	})
	if len(b.ActivityLog) > activityLogCap {
		b.ActivityLog = b.ActivityLog[len(b.ActivityLog)-activityLogCap:]
	}
}
