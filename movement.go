package stockbook

import (
	"strings"
	"time"
)

// MovementType is the direction of a stock movement.
type MovementType string

const (
	// Inbound adds stock (receiving, returns).
	Inbound MovementType = "in"
	// Outbound removes stock (dispatch, sales, event loans).
	Outbound MovementType = "out"
)

// Known category keys after normalization.
const (
	CategoryAlbum = "album"
	CategoryMerch = "md"
)

// NormalizeCategory maps the free-form category labels found in documents
// and sheet rows onto canonical keys. Unrecognized labels pass through
// trimmed and lowercased; empty input defaults to "album".
func NormalizeCategory(value string) string {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	switch cleaned {
	case "":
		return CategoryAlbum
	case "md", "md/굿즈", "merch", "굿즈":
		return CategoryMerch
	case "album", "앨범":
		return CategoryAlbum
	}
	return cleaned
}

// NormalizeItem cleans an item name for storage.
func NormalizeItem(value string) string { return strings.TrimSpace(value) }

// NormalizeLocation cleans a location name for storage.
func NormalizeLocation(value string) string { return strings.TrimSpace(value) }

// Movement is one history entry: an inbound or outbound quantity for an
// item/option/location. Quantity is always the positive magnitude; the
// direction is carried by Type. The JSON field order below is the canonical
// on-disk order.
type Movement struct {
	Type        MovementType `json:"type"`
	Artist      string       `json:"artist"`
	Item        string       `json:"item"`
	Category    string       `json:"category"`
	Option      string       `json:"option"`
	Location    string       `json:"location"`
	Quantity    int          `json:"quantity"`
	Timestamp   string       `json:"timestamp"`
	Actor       string       `json:"actor"`
	Period      string       `json:"period"`
	Day         string       `json:"day"`
	Year        string       `json:"year"`
	Description string       `json:"description"`
	Event       bool         `json:"event"`
	EventID     string       `json:"event_id"`
	EventOpen   bool         `json:"event_open"`
}

// NewMovement builds a movement stamped at the given instant. Item, location
// and category are normalized; period, day and year are derived from the
// timestamp.
func NewMovement(typ MovementType, artist, item, category, option, location string, quantity int, at time.Time, actor, description string) Movement {
	m := Movement{
		Type:        typ,
		Artist:      strings.TrimSpace(artist),
		Item:        NormalizeItem(item),
		Category:    NormalizeCategory(category),
		Option:      strings.TrimSpace(option),
		Location:    NormalizeLocation(location),
		Quantity:    quantity,
		Actor:       strings.TrimSpace(actor),
		Description: description,
	}
	m.Stamp(at)
	return m
}

// Stamp sets the timestamp and the derived period/day/year fields.
func (m *Movement) Stamp(at time.Time) {
	m.Timestamp = at.Format(TimestampFormat)
	m.Period = at.Format("2006-01")
	m.Day = at.Format(DateFormat)
	m.Year = at.Format("2006")
}

// When returns the movement's instant, falling back to the day field when the
// timestamp does not parse. The zero time is returned when neither does.
func (m Movement) When() time.Time {
	if t, err := ParseTimestamp(m.Timestamp); err == nil {
		return t
	}
	if d, err := ParseDate(m.Day); err == nil {
		return d.time()
	}
	return time.Time{}
}

// Sign returns +1 for inbound and -1 for outbound movements.
func (m Movement) Sign() int {
	if m.Type == Outbound {
		return -1
	}
	return 1
}

// Validate checks the fields every recorded movement must carry.
func (m Movement) Validate() error {
	if m.Type != Inbound && m.Type != Outbound {
		return validationErrorf("movement type must be %q or %q, got %q", Inbound, Outbound, m.Type)
	}
	if m.Item == "" {
		return validationErrorf("movement item is missing")
	}
	if m.Location == "" {
		return validationErrorf("movement location is missing")
	}
	if m.Quantity <= 0 {
		return validationErrorf("movement quantity must be positive, got %d", m.Quantity)
	}
	return nil
}

// MarshalJSON writes the movement with its canonical field order.
func (m Movement) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", string(m.Type))
	w.Append("artist", m.Artist)
	w.Append("item", m.Item)
	w.Append("category", m.Category)
	w.Append("option", m.Option)
	w.Append("location", m.Location)
	w.Append("quantity", m.Quantity)
	w.Append("timestamp", m.Timestamp)
	w.Append("actor", m.Actor)
	w.Append("period", m.Period)
	w.Append("day", m.Day)
	w.Append("year", m.Year)
	w.Append("description", m.Description)
	w.Append("event", m.Event)
	w.Append("event_id", m.EventID)
	w.Append("event_open", m.EventOpen)
	return w.MarshalJSON()
}
