package stockbook

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeBook reads a whole document from r, upgrades it to the current
// schema, and binds it into a Book. The upgrade happens on the raw JSON
// first: legacy layouts cannot be decoded into the typed document directly.
func DecodeBook(r io.Reader) (*Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read document: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not parse document: %w", err)
	}
	// "null" decodes into a nil map without error; it is not a document.
	if raw == nil {
		return nil, fmt.Errorf("could not parse document: not a JSON object")
	}
	UpgradeDocument(raw)

	canonical, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("could not re-encode upgraded document: %w", err)
	}

	book := NewBook()
	if err := json.Unmarshal(canonical, book); err != nil {
		return nil, fmt.Errorf("could not bind upgraded document: %w", err)
	}
	book.Upgrade()
	return book, nil
}

// EncodeBook writes the document as one compact JSON object with the
// canonical top-level field order.
func EncodeBook(w io.Writer, b *Book) error {
	b.Upgrade()
	var jw jsonObjectWriter
	jw.Append("current_period", orNull(b.CurrentPeriod))
	jw.Append("periods", b.Periods)
	jw.Append("stock", b.Stock)
	jw.Append("history", b.History)
	jw.Append("item_metadata", b.Items)
	jw.Append("last_updated", orNull(b.LastUpdated))
	jw.Append("activity_log", b.ActivityLog)
	jw.Optional("last_load_error", b.LastLoadError)

	data, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write document: %w", err)
	}
	return nil
}

// orNull keeps the convention of documents written before a value was ever
// set: they carry null, not "".
func orNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}
