package stockbook

// The document schema has evolved: stock was once {item: {location: qty}}
// without option separation, history entries predate event sessions, and
// item metadata predates audit stamps. Every load and every mutation runs
// through the upgrade rules here, and this file is the only place where
// schema defaults are injected.

// UpgradeDocument normalizes a raw decoded document in place to the current
// schema. It never fails: malformed values are coerced to empty or default
// containers. Applying it to an already-current document changes nothing.
//
// It operates on the raw JSON shape because legacy layouts (a flat
// location→quantity map where an option map belongs) cannot be decoded into
// the typed document at all.
func UpgradeDocument(raw map[string]any) {
	if raw == nil {
		return
	}
	stock := asObject(raw, "stock")
	for item, value := range stock {
		stock[item] = upgradeOptionMap(value)
	}

	for _, value := range asObject(raw, "item_metadata") {
		info, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := info["last_audit"].(map[string]any); !ok {
			info["last_audit"] = map[string]any{}
		}
		if s, _ := info["category"].(string); s == "" {
			info["category"] = CategoryAlbum
		}
	}

	for _, value := range asObject(raw, "periods") {
		period, ok := value.(map[string]any)
		if !ok {
			continue
		}
		opening, ok := period["opening_stock"].(map[string]any)
		if !ok {
			period["opening_stock"] = map[string]any{}
			continue
		}
		for item, v := range opening {
			opening[item] = upgradeOptionMap(v)
		}
	}

	history, ok := raw["history"].([]any)
	if !ok {
		raw["history"] = []any{}
		history = nil
	}
	entries := history[:0]
	for _, value := range history {
		entry, ok := value.(map[string]any)
		if !ok {
			continue // drop malformed entries rather than fail the load
		}
		setDefault(entry, "event", false)
		setDefault(entry, "event_id", "")
		setDefault(entry, "event_open", false)
		if s, _ := entry["category"].(string); s == "" {
			entry["category"] = CategoryAlbum
		}
		entries = append(entries, entry)
	}
	if history != nil {
		raw["history"] = entries
	}

	if _, ok := raw["activity_log"].([]any); !ok {
		raw["activity_log"] = []any{}
	}
}

// asObject returns raw[key] as an object, resetting it to empty when absent
// or not an object.
func asObject(raw map[string]any, key string) map[string]any {
	obj, ok := raw[key].(map[string]any)
	if !ok {
		obj = map[string]any{}
		raw[key] = obj
	}
	return obj
}

func setDefault(obj map[string]any, key string, value any) {
	if _, ok := obj[key]; !ok {
		obj[key] = value
	}
}

// upgradeOptionMap normalizes one stock item value to option→location→qty.
// A flat legacy map (non-empty, all-numeric values) is wrapped under the
// empty-string option; anything that is not an object resets to an empty
// no-option entry.
func upgradeOptionMap(value any) any {
	m, ok := value.(map[string]any)
	if !ok {
		return map[string]any{"": map[string]any{}}
	}
	if len(m) == 0 {
		return m
	}
	for _, v := range m {
		if _, isNumber := v.(float64); !isNumber {
			return m // already option→location→qty
		}
	}
	return map[string]any{"": m}
}

// Upgrade normalizes the typed document before a mutation. The raw shape
// rules cannot recur on a typed Book, so this pass is about containers and
// field defaults only; it is idempotent and cheap enough to run on every
// mutation path.
func (b *Book) Upgrade() {
	if b.Periods == nil {
		b.Periods = make(map[string]*PeriodRecord)
	}
	if b.Stock == nil {
		b.Stock = make(Stock)
	}
	if b.History == nil {
		b.History = make([]Movement, 0)
	}
	if b.Items == nil {
		b.Items = make(map[string]*ItemInfo)
	}
	if b.ActivityLog == nil {
		b.ActivityLog = make([]ActivityEntry, 0)
	}
	for _, period := range b.Periods {
		if period.OpeningStock == nil {
			period.OpeningStock = make(Stock)
		}
	}
	for i := range b.History {
		if b.History[i].Category == "" {
			b.History[i].Category = CategoryAlbum
		}
	}
	for _, info := range b.Items {
		if info.LastAudit == nil {
			info.LastAudit = make(map[string]string)
		}
		if info.Category == "" {
			info.Category = CategoryAlbum
		}
	}
}
