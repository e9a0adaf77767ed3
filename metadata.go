package stockbook

// ItemInfo is the per-item metadata kept alongside the stock map. An item is
// bound to exactly one artist for its lifetime; Category and Option reflect
// the most recent movement.
type ItemInfo struct {
	Artist    string            `json:"artist"`
	Category  string            `json:"category"`
	Option    string            `json:"option,omitempty"`
	LastAudit map[string]string `json:"last_audit"`
}

// AuditKey builds the last-audit key for an option and audit scope
// (a location name, or a caller-chosen marker for a whole-item count).
func AuditKey(option, scope string) string { return option + "::" + scope }

// Item returns the metadata for an item, or nil if the item is unknown.
func (b *Book) Item(item string) *ItemInfo {
	return b.Items[item]
}

// ensureItem returns the metadata entry for item, creating it when absent.
func (b *Book) ensureItem(item string) *ItemInfo {
	info, ok := b.Items[item]
	if !ok {
		info = &ItemInfo{LastAudit: make(map[string]string)}
		b.Items[item] = info
	}
	if info.LastAudit == nil {
		info.LastAudit = make(map[string]string)
	}
	return info
}

// Artist returns the artist an item is bound to, or "" if unknown.
func (b *Book) Artist(item string) string {
	if info, ok := b.Items[item]; ok {
		return info.Artist
	}
	return ""
}

// StampAudit records that the given option/scope of an item was counted on
// the given day. The item must already exist in the metadata.
func (b *Book) StampAudit(item, option, scope string, on Date) error {
	info, ok := b.Items[item]
	if !ok {
		return notFoundErrorf("item %q has no metadata to audit", item)
	}
	if info.LastAudit == nil {
		info.LastAudit = make(map[string]string)
	}
	info.LastAudit[AuditKey(option, scope)] = on.String()
	return nil
}
