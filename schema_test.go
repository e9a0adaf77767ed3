package stockbook

import (
	"encoding/json"
	"reflect"
	"testing"
)

func rawDoc(t *testing.T, src string) map[string]any {
	t.Helper()
	var raw map[string]any
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("bad test document: %v", err)
	}
	return raw
}

func TestUpgradeWrapsLegacyStock(t *testing.T) {
	raw := rawDoc(t, `{
		"stock": {
			"Old Album": {"Seoul": 10, "Busan": 3},
			"New Album": {"": {"Seoul": 5}}
		}
	}`)
	UpgradeDocument(raw)

	stock := raw["stock"].(map[string]any)
	old := stock["Old Album"].(map[string]any)
	if _, ok := old[""]; !ok {
		t.Fatalf("legacy flat map not wrapped: %v", old)
	}
	if qty := old[""].(map[string]any)["Seoul"].(float64); qty != 10 {
		t.Errorf("wrapped quantity = %v, want 10", qty)
	}

	// Already option-keyed entries pass through untouched.
	if _, ok := stock["New Album"].(map[string]any)[""]; !ok {
		t.Error("current-layout entry was damaged")
	}
}

func TestUpgradeResetsMalformedContainers(t *testing.T) {
	raw := rawDoc(t, `{
		"stock": "not a map",
		"history": 42,
		"item_metadata": {"Album": {"artist": "A"}}
	}`)
	UpgradeDocument(raw)

	if _, ok := raw["stock"].(map[string]any); !ok {
		t.Error("malformed stock should reset to an empty map")
	}
	if _, ok := raw["history"].([]any); !ok {
		t.Error("malformed history should reset to an empty list")
	}

	info := raw["item_metadata"].(map[string]any)["Album"].(map[string]any)
	if _, ok := info["last_audit"].(map[string]any); !ok {
		t.Error("missing last_audit should default to an empty map")
	}
	if info["category"] != "album" {
		t.Errorf("missing category should default to album, got %v", info["category"])
	}
}

func TestUpgradeDefaultsHistoryFields(t *testing.T) {
	raw := rawDoc(t, `{
		"history": [
			{"type": "in", "item": "Album", "quantity": 1},
			{"type": "out", "item": "Album", "quantity": 1, "event": true, "event_id": "e1", "event_open": true, "category": "md"}
		]
	}`)
	UpgradeDocument(raw)

	entries := raw["history"].([]any)
	first := entries[0].(map[string]any)
	if first["event"] != false || first["event_id"] != "" || first["event_open"] != false {
		t.Errorf("event defaults not applied: %v", first)
	}
	if first["category"] != "album" {
		t.Errorf("category default not applied: %v", first["category"])
	}

	// Present values are never overwritten.
	second := entries[1].(map[string]any)
	if second["event"] != true || second["event_id"] != "e1" || second["category"] != "md" {
		t.Errorf("existing fields were overwritten: %v", second)
	}
}

func TestUpgradePeriodsOpeningStock(t *testing.T) {
	raw := rawDoc(t, `{
		"periods": {
			"2024-01": {"opening_stock": {"Album": {"Seoul": 7}}, "created_at": "x"},
			"2024-02": {"created_at": "y"}
		}
	}`)
	UpgradeDocument(raw)

	periods := raw["periods"].(map[string]any)
	jan := periods["2024-01"].(map[string]any)["opening_stock"].(map[string]any)
	wrapped := jan["Album"].(map[string]any)
	if _, ok := wrapped[""]; !ok {
		t.Errorf("period opening stock not option-wrapped: %v", wrapped)
	}
	feb := periods["2024-02"].(map[string]any)
	if _, ok := feb["opening_stock"].(map[string]any); !ok {
		t.Error("missing opening_stock should default to empty")
	}
}

func TestUpgradeIsIdempotent(t *testing.T) {
	raw := rawDoc(t, `{
		"current_period": "2024-03",
		"stock": {"Old": {"Seoul": 2}, "New": {"ver.1": {"Busan": 1}}},
		"periods": {"2024-03": {"opening_stock": {"Old": {"Seoul": 2}}, "created_at": "t"}},
		"history": [{"type": "in", "item": "Old", "quantity": 2}],
		"item_metadata": {"Old": {"artist": "A"}}
	}`)
	UpgradeDocument(raw)
	once, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}

	UpgradeDocument(raw)
	twice, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}
	if string(once) != string(twice) {
		t.Errorf("second upgrade changed the document:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestBookUpgradeFillsContainers(t *testing.T) {
	b := &Book{}
	b.Upgrade()
	if b.Stock == nil || b.Periods == nil || b.History == nil || b.Items == nil || b.ActivityLog == nil {
		t.Error("Upgrade must allocate every container")
	}

	b.Items["X"] = &ItemInfo{}
	b.History = append(b.History, Movement{Type: Inbound, Item: "X", Quantity: 1})
	b.Upgrade()
	if b.Items["X"].LastAudit == nil || b.Items["X"].Category != "album" {
		t.Error("metadata defaults not applied")
	}
	if b.History[0].Category != "album" {
		t.Error("history category default not applied")
	}

	// Idempotent on the typed form too.
	snapshot := b.Clone()
	b.Upgrade()
	if !reflect.DeepEqual(snapshot.Items, b.Items) || !reflect.DeepEqual(snapshot.History, b.History) {
		t.Error("second Upgrade changed the book")
	}
}
