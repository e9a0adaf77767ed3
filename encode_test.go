package stockbook

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := NewBook()
	record(t, b, mvOn(Inbound, "ArtistA", "Album X", "", "Seoul", 10, "2024-03-01"))
	record(t, b, mvOn(Outbound, "ArtistA", "Album X", "", "Seoul", 4, "2024-03-15"))
	if err := b.StampAudit("Album X", "", "Seoul", MustParseDate("2024-03-15")); err != nil {
		t.Fatalf("StampAudit: %v", err)
	}
	b.LogActivity("tester", "round trip")

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatalf("EncodeBook: %v", err)
	}

	got, err := DecodeBook(&buf)
	if err != nil {
		t.Fatalf("DecodeBook: %v", err)
	}

	assertStock(t, got, "Album X", "", "Seoul", 6)
	if len(got.History) != 2 {
		t.Errorf("history length = %d, want 2", len(got.History))
	}
	if got.CurrentPeriod != b.CurrentPeriod {
		t.Errorf("current period = %q, want %q", got.CurrentPeriod, b.CurrentPeriod)
	}
	if got.Artist("Album X") != "ArtistA" {
		t.Errorf("artist = %q", got.Artist("Album X"))
	}
	if len(got.ActivityLog) != len(b.ActivityLog) {
		t.Errorf("activity log length = %d, want %d", len(got.ActivityLog), len(b.ActivityLog))
	}
	assertFold(t, got)
}

func TestEncodeTopLevelFieldOrder(t *testing.T) {
	b := NewBook()
	record(t, b, mv(Inbound, "A", "Album X", "", "Seoul", 1))

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatal(err)
	}
	got := buf.String()

	order := []string{`"current_period"`, `"periods"`, `"stock"`, `"history"`,
		`"item_metadata"`, `"last_updated"`, `"activity_log"`}
	last := -1
	for _, key := range order {
		i := strings.Index(got, key)
		if i < 0 {
			t.Fatalf("field %s missing from document", key)
		}
		if i < last {
			t.Errorf("field %s out of order", key)
		}
		last = i
	}
}

func TestEncodeUnsetValuesAreNull(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeBook(&buf, NewBook()); err != nil {
		t.Fatal(err)
	}
	got := buf.String()

	if !strings.Contains(got, `"current_period":null`) {
		t.Errorf("unset current_period should encode as null: %s", got)
	}
	if !strings.Contains(got, `"last_updated":null`) {
		t.Errorf("unset last_updated should encode as null: %s", got)
	}
	if strings.Contains(got, `"last_load_error"`) {
		t.Errorf("empty last_load_error should be omitted: %s", got)
	}
}

func TestDecodeLegacyDocument(t *testing.T) {
	// A pre-option document: flat item→location maps and bare history rows.
	legacy := `{
		"current_period": "2024-03",
		"stock": {"Old Album": {"Seoul": 7}},
		"periods": {"2024-03": {"opening_stock": {"Old Album": {"Seoul": 7}}, "created_at": "2024-03-01T00:00:00"}},
		"history": [{"type": "in", "artist": "A", "item": "Old Album", "location": "Seoul", "quantity": 7, "timestamp": "2024-03-01T10:00:00"}],
		"item_metadata": {"Old Album": {"artist": "A"}}
	}`

	b, err := DecodeBook(strings.NewReader(legacy))
	if err != nil {
		t.Fatalf("DecodeBook: %v", err)
	}
	assertStock(t, b, "Old Album", "", "Seoul", 7)
	if b.OpeningStock("2024-03").At("Old Album", "", "Seoul") != 7 {
		t.Error("legacy opening stock not upgraded")
	}
	if b.History[0].Category != "album" {
		t.Errorf("legacy history category = %q, want album", b.History[0].Category)
	}
	if b.Items["Old Album"].Category != "album" {
		t.Error("legacy metadata category default not applied")
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"truncated", `{"stock": `},
		// "null" and scalars decode into a nil map with no error from
		// encoding/json; they are still not documents.
		{"null literal", `null`},
		{"array", `[]`},
		{"number", `42`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeBook(strings.NewReader(tt.src)); err == nil {
				t.Errorf("DecodeBook(%q) should fail", tt.src)
			}
		})
	}
}
