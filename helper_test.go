package stockbook

import (
	"testing"
	"time"
)

// mv builds a movement for tests, stamped inside March 2024.
func mv(typ MovementType, artist, item, option, location string, qty int) Movement {
	return NewMovement(typ, artist, item, "album", option, location, qty,
		time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC), "tester", "test movement")
}

// mvOn is mv with an explicit day.
func mvOn(typ MovementType, artist, item, option, location string, qty int, day string) Movement {
	d := MustParseDate(day)
	return NewMovement(typ, artist, item, "album", option, location, qty,
		time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC), "tester", "test movement")
}

// record fails the test on error.
func record(t *testing.T, b *Book, m Movement) {
	t.Helper()
	if err := b.Record(m, false); err != nil {
		t.Fatalf("Record(%v %q): %v", m.Type, m.Item, err)
	}
}

// assertStock checks one stock cell.
func assertStock(t *testing.T, b *Book, item, option, location string, want int) {
	t.Helper()
	if got := b.Stock.At(item, option, location); got != want {
		t.Errorf("stock[%q][%q][%q] = %d, want %d", item, option, location, got, want)
	}
}

// assertFold checks that the live stock equals the fold of the history from
// empty, cell by cell in both directions: history is a sufficient audit
// trail to reconstruct current stock.
func assertFold(t *testing.T, b *Book) {
	t.Helper()
	net := Summarize(b.History)
	for ref, qty := range net.All() {
		if got := b.Stock.At(ref.Item, ref.Option, ref.Location); got != qty {
			t.Errorf("stock%v = %d but history folds to %d", ref, got, qty)
		}
	}
	for ref, qty := range b.Stock.All() {
		if got := net.At(ref.Item, ref.Option, ref.Location); got != qty {
			t.Errorf("history folds%v to %d but stock holds %d", ref, got, qty)
		}
	}
}
