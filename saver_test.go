package stockbook

import (
	"sync"
	"testing"
)

func TestAsyncSaverPersistsOnClose(t *testing.T) {
	s := testStore(t)
	saver := NewAsyncSaver(s)

	b := NewBook()
	record(t, b, mv(Inbound, "A", "Album X", "", "Seoul", 10))
	saver.Enqueue(b)

	record(t, b, mv(Outbound, "A", "Album X", "", "Seoul", 4))
	saver.Enqueue(b)
	saver.Close()

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The newest snapshot wins.
	assertStock(t, got, "Album X", "", "Seoul", 6)
}

func TestAsyncSaverSnapshotsAtEnqueue(t *testing.T) {
	s := testStore(t)
	saver := NewAsyncSaver(s)

	b := NewBook()
	record(t, b, mv(Inbound, "A", "Album X", "", "Seoul", 10))
	saver.Enqueue(b)

	// Mutations after Enqueue must not leak into the queued snapshot.
	record(t, b, mv(Outbound, "A", "Album X", "", "Seoul", 4))
	saver.Close()

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	qty := got.Stock.At("Album X", "", "Seoul")
	if qty != 10 {
		t.Errorf("persisted stock = %d, want the snapshot taken at enqueue (10)", qty)
	}
}

func TestAsyncSaverSaveNow(t *testing.T) {
	s := testStore(t)
	saver := NewAsyncSaver(s)
	defer saver.Close()

	b := NewBook()
	record(t, b, mv(Inbound, "A", "Album X", "", "Seoul", 7))
	if err := saver.SaveNow(b); err != nil {
		t.Fatalf("SaveNow: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	assertStock(t, got, "Album X", "", "Seoul", 7)
}

func TestAsyncSaverCloseTwice(t *testing.T) {
	saver := NewAsyncSaver(testStore(t))
	saver.Close()
	saver.Close()
}

func TestConcurrentSavesStayAtomic(t *testing.T) {
	// The background worker and SaveNow callers write through the same
	// store; interleaved writes must never publish a torn document.
	s := testStore(t)
	saver := NewAsyncSaver(s)

	b := NewBook()
	record(t, b, mv(Inbound, "A", "Album X", "", "Seoul", 100))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := saver.SaveNow(b.Clone()); err != nil {
				t.Errorf("SaveNow: %v", err)
			}
		}()
		saver.Enqueue(b)
	}
	wg.Wait()
	saver.Close()

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load after concurrent saves: %v", err)
	}
	if got.LastLoadError != nil {
		t.Fatalf("document was torn: %+v", got.LastLoadError)
	}
	assertStock(t, got, "Album X", "", "Seoul", 100)
}
