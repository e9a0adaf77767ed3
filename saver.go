package stockbook

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// AsyncSaver persists book snapshots in the background so interactive
// operations never wait on the disk. Each enqueued snapshot is a deep copy
// taken at enqueue time; the worker coalesces a backlog and writes only the
// newest snapshot.
type AsyncSaver struct {
	store *Store

	queue chan *Book
	done  chan struct{}
	once  sync.Once
}

// NewAsyncSaver starts the background writer.
func NewAsyncSaver(store *Store) *AsyncSaver {
	s := &AsyncSaver{
		store: store,
		queue: make(chan *Book, 16),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *AsyncSaver) run() {
	defer close(s.done)
	for snapshot := range s.queue {
		// Coalesce: drain whatever piled up and keep only the newest.
		for {
			select {
			case newer, ok := <-s.queue:
				if !ok {
					s.persist(snapshot)
					return
				}
				snapshot = newer
			default:
				goto write
			}
		}
	write:
		s.persist(snapshot)
	}
}

func (s *AsyncSaver) persist(snapshot *Book) {
	if err := s.store.Save(snapshot); err != nil {
		log.Error().Str("path", s.store.Path).Err(err).Msg("background save failed")
	}
}

// Enqueue schedules a save of the book's current state. The copy happens
// here, synchronously, so the caller may keep mutating the book immediately.
func (s *AsyncSaver) Enqueue(b *Book) {
	s.queue <- b.Clone()
}

// SaveNow persists the book synchronously, bypassing the queue. Required
// before any externally visible handoff: reconciliation, restore, exit.
func (s *AsyncSaver) SaveNow(b *Book) error {
	return s.store.Save(b)
}

// Close stops accepting snapshots, waits for the backlog to be written, and
// returns. Safe to call more than once.
func (s *AsyncSaver) Close() {
	s.once.Do(func() { close(s.queue) })
	<-s.done
}
