package stockbook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBackupKeep is how many backups are retained per label.
	DefaultBackupKeep = 10
	// DefaultBackupCooldown throttles the automatic backup taken on save.
	DefaultBackupCooldown = 120 * time.Second
)

// Store persists a Book as a single JSON document and manages the
// timestamped backups kept next to it.
type Store struct {
	Path     string
	Keep     int
	Cooldown time.Duration

	now func() time.Time

	mu       sync.Mutex
	lastAt   time.Time
	lastPath string
}

// NewStore returns a store for the document at path.
func NewStore(path string) *Store {
	return &Store{
		Path:     path,
		Keep:     DefaultBackupKeep,
		Cooldown: DefaultBackupCooldown,
		now:      time.Now,
	}
}

// Load reads the document. A missing file yields a fresh empty book. A file
// that cannot be decoded is moved aside and a fresh book is returned with
// LastLoadError describing the recovery; no data is silently discarded.
func (s *Store) Load() (*Book, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", s.Path, err)
	}

	b, err := DecodeBook(bytes.NewReader(data))
	if err == nil {
		return b, nil
	}

	quarantine := s.quarantinePath()
	if mvErr := os.Rename(s.Path, quarantine); mvErr != nil {
		quarantine = ""
	}
	log.Warn().Str("path", s.Path).Str("quarantine", quarantine).Err(err).
		Msg("document unreadable, starting fresh")

	fresh := NewBook()
	fresh.LastUpdated = s.now().Format(TimestampFormat)
	fresh.LastLoadError = &LoadError{
		Message:       err.Error(),
		CorruptBackup: quarantine,
		RecoveredAt:   fresh.LastUpdated,
	}
	return fresh, nil
}

func (s *Store) quarantinePath() string {
	stem := strings.TrimSuffix(s.Path, filepath.Ext(s.Path))
	return stem + ".corrupt_" + s.now().Format("20060102_150405") + ".json"
}

// Save refreshes the book's timestamp, takes a backup, and replaces the
// document. The document write goes through a temporary file so a crash
// mid-write never leaves a truncated document behind.
func (s *Store) Save(b *Book) error {
	b.Touch()
	if _, err := s.Backup(b, "", false); err != nil {
		return err
	}
	return s.write(s.Path, b, false)
}

// write replaces path with the encoded book. Serialized under the store
// mutex: the async saver and a synchronous SaveNow may race here, and both
// stage through the same temporary file.
func (s *Store) write(path string, b *Book, indent bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		return fmt.Errorf("could not encode document: %w", err)
	}
	out := buf.Bytes()
	if indent {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, out, "", "  "); err != nil {
			return fmt.Errorf("could not format document: %w", err)
		}
		out = pretty.Bytes()
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("could not write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("could not replace %q: %w", path, err)
	}
	return nil
}

// Backup writes a timestamped snapshot of the book under backups/ next to
// the document, named "<stem>[_label]_<timestamp>.json". Unforced backups
// within the cooldown window reuse the previous snapshot. Older snapshots
// beyond Keep are pruned per label.
func (s *Store) Backup(b *Book, label string, force bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && s.lastPath != "" && s.now().Sub(s.lastAt) < s.Cooldown {
		return s.lastPath, nil
	}

	dir := filepath.Join(filepath.Dir(s.Path), "backups")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create backup directory: %w", err)
	}

	labelPart := ""
	if label != "" {
		labelPart = "_" + label
	}
	name := s.stem() + labelPart + "_" + s.now().Format("20060102150405") + ".json"
	path := filepath.Join(dir, name)

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		return "", fmt.Errorf("could not encode backup: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("could not write backup %q: %w", path, err)
	}

	s.prune(dir, labelPart)

	s.lastAt = s.now()
	s.lastPath = path
	return path, nil
}

func (s *Store) prune(dir, labelPart string) {
	matches, err := filepath.Glob(filepath.Join(dir, s.stem()+labelPart+"_*.json"))
	if err != nil || s.Keep <= 0 || len(matches) <= s.Keep {
		return
	}
	slices.Sort(matches)
	for _, old := range matches[:len(matches)-s.Keep] {
		if err := os.Remove(old); err != nil {
			log.Warn().Str("path", old).Err(err).Msg("could not prune backup")
		}
	}
}

func (s *Store) stem() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Restore replaces the document with the contents of a backup file and
// returns the restored book. The current document, when readable, is backed
// up first under the "restore" label. The restored document is written
// indented so it can be inspected by hand.
func (s *Store) Restore(path string) (*Book, error) {
	if cur, err := os.ReadFile(s.Path); err == nil {
		if b, derr := DecodeBook(bytes.NewReader(cur)); derr == nil {
			if _, berr := s.Backup(b, "restore", true); berr != nil {
				return nil, berr
			}
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFoundErrorf("backup file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read backup %q: %w", path, err)
	}
	b, err := DecodeBook(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: backup %q: %v", ErrStorageCorruption, path, err)
	}
	if err := s.write(s.Path, b, true); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBackups returns the retained backup files, newest first.
func (s *Store) ListBackups() ([]string, error) {
	dir := filepath.Join(filepath.Dir(s.Path), "backups")
	matches, err := filepath.Glob(filepath.Join(dir, s.stem()+"*.json"))
	if err != nil {
		return nil, fmt.Errorf("could not list backups: %w", err)
	}
	slices.Sort(matches)
	slices.Reverse(matches)
	return matches, nil
}
