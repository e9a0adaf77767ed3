package stockbook

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers match these with errors.Is; the typed errors
// below carry the structured detail and unwrap to their kind.
var (
	ErrArtistMismatch    = errors.New("artist mismatch")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrStorageCorruption = errors.New("storage corruption")
	ErrSyncFailure       = errors.New("sync failure")
)

// ArtistMismatchError reports an attempt to record a movement for an item
// already bound to a different artist.
type ArtistMismatchError struct {
	Item string
	Have string // artist already recorded for the item
	Want string // artist on the rejected movement
}

func (e *ArtistMismatchError) Error() string {
	return fmt.Sprintf("item %q is registered to artist %q, not %q", e.Item, e.Have, e.Want)
}

func (e *ArtistMismatchError) Unwrap() error { return ErrArtistMismatch }

// InsufficientStockError reports an outbound quantity exceeding what is
// available at the item/option/location, with the exact shortfall.
type InsufficientStockError struct {
	Item      string
	Option    string
	Location  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	opt := e.Option
	if opt == "" {
		opt = "-"
	}
	return fmt.Sprintf("insufficient stock for %q (option %s) at %q: available %d, requested %d",
		e.Item, opt, e.Location, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// SyncError reports a reconciliation pass that failed after committing some
// of its synthesized movements. Committed is the number of keys already
// applied when the failure occurred; those movements are in the history and
// are not rolled back.
type SyncError struct {
	Committed int
	Cause     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("reconciliation failed after %d committed changes: %v", e.Committed, e.Cause)
}

func (e *SyncError) Unwrap() error { return ErrSyncFailure }

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

func notFoundErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}
