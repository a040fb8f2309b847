package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/pucktrack/nhl-ingest/internal/normalize"
	"github.com/pucktrack/nhl-ingest/internal/sequence"
)

// Ingestion error taxonomy. Every per-row failure is classified into exactly
// one of these so the run report can separate transient feed trouble from
// data problems. None of them abort a run; only a configuration or
// connectivity failure detected before the first batch is fatal.
var (
	// ErrFetch: the feed could not deliver records after bounded retries.
	ErrFetch = errors.New("fetch failed")

	// ErrNormalization: a raw record is malformed or of the wrong kind.
	// Recorded and skipped; the rest of the batch continues.
	ErrNormalization = errors.New("normalization failed")

	// ErrSequenceConflict: ambiguous stint ordering resolved conservatively;
	// the row is flagged for review rather than written as a second active
	// stint.
	ErrSequenceConflict = errors.New("sequence conflict")

	// ErrPersistence: the gateway rejected a write (constraint violation or
	// storage failure). Isolated to the row's natural key.
	ErrPersistence = errors.New("persistence failed")

	// ErrPrerequisiteMissing: a dependent row's foreign-key target is not
	// stored yet. The row is queued and retried after the prerequisite
	// batch; if still missing it is reported as a dangling reference.
	ErrPrerequisiteMissing = errors.New("prerequisite row missing")
)

// classify maps lower-layer errors onto the taxonomy. Context cancellation
// passes through untouched so callers can tell shutdown from data problems.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, normalize.ErrMalformedRecord) || errors.Is(err, normalize.ErrRoleMismatch):
		return fmt.Errorf("%w: %v", ErrNormalization, err)
	case errors.Is(err, sequence.ErrConflict):
		return fmt.Errorf("%w: %v", ErrSequenceConflict, err)
	case errors.Is(err, ErrFetch), errors.Is(err, ErrNormalization),
		errors.Is(err, ErrSequenceConflict), errors.Is(err, ErrPersistence),
		errors.Is(err, ErrPrerequisiteMissing):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
}
