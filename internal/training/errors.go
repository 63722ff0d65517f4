package training

import (
	"errors"
	"fmt"

	"github.com/meltforce/liftlog/internal/storage"
)

// ErrNotFound is returned when a referenced session, exercise, or set does
// not exist.
var ErrNotFound = storage.ErrNotFound

// ValidationError rejects malformed input before anything touches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a failure of the underlying store. The write did not
// happen; callers may prompt the user to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage failure: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// wrapStorage classifies an error coming back from a write path: domain
// errors pass through, anything else becomes a StorageError.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.Is(err, ErrNotFound) || errors.As(err, &ve) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
