package recordstore

import (
	"errors"
	"fmt"
)

var ErrPersistence = errors.New("persistence failed")

// PersistenceError wraps an I/O failure on load or save. The store keeps the
// state it had before the failed operation.
type PersistenceError struct {
	Op    string
	Store string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Store, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
