package storage

import "fmt"

// PersistenceError wraps an I/O failure during document load or save.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed for %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}
