package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// writeAtomic serializes v and replaces path in one step: the document is
// written to a uniquely named temp file in the same directory and renamed
// over the destination, so a reader never observes a partial document and a
// crash mid-write leaves the previous document intact.
func writeAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return &PersistenceError{Op: "marshal", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf("%s-%s.tmp", uuid.New().String(), filepath.Base(path)))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &PersistenceError{Op: "write", Path: tmp, Err: err}
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &PersistenceError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// writeAtomicCtx runs writeAtomic in a goroutine and gives up waiting when
// the context expires. The write itself is not interrupted; an abandoned
// temp file from a stalled write is harmless and never renamed over the
// destination by anyone else.
func writeAtomicCtx(ctx context.Context, path string, v any) error {
	done := make(chan error, 1)
	go func() { done <- writeAtomic(path, v) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return &PersistenceError{Op: "write", Path: path, Err: ctx.Err()}
	}
}
