package service

import "context"

// Persister defines the persistence operations services trigger after
// mutating commands. The periodic safety-net snapshots run separately in
// the storage manager.
type Persister interface {
	// SaveMessages writes the messages document.
	SaveMessages(ctx context.Context) error

	// SaveSettings writes the settings document.
	SaveSettings(ctx context.Context) error
}
