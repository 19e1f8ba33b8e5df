// Package store holds the in-memory canonical state: per-guild user records
// and per-guild settings. All mutation runs under a store-wide lock so that
// multi-record sequences (link, unlink, delete-with-repair) observe a
// consistent view.
package store

import (
	"errors"
	"sync"

	"msgleader/models"
)

// ErrNotFound is returned when a referenced user id is absent from a
// guild's records.
var ErrNotFound = errors.New("user not found")

// GuildRecords maps user id to record within one guild.
type GuildRecords map[string]*models.UserRecord

// RecordStore is the in-memory mapping of guild -> user id -> record.
type RecordStore struct {
	mu     sync.RWMutex
	guilds map[string]GuildRecords
}

// NewRecordStore creates an empty record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{guilds: make(map[string]GuildRecords)}
}

// NewRecordStoreFrom creates a store seeded with loaded state. The snapshot
// is taken over directly; callers must not retain references into it.
func NewRecordStoreFrom(snapshot map[string]GuildRecords) *RecordStore {
	if snapshot == nil {
		snapshot = make(map[string]GuildRecords)
	}
	return &RecordStore{guilds: snapshot}
}

// bucket returns the guild's record map, creating it if absent.
// Callers must hold the lock.
func (s *RecordStore) bucket(guildID string) GuildRecords {
	g, ok := s.guilds[guildID]
	if !ok {
		g = make(GuildRecords)
		s.guilds[guildID] = g
	}
	return g
}

// Update runs fn over a guild's records under the write lock. Any mutation
// fn performs on the map or its records is applied atomically with respect
// to other Update and View calls.
func (s *RecordStore) Update(guildID string, fn func(records GuildRecords) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.bucket(guildID))
}

// View runs fn over a guild's records under the read lock. fn must not
// mutate the map or the records. An unknown guild is presented as an empty
// map, not an error.
func (s *RecordStore) View(guildID string, fn func(records GuildRecords) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.guilds[guildID]
	if !ok {
		g = GuildRecords{}
	}
	return fn(g)
}

// Get returns a copy of the user's record, or ErrNotFound.
func (s *RecordStore) Get(guildID, userID string) (*models.UserRecord, error) {
	var out *models.UserRecord
	err := s.View(guildID, func(records GuildRecords) error {
		rec, ok := records[userID]
		if !ok {
			return ErrNotFound
		}
		out = rec.Clone()
		return nil
	})
	return out, err
}

// Upsert stores a copy of the record under the user id.
func (s *RecordStore) Upsert(guildID, userID string, rec *models.UserRecord) {
	_ = s.Update(guildID, func(records GuildRecords) error {
		records[userID] = rec.Clone()
		return nil
	})
}

// Delete removes the user's record, failing with ErrNotFound when absent.
func (s *RecordStore) Delete(guildID, userID string) error {
	return s.Update(guildID, func(records GuildRecords) error {
		if _, ok := records[userID]; !ok {
			return ErrNotFound
		}
		delete(records, userID)
		return nil
	})
}

// Snapshot returns a deep copy of all guilds' records, suitable for
// serialization while mutation continues.
func (s *RecordStore) Snapshot() map[string]GuildRecords {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]GuildRecords, len(s.guilds))
	for gid, records := range s.guilds {
		g := make(GuildRecords, len(records))
		for uid, rec := range records {
			g[uid] = rec.Clone()
		}
		out[gid] = g
	}
	return out
}
