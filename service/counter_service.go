package service

import (
	"msgleader/models"
	"msgleader/store"
)

// CounterService applies message create and delete events to the raw
// per-user counts. Counting is pure in-memory work; durability comes from
// the periodic snapshots.
type CounterService struct {
	records  *store.RecordStore
	settings *store.SettingsStore
}

// NewCounterService creates a new counter service
func NewCounterService(records *store.RecordStore, settings *store.SettingsStore) *CounterService {
	return &CounterService{records: records, settings: settings}
}

// RecordMessage increments the author's count. An unknown author is
// auto-enrolled with a count of one when the guild's listen-to-all policy
// is on, and ignored otherwise.
func (s *CounterService) RecordMessage(guildID, userID, displayName string, isBot bool) {
	gs, _ := s.settings.GetOrCreate(guildID)

	_ = s.records.Update(guildID, func(records store.GuildRecords) error {
		if rec, ok := records[userID]; ok {
			rec.Messages++
			return nil
		}
		if gs.ListenToAll {
			records[userID] = models.NewUserRecord(displayName, isBot)
		}
		return nil
	})
}

// RemoveMessage decrements the author's count on message deletion, never
// below zero. Unknown authors are ignored.
func (s *CounterService) RemoveMessage(guildID, userID string) {
	_ = s.records.Update(guildID, func(records store.GuildRecords) error {
		if rec, ok := records[userID]; ok && rec.Messages > 0 {
			rec.Messages--
		}
		return nil
	})
}
