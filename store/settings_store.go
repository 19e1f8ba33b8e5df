package store

import (
	"sync"

	"msgleader/models"
)

// SettingsStore is the in-memory mapping of guild id to settings.
type SettingsStore struct {
	mu     sync.RWMutex
	guilds map[string]*models.GuildSettings
}

// NewSettingsStore creates an empty settings store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{guilds: make(map[string]*models.GuildSettings)}
}

// NewSettingsStoreFrom creates a store seeded with loaded state.
func NewSettingsStoreFrom(snapshot map[string]*models.GuildSettings) *SettingsStore {
	if snapshot == nil {
		snapshot = make(map[string]*models.GuildSettings)
	}
	return &SettingsStore{guilds: snapshot}
}

// GetOrCreate returns a copy of the guild's settings, creating defaults on
// first contact. The second return value reports whether the settings were
// just created, so callers can persist the new guild immediately.
func (s *SettingsStore) GetOrCreate(guildID string) (*models.GuildSettings, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.guilds[guildID]
	if !ok {
		gs = models.NewGuildSettings()
		s.guilds[guildID] = gs
	}
	return gs.Clone(), !ok
}

// Update runs fn against the guild's settings under the write lock,
// creating defaults first when absent.
func (s *SettingsStore) Update(guildID string, fn func(gs *models.GuildSettings) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.guilds[guildID]
	if !ok {
		gs = models.NewGuildSettings()
		s.guilds[guildID] = gs
	}
	return fn(gs)
}

// Snapshot returns a deep copy of all guilds' settings.
func (s *SettingsStore) Snapshot() map[string]*models.GuildSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*models.GuildSettings, len(s.guilds))
	for gid, gs := range s.guilds {
		out[gid] = gs.Clone()
	}
	return out
}
