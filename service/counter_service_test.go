package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgleader/models"
	"msgleader/store"
)

func TestCounterService_RecordMessage(t *testing.T) {
	t.Parallel()

	t.Run("auto-enrolls a new user when listen-to-all is on", func(t *testing.T) {
		t.Parallel()
		records := store.NewRecordStore()
		svc := NewCounterService(records, store.NewSettingsStore())

		svc.RecordMessage(testGuild, "1", "fresh", false)

		rec, err := records.Get(testGuild, "1")
		require.NoError(t, err)
		assert.Equal(t, 1, rec.Messages)
		assert.Equal(t, "fresh", rec.Name)
		assert.False(t, rec.IsAlt)
		assert.False(t, rec.IsBot)
		assert.Empty(t, rec.Alts)
	})

	t.Run("keeps the bot flag from the author on enroll", func(t *testing.T) {
		t.Parallel()
		records := store.NewRecordStore()
		svc := NewCounterService(records, store.NewSettingsStore())

		svc.RecordMessage(testGuild, "2", "beep", true)

		rec, err := records.Get(testGuild, "2")
		require.NoError(t, err)
		assert.True(t, rec.IsBot)
	})

	t.Run("increments an existing user", func(t *testing.T) {
		t.Parallel()
		records := store.NewRecordStore()
		records.Upsert(testGuild, "1", &models.UserRecord{Messages: 41, Name: "old"})
		svc := NewCounterService(records, store.NewSettingsStore())

		svc.RecordMessage(testGuild, "1", "new-name", false)

		rec, err := records.Get(testGuild, "1")
		require.NoError(t, err)
		assert.Equal(t, 42, rec.Messages)
		assert.Equal(t, "old", rec.Name, "names only refresh on demand, not per message")
	})

	t.Run("ignores unknown users when listen-to-all is off", func(t *testing.T) {
		t.Parallel()
		records := store.NewRecordStore()
		settings := store.NewSettingsStore()
		require.NoError(t, settings.Update(testGuild, func(gs *models.GuildSettings) error {
			gs.ListenToAll = false
			return nil
		}))
		svc := NewCounterService(records, settings)

		svc.RecordMessage(testGuild, "1", "stranger", false)

		_, err := records.Get(testGuild, "1")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("still increments known users when listen-to-all is off", func(t *testing.T) {
		t.Parallel()
		records := store.NewRecordStore()
		records.Upsert(testGuild, "1", &models.UserRecord{Messages: 10, Name: "known"})
		settings := store.NewSettingsStore()
		require.NoError(t, settings.Update(testGuild, func(gs *models.GuildSettings) error {
			gs.ListenToAll = false
			return nil
		}))
		svc := NewCounterService(records, settings)

		svc.RecordMessage(testGuild, "1", "known", false)

		rec, err := records.Get(testGuild, "1")
		require.NoError(t, err)
		assert.Equal(t, 11, rec.Messages)
	})
}

func TestCounterService_RemoveMessage(t *testing.T) {
	t.Parallel()

	t.Run("decrements on deletion", func(t *testing.T) {
		t.Parallel()
		records := store.NewRecordStore()
		records.Upsert(testGuild, "1", &models.UserRecord{Messages: 5})
		svc := NewCounterService(records, store.NewSettingsStore())

		svc.RemoveMessage(testGuild, "1")

		rec, err := records.Get(testGuild, "1")
		require.NoError(t, err)
		assert.Equal(t, 4, rec.Messages)
	})

	t.Run("clamps at zero", func(t *testing.T) {
		t.Parallel()
		records := store.NewRecordStore()
		records.Upsert(testGuild, "1", &models.UserRecord{Messages: 0})
		svc := NewCounterService(records, store.NewSettingsStore())

		svc.RemoveMessage(testGuild, "1")

		rec, err := records.Get(testGuild, "1")
		require.NoError(t, err)
		assert.Equal(t, 0, rec.Messages, "counts never go negative")
	})

	t.Run("ignores unknown users", func(t *testing.T) {
		t.Parallel()
		records := store.NewRecordStore()
		svc := NewCounterService(records, store.NewSettingsStore())

		svc.RemoveMessage(testGuild, "404")

		_, err := records.Get(testGuild, "404")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
