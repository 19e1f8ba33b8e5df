// Package storage persists the record and settings stores as two JSON
// documents using atomic replace-on-write, and schedules the periodic
// safety-net snapshots.
package storage

import (
	"context"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"msgleader/store"
)

// Document file names inside the data directory.
const (
	MessagesFile = "messages.json"
	SettingsFile = "settings.json"
)

// Snapshot cadence: message counts accumulate continuously and get the
// short interval; the full snapshot also covers settings, which are already
// written on every explicit change.
const (
	messagesSnapshotSpec = "@every 8h"
	fullSnapshotSpec     = "@every 24h"

	writeTimeout = 30 * time.Second
)

// Manager owns the durable copies of both stores.
type Manager struct {
	records  *store.RecordStore
	settings *store.SettingsStore

	messagesPath string
	settingsPath string

	cron *cron.Cron
}

// NewManager creates a persistence manager writing into dataDir.
func NewManager(dataDir string, records *store.RecordStore, settings *store.SettingsStore) *Manager {
	return &Manager{
		records:      records,
		settings:     settings,
		messagesPath: filepath.Join(dataDir, MessagesFile),
		settingsPath: filepath.Join(dataDir, SettingsFile),
	}
}

// SaveMessages writes the messages document. The snapshot is taken under
// the store's read lock; the write itself runs outside any lock.
func (m *Manager) SaveMessages(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return writeAtomicCtx(ctx, m.messagesPath, m.records.Snapshot())
}

// SaveSettings writes the settings document.
func (m *Manager) SaveSettings(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return writeAtomicCtx(ctx, m.settingsPath, m.settings.Snapshot())
}

// SaveAll writes both documents, returning the first failure after
// attempting both.
func (m *Manager) SaveAll(ctx context.Context) error {
	errMessages := m.SaveMessages(ctx)
	errSettings := m.SaveSettings(ctx)
	if errMessages != nil {
		return errMessages
	}
	return errSettings
}

// StartScheduler begins the periodic snapshots: the messages document every
// 8 hours and a full snapshot every 24 hours. A failed periodic write is
// logged and retried on the next tick, never fatal.
func (m *Manager) StartScheduler() error {
	c := cron.New()

	if _, err := c.AddFunc(messagesSnapshotSpec, func() {
		if err := m.SaveMessages(context.Background()); err != nil {
			log.WithError(err).Error("Periodic messages snapshot failed, will retry next tick")
			return
		}
		log.Info("Periodic messages snapshot written")
	}); err != nil {
		return err
	}

	if _, err := c.AddFunc(fullSnapshotSpec, func() {
		if err := m.SaveAll(context.Background()); err != nil {
			log.WithError(err).Error("Periodic full snapshot failed, will retry next tick")
			return
		}
		log.Info("Periodic full snapshot written")
	}); err != nil {
		return err
	}

	c.Start()
	m.cron = c
	log.Info("Snapshot scheduler started")
	return nil
}

// Stop halts the scheduler and flushes both documents. Shutdown must not
// lose counts accumulated since the last tick.
func (m *Manager) Stop(ctx context.Context) error {
	if m.cron != nil {
		stopCtx := m.cron.Stop()
		select {
		case <-stopCtx.Done():
		case <-ctx.Done():
		}
	}
	return m.SaveAll(ctx)
}
