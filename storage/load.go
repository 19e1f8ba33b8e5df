package storage

import (
	"encoding/json"
	"errors"
	"os"

	log "github.com/sirupsen/logrus"

	"msgleader/models"
	"msgleader/store"
)

// legacySettings is the single-guild document shape: one flat object with
// the bot token alongside the settings. The token now comes from the
// environment; the remaining fields migrate under legacyGuildID.
type legacySettings struct {
	Token       string `json:"token"`
	Minimum     int    `json:"minimum"`
	ListenToAll bool   `json:"listen_to_all"`
}

// LoadMessages reads the messages document. A missing or malformed file
// yields empty state. A legacy single-guild document (user id -> record at
// the top level) is nested under legacyGuildID when one is configured and
// dropped with a warning otherwise.
func LoadMessages(path, legacyGuildID string) map[string]store.GuildRecords {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warnf("Could not read %s, starting with empty records", path)
		}
		return nil
	}

	var nested map[string]store.GuildRecords
	if err := json.Unmarshal(data, &nested); err == nil {
		return nested
	}

	var flat store.GuildRecords
	if err := json.Unmarshal(data, &flat); err != nil {
		log.WithError(err).Warnf("Malformed messages document %s, starting with empty records", path)
		return nil
	}

	if legacyGuildID == "" {
		log.Warnf("Legacy single-guild messages document %s found but GUILD_ID is not set, dropping %d records", path, len(flat))
		return nil
	}
	log.Infof("Migrating legacy messages document %s under guild %s", path, legacyGuildID)
	return map[string]store.GuildRecords{legacyGuildID: flat}
}

// LoadSettings reads the settings document with the same tolerance and
// migration rules as LoadMessages.
func LoadSettings(path, legacyGuildID string) map[string]*models.GuildSettings {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warnf("Could not read %s, starting with default settings", path)
		}
		return nil
	}

	var nested map[string]*models.GuildSettings
	if err := json.Unmarshal(data, &nested); err == nil {
		return nested
	}

	var flat legacySettings
	if err := json.Unmarshal(data, &flat); err != nil {
		log.WithError(err).Warnf("Malformed settings document %s, starting with default settings", path)
		return nil
	}

	if legacyGuildID == "" {
		log.Warnf("Legacy single-guild settings document %s found but GUILD_ID is not set, dropping it", path)
		return nil
	}
	log.Infof("Migrating legacy settings document %s under guild %s", path, legacyGuildID)
	return map[string]*models.GuildSettings{
		legacyGuildID: {Minimum: flat.Minimum, ListenToAll: flat.ListenToAll},
	}
}
