package service

import (
	"context"
	"fmt"

	"msgleader/models"
	"msgleader/store"
)

// SettingsService manages per-guild configuration.
type SettingsService struct {
	settings  *store.SettingsStore
	persister Persister
}

// NewSettingsService creates a new settings service
func NewSettingsService(settings *store.SettingsStore, persister Persister) *SettingsService {
	return &SettingsService{settings: settings, persister: persister}
}

// EnsureGuildSettings returns the guild's settings, creating and persisting
// defaults on first contact.
func (s *SettingsService) EnsureGuildSettings(ctx context.Context, guildID string) (*models.GuildSettings, error) {
	gs, created := s.settings.GetOrCreate(guildID)
	if created {
		if err := s.persister.SaveSettings(ctx); err != nil {
			return nil, fmt.Errorf("default settings created but not persisted: %w", err)
		}
	}
	return gs, nil
}

// SetMinimum updates the guild's leaderboard threshold. The value must be
// a positive integer.
func (s *SettingsService) SetMinimum(ctx context.Context, guildID string, value int) error {
	if value <= 0 {
		return fmt.Errorf("minimum must be positive, got %d: %w", value, ErrValidation)
	}
	_ = s.settings.Update(guildID, func(gs *models.GuildSettings) error {
		gs.Minimum = value
		return nil
	})
	if err := s.persister.SaveSettings(ctx); err != nil {
		return fmt.Errorf("minimum updated but not persisted: %w", err)
	}
	return nil
}

// ToggleListenToAll flips the auto-enroll policy and returns the new value.
func (s *SettingsService) ToggleListenToAll(ctx context.Context, guildID string) (bool, error) {
	var enabled bool
	_ = s.settings.Update(guildID, func(gs *models.GuildSettings) error {
		gs.ListenToAll = !gs.ListenToAll
		enabled = gs.ListenToAll
		return nil
	})
	if err := s.persister.SaveSettings(ctx); err != nil {
		return enabled, fmt.Errorf("policy updated but not persisted: %w", err)
	}
	return enabled, nil
}

// Minimum returns the guild's current threshold.
func (s *SettingsService) Minimum(guildID string) int {
	gs, _ := s.settings.GetOrCreate(guildID)
	return gs.Minimum
}
