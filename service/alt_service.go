package service

import (
	"context"
	"fmt"

	"msgleader/store"
)

// AltService links and unlinks alt accounts and resolves alt chains into
// effective totals.
type AltService struct {
	records   *store.RecordStore
	persister Persister
}

// NewAltService creates a new alt service
func NewAltService(records *store.RecordStore, persister Persister) *AltService {
	return &AltService{records: records, persister: persister}
}

// LinkAlt marks altID as an alt of primaryID. The alt's messages count
// toward the primary's effective total from now on.
func (s *AltService) LinkAlt(ctx context.Context, guildID, primaryID, altID string) error {
	err := s.records.Update(guildID, func(records store.GuildRecords) error {
		return linkAlt(records, primaryID, altID)
	})
	if err != nil {
		return err
	}
	if err := s.persister.SaveMessages(ctx); err != nil {
		return fmt.Errorf("alt link applied but not persisted: %w", err)
	}
	return nil
}

// UnlinkAlt removes the link between primaryID and altID.
func (s *AltService) UnlinkAlt(ctx context.Context, guildID, primaryID, altID string) error {
	err := s.records.Update(guildID, func(records store.GuildRecords) error {
		return unlinkAlt(records, primaryID, altID)
	})
	if err != nil {
		return err
	}
	if err := s.persister.SaveMessages(ctx); err != nil {
		return fmt.Errorf("alt unlink applied but not persisted: %w", err)
	}
	return nil
}

// EffectiveTotal returns the user's own count plus all linked alts.
func (s *AltService) EffectiveTotal(guildID, userID string) (int, error) {
	var total int
	err := s.records.View(guildID, func(records store.GuildRecords) error {
		if _, ok := records[userID]; !ok {
			return store.ErrNotFound
		}
		total = effectiveTotal(records, userID)
		return nil
	})
	return total, err
}

// ResolvePrimary returns the primary id an alt rolls up into, or the id
// unchanged when it is not an alt.
func (s *AltService) ResolvePrimary(guildID, userID string) (string, error) {
	resolved := userID
	err := s.records.View(guildID, func(records store.GuildRecords) error {
		resolved = resolvePrimary(records, userID)
		return nil
	})
	return resolved, err
}
